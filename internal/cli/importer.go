package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/hashx"
	"github.com/dmitrijs2005/gophwallet/internal/models"
)

// now is a seam for tests.
var now = time.Now

// decodePasses reads one pass object or an array of them.
func decodePasses(data []byte) ([]models.Pass, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var ps []models.Pass
		if err := json.Unmarshal(data, &ps); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrMalformedPass, err)
		}
		return ps, nil
	}
	var p models.Pass
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrMalformedPass, err)
	}
	return []models.Pass{p}, nil
}

// normalizeImported fills what a pass document may leave out. Without an id,
// the pass is identified by its issuer pair so a re-import replaces it; only
// passes lacking both get a random id.
func normalizeImported(p models.Pass) models.Pass {
	p.Type = models.PassTypeFromString(string(p.Type))
	if p.ID == "" {
		if p.PassTypeIdentifier != "" && p.SerialNumber != "" {
			p.ID = hashx.PassFingerprint(p.PassTypeIdentifier, p.SerialNumber)
		} else {
			p.ID = uuid.NewString()
		}
	}
	if p.AddedAt.IsZero() {
		p.AddedAt = now().UTC()
	}
	return p
}

func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	passes, err := decodePasses(data)
	if err != nil {
		return err
	}

	for _, p := range passes {
		p = normalizeImported(p)
		if err := a.store.InsertPass(ctx, p); err != nil {
			return err
		}
		a.log.Info(ctx, "pass imported", "id", p.ID, "type", p.Type)
		a.printf("Imported %s %s\n", shortID(p.ID), p.Description)
	}
	return nil
}
