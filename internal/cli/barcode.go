package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// Barcode writes the pass's barcode to an image file; the format follows the
// file extension. With "all" in place of a pass it writes every barcode into
// the given directory as <pass id>.png.
func (a *App) Barcode(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	invert := false
	if args[len(args)-1] == "invert" {
		invert = true
		args = args[:len(args)-1]
	}

	width, height := a.config.BarcodeWidth, a.config.BarcodeHeight
	switch len(args) {
	case 2:
	case 4:
		var err1, err2 error
		width, err1 = strconv.Atoi(args[2])
		height, err2 = strconv.Atoi(args[3])
		if err1 != nil || err2 != nil {
			return errUsage
		}
	default:
		return errUsage
	}

	if args[0] == "all" {
		if invert {
			return errUsage
		}
		return a.barcodeAll(ctx, args[1], width, height)
	}

	p, err := a.resolvePass(ctx, args[0])
	if err != nil {
		return err
	}
	img, err := a.wallet.RenderBarcode(ctx, p.Pass.ID, width, height, invert)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, args[1]); err != nil {
		return fmt.Errorf("save %s: %w", args[1], err)
	}
	a.printf("Wrote %dx%d %s barcode to %s\n", width, height, p.Pass.Barcode.Format(), args[1])
	return nil
}

func (a *App) barcodeAll(ctx context.Context, dir string, width, height int) error {
	rendered, err := a.wallet.RenderAll(ctx, width, height)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	for _, r := range rendered {
		path := filepath.Join(dir, strings.ReplaceAll(r.PassID, "/", "_")+".png")
		if err := imaging.Save(r.Image, path); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	a.printf("Wrote %d barcodes to %s\n", len(rendered), dir)
	return nil
}
