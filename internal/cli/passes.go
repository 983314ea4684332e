package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/models"
	"github.com/dmitrijs2005/gophwallet/internal/ordering"
	"github.com/dmitrijs2005/gophwallet/internal/services"
)

// resolvePass accepts a full pass id or a unique prefix of one.
func (a *App) resolvePass(ctx context.Context, token string) (*models.LocalizedPassWithTags, error) {
	p, err := a.store.FindPassByID(ctx, token)
	if err != nil || p != nil {
		return p, err
	}

	all, err := a.store.ListPasses(ctx)
	if err != nil {
		return nil, err
	}
	var found *models.LocalizedPassWithTags
	for i := range all {
		if !strings.HasPrefix(all[i].Pass.ID, token) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("pass prefix %q is ambiguous", token)
		}
		found = &all[i]
	}
	if found == nil {
		return nil, fmt.Errorf("pass %q: %w", token, common.ErrNotFound)
	}
	return found, nil
}

// parseFilter reads list arguments into a filter.
func parseFilter(args []string) (ordering.Filter, error) {
	var f ordering.Filter
	for _, arg := range args {
		key, value, _ := strings.Cut(arg, "=")
		switch key {
		case "archived", "archive":
			f.Archived = true
		case "type":
			t := models.PassTypeFromString(value)
			if string(t) != value {
				return f, fmt.Errorf("unknown pass type %q", value)
			}
			f.Types = append(f.Types, t)
		case "tag":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return f, fmt.Errorf("invalid tag id %q", value)
			}
			f.Tag = &id
		default:
			return f, errUsage
		}
	}
	return f, nil
}

func (a *App) List(ctx context.Context, args []string) error {
	f, err := parseFilter(args)
	if err != nil {
		return err
	}
	a.filter = f

	v, err := a.wallet.View(ctx, f, a.sort)
	if err != nil {
		return err
	}
	a.printView(ctx, v)
	return nil
}

func (a *App) printView(ctx context.Context, v *services.WalletView) {
	width := lineWidth()
	if len(v.Passes) == 0 {
		a.println("No passes.")
		return
	}

	for _, b := range v.Groups {
		name := fmt.Sprintf("group %d", b.GroupID)
		if g, err := a.store.FindGroupByID(ctx, b.GroupID); err == nil && g != nil {
			name = fmt.Sprintf("%s [%d]", g.Name, g.ID)
		}
		a.println(truncate("▸ "+name, width))
		for _, p := range b.Passes {
			a.println(truncate("    "+passLine(p), width))
		}
	}
	for _, p := range v.Ungrouped {
		a.println(truncate(passLine(p), width))
	}
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := a.resolvePass(ctx, args[0])
	if err != nil {
		return err
	}

	pass := p.Pass
	a.printf("ID:           %s\n", pass.ID)
	a.printf("Type:         %s\n", pass.Type)
	a.printf("Organization: %s\n", pass.OrganizationName)
	a.printf("Description:  %s\n", pass.Description)
	a.printf("Serial:       %s\n", pass.SerialNumber)
	a.printf("Pass type id: %s\n", pass.PassTypeIdentifier)
	a.printf("Added:        %s\n", pass.AddedAt.Local().Format(time.DateTime))
	for _, d := range pass.RelevantDates {
		if d.End != nil {
			a.printf("Relevant:     %s - %s\n", d.Start.Local().Format(time.DateTime), d.End.Local().Format(time.DateTime))
		} else {
			a.printf("Relevant:     %s\n", d.Start.Local().Format(time.DateTime))
		}
	}
	if pass.ExpirationDate != nil {
		a.printf("Expires:      %s\n", pass.ExpirationDate.Local().Format(time.DateTime))
	}
	if pass.Voided {
		a.println("Voided:       yes")
	}
	if pass.Archived {
		a.println("Archived:     yes")
	}
	if pass.WebServiceURL != "" {
		a.printf("Web service:  %s\n", pass.WebServiceURL)
	}
	if pass.GroupID != nil {
		a.printf("Group:        %d\n", *pass.GroupID)
	}
	for _, t := range p.Tags {
		a.printf("Tag:          %s [%d] %s\n", t.Name, t.ID, formatColor(t.Color))
	}
	if bc := pass.Barcode; bc != nil {
		a.printf("Barcode:      %s %q (%s)\n", bc.Format(), bc.Message(), bc.MessageEncoding())
		if alt, ok := bc.AltText(); ok {
			a.printf("Alt text:     %s\n", alt)
		}
	}
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := a.resolvePass(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.store.DeletePass(ctx, p.Pass.ID); err != nil {
		return err
	}
	a.printf("Deleted %s\n", p.Pass.ID)
	return nil
}

func (a *App) Archive(ctx context.Context, args []string, archived bool) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := a.resolvePass(ctx, args[0])
	if err != nil {
		return err
	}
	return a.store.SetArchived(ctx, p.Pass.ID, archived)
}

func (a *App) Updatable(ctx context.Context, _ []string) error {
	passes, err := a.store.UpdatablePasses(ctx)
	if err != nil {
		return err
	}
	for _, p := range passes {
		a.printf("%s %s\n", shortID(p.ID), p.WebServiceURL)
	}
	return nil
}

// Watch prints the wallet each time it changes, for a limited time.
func (a *App) Watch(ctx context.Context, args []string) error {
	d := 30 * time.Second
	if len(args) > 0 {
		secs, err := strconv.Atoi(args[0])
		if err != nil || secs <= 0 {
			return errUsage
		}
		d = time.Duration(secs) * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	n := 0
	for v := range a.wallet.Watch(ctx, a.filter, a.sort) {
		n++
		a.printf("-- update %d --\n", n)
		a.printView(ctx, v)
	}
	return nil
}
