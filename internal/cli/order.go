package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophwallet/internal/ordering"
)

var errNotManual = errors.New("reordering needs the Manual sort option (sort Manual)")

// Sort prints the options, or selects and persists one.
func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) == 0 {
		for _, o := range ordering.All() {
			mark := " "
			if o.Name() == a.sort.Name() {
				mark = "*"
			}
			a.printf("%s %-20s %s\n", mark, o.Name(), o.Label())
		}
		return nil
	}
	if len(args) != 1 {
		return errUsage
	}

	o, err := ordering.Parse(args[0])
	if err != nil {
		return err
	}
	if err := a.store.SetSortOptionName(ctx, o.Name()); err != nil {
		return err
	}
	a.sort = o
	return nil
}

// Move drags one ungrouped pass onto another in the manual order.
func (a *App) Move(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	if !a.sort.IsManual() {
		return errNotManual
	}
	from, err := a.resolvePass(ctx, args[0])
	if err != nil {
		return err
	}
	to, err := a.resolvePass(ctx, args[1])
	if err != nil {
		return err
	}
	return a.wallet.MovePass(ctx, a.filter, from.Pass.ID, to.Pass.ID)
}
