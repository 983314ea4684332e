package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophwallet/internal/config"
	"github.com/dmitrijs2005/gophwallet/internal/filex"
	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/ordering"
	"github.com/dmitrijs2005/gophwallet/internal/services"
	"github.com/dmitrijs2005/gophwallet/internal/store"
)

// App holds the open wallet and the REPL's current sort and filter.
type App struct {
	config *config.Config
	store  *store.Store
	wallet services.WalletService
	log    logging.Logger
	out    io.Writer

	sort   ordering.SortOption
	filter ordering.Filter
}

// NewApp opens the wallet database named in c and restores the persisted
// sort option.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, out io.Writer) (*App, error) {
	if err := filex.EnsureParentDir(c.DBPath); err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, c.DBPath, log)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	a := &App{
		config: c,
		store:  st,
		wallet: services.NewWalletService(st, log),
		log:    log,
		out:    out,
		sort:   ordering.TimeAdded,
	}

	name, err := st.SortOptionName(ctx)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	if o, ok := ordering.ByName(name); ok {
		a.sort = o
	}
	return a, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

// Run reads commands from in until EOF, "exit" or ctx cancellation.
func (a *App) Run(ctx context.Context, in io.Reader) {
	fmt.Fprintln(a.out, "GophWallet (type 'help' for commands)")
	runREPL(ctx, a, a.prompt, bufio.NewScanner(in), a.out)
}

func (a *App) prompt() string {
	s := a.sort.Name()
	if a.filter.Archived {
		s += " archive"
	}
	return fmt.Sprintf("wallet (%s)> ", s)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
