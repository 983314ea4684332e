package services

import (
	"context"
	"fmt"
	"image"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/livequery"
	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/models"
	"github.com/dmitrijs2005/gophwallet/internal/ordering"
)

// Store is the part of store.Store the wallet screen needs.
type Store interface {
	ListPasses(ctx context.Context) ([]models.LocalizedPassWithTags, error)
	FindPassByID(ctx context.Context, id string) (*models.LocalizedPassWithTags, error)
	LoadManualOrder(ctx context.Context) ([]string, error)
	SetManualOrder(ctx context.Context, ids []string) error
	Broker() *livequery.Broker
}

// WalletView is one rendering of the wallet list.
type WalletView struct {
	// Passes is the full ordered list before grouping.
	Passes    []models.LocalizedPassWithTags
	Groups    []ordering.Bucket
	Ungrouped []models.LocalizedPassWithTags
	// Order is the normalized manual order of all passes.
	Order []string
}

// Rendered is a barcode bitmap of one pass.
type Rendered struct {
	PassID string
	Image  *image.NRGBA
}

// WalletService lays out, reorders and renders the wallet.
type WalletService interface {
	View(ctx context.Context, filter ordering.Filter, sort ordering.SortOption) (*WalletView, error)
	Watch(ctx context.Context, filter ordering.Filter, sort ordering.SortOption) <-chan *WalletView
	MovePass(ctx context.Context, filter ordering.Filter, fromID, toID string) error
	RenderBarcode(ctx context.Context, passID string, width, height int, invert bool) (*image.NRGBA, error)
	RenderAll(ctx context.Context, width, height int) ([]Rendered, error)
}

type walletService struct {
	store Store
	log   logging.Logger
}

// NewWalletService returns a WalletService reading from and writing to store.
func NewWalletService(store Store, log logging.Logger) WalletService {
	return &walletService{store: store, log: log.With("component", "wallet")}
}

// View lays the wallet out. The stored manual order is normalized against
// every pass, archived or not, before any filter runs; with the Manual option
// it is written back when it changed.
func (s *walletService) View(ctx context.Context, filter ordering.Filter, sort ordering.SortOption) (*WalletView, error) {
	all, err := s.store.ListPasses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading passes: %w", err)
	}
	stored, err := s.store.LoadManualOrder(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading manual order: %w", err)
	}

	manual := ordering.ApplyManualOrder(all, stored)
	shown := filter.Apply(filter.Archive(manual.Ordered))
	if !sort.IsManual() {
		shown = sort.Sort(shown)
	}

	if sort.IsManual() && !slices.Equal(manual.Normalized, stored) {
		s.log.Debug(ctx, "normalizing manual order", "stored", len(stored), "normalized", len(manual.Normalized))
		if err := s.store.SetManualOrder(ctx, manual.Normalized); err != nil {
			return nil, fmt.Errorf("error saving manual order: %w", err)
		}
	}

	groups, ungrouped := ordering.GroupByGroupID(shown)
	return &WalletView{Passes: shown, Groups: groups, Ungrouped: ungrouped, Order: manual.Normalized}, nil
}

// Watch re-lays the wallet out whenever passes, tags or the manual order
// change. The channel closes when ctx is cancelled.
func (s *walletService) Watch(ctx context.Context, filter ordering.Filter, sort ordering.SortOption) <-chan *WalletView {
	load := func(ctx context.Context) (*WalletView, error) {
		return s.View(ctx, filter, sort)
	}
	return livequery.Watch(ctx, s.store.Broker(), s.log, load,
		livequery.TopicPasses, livequery.TopicTags, livequery.TopicManualOrder)
}

// MovePass drags fromID onto toID within the ungrouped manual list and
// persists the result. Moves involving passes outside that list are ignored.
func (s *walletService) MovePass(ctx context.Context, filter ordering.Filter, fromID, toID string) error {
	view, err := s.View(ctx, filter, ordering.Manual)
	if err != nil {
		return err
	}

	from := slices.IndexFunc(view.Ungrouped, byID(fromID))
	to := slices.IndexFunc(view.Ungrouped, byID(toID))
	if from < 0 || to < 0 {
		s.log.Debug(ctx, "move ignored", "from", fromID, "to", toID)
		return nil
	}

	order := ordering.Move(view.Order, fromID, toID, from < to)
	if slices.Equal(order, view.Order) {
		return nil
	}
	if err := s.store.SetManualOrder(ctx, order); err != nil {
		return fmt.Errorf("error saving manual order: %w", err)
	}
	return nil
}

func byID(id string) func(models.LocalizedPassWithTags) bool {
	return func(p models.LocalizedPassWithTags) bool { return p.Pass.ID == id }
}

// RenderBarcode draws the pass's barcode. It returns common.ErrNotFound when
// the pass does not exist or has no barcode.
func (s *walletService) RenderBarcode(ctx context.Context, passID string, width, height int, invert bool) (*image.NRGBA, error) {
	p, err := s.store.FindPassByID(ctx, passID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Pass.Barcode == nil {
		return nil, fmt.Errorf("barcode of pass %s: %w", passID, common.ErrNotFound)
	}
	return p.Pass.Barcode.EncodeAsBitmap(width, height, invert)
}

// RenderAll draws every barcode in parallel, in insertion order of the passes
// that have one. The first failure cancels the rest.
func (s *walletService) RenderAll(ctx context.Context, width, height int) ([]Rendered, error) {
	all, err := s.store.ListPasses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading passes: %w", err)
	}

	withBarcode := slices.DeleteFunc(all, func(p models.LocalizedPassWithTags) bool { return p.Pass.Barcode == nil })
	out := make([]Rendered, len(withBarcode))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, p := range withBarcode {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := p.Pass.Barcode.EncodeAsBitmap(width, height, false)
			if err != nil {
				return fmt.Errorf("render %s: %w", p.Pass.ID, err)
			}
			out[i] = Rendered{PassID: p.Pass.ID, Image: img}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "rendered barcodes", "count", len(out))
	return out, nil
}
