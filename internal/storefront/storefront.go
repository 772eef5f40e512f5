// Package storefront assembles the page-level views of the shop from the
// API client and the catalog projection. Each view load is independent and
// starts from scratch; nothing is cached between loads.
package storefront

import (
	"context"
	"sync"
	"time"

	"bunny-store/internal/api"
	"bunny-store/internal/catalog"
	"bunny-store/internal/domain"
	"bunny-store/internal/sitemap"
	"bunny-store/internal/whatsapp"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service loads view data for storefront pages.
type Service struct {
	api    *api.Client
	logger *zap.Logger
}

// New creates a new storefront Service.
func New(client *api.Client, logger *zap.Logger) *Service {
	return &Service{api: client, logger: logger}
}

// ProductsView is the browse page: the projected collection plus the
// filter sidebar data.
type ProductsView struct {
	Products   []domain.Product
	Total      int
	Categories []domain.Category
	Filter     catalog.Filter
}

// BrowseProducts loads the full catalog and category list in parallel with
// all-or-nothing semantics, then applies the filter projection. Total is
// the collection size before filtering.
func (s *Service) BrowseProducts(ctx context.Context, f catalog.Filter) (*ProductsView, error) {
	var (
		products   []domain.Product
		categories []domain.Category
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.api.Products(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.api.Categories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ProductsView{
		Products:   catalog.Apply(products, f),
		Total:      len(products),
		Categories: categories,
		Filter:     f,
	}, nil
}

// ProductDetailView is the detail page: the product itself plus its
// reviews and the contact number for the buy buttons.
type ProductDetailView struct {
	Product       *domain.Product
	Reviews       []domain.Review
	Summary       catalog.ReviewSummary
	ContactNumber string
}

// BuyNowLink is the purchase deep link for a chosen plan, or empty when no
// contact number is configured.
func (v *ProductDetailView) BuyNowLink(plan domain.Plan) string {
	if v.ContactNumber == "" {
		return ""
	}
	return whatsapp.Link(v.ContactNumber, whatsapp.PurchaseMessage(*v.Product, plan))
}

// InquiryLink is the ask-about-this-product deep link, or empty when no
// contact number is configured.
func (v *ProductDetailView) InquiryLink() string {
	if v.ContactNumber == "" {
		return ""
	}
	return whatsapp.Link(v.ContactNumber, whatsapp.InquiryMessage(*v.Product))
}

// ProductDetail loads the detail page. The product itself is required;
// reviews and the contact number are loaded in parallel and degrade to
// empty on failure rather than failing the page.
func (s *Service) ProductDetail(ctx context.Context, id domain.ID) (*ProductDetailView, error) {
	product, err := s.api.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		reviews []domain.Review
		number  string
		wg      sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		reviews = s.api.ProductReviewsOrEmpty(ctx, id)
	}()
	go func() {
		defer wg.Done()
		number = s.api.WhatsAppNumber(ctx)
	}()
	wg.Wait()

	return &ProductDetailView{
		Product:       product,
		Reviews:       reviews,
		Summary:       catalog.Summarize(reviews),
		ContactNumber: number,
	}, nil
}

// NavView is the navigation chrome: category links and the header contact
// button.
type NavView struct {
	Categories    []domain.Category
	ContactNumber string
}

// NavData loads the navigation data. Categories and the contact number are
// fetched in parallel; they fail independently, and only a category
// failure is fatal since the contact button simply hides when absent.
func (s *Service) NavData(ctx context.Context) (*NavView, error) {
	var (
		categories []domain.Category
		catErr     error
		number     string
		wg         sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		categories, catErr = s.api.Categories(ctx)
	}()
	go func() {
		defer wg.Done()
		number = s.api.WhatsAppNumber(ctx)
	}()
	wg.Wait()

	if catErr != nil {
		return nil, catErr
	}
	return &NavView{Categories: categories, ContactNumber: number}, nil
}

// ReviewsView is the store-wide reviews page.
type ReviewsView struct {
	Reviews []domain.Review
	Summary catalog.ReviewSummary
	Stats   *domain.ReviewStats
}

// Reviews loads every review in the store plus the optional server-side
// aggregates. Stats is nil when the endpoint is unavailable.
func (s *Service) Reviews(ctx context.Context) (*ReviewsView, error) {
	reviews, err := s.api.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	return &ReviewsView{
		Reviews: reviews,
		Summary: catalog.Summarize(reviews),
		Stats:   s.api.ReviewStats(ctx),
	}, nil
}

// Sitemap fetches the full catalog and renders the sitemap XML for the
// given site origin.
func (s *Service) Sitemap(ctx context.Context, siteURL string, now time.Time) ([]byte, error) {
	products, err := s.api.Products(ctx)
	if err != nil {
		return nil, err
	}
	return sitemap.Generate(siteURL, products, now)
}
