package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bunny-store/internal/api"
	"bunny-store/internal/catalog"
	"bunny-store/internal/config"
	"bunny-store/internal/domain"
	"bunny-store/internal/logger"
	"bunny-store/internal/storefront"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const usage = `Usage: storefront <command> [flags]

Commands:
  products    browse the catalog (filter and sort flags)
  product     show one product with its plans and reviews
  categories  list categories
  reviews     list reviews, optionally for one product
  stats       show store-wide review statistics
  sitemap     generate the sitemap XML
`

func main() {
	// A local .env is a convenience, not a requirement.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingBaseURL) {
			fmt.Fprintln(os.Stderr, "storefront: API_BASE_URL must be set (e.g. https://api.bunnytools.store)")
		} else {
			fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		}
		os.Exit(1)
	}

	log, err := logger.New(cfg.App.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "storefront: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	client := api.New(cfg.API, log)
	svc := storefront.New(client, log)

	// Navigating away mid-fetch in the web app left requests running to
	// completion; here an interrupt cancels every in-flight call.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "products":
		err = runProducts(ctx, svc, os.Args[2:])
	case "product":
		err = runProduct(ctx, svc, os.Args[2:])
	case "categories":
		err = runCategories(ctx, svc)
	case "reviews":
		err = runReviews(ctx, svc, client, os.Args[2:])
	case "stats":
		err = runStats(ctx, client)
	case "sitemap":
		err = runSitemap(ctx, svc, cfg.Site.BaseURL, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Error("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\nPlease try again.\n", err)
		os.Exit(1)
	}
}

func runProducts(ctx context.Context, svc *storefront.Service, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	f := catalog.DefaultFilter()
	fs.StringVar(&f.Category, "category", "", "category id to filter by")
	fs.Float64Var(&f.MinPrice, "min", 0, "minimum price")
	fs.Float64Var(&f.MaxPrice, "max", catalog.DefaultMaxPrice, "maximum price")
	fs.StringVar(&f.Query, "q", "", "search title and description")
	sortMode := fs.String("sort", string(catalog.SortDefault), "default | price-low | price-high | name | newest")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f.Sort = catalog.SortMode(*sortMode)

	view, err := svc.BrowseProducts(ctx, f)
	if err != nil {
		return err
	}

	fmt.Printf("Showing %d of %d products\n\n", len(view.Products), view.Total)
	for _, p := range view.Products {
		fmt.Printf("%-6s %-30s %s\n", p.ID, p.Title, priceLabel(&p))
	}
	return nil
}

func runProduct(ctx context.Context, svc *storefront.Service, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: storefront product <id>")
	}

	view, err := svc.ProductDetail(ctx, domain.ID(args[0]))
	if err != nil {
		return err
	}

	p := view.Product
	fmt.Printf("%s\n%s\n\nPrice: %s", p.Title, p.Description, priceLabel(p))
	if p.Discounted() {
		fmt.Printf(" (was Rs. %.0f, -%.0f%%)", *p.OriginalPrice, p.DiscountPercentage)
	}
	fmt.Println()

	if len(p.Plans) > 0 {
		fmt.Println("\nPlans:")
		for _, plan := range p.Plans {
			fmt.Printf("  %-20s Rs. %.0f / %s\n", plan.Title, plan.Price, plan.DurationLabel())
			if link := view.BuyNowLink(plan); link != "" {
				fmt.Printf("    buy: %s\n", link)
			}
		}
	}

	if view.Summary.Total > 0 {
		fmt.Printf("\nRating: %.1f from %d reviews\n", view.Summary.Average, view.Summary.Total)
		for _, r := range view.Reviews {
			fmt.Printf("  [%d/5] %s — %s\n", r.Rating, r.Comment, r.CustomerName)
		}
	}
	return nil
}

func runCategories(ctx context.Context, svc *storefront.Service) error {
	view, err := svc.NavData(ctx)
	if err != nil {
		return err
	}
	for _, c := range view.Categories {
		if c.ProductCount != nil {
			fmt.Printf("%-6s %-30s %d products\n", c.ID, c.Name, *c.ProductCount)
		} else {
			fmt.Printf("%-6s %s\n", c.ID, c.Name)
		}
	}
	return nil
}

func runReviews(ctx context.Context, svc *storefront.Service, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("reviews", flag.ExitOnError)
	productID := fs.String("product", "", "only reviews for this product id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		reviews []domain.Review
		err     error
	)
	if *productID != "" {
		reviews, err = client.ProductReviews(ctx, domain.ID(*productID))
	} else {
		var view *storefront.ReviewsView
		view, err = svc.Reviews(ctx)
		if view != nil {
			reviews = view.Reviews
		}
	}
	if err != nil {
		return err
	}

	for _, r := range reviews {
		verified := ""
		if r.Verified {
			verified = " (verified)"
		}
		fmt.Printf("[%d/5] %s — %s%s\n", r.Rating, r.Comment, r.CustomerName, verified)
	}
	return nil
}

func runStats(ctx context.Context, client *api.Client) error {
	stats := client.ReviewStats(ctx)
	if stats == nil {
		fmt.Println("Review statistics are not available right now.")
		return nil
	}
	fmt.Printf("Average rating %.1f across %d reviews\n", stats.AverageRating, stats.TotalReviews)
	fmt.Printf("  5★ %d  4★ %d  3★ %d  2★ %d  1★ %d\n",
		stats.FiveStar, stats.FourStar, stats.ThreeStar, stats.TwoStar, stats.OneStar)
	return nil
}

func runSitemap(ctx context.Context, svc *storefront.Service, siteURL string, args []string) error {
	fs := flag.NewFlagSet("sitemap", flag.ExitOnError)
	out := fs.String("o", "", "write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	xml, err := svc.Sitemap(ctx, siteURL, time.Now())
	if err != nil {
		return err
	}
	if *out == "" {
		fmt.Println(string(xml))
		return nil
	}
	return os.WriteFile(*out, xml, 0o644)
}

func priceLabel(p *domain.Product) string {
	if p.Price == nil {
		return "Contact for price"
	}
	return fmt.Sprintf("Rs. %.0f", *p.Price)
}
