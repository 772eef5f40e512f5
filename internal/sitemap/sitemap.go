// Package sitemap renders the storefront's XML sitemap: the static routes
// plus one entry per catalog product.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"time"

	"bunny-store/internal/domain"
)

// URL is a single sitemap entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

var staticRoutes = []struct {
	path       string
	changeFreq string
	priority   string
}{
	{"", "daily", "1.0"},
	{"/products", "daily", "0.9"},
	{"/about", "monthly", "0.8"},
	{"/contact", "monthly", "0.8"},
	{"/solutions", "monthly", "0.8"},
	{"/reviews", "weekly", "0.7"},
	{"/refund-policy", "yearly", "0.5"},
}

// Generate renders the sitemap for the given site origin and product
// collection. Output is deterministic for fixed inputs; now only supplies
// the lastmod date.
func Generate(siteURL string, products []domain.Product, now time.Time) ([]byte, error) {
	date := now.UTC().Format("2006-01-02")

	set := urlSet{Xmlns: "http://www.sitemap.org/schemas/sitemap/0.9"}
	for _, route := range staticRoutes {
		set.URLs = append(set.URLs, URL{
			Loc:        siteURL + route.path,
			LastMod:    date,
			ChangeFreq: route.changeFreq,
			Priority:   route.priority,
		})
	}
	for _, p := range products {
		set.URLs = append(set.URLs, URL{
			Loc:        fmt.Sprintf("%s/product/%s", siteURL, p.ID),
			LastMod:    date,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
