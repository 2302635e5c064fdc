package catalog

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
)

type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortRating     SortKey = "rating"
	// SortNewest reverses catalog order. The catalog has no listing date, so
	// this is only as good as the order products were loaded in.
	SortNewest SortKey = "newest"
)

var SortKeys = []SortKey{SortPopularity, SortPriceLow, SortPriceHigh, SortRating, SortNewest}

// Query selects a view of the catalog. Zero values mean "no filter" for each
// dimension; dimensions combine with AND, values inside one dimension with OR.
type Query struct {
	Category    string
	Search      string
	Brands      []string
	PriceRanges []int
	Sort        SortKey
}

// ActiveFilters counts the selections a shopper could clear.
func (q Query) ActiveFilters() int {
	n := len(q.Brands) + len(q.PriceRanges)
	if q.Category != "" {
		n++
	}
	if q.Search != "" {
		n++
	}
	return n
}

// ParseQuery reads category, search, brand (repeatable), price (repeatable
// range index) and sort from URL parameters.
func ParseQuery(v url.Values) (Query, error) {
	q := Query{
		Category: strings.TrimSpace(v.Get("category")),
		Search:   strings.TrimSpace(v.Get("search")),
		Sort:     SortKey(v.Get("sort")),
	}

	for _, b := range v["brand"] {
		if b = strings.TrimSpace(b); b != "" && !slices.Contains(q.Brands, b) {
			q.Brands = append(q.Brands, b)
		}
	}

	for _, raw := range v["price"] {
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Query{}, fmt.Errorf("price range %q: %w", raw, err)
		}
		if !slices.Contains(q.PriceRanges, idx) {
			q.PriceRanges = append(q.PriceRanges, idx)
		}
	}

	return q, nil
}

// Apply filters and sorts products. The input slice is left untouched.
func Apply(products []Product, ranges []PriceRange, q Query) []Product {
	needle := strings.ToLower(q.Search)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if needle != "" && !matchesText(p, needle) {
			continue
		}
		if len(q.Brands) > 0 && !slices.Contains(q.Brands, p.Brand) {
			continue
		}
		if len(q.PriceRanges) > 0 && !inAnyRange(p.Price, ranges, q.PriceRanges) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, q.Sort)
	return out
}

func matchesText(p Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Brand), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

// Indices outside ranges match nothing.
func inAnyRange(price int64, ranges []PriceRange, selected []int) bool {
	for _, idx := range selected {
		if idx < 0 || idx >= len(ranges) {
			continue
		}
		if ranges[idx].Contains(price) {
			return true
		}
	}
	return false
}

func sortProducts(ps []Product, key SortKey) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price < ps[j].Price })
	case SortPriceHigh:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price > ps[j].Price })
	case SortRating:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Rating > ps[j].Rating })
	case SortNewest:
		slices.Reverse(ps)
	default:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].ReviewCount > ps[j].ReviewCount })
	}
}

// Related returns up to limit products sharing p's category, in catalog order.
func Related(products []Product, p Product, limit int) []Product {
	out := make([]Product, 0, limit)
	for _, c := range products {
		if len(out) >= limit {
			break
		}
		if c.Category == p.Category && c.ID != p.ID {
			out = append(out, c)
		}
	}
	return out
}

// Trending returns up to limit best sellers or featured products.
func Trending(products []Product, limit int) []Product {
	out := make([]Product, 0, limit)
	for _, p := range products {
		if len(out) >= limit {
			break
		}
		if p.BestSeller || p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Brands lists distinct brands in the order they first appear.
func Brands(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Brand]; ok || p.Brand == "" {
			continue
		}
		seen[p.Brand] = struct{}{}
		out = append(out, p.Brand)
	}
	return out
}
