package catalog

// Product is one catalog entry. Prices are whole rupees.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory,omitempty"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"originalPrice,omitempty"`
	Discount      int      `json:"discount,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	Image         string   `json:"image"`
	Images        []string `json:"images,omitempty"`
	Description   string   `json:"description"`
	Ingredients   string   `json:"ingredients,omitempty"`
	InStock       bool     `json:"inStock"`
	Tags          []string `json:"tags,omitempty"`
	Featured      bool     `json:"featured,omitempty"`
	BestSeller    bool     `json:"bestSeller,omitempty"`
}

// ListPrice is what the product sold for before any discount.
func (p Product) ListPrice() int64 {
	if p.OriginalPrice > 0 {
		return p.OriginalPrice
	}
	return p.Price
}

// Gallery returns Images, or the single Image when no gallery is set.
func (p Product) Gallery() []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	if p.Image == "" {
		return nil
	}
	return []string{p.Image}
}

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Image        string `json:"image"`
	ProductCount int    `json:"productCount"`
}

// PriceRange bounds are inclusive on both ends.
type PriceRange struct {
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max"`
}

func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}
