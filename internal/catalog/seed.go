package catalog

import "math"

// Seed data is ordered oldest listing first, so the "newest" sort (reverse of
// catalog order) puts the latest additions on top.

var DefaultPriceRanges = []PriceRange{
	{Label: "Under ₹500", Min: 0, Max: 499},
	{Label: "₹500 - ₹999", Min: 500, Max: 999},
	{Label: "₹1,000 - ₹1,999", Min: 1000, Max: 1999},
	{Label: "₹2,000 & Above", Min: 2000, Max: math.MaxInt64},
}

var SeedCategories = []Category{
	{ID: "1", Name: "Skincare", Slug: "skincare", Image: "/images/categories/skincare.jpg", ProductCount: 5},
	{ID: "2", Name: "Makeup", Slug: "makeup", Image: "/images/categories/makeup.jpg", ProductCount: 5},
	{ID: "3", Name: "Haircare", Slug: "haircare", Image: "/images/categories/haircare.jpg", ProductCount: 3},
	{ID: "4", Name: "Fragrance", Slug: "fragrance", Image: "/images/categories/fragrance.jpg", ProductCount: 2},
	{ID: "5", Name: "Bath & Body", Slug: "bath-body", Image: "/images/categories/bath-body.jpg", ProductCount: 2},
}

var SeedProducts = []Product{
	{
		ID: "1", Name: "Vitamin C Brightening Serum", Brand: "Minimalist", Category: "skincare", Subcategory: "serums",
		Price: 599, OriginalPrice: 699, Discount: 14, Rating: 4.5, ReviewCount: 2847,
		Image:       "/images/products/vitamin-c-serum.jpg",
		Images:      []string{"/images/products/vitamin-c-serum.jpg", "/images/products/vitamin-c-serum-2.jpg"},
		Description: "A lightweight 10% vitamin C serum that evens skin tone and fades dark spots.",
		Ingredients: "Ethyl Ascorbic Acid, Acetyl Glucosamine, Hyaluronic Acid",
		InStock:     true, Tags: []string{"brightening", "vegan"}, BestSeller: true,
	},
	{
		ID: "2", Name: "Niacinamide 10% + Zinc 1%", Brand: "The Ordinary", Category: "skincare", Subcategory: "serums",
		Price: 590, Rating: 4.4, ReviewCount: 5123,
		Image:       "/images/products/niacinamide.jpg",
		Description: "High-strength vitamin and mineral formula that reduces the look of blemishes and congestion.",
		Ingredients: "Niacinamide, Zinc PCA",
		InStock:     true, Tags: []string{"oil-control"}, BestSeller: true,
	},
	{
		ID: "3", Name: "Super Stay Matte Ink Liquid Lipstick", Brand: "Maybelline", Category: "makeup", Subcategory: "lips",
		Price: 649, OriginalPrice: 799, Discount: 19, Rating: 4.3, ReviewCount: 3921,
		Image:       "/images/products/matte-ink.jpg",
		Description: "Liquid lipstick with up to 16 hour wear and a saturated matte finish.",
		InStock:     true, Tags: []string{"long-wear"}, Featured: true,
	},
	{
		ID: "4", Name: "Kumkumadi Brightening Face Oil", Brand: "Forest Essentials", Category: "skincare", Subcategory: "face-oils",
		Price: 3475, Rating: 4.7, ReviewCount: 812,
		Image:       "/images/products/kumkumadi.jpg",
		Description: "Ayurvedic night oil with saffron for radiant, even-toned skin.",
		Ingredients: "Saffron, Sandalwood, Vetiver",
		InStock:     true, Tags: []string{"ayurveda", "luxury"}, Featured: true,
	},
	{
		ID: "5", Name: "9 to 5 Primer + Matte Lip Color", Brand: "Lakmé", Category: "makeup", Subcategory: "lips",
		Price: 450, OriginalPrice: 500, Discount: 10, Rating: 4.1, ReviewCount: 2210,
		Image:       "/images/products/lakme-9to5.jpg",
		Description: "Primer-infused matte lipstick that glides on smoothly and stays put.",
		InStock:     true,
	},
	{
		ID: "6", Name: "Onion Hair Oil", Brand: "Mamaearth", Category: "haircare", Subcategory: "hair-oils",
		Price: 399, OriginalPrice: 499, Discount: 20, Rating: 4.2, ReviewCount: 6430,
		Image:       "/images/products/onion-oil.jpg",
		Description: "Onion and redensyl oil that reduces hair fall and supports growth.",
		Ingredients: "Onion Seed Oil, Redensyl, Bhringraj",
		InStock:     true, Tags: []string{"hair-fall"}, BestSeller: true,
	},
	{
		ID: "7", Name: "Fit Me Matte + Poreless Foundation", Brand: "Maybelline", Category: "makeup", Subcategory: "face",
		Price: 549, Rating: 4.4, ReviewCount: 4102,
		Image:       "/images/products/fit-me.jpg",
		Description: "Lightweight foundation that mattifies and refines pores for a natural finish.",
		InStock:     true,
	},
	{
		ID: "8", Name: "Green Tea Pore Cleansing Face Wash", Brand: "Plum", Category: "skincare", Subcategory: "cleansers",
		Price: 345, Rating: 4.3, ReviewCount: 1980,
		Image:       "/images/products/green-tea-facewash.jpg",
		Description: "Gentle gel cleanser with green tea that clears pores without over-drying.",
		Ingredients: "Green Tea Extract, Glycolic Acid",
		InStock:     true, Tags: []string{"vegan", "oily-skin"},
	},
	{
		ID: "9", Name: "Total Repair 5 Shampoo", Brand: "L'Oréal Paris", Category: "haircare", Subcategory: "shampoo",
		Price: 449, OriginalPrice: 529, Discount: 15, Rating: 4.2, ReviewCount: 2765,
		Image:       "/images/products/total-repair.jpg",
		Description: "Repairing shampoo for damaged hair that targets five signs of damage.",
		InStock:     true,
	},
	{
		ID: "10", Name: "Oudh Eau de Parfum", Brand: "Forest Essentials", Category: "fragrance", Subcategory: "perfume",
		Price: 4950, Rating: 4.6, ReviewCount: 264,
		Image:       "/images/products/oudh-edp.jpg",
		Description: "A warm, woody eau de parfum built around rare oudh and rose.",
		InStock:     true, Tags: []string{"luxury"}, Featured: true,
	},
	{
		ID: "11", Name: "Absolute Skin Natural Mousse", Brand: "Lakmé", Category: "makeup", Subcategory: "face",
		Price: 825, OriginalPrice: 950, Discount: 13, Rating: 4.0, ReviewCount: 1432,
		Image:       "/images/products/lakme-mousse.jpg",
		Description: "Air-whipped mousse foundation with a soft matte finish.",
		InStock:     false,
	},
	{
		ID: "12", Name: "Bhringraj Therapeutic Hair Oil", Brand: "Biotique", Category: "haircare", Subcategory: "hair-oils",
		Price: 210, Rating: 4.1, ReviewCount: 3210,
		Image:       "/images/products/bhringraj.jpg",
		Description: "Herbal hair oil that nourishes the scalp and conditions hair.",
		Ingredients: "Bhringraj, Amla, Coconut Oil",
		InStock:     true, Tags: []string{"ayurveda"},
	},
	{
		ID: "13", Name: "Ubtan Body Wash", Brand: "Mamaearth", Category: "bath-body", Subcategory: "body-wash",
		Price: 299, OriginalPrice: 349, Discount: 14, Rating: 4.0, ReviewCount: 980,
		Image:       "/images/products/ubtan-bodywash.jpg",
		Description: "Turmeric and saffron body wash for soft, glowing skin.",
		InStock:     true,
	},
	{
		ID: "14", Name: "Hyaluronic Acid 2% + B5", Brand: "The Ordinary", Category: "skincare", Subcategory: "serums",
		Price: 750, Rating: 4.5, ReviewCount: 3870,
		Image:       "/images/products/hyaluronic.jpg",
		Description: "Hydration support formula with ultra-pure vegan hyaluronic acid.",
		Ingredients: "Sodium Hyaluronate, Panthenol",
		InStock:     true, Tags: []string{"hydrating", "vegan"}, Featured: true,
	},
	{
		ID: "15", Name: "Lash Sensational Sky High Mascara", Brand: "Maybelline", Category: "makeup", Subcategory: "eyes",
		Price: 799, OriginalPrice: 899, Discount: 11, Rating: 4.6, ReviewCount: 2588,
		Image:       "/images/products/sky-high.jpg",
		Description: "Lengthening mascara with a flexible brush for limitless length.",
		InStock:     true, BestSeller: true,
	},
	{
		ID: "16", Name: "Mogra Eau de Parfum", Brand: "Plum", Category: "fragrance", Subcategory: "perfume",
		Price: 1299, Rating: 4.3, ReviewCount: 412,
		Image:       "/images/products/mogra-edp.jpg",
		Description: "A fresh floral perfume with notes of jasmine and white musk.",
		InStock:     true,
	},
	{
		ID: "17", Name: "Shea Butter Body Lotion", Brand: "Biotique", Category: "bath-body", Subcategory: "body-lotion",
		Price: 325, Rating: 4.2, ReviewCount: 1175,
		Image:       "/images/products/shea-lotion.jpg",
		Description: "Rich body lotion with shea butter for lasting moisture.",
		InStock:     true, Tags: []string{"dry-skin"},
	},
}
