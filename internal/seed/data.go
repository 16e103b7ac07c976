package seed

type categorySeed struct {
	Name string
	Slug string
}

type productSeed struct {
	Title        string
	Description  string
	Price        string
	ImageURL     string
	CategorySlug string
}

var categories = []categorySeed{
	{Name: "Electronics", Slug: "electronics"},
	{Name: "Clothing", Slug: "clothing"},
	{Name: "Books", Slug: "books"},
	{Name: "Home & Garden", Slug: "home"},
}

var products = []productSeed{
	{
		Title:        "Wireless Bluetooth Headphones",
		Description:  "High-quality wireless headphones with noise cancellation and 30-hour battery life.",
		Price:        "199.99",
		ImageURL:     "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&h=500&fit=crop",
		CategorySlug: "electronics",
	},
	{
		Title:        "Smartphone Pro Max",
		Description:  "Latest flagship smartphone with advanced camera system and 5G connectivity.",
		Price:        "999.99",
		ImageURL:     "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=500&h=500&fit=crop",
		CategorySlug: "electronics",
	},
	{
		Title:        "Laptop Gaming Beast",
		Description:  "High-performance gaming laptop with RTX graphics and 32GB RAM.",
		Price:        "2499.99",
		ImageURL:     "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=500&h=500&fit=crop",
		CategorySlug: "electronics",
	},
	{
		Title:        "Classic Cotton T-Shirt",
		Description:  "Comfortable 100% cotton t-shirt available in multiple colors.",
		Price:        "29.99",
		ImageURL:     "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500&h=500&fit=crop",
		CategorySlug: "clothing",
	},
	{
		Title:        "Denim Jeans Premium",
		Description:  "Premium quality denim jeans with perfect fit and durability.",
		Price:        "89.99",
		ImageURL:     "https://images.unsplash.com/photo-1542272604-787c3835535d?w=500&h=500&fit=crop",
		CategorySlug: "clothing",
	},
	{
		Title:        "Winter Jacket Warm",
		Description:  "Insulated winter jacket perfect for cold weather conditions.",
		Price:        "159.99",
		ImageURL:     "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=500&h=500&fit=crop",
		CategorySlug: "clothing",
	},
	{
		Title:        "JavaScript: The Good Parts",
		Description:  "Essential guide to JavaScript programming and best practices.",
		Price:        "34.99",
		ImageURL:     "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?w=500&h=500&fit=crop",
		CategorySlug: "books",
	},
	{
		Title:        "Clean Code Handbook",
		Description:  "Learn to write clean, maintainable code with practical examples.",
		Price:        "42.99",
		ImageURL:     "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=500&h=500&fit=crop",
		CategorySlug: "books",
	},
	{
		Title:        "Modern Coffee Maker",
		Description:  "Programmable coffee maker with built-in grinder and thermal carafe.",
		Price:        "299.99",
		ImageURL:     "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=500&h=500&fit=crop",
		CategorySlug: "home",
	},
	{
		Title:        "Smart Home Security Camera",
		Description:  "WiFi-enabled security camera with night vision and mobile app.",
		Price:        "149.99",
		ImageURL:     "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=500&h=500&fit=crop",
		CategorySlug: "home",
	},
}
