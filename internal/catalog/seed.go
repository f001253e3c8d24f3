package catalog

import (
	"time"

	"pos-service/internal/models"
)

// NewSeededStore creates a catalog store preloaded with the demo menu.
func NewSeededStore() *Store {
	s := NewStore()

	for _, c := range seedCategories() {
		_ = s.AddCategory(c)
	}
	// AddProduct prepends, so walk the seed list backwards to keep its order.
	products := seedProducts()
	for i := len(products) - 1; i >= 0; i-- {
		_ = s.AddProduct(products[i])
	}
	return s
}

func seedCategories() []models.Category {
	return []models.Category{
		{ID: "cat-food", Name: "Makanan"},
		{ID: "cat-drink", Name: "Minuman"},
		{ID: "cat-coffee", Name: "Kopi", ParentID: "cat-drink"},
		{ID: "cat-snack", Name: "Snack"},
		{ID: "cat-dessert", Name: "Dessert"},
	}
}

func seedProducts() []models.Product {
	day := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}

	return []models.Product{
		{
			ID: "1", Name: "Nasi Goreng Spesial", Price: 25000, Category: "cat-food",
			ImageURL: "https://picsum.photos/id/225/300/300", Stock: 30,
			CreatedAt: day("2024-01-15T08:00:00Z"),
		},
		{
			ID: "2", Name: "Mie Ayam Bakso", Price: 20000, Category: "cat-food",
			ImageURL: "https://picsum.photos/id/292/300/300", Stock: 25,
			CreatedAt: day("2024-01-16T09:30:00Z"),
		},
		{
			ID: "3", Name: "Es Kopi Susu Gula Aren", Price: 18000, Category: "cat-coffee",
			ImageURL:  "https://picsum.photos/id/425/300/300",
			CreatedAt: day("2024-02-01T10:00:00Z"),
			Variants: []models.Variant{
				{Name: "Regular", Price: 18000, Stock: 40},
				{Name: "Large", Price: 22000, Stock: 25},
			},
		},
		{
			ID: "4", Name: "Teh Manis Dingin", Price: 8000, Category: "cat-drink",
			ImageURL: "https://picsum.photos/id/439/300/300", Stock: 60,
			CreatedAt: day("2024-02-02T11:15:00Z"),
		},
		{
			ID: "5", Name: "Pisang Bakar Keju", Price: 15000, Category: "cat-snack",
			ImageURL: "https://picsum.photos/id/102/300/300", Stock: 20,
			CreatedAt: day("2024-02-10T14:00:00Z"),
		},
		{
			ID: "6", Name: "Kentang Goreng", Price: 12000, Category: "cat-snack",
			ImageURL:  "https://picsum.photos/id/486/300/300",
			CreatedAt: day("2024-02-12T15:30:00Z"),
			Variants: []models.Variant{
				{Name: "Original", Price: 12000, Stock: 35},
				{Name: "Pedas", Price: 14000, Stock: 30},
			},
		},
		{
			ID: "7", Name: "Sate Ayam Madura", Price: 30000, Category: "cat-food",
			ImageURL: "https://picsum.photos/id/493/300/300", Stock: 15,
			CreatedAt: day("2024-03-01T17:00:00Z"),
		},
		{
			ID: "8", Name: "Jus Alpukat", Price: 15000, Category: "cat-drink",
			ImageURL: "https://picsum.photos/id/1080/300/300", Stock: 20,
			CreatedAt: day("2024-03-05T12:00:00Z"),
		},
		{
			ID: "9", Name: "Brownies Coklat", Price: 10000, Category: "cat-dessert",
			ImageURL: "https://picsum.photos/id/299/300/300", Stock: 18,
			CreatedAt: day("2024-03-10T13:45:00Z"),
		},
	}
}
