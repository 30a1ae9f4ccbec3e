package catalog

import "time"

// seedProducts is the first-run demo data, returned for a category
// whose key has never been written. Only fashion ships seeds.
func seedProducts(category Category) []Product {
	if category != CategoryFashion {
		return nil
	}

	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return []Product{
		{
			ID:          "1",
			Category:    CategoryFashion,
			Name:        "Classic Cotton T-Shirt",
			Price:       299,
			Description: "Premium quality 100% cotton T-shirt, comfortable and breathable.",
			Stock:       50,
			Status:      StatusActive,
			Image:       "../assets/images/tshirt1.jpg",
			Fashion: &FashionAttrs{
				Sizes:    "S,M,L,XL,XXL",
				Colors:   "White,Black,Navy Blue,Gray",
				Material: "100% Cotton",
				Type:     "Basic T-Shirt",
			},
			CreatedAt: created,
		},
		{
			ID:          "2",
			Category:    CategoryFashion,
			Name:        "Printed Graphic T-Shirt",
			Price:       399,
			Description: "Trendy printed T-shirt with unique graphic design.",
			Stock:       30,
			Status:      StatusActive,
			Image:       "../assets/images/tshirt2.jpg",
			Fashion: &FashionAttrs{
				Sizes:    "S,M,L,XL,XXL",
				Colors:   "White,Black,Red,Blue",
				Material: "Cotton Blend",
				Type:     "Printed T-Shirt",
			},
			CreatedAt: created,
		},
		{
			ID:          "3",
			Category:    CategoryFashion,
			Name:        "Premium Polo T-Shirt",
			Price:       599,
			Description: "High-quality polo T-shirt perfect for casual and semi-formal wear.",
			Stock:       25,
			Status:      StatusActive,
			Image:       "../assets/images/tshirt3.jpg",
			Fashion: &FashionAttrs{
				Sizes:    "S,M,L,XL,XXL",
				Colors:   "White,Black,Navy Blue,Maroon",
				Material: "Pique Cotton",
				Type:     "Polo T-Shirt",
			},
			CreatedAt: created,
		},
	}
}
