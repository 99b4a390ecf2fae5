// Package seed loads a small sample catalog for development databases.
package seed

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/kutbudev/storefront-api/internal/models"
)

// Load inserts the sample catalog. It is a no-op when categories already
// exist, so running it against a populated database is safe.
func Load(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{CategoryName: "Shirts"},
		{CategoryName: "Shorts"},
		{CategoryName: "Music"},
		{CategoryName: "Hats"},
		{CategoryName: "Shoes"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	tags := []models.Tag{
		{TagName: "rock music"},
		{TagName: "pop music"},
		{TagName: "blue"},
		{TagName: "red"},
		{TagName: "green"},
		{TagName: "white"},
		{TagName: "gold"},
		{TagName: "pop culture"},
	}
	if err := db.Create(&tags).Error; err != nil {
		return fmt.Errorf("seed tags: %w", err)
	}

	products := []models.Product{
		{ProductName: "Plain T-Shirt", Price: 14.99, Stock: 14, CategoryID: &categories[0].ID},
		{ProductName: "Running Sneakers", Price: 90, Stock: 25, CategoryID: &categories[4].ID},
		{ProductName: "Branded Baseball Hat", Price: 22.99, Stock: 12, CategoryID: &categories[3].ID},
		{ProductName: "Top 40 Music Compilation Vinyl Record", Price: 12.99, Stock: 50, CategoryID: &categories[2].ID},
		{ProductName: "Cargo Shorts", Price: 29.99, Stock: 22, CategoryID: &categories[1].ID},
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	productTags := []models.ProductTag{
		{ProductID: products[0].ID, TagID: tags[5].ID},
		{ProductID: products[0].ID, TagID: tags[6].ID},
		{ProductID: products[1].ID, TagID: tags[7].ID},
		{ProductID: products[2].ID, TagID: tags[1].ID},
		{ProductID: products[2].ID, TagID: tags[2].ID},
		{ProductID: products[2].ID, TagID: tags[3].ID},
		{ProductID: products[3].ID, TagID: tags[0].ID},
		{ProductID: products[3].ID, TagID: tags[7].ID},
		{ProductID: products[4].ID, TagID: tags[2].ID},
	}
	if err := db.Create(&productTags).Error; err != nil {
		return fmt.Errorf("seed product tags: %w", err)
	}

	return nil
}
