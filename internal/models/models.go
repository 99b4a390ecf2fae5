package models

import "time"

// Category groups products in the catalog.
type Category struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CategoryName string    `json:"category_name" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// One-to-Many Relations
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

// Product is a single catalog item. CategoryID is nullable: a product survives
// the deletion of its category and is merely detached from it.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProductName string    `json:"product_name" gorm:"not null"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int       `json:"stock" gorm:"not null;default:10"`
	CategoryID  *uint     `json:"category_id" gorm:"index:idx_products_category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Foreign Key Relations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	// Many-to-Many Relations
	Tags []Tag `json:"tags,omitempty" gorm:"many2many:product_tags"`
}

// Tag labels products across categories.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TagName   string    `json:"tag_name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Many-to-Many Relations
	Products []Product `json:"products,omitempty" gorm:"many2many:product_tags"`
}

// ProductTag is one row of the product/tag join table. Pair uniqueness is
// upheld by the reconciliation in the product handler, not by a constraint.
type ProductTag struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ProductID uint `json:"product_id" gorm:"index:idx_product_tags_product"`
	TagID     uint `json:"tag_id" gorm:"index:idx_product_tags_tag"`
}

// TableName pins the join table shared with the many2many relations.
func (ProductTag) TableName() string {
	return "product_tags"
}
