package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kutbudev/storefront-api/internal/models"
)

// ProductHandler serves the /products resource, including the tag-association
// reconciliation on update.
type ProductHandler struct {
	db  *gorm.DB
	log *log.Logger
}

// NewProductHandler creates a product handler bound to the given database.
func NewProductHandler(db *gorm.DB, logger *log.Logger) *ProductHandler {
	return &ProductHandler{db: db, log: logger}
}

// List returns all products with category and tags eagerly attached.
func (h *ProductHandler) List(c *gin.Context) {
	var products []models.Product
	if err := h.db.Preload("Category").Preload("Tags").Find(&products).Error; err != nil {
		h.log.Error("list products", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't grab what you wanted."})
		return
	}

	c.JSON(http.StatusOK, products)
}

// Get returns a single product with category and tags.
func (h *ProductHandler) Get(c *gin.Context) {
	var product models.Product
	err := h.db.Preload("Category").Preload("Tags").First(&product, "id = ?", c.Param("id")).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "No product found with that id!"})
	case err != nil:
		h.log.Error("get product", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product."})
	default:
		c.JSON(http.StatusOK, product)
	}
}

// CreateProductInput DTO for creating a new product. An absent tagIds list is
// treated as empty.
type CreateProductInput struct {
	ProductName string  `json:"product_name" binding:"required"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  *uint   `json:"category_id"`
	TagIDs      []uint  `json:"tagIds"`
}

// Create persists a product and one join row per supplied tag id, then
// returns the product with its tags attached. Any failure maps to 400.
func (h *ProductHandler) Create(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		ProductName: input.ProductName,
		Price:       input.Price,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		rows := productTagRows(product.ID, input.TagIDs)
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		h.log.Error("create product", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create product."})
		return
	}

	if err := h.db.Preload("Tags").First(&product, product.ID).Error; err != nil {
		h.log.Error("create product", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create product."})
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProductInput DTO for updating a product. A nil TagIDs pointer means
// the tag associations are left untouched; a present (possibly empty) list is
// reconciled against the stored set.
type UpdateProductInput struct {
	ProductName *string  `json:"product_name"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CategoryID  *uint    `json:"category_id"`
	TagIDs      *[]uint  `json:"tagIds"`
}

// Update applies scalar field changes and reconciles the product's tag set:
// join rows for tags no longer wanted are deleted and rows for newly wanted
// tags are bulk-inserted, leaving correct associations alone. Running the same
// update twice computes empty diffs the second time. All failures map to 400,
// including an unknown product id.
func (h *ProductHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.ProductName != nil {
		updates["product_name"] = *input.ProductName
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.Stock != nil {
		updates["stock"] = *input.Stock
	}
	if input.CategoryID != nil {
		updates["category_id"] = *input.CategoryID
	}

	var product models.Product
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}
		if input.TagIDs == nil {
			return nil
		}

		var existing []models.ProductTag
		if err := tx.Where("product_id = ?", product.ID).Find(&existing).Error; err != nil {
			return err
		}

		toAdd, toRemove := diffProductTags(existing, *input.TagIDs)
		if len(toRemove) > 0 {
			if err := tx.Where("id IN ?", toRemove).Delete(&models.ProductTag{}).Error; err != nil {
				return err
			}
		}
		if len(toAdd) > 0 {
			rows := productTagRows(product.ID, toAdd)
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		h.log.Error("update product", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update product."})
		return
	}

	if err := h.db.Preload("Tags").First(&product, product.ID).Error; err != nil {
		h.log.Error("update product", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update product."})
		return
	}

	c.JSON(http.StatusOK, product)
}

// Delete removes a product and every join row referencing it, the join rows
// first so no dangling references survive.
func (h *ProductHandler) Delete(c *gin.Context) {
	var product models.Product
	err := h.db.First(&product, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "No product found with that id!"})
		return
	}
	if err != nil {
		h.log.Error("delete product", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product."})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		h.log.Error("delete product", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted."})
}

// diffProductTags computes the minimal change set turning the stored
// association rows into the desired tag id set. toAdd holds tag ids that need
// a new join row, toRemove holds join-row ids whose tag is no longer desired.
// Duplicate ids in desired collapse to one.
func diffProductTags(existing []models.ProductTag, desired []uint) (toAdd, toRemove []uint) {
	current := make(map[uint]bool, len(existing))
	for _, row := range existing {
		current[row.TagID] = true
	}

	wanted := make(map[uint]bool, len(desired))
	for _, tagID := range desired {
		if wanted[tagID] {
			continue
		}
		wanted[tagID] = true
		if !current[tagID] {
			toAdd = append(toAdd, tagID)
		}
	}

	for _, row := range existing {
		if !wanted[row.TagID] {
			toRemove = append(toRemove, row.ID)
		}
	}
	return toAdd, toRemove
}

// productTagRows builds one join row per distinct tag id.
func productTagRows(productID uint, tagIDs []uint) []models.ProductTag {
	seen := make(map[uint]bool, len(tagIDs))
	rows := make([]models.ProductTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		if seen[tagID] {
			continue
		}
		seen[tagID] = true
		rows = append(rows, models.ProductTag{ProductID: productID, TagID: tagID})
	}
	return rows
}
