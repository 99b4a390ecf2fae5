package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kutbudev/storefront-api/internal/models"
)

// CategoryHandler serves the /categories resource.
type CategoryHandler struct {
	db  *gorm.DB
	log *log.Logger
}

// NewCategoryHandler creates a category handler bound to the given database.
func NewCategoryHandler(db *gorm.DB, logger *log.Logger) *CategoryHandler {
	return &CategoryHandler{db: db, log: logger}
}

// List returns all categories with their products eagerly attached.
func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	if err := h.db.Preload("Products").Find(&categories).Error; err != nil {
		h.log.Error("list categories", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories."})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Get returns a single category with its products.
func (h *CategoryHandler) Get(c *gin.Context) {
	var category models.Category
	err := h.db.Preload("Products").First(&category, "id = ?", c.Param("id")).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "No category found with that id!"})
	case err != nil:
		h.log.Error("get category", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category."})
	default:
		c.JSON(http.StatusOK, category)
	}
}

// CreateCategoryInput DTO for creating a new category
type CreateCategoryInput struct {
	CategoryName string `json:"category_name" binding:"required"`
}

// Create persists a new category. Malformed payloads surface like any other
// persistence failure on this resource.
func (h *CategoryHandler) Create(c *gin.Context) {
	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create a new category."})
		return
	}

	category := models.Category{CategoryName: input.CategoryName}
	if err := h.db.Create(&category).Error; err != nil {
		h.log.Error("create category", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create a new category."})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategoryInput DTO for updating a category
type UpdateCategoryInput struct {
	CategoryName *string `json:"category_name"`
}

// Update applies field changes by id and returns the re-fetched category.
// Zero affected rows means the category does not exist.
func (h *CategoryHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var input UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category."})
		return
	}

	updates := map[string]interface{}{}
	if input.CategoryName != nil {
		updates["category_name"] = *input.CategoryName
	}
	if len(updates) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found."})
		return
	}

	res := h.db.Model(&models.Category{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		h.log.Error("update category", "err", res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category."})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found."})
		return
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		h.log.Error("update category", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category."})
		return
	}

	c.JSON(http.StatusOK, category)
}

// Delete removes a category. Its products are detached, never deleted: their
// category_id is set to NULL before the category row goes away.
func (h *CategoryHandler) Delete(c *gin.Context) {
	var category models.Category
	err := h.db.First(&category, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found."})
		return
	}
	if err != nil {
		h.log.Error("delete category", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category."})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		h.log.Error("delete category", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully."})
}
