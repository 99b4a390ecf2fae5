package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kutbudev/storefront-api/internal/models"
)

// TagHandler serves the /tags resource.
type TagHandler struct {
	db  *gorm.DB
	log *log.Logger
}

// NewTagHandler creates a tag handler bound to the given database.
func NewTagHandler(db *gorm.DB, logger *log.Logger) *TagHandler {
	return &TagHandler{db: db, log: logger}
}

// List returns all tags with their products eagerly attached.
func (h *TagHandler) List(c *gin.Context) {
	var tags []models.Tag
	if err := h.db.Preload("Products").Find(&tags).Error; err != nil {
		h.log.Error("list tags", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags."})
		return
	}

	c.JSON(http.StatusOK, tags)
}

// Get returns a single tag with its products.
func (h *TagHandler) Get(c *gin.Context) {
	var tag models.Tag
	err := h.db.Preload("Products").First(&tag, "id = ?", c.Param("id")).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "No tag with this id!"})
	case err != nil:
		h.log.Error("get tag", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tag."})
	default:
		c.JSON(http.StatusOK, tag)
	}
}

// CreateTagInput DTO for creating a new tag
type CreateTagInput struct {
	TagName string `json:"tag_name" binding:"required"`
}

// Create persists a new tag. The tag resource answers creates with 200, not
// 201, matching the published API contract.
func (h *TagHandler) Create(c *gin.Context) {
	var input CreateTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't grab what you wanted."})
		return
	}

	tag := models.Tag{TagName: input.TagName}
	if err := h.db.Create(&tag).Error; err != nil {
		h.log.Error("create tag", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't grab what you wanted."})
		return
	}

	c.JSON(http.StatusOK, tag)
}

// UpdateTagInput DTO for updating a tag
type UpdateTagInput struct {
	TagName *string `json:"tag_name"`
}

// Update renames a tag by id. The affected-row count drives the 404 check;
// the updated tag is re-fetched for the response body.
func (h *TagHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var input UpdateTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't grab what you wanted."})
		return
	}

	updates := map[string]interface{}{}
	if input.TagName != nil {
		updates["tag_name"] = *input.TagName
	}
	if len(updates) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No tag with this id!"})
		return
	}

	res := h.db.Model(&models.Tag{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		h.log.Error("update tag", "err", res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't grab what you wanted."})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No tag with this id!"})
		return
	}

	var tag models.Tag
	if err := h.db.First(&tag, "id = ?", id).Error; err != nil {
		h.log.Error("update tag", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't grab what you wanted."})
		return
	}

	c.JSON(http.StatusOK, tag)
}

// Delete removes a tag and its join rows. There is no pre-lookup: the delete's
// own row count decides between 200 and 404.
func (h *TagHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var deleted int64
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.ProductTag{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Tag{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		h.log.Error("delete tag", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't grab what you wanted."})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No tag found with that id!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted."})
}
