package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/oficinaflow/oficina-api/internal/httpresp"
	"github.com/oficinaflow/oficina-api/internal/middleware"
	"github.com/oficinaflow/oficina-api/internal/models"
)

type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ======================================================
// LIST CATALOG
// ======================================================
func (h *CatalogHandler) List(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	q := h.db.Where("establishment_id = ?", establishmentID)

	if kind := c.Query("kind"); kind != "" {
		q = q.Where("kind = ?", kind)
	}

	// por padrão só itens ativos; ?all=true inclui desativados
	if c.Query("all") != "true" {
		q = q.Where("active = ?", true)
	}

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+query+"%")
	}

	var items []models.CatalogItem
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_catalog"})
		return
	}

	httpresp.List(c, items)
}

type CatalogItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Kind        string          `json:"kind" binding:"required"`
	Price       decimal.Decimal `json:"price"`
}

func (h *CatalogHandler) Create(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.Kind != models.CatalogKindProduct && req.Kind != models.CatalogKindService {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_kind"})
		return
	}

	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_price"})
		return
	}

	item := models.CatalogItem{
		EstablishmentID: establishmentID,
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		Kind:            req.Kind,
		Price:           req.Price,
		Active:          true,
	}

	if err := h.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_catalog_item"})
		return
	}

	httpresp.Created(c, item)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_item_id"})
		return
	}

	var item models.CatalogItem
	if err := h.db.
		Where("id = ? AND establishment_id = ?", itemID, establishmentID).
		First(&item).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "catalog_item_not_found"})
		return
	}

	var req CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_price"})
		return
	}

	// kind é imutável: trocar produto por serviço quebraria o histórico
	item.Name = strings.TrimSpace(req.Name)
	item.Description = strings.TrimSpace(req.Description)
	item.Price = req.Price

	if err := h.db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_catalog_item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Deactivate esconde o item de novas OS sem apagar o histórico.
func (h *CatalogHandler) Deactivate(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_item_id"})
		return
	}

	result := h.db.Model(&models.CatalogItem{}).
		Where("id = ? AND establishment_id = ?", itemID, establishmentID).
		Update("active", false)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_deactivate_catalog_item"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "catalog_item_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item desativado."})
}
