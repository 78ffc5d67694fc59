package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaflow/oficina-api/internal/httpresp"
	"github.com/oficinaflow/oficina-api/internal/middleware"
	"github.com/oficinaflow/oficina-api/internal/models"
)

type VehicleHandler struct {
	db *gorm.DB
}

func NewVehicleHandler(db *gorm.DB) *VehicleHandler {
	return &VehicleHandler{db: db}
}

// ======================================================
// LIST VEHICLES
// ======================================================
// Filtros: client_id e plate (busca parcial, caixa alta).
func (h *VehicleHandler) List(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	q := h.db.Where("establishment_id = ?", establishmentID)

	if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}

	if plate := strings.ToUpper(strings.TrimSpace(c.Query("plate"))); plate != "" {
		q = q.Where("plate LIKE ?", "%"+plate+"%")
	}

	var vehicles []models.Vehicle
	if err := q.
		Preload("Client").
		Order("created_at DESC").
		Find(&vehicles).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_vehicles"})
		return
	}

	httpresp.List(c, vehicles)
}

type CreateVehicleRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Plate    string `json:"plate" binding:"required"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Color    string `json:"color"`
}

func (h *VehicleHandler) Create(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND establishment_id = ?", req.ClientID, establishmentID).
		First(&client).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
		return
	}

	vehicle := models.Vehicle{
		EstablishmentID: establishmentID,
		ClientID:        req.ClientID,
		Plate:           strings.ToUpper(strings.TrimSpace(req.Plate)),
		Brand:           strings.TrimSpace(req.Brand),
		Model:           strings.TrimSpace(req.Model),
		Year:            req.Year,
		Color:           strings.TrimSpace(req.Color),
	}

	if err := h.db.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_vehicle"})
		return
	}

	httpresp.Created(c, vehicle)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	vehicleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_vehicle_id"})
		return
	}

	var vehicle models.Vehicle
	if err := h.db.
		Where("id = ? AND establishment_id = ?", vehicleID, establishmentID).
		First(&vehicle).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle_not_found"})
		return
	}

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	vehicle.ClientID = req.ClientID
	vehicle.Plate = strings.ToUpper(strings.TrimSpace(req.Plate))
	vehicle.Brand = strings.TrimSpace(req.Brand)
	vehicle.Model = strings.TrimSpace(req.Model)
	vehicle.Year = req.Year
	vehicle.Color = strings.TrimSpace(req.Color)

	if err := h.db.Save(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_vehicle"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}
