package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/images"
	"github.com/oficinaflow/oficina-api/internal/middleware"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/storage"
)

const maxPhotoSize = 10 << 20 // 10MB

// AttachmentHandler recebe fotos de entrada do veículo, converte para
// webp e envia ao S3.
type AttachmentHandler struct {
	db       *gorm.DB
	uploader storage.Uploader
}

func NewAttachmentHandler(db *gorm.DB, uploader storage.Uploader) *AttachmentHandler {
	return &AttachmentHandler{db: db, uploader: uploader}
}

func (h *AttachmentHandler) Upload(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := orderID(c)
	if !ok {
		return
	}

	var o models.ServiceOrder
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&o).Error; err != nil {

		httperr.NotFound(c, "order_not_found", "OS não encontrada.")
		return
	}

	if err := order.CanMutateContents(order.Status(o.Status)); err != nil {
		httperr.From(c, err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Envie o arquivo no campo photo.")
		return
	}

	if fileHeader.Size > maxPhotoSize {
		httperr.BadRequest(c, "photo_too_large", "A foto não pode passar de 10MB.")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		httperr.BadRequest(c, "invalid_photo", "O arquivo precisa ser uma imagem.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Não foi possível ler o arquivo.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Não foi possível ler o arquivo.")
		return
	}

	webpData, err := images.ToWebp(data)
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Formato de imagem não suportado.")
		return
	}

	key := fmt.Sprintf("orders/%d/%s.webp", o.ID, uuid.NewString())

	url, err := h.uploader.Upload(c.Request.Context(), key, "image/webp", webpData)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_photo", "Não foi possível enviar a foto.")
		return
	}

	attachment := models.Attachment{
		ServiceOrderID: o.ID,
		Key:            key,
		ContentType:    "image/webp",
		URL:            url,
		UploadedByID:   userID,
	}

	if err := h.db.Create(&attachment).Error; err != nil {
		httperr.Internal(c, "failed_to_save_attachment", "Não foi possível registrar a foto.")
		return
	}

	c.JSON(http.StatusCreated, attachment)
}

func (h *AttachmentHandler) List(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	id, ok := orderID(c)
	if !ok {
		return
	}

	var o models.ServiceOrder
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&o).Error; err != nil {

		httperr.NotFound(c, "order_not_found", "OS não encontrada.")
		return
	}

	var attachments []models.Attachment
	if err := h.db.
		Where("service_order_id = ?", o.ID).
		Order("created_at DESC").
		Find(&attachments).Error; err != nil {

		httperr.Internal(c, "failed_to_list_attachments", "Não foi possível listar as fotos.")
		return
	}

	c.JSON(http.StatusOK, attachments)
}
