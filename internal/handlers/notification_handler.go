package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/middleware"
	"github.com/oficinaflow/oficina-api/internal/notification"
)

// NotificationHandler serve o polling do front: lista, contador de não
// lidas (cacheado) e marcação de leitura.
type NotificationHandler struct {
	store *notification.Store
}

func NewNotificationHandler(store *notification.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}

	notifications, err := h.store.List(c.Request.Context(), userID, limit)
	if err != nil {
		httperr.Internal(c, "failed_to_list_notifications", "Não foi possível listar as notificações.")
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	count, err := h.store.CountUnread(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_count_notifications", "Não foi possível contar as notificações.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_notification_id", "Identificador de notificação inválido.")
		return
	}

	if err := h.store.MarkRead(c.Request.Context(), userID, uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_mark_notification", "Não foi possível marcar a notificação.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notificação lida."})
}
