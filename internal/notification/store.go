package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/oficinaflow/oficina-api/internal/cache"
	"github.com/oficinaflow/oficina-api/internal/models"
)

const unreadCountTTL = 30 * time.Second

// Store persiste notificações e mantém o contador de não lidas no redis.
// O contador é lido por polling do cliente; leitura defasada em até um
// intervalo de poll é aceitável por contrato.
type Store struct {
	db    *gorm.DB
	cache cache.Client
}

func NewStore(db *gorm.DB, c cache.Client) *Store {
	return &Store{db: db, cache: c}
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

func (s *Store) Save(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	n := models.Notification{
		RecipientID: ev.RecipientID,
		Type:        ev.Type,
		Title:       ev.Title,
		Message:     ev.Message,
		Metadata:    metaJSON,
	}

	if err := s.db.Create(&n).Error; err != nil {
		return err
	}

	// cache é melhor esforço: falha não derruba a gravação
	_ = s.cache.Delete(context.Background(), unreadKey(ev.RecipientID))
	return nil
}

func (s *Store) List(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var ns []models.Notification
	err := s.db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ns).Error
	return ns, err
}

func (s *Store) MarkRead(ctx context.Context, userID, notificationID uint) error {
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	_ = s.cache.Delete(ctx, unreadKey(userID))
	return nil
}

// CountUnread serve o contador de polling, cacheado no redis.
func (s *Store) CountUnread(ctx context.Context, userID uint) (int64, error) {
	key := unreadKey(userID)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		if n, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return n, nil
		}
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND read = false", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	_ = s.cache.Set(ctx, key, strconv.FormatInt(count, 10), unreadCountTTL)
	return count, nil
}
