package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/oficinaflow/oficina-api/internal/config"
	"github.com/oficinaflow/oficina-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Establishment{},
		&models.User{},
		&models.Client{},
		&models.Vehicle{},
		&models.CatalogItem{},
		&models.ServiceOrder{},
		&models.OrderItem{},
		&models.Request{},
		&models.ChecklistItem{},
		&models.CashSession{},
		&models.Movement{},
		&models.Payment{},
		&models.Notification{},
		&models.Attachment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// no máximo um caixa aberto por estabelecimento; o índice parcial
	// fecha a corrida que a checagem em transação não cobre
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_cash_sessions_one_open
        ON cash_sessions (establishment_id)
        WHERE closed_at IS NULL
    `)

	db.Exec(`
        UPDATE establishments
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
