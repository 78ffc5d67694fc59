package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/models"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// InTx executa fn com um repositório amarrado à transação.
// Falha em qualquer passo desfaz tudo: nenhum comando aplica parcial.
func (r *OrderGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&OrderGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *OrderGormRepository) GetEstablishmentByID(
	ctx context.Context,
	id uint,
) (*models.Establishment, error) {

	var est models.Establishment
	if err := r.db.WithContext(ctx).First(&est, id).Error; err != nil {
		return nil, err
	}
	return &est, nil
}

func (r *OrderGormRepository) GetUser(
	ctx context.Context,
	establishmentID uint,
	userID uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", userID, establishmentID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *OrderGormRepository) GetClient(
	ctx context.Context,
	establishmentID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", clientID, establishmentID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *OrderGormRepository) GetVehicle(
	ctx context.Context,
	establishmentID uint,
	vehicleID uint,
) (*models.Vehicle, error) {

	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", vehicleID, establishmentID).
		First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *OrderGormRepository) GetCatalogItem(
	ctx context.Context,
	establishmentID uint,
	itemID uint,
) (*models.CatalogItem, error) {

	var item models.CatalogItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ? AND active = true", itemID, establishmentID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// --------------------------------------------------
// Service Order
// --------------------------------------------------

func (r *OrderGormRepository) CreateOrder(
	ctx context.Context,
	o *models.ServiceOrder,
) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderGormRepository) GetOrder(
	ctx context.Context,
	establishmentID uint,
	orderID uint,
) (*models.ServiceOrder, error) {

	var o models.ServiceOrder
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Vehicle").
		Preload("Responsible").
		Where("id = ? AND establishment_id = ?", orderID, establishmentID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderForUpdate trava a linha da OS (FOR UPDATE) para serializar
// read-modify-write concorrente no mesmo agregado.
func (r *OrderGormRepository) GetOrderForUpdate(
	ctx context.Context,
	establishmentID uint,
	orderID uint,
) (*models.ServiceOrder, error) {

	var o models.ServiceOrder
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND establishment_id = ?", orderID, establishmentID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) UpdateOrder(
	ctx context.Context,
	o *models.ServiceOrder,
) error {
	return r.db.WithContext(ctx).Save(o).Error
}

// DeleteOrderCascade apaga a OS e tudo que pende dela.
// Chamado sempre dentro de InTx.
func (r *OrderGormRepository) DeleteOrderCascade(
	ctx context.Context,
	orderID uint,
) error {

	db := r.db.WithContext(ctx)

	if err := db.Where("service_order_id = ?", orderID).
		Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("service_order_id = ?", orderID).
		Delete(&models.Request{}).Error; err != nil {
		return err
	}
	if err := db.Where("service_order_id = ?", orderID).
		Delete(&models.ChecklistItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("service_order_id = ?", orderID).
		Delete(&models.Attachment{}).Error; err != nil {
		return err
	}

	return db.Delete(&models.ServiceOrder{}, orderID).Error
}

func (r *OrderGormRepository) ListOrders(
	ctx context.Context,
	establishmentID uint,
	status string,
) ([]models.ServiceOrder, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Vehicle").
		Preload("Responsible").
		Where("establishment_id = ?", establishmentID)

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.ServiceOrder
	if err := q.Order("opened_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// --------------------------------------------------
// Items
// --------------------------------------------------

func (r *OrderGormRepository) CreateItem(
	ctx context.Context,
	item *models.OrderItem,
) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *OrderGormRepository) UpdateItem(
	ctx context.Context,
	item *models.OrderItem,
) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *OrderGormRepository) DeleteItem(
	ctx context.Context,
	itemID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.OrderItem{}, itemID).Error
}

func (r *OrderGormRepository) GetItem(
	ctx context.Context,
	orderID uint,
	lineID uint,
) (*models.OrderItem, error) {

	var item models.OrderItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND service_order_id = ?", lineID, orderID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *OrderGormRepository) GetItemByCatalog(
	ctx context.Context,
	orderID uint,
	catalogItemID uint,
) (*models.OrderItem, error) {

	var item models.OrderItem
	if err := r.db.WithContext(ctx).
		Where("service_order_id = ? AND catalog_item_id = ?", orderID, catalogItemID).
		Order("id ASC").
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems é a visão deduplicada da OS: no máximo uma linha por item
// de catálogo, quantidade e total somados no banco. Linhas duplicadas
// criadas em momentos distintos colapsam aqui, não em cada consumidor.
func (r *OrderGormRepository) ListItems(
	ctx context.Context,
	orderID uint,
) ([]models.OrderItem, error) {

	var items []models.OrderItem
	err := r.db.WithContext(ctx).Raw(`
        SELECT MIN(id)          AS id,
               service_order_id,
               catalog_item_id,
               MIN(kind)        AS kind,
               SUM(quantity)    AS quantity,
               MAX(unit_price)  AS unit_price,
               SUM(total)       AS total
        FROM order_items
        WHERE service_order_id = ?
        GROUP BY service_order_id, catalog_item_id
        ORDER BY MIN(id) ASC
    `, orderID).Scan(&items).Error

	if err != nil {
		return nil, err
	}
	return items, nil
}

// Subtotal é determinístico e independente de ordem: soma direta no banco.
func (r *OrderGormRepository) Subtotal(
	ctx context.Context,
	orderID uint,
) (decimal.Decimal, error) {

	var subtotal decimal.Decimal
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(total), 0) FROM order_items WHERE service_order_id = ?`, orderID).
		Row().
		Scan(&subtotal)

	if err != nil {
		return decimal.Zero, err
	}
	return subtotal, nil
}

// --------------------------------------------------
// Requests
// --------------------------------------------------

func (r *OrderGormRepository) CreateRequest(
	ctx context.Context,
	req *models.Request,
) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *OrderGormRepository) GetRequest(
	ctx context.Context,
	orderID uint,
	requestID uint,
) (*models.Request, error) {

	var req models.Request
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Where("id = ? AND service_order_id = ?", requestID, orderID).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *OrderGormRepository) UpdateRequest(
	ctx context.Context,
	req *models.Request,
) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *OrderGormRepository) DeleteRequest(
	ctx context.Context,
	requestID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Request{}, requestID).Error
}

func (r *OrderGormRepository) ListRequests(
	ctx context.Context,
	orderID uint,
) ([]models.Request, error) {

	var reqs []models.Request
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Where("service_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// CountOutstandingPartRequests conta solicitações de peça que ainda
// seguram a OS em aguardando peças. Status vazio legado conta como
// pendente.
func (r *OrderGormRepository) CountOutstandingPartRequests(
	ctx context.Context,
	orderID uint,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Where(
			"service_order_id = ? AND type = ? AND (status IN ('pending', 'in_progress') OR status = '' OR status IS NULL)",
			orderID, models.RequestTypePart,
		).
		Count(&count).Error

	return count, err
}

// --------------------------------------------------
// Checklist
// --------------------------------------------------

func (r *OrderGormRepository) CreateChecklistItem(
	ctx context.Context,
	item *models.ChecklistItem,
) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *OrderGormRepository) GetChecklistItem(
	ctx context.Context,
	orderID uint,
	itemID uint,
) (*models.ChecklistItem, error) {

	var item models.ChecklistItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND service_order_id = ?", itemID, orderID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *OrderGormRepository) UpdateChecklistItem(
	ctx context.Context,
	item *models.ChecklistItem,
) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *OrderGormRepository) DeleteChecklistItem(
	ctx context.Context,
	itemID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.ChecklistItem{}, itemID).Error
}

func (r *OrderGormRepository) ListChecklist(
	ctx context.Context,
	orderID uint,
) ([]models.ChecklistItem, error) {

	var items []models.ChecklistItem
	if err := r.db.WithContext(ctx).
		Where("service_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Compile-time check
var _ domain.Repository = (*OrderGormRepository)(nil)
