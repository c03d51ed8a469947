package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tajer/backend/internal/domain/orders"
	"github.com/tajer/backend/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID with items preloaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*orders.Order, error) {
	var order orders.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForPlatform finds an order by ID within a platform
func (r *GormOrderRepository) FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*orders.Order, error) {
	var order orders.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("platform_id = ? AND id = ?", platformID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByNumberForPlatform finds an order by its order number within a platform
func (r *GormOrderRepository) FindByNumberForPlatform(ctx context.Context, platformID uuid.UUID, orderNumber string) (*orders.Order, error) {
	var order orders.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("platform_id = ? AND order_number = ?", platformID, orderNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIdempotencyKey finds an order by its submission key within a platform
func (r *GormOrderRepository) FindByIdempotencyKey(ctx context.Context, platformID uuid.UUID, key string) (*orders.Order, error) {
	if key == "" {
		return nil, shared.ErrNotFound
	}
	var order orders.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("platform_id = ? AND idempotency_key = ?", platformID, key).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForPlatform finds orders for a platform matching the query
func (r *GormOrderRepository) FindAllForPlatform(ctx context.Context, platformID uuid.UUID, query orders.Query) ([]orders.Order, error) {
	var result []orders.Order
	q := r.applyQuery(
		r.db.WithContext(ctx).Model(&orders.Order{}).
			Preload("Items").
			Where("platform_id = ?", platformID),
		query,
	)

	if err := q.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Save creates or updates an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *orders.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error; err != nil {
			return err
		}
		// Remove lines dropped from the aggregate since it was loaded
		keep := make([]uuid.UUID, 0, len(order.Items))
		for _, item := range order.Items {
			keep = append(keep, item.ID)
		}
		del := tx.Where("order_id = ?", order.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		return del.Delete(&orders.OrderItem{}).Error
	})
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *orders.Order) error {
	result := r.db.WithContext(ctx).
		Model(order).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]interface{}{
			"customer_name":    order.Customer.Name,
			"customer_phone":   order.Customer.Phone,
			"customer_address": order.Customer.Address,
			"governorate":      order.Customer.Governorate,
			"subtotal":         order.Subtotal,
			"discount_amount":  order.DiscountAmount,
			"delivery_fee":     order.DeliveryFee,
			"total_amount":     order.TotalAmount,
			"status":           order.Status,
			"notes":            order.Notes,
			"confirmed_at":     order.ConfirmedAt,
			"shipped_at":       order.ShippedAt,
			"delivered_at":     order.DeliveredAt,
			"cancelled_at":     order.CancelledAt,
			"refunded_at":      order.RefundedAt,
			"cancel_reason":    order.CancelReason,
			"version":          order.Version,
			"updated_at":       order.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Order was modified by another transaction")
	}
	return nil
}

// DeleteForPlatform deletes an order within a platform
func (r *GormOrderRepository) DeleteForPlatform(ctx context.Context, platformID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&orders.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&orders.Order{}, "platform_id = ? AND id = ?", platformID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountForPlatform counts orders for a platform matching the query
func (r *GormOrderRepository) CountForPlatform(ctx context.Context, platformID uuid.UUID, query orders.Query) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&orders.Order{}).Where("platform_id = ?", platformID)
	q = r.applyQueryWithoutPagination(q, query)

	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatusForPlatform returns order counts grouped by status
func (r *GormOrderRepository) CountByStatusForPlatform(ctx context.Context, platformID uuid.UUID) (map[orders.Status]int64, error) {
	type row struct {
		Status orders.Status
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&orders.Order{}).
		Select("status, COUNT(*) as count").
		Where("platform_id = ?", platformID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[orders.Status]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// NextOrderNumber reserves the next sequential order number for a platform.
// Format: ORD-YYYY-NNNNN (e.g. ORD-2026-00001)
func (r *GormOrderRepository) NextOrderNumber(ctx context.Context, platformID uuid.UUID) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("ORD-%d-", year)

	var last orders.Order
	err := r.db.WithContext(ctx).
		Model(&orders.Order{}).
		Where("platform_id = ? AND order_number LIKE ?", platformID, prefix+"%").
		Order("order_number DESC").
		First(&last).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.OrderNumber != "" {
		parts := strings.Split(last.OrderNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// orderSortColumns is the set of columns callers may sort orders by
var orderSortColumns = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"order_number": "order_number",
	"total_amount": "total_amount",
	"status":       "status",
}

// applyQuery applies query options to the GORM query
func (r *GormOrderRepository) applyQuery(q *gorm.DB, query orders.Query) *gorm.DB {
	q = r.applyQueryWithoutPagination(q, query)

	if query.Page > 0 && query.PageSize > 0 {
		offset := (query.Page - 1) * query.PageSize
		q = q.Offset(offset).Limit(query.PageSize)
	}

	q = q.Order(orderClause(query.OrderBy, query.OrderDir, orderSortColumns, "created_at DESC"))

	return q
}

// applyQueryWithoutPagination applies query options without pagination
func (r *GormOrderRepository) applyQueryWithoutPagination(q *gorm.DB, query orders.Query) *gorm.DB {
	if query.Search != "" {
		searchPattern := "%" + query.Search + "%"
		q = q.Where("order_number ILIKE ? OR customer_name ILIKE ? OR customer_phone ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.Source != "" {
		q = q.Where("source = ?", query.Source)
	}
	if query.Governorate != "" {
		q = q.Where("governorate = ?", query.Governorate)
	}
	if query.From != nil {
		q = q.Where("created_at >= ?", *query.From)
	}
	if query.To != nil {
		q = q.Where("created_at < ?", *query.To)
	}
	return q
}

// Ensure GormOrderRepository implements OrderRepository
var _ orders.OrderRepository = (*GormOrderRepository)(nil)
