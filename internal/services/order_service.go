// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/letmemugyou/backend/internal/models"
	"github.com/letmemugyou/backend/internal/utils"
)

type OrderService struct {
	db *gorm.DB
}

var ErrOrderNotFound = errors.New("order not found")

const maxOrderNumberAttempts = 5

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Place writes the order and its items in a single transaction. The order
// number is generated here and regenerated on a unique-constraint collision,
// up to maxOrderNumberAttempts times.
func (s *OrderService) Place(ctx context.Context, order *models.Order) error {
	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		number, err := utils.GenerateOrderNumber()
		if err != nil {
			return fmt.Errorf("failed to generate order number: %w", err)
		}
		order.OrderNumber = number

		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(order).Error
		})
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return fmt.Errorf("failed to create order: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"order_number": number,
			"attempt":      attempt,
		}).Warn("Order number collision, regenerating")
	}

	return fmt.Errorf("failed to create order: exhausted %d order number attempts", maxOrderNumberAttempts)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") || strings.Contains(msg, "duplicate key value")
}

func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, "order_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

type OrderFilter struct {
	utils.PaginationParams
	Status *models.OrderStatus
}

// List is the admin order view: status filter plus a case-insensitive search
// over order number, customer name and email.
func (s *OrderService) List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where(
			"order_number ILIKE ? OR customer_name ILIKE ? OR email ILIKE ?",
			term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "total", "status"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var orders []models.Order
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// UpdateStatus sets the fulfillment status. There are no automatic
// transitions; any valid status can be set by an admin.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid order status %q", status)
	}

	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = status
	return order, nil
}

type DashboardStats struct {
	TotalOrders    int64          `json:"total_orders"`
	TotalRevenue   float64        `json:"total_revenue"`
	MonthlyOrders  int64          `json:"monthly_orders"`
	MonthlyRevenue float64        `json:"monthly_revenue"`
	PendingOrders  int64          `json:"pending_orders"`
	RecentOrders   []models.Order `json:"recent_orders"`
}

func (s *OrderService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(total), 0)").Scan(&stats.TotalRevenue)

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	db.Model(&models.Order{}).
		Where("created_at >= ?", monthStart).
		Count(&stats.MonthlyOrders)

	db.Model(&models.Order{}).
		Where("created_at >= ? AND payment_status = ?", monthStart, models.PaymentStatusPaid).
		Select("COALESCE(SUM(total), 0)").Scan(&stats.MonthlyRevenue)

	db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&stats.PendingOrders)

	if err := db.Order("created_at DESC").Limit(10).Find(&stats.RecentOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}

	return stats, nil
}
