// internal/services/checkout_service.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/letmemugyou/backend/internal/models"
)

// OrderPlacer persists a finalized order atomically.
type OrderPlacer interface {
	Place(ctx context.Context, order *models.Order) error
}

// Notifier dispatches post-commit notifications for a placed order.
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, order *models.Order)
}

// CheckoutService sequences the checkout: gateway order creation, payment
// capture, atomic persistence, then cart clear. The three remote steps are
// strictly sequential and none is retried automatically.
type CheckoutService struct {
	carts    *CartService
	rates    TaxRateSource
	gateway  PaymentGateway
	orders   OrderPlacer
	notifier Notifier
}

type CustomerInfo struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zip_code,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func NewCheckoutService(carts *CartService, rates TaxRateSource, gateway PaymentGateway, orders OrderPlacer, notifier Notifier) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		rates:    rates,
		gateway:  gateway,
		orders:   orders,
		notifier: notifier,
	}
}

// CreateGatewayOrder computes the current totals and opens a gateway order.
// An empty cart fails before any external call; gateway failures mutate no
// local state.
func (s *CheckoutService) CreateGatewayOrder(ctx context.Context, sessionID string) (string, Totals, error) {
	lines, err := s.carts.Lines(ctx, sessionID)
	if err != nil {
		return "", Totals{}, err
	}
	if len(lines) == 0 {
		return "", Totals{}, ErrEmptyCart
	}

	totals := CalculateTotals(lines, s.rates.TaxRate(ctx))

	orderID, err := s.gateway.CreateOrder(ctx, totals)
	if err != nil {
		return "", Totals{}, err
	}

	return orderID, totals, nil
}

// CompleteCheckout captures the approved gateway order, persists the order
// and its items in one transaction, and clears the cart only after commit.
func (s *CheckoutService) CompleteCheckout(ctx context.Context, sessionID, paypalOrderID string, customer *CustomerInfo) (*models.Order, error) {
	lines, err := s.carts.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	capture, err := s.gateway.CaptureOrder(ctx, paypalOrderID)
	if err != nil {
		return nil, err
	}
	if !capture.Completed() {
		logrus.WithFields(logrus.Fields{
			"paypal_order_id": paypalOrderID,
			"capture_status":  capture.Status,
		}).Warn("Payment capture not completed")
		return nil, ErrPaymentNotCompleted
	}

	totals := CalculateTotals(lines, s.rates.TaxRate(ctx))
	order := s.buildOrder(lines, totals, paypalOrderID, customer)

	if err := s.orders.Place(ctx, order); err != nil {
		// The payment is already captured at the gateway but no local order
		// exists. Operators reconcile these manually, so the log entry must
		// be distinguishable from pre-capture failures.
		logrus.WithFields(logrus.Fields{
			"paypal_order_id": paypalOrderID,
			"captured_amount": capture.Amount,
			"total":           totals.Total,
			"email":           customer.Email,
		}).WithError(err).Error("RECONCILIATION REQUIRED: payment captured but order persistence failed")
		return nil, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		logrus.WithError(err).WithField("order_number", order.OrderNumber).
			Warn("Order committed but cart clear failed")
	}

	if s.notifier != nil {
		go s.notifier.NotifyOrderPlaced(context.WithoutCancel(ctx), order)
	}

	return order, nil
}

func (s *CheckoutService) buildOrder(lines []models.CartLine, totals Totals, paypalOrderID string, customer *CustomerInfo) *models.Order {
	order := &models.Order{
		CustomerName:  customer.Name,
		Email:         customer.Email,
		Phone:         customer.Phone,
		BusinessName:  customer.BusinessName,
		AddressLine1:  customer.AddressLine1,
		AddressLine2:  customer.AddressLine2,
		City:          customer.City,
		State:         customer.State,
		ZipCode:       customer.ZipCode,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPaid,
		PayPalOrderID: paypalOrderID,
		Notes:         customer.Notes,
	}

	for _, line := range lines {
		item := models.OrderItem{
			ProductID:      line.ProductID,
			ProductName:    line.ProductName,
			Size:           line.Size,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			LineTotal:      line.LineTotal,
			LogoFilename:   line.LogoFilename,
			PreviewDataURL: line.PreviewDataURL,
		}
		if line.LogoPlacement != nil {
			item.LogoPlacement = models.JSONB{
				"left":   line.LogoPlacement.Left,
				"top":    line.LogoPlacement.Top,
				"scaleX": line.LogoPlacement.ScaleX,
				"scaleY": line.LogoPlacement.ScaleY,
				"angle":  line.LogoPlacement.Angle,
			}
		}
		order.Items = append(order.Items, item)
	}

	return order
}
