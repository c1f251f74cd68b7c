// internal/services/errors.go
package services

import "errors"

// Failure classes surfaced to the transport layer. Handlers map these to
// HTTP statuses; everything else is an internal error.
var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartLineNotFound = errors.New("cart item not found")

	// Gateway failures: no local state has been mutated.
	ErrPaymentService      = errors.New("payment service error")
	ErrPaymentNotCompleted = errors.New("payment not completed")

	// Post-capture persistence failure: the payment has been captured
	// externally but no local order exists. Requires manual reconciliation.
	ErrOrderPersistence = errors.New("order creation failed")

	ErrProcessingFailed = errors.New("image processing failed")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrFileTooLarge       = errors.New("file too large")
)
