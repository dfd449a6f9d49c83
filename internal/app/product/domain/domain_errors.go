package domain

import (
	"errors"
	"fmt"
)

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyName       = errors.New("product name cannot be empty")
	ErrNameTooLong     = fmt.Errorf("product name cannot exceed %d characters", MaxNameLength)

	// Price and stock errors
	ErrNegativePrice   = errors.New("product price cannot be negative")
	ErrPriceOutOfRange = errors.New("product price exceeds 99999999.99")
	ErrPriceScale      = errors.New("product price cannot have more than 2 decimal places")
	ErrNegativeStock   = errors.New("stock quantity cannot be negative")
)

// NotFoundError reports a missing product and carries its ID.
// errors.Is(err, ErrProductNotFound) holds for any NotFoundError.
type NotFoundError struct {
	ProductID int64
}

// NewNotFoundError creates a NotFoundError for the given product ID.
func NewNotFoundError(productID int64) error {
	return &NotFoundError{ProductID: productID}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Product with ID %d not found", e.ProductID)
}

// Is makes NotFoundError match ErrProductNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

// IsValidationError returns true for errors caused by invalid product input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrNameTooLong) ||
		errors.Is(err, ErrNegativePrice) ||
		errors.Is(err, ErrPriceOutOfRange) ||
		errors.Is(err, ErrPriceScale) ||
		errors.Is(err, ErrNegativeStock)
}
