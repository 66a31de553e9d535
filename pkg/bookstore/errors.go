package bookstore

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds the service raises. Callers branch
// with errors.Is (and errors.As for OutOfStockError); service methods wrap
// these with entity-specific detail.
var (
	ErrAuthorNotFound   = errors.New("author not found")
	ErrBookNotFound     = errors.New("book not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrInvalidInput     = errors.New("invalid input")

	// ErrOrderNotFound never crosses the service boundary: order lookups
	// report ErrInvalidInput so callers cannot tell a missing order from
	// another customer's. It only signals absence at the store layer.
	ErrOrderNotFound = errors.New("order not found")
)

// OutOfStockError reports a requested quantity exceeding a book's available
// stock. It carries the numbers so the boundary layer can render a
// machine-parseable error body.
type OutOfStockError struct {
	BookID    int
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("book %d has insufficient stock: requested %d, available %d",
		e.BookID, e.Requested, e.Available)
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
