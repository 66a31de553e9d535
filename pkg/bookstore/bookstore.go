// Package bookstore holds the catalog, cart and order domain: entity types,
// the storage contract and the service implementing the business rules.
package bookstore

import "context"

// Author is a book author. Books reference authors by id; deleting an
// author does not cascade to its books.
type Author struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bio       string `json:"bio"`
}

// Book is a catalog entry. Stock is the only field mutated outside of a
// full update: checkout decrements it.
type Book struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	AuthorID        int     `json:"authorId"`
	ISBN            string  `json:"isbn"`
	PublicationYear int     `json:"publicationYear"`
	Price           float64 `json:"price"`
	Stock           int     `json:"stock"`
}

// Customer owns exactly one cart and zero or more orders. The password is
// an opaque string stored as received.
type Customer struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// CartItem is a line item in a cart or in an order snapshot.
type CartItem struct {
	BookID   int `json:"bookId"`
	Quantity int `json:"quantity"`
}

// Order is an immutable snapshot taken at checkout; later price or stock
// changes never alter it.
type Order struct {
	ID         int        `json:"id"`
	CustomerID int        `json:"customerId"`
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
}

// Store defines keyed storage for every entity type. Implementations assign
// ids (positive, monotonically increasing, never reused) on Add when the
// entity carries id <= 0. Store does no referential validation; that is the
// Service's job. Update replaces blindly, Delete is idempotent.
type Store interface {
	AddAuthor(ctx context.Context, a Author) (Author, error)
	Author(ctx context.Context, id int) (Author, error)
	Authors(ctx context.Context) ([]Author, error)
	UpdateAuthor(ctx context.Context, a Author) (Author, error)
	DeleteAuthor(ctx context.Context, id int) error

	AddBook(ctx context.Context, b Book) (Book, error)
	Book(ctx context.Context, id int) (Book, error)
	Books(ctx context.Context) ([]Book, error)
	BooksByAuthor(ctx context.Context, authorID int) ([]Book, error)
	UpdateBook(ctx context.Context, b Book) (Book, error)
	DeleteBook(ctx context.Context, id int) error

	AddCustomer(ctx context.Context, c Customer) (Customer, error)
	Customer(ctx context.Context, id int) (Customer, error)
	Customers(ctx context.Context) ([]Customer, error)
	UpdateCustomer(ctx context.Context, c Customer) (Customer, error)
	// DeleteCustomer also erases the customer's cart and order history.
	DeleteCustomer(ctx context.Context, id int) error

	// UpsertCartItem replaces any existing line item for the same book.
	UpsertCartItem(ctx context.Context, customerID int, item CartItem) error
	// Cart returns an empty slice, not an error, when the customer has no
	// entries; "no cart" and "empty cart" are indistinguishable here.
	Cart(ctx context.Context, customerID int) ([]CartItem, error)
	RemoveCartItem(ctx context.Context, customerID, bookID int) error
	ClearCart(ctx context.Context, customerID int) error

	CreateOrder(ctx context.Context, customerID int, items []CartItem, totalPrice float64) (Order, error)
	Order(ctx context.Context, id int) (Order, error)
	CustomerOrders(ctx context.Context, customerID int) ([]Order, error)
}
