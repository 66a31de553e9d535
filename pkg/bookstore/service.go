package bookstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Service implements the catalog, cart and checkout operations on top of a
// Store. The store guards its own maps per call, but checkout is a
// multi-step read-check-write sequence, so every operation that mutates a
// book or a cart is additionally serialized behind mu. A book or cart write
// can therefore never interleave between checkout's validate pass and its
// stock write-back.
type Service struct {
	store Store
	log   *zap.Logger

	mu sync.Mutex
}

// NewService creates a Service on the given store.
func NewService(store Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// CreateAuthor validates and stores a new author.
func (s *Service) CreateAuthor(ctx context.Context, a Author) (Author, error) {
	if strings.TrimSpace(a.FirstName) == "" || strings.TrimSpace(a.LastName) == "" {
		return Author{}, invalidInput("author first and last name are required")
	}
	a.ID = 0
	return s.store.AddAuthor(ctx, a)
}

// Author retrieves an author by id.
func (s *Service) Author(ctx context.Context, id int) (Author, error) {
	return s.store.Author(ctx, id)
}

// Authors lists all authors.
func (s *Service) Authors(ctx context.Context) ([]Author, error) {
	return s.store.Authors(ctx)
}

// UpdateAuthor replaces an existing author. The id argument wins over any
// id carried in the payload.
func (s *Service) UpdateAuthor(ctx context.Context, id int, a Author) (Author, error) {
	if _, err := s.store.Author(ctx, id); err != nil {
		return Author{}, err
	}
	a.ID = id
	return s.store.UpdateAuthor(ctx, a)
}

// DeleteAuthor removes an author. Books referencing it keep their authorId.
func (s *Service) DeleteAuthor(ctx context.Context, id int) error {
	if _, err := s.store.Author(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteAuthor(ctx, id)
}

// AuthorBooks lists all books written by the author.
func (s *Service) AuthorBooks(ctx context.Context, id int) ([]Book, error) {
	if _, err := s.store.Author(ctx, id); err != nil {
		return nil, err
	}
	return s.store.BooksByAuthor(ctx, id)
}

// CreateBook validates and stores a new book. Checks run in a fixed order
// and the first failure aborts: title, author id, author existence (a
// not-found, not an invalid input), publication year, price, stock.
func (s *Service) CreateBook(ctx context.Context, b Book) (Book, error) {
	if strings.TrimSpace(b.Title) == "" {
		return Book{}, invalidInput("book title is required")
	}
	if b.AuthorID <= 0 {
		return Book{}, invalidInput("valid author ID is required")
	}
	if _, err := s.store.Author(ctx, b.AuthorID); err != nil {
		return Book{}, err
	}
	if b.PublicationYear > time.Now().Year() {
		return Book{}, invalidInput("publication year %d is in the future", b.PublicationYear)
	}
	if b.Price < 0 {
		return Book{}, invalidInput("book price cannot be negative")
	}
	if b.Stock < 0 {
		return Book{}, invalidInput("book stock cannot be negative")
	}
	b.ID = 0
	return s.store.AddBook(ctx, b)
}

// Book retrieves a book by id.
func (s *Service) Book(ctx context.Context, id int) (Book, error) {
	return s.store.Book(ctx, id)
}

// Books lists all books.
func (s *Service) Books(ctx context.Context) ([]Book, error) {
	return s.store.Books(ctx)
}

// UpdateBook replaces an existing book, re-validating the publication year.
// It takes the service mutex: a book write must not land between checkout's
// validate pass and its stock write-back, or the write would be lost.
func (s *Service) UpdateBook(ctx context.Context, id int, b Book) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Book(ctx, id); err != nil {
		return Book{}, err
	}
	if b.PublicationYear > time.Now().Year() {
		return Book{}, invalidInput("publication year %d is in the future", b.PublicationYear)
	}
	b.ID = id
	return s.store.UpdateBook(ctx, b)
}

// DeleteBook removes a book. Serialized against checkout so a book cannot
// vanish, or be resurrected by a stock write-back, mid-transaction.
func (s *Service) DeleteBook(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Book(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteBook(ctx, id)
}

// CreateCustomer validates and stores a new customer.
func (s *Service) CreateCustomer(ctx context.Context, c Customer) (Customer, error) {
	if strings.TrimSpace(c.FirstName) == "" || strings.TrimSpace(c.LastName) == "" {
		return Customer{}, invalidInput("customer first and last name are required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return Customer{}, invalidInput("customer email is required")
	}
	if strings.TrimSpace(c.Password) == "" {
		return Customer{}, invalidInput("customer password is required")
	}
	c.ID = 0
	return s.store.AddCustomer(ctx, c)
}

// Customer retrieves a customer by id.
func (s *Service) Customer(ctx context.Context, id int) (Customer, error) {
	return s.store.Customer(ctx, id)
}

// Customers lists all customers.
func (s *Service) Customers(ctx context.Context) ([]Customer, error) {
	return s.store.Customers(ctx)
}

// UpdateCustomer replaces an existing customer.
func (s *Service) UpdateCustomer(ctx context.Context, id int, c Customer) (Customer, error) {
	if _, err := s.store.Customer(ctx, id); err != nil {
		return Customer{}, err
	}
	c.ID = id
	return s.store.UpdateCustomer(ctx, c)
}

// DeleteCustomer removes a customer along with their cart and order history.
// Serialized against checkout so the purge cannot race an in-flight order.
func (s *Service) DeleteCustomer(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Customer(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteCustomer(ctx, id)
}

// AddToCart puts a line item into the customer's cart, overwriting any
// existing quantity for the same book. Stock is only checked here, not
// decremented; decrement happens at checkout.
func (s *Service) AddToCart(ctx context.Context, customerID int, item CartItem) (CartItem, error) {
	if item.BookID <= 0 || item.Quantity <= 0 {
		return CartItem{}, invalidInput("valid book ID and quantity are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Customer(ctx, customerID); err != nil {
		return CartItem{}, err
	}
	book, err := s.store.Book(ctx, item.BookID)
	if err != nil {
		return CartItem{}, err
	}
	if book.Stock < item.Quantity {
		return CartItem{}, &OutOfStockError{BookID: book.ID, Requested: item.Quantity, Available: book.Stock}
	}
	if err := s.store.UpsertCartItem(ctx, customerID, item); err != nil {
		return CartItem{}, err
	}
	return item, nil
}

// Cart returns the customer's cart items. An empty cart reports
// ErrCartNotFound, same as a cart that never had anything in it.
func (s *Service) Cart(ctx context.Context, customerID int) ([]CartItem, error) {
	if _, err := s.store.Customer(ctx, customerID); err != nil {
		return nil, err
	}
	items, err := s.store.Cart(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartNotFound
	}
	return items, nil
}

// UpdateCartItem replaces the quantity of a line item already in the cart.
// It cannot create one.
func (s *Service) UpdateCartItem(ctx context.Context, customerID, bookID, quantity int) (CartItem, error) {
	if quantity <= 0 {
		return CartItem{}, invalidInput("valid quantity is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Customer(ctx, customerID); err != nil {
		return CartItem{}, err
	}
	book, err := s.store.Book(ctx, bookID)
	if err != nil {
		return CartItem{}, err
	}
	items, err := s.store.Cart(ctx, customerID)
	if err != nil {
		return CartItem{}, err
	}
	exists := false
	for _, it := range items {
		if it.BookID == bookID {
			exists = true
			break
		}
	}
	if !exists {
		return CartItem{}, invalidInput("item does not exist in the cart")
	}
	if book.Stock < quantity {
		return CartItem{}, &OutOfStockError{BookID: bookID, Requested: quantity, Available: book.Stock}
	}
	item := CartItem{BookID: bookID, Quantity: quantity}
	if err := s.store.UpsertCartItem(ctx, customerID, item); err != nil {
		return CartItem{}, err
	}
	return item, nil
}

// RemoveCartItem deletes a line item from the cart. The referenced customer
// and book must exist, but removing an item that is not in the cart
// succeeds silently.
func (s *Service) RemoveCartItem(ctx context.Context, customerID, bookID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Customer(ctx, customerID); err != nil {
		return err
	}
	if _, err := s.store.Book(ctx, bookID); err != nil {
		return err
	}
	return s.store.RemoveCartItem(ctx, customerID, bookID)
}

// Checkout converts the customer's cart into an order. All line items are
// validated and the total computed before any stock is written, so a
// failure on any line leaves every book's stock untouched. On success the
// order snapshot is persisted, stock is decremented per line and the cart
// is cleared.
func (s *Service) Checkout(ctx context.Context, customerID int) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Customer(ctx, customerID); err != nil {
		return Order{}, err
	}
	cart, err := s.store.Cart(ctx, customerID)
	if err != nil {
		return Order{}, err
	}
	if len(cart) == 0 {
		return Order{}, ErrCartNotFound
	}

	var totalPrice float64
	books := make([]Book, 0, len(cart))
	items := make([]CartItem, 0, len(cart))
	for _, item := range cart {
		book, err := s.store.Book(ctx, item.BookID)
		if err != nil {
			return Order{}, err
		}
		if book.Stock < item.Quantity {
			return Order{}, &OutOfStockError{BookID: book.ID, Requested: item.Quantity, Available: book.Stock}
		}
		totalPrice += book.Price * float64(item.Quantity)
		books = append(books, book)
		items = append(items, CartItem{BookID: item.BookID, Quantity: item.Quantity})
	}

	for i, book := range books {
		book.Stock -= items[i].Quantity
		if _, err := s.store.UpdateBook(ctx, book); err != nil {
			return Order{}, err
		}
	}

	order, err := s.store.CreateOrder(ctx, customerID, items, totalPrice)
	if err != nil {
		return Order{}, err
	}
	if err := s.store.ClearCart(ctx, customerID); err != nil {
		return Order{}, err
	}

	s.log.Info("order placed",
		zap.Int("customer_id", customerID),
		zap.Int("order_id", order.ID),
		zap.Int("line_items", len(order.Items)),
		zap.Float64("total_price", order.TotalPrice),
	)
	return order, nil
}

// CustomerOrders lists the customer's orders in placement order. A customer
// with no orders gets an empty list, not an error.
func (s *Service) CustomerOrders(ctx context.Context, customerID int) ([]Order, error) {
	if _, err := s.store.Customer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.store.CustomerOrders(ctx, customerID)
}

// CustomerOrder retrieves one of the customer's orders. An order that does
// not exist or belongs to a different customer reports the same invalid
// input failure, so no order data leaks across customers.
func (s *Service) CustomerOrder(ctx context.Context, customerID, orderID int) (Order, error) {
	if _, err := s.store.Customer(ctx, customerID); err != nil {
		return Order{}, err
	}
	order, err := s.store.Order(ctx, orderID)
	if err != nil || order.CustomerID != customerID {
		return Order{}, invalidInput("order not found or doesn't belong to the customer")
	}
	return order, nil
}
