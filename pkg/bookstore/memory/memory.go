// Package memory implements an in-memory bookstore.Store.
package memory

import (
	"context"
	"sync"

	"bookstore/pkg/bookstore"
)

// Store keeps every entity in process memory behind a single RWMutex.
// Id counters start at 1 and are never reused, even after deletion.
type Store struct {
	mu sync.RWMutex

	authors   map[int]bookstore.Author
	books     map[int]bookstore.Book
	customers map[int]bookstore.Customer
	carts     map[int]map[int]bookstore.CartItem // customerID -> bookID -> item
	orders    map[int]bookstore.Order
	history   map[int][]bookstore.Order // customerID -> orders in placement order

	nextAuthorID   int
	nextBookID     int
	nextCustomerID int
	nextOrderID    int
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		authors:        make(map[int]bookstore.Author),
		books:          make(map[int]bookstore.Book),
		customers:      make(map[int]bookstore.Customer),
		carts:          make(map[int]map[int]bookstore.CartItem),
		orders:         make(map[int]bookstore.Order),
		history:        make(map[int][]bookstore.Order),
		nextAuthorID:   1,
		nextBookID:     1,
		nextCustomerID: 1,
		nextOrderID:    1,
	}
}

// AddAuthor stores the author, assigning an id when it carries none.
func (s *Store) AddAuthor(ctx context.Context, a bookstore.Author) (bookstore.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID <= 0 {
		a.ID = s.nextAuthorID
		s.nextAuthorID++
	}
	s.authors[a.ID] = a
	return a, nil
}

// Author retrieves an author by id.
func (s *Store) Author(ctx context.Context, id int) (bookstore.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.authors[id]
	if !ok {
		return bookstore.Author{}, bookstore.ErrAuthorNotFound
	}
	return a, nil
}

// Authors returns a snapshot of all authors, order unspecified.
func (s *Store) Authors(ctx context.Context) ([]bookstore.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bookstore.Author, 0, len(s.authors))
	for _, a := range s.authors {
		out = append(out, a)
	}
	return out, nil
}

// UpdateAuthor replaces the stored value at a.ID. The caller must have
// confirmed existence.
func (s *Store) UpdateAuthor(ctx context.Context, a bookstore.Author) (bookstore.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authors[a.ID] = a
	return a, nil
}

// DeleteAuthor removes an author. Deleting an absent id is not an error.
func (s *Store) DeleteAuthor(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.authors, id)
	return nil
}

// AddBook stores the book, assigning an id when it carries none.
func (s *Store) AddBook(ctx context.Context, b bookstore.Book) (bookstore.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID <= 0 {
		b.ID = s.nextBookID
		s.nextBookID++
	}
	s.books[b.ID] = b
	return b, nil
}

// Book retrieves a book by id.
func (s *Store) Book(ctx context.Context, id int) (bookstore.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[id]
	if !ok {
		return bookstore.Book{}, bookstore.ErrBookNotFound
	}
	return b, nil
}

// Books returns a snapshot of all books, order unspecified.
func (s *Store) Books(ctx context.Context) ([]bookstore.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bookstore.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	return out, nil
}

// BooksByAuthor scans all books for those referencing the author.
func (s *Store) BooksByAuthor(ctx context.Context, authorID int) ([]bookstore.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bookstore.Book, 0)
	for _, b := range s.books {
		if b.AuthorID == authorID {
			out = append(out, b)
		}
	}
	return out, nil
}

// UpdateBook replaces the stored value at b.ID.
func (s *Store) UpdateBook(ctx context.Context, b bookstore.Book) (bookstore.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[b.ID] = b
	return b, nil
}

// DeleteBook removes a book. Deleting an absent id is not an error.
func (s *Store) DeleteBook(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.books, id)
	return nil
}

// AddCustomer stores the customer, assigning an id when it carries none.
func (s *Store) AddCustomer(ctx context.Context, c bookstore.Customer) (bookstore.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID <= 0 {
		c.ID = s.nextCustomerID
		s.nextCustomerID++
	}
	s.customers[c.ID] = c
	return c, nil
}

// Customer retrieves a customer by id.
func (s *Store) Customer(ctx context.Context, id int) (bookstore.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return bookstore.Customer{}, bookstore.ErrCustomerNotFound
	}
	return c, nil
}

// Customers returns a snapshot of all customers, order unspecified.
func (s *Store) Customers(ctx context.Context) ([]bookstore.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bookstore.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	return out, nil
}

// UpdateCustomer replaces the stored value at c.ID.
func (s *Store) UpdateCustomer(ctx context.Context, c bookstore.Customer) (bookstore.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
	return c, nil
}

// DeleteCustomer removes the customer together with their cart and order
// history. Orders stay in the flat id map but become unreachable through
// customer-scoped lookups.
func (s *Store) DeleteCustomer(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.customers, id)
	delete(s.carts, id)
	delete(s.history, id)
	return nil
}

// UpsertCartItem sets the cart entry for the item's book, replacing any
// existing quantity rather than summing.
func (s *Store) UpsertCartItem(ctx context.Context, customerID int, item bookstore.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[customerID]
	if !ok {
		cart = make(map[int]bookstore.CartItem)
		s.carts[customerID] = cart
	}
	cart[item.BookID] = item
	return nil
}

// Cart returns the customer's cart items; an empty slice when there are none.
func (s *Store) Cart(ctx context.Context, customerID int) ([]bookstore.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart := s.carts[customerID]
	out := make([]bookstore.CartItem, 0, len(cart))
	for _, item := range cart {
		out = append(out, item)
	}
	return out, nil
}

// RemoveCartItem deletes a line item; removing an absent one is a no-op.
func (s *Store) RemoveCartItem(ctx context.Context, customerID, bookID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart, ok := s.carts[customerID]; ok {
		delete(cart, bookID)
	}
	return nil
}

// ClearCart empties the customer's cart.
func (s *Store) ClearCart(ctx context.Context, customerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, customerID)
	return nil
}

// CreateOrder assigns the next order id, stores the order and appends it to
// the customer's history.
func (s *Store) CreateOrder(ctx context.Context, customerID int, items []bookstore.CartItem, totalPrice float64) (bookstore.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]bookstore.CartItem, len(items))
	copy(snapshot, items)
	o := bookstore.Order{
		ID:         s.nextOrderID,
		CustomerID: customerID,
		Items:      snapshot,
		TotalPrice: totalPrice,
	}
	s.nextOrderID++
	s.orders[o.ID] = o
	s.history[customerID] = append(s.history[customerID], o)
	return copyOrder(o), nil
}

// Order retrieves an order by id.
func (s *Store) Order(ctx context.Context, id int) (bookstore.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return bookstore.Order{}, bookstore.ErrOrderNotFound
	}
	return copyOrder(o), nil
}

// CustomerOrders returns the customer's orders in placement order; an empty
// slice when there are none.
func (s *Store) CustomerOrders(ctx context.Context, customerID int) ([]bookstore.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bookstore.Order, 0, len(s.history[customerID]))
	for _, o := range s.history[customerID] {
		out = append(out, copyOrder(o))
	}
	return out, nil
}

// copyOrder detaches the item snapshot so callers cannot mutate stored
// order history through the returned slice.
func copyOrder(o bookstore.Order) bookstore.Order {
	items := make([]bookstore.CartItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
