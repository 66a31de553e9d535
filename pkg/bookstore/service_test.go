package bookstore_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookstore/pkg/bookstore"
	"bookstore/pkg/bookstore/memory"
)

func newTestService(t *testing.T) *bookstore.Service {
	t.Helper()
	return bookstore.NewService(memory.New(), zap.NewNop())
}

func addAuthor(t *testing.T, svc *bookstore.Service) bookstore.Author {
	t.Helper()
	a, err := svc.CreateAuthor(context.Background(), bookstore.Author{FirstName: "George", LastName: "Orwell"})
	require.NoError(t, err)
	return a
}

func addBook(t *testing.T, svc *bookstore.Service, authorID int, price float64, stock int) bookstore.Book {
	t.Helper()
	b, err := svc.CreateBook(context.Background(), bookstore.Book{
		Title:           "1984",
		AuthorID:        authorID,
		ISBN:            "9780451524935",
		PublicationYear: 1949,
		Price:           price,
		Stock:           stock,
	})
	require.NoError(t, err)
	return b
}

func addCustomer(t *testing.T, svc *bookstore.Service) bookstore.Customer {
	t.Helper()
	c, err := svc.CreateCustomer(context.Background(), bookstore.Customer{
		FirstName: "John", LastName: "Doe", Email: "john@example.com", Password: "secret",
	})
	require.NoError(t, err)
	return c
}

func TestCreateAuthorValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateAuthor(ctx, bookstore.Author{FirstName: "  ", LastName: "Orwell"})
	assert.ErrorIs(t, err, bookstore.ErrInvalidInput)

	_, err = svc.CreateAuthor(ctx, bookstore.Author{FirstName: "George"})
	assert.ErrorIs(t, err, bookstore.ErrInvalidInput)

	a, err := svc.CreateAuthor(ctx, bookstore.Author{FirstName: "George", LastName: "Orwell"})
	require.NoError(t, err)
	assert.Positive(t, a.ID)

	got, err := svc.Author(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestDeleteAuthorLeavesBooksOrphaned(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	author := addAuthor(t, svc)
	book := addBook(t, svc, author.ID, 14.99, 10)

	require.NoError(t, svc.DeleteAuthor(ctx, author.ID))
	_, err := svc.Author(ctx, author.ID)
	assert.ErrorIs(t, err, bookstore.ErrAuthorNotFound)

	got, err := svc.Book(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, got.AuthorID)
}

func TestCreateBookValidationOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := addAuthor(t, svc)
	future := time.Now().Year() + 1

	tests := []struct {
		name    string
		book    bookstore.Book
		wantErr error
	}{
		{
			name:    "missing_title_wins_over_bad_author",
			book:    bookstore.Book{AuthorID: -1},
			wantErr: bookstore.ErrInvalidInput,
		},
		{
			name:    "non_positive_author_id",
			book:    bookstore.Book{Title: "1984", AuthorID: 0},
			wantErr: bookstore.ErrInvalidInput,
		},
		{
			name:    "unknown_author_is_not_found_not_invalid",
			book:    bookstore.Book{Title: "1984", AuthorID: 999},
			wantErr: bookstore.ErrAuthorNotFound,
		},
		{
			name:    "future_publication_year",
			book:    bookstore.Book{Title: "1984", AuthorID: author.ID, PublicationYear: future},
			wantErr: bookstore.ErrInvalidInput,
		},
		{
			name:    "negative_price",
			book:    bookstore.Book{Title: "1984", AuthorID: author.ID, PublicationYear: 1949, Price: -1},
			wantErr: bookstore.ErrInvalidInput,
		},
		{
			name:    "negative_stock",
			book:    bookstore.Book{Title: "1984", AuthorID: author.ID, PublicationYear: 1949, Stock: -1},
			wantErr: bookstore.ErrInvalidInput,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBook(ctx, tc.book)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// no partial creation from the failed attempts
	books, err := svc.Books(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestUpdateBookRevalidatesYear(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := addAuthor(t, svc)
	book := addBook(t, svc, author.ID, 14.99, 10)

	book.PublicationYear = time.Now().Year() + 1
	_, err := svc.UpdateBook(ctx, book.ID, book)
	assert.ErrorIs(t, err, bookstore.ErrInvalidInput)

	_, err = svc.UpdateBook(ctx, 999, book)
	assert.ErrorIs(t, err, bookstore.ErrBookNotFound)

	book.PublicationYear = 1950
	updated, err := svc.UpdateBook(ctx, book.ID, book)
	require.NoError(t, err)
	assert.Equal(t, 1950, updated.PublicationYear)
	assert.Equal(t, book.ID, updated.ID)
}

func TestCreateCustomerValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, bookstore.Customer{LastName: "Doe", Email: "j@e.com", Password: "x"})
	assert.ErrorIs(t, err, bookstore.ErrInvalidInput)
	_, err = svc.CreateCustomer(ctx, bookstore.Customer{FirstName: "John", LastName: "Doe", Password: "x"})
	assert.ErrorIs(t, err, bookstore.ErrInvalidInput)
	_, err = svc.CreateCustomer(ctx, bookstore.Customer{FirstName: "John", LastName: "Doe", Email: "j@e.com"})
	assert.ErrorIs(t, err, bookstore.ErrInvalidInput)

	c, err := svc.CreateCustomer(ctx, bookstore.Customer{FirstName: "John", LastName: "Doe", Email: "j@e.com", Password: "x"})
	require.NoError(t, err)
	assert.Positive(t, c.ID)
}

func TestAddToCart(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := addAuthor(t, svc)
	book := addBook(t, svc, author.ID, 14.99, 5)
	customer := addCustomer(t, svc)

	_, err := svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: 0, Quantity: 1})
	assert.ErrorIs(t, err, bookstore.ErrInvalidInput)
	_, err = svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: book.ID, Quantity: 0})
	assert.ErrorIs(t, err, bookstore.ErrInvalidInput)
	_, err = svc.AddToCart(ctx, 999, bookstore.CartItem{BookID: book.ID, Quantity: 1})
	assert.ErrorIs(t, err, bookstore.ErrCustomerNotFound)
	_, err = svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: 999, Quantity: 1})
	assert.ErrorIs(t, err, bookstore.ErrBookNotFound)

	_, err = svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: book.ID, Quantity: 6})
	var oos *bookstore.OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, book.ID, oos.BookID)
	assert.Equal(t, 6, oos.Requested)
	assert.Equal(t, 5, oos.Available)

	_, err = svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: book.ID, Quantity: 2})
	require.NoError(t, err)

	// re-adding the same book overwrites the quantity, it does not sum
	_, err = svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: book.ID, Quantity: 3})
	require.NoError(t, err)
	items, err := svc.Cart(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	// stock is untouched until checkout
	got, _ := svc.Book(ctx, book.ID)
	assert.Equal(t, 5, got.Stock)
}

func TestGetCart(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	customer := addCustomer(t, svc)

	_, err := svc.Cart(ctx, 999)
	assert.ErrorIs(t, err, bookstore.ErrCustomerNotFound)

	// an existing customer with nothing in the cart is a cart-not-found
	_, err = svc.Cart(ctx, customer.ID)
	assert.ErrorIs(t, err, bookstore.ErrCartNotFound)
}

func TestUpdateCartItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := addAuthor(t, svc)
	book := addBook(t, svc, author.ID, 14.99, 5)
	other := addBook(t, svc, author.ID, 9.99, 5)
	customer := addCustomer(t, svc)

	_, err := svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: book.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.UpdateCartItem(ctx, customer.ID, book.ID, 0)
	assert.ErrorIs(t, err, bookstore.ErrInvalidInput)
	_, err = svc.UpdateCartItem(ctx, 999, book.ID, 2)
	assert.ErrorIs(t, err, bookstore.ErrCustomerNotFound)
	_, err = svc.UpdateCartItem(ctx, customer.ID, 999, 2)
	assert.ErrorIs(t, err, bookstore.ErrBookNotFound)

	// update cannot create a line item, however valid the quantity
	_, err = svc.UpdateCartItem(ctx, customer.ID, other.ID, 2)
	assert.ErrorIs(t, err, bookstore.ErrInvalidInput)

	_, err = svc.UpdateCartItem(ctx, customer.ID, book.ID, 6)
	var oos *bookstore.OutOfStockError
	assert.ErrorAs(t, err, &oos)

	updated, err := svc.UpdateCartItem(ctx, customer.ID, book.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, bookstore.CartItem{BookID: book.ID, Quantity: 4}, updated)
}

func TestRemoveCartItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := addAuthor(t, svc)
	book := addBook(t, svc, author.ID, 14.99, 5)
	customer := addCustomer(t, svc)

	assert.ErrorIs(t, svc.RemoveCartItem(ctx, 999, book.ID), bookstore.ErrCustomerNotFound)
	assert.ErrorIs(t, svc.RemoveCartItem(ctx, customer.ID, 999), bookstore.ErrBookNotFound)

	// removing an item that was never added succeeds silently
	require.NoError(t, svc.RemoveCartItem(ctx, customer.ID, book.ID))

	_, err := svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: book.ID, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, svc.RemoveCartItem(ctx, customer.ID, book.ID))
	_, err = svc.Cart(ctx, customer.ID)
	assert.ErrorIs(t, err, bookstore.ErrCartNotFound)
}

func TestCheckoutPreconditions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	customer := addCustomer(t, svc)

	_, err := svc.Checkout(ctx, 999)
	assert.ErrorIs(t, err, bookstore.ErrCustomerNotFound)

	_, err = svc.Checkout(ctx, customer.ID)
	assert.ErrorIs(t, err, bookstore.ErrCartNotFound)

	// neither failure may leave an order behind
	orders, err := svc.CustomerOrders(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckoutSuccess(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := addAuthor(t, svc)
	bookX := addBook(t, svc, author.ID, 19.99, 10)
	customer := addCustomer(t, svc)

	_, err := svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: bookX.ID, Quantity: 3})
	require.NoError(t, err)

	order, err := svc.Checkout(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, order.CustomerID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, bookstore.CartItem{BookID: bookX.ID, Quantity: 3}, order.Items[0])
	assert.InDelta(t, 59.97, order.TotalPrice, 1e-9)

	got, _ := svc.Book(ctx, bookX.ID)
	assert.Equal(t, 7, got.Stock)

	// cart is cleared, so it reads as not found
	_, err = svc.Cart(ctx, customer.ID)
	assert.ErrorIs(t, err, bookstore.ErrCartNotFound)

	orders, err := svc.CustomerOrders(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestCheckoutOutOfStockIsAtomic(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := addAuthor(t, svc)
	bookA := addBook(t, svc, author.ID, 10.0, 5)
	bookB := addBook(t, svc, author.ID, 5.0, 1)
	customer := addCustomer(t, svc)

	_, err := svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: bookA.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: bookB.ID, Quantity: 1})
	require.NoError(t, err)

	// drain bookB after it entered the cart
	bookB.Stock = 0
	_, err = svc.UpdateBook(ctx, bookB.ID, bookB)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, customer.ID)
	var oos *bookstore.OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, bookB.ID, oos.BookID)
	assert.Equal(t, 1, oos.Requested)
	assert.Equal(t, 0, oos.Available)

	// all-or-nothing: no stock was decremented, even for lines that validated
	gotA, _ := svc.Book(ctx, bookA.ID)
	assert.Equal(t, 5, gotA.Stock)

	// no order was created and the cart keeps its items
	orders, err := svc.CustomerOrders(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
	items, err := svc.Cart(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCheckoutMissingBook(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := addAuthor(t, svc)
	book := addBook(t, svc, author.ID, 10.0, 5)
	customer := addCustomer(t, svc)

	_, err := svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: book.ID, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteBook(ctx, book.ID))

	_, err = svc.Checkout(ctx, customer.ID)
	assert.ErrorIs(t, err, bookstore.ErrBookNotFound)
}

func TestOrderSnapshotIsImmutable(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := addAuthor(t, svc)
	book := addBook(t, svc, author.ID, 10.0, 5)
	customer := addCustomer(t, svc)

	_, err := svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: book.ID, Quantity: 2})
	require.NoError(t, err)
	order, err := svc.Checkout(ctx, customer.ID)
	require.NoError(t, err)

	// a later price change never reaches the placed order
	book.Price = 99.0
	book.Stock = 3
	_, err = svc.UpdateBook(ctx, book.ID, book)
	require.NoError(t, err)

	got, err := svc.CustomerOrder(ctx, customer.ID, order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, got.TotalPrice, 1e-9)
}

func TestCustomerOrderLookup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := addAuthor(t, svc)
	book := addBook(t, svc, author.ID, 10.0, 5)
	first := addCustomer(t, svc)
	second, err := svc.CreateCustomer(ctx, bookstore.Customer{
		FirstName: "Jane", LastName: "Smith", Email: "jane@example.com", Password: "secret",
	})
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, second.ID, bookstore.CartItem{BookID: book.ID, Quantity: 1})
	require.NoError(t, err)
	order, err := svc.Checkout(ctx, second.ID)
	require.NoError(t, err)

	_, err = svc.CustomerOrders(ctx, 999)
	assert.ErrorIs(t, err, bookstore.ErrCustomerNotFound)

	// another customer's order id must not resolve
	_, err = svc.CustomerOrder(ctx, first.ID, order.ID)
	assert.ErrorIs(t, err, bookstore.ErrInvalidInput)

	_, err = svc.CustomerOrder(ctx, second.ID, 999)
	assert.ErrorIs(t, err, bookstore.ErrInvalidInput)

	got, err := svc.CustomerOrder(ctx, second.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

// stallingStore pauses the next armed book read, opening a window in which
// a concurrent writer could interleave if the service did not serialize
// book mutations against checkout.
type stallingStore struct {
	*memory.Store
	armed   atomic.Bool
	stalled chan struct{}
}

func (ss *stallingStore) Book(ctx context.Context, id int) (bookstore.Book, error) {
	if ss.armed.CompareAndSwap(true, false) {
		close(ss.stalled)
		time.Sleep(100 * time.Millisecond)
	}
	return ss.Store.Book(ctx, id)
}

func TestBookWriteCannotInterleaveCheckout(t *testing.T) {
	ctx := context.Background()
	ss := &stallingStore{Store: memory.New(), stalled: make(chan struct{})}
	svc := bookstore.NewService(ss, zap.NewNop())

	author := addAuthor(t, svc)
	book := addBook(t, svc, author.ID, 10.0, 10)
	customer := addCustomer(t, svc)
	_, err := svc.AddToCart(ctx, customer.ID, bookstore.CartItem{BookID: book.ID, Quantity: 3})
	require.NoError(t, err)

	// while checkout stalls mid-validation, try to commit a book write
	ss.armed.Store(true)
	done := make(chan error, 1)
	go func() {
		<-ss.stalled
		book.Price = 99.0
		book.Stock = 1
		_, err := svc.UpdateBook(ctx, book.ID, book)
		done <- err
	}()

	order, err := svc.Checkout(ctx, customer.ID)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, order.TotalPrice, 1e-9)
	require.NoError(t, <-done)

	// the write landed after checkout instead of being erased by the
	// checkout's stock write-back
	got, err := svc.Book(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)
	assert.InDelta(t, 99.0, got.Price, 1e-9)
}

func TestSeed(t *testing.T) {
	store := memory.New()
	require.NoError(t, bookstore.Seed(context.Background(), store))

	authors, _ := store.Authors(context.Background())
	books, _ := store.Books(context.Background())
	customers, _ := store.Customers(context.Background())
	assert.Len(t, authors, 3)
	assert.Len(t, books, 5)
	assert.Len(t, customers, 2)
}
