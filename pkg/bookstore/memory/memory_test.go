package memory

import (
	"context"
	"testing"

	"bookstore/pkg/bookstore"
)

func TestAuthorLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	a, err := s.AddAuthor(ctx, bookstore.Author{FirstName: "George", LastName: "Orwell"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if a.ID != 1 {
		t.Fatalf("expected id 1, got %d", a.ID)
	}
	got, err := s.Author(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != a {
		t.Fatalf("expected %+v, got %+v", a, got)
	}

	a.Bio = "English novelist"
	if _, err := s.UpdateAuthor(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = s.Author(ctx, a.ID)
	if got.Bio != "English novelist" {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := s.DeleteAuthor(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Author(ctx, a.ID); err != bookstore.ErrAuthorNotFound {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
	// deleting again is a no-op at this layer
	if err := s.DeleteAuthor(ctx, a.ID); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
}

func TestIDsNeverReused(t *testing.T) {
	ctx := context.Background()
	s := New()

	first, _ := s.AddAuthor(ctx, bookstore.Author{FirstName: "A", LastName: "B"})
	if err := s.DeleteAuthor(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	second, _ := s.AddAuthor(ctx, bookstore.Author{FirstName: "C", LastName: "D"})
	if second.ID != first.ID+1 {
		t.Fatalf("expected id %d, got %d", first.ID+1, second.ID)
	}
}

func TestAddKeepsExistingID(t *testing.T) {
	ctx := context.Background()
	s := New()

	b, _ := s.AddBook(ctx, bookstore.Book{ID: 42, Title: "1984"})
	if b.ID != 42 {
		t.Fatalf("expected id 42, got %d", b.ID)
	}
	next, _ := s.AddBook(ctx, bookstore.Book{Title: "Animal Farm"})
	if next.ID != 1 {
		t.Fatalf("counter should be untouched by explicit ids, got %d", next.ID)
	}
}

func TestBooksByAuthor(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.AddBook(ctx, bookstore.Book{Title: "1984", AuthorID: 2})
	s.AddBook(ctx, bookstore.Book{Title: "Animal Farm", AuthorID: 2})
	s.AddBook(ctx, bookstore.Book{Title: "Mockingbird", AuthorID: 3})

	books, err := s.BooksByAuthor(ctx, 2)
	if err != nil {
		t.Fatalf("books by author: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	none, _ := s.BooksByAuthor(ctx, 99)
	if len(none) != 0 {
		t.Fatalf("expected no books, got %d", len(none))
	}
}

func TestCartStorage(t *testing.T) {
	ctx := context.Background()
	s := New()

	items, err := s.Cart(ctx, 1)
	if err != nil {
		t.Fatalf("cart: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}

	s.UpsertCartItem(ctx, 1, bookstore.CartItem{BookID: 5, Quantity: 2})
	s.UpsertCartItem(ctx, 1, bookstore.CartItem{BookID: 5, Quantity: 7})
	items, _ = s.Cart(ctx, 1)
	if len(items) != 1 {
		t.Fatalf("expected 1 item after upsert, got %d", len(items))
	}
	if items[0].Quantity != 7 {
		t.Fatalf("upsert should overwrite quantity, got %d", items[0].Quantity)
	}

	// removing an item that is not there is fine
	if err := s.RemoveCartItem(ctx, 1, 99); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if err := s.RemoveCartItem(ctx, 1, 5); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items, _ = s.Cart(ctx, 1)
	if len(items) != 0 {
		t.Fatalf("expected empty cart after remove, got %d items", len(items))
	}
}

func TestOrdersAndHistory(t *testing.T) {
	ctx := context.Background()
	s := New()

	o1, err := s.CreateOrder(ctx, 1, []bookstore.CartItem{{BookID: 3, Quantity: 2}}, 29.98)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	o2, _ := s.CreateOrder(ctx, 1, []bookstore.CartItem{{BookID: 4, Quantity: 1}}, 12.99)
	if o1.ID != 1 || o2.ID != 2 {
		t.Fatalf("unexpected order ids: %d, %d", o1.ID, o2.ID)
	}

	history, _ := s.CustomerOrders(ctx, 1)
	if len(history) != 2 || history[0].ID != o1.ID || history[1].ID != o2.ID {
		t.Fatalf("history not in placement order: %+v", history)
	}

	got, err := s.Order(ctx, o1.ID)
	if err != nil || got.TotalPrice != 29.98 {
		t.Fatalf("order lookup: %v %+v", err, got)
	}
}

func TestOrderItemsAreDetached(t *testing.T) {
	ctx := context.Background()
	s := New()

	created, err := s.CreateOrder(ctx, 1, []bookstore.CartItem{{BookID: 3, Quantity: 2}}, 29.98)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	// mutating any returned snapshot must not reach stored history
	created.Items[0].Quantity = 99

	got, _ := s.Order(ctx, created.ID)
	if got.Items[0].Quantity != 2 {
		t.Fatalf("stored order mutated through CreateOrder result: %+v", got.Items)
	}
	got.Items[0].Quantity = 99
	again, _ := s.Order(ctx, created.ID)
	if again.Items[0].Quantity != 2 {
		t.Fatalf("stored order mutated through Order result: %+v", again.Items)
	}

	history, _ := s.CustomerOrders(ctx, 1)
	history[0].Items[0].Quantity = 99
	history, _ = s.CustomerOrders(ctx, 1)
	if history[0].Items[0].Quantity != 2 {
		t.Fatalf("stored order mutated through CustomerOrders result: %+v", history[0].Items)
	}
}

func TestDeleteCustomerPurgesCartAndHistory(t *testing.T) {
	ctx := context.Background()
	s := New()

	c, _ := s.AddCustomer(ctx, bookstore.Customer{FirstName: "John", LastName: "Doe"})
	s.UpsertCartItem(ctx, c.ID, bookstore.CartItem{BookID: 1, Quantity: 1})
	o, _ := s.CreateOrder(ctx, c.ID, []bookstore.CartItem{{BookID: 1, Quantity: 1}}, 9.99)

	if err := s.DeleteCustomer(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Customer(ctx, c.ID); err != bookstore.ErrCustomerNotFound {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	items, _ := s.Cart(ctx, c.ID)
	if len(items) != 0 {
		t.Fatalf("cart should be purged, got %d items", len(items))
	}
	history, _ := s.CustomerOrders(ctx, c.ID)
	if len(history) != 0 {
		t.Fatalf("history should be purged, got %d orders", len(history))
	}
	// the order itself is orphaned, not deleted
	if _, err := s.Order(ctx, o.ID); err != nil {
		t.Fatalf("orphaned order should remain: %v", err)
	}
}
