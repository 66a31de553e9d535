package main

import (
	"encoding/json"
	"net/http"

	"bookstore/pkg/bookstore"
)

// addCartItemHandler puts a book into the customer's cart.
// @Summary Add item to cart
// @Accept json
// @Produce json
// @Param customerId path int true "Customer ID"
// @Param item body bookstore.CartItem true "Cart item"
// @Success 201 {object} bookstore.CartItem
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /customers/{customerId}/cart/items [post]
func addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customerId")
	if err != nil {
		respondInvalid(w, "invalid customer ID")
		return
	}
	var item bookstore.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondInvalid(w, "invalid cart item payload")
		return
	}
	added, err := svc.AddToCart(r.Context(), customerID, item)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, added)
}

// getCartHandler returns the customer's cart. An empty cart is a 404.
// @Summary Get cart
// @Produce json
// @Param customerId path int true "Customer ID"
// @Success 200 {array} bookstore.CartItem
// @Failure 404 {object} errorResponse
// @Router /customers/{customerId}/cart [get]
func getCartHandler(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customerId")
	if err != nil {
		respondInvalid(w, "invalid customer ID")
		return
	}
	items, err := svc.Cart(r.Context(), customerID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// updateCartItemHandler replaces the quantity of a line item already in
// the cart.
// @Summary Update cart item
// @Accept json
// @Produce json
// @Param customerId path int true "Customer ID"
// @Param bookId path int true "Book ID"
// @Param item body bookstore.CartItem true "Cart item"
// @Success 200 {object} bookstore.CartItem
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /customers/{customerId}/cart/items/{bookId} [put]
func updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customerId")
	if err != nil {
		respondInvalid(w, "invalid customer ID")
		return
	}
	bookID, err := pathID(r, "bookId")
	if err != nil {
		respondInvalid(w, "invalid book ID")
		return
	}
	var item bookstore.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondInvalid(w, "invalid cart item payload")
		return
	}
	updated, err := svc.UpdateCartItem(r.Context(), customerID, bookID, item.Quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// removeCartItemHandler deletes a line item from the cart.
// @Summary Remove cart item
// @Param customerId path int true "Customer ID"
// @Param bookId path int true "Book ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /customers/{customerId}/cart/items/{bookId} [delete]
func removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customerId")
	if err != nil {
		respondInvalid(w, "invalid customer ID")
		return
	}
	bookID, err := pathID(r, "bookId")
	if err != nil {
		respondInvalid(w, "invalid book ID")
		return
	}
	if err := svc.RemoveCartItem(r.Context(), customerID, bookID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
