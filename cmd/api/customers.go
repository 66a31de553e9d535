package main

import (
	"encoding/json"
	"net/http"

	"bookstore/pkg/bookstore"
)

// createCustomerHandler creates a new customer.
// @Summary Create customer
// @Accept json
// @Produce json
// @Param customer body bookstore.Customer true "Customer"
// @Success 201 {object} bookstore.Customer
// @Failure 400 {object} errorResponse
// @Router /customers [post]
func createCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var c bookstore.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondInvalid(w, "invalid customer payload")
		return
	}
	created, err := svc.CreateCustomer(r.Context(), c)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// listCustomersHandler lists all customers.
// @Summary List customers
// @Produce json
// @Success 200 {array} bookstore.Customer
// @Router /customers [get]
func listCustomersHandler(w http.ResponseWriter, r *http.Request) {
	customers, err := svc.Customers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

// getCustomerHandler retrieves a customer by ID.
// @Summary Get customer
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} bookstore.Customer
// @Failure 404 {object} errorResponse
// @Router /customers/{id} [get]
func getCustomerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalid(w, "invalid customer ID")
		return
	}
	c, err := svc.Customer(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// updateCustomerHandler updates an existing customer.
// @Summary Update customer
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param customer body bookstore.Customer true "Customer"
// @Success 200 {object} bookstore.Customer
// @Failure 404 {object} errorResponse
// @Router /customers/{id} [put]
func updateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalid(w, "invalid customer ID")
		return
	}
	var c bookstore.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondInvalid(w, "invalid customer payload")
		return
	}
	updated, err := svc.UpdateCustomer(r.Context(), id, c)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// deleteCustomerHandler removes a customer together with their cart and
// order history.
// @Summary Delete customer
// @Param id path int true "Customer ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /customers/{id} [delete]
func deleteCustomerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalid(w, "invalid customer ID")
		return
	}
	if err := svc.DeleteCustomer(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
