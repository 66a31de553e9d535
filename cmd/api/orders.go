package main

import (
	"net/http"

	"go.uber.org/zap"
)

// placeOrderHandler checks out the customer's cart into a new order.
// @Summary Place order
// @Produce json
// @Param customerId path int true "Customer ID"
// @Success 201 {object} bookstore.Order
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /customers/{customerId}/orders [post]
func placeOrderHandler(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customerId")
	if err != nil {
		respondInvalid(w, "invalid customer ID")
		return
	}
	order, err := svc.Checkout(r.Context(), customerID)
	if err != nil {
		log.Info("checkout rejected",
			zap.Int("customer_id", customerID),
			zap.Error(err),
			zap.String("request_id", requestID(r.Context())),
		)
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// customerOrdersHandler lists a customer's orders.
// @Summary List customer orders
// @Produce json
// @Param customerId path int true "Customer ID"
// @Success 200 {array} bookstore.Order
// @Failure 404 {object} errorResponse
// @Router /customers/{customerId}/orders [get]
func customerOrdersHandler(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customerId")
	if err != nil {
		respondInvalid(w, "invalid customer ID")
		return
	}
	orders, err := svc.CustomerOrders(r.Context(), customerID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// getOrderHandler retrieves one of the customer's orders.
// @Summary Get customer order
// @Produce json
// @Param customerId path int true "Customer ID"
// @Param orderId path int true "Order ID"
// @Success 200 {object} bookstore.Order
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /customers/{customerId}/orders/{orderId} [get]
func getOrderHandler(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customerId")
	if err != nil {
		respondInvalid(w, "invalid customer ID")
		return
	}
	orderID, err := pathID(r, "orderId")
	if err != nil {
		respondInvalid(w, "invalid order ID")
		return
	}
	order, err := svc.CustomerOrder(r.Context(), customerID, orderID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
