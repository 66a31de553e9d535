package main

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, traceMiddleware, loggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/authors", createAuthorHandler).Methods(http.MethodPost)
	api.HandleFunc("/authors", listAuthorsHandler).Methods(http.MethodGet)
	api.HandleFunc("/authors/{id}", getAuthorHandler).Methods(http.MethodGet)
	api.HandleFunc("/authors/{id}", updateAuthorHandler).Methods(http.MethodPut)
	api.HandleFunc("/authors/{id}", deleteAuthorHandler).Methods(http.MethodDelete)
	api.HandleFunc("/authors/{id}/books", authorBooksHandler).Methods(http.MethodGet)

	api.HandleFunc("/books", createBookHandler).Methods(http.MethodPost)
	api.HandleFunc("/books", listBooksHandler).Methods(http.MethodGet)
	api.HandleFunc("/books/{id}", getBookHandler).Methods(http.MethodGet)
	api.HandleFunc("/books/{id}", updateBookHandler).Methods(http.MethodPut)
	api.HandleFunc("/books/{id}", deleteBookHandler).Methods(http.MethodDelete)

	api.HandleFunc("/customers", createCustomerHandler).Methods(http.MethodPost)
	api.HandleFunc("/customers", listCustomersHandler).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", getCustomerHandler).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", updateCustomerHandler).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id}", deleteCustomerHandler).Methods(http.MethodDelete)

	api.HandleFunc("/customers/{customerId}/cart/items", addCartItemHandler).Methods(http.MethodPost)
	api.HandleFunc("/customers/{customerId}/cart", getCartHandler).Methods(http.MethodGet)
	api.HandleFunc("/customers/{customerId}/cart/items/{bookId}", updateCartItemHandler).Methods(http.MethodPut)
	api.HandleFunc("/customers/{customerId}/cart/items/{bookId}", removeCartItemHandler).Methods(http.MethodDelete)

	api.HandleFunc("/customers/{customerId}/orders", placeOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/customers/{customerId}/orders", customerOrdersHandler).Methods(http.MethodGet)
	api.HandleFunc("/customers/{customerId}/orders/{orderId}", getOrderHandler).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return r
}

// requestIDMiddleware tags every request with an id for log correlation.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.Method
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				name = r.Method + " " + tpl
			}
		}
		ctx, span := tracer.Start(r.Context(), name)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sr.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", requestID(r.Context())),
		)
	})
}
