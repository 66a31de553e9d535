package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bookstore/pkg/bookstore"
)

type ctxKey int

const requestIDKey ctxKey = iota

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// errorResponse is the wire shape for every failure. The stock fields are
// only populated for out-of-stock failures.
type errorResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	BookID    int    `json:"bookId,omitempty"`
	Requested int    `json:"requested,omitempty"`
	Available int    `json:"available,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps a service failure to a transport status: any not-found
// kind to 404, invalid input and out-of-stock to 400, the rest to 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, bookstore.ErrAuthorNotFound),
		errors.Is(err, bookstore.ErrBookNotFound),
		errors.Is(err, bookstore.ErrCustomerNotFound),
		errors.Is(err, bookstore.ErrCartNotFound):
		status = http.StatusNotFound
	case errors.Is(err, bookstore.ErrInvalidInput):
		status = http.StatusBadRequest
	}

	body := errorResponse{
		Status:    status,
		Message:   err.Error(),
		Timestamp: time.Now().UnixMilli(),
	}

	var oos *bookstore.OutOfStockError
	if errors.As(err, &oos) {
		body.Status = http.StatusBadRequest
		body.BookID = oos.BookID
		body.Requested = oos.Requested
		body.Available = oos.Available
	}

	if body.Status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestID(r.Context())),
		)
	}
	respondJSON(w, body.Status, body)
}

func respondInvalid(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{
		Status:    http.StatusBadRequest,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	})
}

// pathID parses an integer path variable.
func pathID(r *http.Request, key string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[key])
}
