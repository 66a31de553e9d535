package main

import (
	"encoding/json"
	"net/http"

	"bookstore/pkg/bookstore"
)

// createBookHandler creates a new book.
// @Summary Create book
// @Accept json
// @Produce json
// @Param book body bookstore.Book true "Book"
// @Success 201 {object} bookstore.Book
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /books [post]
func createBookHandler(w http.ResponseWriter, r *http.Request) {
	var b bookstore.Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respondInvalid(w, "invalid book payload")
		return
	}
	created, err := svc.CreateBook(r.Context(), b)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// listBooksHandler lists all books.
// @Summary List books
// @Produce json
// @Success 200 {array} bookstore.Book
// @Router /books [get]
func listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := svc.Books(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, books)
}

// getBookHandler retrieves a book by ID.
// @Summary Get book
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} bookstore.Book
// @Failure 404 {object} errorResponse
// @Router /books/{id} [get]
func getBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalid(w, "invalid book ID")
		return
	}
	b, err := svc.Book(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// updateBookHandler updates an existing book.
// @Summary Update book
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param book body bookstore.Book true "Book"
// @Success 200 {object} bookstore.Book
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /books/{id} [put]
func updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalid(w, "invalid book ID")
		return
	}
	var b bookstore.Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respondInvalid(w, "invalid book payload")
		return
	}
	updated, err := svc.UpdateBook(r.Context(), id, b)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// deleteBookHandler removes a book.
// @Summary Delete book
// @Param id path int true "Book ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /books/{id} [delete]
func deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalid(w, "invalid book ID")
		return
	}
	if err := svc.DeleteBook(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
