package main

import (
	"encoding/json"
	"net/http"

	"bookstore/pkg/bookstore"
)

// createAuthorHandler creates a new author.
// @Summary Create author
// @Accept json
// @Produce json
// @Param author body bookstore.Author true "Author"
// @Success 201 {object} bookstore.Author
// @Failure 400 {object} errorResponse
// @Router /authors [post]
func createAuthorHandler(w http.ResponseWriter, r *http.Request) {
	var a bookstore.Author
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		respondInvalid(w, "invalid author payload")
		return
	}
	created, err := svc.CreateAuthor(r.Context(), a)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// listAuthorsHandler lists all authors.
// @Summary List authors
// @Produce json
// @Success 200 {array} bookstore.Author
// @Router /authors [get]
func listAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	authors, err := svc.Authors(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, authors)
}

// getAuthorHandler retrieves an author by ID.
// @Summary Get author
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} bookstore.Author
// @Failure 404 {object} errorResponse
// @Router /authors/{id} [get]
func getAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalid(w, "invalid author ID")
		return
	}
	a, err := svc.Author(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

// updateAuthorHandler updates an existing author.
// @Summary Update author
// @Accept json
// @Produce json
// @Param id path int true "Author ID"
// @Param author body bookstore.Author true "Author"
// @Success 200 {object} bookstore.Author
// @Failure 404 {object} errorResponse
// @Router /authors/{id} [put]
func updateAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalid(w, "invalid author ID")
		return
	}
	var a bookstore.Author
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		respondInvalid(w, "invalid author payload")
		return
	}
	updated, err := svc.UpdateAuthor(r.Context(), id, a)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// deleteAuthorHandler removes an author.
// @Summary Delete author
// @Param id path int true "Author ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /authors/{id} [delete]
func deleteAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalid(w, "invalid author ID")
		return
	}
	if err := svc.DeleteAuthor(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorBooksHandler lists all books by an author.
// @Summary List an author's books
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {array} bookstore.Book
// @Failure 404 {object} errorResponse
// @Router /authors/{id}/books [get]
func authorBooksHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalid(w, "invalid author ID")
		return
	}
	books, err := svc.AuthorBooks(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, books)
}
