package book

import (
	"errors"
	"log/slog"
	"net/http"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// bookReq uses pointers so that a missing field is distinguishable from a zero value.
type bookReq struct {
	ID     *int    `json:"id" validate:"required"`
	Title  *string `json:"title" validate:"required"`
	Author *string `json:"author" validate:"required"`
	Year   *int    `json:"year" validate:"required"`
}

func (req bookReq) toBook() Book {
	return Book{
		ID:     *req.ID,
		Title:  *req.Title,
		Author: *req.Author,
		Year:   *req.Year,
	}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("GET /books/{$}", h.List)
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("POST /books/{$}", h.Create)
	mux.HandleFunc("GET /books/{id}", h.Get)
	mux.HandleFunc("PUT /books/{id}", h.Replace)
	mux.HandleFunc("DELETE /books/{id}", h.Delete)
}

// List handles GET /books/
// @Summary List books
// @Description Get all books in insertion order
// @Tags books
// @Produce json
// @Success 200 {array} Book
// @Router /books/ [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSONOK(w, r, books)
}

// Get handles GET /books/{id}
// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, detail := httpx.PathInt(r, "id")
	if detail != nil {
		httpx.ValidationFailed(w, r, []httpx.ErrorDetail{*detail})
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONOK(w, r, b)
}

// Create handles POST /books/
// @Summary Create book
// @Tags books
// @Accept json
// @Produce json
// @Param request body bookReq true "Book"
// @Success 201 {object} Book
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books/ [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookReq
	if details := httpx.DecodeJSON(r, &req); len(details) > 0 {
		httpx.ValidationFailed(w, r, details)
		return
	}

	b, err := h.service.Create(r.Context(), req.toBook())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, b)
}

// Replace handles PUT /books/{id}
// @Summary Replace book
// @Description The body id must equal the path id
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body bookReq true "Book"
// @Success 200 {object} Book
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, detail := httpx.PathInt(r, "id")
	if detail != nil {
		httpx.ValidationFailed(w, r, []httpx.ErrorDetail{*detail})
		return
	}

	var req bookReq
	if details := httpx.DecodeJSON(r, &req); len(details) > 0 {
		httpx.ValidationFailed(w, r, details)
		return
	}

	b, err := h.service.Replace(r.Context(), id, req.toBook())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONOK(w, r, b)
}

// Delete handles DELETE /books/{id}
// @Summary Delete book
// @Tags books
// @Param id path int true "Book ID"
// @Success 204 "No Content"
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, detail := httpx.PathInt(r, "id")
	if detail != nil {
		httpx.ValidationFailed(w, r, []httpx.ErrorDetail{*detail})
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrConflict):
		httpx.JSONError(w, r, http.StatusBadRequest, "CONFLICT", "Book ID already exists", nil)
	case errors.Is(err, ErrIDMismatch):
		httpx.JSONError(w, r, http.StatusBadRequest, "ID_MISMATCH", "Book ID in body must match path", []httpx.ErrorDetail{
			{Field: "id", Message: "id must equal the id in the path"},
		})
	default:
		h.internalError(w, r, err)
	}
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("book handler", "request_id", httpx.RequestIDFrom(r), "path", r.URL.Path, "err", err)
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
