package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

// CatalogHandler serves the public, read-only catalog routes. They
// query the same book store the review routes mutate, so a posted
// review is immediately visible here.
type CatalogHandler struct {
	books domain.BookRepository
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(books domain.BookRepository) *CatalogHandler {
	return &CatalogHandler{books: books}
}

// RegisterRoutes registers the public catalog routes on the given router.
func (h *CatalogHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.ListBooks)
	r.GET("/isbn/:isbn", h.GetByISBN)
	r.GET("/author/:author", h.GetByAuthor)
	r.GET("/title/:title", h.GetByTitle)
	r.GET("/review/:isbn", h.GetReviews)
}

// ListBooks returns the whole catalog keyed by ISBN.
// GET /.
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	books, err := h.books.All(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, books)
}

// GetByISBN returns a single book.
// GET /isbn/:isbn.
func (h *CatalogHandler) GetByISBN(c *gin.Context) {
	book, err := h.books.ByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}

// GetByAuthor returns all books by an author. No match is an empty
// list, not an error.
// GET /author/:author.
func (h *CatalogHandler) GetByAuthor(c *gin.Context) {
	books, err := h.books.ByAuthor(c.Request.Context(), c.Param("author"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetByTitle returns all books with a title. No match is an empty
// list, not an error.
// GET /title/:title.
func (h *CatalogHandler) GetByTitle(c *gin.Context) {
	books, err := h.books.ByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetReviews returns the reviews map of a book.
// GET /review/:isbn.
func (h *CatalogHandler) GetReviews(c *gin.Context) {
	book, err := h.books.ByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		return
	}
	c.JSON(http.StatusOK, book.Reviews)
}

func (h *CatalogHandler) internalError(c *gin.Context, err error) {
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Catalog read failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
