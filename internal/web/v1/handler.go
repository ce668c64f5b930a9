package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/catalog-service/internal/core/domain"
	logicv1 "github.com/duynhne/catalog-service/internal/logic/v1"
	"github.com/duynhne/catalog-service/middleware"
)

// Handler groups the registered-user HTTP handlers: registration,
// login and the protected review routes. Dependencies are injected via
// the constructor — no global state.
type Handler struct {
	auth       *logicv1.AuthService
	reviews    *logicv1.ReviewService
	cookieName string
	sessionTTL time.Duration
}

// NewHandler creates a new Handler. cookieName and sessionTTL control
// the session cookie issued at login.
func NewHandler(auth *logicv1.AuthService, reviews *logicv1.ReviewService, cookieName string, sessionTTL time.Duration) *Handler {
	return &Handler{
		auth:       auth,
		reviews:    reviews,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
	}
}

// RegisterRoutes registers the registered-user routes on the given router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.PUT("/auth/review/:isbn", h.PutReview)
	r.DELETE("/auth/review/:isbn", h.DeleteReview)
}

// sessionID extracts the caller-session identity from the session
// cookie. An absent cookie yields "", which the logic layer reports as
// unauthenticated.
func (h *Handler) sessionID(c *gin.Context) string {
	id, err := c.Cookie(h.cookieName)
	if err != nil {
		return ""
	}
	return id
}

// Register handles HTTP request for user registration.
// POST /register, body {username, password}.
func (h *Handler) Register(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password required"})
		return
	}

	if err := h.auth.Register(ctx, creds); err != nil {
		span.RecordError(err)
		logger.Warn().Err(err).Str("username", creds.Username).Msg("Registration failed")

		switch {
		case errors.Is(err, logicv1.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password required"})
		case errors.Is(err, logicv1.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	logger.Info().Str("username", creds.Username).Msg("User registered")
	c.JSON(http.StatusCreated, gin.H{"message": "User successfully registered. Now you can login"})
}

// Login handles HTTP request for user login. On success the caller
// receives a session cookie whose value keys the server-side session.
// POST /login, body {username, password}.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password required"})
		return
	}

	// Reuse the caller's session identity when the cookie is already
	// present, so the carrier binding is overwritten instead of a
	// second live session piling up under a fresh key.
	sessionID, err := h.auth.Login(ctx, creds, h.sessionID(c))
	if err != nil {
		span.RecordError(err)
		logger.Warn().Err(err).Msg("Login failed")

		switch {
		case errors.Is(err, logicv1.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password required"})
		case errors.Is(err, logicv1.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	c.SetCookie(h.cookieName, sessionID, int(h.sessionTTL.Seconds()), "/", "", false, true)

	logger.Info().Str("username", creds.Username).Msg("Login successful")
	c.JSON(http.StatusOK, gin.H{"message": "User successfully logged in!"})
}

// PutReview creates or replaces the caller's review on a book.
// PUT /auth/review/:isbn?review=<text>.
func (h *Handler) PutReview(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)
	isbn := c.Param("isbn")
	text := c.Query("review")

	book, err := h.reviews.Upsert(ctx, h.sessionID(c), isbn, text)
	if err != nil {
		span.RecordError(err)
		logger.Warn().Err(err).Str("isbn", isbn).Msg("Review upsert failed")
		middleware.ReviewMutations.WithLabelValues("upsert", "error").Inc()

		switch {
		case errors.Is(err, logicv1.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "You need to be logged in to post a review"})
		case errors.Is(err, logicv1.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		case errors.Is(err, logicv1.ErrMissingReview):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Review text is required (use ?review=<text>)"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	logger.Info().Str("isbn", isbn).Msg("Review posted")
	middleware.ReviewMutations.WithLabelValues("upsert", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"message": "Review posted/modified successfully",
		"book":    book,
	})
}

// DeleteReview removes the caller's review from a book.
// DELETE /auth/review/:isbn.
func (h *Handler) DeleteReview(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)
	isbn := c.Param("isbn")

	book, err := h.reviews.Remove(ctx, h.sessionID(c), isbn)
	if err != nil {
		span.RecordError(err)
		logger.Warn().Err(err).Str("isbn", isbn).Msg("Review delete failed")
		middleware.ReviewMutations.WithLabelValues("delete", "error").Inc()

		switch {
		case errors.Is(err, logicv1.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "You need to be logged in to delete a review"})
		case errors.Is(err, logicv1.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		case errors.Is(err, logicv1.ErrNoReview):
			c.JSON(http.StatusBadRequest, gin.H{"message": "No review found for this user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	logger.Info().Str("isbn", isbn).Msg("Review deleted")
	middleware.ReviewMutations.WithLabelValues("delete", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted successfully",
		"book":    book,
	})
}
