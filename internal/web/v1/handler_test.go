package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/catalog-service/internal/core/repository"
	logicv1 "github.com/duynhne/catalog-service/internal/logic/v1"
)

const testCookie = "catalog_session"

func newTestRouter(t *testing.T, ttl time.Duration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewUserRepository()
	sessions := repository.NewSessionRepository()
	books := repository.NewBookRepository()
	require.NoError(t, repository.SeedBooks(context.Background(), books))

	tokens := logicv1.NewTokenService("test-key", "catalog-service", ttl)
	auth := logicv1.NewAuthService(users, sessions, tokens)
	reviews := logicv1.NewReviewService(auth, books)

	r := gin.New()
	NewHandler(auth, reviews, testCookie, ttl).RegisterRoutes(r)
	NewCatalogHandler(books).RegisterRoutes(r)
	return r
}

func doJSON(r *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	t.Fatal("response carries no session cookie")
	return nil
}

// registerAndLogin runs the full anonymous → authenticated transition
// and returns the session cookie.
func registerAndLogin(t *testing.T, r *gin.Engine, username, password string) *http.Cookie {
	t.Helper()
	creds := `{"username":"` + username + `","password":"` + password + `"}`

	w := doJSON(r, http.MethodPost, "/register", creds, nil)
	require.Equal(t, http.StatusCreated, w.Code, "register: %s", w.Body.String())

	w = doJSON(r, http.MethodPost, "/login", creds, nil)
	require.Equal(t, http.StatusOK, w.Code, "login: %s", w.Body.String())
	return sessionCookie(t, w)
}

func TestRegisterRoute(t *testing.T) {
	r := newTestRouter(t, time.Hour)

	w := doJSON(r, http.MethodPost, "/register", `{"username":"alice","password":"pw1"}`, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	t.Run("duplicate", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/register", `{"username":"alice","password":"pw2"}`, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "User already exists", decodeBody(t, w)["message"])
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/register", `{"username":"bob"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Username and password required", decodeBody(t, w)["message"])
	})
}

func TestLoginRoute(t *testing.T) {
	r := newTestRouter(t, time.Hour)
	doJSON(r, http.MethodPost, "/register", `{"username":"alice","password":"pw1"}`, nil)

	t.Run("success", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", `{"username":"alice","password":"pw1"}`, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "User successfully logged in!", decodeBody(t, w)["message"])
		assert.NotEmpty(t, sessionCookie(t, w).Value)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, w)["message"])
	})

	t.Run("missing credentials", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", `{"username":"alice"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Username and password required", decodeBody(t, w)["message"])
	})

	t.Run("empty body", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReviewLifecycle(t *testing.T) {
	r := newTestRouter(t, time.Hour)
	cookie := registerAndLogin(t, r, "alice", "pw1")

	// Post a review.
	w := doJSON(r, http.MethodPut, "/auth/review/1?review="+url.QueryEscape("good"), "", cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Review posted/modified successfully", body["message"])
	book := body["book"].(map[string]any)
	assert.Equal(t, "good", book["reviews"].(map[string]any)["alice"])

	// Visible on the public read path.
	w = doJSON(r, http.MethodGet, "/review/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "good", decodeBody(t, w)["alice"])

	// Replace.
	w = doJSON(r, http.MethodPut, "/auth/review/1?review="+url.QueryEscape("great book"), "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	book = decodeBody(t, w)["book"].(map[string]any)
	reviews := book["reviews"].(map[string]any)
	assert.Len(t, reviews, 1, "a second review by the same user replaces, never appends")
	assert.Equal(t, "great book", reviews["alice"])

	// Delete.
	w = doJSON(r, http.MethodDelete, "/auth/review/1", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, "Review deleted successfully", body["message"])
	assert.Empty(t, body["book"].(map[string]any)["reviews"])

	// Second delete: nothing left.
	w = doJSON(r, http.MethodDelete, "/auth/review/1", "", cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No review found for this user", decodeBody(t, w)["message"])
}

func TestReviewRouteErrors(t *testing.T) {
	r := newTestRouter(t, time.Hour)
	cookie := registerAndLogin(t, r, "alice", "pw1")

	t.Run("put without session", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/auth/review/1?review=x", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "You need to be logged in to post a review", decodeBody(t, w)["message"])
	})

	t.Run("delete without session", func(t *testing.T) {
		w := doJSON(r, http.MethodDelete, "/auth/review/1", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "You need to be logged in to delete a review", decodeBody(t, w)["message"])
	})

	t.Run("bogus cookie", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/auth/review/1?review=x", "", &http.Cookie{Name: testCookie, Value: "forged"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown book", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/auth/review/999?review=x", "", cookie)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found", decodeBody(t, w)["message"])
	})

	t.Run("missing review param", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/auth/review/1", "", cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Review text is required (use ?review=<text>)", decodeBody(t, w)["message"])
	})
}

func TestReviewOwnershipAcrossUsers(t *testing.T) {
	r := newTestRouter(t, time.Hour)
	alice := registerAndLogin(t, r, "alice", "pw1")
	bob := registerAndLogin(t, r, "bob", "pw2")

	w := doJSON(r, http.MethodPut, "/auth/review/1?review=hers", "", alice)
	require.Equal(t, http.StatusOK, w.Code)

	// Bob cannot delete Alice's review no matter what he sends; the
	// review key comes from his session, so he has nothing to delete.
	w = doJSON(r, http.MethodDelete, "/auth/review/1", "", bob)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/review/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hers", decodeBody(t, w)["alice"])
}

func TestReloginOverwritesSessionBinding(t *testing.T) {
	r := newTestRouter(t, time.Hour)
	cookie := registerAndLogin(t, r, "alice", "pw1")

	w := doJSON(r, http.MethodPost, "/register", `{"username":"bob","password":"pw2"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// The same client logs in again as bob, presenting its existing
	// session cookie. The carrier binding for that cookie is replaced.
	w = doJSON(r, http.MethodPost, "/login", `{"username":"bob","password":"pw2"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cookie.Value, sessionCookie(t, w).Value, "an existing caller identity is reused, not reminted")

	// The original cookie now acts as bob, not as a lingering alice
	// session: the review lands under bob's key.
	w = doJSON(r, http.MethodPut, "/auth/review/1?review=his", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	reviews := decodeBody(t, w)["book"].(map[string]any)["reviews"].(map[string]any)
	assert.Equal(t, "his", reviews["bob"])
	assert.NotContains(t, reviews, "alice")
}

func TestExpiredSessionRejected(t *testing.T) {
	// Tokens issued by this router are already expired.
	r := newTestRouter(t, -time.Minute)
	cookie := registerAndLogin(t, r, "alice", "pw1")

	w := doJSON(r, http.MethodPut, "/auth/review/1?review=x", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
