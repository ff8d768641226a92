package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gormsqlite "github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"medkb/config"
	"medkb/services"
	"medkb/store"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		SessionSecret: testSecret,
		SessionCookie: "session",
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "medkb.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	sqlDB, err := db.DB()
	require.NoError(t, err, "get sql db")
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	st := store.New(db, zap.NewNop())
	require.NoError(t, st.AutoMigrate(), "auto migrate")

	audit := services.NewAudit(st, zap.NewNop())
	return NewRouter(testConfig(), st, audit, zap.NewNop()), st
}

// newDegradedRouter builds a router over a store with no database behind
// it, as after a failed connect at startup.
func newDegradedRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	st := store.New(nil, zap.NewNop())
	audit := services.NewAudit(st, zap.NewNop())
	return NewRouter(testConfig(), st, audit, zap.NewNop()), st
}

func signToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := sessionClaims{
		Role: role,
		Name: "Test User",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err, "sign token")
	return token
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "decode response: %s", w.Body.String())
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthzDegraded(t *testing.T) {
	router, _ := newDegradedRouter(t)

	w := doRequest(router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, "degraded", body["status"])
}

func TestAuthMe(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodGet, "/auth/me", signToken(t, "user-1", "editor"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user SessionUser
	decodeBody(t, w, &user)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "editor", user.Role)
}

func TestAuthMeRejectsBadToken(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A stale or garbled session cookie must not lock users out of the
// public read surface; it only costs them the write privileges.
func TestStaleTokenReadsAsAnonymous(t *testing.T) {
	router, _ := newTestRouter(t)

	expired := signExpiredToken(t, "editor-1", "editor")

	w := doRequest(router, http.MethodGet, "/documents", expired, nil)
	assert.Equal(t, http.StatusOK, w.Code, "public read works with an expired token")

	w = doRequest(router, http.MethodGet, "/documents", "garbage-token", nil)
	assert.Equal(t, http.StatusOK, w.Code, "public read works with a garbled token")

	w = doRequest(router, http.MethodPost, "/documents", expired, map[string]interface{}{
		"data_source_id": 1,
		"title":          "x",
		"url":            "https://example.org/x",
		"document_type":  "SPC",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "writes still need a live session")
}

func signExpiredToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err, "sign token")
	return token
}

func TestAuthLogoutClearsCookie(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
