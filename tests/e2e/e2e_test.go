package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalhub/internal/config"
	"rentalhub/internal/database"
	"rentalhub/internal/pkg/session"
	"rentalhub/internal/repository"
	"rentalhub/internal/router"
)

type E2ETestSuite struct {
	router *gin.Engine
}

type stubLLM struct{}

func (stubLLM) Complete(context.Context, string) (string, error) {
	return "Pack light.", nil
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:", database.Options{})
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db, repository.Models()...), "Failed to migrate")

	revoker := session.NewMemoryRevoker(100)
	r, closeRouter := router.New(router.Options{
		Config: &config.Config{
			AppEnv:          "test",
			SecretKey:       "e2e-test-secret-0123456789",
			SessionTTL:      time.Hour,
			ChatTimeout:     time.Second,
			ListingCacheTTL: time.Minute,
		},
		DB:        db,
		Revoker:   revoker,
		Completer: stubLLM{},
	})

	t.Cleanup(func() {
		closeRouter()
		revoker.Stop()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &E2ETestSuite{router: r}
}

func (s *E2ETestSuite) makeRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func (s *E2ETestSuite) login(t *testing.T, role, email string) string {
	t.Helper()
	creds := map[string]string{"email": email, "password": "secret123"}

	w := s.makeRequest(http.MethodPost, "/signup/"+role, creds, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.makeRequest(http.MethodPost, "/login/"+role, creds, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]any](t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (s *E2ETestSuite) propertyStatus(t *testing.T, id string) bool {
	t.Helper()
	w := s.makeRequest(http.MethodGet, "/api/properties/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	return decode[map[string]any](t, w)["status"].(bool)
}

// =============================================================================
// Flow 1: signup, login, logout
// =============================================================================

func TestFlow1_Authentication(t *testing.T) {
	suite := setupTestSuite(t)

	token := suite.login(t, "host", "host@test.com")

	t.Run("duplicate signup in same role", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, "/signup/host", map[string]string{"email": "host@test.com", "password": "secret123"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Email already exists"}`, w.Body.String())
	})

	t.Run("same email as guest", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, "/signup/guest", map[string]string{"email": "host@test.com", "password": "secret123"}, "")
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("session grants access", func(t *testing.T) {
		w := suite.makeRequest(http.MethodGet, "/api/properties/book", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, "/logout", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Logout successful"}`, w.Body.String())

		w = suite.makeRequest(http.MethodGet, "/api/properties/book", nil, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// Flow 2: listing and booking lifecycle
// =============================================================================

func TestFlow2_ListingAndBooking(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.login(t, "host", "owner@test.com")

	ids := map[string]string{}
	for _, p := range []struct {
		title string
		price float64
	}{{"Cabin", 50}, {"Loft", 80}, {"Hut", 30}} {
		w := suite.makeRequest(http.MethodPost, "/api/properties", map[string]any{
			"title": p.title, "location": "Oslo", "property_type": "house", "price_per_night": p.price, "img": p.title + ".jpg",
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		ids[p.title] = decode[map[string]string](t, w)["id"]
	}

	t.Run("sorted page", func(t *testing.T) {
		w := suite.makeRequest(http.MethodGet, "/api/properties?sort_by=price_per_night&sort_order=-1&per_page=2", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		items := decode[[]map[string]string](t, w)
		require.Len(t, items, 2)
		assert.Equal(t, "80", items[0]["price_per_night"])
		assert.Equal(t, "50", items[1]["price_per_night"])
		assert.Equal(t, "2", w.Header().Get("X-Total-Pages"))
	})

	var bookingID string
	t.Run("booking marks property unavailable", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, "/api/properties/book", map[string]any{
			"property_id": ids["Loft"], "book_date": "2024-07-01", "end_date": "2024-07-05",
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		bookingID = decode[map[string]string](t, w)["booking_id"]

		assert.False(t, suite.propertyStatus(t, ids["Loft"]))

		// listing cache must not serve the stale status
		w = suite.makeRequest(http.MethodGet, "/api/properties?title=loft", nil, "")
		items := decode[[]map[string]string](t, w)
		require.Len(t, items, 1)
		assert.Equal(t, "false", items[0]["status"])
	})

	t.Run("booking snapshot", func(t *testing.T) {
		w := suite.makeRequest(http.MethodGet, "/api/properties/book/"+bookingID, nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		b := decode[map[string]string](t, w)
		assert.Equal(t, "Loft", b["property_title"])
		assert.Equal(t, "Loft.jpg", b["property_img"])
		assert.Equal(t, "2024-07-05", b["end_date"])
	})

	t.Run("booked property cannot be deleted", func(t *testing.T) {
		w := suite.makeRequest(http.MethodDelete, "/api/properties/"+ids["Loft"], nil, token)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("deleting booking restores availability", func(t *testing.T) {
		w := suite.makeRequest(http.MethodDelete, "/api/properties/book/"+bookingID, nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, suite.propertyStatus(t, ids["Loft"]))

		w = suite.makeRequest(http.MethodDelete, "/api/properties/book/"+bookingID, nil, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Booking data not found"}`, w.Body.String())
	})

	t.Run("free property can be deleted", func(t *testing.T) {
		w := suite.makeRequest(http.MethodDelete, "/api/properties/"+ids["Loft"], nil, token)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest(http.MethodGet, "/api/properties/"+ids["Loft"], nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Property not found"}`, w.Body.String())
	})
}

// =============================================================================
// Flow 3: chat
// =============================================================================

func TestFlow3_Chat(t *testing.T) {
	suite := setupTestSuite(t)

	for input, want := range map[string]string{
		"hello":               "Yes, hello! How can I help you?",
		"":                    "How can I assist you?",
		"what should I pack?": "Pack light.",
	} {
		w := suite.makeRequest(http.MethodPost, "/api/chat", map[string]string{"user_input": input}, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, decode[map[string]string](t, w)["response"], input)
	}
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
