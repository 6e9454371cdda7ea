package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ratehub/ratehub-server/internal/model"
	"github.com/ratehub/ratehub-server/internal/service"
	"github.com/ratehub/ratehub-server/internal/testutil"
	"github.com/ratehub/ratehub-server/internal/token"
)

const adminPassword = "Admin123!"

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := testutil.NewMemUserStore()
	stores := testutil.NewMemStoreDirectory()
	ratings := testutil.NewMemRatingStore(users)

	lg := testutil.MakeNoopLogger()
	tokens := service.NewTokenService(token.NewJWT("testsecret"), users, lg)
	auth := service.NewAuth(users, tokens, bcrypt.MinCost, time.Hour, 24*time.Hour, lg)
	ratingSvc := service.NewRating(ratings, stores, lg)
	catalog := service.NewCatalog(stores, ratings, lg)
	admin := service.NewAdmin(users, stores, ratings, bcrypt.MinCost, lg)

	seedAdmin(t, users)

	return New(auth, tokens, ratingSvc, catalog, admin, lg).Register()
}

func seedAdmin(t *testing.T, users *testutil.MemUserStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = users.Create(context.Background(), model.User{
		ID:           uuid.New(),
		Name:         "Root Admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	})
	require.NoError(t, err)
}

func do(t *testing.T, engine *gin.Engine, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

func doList(t *testing.T, engine *gin.Engine, path, token string) (int, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var decoded []map[string]any
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

func login(t *testing.T, engine *gin.Engine, email, password string) string {
	t.Helper()
	status, body := do(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)
	tokenString, _ := body["token"].(string)
	require.NotEmpty(t, tokenString)
	return tokenString
}

func TestRouter_FullFlow(t *testing.T) {
	engine := newTestEngine(t)

	// Public signup issues a token right away.
	status, body := do(t, engine, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name":     "Ursula User",
		"email":    "ursula@example.com",
		"password": "User1234!",
		"address":  "3 Elm St",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User registered successfully", body["message"])
	assert.NotEmpty(t, body["token"])

	userToken := login(t, engine, "ursula@example.com", "User1234!")
	adminToken := login(t, engine, "admin@example.com", adminPassword)

	// Admin provisions a store owner and their store.
	status, body = do(t, engine, http.MethodPost, "/api/admin/users", adminToken, gin.H{
		"name":     "Olive Owner",
		"email":    "olive@example.com",
		"password": "Owner123!",
		"address":  "7 Oak Ave",
		"role":     "store_owner",
	})
	require.Equal(t, http.StatusCreated, status)
	ownerID, _ := body["id"].(string)
	require.NotEmpty(t, ownerID)

	status, body = do(t, engine, http.MethodPost, "/api/admin/stores", adminToken, gin.H{
		"name":    "Fresh Mart",
		"email":   "mart@example.com",
		"address": "12 Canal Rd",
		"ownerId": ownerID,
	})
	require.Equal(t, http.StatusCreated, status)
	storeID, _ := body["id"].(string)
	require.NotEmpty(t, storeID)
	assert.Nil(t, body["averageRating"])

	// The user rates the store, then changes their mind. Still one
	// rating per user per store.
	status, _ = do(t, engine, http.MethodPost, "/api/user/ratings", userToken, gin.H{
		"storeId": storeID,
		"value":   5,
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = do(t, engine, http.MethodPost, "/api/user/ratings", userToken, gin.H{
		"storeId": storeID,
		"value":   3,
	})
	require.Equal(t, http.StatusCreated, status)

	status, stores := doList(t, engine, "/api/user/stores", userToken)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, stores, 1)
	assert.Equal(t, "3.0", stores[0]["averageRating"])

	// The owner sees the feedback on their store.
	ownerToken := login(t, engine, "olive@example.com", "Owner123!")

	status, body = do(t, engine, http.MethodGet, "/api/store-owner/average-rating", ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "3.0", body["averageRating"])

	status, feedback := doList(t, engine, "/api/store-owner/ratings", ownerToken)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, feedback, 1)
	rater, _ := feedback[0]["user"].(map[string]any)
	require.NotNil(t, rater)
	assert.Equal(t, "ursula@example.com", rater["email"])

	// Dashboard reflects the seeded admin plus the two created users.
	status, body = do(t, engine, http.MethodGet, "/api/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, body["totalUsers"])
	assert.EqualValues(t, 1, body["totalStores"])
	assert.EqualValues(t, 1, body["totalRatings"])
}

func TestRouter_RoleDenial(t *testing.T) {
	engine := newTestEngine(t)

	status, _ := do(t, engine, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name":     "Ursula User",
		"email":    "ursula@example.com",
		"password": "User1234!",
	})
	require.Equal(t, http.StatusCreated, status)
	userToken := login(t, engine, "ursula@example.com", "User1234!")

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "admin dashboard", method: http.MethodGet, path: "/api/admin/dashboard"},
		{name: "admin users", method: http.MethodGet, path: "/api/admin/users"},
		{name: "owner ratings", method: http.MethodGet, path: "/api/store-owner/ratings"},
		{name: "owner average", method: http.MethodGet, path: "/api/store-owner/average-rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, engine, tt.method, tt.path, userToken, nil)
			assert.Equal(t, http.StatusForbidden, status)
			assert.Equal(t, "Forbidden. You do not have access.", body["message"])
		})
	}
}

func TestRouter_NoToken(t *testing.T) {
	engine := newTestEngine(t)

	for _, path := range []string{
		"/api/user/stores",
		"/api/store-owner/ratings",
		"/api/admin/dashboard",
	} {
		status, body := do(t, engine, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Access denied. No token provided.", body["message"])
	}
}

func TestRouter_UpdatePassword(t *testing.T) {
	engine := newTestEngine(t)

	adminToken := login(t, engine, "admin@example.com", adminPassword)

	status, body := do(t, engine, http.MethodPut, "/api/user/update-password", adminToken, gin.H{
		"password": "NewAdmin1!",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Password updated successfully", body["message"])

	status, _ = do(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "admin@example.com",
		"password": adminPassword,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	login(t, engine, "admin@example.com", "NewAdmin1!")
}

func TestRouter_OwnerWithoutStore(t *testing.T) {
	engine := newTestEngine(t)

	adminToken := login(t, engine, "admin@example.com", adminPassword)

	status, _ := do(t, engine, http.MethodPost, "/api/admin/users", adminToken, gin.H{
		"name":     "Olive Owner",
		"email":    "olive@example.com",
		"password": "Owner123!",
		"role":     "store_owner",
	})
	require.Equal(t, http.StatusCreated, status)

	ownerToken := login(t, engine, "olive@example.com", "Owner123!")

	status, body := do(t, engine, http.MethodGet, "/api/store-owner/average-rating", ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No store is assigned to this account.", body["message"])
}
