package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"kivutrips/internal/auth"
	"kivutrips/internal/cache"
	"kivutrips/internal/config"
	"kivutrips/internal/handler"
	"kivutrips/internal/model"
	"kivutrips/internal/repository"
	"kivutrips/internal/service"
)

const testSecret = "test-secret"

type testServer struct {
	echo  *echo.Echo
	users repository.UserRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:  testSecret,
		CORSOrigin: "*",
	}

	users := repository.NewMemoryUserRepository()
	activities := repository.NewMemoryActivityRepository()
	presence := cache.NewPresenceTracker(nil)
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	authHandler := handler.NewAuthHandler(service.NewAuthService(users, jwtService, presence))
	userHandler := handler.NewUserHandler(service.NewUserService(users, presence))
	activityHandler := handler.NewActivityHandler(service.NewActivityService(activities))

	e := echo.New()
	Register(e, cfg, authHandler, userHandler, activityHandler)

	return &testServer{echo: e, users: users}
}

// seedAdmin inserts an admin account directly into the store, the way the
// seed command would.
func (s *testServer) seedAdmin(t *testing.T, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, s.users.Create(context.Background(), &model.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "User",
		Role:         model.RoleAdmin,
	}))
}

func (s *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.request(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":      "jane@example.com",
		"password":   "secret123",
		"first_name": "Jane",
		"last_name":  "Doe",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	// Self-registration never grants admin.
	assert.Equal(t, model.RoleUser, resp.User.Role)

	// Same email again.
	rec = srv.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":      "jane@example.com",
		"password":   "secret123",
		"first_name": "Jane",
		"last_name":  "Doe",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "USER_ALREADY_EXISTS", decodeError(t, rec).Code)

	rec = srv.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "jane@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"password": "secret123", "first_name": "A", "last_name": "B"}},
		{"bad email", map[string]string{"email": "not-an-email", "password": "secret123", "first_name": "A", "last_name": "B"}},
		{"short password", map[string]string{"email": "a@example.com", "password": "short", "first_name": "A", "last_name": "B"}},
		{"missing name", map[string]string{"email": "a@example.com", "password": "secret123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.request(t, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGuardResponses(t *testing.T) {
	srv := newTestServer(t)
	srv.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":      "user@example.com",
		"password":   "secret123",
		"first_name": "Plain",
		"last_name":  "User",
	})
	userToken := srv.login(t, "user@example.com", "secret123")

	t.Run("missing token", func(t *testing.T) {
		rec := srv.request(t, http.MethodGet, "/api/users/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "MISSING_TOKEN", decodeError(t, rec).Code)
	})

	t.Run("header without bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
		req.Header.Set(echo.HeaderAuthorization, "Token abc123")
		rec := httptest.NewRecorder()
		srv.echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "MISSING_TOKEN", decodeError(t, rec).Code)
	})

	t.Run("bearer with empty token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer ")
		rec := httptest.NewRecorder()
		srv.echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "MISSING_TOKEN", decodeError(t, rec).Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := srv.request(t, http.MethodGet, "/api/users/profile", "not.a.token", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "INVALID_TOKEN", decodeError(t, rec).Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged, err := auth.NewJWTService("other-secret").GenerateToken("id", "user@example.com", model.RoleAdmin)
		require.NoError(t, err)
		rec := srv.request(t, http.MethodPost, "/api/activities", forged, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("non-admin mutation", func(t *testing.T) {
		for _, route := range []struct{ method, path string }{
			{http.MethodPost, "/api/activities"},
			{http.MethodPut, "/api/activities/some-id"},
			{http.MethodDelete, "/api/activities/some-id"},
			{http.MethodPut, "/api/activities/some-id/featured"},
		} {
			rec := srv.request(t, route.method, route.path, userToken, map[string]string{})
			assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", route.method, route.path)
			assert.Equal(t, "ADMIN_REQUIRED", decodeError(t, rec).Code)
		}
	})
}

func TestPublicCatalogRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(t, http.MethodGet, "/api/activities", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var list []model.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)

	rec = srv.request(t, http.MethodGet, "/api/activities/featured", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.request(t, http.MethodGet, "/api/activities/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ID_FORMAT", decodeError(t, rec).Code)

	rec = srv.request(t, http.MethodGet, "/api/activities/11111111-1111-1111-1111-111111111111", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminCatalogFlow(t *testing.T) {
	srv := newTestServer(t)
	srv.seedAdmin(t, "admin@example.com", "admin123")
	adminToken := srv.login(t, "admin@example.com", "admin123")

	// Create
	rec := srv.request(t, http.MethodPost, "/api/activities", adminToken, map[string]interface{}{
		"name":        "Mountain Hiking Adventure",
		"type":        "adventure",
		"image":       "https://example.com/hiking.jpg",
		"description": "Guided day hike with lake views.",
		"location":    "Musanze",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Featured)

	// Unknown type is rejected.
	rec = srv.request(t, http.MethodPost, "/api/activities", adminToken, map[string]interface{}{
		"name":        "Bad",
		"type":        "spaceship",
		"image":       "https://example.com/x.jpg",
		"description": "Nope.",
		"location":    "Nowhere",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Toggle featured on.
	rec = srv.request(t, http.MethodPut, "/api/activities/"+created.ID+"/featured", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled model.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	assert.True(t, toggled.Featured)

	// Featured listing now includes it, publicly.
	rec = srv.request(t, http.MethodGet, "/api/activities/featured", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var featured []model.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &featured))
	require.Len(t, featured, 1)
	assert.Equal(t, created.ID, featured[0].ID)

	// Partial update preserves omitted fields.
	rec = srv.request(t, http.MethodPut, "/api/activities/"+created.ID, adminToken, map[string]string{
		"description": "Updated description.",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Updated description.", updated.Description)
	assert.Equal(t, "Mountain Hiking Adventure", updated.Name)
	assert.True(t, updated.Featured)

	// Delete, then the listing is gone.
	rec = srv.request(t, http.MethodDelete, "/api/activities/"+created.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.request(t, http.MethodGet, "/api/activities/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.request(t, http.MethodDelete, "/api/activities/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileRoutes(t *testing.T) {
	srv := newTestServer(t)
	srv.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":      "sam@example.com",
		"password":   "secret123",
		"first_name": "Sam",
		"last_name":  "Smith",
	})
	token := srv.login(t, "sam@example.com", "secret123")

	rec := srv.request(t, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile model.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "sam@example.com", profile.Email)
	assert.Equal(t, "Sam", profile.FirstName)

	rec = srv.request(t, http.MethodPut, "/api/users/profile", token, map[string]string{
		"phone": "+250 788 123 456",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "+250 788 123 456", profile.Phone)
	assert.Equal(t, "Sam", profile.FirstName)

	rec = srv.request(t, http.MethodPut, "/api/users/activity", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
