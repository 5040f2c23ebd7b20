package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	handler "github.com/mikiasgoitom/Edulearn/internal/handler/http"
	"github.com/mikiasgoitom/Edulearn/internal/handler/http/mocks"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/logger"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/metrics"
	randomgenerator "github.com/mikiasgoitom/Edulearn/internal/infrastructure/random_generator"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/validator"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubConfig struct {
	production bool
}

func (s stubConfig) GetPort() string { return "3000" }
func (s stubConfig) GetFrontendURL() string { return "http://localhost:3001" }
func (s stubConfig) GetJWTExpiry() time.Duration { return time.Hour }
func (s stubConfig) IsProduction() bool { return s.production }

type testServer struct {
	engine  *gin.Engine
	users   *mocks.MockUserUsecase
	courses *mocks.MockCourseUsecase
}

func newTestServer(t *testing.T, opts ...func(*handler.Router)) *testServer {
	return newTestServerWithConfig(t, stubConfig{}, opts...)
}

func newTestServerWithConfig(t *testing.T, cfg stubConfig, opts ...func(*handler.Router)) *testServer {
	t.Helper()
	users := mocks.NewMockUserUsecase()
	courses := mocks.NewMockCourseUsecase()
	log := logger.NewAppLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	readiness := map[string]handler.ReadinessCheck{
		"database": func(context.Context) error { return nil },
	}

	r := handler.NewRouter(users, courses, validator.NewValidator(), log, cfg, randomgenerator.NewRandomGenerator(), readiness)
	for _, opt := range opts {
		opt(r)
	}
	engine := gin.New()
	r.SetupRoutes(engine)
	return &testServer{engine: engine, users: users, courses: courses}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func bearer(token string) string { return "Bearer " + token }

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func validRegistration() map[string]any {
	return map[string]any{
		"email":           "new@example.com",
		"password":        "Str0ng!Pass",
		"confirmPassword": "Str0ng!Pass",
		"firstName":       "  New ",
		"lastName":        "Person",
	}
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/register", "", validRegistration())

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "mock_access_token", data["token"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "new@example.com", user["email"])
	assert.Equal(t, "student", user["role"])
	assert.NotContains(t, w.Body.String(), "secret-hash")
	assert.NotContains(t, w.Body.String(), "passwordHash")
	assert.Equal(t, "New", s.users.LastRegister.FirstName)
}

func TestRegister_ValidationIsExhaustive(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":           "nope",
		"password":        "weak",
		"confirmPassword": "other",
		"firstName":       "Al",
		"lastName":        "Bo",
		"role":            "admin",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["message"])

	fields := map[string]int{}
	for _, e := range body["errors"].([]any) {
		fields[e.(map[string]any)["field"].(string)]++
	}
	assert.Equal(t, 1, fields["email"])
	assert.GreaterOrEqual(t, fields["password"], 3)
	assert.Equal(t, 1, fields["confirmPassword"])
	assert.Equal(t, 1, fields["role"])
}

func TestRegister_EmptyAndMalformedBodies(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/register", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs := decode(t, w)["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].(map[string]any)["field"])

	w = s.do(http.MethodPost, "/api/auth/register", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, decode(t, w)["errors"].([]any), 5)
}

func TestRegister_Duplicate(t *testing.T) {
	s := newTestServer(t)
	s.users.ShouldFailRegister = true

	w := s.do(http.MethodPost, "/api/auth/register", "", validRegistration())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User already exists with this email", decode(t, w)["message"])
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "student@example.com", "password": "x"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mock_access_token", decode(t, w)["data"].(map[string]any)["token"])

	s.users.ShouldFailLogin = true
	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "student@example.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decode(t, w)["message"])
}

func TestMandatoryAuth_FailuresAreIndistinguishable(t *testing.T) {
	s := newTestServer(t)
	headers := map[string]string{
		"missing":        "",
		"wrong scheme":   "Basic " + mocks.StudentToken,
		"garbage":        bearer("garbage"),
		"expired":        bearer(mocks.ExpiredToken),
		"deleted user":   bearer(mocks.OrphanToken),
		"too many parts": "Bearer a b",
	}

	var first string
	for name, h := range headers {
		t.Run(name, func(t *testing.T) {
			w := s.do(http.MethodGet, "/api/auth/me", h, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			if first == "" {
				first = w.Body.String()
			}
			assert.JSONEq(t, first, w.Body.String())
		})
	}
}

func TestMandatoryAuth_SchemeIsCaseInsensitive(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/auth/me", "bearer "+mocks.StudentToken, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, mocks.StudentID, user["id"])
}

func TestOptionalAuth_ExpiredTokenIsAnonymous(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/courses", bearer(mocks.ExpiredToken), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/courses/"+mocks.DraftCourseID, bearer(mocks.ExpiredToken), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Nil(t, s.courses.LastViewer)

	w = s.do(http.MethodGet, "/api/courses/"+mocks.DraftCourseID, bearer(mocks.InstructorToken), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, s.courses.LastViewer)
	assert.Equal(t, mocks.InstructorID, s.courses.LastViewer.ID)
}

func TestListCourses_QueryAndEmptyCategory(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/courses?page=2&limit=abc&category=nonexistent&level=beginner&search=go", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, s.courses.LastQuery.Page)
	assert.Equal(t, 0, s.courses.LastQuery.Limit)
	assert.Equal(t, "go", s.courses.LastQuery.Search)
	assert.Equal(t, "nonexistent", s.courses.LastQuery.Category)
	assert.Equal(t, "beginner", s.courses.LastQuery.Level)

	data := decode(t, w)["data"].(map[string]any)
	assert.Empty(t, data["courses"])
	assert.Equal(t, float64(0), data["pagination"].(map[string]any)["totalPages"])
}

func TestAdminRoutes_RoleGate(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/users", bearer(mocks.StudentToken), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/users?page=1&limit=2", bearer(mocks.AdminToken), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	pagination := decode(t, w)["data"].(map[string]any)["pagination"].(map[string]any)
	assert.Equal(t, float64(3), pagination["totalUsers"])
	assert.Equal(t, true, pagination["hasNextPage"])
}

func TestDeleteUser(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodDelete, "/api/users/"+mocks.AdminID, bearer(mocks.AdminToken), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You cannot delete your own account", decode(t, w)["message"])
	assert.Empty(t, s.users.DeletedIDs)

	w = s.do(http.MethodDelete, "/api/users/"+mocks.StudentID, bearer(mocks.AdminToken), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{mocks.StudentID}, s.users.DeletedIDs)
}

func TestGetUser_MalformedIDIsNotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/users/not-a-uuid", bearer(mocks.AdminToken), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode(t, w)["message"])
}

func TestChangeRole(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPut, "/api/users/"+mocks.StudentID+"/role", bearer(mocks.AdminToken), map[string]string{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/users/"+mocks.StudentID+"/role", bearer(mocks.AdminToken), map[string]string{"role": "instructor"})
	assert.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "instructor", user["role"])
}

func TestUpdateProfile(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPut, "/api/users/profile", bearer(mocks.StudentToken), map[string]any{"firstName": " Samuel ", "profileImage": ""})

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, s.users.LastProfileUpdate.FirstName)
	assert.Equal(t, "Samuel", *s.users.LastProfileUpdate.FirstName)
	require.NotNil(t, s.users.LastProfileUpdate.ProfileImage)
	assert.Equal(t, "", *s.users.LastProfileUpdate.ProfileImage)
	assert.Nil(t, s.users.LastProfileUpdate.LastName)
}

func TestChangePassword(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{"currentPassword": "old", "newPassword": "N3w!Password", "confirmPassword": "N3w!Password"}

	w := s.do(http.MethodPut, "/api/auth/password", bearer(mocks.StudentToken), body)
	assert.Equal(t, http.StatusOK, w.Code)

	s.users.ShouldFailChangePassword = true
	w = s.do(http.MethodPut, "/api/auth/password", bearer(mocks.StudentToken), body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCourse(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{
		"title":         "Concurrency in Go",
		"description":   "Goroutines and channels",
		"categoryId":    mocks.CategoryID,
		"price":         0,
		"durationHours": 4,
		"level":         "intermediate",
	}

	w := s.do(http.MethodPost, "/api/courses", bearer(mocks.StudentToken), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/courses", bearer(mocks.InstructorToken), body)
	assert.Equal(t, http.StatusCreated, w.Code)
	course := decode(t, w)["data"].(map[string]any)["course"].(map[string]any)
	assert.Equal(t, mocks.InstructorID, course["instructorId"])
	assert.Equal(t, float64(0), course["price"])

	w = s.do(http.MethodPost, "/api/courses", bearer(mocks.AdminToken), map[string]any{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCategories(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/categories", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	cats := decode(t, w)["data"].(map[string]any)["categories"].([]any)
	require.Len(t, cats, 1)
	assert.Equal(t, "Programming", cats[0].(map[string]any)["name"])
}

func TestInternalErrorDetail(t *testing.T) {
	dev := newTestServer(t)
	dev.users.ShouldFailListUsers = true
	w := dev.do(http.MethodGet, "/api/users", bearer(mocks.AdminToken), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Internal server error", body["message"])
	assert.Contains(t, body["stack"], "list users failed")

	prod := newTestServerWithConfig(t, stubConfig{production: true})
	prod.users.ShouldFailListUsers = true
	w = prod.do(http.MethodGet, "/api/users", bearer(mocks.AdminToken), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, decode(t, w), "stack")
	assert.NotContains(t, w.Body.String(), "list users failed")
}

func TestPanicIsRecovered(t *testing.T) {
	s := newTestServerWithConfig(t, stubConfig{production: true})
	s.users.ShouldPanicListUsers = true

	w := s.do(http.MethodGet, "/api/users", bearer(mocks.AdminToken), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])

	s.users.ShouldPanicListUsers = false
	w = s.do(http.MethodGet, "/api/users", bearer(mocks.AdminToken), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRateLimit(t *testing.T) {
	s := newTestServer(t, func(r *handler.Router) { r.SetRateLimits(100, 2, time.Hour) })
	creds := map[string]string{"email": "student@example.com", "password": "x"}

	for i := 0; i < 2; i++ {
		w := s.do(http.MethodPost, "/api/auth/login", "", creds)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := s.do(http.MethodPost, "/api/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])

	w = s.do(http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGlobalRateLimit(t *testing.T) {
	s := newTestServer(t, func(r *handler.Router) { r.SetRateLimits(1, 5, time.Hour) })

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/categories", "", nil).Code)
	w := s.do(http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests, please try again later.", decode(t, w)["message"])
}

func TestNoRouteAndRequestID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["message"])
	assert.Len(t, w.Header().Get("X-Request-ID"), 32)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestMetrics_RecordFinalStatus(t *testing.T) {
	s := newTestServerWithConfig(t, stubConfig{production: true})

	count := func(route, status string) float64 {
		return testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, route, status))
	}

	unauthorized := count("/api/auth/me", "401")
	okMe := count("/api/auth/me", "200")
	w := s.do(http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, unauthorized+1, count("/api/auth/me", "401"))
	assert.Equal(t, okMe, count("/api/auth/me", "200"))

	notFound := count("unmatched", "404")
	s.do(http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, notFound+1, count("unmatched", "404"))

	s.users.ShouldPanicListUsers = true
	panics := count("/api/users", "500")
	w = s.do(http.MethodGet, "/api/users", bearer(mocks.AdminToken), nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, panics+1, count("/api/users", "500"))
}

func TestReadiness(t *testing.T) {
	users := mocks.NewMockUserUsecase()
	courses := mocks.NewMockCourseUsecase()
	log := logger.NewAppLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	readiness := map[string]handler.ReadinessCheck{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	}
	r := handler.NewRouter(users, courses, validator.NewValidator(), log, stubConfig{}, randomgenerator.NewRandomGenerator(), readiness)
	engine := gin.New()
	r.SetupRoutes(engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode(t, w)
	assert.Equal(t, "up", body["checks"].(map[string]any)["database"])
	assert.Equal(t, "down", body["checks"].(map[string]any)["redis"])
}
