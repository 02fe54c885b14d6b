package main

import (
	"castbook/src/middlewares"
	"castbook/src/types"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
)

type TestSuite struct {
	suite.Suite
}

func (s *TestSuite) SetupSuite() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", bookableDateValidatorFunc)
		v.RegisterValidation("gtdate", gtfield)
		v.RegisterValidation("ltdate", ltfield)
	}
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Unsetenv("MAINTENANCE_MODE")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestAuthRouteValidation() {
	router := setupRouter()
	guestAuthRoutes(router)

	s.Run("Login rejects a body without credentials", func() {
		w := httptest.NewRecorder()
		jbody := map[string]any{
			"email": "someone@example.com",
		}
		sbody, _ := json.Marshal(&jbody)
		loginReq, _ := http.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, loginReq)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Register rejects a short password", func() {
		w := httptest.NewRecorder()
		jbody := map[string]any{
			"name":     "Test User",
			"email":    "someone@example.com",
			"password": "short",
		}
		sbody, _ := json.Marshal(&jbody)
		registerReq, _ := http.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, registerReq)

		assert.Equal(s.T(), 400, w.Code)
		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		errMsg := gjson.Get(string(rbytes), "error").String()
		assert.NotEmpty(s.T(), errMsg)
	})

	s.Run("Register rejects an unknown role", func() {
		w := httptest.NewRecorder()
		jbody := map[string]any{
			"name":     "Test User",
			"email":    "someone@example.com",
			"password": "long-enough-password",
			"role":     "superuser",
		}
		sbody, _ := json.Marshal(&jbody)
		registerReq, _ := http.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, registerReq)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestProtectedRoutesRequireAuth() {
	router := setupRouter()
	authorized := apiv1Group(router)
	authorized.Use(middlewares.AuthMiddleware)
	bookingHandlers(authorized)
	contractHandlers(authorized)
	taskHandlers(authorized)

	for _, route := range []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/bookings"},
		{"POST", "/api/v1/bookings"},
		{"GET", "/api/v1/contracts"},
		{"GET", "/api/v1/tasks"},
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(route.method, route.path, nil)
		router.ServeHTTP(w, req)
		assert.Equalf(s.T(), 401, w.Code, "%s %s without a token", route.method, route.path)
	}

	s.Run("Malformed bearer token is rejected", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/bookings", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 401, w.Code)
	})

	s.Run("Bearer header without a token is rejected", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/bookings", nil)
		req.Header.Set("Authorization", "Bearer")
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 401, w.Code)
	})
}

func (s *TestSuite) TestBookingValidation() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	bookingHandlers(apiv1)

	s.Run("Rejects a booking without dates", func() {
		w := httptest.NewRecorder()
		body := types.CreateBookingRequestBody{
			Title: "Lookbook shoot",
		}
		rbytes, err := json.Marshal(&body)
		assert.Nil(s.T(), err)
		req, _ := http.NewRequest("POST", "/api/v1/bookings", strings.NewReader(string(rbytes)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)

		rbytes, err = io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		errMsg := gjson.Get(string(rbytes), "error").String()
		assert.NotEmpty(s.T(), errMsg)
	})

	s.Run("Rejects a booking that starts in the past", func() {
		w := httptest.NewRecorder()
		past := time.Now().Add(-48 * time.Hour)
		body := types.CreateBookingRequestBody{
			Title:    "Lookbook shoot",
			StartsAt: past.Format("2006-01-02 15:04:05 -07:00"),
			EndsAt:   past.Add(time.Hour).Format("2006-01-02 15:04:05 -07:00"),
		}
		rbytes, err := json.Marshal(&body)
		assert.Nil(s.T(), err)
		req, _ := http.NewRequest("POST", "/api/v1/bookings", strings.NewReader(string(rbytes)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Rejects a booking that ends before it starts", func() {
		w := httptest.NewRecorder()
		start := time.Now().Add(72 * time.Hour)
		body := types.CreateBookingRequestBody{
			Title:    "Lookbook shoot",
			StartsAt: start.Format("2006-01-02 15:04:05 -07:00"),
			EndsAt:   start.Add(-time.Hour).Format("2006-01-02 15:04:05 -07:00"),
		}
		rbytes, err := json.Marshal(&body)
		assert.Nil(s.T(), err)
		req, _ := http.NewRequest("POST", "/api/v1/bookings", strings.NewReader(string(rbytes)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Admin-only routes reject callers without the role", func() {
		w := httptest.NewRecorder()
		body := types.SendRequestsRequestBody{TalentIDs: []uint{1}}
		rbytes, _ := json.Marshal(&body)
		req, _ := http.NewRequest("POST", "/api/v1/bookings/1/send-requests", strings.NewReader(string(rbytes)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 403, w.Code)
	})
}

func (s *TestSuite) TestRoleGuard() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(func(ctx *gin.Context) {
		ctx.Set("id", uint(7))
		ctx.Set("role", string(types.ROLE_TALENT))
	})
	contractHandlers(apiv1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/contracts", strings.NewReader(`{}`))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 403, w.Code)
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
