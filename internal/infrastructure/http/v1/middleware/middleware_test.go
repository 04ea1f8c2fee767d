package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator struct {
	user *appctx.UserContext
	err  error
}

func (s *stubValidator) ValidateToken(string) (*appctx.UserContext, error) {
	return s.user, s.err
}

func TestErrorHandlerRendersAppError(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(apperror.NewValidation("bad input"))
		c.Abort()
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apperror.CodeValidation, body["code"])
	assert.Equal(t, "bad input", body["message"])
}

func TestErrorHandlerHidesUnknownErrors(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection refused"))
		c.Abort()
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apperror.CodeInternal, body["code"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestRecoveryConvertsPanicTo500(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.Use(ErrorHandler())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestTraceGeneratesAndEchoesRequestID(t *testing.T) {
	router := gin.New()
	router.Use(Trace())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))
}

func TestAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.Use(Auth(&stubValidator{err: errors.New("bad token")}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong scheme", "Basic abc"},
		{"no token", "Bearer"},
		{"invalid token", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthPopulatesUserContext(t *testing.T) {
	user := &appctx.UserContext{UserID: "u-1", Username: "bu-siti", Role: appctx.RolePangkalan}
	router := gin.New()
	router.Use(ErrorHandler())
	router.Use(Auth(&stubValidator{user: user}))
	router.GET("/", func(c *gin.Context) {
		got := appctx.GetUser(c.Request.Context())
		require.NotNil(t, got)
		c.String(http.StatusOK, got.UserID)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	admin := &appctx.UserContext{UserID: "a-1", Role: appctx.RoleAdmin}
	operator := &appctx.UserContext{UserID: "p-1", Role: appctx.RolePangkalan}

	build := func(user *appctx.UserContext) *gin.Engine {
		router := gin.New()
		router.Use(ErrorHandler())
		router.Use(Auth(&stubValidator{user: user}))
		router.GET("/", RequireRole(appctx.RoleAdmin), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer t")
	build(admin).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer t")
	build(operator).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
