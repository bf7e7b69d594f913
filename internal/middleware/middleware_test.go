package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "middleware-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return s
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()
	r.GET("/private", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		id, ok := middleware.ManagerID(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"manager_id": id, "role": c.GetString(middleware.ContextRole)})
	})

	valid := signToken(t, jwt.MapClaims{
		"manager_id": "12",
		"role":       "MANAGER",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		status int
	}{
		{"bearer header", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+valid) }, http.StatusOK},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "access_token", Value: valid}) }, http.StatusOK},
		{"missing token", func(req *http.Request) {}, http.StatusUnauthorized},
		{"wrong secret", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
				"manager_id": "12",
				"exp":        time.Now().Add(time.Hour).Unix(),
			}, "other"))
		}, http.StatusUnauthorized},
		{"expired", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
				"manager_id": "12",
				"exp":        time.Now().Add(-time.Minute).Unix(),
			}, testSecret))
		}, http.StatusUnauthorized},
		{"no manager id", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
				"role": "MANAGER",
				"exp":  time.Now().Add(time.Hour).Unix(),
			}, testSecret))
		}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tt.setup(req)

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("query token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private?token="+valid, nil)

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"manager_id":12,"role":"MANAGER"}`, w.Body.String())
	})
}

type fakeRBAC struct {
	allowed bool
	err     error
	got     []string
}

func (f *fakeRBAC) Enforce(role, resource, action string) (bool, error) {
	f.got = []string{role, resource, action}
	return f.allowed, f.err
}

func TestRBACAuthorize(t *testing.T) {
	run := func(svc *fakeRBAC, role string) int {
		r := newRouter()
		r.GET("/x", func(c *gin.Context) {
			if role != "" {
				c.Set(middleware.ContextRole, role)
			}
			c.Next()
		}, middleware.RBACAuthorize(svc, "leave", "export"), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		return w.Code
	}

	t.Run("allowed", func(t *testing.T) {
		svc := &fakeRBAC{allowed: true}
		assert.Equal(t, http.StatusNoContent, run(svc, "MANAGER"))
		assert.Equal(t, []string{"MANAGER", "leave", "export"}, svc.got)
	})

	t.Run("denied", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, run(&fakeRBAC{}, "GUEST"))
	})

	t.Run("no role", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, run(&fakeRBAC{allowed: true}, ""))
	})

	t.Run("enforcer error", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, run(&fakeRBAC{err: errors.New("boom")}, "MANAGER"))
	})
}

func TestRateLimitByIP(t *testing.T) {
	r := newRouter()
	r.POST("/login", middleware.RateLimitByIP(0.001, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newRouter()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
	})

	t.Run("propagated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.HeaderRequestID, "abc-123")
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(middleware.HeaderRequestID))
	})
}

func TestIdempotency(t *testing.T) {
	cacheKey := middleware.IdempotencyCacheKey("/leave-requests", "key-1")
	lockKey := cacheKey + ":lock"

	newIdempotentRouter := func(calls *int) (*gin.Engine, redismock.ClientMock) {
		rdb, mock := redismock.NewClientMock()
		r := newRouter()
		r.POST("/leave-requests", middleware.Idempotency(rdb), func(c *gin.Context) {
			*calls++
			c.JSON(http.StatusCreated, gin.H{"id": 1})
		})
		return r, mock
	}

	post := func(r *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leave-requests", nil)
		req.Header.Set(middleware.HeaderIdempotencyKey, "key-1")
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first request is stored", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(&calls)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, []byte(`{"status":201,"body":{"id":1}}`), 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := post(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat is replayed without calling the handler", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(&calls)
		mock.ExpectGet(cacheKey).SetVal(`{"status":201,"body":{"id":1}}`)

		w := post(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":1}`, w.Body.String())
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.Zero(t, calls)
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(&calls)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := post(r)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Zero(t, calls)
	})
}
