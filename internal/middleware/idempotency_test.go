package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func zapNop() *zap.Logger { return zap.NewNop() }

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const (
		cacheKey = "idemp:/applications::key-1"
		lockKey  = cacheKey + ":lock"
	)
	body := []byte(`{"ok":true}`)
	payload, err := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: body})
	require.NoError(t, err)

	newRouter := func(t *testing.T, calls *int) (*gin.Engine, redismock.ClientMock) {
		db, mock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/applications", Idempotency(db), func(c *gin.Context) {
			*calls++
			c.Data(http.StatusCreated, "application/json", body)
		})
		return r, mock
	}

	post := func(r *gin.Engine) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/applications", nil)
		req.Header.Set(IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first request stores result", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(t, &calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, payload, idempotencyResultTTL).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := post(r)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat is replayed", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(t, &calls)

		mock.ExpectGet(cacheKey).SetVal(string(payload))

		w := post(r)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, string(body), w.Body.String())
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in-flight duplicate conflicts", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(t, &calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(false)

		w := post(r)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no key passes through", func(t *testing.T) {
		calls := 0
		r, _ := newRouter(t, &calls)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/applications", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})
}
