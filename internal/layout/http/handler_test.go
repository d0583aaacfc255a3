package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/fablecraft/fablecraft-backend/internal/auth"
	layouthttp "github.com/fablecraft/fablecraft-backend/internal/layout/http"
	"github.com/fablecraft/fablecraft-backend/internal/layout/repository"
	"github.com/fablecraft/fablecraft-backend/internal/layout/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLayoutRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := service.NewService(repository.NewLayoutRepository(client))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxUserDBID, "user-1")
	})
	layouthttp.NewHandler(svc).Register(r.Group("/api/v1/layout"))

	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	r.ServeHTTP(w, req)
	return w
}

func itemIDs(t *testing.T, body []byte) []string {
	t.Helper()
	var resp struct {
		Items []struct {
			ID    string `json:"id"`
			Order int    `json:"order"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	out := make([]string, len(resp.Items))
	for i, it := range resp.Items {
		out[i] = it.ID
	}
	return out
}

func TestLayoutHandler_DefaultsOnFirstLoad(t *testing.T) {
	r := setupLayoutRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/layout/dashboard-sections", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"hero", "project-grid", "widget-grid", "recent-activity"}, itemIDs(t, w.Body.Bytes()))
	assert.Contains(t, w.Body.String(), `"unlocked":false`)
}

func TestLayoutHandler_UnknownGroup(t *testing.T) {
	r := setupLayoutRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/layout/toolbar", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLayoutHandler_ReorderLockedConflicts(t *testing.T) {
	r := setupLayoutRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/layout/dashboard-sections/reorder",
		`{"dragged_id":"hero","target_id":"widget-grid"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLayoutHandler_UnlockReorderLock(t *testing.T) {
	r := setupLayoutRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/layout/dashboard-sections/unlock", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/layout/dashboard-sections/reorder",
		`{"dragged_id":"hero","target_id":"widget-grid"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"widget-grid", "project-grid", "hero", "recent-activity"}, itemIDs(t, w.Body.Bytes()))

	w = do(t, r, http.MethodPost, "/api/v1/layout/dashboard-sections/lock", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/layout/dashboard-sections/reorder",
		`{"dragged_id":"hero","target_id":"project-grid"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The swap performed while unlocked survives.
	w = do(t, r, http.MethodGet, "/api/v1/layout/dashboard-sections", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"widget-grid", "project-grid", "hero", "recent-activity"}, itemIDs(t, w.Body.Bytes()))
}

func TestLayoutHandler_ReorderRejectsEmptyIDs(t *testing.T) {
	r := setupLayoutRouter(t)

	do(t, r, http.MethodPost, "/api/v1/layout/dashboard-widgets/unlock", "")

	w := do(t, r, http.MethodPost, "/api/v1/layout/dashboard-widgets/reorder", `{"dragged_id":"","target_id":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
