package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/partnerships-api/internal/storage/sqlite"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/partnerships/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/partnerships/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/partnerships/:id", "200"))
	assert.Equal(t, float64(2), got)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "partnerships_http_requests_total")
}

func TestObserveSync(t *testing.T) {
	m := New()
	m.ObserveSync(2, 1, 0)
	m.ObserveSync(1, 0, 1)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.sync.WithLabelValues("synced")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.sync.WithLabelValues("skipped")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.sync.WithLabelValues("failed")))
}

func TestRegisterDB(t *testing.T) {
	m := New()
	gdb, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	db, err := gdb.DB()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, m.RegisterDB(db, "partnerships"))
	assert.Error(t, m.RegisterDB(db, "partnerships"), "second registration collides")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `go_sql_open_connections{db_name="partnerships"}`)
}
