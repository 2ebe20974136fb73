package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradepath/internal/config"
	"gradepath/internal/metrics"
	"gradepath/internal/testutil"
)

func newTestServer(t *testing.T) (*Server, testutil.Fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	fx := testutil.WriteFixture(t, dir)

	cfg := config.DefaultConfig()
	cfg.Server.DevMode = true
	cfg.Data.Dir = dir

	s, err := NewServer(cfg, nil, metrics.New())
	require.NoError(t, err)
	return s, fx
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestDashboard_SelectorWithoutSelection(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(s, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `dir="rtl"`)
	assert.Contains(t, body, "<select")
	assert.Contains(t, body, "پیشرفت تحصیلی دانشجو")
	assert.Contains(t, body, "Please select a student to view their progress.")
	assert.NotContains(t, body, "<table>")
}

func TestDashboard_SelectedStudent(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(s, "/?student=9001")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "<table>")
	assert.Contains(t, body, "Sara Ahmadi")
	assert.Contains(t, body, "<td>15.5</td>")
	assert.Contains(t, body, "✔")
	assert.Contains(t, body, "✘")
}

func TestDashboard_UnknownStudent(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(s, "/?student=123")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboard_SingleStudentShownDirectly(t *testing.T) {
	s, fx := newTestServer(t)

	testutil.WriteWorkbook(t, fx.Students, "", [][]any{
		testutil.Row(28, map[int]any{6: "id"}),
		testutil.Row(28, map[int]any{6: 9002, 7: "Karimi", 8: "Reza", 22: 113, 24: "01", 26: "01", 27: "History"}),
	})

	w := get(s, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.NotContains(t, body, "<select")
	assert.Contains(t, body, "Reza Karimi")
	assert.Contains(t, body, "<td>11.99</td>")
}

func TestDashboard_MalformedInput(t *testing.T) {
	s, fx := newTestServer(t)
	require.NoError(t, os.Remove(fx.Scores))

	w := get(s, "/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Scores.xlsx")
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	require.Equal(t, http.StatusOK, get(s, "/api/status").Code)

	w := get(s, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `gradepath_runs_total{result="ok"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/status", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
