package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradepath/internal/model"
)

func TestVerdict(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "passed", Verdict(model.ProgressEntry{Passed: true, Score: model.Score{Kind: model.ScoreScored, Value: 15}}))
	assert.Equal(t, "failed", Verdict(model.ProgressEntry{Score: model.Score{Kind: model.ScoreScored, Value: 5}}))
	assert.Equal(t, "unscored", Verdict(model.ProgressEntry{Score: model.Score{Kind: model.ScoreUnscored}}))
	assert.Equal(t, "invalid", Verdict(model.ProgressEntry{Score: model.Score{Kind: model.ScoreInvalid}}))
}

func TestObserveSuccess_CountsVerdicts(t *testing.T) {
	t.Parallel()

	m := New()
	ds := model.NewDataset()
	p := model.NewProgress(12)
	p.Add(&model.StudentProgress{
		StudentID: "S1",
		Entries: []model.ProgressEntry{
			{Passed: true, Score: model.Score{Kind: model.ScoreScored, Value: 15}},
			{Score: model.Score{Kind: model.ScoreUnscored}},
			{Score: model.Score{Kind: model.ScoreUnscored}},
		},
	})

	m.ObserveSuccess(10*time.Millisecond, ds, p)
	m.ObserveFailure(time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.entries.WithLabelValues("passed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.entries.WithLabelValues("unscored")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("error")))
}

func TestHandler_Exposition(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveFailure(time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `gradepath_runs_total{result="error"} 1`))
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.ObserveFailure(time.Second)
	m.ObserveSuccess(time.Second, model.NewDataset(), model.NewProgress(12))
}
