// Package metrics 运行指标（Prometheus）
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gradepath/internal/model"
)

// Metrics 进度分析相关的指标
type Metrics struct {
	registry *prometheus.Registry

	runs     *prometheus.CounterVec
	duration prometheus.Histogram
	entries  *prometheus.CounterVec
	records  *prometheus.GaugeVec
}

// New 创建指标集并注册到独立的 registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gradepath",
			Name:      "runs_total",
			Help:      "Load and analyze runs by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gradepath",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full load and analyze run.",
			Buckets:   prometheus.DefBuckets,
		}),
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gradepath",
			Name:      "entries_total",
			Help:      "Progress entries produced, by verdict.",
		}, []string{"verdict"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "gradepath",
			Name:      "loaded_records",
			Help:      "Records loaded by the last successful run, per table.",
		}, []string{"table"}),
	}

	m.registry.MustRegister(
		m.runs,
		m.duration,
		m.entries,
		m.records,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry 底层 registry（用于测试）
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFailure 记录一次失败的运行
func (m *Metrics) ObserveFailure(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues("error").Inc()
	m.duration.Observe(elapsed.Seconds())
}

// ObserveSuccess 记录一次成功的运行
func (m *Metrics) ObserveSuccess(elapsed time.Duration, ds *model.Dataset, p *model.Progress) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues("ok").Inc()
	m.duration.Observe(elapsed.Seconds())

	m.records.WithLabelValues("subjects").Set(float64(ds.Subjects.Len()))
	m.records.WithLabelValues("students").Set(float64(ds.Students.Len()))
	m.records.WithLabelValues("scores").Set(float64(ds.Scores.Len()))

	for _, sp := range p.Students {
		for _, e := range sp.Entries {
			m.entries.WithLabelValues(Verdict(e)).Inc()
		}
	}
}

// Verdict 单条进度的结论标签
func Verdict(e model.ProgressEntry) string {
	switch {
	case e.Passed:
		return "passed"
	case e.Score.Kind == model.ScoreUnscored:
		return "unscored"
	case e.Score.Kind == model.ScoreInvalid:
		return "invalid"
	}
	return "failed"
}
