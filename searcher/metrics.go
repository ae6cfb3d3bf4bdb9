package searcher

import (
	"time"
)

// Metric summarizes one build and evaluation run.
type Metric struct {
	StartTime time.Time
	Duration  time.Duration
	Visits    int // Calls made while building, revisits included
	Records   int // Records reached from the start position
	Edges     int // Distinct parent/child links
	Passes    int // Completed evaluation passes
}

type MetricsCollector interface {
	Start()
	AddVisit()
	AddRecord()
	AddEdge()
	AddPass()
	Complete() Metric
}

type metricsCollector struct {
	startTime time.Time
	visits    int
	records   int
	edges     int
	passes    int
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
}

func (m *metricsCollector) AddVisit() {
	m.visits++
}

func (m *metricsCollector) AddRecord() {
	m.records++
}

func (m *metricsCollector) AddEdge() {
	m.edges++
}

func (m *metricsCollector) AddPass() {
	m.passes++
}

func (m *metricsCollector) Complete() Metric {
	return Metric{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Visits:    m.visits,
		Records:   m.records,
		Edges:     m.edges,
		Passes:    m.passes,
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()           {}
func (m *noMetricsCollector) AddVisit()        {}
func (m *noMetricsCollector) AddRecord()       {}
func (m *noMetricsCollector) AddEdge()         {}
func (m *noMetricsCollector) AddPass()         {}
func (m *noMetricsCollector) Complete() Metric { return Metric{} }
