// Package monitor samples the plugin's health on a timer and publishes it to
// status.txt, the SQL journal and InfluxDB.
package monitor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/interactiv/extension/internal/model"
	"github.com/interactiv/extension/internal/storage"
)

// StatusFileName is written in the status folder.
const StatusFileName = "status.txt"

// Measurement is the InfluxDB measurement of performance points.
const Measurement = "plugin_performance"

// Status is a snapshot of the plugin's health.
type Status struct {
	Time              time.Time     `json:"time"`
	SessionID         string        `json:"sessionId"`
	Ticks             uint64        `json:"ticks"`
	PropsLoaded       int           `json:"propsLoaded"`
	LastTick          time.Duration `json:"lastTickNs"`
	ActionsDispatched uint64        `json:"actionsDispatched"`
	TyresSlashed      uint64        `json:"tyresSlashed"`
	PendingTasks      int           `json:"pendingTasks"`
	PendingWrites     int           `json:"pendingWrites"`
}

// PointWriter accepts InfluxDB points. influx.Manager satisfies it.
type PointWriter interface {
	WritePoint(p *influxdb2_write.Point) error
}

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Status    func() Status
	StatusDir string
	Interval  time.Duration
	Journal   storage.PerformanceRecorder // optional
	Influx    PointWriter                 // optional
	Logger    *slog.Logger
}

// Service manages status monitoring
type Service struct {
	deps Dependencies

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Interval <= 0 {
		deps.Interval = time.Second
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Service{deps: deps}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start starts sampling every Interval. Starting a running monitor does nothing.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.loop(s.stop, s.done)
}

// Stop stops the monitor and waits for the current sample to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	<-done
}

func (s *Service) loop(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.deps.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := s.Sample(); err != nil {
				s.deps.Logger.Error("Failed to publish status", "error", err)
			}
		}
	}
}

// Sample takes one snapshot and publishes it everywhere configured. Every
// sink is tried; the first error is returned.
func (s *Service) Sample() error {
	st := s.deps.Status()
	if st.Time.IsZero() {
		st.Time = time.Now()
	}

	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	keep(s.writeStatusFile(st))
	if s.deps.Journal != nil {
		keep(s.deps.Journal.RecordPerformance(Performance(st)))
	}
	if s.deps.Influx != nil {
		keep(s.deps.Influx.WritePoint(Point(st)))
	}
	return first
}

func (s *Service) writeStatusFile(st Status) error {
	if s.deps.StatusDir == "" {
		return nil
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding status: %w", err)
	}
	path := filepath.Join(s.deps.StatusDir, StatusFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Performance converts a snapshot to a journal row. The journal stamps the
// session itself.
func Performance(st Status) model.PluginPerformance {
	return model.PluginPerformance{
		Time:              st.Time,
		Ticks:             st.Ticks,
		PropsLoaded:       st.PropsLoaded,
		LastTickMs:        float32(st.LastTick.Microseconds()) / 1000,
		ActionsDispatched: st.ActionsDispatched,
		TyresSlashed:      st.TyresSlashed,
		PendingTasks:      st.PendingTasks,
	}
}

// Point converts a snapshot to an InfluxDB point tagged with the session.
func Point(st Status) *influxdb2_write.Point {
	return influxdb2_write.NewPoint(
		Measurement,
		map[string]string{"session": st.SessionID},
		map[string]interface{}{
			"ticks":              int64(st.Ticks),
			"props_loaded":       st.PropsLoaded,
			"last_tick_ms":       float64(st.LastTick.Microseconds()) / 1000,
			"actions_dispatched": int64(st.ActionsDispatched),
			"tyres_slashed":      int64(st.TyresSlashed),
			"pending_tasks":      st.PendingTasks,
			"pending_writes":     st.PendingWrites,
		},
		st.Time,
	)
}
