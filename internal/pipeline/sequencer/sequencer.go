// Package sequencer drives the staged progress narrative of a run. It
// schedules a declarative stage list on an injected clock; each firing
// atomically appends a log entry and bumps progress, and the terminal
// stage reveals the materialized results.
package sequencer

import (
	"github.com/google/uuid"
	"github.com/logiflow/logiflow-backend/internal/pipeline/domain"
	"github.com/logiflow/logiflow-backend/internal/pipeline/materializer"
	"github.com/logiflow/logiflow-backend/internal/pipeline/state"
	"github.com/logiflow/logiflow-backend/pkg/clock"
	"github.com/logiflow/logiflow-backend/pkg/logger"
)

// logTimeFormat matches the terminal console's timestamp column
const logTimeFormat = "15:04:05"

// Sequencer owns run scheduling. At most one run is in flight; further
// Start calls are silent no-ops while it runs.
type Sequencer struct {
	store    *state.Store
	mat      *materializer.Materializer
	clk      clock.Clock
	schedule ScheduleFunc
	log      *logger.Logger
}

// New creates a sequencer
func New(store *state.Store, mat *materializer.Materializer, clk clock.Clock, schedule ScheduleFunc, log *logger.Logger) *Sequencer {
	return &Sequencer{
		store:    store,
		mat:      mat,
		clk:      clk,
		schedule: schedule,
		log:      log.WithComponent("sequencer"),
	}
}

// Start begins a run. It reports whether the run was accepted; a run
// already in flight makes this a no-op, not an error, so re-clicking the
// trigger control cannot double-submit.
func (s *Sequencer) Start(mode domain.RunMode, customInput string) bool {
	accepted := false
	s.store.Update(func(st *domain.AppState) {
		if st.Pipeline.IsRunning {
			return
		}
		accepted = true
		st.Pipeline = domain.PipelineState{IsRunning: true}
		st.Notification = ""
	})
	if !accepted {
		s.log.Debug().Msg("run rejected: already running")
		return false
	}

	// Results are resolved up front and revealed only at the terminal stage
	records := s.mat.Materialize(mode, customInput)

	stages := s.schedule(len(records))
	if err := Validate(stages); err != nil {
		// A broken schedule would strand the run in isRunning; fail the
		// start instead and roll the reset back.
		s.log.Error().Err(err).Msg("invalid stage schedule")
		s.store.Update(func(st *domain.AppState) {
			st.Pipeline.IsRunning = false
		})
		return false
	}

	runID := uuid.New().String()
	runLog := s.log.WithRunID(runID)
	runLog.Info().
		Str("mode", string(mode)).
		Int("records", len(records)).
		Int("stages", len(stages)).
		Msg("run started")

	for _, stage := range stages {
		stage := stage
		s.clk.AfterFunc(stage.Offset, func() {
			s.fire(runLog, stage, records)
		})
	}
	return true
}

// fire executes one stage: log append and progress update happen in a
// single store transaction, so no intermediate state is observable.
func (s *Sequencer) fire(runLog *logger.Logger, stage Stage, records []domain.ResultRecord) {
	s.store.Update(func(st *domain.AppState) {
		st.Pipeline.Logs = append(st.Pipeline.Logs, domain.LogEntry{
			Message:   stage.Message,
			Severity:  stage.Severity,
			Timestamp: s.clk.Now().Format(logTimeFormat),
		})
		st.Pipeline.ProgressPercent = stage.Progress
		if stage.Terminal {
			st.Pipeline.Results = records
			st.Pipeline.IsRunning = false
		}
	})

	event := runLog.Debug()
	if stage.Terminal {
		event = runLog.Info()
	}
	event.
		Int("progress", stage.Progress).
		Str("severity", string(stage.Severity)).
		Bool("terminal", stage.Terminal).
		Msg(stage.Message)
}
