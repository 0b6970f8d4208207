// Package service is the single owner of the simulation core. It funnels
// every user intent from the trigger surface into the sequencer, export
// handler and overlay coordinator, and serves state snapshots back to the
// UI projection.
package service

import (
	"github.com/logiflow/logiflow-backend/internal/pipeline/domain"
	"github.com/logiflow/logiflow-backend/internal/pipeline/export"
	"github.com/logiflow/logiflow-backend/internal/pipeline/overlay"
	"github.com/logiflow/logiflow-backend/internal/pipeline/sequencer"
	"github.com/logiflow/logiflow-backend/internal/pipeline/state"
	"github.com/logiflow/logiflow-backend/pkg/errors"
	"github.com/logiflow/logiflow-backend/pkg/logger"
)

// PipelineService exposes the trigger and read surfaces of the simulation
type PipelineService struct {
	store     *state.Store
	sequencer *sequencer.Sequencer
	exports   *export.Handler
	overlays  *overlay.Coordinator
	log       *logger.Logger
}

// NewPipelineService creates the pipeline service
func NewPipelineService(
	store *state.Store,
	seq *sequencer.Sequencer,
	exports *export.Handler,
	overlays *overlay.Coordinator,
	log *logger.Logger,
) *PipelineService {
	return &PipelineService{
		store:     store,
		sequencer: seq,
		exports:   exports,
		overlays:  overlays,
		log:       log,
	}
}

// Snapshot returns the full observable state
func (s *PipelineService) Snapshot() domain.AppState {
	return s.store.Snapshot()
}

// SelectMode switches between standard and custom input mode
func (s *PipelineService) SelectMode(mode domain.RunMode) {
	s.store.Update(func(st *domain.AppState) {
		st.Mode = mode
	})
}

// SetCustomInput stores the user-typed identifier list
func (s *PipelineService) SetCustomInput(text string) {
	s.store.Update(func(st *domain.AppState) {
		st.CustomInput = text
	})
}

// TriggerRun starts a run with the currently selected mode and input.
// It reports whether the run was accepted; a run in flight makes this a
// silent no-op.
func (s *PipelineService) TriggerRun() bool {
	snap := s.store.Snapshot()
	return s.sequencer.Start(snap.Mode, snap.CustomInput)
}

// TriggerExport models an export request for the given format
func (s *PipelineService) TriggerExport(format domain.ExportFormat) {
	s.exports.Request(format)
}

// SelectResultRow opens the invoice preview for a record of the current results
func (s *PipelineService) SelectResultRow(invoiceID string) error {
	return s.overlays.OpenPreview(invoiceID)
}

// ClosePreview dismisses the invoice preview
func (s *PipelineService) ClosePreview() {
	s.overlays.ClosePreview()
}

// OpenHelp shows the help panel
func (s *PipelineService) OpenHelp() {
	s.overlays.OpenHelp()
}

// CloseHelp dismisses the help panel
func (s *PipelineService) CloseHelp() {
	s.overlays.CloseHelp()
}

// ToggleExportMenu flips the export menu popover
func (s *PipelineService) ToggleExportMenu() {
	s.overlays.ToggleExportMenu()
}

// GetInvoice returns a record from the current result set by ID
func (s *PipelineService) GetInvoice(invoiceID string) (domain.ResultRecord, error) {
	for _, rec := range s.store.Snapshot().Pipeline.Results {
		if rec.ID == invoiceID {
			return rec, nil
		}
	}
	return domain.ResultRecord{}, errors.NotFound("invoice")
}
