// Package overlay enforces single-active-overlay semantics across the
// invoice preview, help panel and export menu. All transitions are
// user-driven and synchronous; no timers touch overlay state.
package overlay

import (
	"github.com/logiflow/logiflow-backend/internal/pipeline/domain"
	"github.com/logiflow/logiflow-backend/internal/pipeline/state"
	"github.com/logiflow/logiflow-backend/pkg/errors"
	"github.com/logiflow/logiflow-backend/pkg/logger"
)

// Coordinator owns overlay transitions. At most one overlay is active;
// opening a modal implicitly closes whatever else was open.
type Coordinator struct {
	store *state.Store
	log   *logger.Logger
}

// New creates an overlay coordinator
func New(store *state.Store, log *logger.Logger) *Coordinator {
	return &Coordinator{
		store: store,
		log:   log.WithComponent("overlay"),
	}
}

// OpenPreview activates the invoice preview for a record of the current
// result set. The preview pins its own copy of the record, so it stays
// coherent even if a rerun replaces the results underneath it.
// A record outside the current results is a contract violation by the
// caller and yields a not-found error.
func (c *Coordinator) OpenPreview(invoiceID string) error {
	var found *domain.ResultRecord
	c.store.Update(func(st *domain.AppState) {
		for i := range st.Pipeline.Results {
			if st.Pipeline.Results[i].ID == invoiceID {
				rec := st.Pipeline.Results[i]
				found = &rec
				break
			}
		}
		if found == nil {
			return
		}
		st.Overlay = domain.OverlayState{Active: domain.OverlayPreview, Preview: found}
	})

	if found == nil {
		c.log.Warn().Str("invoice_id", invoiceID).Msg("preview requested for a record outside current results")
		return errors.NotFound("invoice")
	}

	c.log.Debug().Str("invoice_id", invoiceID).Msg("preview opened")
	return nil
}

// ClosePreview dismisses the preview if it is the active overlay
func (c *Coordinator) ClosePreview() {
	c.closeKind(domain.OverlayPreview)
}

// OpenHelp activates the help panel, displacing any other overlay
func (c *Coordinator) OpenHelp() {
	c.store.Update(func(st *domain.AppState) {
		st.Overlay = domain.OverlayState{Active: domain.OverlayHelp}
	})
	c.log.Debug().Msg("help opened")
}

// CloseHelp dismisses the help panel if it is the active overlay
func (c *Coordinator) CloseHelp() {
	c.closeKind(domain.OverlayHelp)
}

// ToggleExportMenu flips the export menu popover. Opening it displaces
// any active modal, keeping the single-active invariant.
func (c *Coordinator) ToggleExportMenu() {
	c.store.Update(func(st *domain.AppState) {
		if st.Overlay.Active == domain.OverlayExportMenu {
			st.Overlay = domain.OverlayState{Active: domain.OverlayNone}
		} else {
			st.Overlay = domain.OverlayState{Active: domain.OverlayExportMenu}
		}
	})
}

// closeKind dismisses the given overlay kind, a no-op when some other
// overlay is active.
func (c *Coordinator) closeKind(kind domain.OverlayKind) {
	c.store.Update(func(st *domain.AppState) {
		if st.Overlay.Active == kind {
			st.Overlay = domain.OverlayState{Active: domain.OverlayNone}
		}
	})
}
