// Package export models the request/acknowledgment lifecycle of a data
// export. No file is ever produced; a request goes pending, settles after
// a fixed delay, and surfaces a transient acknowledgment toast.
package export

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/logiflow/logiflow-backend/internal/pipeline/domain"
	"github.com/logiflow/logiflow-backend/internal/pipeline/state"
	"github.com/logiflow/logiflow-backend/pkg/clock"
	"github.com/logiflow/logiflow-backend/pkg/logger"
)

// Handler models asynchronous export requests. Each request owns its own
// settle and clear timers; a request made while another is pending is
// allowed, and acknowledgments land in whatever order the timers fire.
type Handler struct {
	store                *state.Store
	clk                  clock.Clock
	settleDelay          time.Duration
	notificationDuration time.Duration
	log                  *logger.Logger
}

// New creates an export handler
func New(store *state.Store, clk clock.Clock, settleDelay, notificationDuration time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		store:                store,
		clk:                  clk,
		settleDelay:          settleDelay,
		notificationDuration: notificationDuration,
		log:                  log.WithComponent("export"),
	}
}

// Request starts an export of the given format. It marks the export
// pending and closes the export menu popover in the same transaction.
func (h *Handler) Request(format domain.ExportFormat) {
	requestID := uuid.New().String()

	h.store.Update(func(st *domain.AppState) {
		st.Export.IsPending = true
		if st.Overlay.Active == domain.OverlayExportMenu {
			st.Overlay = domain.OverlayState{Active: domain.OverlayNone}
		}
	})

	h.log.Info().
		Str("export_id", requestID).
		Str("format", string(format)).
		Dur("settle_delay", h.settleDelay).
		Msg("export requested")

	h.clk.AfterFunc(h.settleDelay, func() {
		h.settle(requestID, format)
	})
}

// settle completes a pending export and raises the acknowledgment toast,
// which clears itself after the display duration. The clear is
// unconditional: a toast raised by a later request within the window is
// wiped too. Known limitation, kept deliberately.
func (h *Handler) settle(requestID string, format domain.ExportFormat) {
	h.store.Update(func(st *domain.AppState) {
		st.Export.IsPending = false
		st.Export.LastFormat = format
		st.Notification = fmt.Sprintf("Saved as %s!", format)
	})

	h.log.Info().
		Str("export_id", requestID).
		Str("format", string(format)).
		Msg("export settled")

	h.clk.AfterFunc(h.notificationDuration, func() {
		h.store.Update(func(st *domain.AppState) {
			st.Notification = ""
		})
	})
}
