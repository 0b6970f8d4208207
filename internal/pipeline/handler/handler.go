package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/logiflow/logiflow-backend/internal/pipeline/domain"
	"github.com/logiflow/logiflow-backend/internal/pipeline/service"
	"github.com/logiflow/logiflow-backend/pkg/errors"
	"github.com/logiflow/logiflow-backend/pkg/httputil"
	"github.com/logiflow/logiflow-backend/pkg/logger"
)

// Handler exposes the pipeline trigger and read surfaces over HTTP
type Handler struct {
	service *service.PipelineService
	log     *logger.Logger
}

// NewHandler creates a pipeline handler
func NewHandler(svc *service.PipelineService, log *logger.Logger) *Handler {
	return &Handler{
		service: svc,
		log:     log,
	}
}

// RegisterRoutes mounts the pipeline API on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/state", h.GetState)
	r.Put("/mode", h.SelectMode)
	r.Put("/input", h.SetCustomInput)
	r.Post("/runs", h.TriggerRun)
	r.Post("/exports", h.TriggerExport)
	r.Get("/invoices/{id}", h.GetInvoice)

	r.Route("/overlays", func(r chi.Router) {
		r.Post("/preview", h.OpenPreview)
		r.Delete("/preview", h.ClosePreview)
		r.Post("/help", h.OpenHelp)
		r.Delete("/help", h.CloseHelp)
		r.Post("/export-menu", h.ToggleExportMenu)
	})
}

// SelectModeRequest selects the run input mode
type SelectModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=standard custom"`
}

// CustomInputRequest sets the comma-separated identifier list for custom runs
type CustomInputRequest struct {
	CustomInput string `json:"custom_input"`
}

// ExportRequest asks for a modeled export
type ExportRequest struct {
	Format string `json:"format" validate:"required"`
}

// PreviewRequest opens the invoice preview for a result row
type PreviewRequest struct {
	InvoiceID string `json:"invoice_id" validate:"required"`
}

// RunResponse reports whether a run trigger was accepted
type RunResponse struct {
	Accepted bool `json:"accepted"`
}

// GetState handles GET /state
// Returns the full snapshot the UI projection renders from.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, h.service.Snapshot())
}

// SelectMode handles PUT /mode
func (h *Handler) SelectMode(w http.ResponseWriter, r *http.Request) {
	var req SelectModeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	mode, err := domain.ParseRunMode(req.Mode)
	if err != nil {
		httputil.Error(w, errors.BadRequest(err.Error()))
		return
	}

	h.service.SelectMode(mode)
	httputil.NoContent(w)
}

// SetCustomInput handles PUT /input
func (h *Handler) SetCustomInput(w http.ResponseWriter, r *http.Request) {
	var req CustomInputRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	h.service.SetCustomInput(req.CustomInput)
	httputil.NoContent(w)
}

// TriggerRun handles POST /runs
// A trigger while a run is in flight is not an error; the response just
// reports accepted=false so the UI can ignore the re-click.
func (h *Handler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	accepted := h.service.TriggerRun()
	httputil.Accepted(w, RunResponse{Accepted: accepted})
}

// TriggerExport handles POST /exports
func (h *Handler) TriggerExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	format, err := domain.ParseExportFormat(req.Format)
	if err != nil {
		httputil.Error(w, errors.BadRequest(err.Error()))
		return
	}

	h.service.TriggerExport(format)
	httputil.Accepted(w, map[string]string{"format": string(format)})
}

// OpenPreview handles POST /overlays/preview
func (h *Handler) OpenPreview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.service.SelectResultRow(req.InvoiceID); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// ClosePreview handles DELETE /overlays/preview
func (h *Handler) ClosePreview(w http.ResponseWriter, r *http.Request) {
	h.service.ClosePreview()
	httputil.NoContent(w)
}

// OpenHelp handles POST /overlays/help
func (h *Handler) OpenHelp(w http.ResponseWriter, r *http.Request) {
	h.service.OpenHelp()
	httputil.NoContent(w)
}

// CloseHelp handles DELETE /overlays/help
func (h *Handler) CloseHelp(w http.ResponseWriter, r *http.Request) {
	h.service.CloseHelp()
	httputil.NoContent(w)
}

// ToggleExportMenu handles POST /overlays/export-menu
func (h *Handler) ToggleExportMenu(w http.ResponseWriter, r *http.Request) {
	h.service.ToggleExportMenu()
	httputil.NoContent(w)
}

// LineItemView is a line item with its derived display totals
type LineItemView struct {
	Description      string `json:"description"`
	Quantity         int    `json:"quantity"`
	UnitPriceDisplay string `json:"unit_price_display"`
	TotalDisplay     string `json:"total_display"`
}

// InvoiceResponse is a result record enriched for the invoice preview
type InvoiceResponse struct {
	domain.ResultRecord
	Lines []LineItemView `json:"lines"`
}

// GetInvoice handles GET /invoices/{id}
// Returns a record of the current result set with derived line totals.
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "id")

	rec, err := h.service.GetInvoice(invoiceID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	resp := InvoiceResponse{ResultRecord: rec}
	for _, li := range rec.LineItems {
		resp.Lines = append(resp.Lines, LineItemView{
			Description:      li.Description,
			Quantity:         li.Quantity,
			UnitPriceDisplay: fmt.Sprintf("€%.2f", li.UnitPrice),
			TotalDisplay:     fmt.Sprintf("€%.2f", li.Total()),
		})
	}
	httputil.JSON(w, http.StatusOK, resp)
}
