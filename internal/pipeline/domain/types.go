package domain

import (
	"fmt"
	"strings"
)

// RunMode selects which source the materializer draws result records from
type RunMode string

const (
	// ModeStandard processes the fixed industry sample dataset
	ModeStandard RunMode = "standard"
	// ModeCustom synthesizes records from user-typed, comma-separated identifiers
	ModeCustom RunMode = "custom"
)

// ParseRunMode converts a request string into a RunMode
func ParseRunMode(s string) (RunMode, error) {
	switch RunMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStandard:
		return ModeStandard, nil
	case ModeCustom:
		return ModeCustom, nil
	default:
		return "", fmt.Errorf("invalid run mode: %q", s)
	}
}

// Severity tags a log entry for rendering in the execution console
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	// SeverityFinal marks the terminal entry of a run
	SeverityFinal Severity = "final"
)

// LogEntry is one timestamped line of the pipeline audit trail.
// Entries are immutable once appended; append order is the audit order.
type LogEntry struct {
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
	Timestamp string   `json:"timestamp"`
}

// SellerInfo identifies the invoice issuer
type SellerInfo struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	TaxID    string `json:"tax_id"`
	Email    string `json:"email"`
	ThemeTag string `json:"theme_tag"`
}

// LineItem is a single billed position on an invoice
type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Total returns the derived line total (quantity x unit price).
// It is never persisted, only computed for display.
func (li LineItem) Total() float64 {
	return float64(li.Quantity) * li.UnitPrice
}

// ExtractionMetadata carries the simulated extraction provenance for a record
type ExtractionMetadata struct {
	TaxAmountDisplay    string `json:"tax_amount_display"`
	SubtotalDisplay     string `json:"subtotal_display"`
	ConfidenceDisplay   string `json:"confidence_display"`
	ExtractionMethodTag string `json:"extraction_method_tag"`
	PaymentTermsTag     string `json:"payment_terms_tag"`
}

// StatusVerified is the only status the simulation produces
const StatusVerified = "Verified"

// ResultRecord is one extracted invoice. Records become visible in
// PipelineState.Results only when a run reaches its terminal stage.
type ResultRecord struct {
	ID                 string             `json:"id"`
	IssueDate          string             `json:"issue_date"`
	ClientName         string             `json:"client_name"`
	ClientAddress      string             `json:"client_address"`
	TotalAmountDisplay string             `json:"total_amount_display"`
	Status             string             `json:"status"`
	Seller             SellerInfo         `json:"seller"`
	LineItems          []LineItem         `json:"line_items"`
	Metadata           ExtractionMetadata `json:"metadata"`
}

// ExportFormat is a modeled export target
type ExportFormat string

const (
	FormatPDF ExportFormat = "PDF"
	FormatCSV ExportFormat = "CSV"
)

// ParseExportFormat converts a request string into an ExportFormat.
// The common "cvs" misspelling is normalized to CSV.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PDF":
		return FormatPDF, nil
	case "CSV", "CVS":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("invalid export format: %q", s)
	}
}

// PipelineState is the observable state of the extraction simulation.
// ProgressPercent is monotonic non-decreasing within a run and Results
// stays empty until the terminal stage fires.
type PipelineState struct {
	IsRunning       bool           `json:"is_running"`
	ProgressPercent int            `json:"progress_percent"`
	Logs            []LogEntry     `json:"logs"`
	Results         []ResultRecord `json:"results"`
}

// ExportState tracks the pending/settled lifecycle of export requests
type ExportState struct {
	IsPending  bool         `json:"is_pending"`
	LastFormat ExportFormat `json:"last_format,omitempty"`
}

// OverlayKind identifies which exclusive UI surface is active
type OverlayKind string

const (
	OverlayNone       OverlayKind = "none"
	OverlayPreview    OverlayKind = "preview"
	OverlayHelp       OverlayKind = "help"
	OverlayExportMenu OverlayKind = "export_menu"
)

// OverlayState tracks the single active overlay. Preview holds its own
// copy of the selected record so an open preview survives a rerun reset.
type OverlayState struct {
	Active  OverlayKind   `json:"active"`
	Preview *ResultRecord `json:"preview,omitempty"`
}

// AppState is the whole of the simulation's mutable state. All mutation is
// funneled through the state store so timer callbacks and HTTP handlers
// serialize onto one execution context.
type AppState struct {
	Mode        RunMode       `json:"mode"`
	CustomInput string        `json:"custom_input"`
	Pipeline    PipelineState `json:"pipeline"`
	Export      ExportState   `json:"export"`
	Overlay     OverlayState  `json:"overlay"`
	// Notification is the transient acknowledgment toast, empty when hidden
	Notification string `json:"notification,omitempty"`
}

// DefaultCustomInput seeds the custom-mode input field on fresh state
const DefaultCustomInput = "INV-X1, INV-X2"

// NewAppState returns the empty session state
func NewAppState() AppState {
	return AppState{
		Mode:        ModeStandard,
		CustomInput: DefaultCustomInput,
		Overlay:     OverlayState{Active: OverlayNone},
	}
}
