// Package materializer produces the result records a run reveals at its
// terminal stage. No extraction happens here: standard mode hands back the
// fixed sample dataset, custom mode synthesizes template records from
// user-typed identifiers.
package materializer

import (
	"fmt"
	"strings"
	"time"

	"github.com/logiflow/logiflow-backend/internal/pipeline/domain"
)

// Materializer resolves result records for a run mode.
// The random source is injected so tests can seed it and assert on
// formatting without asserting exact amounts.
type Materializer struct {
	samples []domain.ResultRecord
	now     func() time.Time
	random  func() float64
}

// New creates a materializer over the given sample dataset.
// random must return values in [0, 1).
func New(samples []domain.ResultRecord, now func() time.Time, random func() float64) *Materializer {
	return &Materializer{
		samples: samples,
		now:     now,
		random:  random,
	}
}

// Materialize resolves the records to reveal at pipeline completion.
// Standard mode returns the sample dataset verbatim, order preserved.
// Custom mode yields exactly one record per comma-delimited token; an
// empty input still yields one placeholder record.
func (m *Materializer) Materialize(mode domain.RunMode, customInput string) []domain.ResultRecord {
	if mode == domain.ModeStandard {
		return m.samples
	}

	tokens := strings.Split(customInput, ",")
	records := make([]domain.ResultRecord, 0, len(tokens))
	for i, token := range tokens {
		id := strings.TrimSpace(token)
		if id == "" {
			id = fmt.Sprintf("DATA-%d", i+1)
		}
		records = append(records, m.synthesize(id))
	}
	return records
}

// synthesize builds one template record for a custom identifier.
// Every field is a deterministic placeholder except the display amount.
func (m *Materializer) synthesize(id string) domain.ResultRecord {
	return domain.ResultRecord{
		ID:                 id,
		IssueDate:          m.now().UTC().Format("2006-01-02"),
		ClientName:         "Private Client",
		ClientAddress:      "Customer Address Not Specified",
		TotalAmountDisplay: fmt.Sprintf("€%.2f", m.random()*2000),
		Status:             domain.StatusVerified,
		Seller: domain.SellerInfo{
			Name:     "Generic AI Automated Seller",
			Address:  "Digital Cloud Infrastructure",
			TaxID:    "AI-VAT-000",
			Email:    "automated@system.ai",
			ThemeTag: "slate",
		},
		LineItems: []domain.LineItem{
			{Description: "Automated Processing Service", Quantity: 1, UnitPrice: 1000.00},
		},
		Metadata: domain.ExtractionMetadata{
			TaxAmountDisplay:    "€240.00",
			SubtotalDisplay:     "€1000.00",
			ConfidenceDisplay:   "97.4%",
			ExtractionMethodTag: "AI-Scan",
			PaymentTermsTag:     "Custom",
		},
	}
}
