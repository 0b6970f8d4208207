// Package dataset holds the fixed industry sample invoices used by
// standard-mode runs. The records are pre-formed demo data, consumed
// verbatim; nothing in the pipeline core mutates them.
package dataset

import "github.com/logiflow/logiflow-backend/internal/pipeline/domain"

var industrySamples = []domain.ResultRecord{
	{
		ID:                 "INV-2023-001",
		IssueDate:          "2023-12-01",
		ClientName:         "Global Logistics Corp",
		ClientAddress:      "123 Logistics Way, Rotterdam, NL",
		TotalAmountDisplay: "€1,240.50",
		Status:             domain.StatusVerified,
		Seller: domain.SellerInfo{
			Name:     "North Sea Shipping Ltd",
			Address:  "Port Quay 12, Rotterdam, NL",
			TaxID:    "NL800123456",
			Email:    "ops@northseaship.com",
			ThemeTag: "blue",
		},
		LineItems: []domain.LineItem{
			{Description: "Container Freight (20ft)", Quantity: 1, UnitPrice: 850.00},
			{Description: "Customs Clearance Fee", Quantity: 1, UnitPrice: 142.40},
			{Description: "Insurance Premium", Quantity: 1, UnitPrice: 248.10},
		},
		Metadata: domain.ExtractionMetadata{
			TaxAmountDisplay:    "€248.10",
			SubtotalDisplay:     "€992.40",
			ConfidenceDisplay:   "99.2%",
			ExtractionMethodTag: "OCR-v4",
			PaymentTermsTag:     "Net 30",
		},
	},
	{
		ID:                 "INV-2023-002",
		IssueDate:          "2023-12-05",
		ClientName:         "FastShip Ltd",
		ClientAddress:      "45 Port Terminal, Hamburg, DE",
		TotalAmountDisplay: "€890.00",
		Status:             domain.StatusVerified,
		Seller: domain.SellerInfo{
			Name:     "Hamburg Express Gmbh",
			Address:  "Elbe Str. 88, Hamburg, DE",
			TaxID:    "DE100987654",
			Email:    "billing@hamburg-express.de",
			ThemeTag: "red",
		},
		LineItems: []domain.LineItem{
			{Description: "Express Courier Delivery", Quantity: 10, UnitPrice: 71.20},
			{Description: "Fuel Surcharge", Quantity: 1, UnitPrice: 178.00},
		},
		Metadata: domain.ExtractionMetadata{
			TaxAmountDisplay:    "€178.00",
			SubtotalDisplay:     "€712.00",
			ConfidenceDisplay:   "98.5%",
			ExtractionMethodTag: "LLM-Extract",
			PaymentTermsTag:     "Due on Receipt",
		},
	},
	{
		ID:                 "INV-2023-003",
		IssueDate:          "2023-12-10",
		ClientName:         "Euro Freight Services",
		ClientAddress:      "Industrial Zone B, Piraeus, GR",
		TotalAmountDisplay: "€2,100.25",
		Status:             domain.StatusVerified,
		Seller: domain.SellerInfo{
			Name:     "Piraeus Port Services SA",
			Address:  "Akti Miaouli 5, Piraeus, GR",
			TaxID:    "EL099887766",
			Email:    "accounting@piraeus-port.gr",
			ThemeTag: "emerald",
		},
		LineItems: []domain.LineItem{
			{Description: "LTL Shipping Services", Quantity: 2, UnitPrice: 650.00},
			{Description: "Warehouse Storage (Monthly)", Quantity: 1, UnitPrice: 380.20},
			{Description: "Hazardous Material Handling", Quantity: 1, UnitPrice: 420.05},
		},
		Metadata: domain.ExtractionMetadata{
			TaxAmountDisplay:    "€420.05",
			SubtotalDisplay:     "€1,680.20",
			ConfidenceDisplay:   "99.8%",
			ExtractionMethodTag: "Hybrid-AI",
			PaymentTermsTag:     "Net 15",
		},
	},
}

// Invoices returns the sample dataset in its fixed order.
// Callers treat the returned records as read-only.
func Invoices() []domain.ResultRecord {
	return industrySamples
}

// Size returns the number of sample invoices
func Size() int {
	return len(industrySamples)
}
