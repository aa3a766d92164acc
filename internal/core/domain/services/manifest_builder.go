package services

import (
	"strings"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

const billOfLadingDigits = 12

// ManifestLine summarises one shipment line.
type ManifestLine struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// ManifestDocuments are the printable documents of a shipment.
type ManifestDocuments struct {
	PackingSlipURL  string `json:"packingSlipUrl"`
	BillOfLadingURL string `json:"billOfLadingUrl"`
}

// Manifest is the payload handed over at a custody transfer.
type Manifest struct {
	ShipmentID   string            `json:"shipmentId"`
	BillOfLading string            `json:"billOfLading"`
	Lines        []ManifestLine    `json:"lines"`
	Documents    ManifestDocuments `json:"documents"`
}

// ManifestBuilder derives a shipment's manifest. Everything is computed from
// the shipment itself, so two builds of the same shipment are identical.
type ManifestBuilder struct {
	docsBaseURL string
}

// NewManifestBuilder takes the base URL the document service is reachable at.
func NewManifestBuilder(docsBaseURL string) (ManifestBuilder, error) {
	docsBaseURL = strings.TrimRight(strings.TrimSpace(docsBaseURL), "/")
	if docsBaseURL == "" {
		return ManifestBuilder{}, errs.NewValueIsRequiredError("docs base url")
	}
	return ManifestBuilder{docsBaseURL: docsBaseURL}, nil
}

// Build returns the manifest of s.
//
// The bill-of-lading number is "BOL-" followed by the first 12 hex digits of
// the shipment id, upper-cased. Line quantities are the requested quantities,
// in shipment line order.
func (b ManifestBuilder) Build(s *shipment.Shipment) (Manifest, error) {
	if err := s.Validate(); err != nil {
		return Manifest{}, err
	}

	id := s.ID().String()
	hexDigits := strings.ToUpper(strings.ReplaceAll(id, "-", ""))[:billOfLadingDigits]

	lines := make([]ManifestLine, 0, len(s.Lines()))
	for _, l := range s.Lines() {
		lines = append(lines, ManifestLine{SKU: l.SKU().String(), Qty: l.Requested()})
	}

	docs := b.docsBaseURL + "/shipments/" + id
	return Manifest{
		ShipmentID:   id,
		BillOfLading: "BOL-" + hexDigits,
		Lines:        lines,
		Documents: ManifestDocuments{
			PackingSlipURL:  docs + "/packing-slip.pdf",
			BillOfLadingURL: docs + "/bill-of-lading.pdf",
		},
	}, nil
}
