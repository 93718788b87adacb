// Package services provides the pricing engine, approval workflow and
// export logic for cost sheets.
package services

import "math"

// ItemInputs holds the raw estimator-entered fields of a cost sheet line
// item. HasMiscSupplier reflects whether a misc supplier is selected; the
// misc cost component is excluded from totals when it is false, even if
// misc cost/qty carry stored values.
type ItemInputs struct {
	Qty             float64
	SupplierCost    float64
	MiscQty         float64
	MiscCost        float64
	HasMiscSupplier bool
	MarkupPercent   float64
}

// ItemTotals holds every derived monetary field of a line item.
type ItemTotals struct {
	SupplierTotal      float64
	MiscTotal          float64
	TotalCost          float64
	MarkupAmount       float64
	QuotedPrice        float64
	GrossMarginPercent float64
}

// sanitizeAmount coerces negative or non-finite values to 0 so that
// derived fields never carry NaN/Inf into the store.
func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// CalcItemTotals derives all monetary fields from a line item's raw
// inputs. It is a pure function: recomputation on the same inputs yields
// identical outputs, and it is safe to apply on every field edit.
func CalcItemTotals(in ItemInputs) ItemTotals {
	qty := sanitizeAmount(in.Qty)
	supplierCost := sanitizeAmount(in.SupplierCost)
	markup := sanitizeAmount(in.MarkupPercent)

	supplierTotal := supplierCost * qty

	var miscTotal float64
	if in.HasMiscSupplier {
		miscTotal = sanitizeAmount(in.MiscCost) * sanitizeAmount(in.MiscQty)
	}

	totalCost := supplierTotal + miscTotal
	markupAmount := totalCost * markup / 100
	quotedPrice := totalCost + markupAmount

	// Gross margin expresses the markup as a fraction of the quoted
	// price rather than of cost.
	var grossMargin float64
	if markup > 0 {
		grossMargin = markup / (1 + markup/100)
	}

	return ItemTotals{
		SupplierTotal:      supplierTotal,
		MiscTotal:          miscTotal,
		TotalCost:          totalCost,
		MarkupAmount:       markupAmount,
		QuotedPrice:        quotedPrice,
		GrossMarginPercent: grossMargin,
	}
}

// ApprovedItem is the per-item slice of data the ledger aggregation needs.
type ApprovedItem struct {
	ClientID    string
	ClientName  string
	SubmittedAt string
	TotalCost   float64
}

// ClientLedgerEntry is one row of the approved ledger: all fully approved
// items for a client rolled up into a count and a cost total.
type ClientLedgerEntry struct {
	ClientID    string  `json:"client_id"`
	ClientName  string  `json:"client_name"`
	SubmittedAt string  `json:"submitted_at"`
	TotalItems  int     `json:"total_items"`
	TotalCost   float64 `json:"total_cost"`
}

// GroupApprovedByClient rolls approved items up into one ledger entry per
// client, preserving first-seen client order. The submitted timestamp of
// the first item encountered for a client wins.
func GroupApprovedByClient(items []ApprovedItem) []ClientLedgerEntry {
	index := make(map[string]int)
	var entries []ClientLedgerEntry

	for _, item := range items {
		i, ok := index[item.ClientID]
		if !ok {
			i = len(entries)
			index[item.ClientID] = i
			entries = append(entries, ClientLedgerEntry{
				ClientID:    item.ClientID,
				ClientName:  item.ClientName,
				SubmittedAt: item.SubmittedAt,
			})
		}
		entries[i].TotalItems++
		entries[i].TotalCost += item.TotalCost
	}

	return entries
}

// RecordTotals summarizes all line items of one client for the records view.
type RecordTotals struct {
	TotalItems  int     `json:"total_items"`
	TotalCost   float64 `json:"total_cost"`
	TotalQuoted float64 `json:"total_quoted"`
}

// ItemForTotals is the slice of a line item the records summary needs.
type ItemForTotals struct {
	TotalCost   float64
	QuotedPrice float64
}

// CalcRecordTotals sums cost and quoted price across a client's items.
func CalcRecordTotals(items []ItemForTotals) RecordTotals {
	totals := RecordTotals{TotalItems: len(items)}
	for _, item := range items {
		totals.TotalCost += item.TotalCost
		totals.TotalQuoted += item.QuotedPrice
	}
	return totals
}
