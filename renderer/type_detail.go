package renderer

import (
	"github.com/etnz/bricks"
)

// Detail is the view of a single set.
type Detail struct {
	bricks.Item
	Metrics    bricks.Metrics
	ImageURL   string
	CatalogURL string
}

// NewDetail returns the detail view of it.
func NewDetail(it bricks.Item) *Detail {
	return &Detail{
		Item:       it,
		Metrics:    bricks.ComputeMetrics(it),
		ImageURL:   bricks.ImageURL(it.ID),
		CatalogURL: bricks.CatalogURL(it.ID),
	}
}

// Title is the name of the set, or a placeholder.
func (d *Detail) Title() string {
	if d.Name == "" {
		return "Untitled set"
	}
	return d.Name
}

func (d *Detail) DisplayTheme() string    { return orNone(d.Theme) }
func (d *Detail) DisplayYear() string     { return Year(d.Year) }
func (d *Detail) DisplayCurrent() string  { return Price(d.CurrentPrice) }
func (d *Detail) DisplayPurchase() string { return Price(d.PurchasePrice) }
func (d *Detail) DisplayDelta() string    { return SignedPrice(d.Metrics.Delta) }
func (d *Detail) DisplayROI() string      { return ROI(d.Metrics.ROI) }

// ImportSummary is the view of an import outcome.
type ImportSummary struct {
	Imported   int    `json:"imported"`
	Duplicates int    `json:"duplicates"`
	Invalid    int    `json:"invalid"`
	Error      string `json:"error,omitempty"`
	Message    string `json:"message"`
}

// NewImportSummary returns the view of res.
func NewImportSummary(res bricks.ImportResult) *ImportSummary {
	s := &ImportSummary{
		Imported:   res.Imported(),
		Duplicates: res.Duplicates,
		Invalid:    res.Invalid,
		Message:    res.Summary(),
	}
	if res.Err != nil {
		s.Error = res.Summary()
	}
	return s
}
