package renderer

import (
	"github.com/etnz/bricks"
)

// sortLabels are the titles of the sort orders.
var sortLabels = map[bricks.SortKey]string{
	bricks.ByScore:        "Total Score (desc)",
	bricks.ByCurrentPrice: "Current Price (desc)",
	bricks.ByROI:          "ROI % (desc)",
}

// Table is the set list view.
type Table struct {
	Query    string     `json:"query,omitempty"`
	Sort     string     `json:"sort"`
	Selected bricks.ID  `json:"selected,omitempty"`
	Rows     []TableRow `json:"rows"`
}

// TableRow is a set of the list with its metrics.
type TableRow struct {
	ID            bricks.ID `json:"setId"`
	Name          string    `json:"name"`
	Theme         string    `json:"theme"`
	TotalScore    int       `json:"totalScore"`
	CurrentPrice  float64   `json:"currentPrice"`
	PurchasePrice float64   `json:"purchasePrice"`
	Delta         float64   `json:"delta"`
	ROI           *float64  `json:"roi"`
	Selected      bool      `json:"selected,omitempty"`
}

// NewTable returns the view of items, already projected with query and key.
// The row of selected, if any, is marked.
func NewTable(items []bricks.Item, query string, key bricks.SortKey, selected bricks.ID) *Table {
	t := &Table{
		Query:    query,
		Sort:     string(key),
		Selected: selected,
		Rows:     make([]TableRow, 0, len(items)),
	}
	for _, it := range items {
		m := bricks.ComputeMetrics(it)
		t.Rows = append(t.Rows, TableRow{
			ID:            it.ID,
			Name:          it.Name,
			Theme:         it.Theme,
			TotalScore:    m.TotalScore,
			CurrentPrice:  it.CurrentPrice,
			PurchasePrice: it.PurchasePrice,
			Delta:         m.Delta,
			ROI:           m.ROI,
			Selected:      it.ID == selected,
		})
	}
	return t
}

// SortLabel is the title of the sort order of the table.
func (t *Table) SortLabel() string {
	if l, ok := sortLabels[bricks.SortKey(t.Sort)]; ok {
		return l
	}
	return sortLabels[bricks.ByScore]
}

func (r TableRow) DisplayName() string     { return orNone(r.Name) }
func (r TableRow) DisplayCurrent() string  { return Price(r.CurrentPrice) }
func (r TableRow) DisplayPurchase() string { return Price(r.PurchasePrice) }
func (r TableRow) DisplayDelta() string    { return SignedPrice(r.Delta) }
func (r TableRow) DisplayROI() string      { return ROI(r.ROI) }
