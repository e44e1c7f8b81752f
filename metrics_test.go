package bricks

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name      string
		item      Item
		wantDelta float64
		wantROI   *float64
		wantScore int
	}{
		{
			name:      "gain",
			item:      Item{PurchasePrice: 100, CurrentPrice: 150, RankA: 5, RankB: 5, RankC: 5, RankD: 5},
			wantDelta: 50,
			wantROI:   ptr(50.0),
			wantScore: 20,
		},
		{
			name:      "loss",
			item:      Item{PurchasePrice: 200, CurrentPrice: 180, RankA: 10, RankB: 10, RankC: 10, RankD: 10},
			wantDelta: -20,
			wantROI:   ptr(-10.0),
			wantScore: 40,
		},
		{
			name:      "no cost basis",
			item:      Item{PurchasePrice: 0, CurrentPrice: 280, RankA: 3, RankB: -9},
			wantDelta: 280,
			wantScore: -6,
		},
		{
			name:      "exact decimals",
			item:      Item{PurchasePrice: 100, CurrentPrice: 150.1},
			wantDelta: 50.1,
			wantROI:   ptr(50.1),
		},
		{
			name:      "not normalized",
			item:      Item{PurchasePrice: math.NaN(), CurrentPrice: math.Inf(1)},
			wantDelta: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeMetrics(tt.item)
			if got.Delta != tt.wantDelta {
				t.Errorf("ComputeMetrics().Delta = %v, want %v", got.Delta, tt.wantDelta)
			}
			if got.TotalScore != tt.wantScore {
				t.Errorf("ComputeMetrics().TotalScore = %v, want %v", got.TotalScore, tt.wantScore)
			}
			switch {
			case tt.wantROI == nil && got.ROI != nil:
				t.Errorf("ComputeMetrics().ROI = %v, want nil", *got.ROI)
			case tt.wantROI != nil && got.ROI == nil:
				t.Errorf("ComputeMetrics().ROI = nil, want %v", *tt.wantROI)
			case tt.wantROI != nil && *got.ROI != *tt.wantROI:
				t.Errorf("ComputeMetrics().ROI = %v, want %v", *got.ROI, *tt.wantROI)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestROIWithoutCostBasis(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("roi is nil when the purchase price is not positive", prop.ForAll(
		func(purchase, current float64) bool {
			m := ComputeMetrics(Normalize(RawRecord{FieldPurchasePrice: purchase, FieldCurrentPrice: current}))
			return m.ROI == nil
		},
		gen.Float64Range(-1e6, 0),
		gen.Float64Range(0, 1e6),
	))

	properties.Property("roi is finite otherwise", prop.ForAll(
		func(purchase, current float64) bool {
			m := ComputeMetrics(Normalize(RawRecord{FieldPurchasePrice: purchase, FieldCurrentPrice: current}))
			return m.ROI != nil && finite(*m.ROI)
		},
		gen.Float64Range(0.01, 1e6),
		gen.Float64Range(0, 1e6),
	))

	properties.TestingRun(t)
}

func TestROIOverflow(t *testing.T) {
	tests := []struct {
		purchase, current float64
		wantROI           bool
	}{
		{1e-300, 1e300, false},
		{math.SmallestNonzeroFloat64, 1, false},
		{1e-6, 1e6, true},
	}
	for _, tt := range tests {
		m := ComputeMetrics(Normalize(RawRecord{FieldPurchasePrice: tt.purchase, FieldCurrentPrice: tt.current}))
		if (m.ROI != nil) != tt.wantROI {
			t.Errorf("ComputeMetrics(%g, %g).ROI = %v, want set %v", tt.purchase, tt.current, m.ROI, tt.wantROI)
		}
		if m.ROI != nil && !finite(*m.ROI) {
			t.Errorf("ComputeMetrics(%g, %g).ROI = %v, want a finite value", tt.purchase, tt.current, *m.ROI)
		}
		if _, err := json.Marshal(m); err != nil {
			t.Errorf("ComputeMetrics(%g, %g) cannot be encoded: %v", tt.purchase, tt.current, err)
		}
	}
}
