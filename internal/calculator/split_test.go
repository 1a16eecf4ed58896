package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amounts(splits []models.ExpenseSplit) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(splits))
	for _, s := range splits {
		m[s.UserID] = s.Amount
	}
	return m
}

func sumOf(splits []models.ExpenseSplit) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.Amount)
	}
	return sum
}

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        decimal.Decimal
		members      []string
		payer        string
		wantErr      bool
		validateFunc func(t *testing.T, splits []models.ExpenseSplit)
	}{
		{
			name:    "four members exact division",
			total:   d("6000"),
			members: []string{"u1", "u2", "u3", "u4"},
			payer:   "u1",
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				for id, amt := range amounts(splits) {
					if !amt.Equal(d("1500")) {
						t.Errorf("%s amount = %s, want 1500", id, amt)
					}
				}
			},
		},
		{
			name:    "remainder goes to payer",
			total:   d("1000"),
			members: []string{"u1", "u2", "u3"},
			payer:   "u2",
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				// 1000 / 3 = 333.33 each, 0.01 left over for the payer
				got := amounts(splits)
				if !got["u2"].Equal(d("333.34")) {
					t.Errorf("payer amount = %s, want 333.34", got["u2"])
				}
				for _, id := range []string{"u1", "u3"} {
					if !got[id].Equal(d("333.33")) {
						t.Errorf("%s amount = %s, want 333.33", id, got[id])
					}
				}
			},
		},
		{
			name:    "share below one minor unit",
			total:   d("0.02"),
			members: []string{"u1", "u2", "u3"},
			payer:   "u3",
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				// 0.02 / 3 rounds down to 0, the payer takes all of it
				got := amounts(splits)
				if !got["u3"].Equal(d("0.02")) {
					t.Errorf("payer amount = %s, want 0.02", got["u3"])
				}
			},
		},
		{
			name:    "ten members of a quarter",
			total:   d("0.25"),
			members: []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8", "u9", "u10"},
			payer:   "u1",
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				got := amounts(splits)
				if !got["u1"].Equal(d("0.07")) {
					t.Errorf("payer amount = %s, want 0.07", got["u1"])
				}
				if !got["u10"].Equal(d("0.02")) {
					t.Errorf("u10 amount = %s, want 0.02", got["u10"])
				}
			},
		},
		{
			name:    "payer not splitting gives remainder to first member",
			total:   d("100"),
			members: []string{"u2", "u3", "u4"},
			payer:   "u1",
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				got := amounts(splits)
				if !got["u2"].Equal(d("33.34")) {
					t.Errorf("first member amount = %s, want 33.34", got["u2"])
				}
			},
		},
		{
			name:    "single member",
			total:   d("250.50"),
			members: []string{"u1"},
			payer:   "u1",
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				if len(splits) != 1 || !splits[0].Amount.Equal(d("250.50")) {
					t.Errorf("splits = %+v, want one split of 250.50", splits)
				}
			},
		},
		{
			name:    "no members should error",
			total:   d("10"),
			members: []string{},
			payer:   "u1",
			wantErr: true,
		},
		{
			name:    "zero total should error",
			total:   d("0"),
			members: []string{"u1"},
			payer:   "u1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := EqualSplit(tt.total, tt.members, tt.payer)
			if (err != nil) != tt.wantErr {
				t.Errorf("EqualSplit() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if !sumOf(splits).Equal(tt.total) {
				t.Errorf("split sum = %s, want %s", sumOf(splits), tt.total)
			}
			for _, s := range splits {
				if s.Amount.IsNegative() {
					t.Errorf("%s amount = %s, want >= 0", s.UserID, s.Amount)
				}
				if s.Settled != (s.UserID == tt.payer) {
					t.Errorf("%s settled = %v, want %v", s.UserID, s.Settled, s.UserID == tt.payer)
				}
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}

func TestPercentageSplit(t *testing.T) {
	tests := []struct {
		name    string
		total   decimal.Decimal
		shares  []Share
		payer   string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "even thirds reconcile on payer",
			total: d("100"),
			shares: []Share{
				{UserID: "u1", Value: d("33.33")},
				{UserID: "u2", Value: d("33.33")},
				{UserID: "u3", Value: d("33.34")},
			},
			payer: "u1",
			want:  map[string]string{"u1": "33.33", "u2": "33.33", "u3": "33.34"},
		},
		{
			name:  "uneven percentages",
			total: d("1800"),
			shares: []Share{
				{UserID: "u1", Value: d("50")},
				{UserID: "u2", Value: d("25")},
				{UserID: "u5", Value: d("25")},
			},
			payer: "u2",
			want:  map[string]string{"u1": "900", "u2": "450", "u5": "450"},
		},
		{
			name:  "rounding remainder to payer",
			total: d("10"),
			shares: []Share{
				{UserID: "u1", Value: d("33.333")},
				{UserID: "u2", Value: d("33.333")},
				{UserID: "u3", Value: d("33.334")},
			},
			payer: "u2",
			want:  map[string]string{"u1": "3.33", "u2": "3.34", "u3": "3.33"},
		},
		{
			name:  "payer at zero percent takes the remainder",
			total: d("10.05"),
			shares: []Share{
				{UserID: "u1", Value: d("0")},
				{UserID: "u2", Value: d("50")},
				{UserID: "u3", Value: d("50")},
			},
			payer: "u1",
			want:  map[string]string{"u1": "0.01", "u2": "5.02", "u3": "5.02"},
		},
		{
			name: "percentages not summing to 100 should error",
			total: d("100"),
			shares: []Share{
				{UserID: "u1", Value: d("50")},
				{UserID: "u2", Value: d("40")},
			},
			payer:   "u1",
			wantErr: true,
		},
		{
			name:    "negative percentage should error",
			total:   d("100"),
			shares:  []Share{{UserID: "u1", Value: d("150")}, {UserID: "u2", Value: d("-50")}},
			payer:   "u1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := PercentageSplit(tt.total, tt.shares, tt.payer)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PercentageSplit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !sumOf(splits).Equal(tt.total) {
				t.Errorf("split sum = %s, want %s", sumOf(splits), tt.total)
			}
			for _, s := range splits {
				if s.Amount.IsNegative() {
					t.Errorf("%s amount = %s, want >= 0", s.UserID, s.Amount)
				}
			}
			got := amounts(splits)
			for id, want := range tt.want {
				if !got[id].Equal(d(want)) {
					t.Errorf("%s amount = %s, want %s", id, got[id], want)
				}
			}
		})
	}
}

func TestSplitDispatch(t *testing.T) {
	shares := []Share{{UserID: "u1", Value: d("700")}, {UserID: "u2", Value: d("300")}}

	exact, err := Split(models.SplitExact, d("1000"), shares, "u1")
	if err != nil {
		t.Fatalf("Split(exact) failed: %v", err)
	}
	if got := amounts(exact); !got["u1"].Equal(d("700")) || !got["u2"].Equal(d("300")) {
		t.Errorf("exact amounts = %v", got)
	}

	equal, err := Split(models.SplitEqual, d("1000"), shares, "u1")
	if err != nil {
		t.Fatalf("Split(equal) failed: %v", err)
	}
	if got := amounts(equal); !got["u1"].Equal(d("500")) || !got["u2"].Equal(d("500")) {
		t.Errorf("equal amounts = %v", got)
	}

	if _, err := Split("shares", d("1000"), shares, "u1"); err == nil {
		t.Error("expected error for unknown split type")
	}
	if _, err := ExactSplit([]Share{{UserID: "u1", Value: d("-1")}}, "u1"); err == nil {
		t.Error("expected error for negative exact amount")
	}
}

func TestReconciles(t *testing.T) {
	if !Reconciles(d("999.995"), d("1000")) {
		t.Error("difference below one minor unit should reconcile")
	}
	if Reconciles(d("999.99"), d("1000")) {
		t.Error("difference of one minor unit should not reconcile")
	}
	if !HasMinorUnitPrecision(d("12.30")) || HasMinorUnitPrecision(d("12.345")) {
		t.Error("HasMinorUnitPrecision mismatch")
	}
}
