package seed

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/ledger"
)

func TestLoad(t *testing.T) {
	e := ledger.New(nil, ledger.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err := Load(e); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if n := len(e.ListGroups()); n != 4 {
		t.Errorf("groups = %d, want 4", n)
	}
	expenses, err := e.ListExpenses("")
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses) != 5 {
		t.Fatalf("expenses = %d, want 5", len(expenses))
	}
	if expenses[0].ID != "e3" {
		t.Errorf("newest expense = %s, want e3", expenses[0].ID)
	}

	tests := []struct {
		group string
		want  int64
	}{
		{"g1", 3600}, // +4500 hotel, -300 cab, -600 dinner
		{"g2", -600},
		{"g3", 0},
		{"g4", 0},
	}
	for _, tt := range tests {
		got, err := e.ComputeGroupBalance(tt.group, Users[0].ID)
		if err != nil {
			t.Fatalf("ComputeGroupBalance(%s) failed: %v", tt.group, err)
		}
		if !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("%s balance = %s, want %d", tt.group, got, tt.want)
		}
	}

	// Loading twice collides on IDs
	if err := Load(e); err == nil {
		t.Error("second Load succeeded, want duplicate ID error")
	}
}
