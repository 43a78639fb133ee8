package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

// NOTE: These tests are intentionally DB-free. They validate the reconciliation
// math on its own; till lifecycle tests that need MySQL live behind
// INTEGRATION_TESTS.

func TestBuildReconciliationSummary_OpenTill(t *testing.T) {
	totals := map[PaymentMethod]decimal.Decimal{
		PaymentMethodCash: decimal.NewFromInt(150),
		PaymentMethodCard: decimal.RequireFromString("75.25"),
	}

	summary := BuildReconciliationSummary(7, decimal.Zero, totals, nil)

	if summary.TillId != 7 {
		t.Fatalf("expected till id 7, got %d", summary.TillId)
	}
	if len(summary.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(summary.Lines))
	}
	if summary.Lines[0].Method != PaymentMethodCash {
		t.Fatalf("expected first line to be cash, got %s", summary.Lines[0].Method)
	}
	if !summary.Lines[0].Amount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected cash line 150, got %s", summary.Lines[0].Amount)
	}
	if summary.Lines[1].Method != PaymentMethodCard {
		t.Fatalf("expected second line to be card, got %s", summary.Lines[1].Method)
	}
	if !summary.TotalCollected.Equal(decimal.RequireFromString("225.25")) {
		t.Fatalf("expected total collected 225.25, got %s", summary.TotalCollected)
	}
	if !summary.ExpectedAmount.Equal(decimal.RequireFromString("225.25")) {
		t.Fatalf("expected expected amount 225.25, got %s", summary.ExpectedAmount)
	}
	if summary.CountedAmount != nil || summary.Difference != nil {
		t.Fatalf("counted and difference must stay nil while the till is open")
	}
}

func TestBuildReconciliationSummary_OpeningAmountStaysOutOfExpected(t *testing.T) {
	totals := map[PaymentMethod]decimal.Decimal{
		PaymentMethodYape: decimal.NewFromInt(40),
	}

	summary := BuildReconciliationSummary(1, decimal.NewFromInt(100), totals, nil)

	if !summary.OpeningAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected opening amount 100, got %s", summary.OpeningAmount)
	}
	if !summary.TotalCollected.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected total collected 40, got %s", summary.TotalCollected)
	}
	// Expected is the sum of PAID payments only, never opening + payments.
	if !summary.ExpectedAmount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected expected amount 40, got %s", summary.ExpectedAmount)
	}
}

func TestBuildReconciliationSummary_CloseBalanced(t *testing.T) {
	totals := map[PaymentMethod]decimal.Decimal{
		PaymentMethodCash: decimal.NewFromInt(30),
		PaymentMethodCard: decimal.NewFromInt(20),
	}
	counted := decimal.NewFromInt(50)

	summary := BuildReconciliationSummary(1, decimal.NewFromInt(50), totals, &counted)

	if !summary.ExpectedAmount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected expected amount 50, got %s", summary.ExpectedAmount)
	}
	if summary.CountedAmount == nil || !summary.CountedAmount.Equal(counted) {
		t.Fatalf("expected counted amount %s, got %v", counted, summary.CountedAmount)
	}
	if summary.Difference == nil || !summary.Difference.Equal(decimal.Zero) {
		t.Fatalf("expected zero difference, got %v", summary.Difference)
	}
}

func TestBuildReconciliationSummary_CloseShortage(t *testing.T) {
	totals := map[PaymentMethod]decimal.Decimal{
		PaymentMethodCash: decimal.NewFromInt(150),
		PaymentMethodCard: decimal.RequireFromString("75.25"),
	}
	counted := decimal.NewFromInt(200)

	summary := BuildReconciliationSummary(3, decimal.Zero, totals, &counted)

	if !summary.ExpectedAmount.Equal(decimal.RequireFromString("225.25")) {
		t.Fatalf("expected expected amount 225.25, got %s", summary.ExpectedAmount)
	}
	if summary.Difference == nil {
		t.Fatal("expected difference to be set on a closed till")
	}
	if !summary.Difference.Equal(decimal.RequireFromString("-25.25")) {
		t.Fatalf("expected difference -25.25, got %s", summary.Difference)
	}
}

func TestBuildReconciliationSummary_NoPayments(t *testing.T) {
	summary := BuildReconciliationSummary(2, decimal.NewFromInt(50), map[PaymentMethod]decimal.Decimal{}, nil)

	if len(summary.Lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(summary.Lines))
	}
	if !summary.TotalCollected.Equal(decimal.Zero) {
		t.Fatalf("expected zero collected, got %s", summary.TotalCollected)
	}
	if !summary.ExpectedAmount.Equal(decimal.Zero) {
		t.Fatalf("expected zero expected amount, got %s", summary.ExpectedAmount)
	}
}

func TestBuildReconciliationSummary_LineOrderIsStable(t *testing.T) {
	totals := map[PaymentMethod]decimal.Decimal{
		PaymentMethodPlin: decimal.NewFromInt(1),
		PaymentMethodCash: decimal.NewFromInt(2),
		PaymentMethodYape: decimal.NewFromInt(3),
		PaymentMethodCard: decimal.NewFromInt(4),
	}

	for i := 0; i < 20; i++ {
		summary := BuildReconciliationSummary(1, decimal.Zero, totals, nil)
		want := []PaymentMethod{PaymentMethodCash, PaymentMethodCard, PaymentMethodYape, PaymentMethodPlin}
		for j, method := range want {
			if summary.Lines[j].Method != method {
				t.Fatalf("run %d: expected line %d to be %s, got %s", i, j, method, summary.Lines[j].Method)
			}
		}
	}
}
