package models

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/pos_backend/utils"
)

// These cases exercise the reference matrix guards that reject before any
// lookup happens, so no database is needed.

func intPtr(v int) *int { return &v }

func TestNewPayment_ValidateReferences_Rejections(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		input NewPayment
	}{
		{
			name:  "sale payment without sale",
			input: NewPayment{PaymentType: PaymentTypeSale},
		},
		{
			name:  "sale payment with purchase reference",
			input: NewPayment{PaymentType: PaymentTypeSale, SaleId: intPtr(1), PurchaseId: intPtr(2)},
		},
		{
			name:  "purchase payment without purchase",
			input: NewPayment{PaymentType: PaymentTypePurchase},
		},
		{
			name:  "purchase payment with sale reference",
			input: NewPayment{PaymentType: PaymentTypePurchase, PurchaseId: intPtr(1), SaleId: intPtr(2)},
		},
		{
			name:  "expense payment with sale reference",
			input: NewPayment{PaymentType: PaymentTypeExpense, SaleId: intPtr(1)},
		},
		{
			name:  "adjust payment with purchase reference",
			input: NewPayment{PaymentType: PaymentTypeAdjust, PurchaseId: intPtr(1)},
		},
		{
			name:  "unknown payment type",
			input: NewPayment{PaymentType: PaymentType("REFUND")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.input.validateReferences(ctx, "company-1")
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, utils.ErrorInvalidArgument) {
				t.Fatalf("expected invalid argument error, got %v", err)
			}
		})
	}
}

func TestNewPayment_ValidateReferences_StandaloneTypes(t *testing.T) {
	ctx := context.Background()

	for _, pt := range []PaymentType{PaymentTypeExpense, PaymentTypeAdjust} {
		input := NewPayment{PaymentType: pt}
		if err := input.validateReferences(ctx, "company-1"); err != nil {
			t.Fatalf("%s without references should pass, got %v", pt, err)
		}
	}
}
