package models

import (
	"bytes"
	"testing"
)

func TestTillStatusCodec(t *testing.T) {
	var buf bytes.Buffer
	TillStatusOpen.MarshalGQL(&buf)
	if buf.String() != `"OPEN"` {
		t.Fatalf("expected \"OPEN\", got %s", buf.String())
	}
	buf.Reset()
	TillStatusClosed.MarshalGQL(&buf)
	if buf.String() != `"CLOSED"` {
		t.Fatalf("expected \"CLOSED\", got %s", buf.String())
	}

	var status TillStatus
	if err := status.UnmarshalGQL("OPEN"); err != nil {
		t.Fatalf("unmarshal OPEN: %v", err)
	}
	if status != TillStatusOpen {
		t.Fatalf("expected stored code 'A', got %q", status)
	}
	if err := status.UnmarshalGQL("PAUSED"); err == nil {
		t.Fatal("expected error for unknown till status")
	}
	if err := status.UnmarshalGQL(7); err == nil {
		t.Fatal("expected error for non-string till status")
	}
}

func TestPaymentMethodCodec(t *testing.T) {
	wire := map[PaymentMethod]string{
		PaymentMethodCash: "CASH",
		PaymentMethodCard: "CARD",
		PaymentMethodYape: "YAPE",
		PaymentMethodPlin: "PLIN",
	}
	for method, name := range wire {
		var buf bytes.Buffer
		method.MarshalGQL(&buf)
		if buf.String() != `"`+name+`"` {
			t.Fatalf("expected %q marshalled for %q, got %s", name, method, buf.String())
		}

		var decoded PaymentMethod
		if err := decoded.UnmarshalGQL(name); err != nil {
			t.Fatalf("unmarshal %s: %v", name, err)
		}
		if decoded != method {
			t.Fatalf("expected stored code %q for %s, got %q", method, name, decoded)
		}
	}

	var decoded PaymentMethod
	if err := decoded.UnmarshalGQL("BITCOIN"); err == nil {
		t.Fatal("expected error for unknown payment method")
	}
}

func TestAllPaymentMethodsOrder(t *testing.T) {
	want := []PaymentMethod{PaymentMethodCash, PaymentMethodCard, PaymentMethodYape, PaymentMethodPlin}
	if len(AllPaymentMethods) != len(want) {
		t.Fatalf("expected %d payment methods, got %d", len(want), len(AllPaymentMethods))
	}
	for i, method := range want {
		if AllPaymentMethods[i] != method {
			t.Fatalf("expected %q at position %d, got %q", method, i, AllPaymentMethods[i])
		}
	}
}

func TestPaymentTypeCodec(t *testing.T) {
	for _, name := range []string{"SALE", "PURCHASE", "EXPENSE", "ADJUST"} {
		var decoded PaymentType
		if err := decoded.UnmarshalGQL(name); err != nil {
			t.Fatalf("unmarshal %s: %v", name, err)
		}
		if string(decoded) != name {
			t.Fatalf("expected %s stored verbatim, got %q", name, decoded)
		}
	}

	var decoded PaymentType
	if err := decoded.UnmarshalGQL("REFUND"); err == nil {
		t.Fatal("expected error for unknown payment type")
	}
}
