package models

import (
	"errors"
	"io"
	"strconv"
)

// TillStatus is stored as the legacy single-letter code ('A' open, 'C' closed)
// and exposed to the API as OPEN/CLOSED.
type TillStatus string

const (
	TillStatusOpen   TillStatus = "A"
	TillStatusClosed TillStatus = "C"
)

func (t TillStatus) MarshalGQL(w io.Writer) {
	var name string
	switch t {
	case TillStatusOpen:
		name = "OPEN"
	case TillStatusClosed:
		name = "CLOSED"
	default:
		name = string(t)
	}
	w.Write([]byte(strconv.Quote(name)))
}

func (t *TillStatus) UnmarshalGQL(i interface{}) error {
	str, ok := i.(string)
	if !ok {
		return errors.New("till status must be string")
	}
	switch str {
	case "OPEN":
		*t = TillStatusOpen
	case "CLOSED":
		*t = TillStatusClosed
	default:
		return errors.New("invalid till status")
	}
	return nil
}

// PaymentMethod is stored as a single-letter code.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "E"
	PaymentMethodCard PaymentMethod = "T"
	PaymentMethodYape PaymentMethod = "Y"
	PaymentMethodPlin PaymentMethod = "P"
)

// AllPaymentMethods in a stable order for reconciliation output.
var AllPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCard,
	PaymentMethodYape,
	PaymentMethodPlin,
}

func (m PaymentMethod) Name() string {
	switch m {
	case PaymentMethodCash:
		return "CASH"
	case PaymentMethodCard:
		return "CARD"
	case PaymentMethodYape:
		return "YAPE"
	case PaymentMethodPlin:
		return "PLIN"
	default:
		return string(m)
	}
}

func (m PaymentMethod) MarshalGQL(w io.Writer) {
	w.Write([]byte(strconv.Quote(m.Name())))
}

func (m *PaymentMethod) UnmarshalGQL(i interface{}) error {
	str, ok := i.(string)
	if !ok {
		return errors.New("payment method must be string")
	}
	switch str {
	case "CASH":
		*m = PaymentMethodCash
	case "CARD":
		*m = PaymentMethodCard
	case "YAPE":
		*m = PaymentMethodYape
	case "PLIN":
		*m = PaymentMethodPlin
	default:
		return errors.New("invalid payment method")
	}
	return nil
}

type PaymentType string

const (
	PaymentTypeSale     PaymentType = "SALE"
	PaymentTypePurchase PaymentType = "PURCHASE"
	PaymentTypeExpense  PaymentType = "EXPENSE"
	PaymentTypeAdjust   PaymentType = "ADJUST"
)

func (t PaymentType) MarshalGQL(w io.Writer) {
	w.Write([]byte(strconv.Quote(string(t))))
}

func (t *PaymentType) UnmarshalGQL(i interface{}) error {
	str, ok := i.(string)
	if !ok {
		return errors.New("payment type must be string")
	}
	switch str {
	case "SALE":
		*t = PaymentTypeSale
	case "PURCHASE":
		*t = PaymentTypePurchase
	case "EXPENSE":
		*t = PaymentTypeExpense
	case "ADJUST":
		*t = PaymentTypeAdjust
	default:
		return errors.New("invalid payment type")
	}
	return nil
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

func (s PaymentStatus) MarshalGQL(w io.Writer) {
	w.Write([]byte(strconv.Quote(string(s))))
}

func (s *PaymentStatus) UnmarshalGQL(i interface{}) error {
	str, ok := i.(string)
	if !ok {
		return errors.New("payment status must be string")
	}
	switch str {
	case "PENDING":
		*s = PaymentStatusPending
	case "PAID":
		*s = PaymentStatusPaid
	case "CANCELLED":
		*s = PaymentStatusCancelled
	default:
		return errors.New("invalid payment status")
	}
	return nil
}

// PaymentCondition of a sale or purchase document.
type PaymentCondition string

const (
	PaymentConditionCash   PaymentCondition = "CASH"
	PaymentConditionCredit PaymentCondition = "CREDIT"
)

func (c PaymentCondition) MarshalGQL(w io.Writer) {
	w.Write([]byte(strconv.Quote(string(c))))
}

func (c *PaymentCondition) UnmarshalGQL(i interface{}) error {
	str, ok := i.(string)
	if !ok {
		return errors.New("payment condition must be string")
	}
	switch str {
	case "CASH":
		*c = PaymentConditionCash
	case "CREDIT":
		*c = PaymentConditionCredit
	default:
		return errors.New("invalid payment condition")
	}
	return nil
}

// DocumentType of a client/supplier identity document.
type DocumentType string

const (
	DocumentTypeDni     DocumentType = "DNI"
	DocumentTypeRuc     DocumentType = "RUC"
	DocumentTypeCarnet  DocumentType = "CE"
	DocumentTypeUnknown DocumentType = "NA"
)

func (d DocumentType) MarshalGQL(w io.Writer) {
	w.Write([]byte(strconv.Quote(string(d))))
}

func (d *DocumentType) UnmarshalGQL(i interface{}) error {
	str, ok := i.(string)
	if !ok {
		return errors.New("document type must be string")
	}
	documentTypes := map[string]DocumentType{
		"DNI": DocumentTypeDni,
		"RUC": DocumentTypeRuc,
		"CE":  DocumentTypeCarnet,
		"NA":  DocumentTypeUnknown,
	}
	*d, ok = documentTypes[str]
	if !ok {
		return errors.New("invalid document type")
	}
	return nil
}

/* outbox */

type EventAction string

const (
	EventActionCreate EventAction = "CREATE"
	EventActionClose  EventAction = "CLOSE"
	EventActionCancel EventAction = "CANCEL"
)

type EventReferenceType string

const (
	EventReferenceTypeTill    EventReferenceType = "Till"
	EventReferenceTypePayment EventReferenceType = "Payment"
	EventReferenceTypeSale    EventReferenceType = "Sale"
)

type OutboxPublishStatus string

const (
	OutboxPublishStatusPending    OutboxPublishStatus = "PENDING"
	OutboxPublishStatusProcessing OutboxPublishStatus = "PROCESSING"
	OutboxPublishStatusFailed     OutboxPublishStatus = "FAILED"
	OutboxPublishStatusSent       OutboxPublishStatus = "SENT"
	OutboxPublishStatusDead       OutboxPublishStatus = "DEAD"
)
