package models

import (
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/utils"
)

type Identifier interface {
	GetId() int
}

// interface for dataloader result
type Data interface {
	Identifier
	GetDefault(int) Data
}

func (s Subsidiary) GetId() int {
	return s.ID
}

func (s Subsidiary) GetDefault(id int) Data {
	return Subsidiary{
		ID:        id,
		IsActive:  utils.NewFalse(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (c Charge) GetId() int {
	return c.ID
}

func (c Charge) GetDefault(id int) Data {
	return Charge{
		ID:        id,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (e Employee) GetId() int {
	return e.ID
}

func (e Employee) GetDefault(id int) Data {
	return Employee{
		ID:        id,
		IsActive:  utils.NewFalse(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (c Category) GetId() int {
	return c.ID
}

func (c Category) GetDefault(id int) Data {
	return Category{
		ID:        id,
		IsActive:  utils.NewFalse(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (s SubCategory) GetId() int {
	return s.ID
}

func (s SubCategory) GetDefault(id int) Data {
	return SubCategory{
		ID:        id,
		IsActive:  utils.NewFalse(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (u UnitMeasure) GetId() int {
	return u.ID
}

func (u UnitMeasure) GetDefault(id int) Data {
	return UnitMeasure{
		ID:        id,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (p Product) GetId() int {
	return p.ID
}

func (p Product) GetDefault(id int) Data {
	return Product{
		ID:        id,
		IsActive:  utils.NewFalse(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (c ClientSupplier) GetId() int {
	return c.ID
}

func (c ClientSupplier) GetDefault(id int) Data {
	return ClientSupplier{
		ID:         id,
		IsClient:   utils.NewFalse(),
		IsSupplier: utils.NewFalse(),
		IsActive:   utils.NewFalse(),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func (s Sale) GetId() int {
	return s.ID
}

func (s Sale) GetDefault(id int) Data {
	return Sale{
		ID:        id,
		SaleDate:  time.Now(),
		IsActive:  utils.NewFalse(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (p Purchase) GetId() int {
	return p.ID
}

func (p Purchase) GetDefault(id int) Data {
	return Purchase{
		ID:           id,
		PurchaseDate: time.Now(),
		IsActive:     utils.NewFalse(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func (t Till) GetId() int {
	return t.ID
}

func (t Till) GetDefault(id int) Data {
	return Till{
		ID:        id,
		Status:    TillStatusClosed,
		DateOpen:  time.Now(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// loader loading more than one model by one id
type RelatedData interface {
	GetReferenceId() int
}

func (d SaleDetail) GetReferenceId() int {
	return d.SaleId
}

func (d PurchaseDetail) GetReferenceId() int {
	return d.PurchaseId
}
