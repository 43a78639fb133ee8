package models

import (
	"log"

	"bitbucket.org/mmdatafocus/pos_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Company{}, &Subsidiary{}, &Charge{}, &Employee{},
		&Category{}, &SubCategory{}, &UnitMeasure{}, &Product{},
		&ClientSupplier{},
		&Sale{}, &SaleDetail{}, &Purchase{}, &PurchaseDetail{},
		&Till{}, &Payment{},
		&EventRecord{}, &IdempotencyKey{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
