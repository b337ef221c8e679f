package model

import "time"

// StoreStats are the headline numbers over the whole committed store.
type StoreStats struct {
	Contractors    int64      `json:"contractors"`
	Products       int64      `json:"products"`
	Orders         int64      `json:"orders"`
	TotalQuantity  float64    `json:"total_quantity"`
	TotalAmount    float64    `json:"total_amount"`
	FirstOrderDate *time.Time `json:"first_order_date"`
	LastOrderDate  *time.Time `json:"last_order_date"`
}

type ContractorTotal struct {
	ContractorID   int64
	HeadContractor string
	Buyer          string
	Region         string
	OrderCount     int64
	TotalQuantity  float64
	TotalAmount    float64
}

type DailyTotal struct {
	OrderDate     time.Time
	OrderCount    int64
	TotalQuantity float64
	TotalAmount   float64
}

// OrdersReport is the read-only aggregate view rendered by the XLSX and PDF
// exporters. It only ever reflects committed rows.
type OrdersReport struct {
	PeriodStart   time.Time
	PeriodEnd     time.Time
	OrderCount    int64
	TotalQuantity float64
	TotalAmount   float64
	Contractors   []ContractorTotal
	Days          []DailyTotal
}
