package model

// Contractor is one selling chain: head contractor, end buyer, the manager
// responsible for the deal and the sales region. The four text fields form
// the natural key; ID is the surrogate assigned on first occurrence.
// Rows are created lazily during ingestion and never updated or deleted.
type Contractor struct {
	ID             int64
	HeadContractor string
	Buyer          string
	Manager        string
	Region         string
}

// Product is one sellable item. (Name, Characteristics, Category) is the
// natural key; same immutability rules as Contractor.
type Product struct {
	ID              int64
	Name            string
	Characteristics string
	Category        string
}
