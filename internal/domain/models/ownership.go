package models

import "time"

// Vendor продавец, от имени которого создаются продукты
type Vendor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnershipRecord связывает продукт каталога с продавцом, создавшим его.
// Для одного product_id существует не более одной записи.
type OwnershipRecord struct {
	ProductID string    `json:"product_id"`
	VendorID  string    `json:"vendor_id"`
	CreatedAt time.Time `json:"created_at"`
}
