package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending = "pending"
	OrderStatusServed  = "served"
)

type Order struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	SessionID uint         `gorm:"not null;index" json:"session_id"`
	Session   TableSession `gorm:"foreignKey:SessionID" json:"-"`
	Status    string       `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	ServedAt  *time.Time `json:"served_at"`
	// FinalTotal diisi tepat sekali saat mark served, bersamaan dengan ServedAt
	FinalTotal *decimal.Decimal `gorm:"type:decimal(10,2)" json:"final_total"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
}

func (o *Order) IsServed() bool {
	return o.Status == OrderStatusServed
}

// TotalAmount memakai nilai beku jika order sudah served,
// kalau masih pending dihitung dari item yang dimuat.
func (o *Order) TotalAmount() decimal.Decimal {
	if o.FinalTotal != nil {
		return *o.FinalTotal
	}
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal())
	}
	return total
}
