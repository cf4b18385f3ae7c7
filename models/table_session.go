package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TableSession struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// TableID menjadi NULL setelah session ditutup (meja dilepas)
	TableID    *uint        `gorm:"index" json:"table_id"`
	Table      *DiningTable `gorm:"foreignKey:TableID" json:"-"`
	CustomerID *uint        `gorm:"index" json:"customer_id"`
	Customer   *Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	StartedAt time.Time  `gorm:"not null" json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	// FinalBill diisi tepat sekali saat close, bersamaan dengan EndedAt
	FinalBill *decimal.Decimal `gorm:"type:decimal(10,2)" json:"final_bill"`

	Orders []Order `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"orders"`
}

func (s *TableSession) IsClosed() bool {
	return s.EndedAt != nil
}

// TotalBill memakai nilai beku jika session sudah ditutup,
// kalau masih aktif dihitung dari order yang dimuat.
func (s *TableSession) TotalBill() decimal.Decimal {
	if s.FinalBill != nil {
		return *s.FinalBill
	}
	total := decimal.Zero
	for i := range s.Orders {
		total = total.Add(s.Orders[i].TotalAmount())
	}
	return total
}
