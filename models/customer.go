package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	// VisitCount dan TotalSpent hanya diubah oleh close session
	VisitCount int             `gorm:"not null;default:0" json:"visit_count"`
	TotalSpent decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_spent"`
	Sessions   []TableSession  `gorm:"foreignKey:CustomerID" json:"-"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}
