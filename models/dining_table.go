package models

import "time"

type TableType string

const (
	TableTypeIndoor   TableType = "indoor"
	TableTypeRooftop  TableType = "rooftop"
	TableTypeTakeaway TableType = "takeaway"
)

// ValidTableType memeriksa apakah tipe meja dikenal
func ValidTableType(t TableType) bool {
	switch t {
	case TableTypeIndoor, TableTypeRooftop, TableTypeTakeaway:
		return true
	}
	return false
}

type DiningTable struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    int       `gorm:"uniqueIndex;not null" json:"number"`
	Type      TableType `gorm:"type:varchar(20);not null" json:"type"`
	// Relasi historis: session lama tetap tersimpan setelah ditutup
	Sessions  []TableSession `gorm:"foreignKey:TableID" json:"-"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}
