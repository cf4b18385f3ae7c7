package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	CategoryID    uint             `gorm:"not null" json:"category_id"`
	Category      MenuCategory     `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	SubCategoryID *uint            `json:"sub_category_id"`
	SubCategory   *MenuSubCategory `gorm:"foreignKey:SubCategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Name          string           `gorm:"type:varchar(255);not null" json:"name"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	Description   string           `gorm:"type:text" json:"description"`
	IsAvailable   bool             `gorm:"not null;default:true" json:"is_available"`
	DisplayOrder  int              `gorm:"index" json:"display_order"`
	CreatedAt     time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null" json:"updated_at"`
}
