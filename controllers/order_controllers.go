package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// OrderDetail menyertakan total_amount yang dihitung:
// nilai beku kalau sudah served, penjumlahan item kalau masih pending
type OrderDetail struct {
	models.Order
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// AddOrderItem -> menambahkan item ke order pending.
// Harga katalog di-snapshot saat ini juga; perubahan harga
// menu belakangan tidak menyentuh tagihan yang sudah berjalan.
func (oc *OrderController) AddOrderItem(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var req struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity"`
		Note       string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.OrderItem

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
			return err
		}
		if order.IsServed() {
			return ErrOrderServed
		}

		if req.Quantity <= 0 {
			return ErrInvalidQuantity
		}

		var menuItem models.MenuItem
		if err := tx.First(&menuItem, req.MenuItemID).Error; err != nil {
			return err
		}
		if !menuItem.IsAvailable {
			return ErrMenuItemUnavailable
		}

		item = models.OrderItem{
			OrderID:     order.ID,
			MenuItemID:  menuItem.ID,
			Quantity:    req.Quantity,
			PriceAtTime: menuItem.Price,
			Note:        req.Note,
		}
		return tx.Create(&item).Error
	})

	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Item added to order", item)
}

// MarkOrderServed -> pending menjadi served, sekali dan final.
// FinalTotal dibekukan dari penjumlahan line_total item saat ini.
func (oc *OrderController) MarkOrderServed(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Preload("Items").First(&order, orderID).Error; err != nil {
			return err
		}
		if order.IsServed() {
			return ErrOrderServed
		}

		now := time.Now().UTC()
		finalTotal := decimal.Zero
		for i := range order.Items {
			finalTotal = finalTotal.Add(order.Items[i].LineTotal())
		}

		order.Status = models.OrderStatusServed
		order.ServedAt = &now
		order.FinalTotal = &finalTotal

		return tx.Save(&order).Error
	})

	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %d served, total %s", order.ID, order.FinalTotal.String())
	utils.RespondJSON(c, http.StatusOK, "Order served", OrderDetail{
		Order:       order,
		TotalAmount: order.TotalAmount(),
	})
}

// GetOrderByID -> detail 1 order beserta item
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("Items").Preload("Items.MenuItem").First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", OrderDetail{
		Order:       order,
		TotalAmount: order.TotalAmount(),
	})
}

// DeleteOrder -> hapus order beserta itemnya
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})

	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": orderID})
}

