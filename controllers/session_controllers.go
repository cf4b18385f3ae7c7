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
	"gorm.io/gorm/clause"
)

type SessionController struct {
	DB *gorm.DB
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{DB: db}
}

// lockForUpdate menambahkan SELECT ... FOR UPDATE supaya dua request
// bersamaan pada baris yang sama antre, bukan sama-sama lolos pengecekan.
// SQLite tidak mengenal FOR UPDATE dan memang single-writer.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// SessionDetail menyertakan total_bill yang dihitung:
// nilai beku kalau sudah ditutup, penjumlahan order kalau masih aktif
type SessionDetail struct {
	models.TableSession
	TotalBill decimal.Decimal `json:"total_bill"`
}

// ClosedSessionRead adalah baris riwayat pada listing paginasi
type ClosedSessionRead struct {
	ID           uint             `json:"id"`
	CustomerName *string          `json:"customer_name"`
	FinalBill    *decimal.Decimal `json:"final_bill"`
	StartedAt    time.Time        `json:"started_at"`
	EndedAt      *time.Time       `json:"ended_at"`
}

// OpenSession -> membuka session pada meja yang belum dihuni
func (sc *SessionController) OpenSession(c *gin.Context) {
	var req struct {
		TableNumber int   `json:"table_number" binding:"required"`
		CustomerID  *uint `json:"customer_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var session models.TableSession

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		var table models.DiningTable
		if err := lockForUpdate(tx).Where("number = ?", req.TableNumber).First(&table).Error; err != nil {
			return err
		}

		// Invarian hunian: maksimal satu session aktif per meja
		var activeCount int64
		if err := tx.Model(&models.TableSession{}).
			Where("table_id = ? AND ended_at IS NULL", table.ID).
			Count(&activeCount).Error; err != nil {
			return err
		}
		if activeCount > 0 {
			return ErrTableOccupied
		}

		if req.CustomerID != nil {
			var customer models.Customer
			if err := tx.First(&customer, *req.CustomerID).Error; err != nil {
				return err
			}
		}

		session = models.TableSession{
			TableID:    &table.ID,
			CustomerID: req.CustomerID,
			StartedAt:  time.Now().UTC(),
		}
		return tx.Create(&session).Error
	})

	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Session %d opened on table %d", session.ID, req.TableNumber)
	utils.RespondJSON(c, http.StatusCreated, "Session opened", session)
}

// CreateOrder -> membuat order pending kosong di bawah session terbuka
func (sc *SessionController) CreateOrder(c *gin.Context) {
	sessionID, _ := strconv.Atoi(c.Param("session_id"))

	var order models.Order

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		var session models.TableSession
		if err := lockForUpdate(tx).First(&session, sessionID).Error; err != nil {
			return err
		}
		if session.IsClosed() {
			return ErrSessionClosed
		}

		order = models.Order{
			SessionID: session.ID,
			Status:    models.OrderStatusPending,
			CreatedAt: time.Now().UTC(),
		}
		return tx.Create(&order).Error
	})

	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// CloseSession -> menutup session: membekukan tagihan, melepas meja,
// dan memperbarui statistik customer dalam satu transaksi
func (sc *SessionController) CloseSession(c *gin.Context) {
	sessionID, _ := strconv.Atoi(c.Param("session_id"))

	var session models.TableSession

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Preload("Orders.Items").First(&session, sessionID).Error; err != nil {
			return err
		}
		if session.IsClosed() {
			return ErrSessionClosed
		}

		// Session belum boleh ditutup selama masih ada order belum served
		for i := range session.Orders {
			if !session.Orders[i].IsServed() {
				return ErrOrdersNotServed
			}
		}

		now := time.Now().UTC()
		finalBill := decimal.Zero
		for i := range session.Orders {
			finalBill = finalBill.Add(session.Orders[i].TotalAmount())
		}

		session.EndedAt = &now
		session.FinalBill = &finalBill
		session.TableID = nil // lepaskan meja untuk session berikutnya

		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		if session.CustomerID != nil {
			var customer models.Customer
			if err := lockForUpdate(tx).First(&customer, *session.CustomerID).Error; err != nil {
				return err
			}
			customer.VisitCount++
			customer.TotalSpent = customer.TotalSpent.Add(finalBill)
			if err := tx.Save(&customer).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Session %d closed, final bill %s", session.ID, session.FinalBill.String())
	utils.RespondJSON(c, http.StatusOK, "Session closed", SessionDetail{
		TableSession: session,
		TotalBill:    session.TotalBill(),
	})
}

// GetSessionByID -> detail session beserta order dan item di dalamnya
func (sc *SessionController) GetSessionByID(c *gin.Context) {
	sessionID, _ := strconv.Atoi(c.Param("session_id"))

	var session models.TableSession
	if err := sc.DB.
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("orders.created_at asc")
		}).
		Preload("Orders.Items").
		Preload("Customer").
		First(&session, sessionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session detail", SessionDetail{
		TableSession: session,
		TotalBill:    session.TotalBill(),
	})
}

// UpdateSession -> menautkan/mengganti customer selama session terbuka
func (sc *SessionController) UpdateSession(c *gin.Context) {
	sessionID, _ := strconv.Atoi(c.Param("session_id"))

	var req struct {
		CustomerID *uint `json:"customer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var session models.TableSession

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&session, sessionID).Error; err != nil {
			return err
		}
		if session.IsClosed() {
			return ErrSessionClosed
		}

		var customer models.Customer
		if err := tx.First(&customer, *req.CustomerID).Error; err != nil {
			return err
		}

		session.CustomerID = req.CustomerID
		return tx.Save(&session).Error
	})

	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session updated", session)
}

// GetClosedSessions -> riwayat session tertutup, terbaru dulu, dengan paginasi
func (sc *SessionController) GetClosedSessions(c *gin.Context) {
	params := utils.ParsePageParams(c)

	var total int64
	if err := sc.DB.Model(&models.TableSession{}).
		Where("ended_at IS NOT NULL").
		Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var sessions []models.TableSession
	if err := sc.DB.Preload("Customer").
		Where("ended_at IS NOT NULL").
		Order("ended_at desc").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&sessions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rows := make([]ClosedSessionRead, 0, len(sessions))
	for i := range sessions {
		row := ClosedSessionRead{
			ID:        sessions[i].ID,
			FinalBill: sessions[i].FinalBill,
			StartedAt: sessions[i].StartedAt,
			EndedAt:   sessions[i].EndedAt,
		}
		if sessions[i].Customer != nil {
			row.CustomerName = &sessions[i].Customer.Name
		}
		rows = append(rows, row)
	}

	utils.RespondJSON(c, http.StatusOK, "Closed sessions", gin.H{
		"sessions": rows,
		"meta":     params.Meta(total),
	})
}

// DeleteSession -> hard delete, ikut menghapus order dan item di bawahnya
func (sc *SessionController) DeleteSession(c *gin.Context) {
	sessionID, _ := strconv.Atoi(c.Param("session_id"))

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		var session models.TableSession
		if err := tx.First(&session, sessionID).Error; err != nil {
			return err
		}

		if err := tx.Where("order_id IN (?)",
			tx.Model(&models.Order{}).Select("id").Where("session_id = ?", session.ID),
		).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", session.ID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&session).Error
	})

	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session deleted", gin.H{"session_id": sessionID})
}

