package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats mengambil statistik untuk dashboard admin.
// Hunian meja diturunkan dari session aktif, bukan kolom status.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	today := time.Now().UTC().Format("2006-01-02")

	var stats struct {
		TableStats struct {
			Total    int64 `json:"total"`
			Occupied int64 `json:"occupied"`
			Free     int64 `json:"free"`
		} `json:"table_stats"`
		SessionStats struct {
			Open        int64 `json:"open"`
			Closed      int64 `json:"closed"`
			ClosedToday int64 `json:"closed_today"`
		} `json:"session_stats"`
		OrderStats struct {
			Pending int64 `json:"pending"`
			Served  int64 `json:"served"`
		} `json:"order_stats"`
		Revenue struct {
			Total decimal.Decimal `json:"total"`
			Today decimal.Decimal `json:"today"`
		} `json:"revenue"`
	}

	ac.DB.Model(&models.DiningTable{}).Count(&stats.TableStats.Total)
	ac.DB.Model(&models.TableSession{}).
		Where("table_id IS NOT NULL AND ended_at IS NULL").
		Count(&stats.TableStats.Occupied)
	stats.TableStats.Free = stats.TableStats.Total - stats.TableStats.Occupied

	ac.DB.Model(&models.TableSession{}).Where("ended_at IS NULL").Count(&stats.SessionStats.Open)
	ac.DB.Model(&models.TableSession{}).Where("ended_at IS NOT NULL").Count(&stats.SessionStats.Closed)
	ac.DB.Model(&models.TableSession{}).
		Where("ended_at IS NOT NULL AND DATE(ended_at) = ?", today).
		Count(&stats.SessionStats.ClosedToday)

	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.OrderStats.Pending)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusServed).Count(&stats.OrderStats.Served)

	// Pendapatan dihitung dari tagihan beku session yang sudah ditutup
	ac.DB.Model(&models.TableSession{}).
		Where("ended_at IS NOT NULL").
		Select("COALESCE(SUM(final_bill), 0)").
		Row().Scan(&stats.Revenue.Total)

	ac.DB.Model(&models.TableSession{}).
		Where("ended_at IS NOT NULL AND DATE(ended_at) = ?", today).
		Select("COALESCE(SUM(final_bill), 0)").
		Row().Scan(&stats.Revenue.Today)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}
