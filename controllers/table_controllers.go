package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// TableRead adalah bentuk respons meja beserta status hunian
// yang diturunkan dari session aktif, bukan disimpan di tabel
type TableRead struct {
	ID              uint             `json:"id"`
	Number          int              `json:"number"`
	Type            models.TableType `json:"type"`
	IsOccupied      bool             `json:"is_occupied"`
	ActiveSessionID *uint            `json:"active_session_id"`
	CustomerName    *string          `json:"customer_name"`
}

// CreateTable -> menambahkan meja baru (admin)
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number int              `json:"number" binding:"required"`
		Type   models.TableType `json:"type" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidTableType(req.Type) {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidTableType)
		return
	}

	var existing models.DiningTable
	if err := tc.DB.Where("number = ?", req.Number).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, ErrTableExists)
		return
	}

	table := models.DiningTable{
		Number: req.Number,
		Type:   req.Type,
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		// Unique index pada number menangkap race dua create bersamaan
		if isDuplicateErr(err) {
			utils.RespondError(c, http.StatusBadRequest, ErrTableExists)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: number=%d (type=%s)", table.Number, table.Type)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> seluruh meja dengan anotasi hunian.
// Session aktif diambil sekali lalu diindeks per table_id,
// bukan ditelusuri dari relasi per meja.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.DiningTable
	if err := tc.DB.Order("number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var active []models.TableSession
	if err := tc.DB.Preload("Customer").
		Where("table_id IS NOT NULL AND ended_at IS NULL").
		Find(&active).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	activeByTable := make(map[uint]*models.TableSession, len(active))
	for i := range active {
		activeByTable[*active[i].TableID] = &active[i]
	}

	result := make([]TableRead, 0, len(tables))
	for _, t := range tables {
		read := TableRead{
			ID:     t.ID,
			Number: t.Number,
			Type:   t.Type,
		}
		if session, ok := activeByTable[t.ID]; ok {
			read.IsOccupied = true
			read.ActiveSessionID = &session.ID
			if session.Customer != nil {
				read.CustomerName = &session.Customer.Name
			}
		}
		result = append(result, read)
	}

	utils.RespondJSON(c, http.StatusOK, "List of tables", result)
}

// GetTableByNumber -> detail satu meja
func (tc *TableController) GetTableByNumber(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("table_number"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.DiningTable
	if err := tc.DB.Where("number = ?", number).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// DeleteTable -> menghapus meja (admin).
// Ditolak selama masih ada session yang menunjuk meja ini;
// karena close melepas table_id, yang tersisa hanya session aktif.
func (tc *TableController) DeleteTable(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("table_number"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.DiningTable
	if err := tc.DB.Where("number = ?", number).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var attached int64
	if err := tc.DB.Model(&models.TableSession{}).
		Where("table_id = ?", table.ID).
		Count(&attached).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if attached > 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrTableHasSessions)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.Number)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": table.ID,
	})
}
