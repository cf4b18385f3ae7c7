package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// setupTestDBForTables menggunakan SQLite in-memory khusus untuk TableController
func setupTestDBForTables() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:tables_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	// Mulai dari kosong karena named in-memory DB dipakai lintas test
	db.Exec("DELETE FROM order_items")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM table_sessions")
	db.Exec("DELETE FROM dining_tables")
	db.Exec("DELETE FROM customers")
	err = db.AutoMigrate(
		&models.Customer{},
		&models.DiningTable{},
		&models.TableSession{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	tableCtrl := controllers.NewTableController(db)
	sessionCtrl := controllers.NewSessionController(db)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.GET("/tables/:table_number", tableCtrl.GetTableByNumber)
	router.POST("/admin/tables", tableCtrl.CreateTable)
	router.DELETE("/admin/tables/:table_number", tableCtrl.DeleteTable)
	router.POST("/table-sessions", sessionCtrl.OpenSession)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateTable(t *testing.T) {
	db := setupTestDBForTables()
	router := setupTableRouter(db)

	w := postJSON(t, router, "/admin/tables", map[string]interface{}{
		"number": 1,
		"type":   "indoor",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Table created successfully", response["message"])

	var count int64
	db.Model(&models.DiningTable{}).Where("number = ?", 1).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateTableDuplicateNumber(t *testing.T) {
	db := setupTestDBForTables()
	router := setupTableRouter(db)

	db.Create(&models.DiningTable{Number: 7, Type: models.TableTypeRooftop})

	w := postJSON(t, router, "/admin/tables", map[string]interface{}{
		"number": 7,
		"type":   "indoor",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.DiningTable{}).Where("number = ?", 7).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateTableInvalidType(t *testing.T) {
	db := setupTestDBForTables()
	router := setupTableRouter(db)

	w := postJSON(t, router, "/admin/tables", map[string]interface{}{
		"number": 2,
		"type":   "garden",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllTablesOccupancy(t *testing.T) {
	db := setupTestDBForTables()
	router := setupTableRouter(db)

	db.Create(&models.DiningTable{Number: 1, Type: models.TableTypeIndoor})
	db.Create(&models.DiningTable{Number: 2, Type: models.TableTypeRooftop})

	customer := models.Customer{Name: "Budi"}
	db.Create(&customer)

	// Buka session di meja 2
	w := postJSON(t, router, "/table-sessions", map[string]interface{}{
		"table_number": 2,
		"customer_id":  customer.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	req, _ := http.NewRequest("GET", "/tables", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []controllers.TableRead `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 2)

	assert.False(t, response.Data[0].IsOccupied)
	assert.Nil(t, response.Data[0].ActiveSessionID)

	assert.True(t, response.Data[1].IsOccupied)
	assert.NotNil(t, response.Data[1].ActiveSessionID)
	if assert.NotNil(t, response.Data[1].CustomerName) {
		assert.Equal(t, "Budi", *response.Data[1].CustomerName)
	}
}

func TestDeleteTableWithActiveSession(t *testing.T) {
	db := setupTestDBForTables()
	router := setupTableRouter(db)

	table := models.DiningTable{Number: 3, Type: models.TableTypeIndoor}
	db.Create(&table)
	db.Create(&models.TableSession{TableID: &table.ID})

	req, _ := http.NewRequest("DELETE", "/admin/tables/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.DiningTable{}).Where("number = ?", 3).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteTableFree(t *testing.T) {
	db := setupTestDBForTables()
	router := setupTableRouter(db)

	db.Create(&models.DiningTable{Number: 4, Type: models.TableTypeTakeaway})

	req, _ := http.NewRequest("DELETE", "/admin/tables/4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.DiningTable{}).Where("number = ?", 4).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDeleteTableNotFound(t *testing.T) {
	db := setupTestDBForTables()
	router := setupTableRouter(db)

	req, _ := http.NewRequest("DELETE", "/admin/tables/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
