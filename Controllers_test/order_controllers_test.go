package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/models"
)

func setupTestDBForOrders() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:orders_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.Exec("DELETE FROM order_items")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM table_sessions")
	db.Exec("DELETE FROM dining_tables")
	db.Exec("DELETE FROM menu_items")
	db.Exec("DELETE FROM menu_categories")
	err = db.AutoMigrate(
		&models.DiningTable{},
		&models.TableSession{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	orderCtrl := controllers.NewOrderController(db)
	router.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	router.POST("/orders/:order_id/items", orderCtrl.AddOrderItem)
	router.POST("/orders/:order_id/serve", orderCtrl.MarkOrderServed)
	router.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	return router
}

// seedPendingOrder membuat session terbuka dengan satu order pending
func seedPendingOrder(db *gorm.DB) models.Order {
	session := models.TableSession{StartedAt: time.Now().UTC()}
	db.Create(&session)

	order := models.Order{
		SessionID: session.ID,
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	db.Create(&order)
	return order
}

func seedCatalogItem(db *gorm.DB, price string, available bool) models.MenuItem {
	category := models.MenuCategory{Name: fmt.Sprintf("Cat-%d", time.Now().UnixNano())}
	db.Create(&category)

	item := models.MenuItem{
		Name:        "Es Teh",
		Price:       decimal.RequireFromString(price),
		CategoryID:  category.ID,
		IsAvailable: available,
	}
	db.Create(&item)
	return item
}

type orderResponse struct {
	Data struct {
		ID          uint             `json:"id"`
		Status      string           `json:"status"`
		ServedAt    *time.Time       `json:"served_at"`
		FinalTotal  *decimal.Decimal `json:"final_total"`
		TotalAmount decimal.Decimal  `json:"total_amount"`
		Items       []struct {
			Quantity    int             `json:"quantity"`
			PriceAtTime decimal.Decimal `json:"price_at_time"`
		} `json:"items"`
	} `json:"data"`
}

func getOrder(t *testing.T, router *gin.Engine, orderID uint) orderResponse {
	req, _ := http.NewRequest("GET", fmt.Sprintf("/orders/%d", orderID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response orderResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestAddOrderItemInvalidQuantity(t *testing.T) {
	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	order := seedPendingOrder(db)
	menuItem := seedCatalogItem(db, "5.00", true)

	w := postJSON(t, router, fmt.Sprintf("/orders/%d/items", order.ID), map[string]interface{}{
		"menu_item_id": menuItem.ID,
		"quantity":     0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.OrderItem{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestAddOrderItemUnavailable(t *testing.T) {
	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	order := seedPendingOrder(db)
	menuItem := seedCatalogItem(db, "5.00", false)

	w := postJSON(t, router, fmt.Sprintf("/orders/%d/items", order.ID), map[string]interface{}{
		"menu_item_id": menuItem.ID,
		"quantity":     1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddOrderItemMenuNotFound(t *testing.T) {
	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	order := seedPendingOrder(db)

	w := postJSON(t, router, fmt.Sprintf("/orders/%d/items", order.ID), map[string]interface{}{
		"menu_item_id": 999,
		"quantity":     1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPriceSnapshotUnaffectedByCatalogChange(t *testing.T) {
	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	order := seedPendingOrder(db)
	menuItem := seedCatalogItem(db, "12.50", true)

	w := postJSON(t, router, fmt.Sprintf("/orders/%d/items", order.ID), map[string]interface{}{
		"menu_item_id": menuItem.ID,
		"quantity":     2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Harga katalog naik setelah item tercatat
	menuItem.Price = decimal.RequireFromString("99.99")
	db.Save(&menuItem)

	response := getOrder(t, router, order.ID)
	assert.True(t, response.Data.TotalAmount.Equal(decimal.RequireFromString("25.00")),
		"total amount = %s", response.Data.TotalAmount.String())
	assert.Len(t, response.Data.Items, 1)
	assert.True(t, response.Data.Items[0].PriceAtTime.Equal(decimal.RequireFromString("12.50")))
}

func TestMarkServedFreezesTotal(t *testing.T) {
	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	order := seedPendingOrder(db)
	menuItem := seedCatalogItem(db, "12.50", true)

	w := postJSON(t, router, fmt.Sprintf("/orders/%d/items", order.ID), map[string]interface{}{
		"menu_item_id": menuItem.ID,
		"quantity":     2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Sebelum served: total dihitung live, final_total masih kosong
	response := getOrder(t, router, order.ID)
	assert.Equal(t, models.OrderStatusPending, response.Data.Status)
	assert.Nil(t, response.Data.FinalTotal)
	assert.True(t, response.Data.TotalAmount.Equal(decimal.RequireFromString("25.00")))

	w = postJSON(t, router, fmt.Sprintf("/orders/%d/serve", order.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response = getOrder(t, router, order.ID)
	assert.Equal(t, models.OrderStatusServed, response.Data.Status)
	assert.NotNil(t, response.Data.ServedAt)
	if assert.NotNil(t, response.Data.FinalTotal) {
		assert.True(t, response.Data.FinalTotal.Equal(decimal.RequireFromString("25.00")))
	}

	// Item tidak bisa ditambahkan ke order yang sudah served
	w = postJSON(t, router, fmt.Sprintf("/orders/%d/items", order.ID), map[string]interface{}{
		"menu_item_id": menuItem.ID,
		"quantity":     1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkServedTwice(t *testing.T) {
	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	order := seedPendingOrder(db)
	menuItem := seedCatalogItem(db, "3.00", true)

	w := postJSON(t, router, fmt.Sprintf("/orders/%d/items", order.ID), map[string]interface{}{
		"menu_item_id": menuItem.ID,
		"quantity":     1,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, fmt.Sprintf("/orders/%d/serve", order.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var first models.Order
	db.First(&first, order.ID)
	firstServed := *first.ServedAt
	firstTotal := *first.FinalTotal

	w = postJSON(t, router, fmt.Sprintf("/orders/%d/serve", order.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nilai beku dari serve pertama tidak berubah
	var second models.Order
	db.First(&second, order.ID)
	assert.True(t, second.ServedAt.Equal(firstServed))
	assert.True(t, second.FinalTotal.Equal(firstTotal))
}

func TestDeleteOrderCascadesItems(t *testing.T) {
	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	order := seedPendingOrder(db)
	menuItem := seedCatalogItem(db, "3.00", true)

	w := postJSON(t, router, fmt.Sprintf("/orders/%d/items", order.ID), map[string]interface{}{
		"menu_item_id": menuItem.ID,
		"quantity":     2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/orders/%d", order.ID), nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	assert.EqualValues(t, 0, orders)
	assert.EqualValues(t, 0, items)
}
