package store

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"doughjo/internal/database"
	"doughjo/internal/models"
)

// InitializeStoreRoutes configures the HTTP endpoints the shift engine
// consumes: the product catalog read and the shift persistence pair.
// Catalog create/update/delete is intentionally not exposed here.
func InitializeStoreRoutes(router *gin.Engine) {
	router.GET("/store", GetStore)
	router.POST("/shift/complete", CompleteShift)
	router.GET("/shift/history", GetShiftHistory)
}

// InitializeDatabase creates the store tables and seeds default
// products so a fresh install has a usable catalog.
func InitializeDatabase() {
	db := database.GetDB()
	db.AutoMigrate(
		&Product{},
		&CompletedShift{},
	)

	seedDefaultProducts(db)
}

// seedDefaultProducts ensures a default catalog exists
func seedDefaultProducts(db *gorm.DB) {
	var productCount int64
	db.Model(&Product{}).Count(&productCount)
	if productCount > 0 {
		return
	}

	defaultProducts := []Product{
		{Name: "Margherita", Price: 9.50, SecondsForOrder: 180},
		{Name: "Pepperoni", Price: 11.00, SecondsForOrder: 210},
		{Name: "Quattro Formaggi", Price: 12.50, SecondsForOrder: 240},
		{Name: "Calzone", Price: 10.00, SecondsForOrder: 300},
		{Name: "Garlic Bread", Price: 4.50, SecondsForOrder: 90},
		{Name: "Tiramisu", Price: 6.00, SecondsForOrder: 60},
	}
	for _, product := range defaultProducts {
		db.Create(&product)
	}
}

// GetStore returns the full product catalog.
func GetStore(c *gin.Context) {
	var products []Product
	database.GetDB().Find(&products)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		out = append(out, models.Product{
			Name:            p.Name,
			Price:           p.Price,
			SecondsForOrder: p.SecondsForOrder,
		})
	}
	c.JSON(http.StatusOK, out)
}

// shiftPayload is the POST /shift/complete request body.
type shiftPayload struct {
	ShiftDuration *int                    `json:"shiftDuration"`
	Orders        *[]models.Order         `json:"orders"`
	Completed     []models.CompletedOrder `json:"completed"`
	StartTime     *int64                  `json:"startTime"`
	EndTime       *int64                  `json:"endTime"`
}

// CompleteShift persists one finished shift. All of shiftDuration,
// orders, startTime and endTime must be present; orders may be empty.
func CompleteShift(c *gin.Context) {
	var payload shiftPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}

	if payload.ShiftDuration == nil || payload.Orders == nil || payload.StartTime == nil || payload.EndTime == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	record := CompletedShift{
		ShiftDuration: *payload.ShiftDuration,
		StartTime:     *payload.StartTime,
		EndTime:       *payload.EndTime,
	}
	if err := record.SetOrders(*payload.Orders); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := record.SetCompleted(payload.Completed); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	if err := db.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Shift saved", "shiftId": record.ID})
}

// GetShiftHistory returns every persisted shift in insertion order.
func GetShiftHistory(c *gin.Context) {
	var rows []CompletedShift
	database.GetDB().Order("id asc").Find(&rows)

	shifts := make([]models.ShiftRecord, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].Record()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		shifts = append(shifts, rec)
	}

	c.JSON(http.StatusOK, gin.H{"shifts": shifts})
}
