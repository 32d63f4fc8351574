package service

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ucmob_admin/internal/config"
	"ucmob_admin/internal/model"
)

// newTestDB 每个用例独立的内存库
func newTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}
	return db
}

// testOrderCatalog 测试用订单状态目录
func testOrderCatalog() *model.OrderStatusCatalog {
	return model.NewOrderStatusCatalog([]model.OrderStatus{
		{ID: "in_checkout", Name: "In checkout", LanguageID: "en", State: model.StateInCheckout},
		{ID: "pending", Name: "Pending", LanguageID: "en", State: model.StatePending},
		{ID: "completed", Name: "Completed", LanguageID: "en", State: model.StateCompleted},
		{ID: "canceled", Name: "Canceled", LanguageID: "en", State: model.StateCanceled},
	})
}

// testProductCatalog 测试用商品状态目录
func testProductCatalog() *model.ProductStatusCatalog {
	return model.NewProductStatusCatalog([]model.ProductStatus{
		{ID: "1", Name: "Published"},
		{ID: "0", Name: "Unpublished"},
	})
}

var testStore = config.StoreConfig{
	Currency: "USD",
	PaymentMethods: map[string]string{
		"cod": "Cash on delivery",
	},
}

var testFiles = config.FilesConfig{BaseURL: "http://shop.test/files"}

func testTime(day int) time.Time {
	return time.Date(2026, 3, day, 12, 0, 0, 0, time.UTC)
}
