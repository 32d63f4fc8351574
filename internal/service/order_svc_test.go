package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"ucmob_admin/internal/api/dto"
	"ucmob_admin/internal/model"
	"ucmob_admin/internal/repository"
)

func newOrderService(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t,
		&model.User{},
		&model.Order{},
		&model.OrderProduct{},
		&model.OrderLineItem{},
		&model.OrderComment{},
		&model.OrderLog{},
		&model.ProductImage{},
		&model.FileManaged{},
	)
	svc := NewOrderService(repository.NewOrderRepository(db), testOrderCatalog(), testStore, testFiles)
	return svc, db
}

func seedOrders(t *testing.T, db *gorm.DB) {
	t.Helper()
	db.Create(&model.User{UID: 2, Name: "alice", Mail: "alice@shop.test", Role: "authenticated", Status: 1})
	db.Create(&model.User{UID: 3, Name: "bob", Mail: "bob@shop.test", Role: "authenticated", Status: 1})

	db.Create(&model.Order{
		OrderID: 1, UID: 2, OrderStatus: "pending", OrderTotal: 100, Currency: "USD",
		PrimaryEmail: "alice@shop.test",
		BillingFirstName: "Alice", BillingLastName: "Smith", BillingPhone: "111-222",
		DeliveryStreet1: "Main st 1", DeliveryCity: "Springfield",
		PaymentMethod: "cod",
		Created:       testTime(1), Changed: testTime(1),
	})
	db.Create(&model.Order{
		OrderID: 2, UID: 2, OrderStatus: "completed", OrderTotal: 50, Currency: "USD",
		BillingFirstName: "Alice", BillingLastName: "Smith",
		Created: testTime(2), Changed: testTime(2),
	})
	db.Create(&model.Order{
		OrderID: 3, UID: 3, OrderStatus: "canceled", OrderTotal: 999, Currency: "USD",
		BillingFirstName: "Bob", BillingLastName: "Jones",
		Created: testTime(3), Changed: testTime(3),
	})
}

func TestOrdersListAndTotals(t *testing.T) {
	svc, db := newOrderService(t)
	seedOrders(t, db)

	resp, err := svc.Orders(context.Background(), &dto.OrdersRequest{})
	if err != nil {
		t.Fatalf("查订单列表失败: %v", err)
	}
	if len(resp.Orders) != 3 {
		t.Fatalf("应有 3 单, 实际 %d", len(resp.Orders))
	}
	if resp.Orders[0].OrderID != 3 {
		t.Fatalf("应最新在前, 第一条是 %d", resp.Orders[0].OrderID)
	}
	if resp.Orders[0].Fio != "bob (Bob Jones)" {
		t.Fatalf("fio 格式不对: %q", resp.Orders[0].Fio)
	}
	if resp.Orders[0].Status != "Canceled" {
		t.Fatalf("状态应换成展示名: %q", resp.Orders[0].Status)
	}

	// 汇总排除已取消
	if resp.TotalSum != 150 {
		t.Fatalf("total_sum 应为 150, 实际 %v", resp.TotalSum)
	}
	if resp.TotalQuantity != 2 {
		t.Fatalf("total_quantity 应为 2, 实际 %v", resp.TotalQuantity)
	}
	if resp.MaxPrice != 100 {
		t.Fatalf("max_price 应为 100, 实际 %v", resp.MaxPrice)
	}
	if len(resp.Statuses) != 4 {
		t.Fatalf("状态目录应有 4 项, 实际 %d", len(resp.Statuses))
	}
}

func TestOrdersFilters(t *testing.T) {
	svc, db := newOrderService(t)
	seedOrders(t, db)
	ctx := context.Background()

	resp, err := svc.Orders(ctx, &dto.OrdersRequest{OrderStatusID: "completed"})
	if err != nil {
		t.Fatalf("按状态过滤失败: %v", err)
	}
	if len(resp.Orders) != 1 || resp.Orders[0].OrderID != 2 {
		t.Fatalf("状态过滤结果不对: %+v", resp.Orders)
	}

	resp, err = svc.Orders(ctx, &dto.OrdersRequest{Fio: "bob"})
	if err != nil {
		t.Fatalf("按 fio 过滤失败: %v", err)
	}
	if len(resp.Orders) != 1 || resp.Orders[0].OrderID != 3 {
		t.Fatalf("fio 过滤结果不对: %+v", resp.Orders)
	}

	if _, err := svc.Orders(ctx, &dto.OrdersRequest{Fio: "nobody"}); !errors.Is(err, ErrNoOrders) {
		t.Fatalf("空结果应报 No order found, 实际 %v", err)
	}

	resp, err = svc.Orders(ctx, &dto.OrdersRequest{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("翻页失败: %v", err)
	}
	if len(resp.Orders) != 1 || resp.Orders[0].OrderID != 1 {
		t.Fatalf("第二页应只剩最旧一单: %+v", resp.Orders)
	}
}

func TestOrderInfo(t *testing.T) {
	svc, db := newOrderService(t)
	seedOrders(t, db)

	resp, err := svc.OrderInfo(context.Background(), 1)
	if err != nil {
		t.Fatalf("查订单详情失败: %v", err)
	}
	if resp.Status != "Pending" {
		t.Fatalf("状态展示名不对: %q", resp.Status)
	}
	if resp.Email != "alice@shop.test" || resp.Telephone != "111-222" {
		t.Fatalf("联系方式不对: %q / %q", resp.Email, resp.Telephone)
	}

	_, err = svc.OrderInfo(context.Background(), 99)
	if err == nil || err.Error() != "Could not find order with id = 99" {
		t.Fatalf("错误文本不对: %v", err)
	}
}

func TestPaymentAndDelivery(t *testing.T) {
	svc, db := newOrderService(t)
	seedOrders(t, db)
	db.Create(&model.OrderLineItem{OrderID: 1, Type: model.LineItemShipping, Title: "Courier", Amount: 10})

	resp, err := svc.PaymentAndDelivery(context.Background(), 1)
	if err != nil {
		t.Fatalf("查支付配送失败: %v", err)
	}
	if resp.PaymentMethod != "Cash on delivery" {
		t.Fatalf("支付方式应换成展示名: %q", resp.PaymentMethod)
	}
	if resp.ShippingMethod != "Courier" {
		t.Fatalf("配送方式不对: %q", resp.ShippingMethod)
	}
	if resp.ShippingAddress != "Main st 1, Springfield" {
		t.Fatalf("地址拼接不对: %q", resp.ShippingAddress)
	}
}

func TestOrderProductsTotals(t *testing.T) {
	svc, db := newOrderService(t)
	seedOrders(t, db)
	db.Create(&model.Order{OrderID: 10, UID: 2, OrderStatus: "pending", OrderTotal: 105, Currency: "USD",
		BillingFirstName: "Alice", BillingLastName: "Smith", Created: testTime(5), Changed: testTime(5)})
	db.Create(&model.OrderProduct{OrderID: 10, ProductID: 5, Title: "Mug", Model: "MUG-1", Qty: 2, Price: 30})
	db.Create(&model.OrderProduct{OrderID: 10, ProductID: 6, Title: "Cap", Model: "CAP-1", Qty: 2, Price: 20})
	db.Create(&model.OrderLineItem{OrderID: 10, Type: model.LineItemShipping, Title: "Courier", Amount: 10})

	resp, err := svc.OrderProducts(context.Background(), 10)
	if err != nil {
		t.Fatalf("查订单商品失败: %v", err)
	}
	if len(resp.Products) != 2 {
		t.Fatalf("应有 2 个商品, 实际 %d", len(resp.Products))
	}
	block := resp.TotalOrderPrice
	if block.Total != 100 || block.ShippingPrice != 10 || block.TotalPrice != 105 {
		t.Fatalf("金额块不对: %+v", block)
	}
	if block.TotalDiscount != 5 {
		t.Fatalf("折扣应为 5, 实际 %v", block.TotalDiscount)
	}
}

func TestOrderHistorySynthesizesEntries(t *testing.T) {
	svc, db := newOrderService(t)
	seedOrders(t, db)
	db.Create(&model.OrderComment{OrderID: 1, UID: 7, OrderStatus: "completed", Message: "-", Created: testTime(2)})
	db.Create(&model.OrderLog{OrderID: 1, UID: 7, Changes: "Order status changed from In checkout to Pending.", Created: testTime(1).Add(1e9)})

	resp, err := svc.OrderHistory(context.Background(), 1)
	if err != nil {
		t.Fatalf("查订单历史失败: %v", err)
	}
	if len(resp.Orders) != 3 {
		t.Fatalf("应有 3 条历史, 实际 %d", len(resp.Orders))
	}
	if resp.Orders[0].OrderStatusID != "in_checkout" {
		t.Fatalf("首条应是合成的结算中记录: %+v", resp.Orders[0])
	}
	if resp.Orders[1].Comment != "" {
		t.Fatalf(`"-" 备注应展示为空串: %q`, resp.Orders[1].Comment)
	}
	if resp.Orders[2].OrderStatusID != "pending" {
		t.Fatalf("末条应是从日志合成的待处理记录: %+v", resp.Orders[2])
	}
}

func TestChangeStatusWritesCommentAndLog(t *testing.T) {
	svc, db := newOrderService(t)
	seedOrders(t, db)

	resp, err := svc.ChangeStatus(context.Background(), 7, 1, "completed", "", 1)
	if err != nil {
		t.Fatalf("改状态失败: %v", err)
	}
	if resp.Name != "Completed" {
		t.Fatalf("响应状态名不对: %q", resp.Name)
	}

	var order model.Order
	db.First(&order, "order_id = ?", 1)
	if order.OrderStatus != "completed" {
		t.Fatalf("订单状态未更新: %q", order.OrderStatus)
	}

	var comment model.OrderComment
	if err := db.Where("order_id = ?", 1).First(&comment).Error; err != nil {
		t.Fatalf("备注未写入: %v", err)
	}
	if comment.Message != "-" || comment.Notified != 1 || comment.UID != 7 {
		t.Fatalf("备注内容不对: %+v", comment)
	}

	var logRow model.OrderLog
	if err := db.Where("order_id = ?", 1).First(&logRow).Error; err != nil {
		t.Fatalf("日志未写入: %v", err)
	}
	if logRow.Changes != "Order status changed from Pending to Completed." {
		t.Fatalf("日志文本不对: %q", logRow.Changes)
	}
}

func TestChangeStatusUnknownStatus(t *testing.T) {
	svc, db := newOrderService(t)
	seedOrders(t, db)

	if _, err := svc.ChangeStatus(context.Background(), 7, 1, "shipped", "", 0); !errors.Is(err, ErrParameters) {
		t.Fatalf("未知状态应报参数错误, 实际 %v", err)
	}
}

func TestDeliveryUpdatesAddress(t *testing.T) {
	svc, db := newOrderService(t)
	seedOrders(t, db)

	if err := svc.Delivery(context.Background(), 7, 1, "New st 5", "Shelbyville"); err != nil {
		t.Fatalf("改地址失败: %v", err)
	}
	var order model.Order
	db.First(&order, "order_id = ?", 1)
	if order.DeliveryStreet1 != "New st 5" || order.DeliveryCity != "Shelbyville" {
		t.Fatalf("地址未更新: %q / %q", order.DeliveryStreet1, order.DeliveryCity)
	}
	var count int64
	db.Model(&model.OrderLog{}).Where("order_id = ?", 1).Count(&count)
	if count != 2 {
		t.Fatalf("每个字段应各记一条日志, 实际 %d 条", count)
	}

	if err := svc.Delivery(context.Background(), 7, 1, "", ""); !errors.Is(err, ErrParameters) {
		t.Fatalf("空参数应报参数错误, 实际 %v", err)
	}
}
