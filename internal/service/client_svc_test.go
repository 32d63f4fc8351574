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

func newClientService(t *testing.T) (*ClientService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t, &model.User{}, &model.Order{}, &model.OrderProduct{},
		&model.OrderLineItem{}, &model.OrderComment{}, &model.OrderLog{})
	svc := NewClientService(
		repository.NewOrderRepository(db),
		repository.NewUserRepository(db),
		testOrderCatalog(),
		testStore,
	)
	return svc, db
}

func TestClientsAggregation(t *testing.T) {
	svc, db := newClientService(t)
	seedOrders(t, db)

	resp, err := svc.Clients(context.Background(), &dto.ClientsRequest{})
	if err != nil {
		t.Fatalf("查客户列表失败: %v", err)
	}
	// bob 只有已取消订单，整行不该出现
	if len(resp.Clients) != 1 {
		t.Fatalf("应只有 1 个客户, 实际 %d", len(resp.Clients))
	}
	c := resp.Clients[0]
	if c.ClientID != 2 || c.Fio != "alice" {
		t.Fatalf("客户行不对: %+v", c)
	}
	if c.Total != 150 || c.Quantity != 2 {
		t.Fatalf("聚合不对: total=%v quantity=%d", c.Total, c.Quantity)
	}
}

func TestClientsEmptyResult(t *testing.T) {
	svc, _ := newClientService(t)

	if _, err := svc.Clients(context.Background(), &dto.ClientsRequest{}); !errors.Is(err, ErrNoClients) {
		t.Fatalf("空结果应报 No client found, 实际 %v", err)
	}
}

func TestClientInfo(t *testing.T) {
	svc, db := newClientService(t)
	seedOrders(t, db)

	resp, err := svc.ClientInfo(context.Background(), 2)
	if err != nil {
		t.Fatalf("查客户详情失败: %v", err)
	}
	if resp.Fio != "alice" || resp.Email != "alice@shop.test" {
		t.Fatalf("基本信息不对: %+v", resp)
	}
	if resp.Telephone != "111-222" {
		t.Fatalf("电话应取最近一笔带电话的订单: %q", resp.Telephone)
	}
	if resp.Total != 150 || resp.Quantity != 2 || resp.Completed != 1 {
		t.Fatalf("汇总不对: %+v", resp)
	}

	_, err = svc.ClientInfo(context.Background(), 99)
	if err == nil || err.Error() != "Could not find client with id = 99" {
		t.Fatalf("错误文本不对: %v", err)
	}
}

func TestClientOrdersSort(t *testing.T) {
	svc, db := newClientService(t)
	seedOrders(t, db)
	ctx := context.Background()

	resp, err := svc.ClientOrders(ctx, 2, "")
	if err != nil {
		t.Fatalf("查客户订单失败: %v", err)
	}
	if len(resp.Orders) != 2 || resp.Orders[0].OrderID != 2 {
		t.Fatalf("默认应最新在前: %+v", resp.Orders)
	}
	if resp.Orders[0].Status != "Completed" {
		t.Fatalf("状态应换成展示名: %q", resp.Orders[0].Status)
	}

	resp, err = svc.ClientOrders(ctx, 2, "sum")
	if err != nil {
		t.Fatalf("按金额排序失败: %v", err)
	}
	if resp.Orders[0].OrderID != 1 {
		t.Fatalf("按金额排序第一单应是 1: %+v", resp.Orders)
	}
}
