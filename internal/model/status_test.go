package model

import "testing"

func testCatalog() *OrderStatusCatalog {
	return NewOrderStatusCatalog([]OrderStatus{
		{ID: "in_checkout", Name: "In checkout", State: StateInCheckout},
		{ID: "pending", Name: "Pending", State: StatePending},
		{ID: "completed", Name: "Completed", State: StateCompleted},
		{ID: "canceled", Name: "Canceled", State: StateCanceled},
	})
}

func TestOrderStatusName(t *testing.T) {
	c := testCatalog()

	name, ok := c.Name("pending")
	if !ok || name != "Pending" {
		t.Fatalf("已知 id 应返回展示名: %q %v", name, ok)
	}
	if _, ok := c.Name("shipped"); ok {
		t.Fatal("未知 id 的 ok 应为 false")
	}
}

func TestOrderStatusBlockedIDs(t *testing.T) {
	blocked := testCatalog().BlockedIDs()
	if len(blocked) != 2 {
		t.Fatalf("被屏蔽状态应有 2 个, 实际 %v", blocked)
	}
	want := map[string]bool{"canceled": true, "in_checkout": true}
	for _, id := range blocked {
		if !want[id] {
			t.Fatalf("意外的被屏蔽状态: %q", id)
		}
	}
}

func TestOrderStatusStateLookups(t *testing.T) {
	c := testCatalog()
	if c.InCheckoutID() != "in_checkout" {
		t.Fatalf("InCheckoutID 不对: %q", c.InCheckoutID())
	}
	if c.PendingID() != "pending" {
		t.Fatalf("PendingID 不对: %q", c.PendingID())
	}
	ids := c.CompletedIDs()
	if len(ids) != 1 || ids[0] != "completed" {
		t.Fatalf("CompletedIDs 不对: %v", ids)
	}
}

func TestOrderStatusAllIsCopy(t *testing.T) {
	c := testCatalog()
	all := c.All()
	all[0].Name = "mutated"

	if name, _ := c.Name("in_checkout"); name != "In checkout" {
		t.Fatal("All 应返回副本, 目录被外部修改了")
	}
}

func TestProductStatusNameFallback(t *testing.T) {
	c := NewProductStatusCatalog([]ProductStatus{
		{ID: "1", Name: "Published"},
		{ID: "0", Name: "Unpublished"},
	})
	if c.Name("1") != "Published" {
		t.Fatalf("已知 id 展示名不对: %q", c.Name("1"))
	}
	if c.Name("7") != "7" {
		t.Fatalf("未知 id 应原样返回: %q", c.Name("7"))
	}
}
