package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ucmob_admin/internal/model"
	"ucmob_admin/internal/repository"
)

// fakeStatsRepo 统计仓储的内存假实现
// 真实现是 Postgres date_part 谓词，单测里只验证桶的遍历逻辑
type fakeStatsRepo struct {
	orders  map[int]int64
	clients map[int]int64
	year    float64
}

func (f *fakeStatsRepo) CountOrdersInBucket(_ context.Context, _ string, bucket int) (int64, error) {
	return f.orders[bucket], nil
}

func (f *fakeStatsRepo) CountClientsInBucket(_ context.Context, _ string, bucket int) (int64, error) {
	return f.clients[bucket], nil
}

func (f *fakeStatsRepo) YearTotalSum(_ context.Context, _ []string) (float64, error) {
	return f.year, nil
}

func newStatsService(t *testing.T) (*StatsService, *fakeStatsRepo) {
	t.Helper()
	db := newTestDB(t, &model.User{}, &model.Order{})
	seedOrders(t, db)

	fake := &fakeStatsRepo{
		orders:  map[int]int64{0: 2, 3: 1},
		clients: map[int]int64{3: 4},
		year:    120.5,
	}
	svc := NewStatsService(
		fake,
		repository.NewOrderRepository(db),
		repository.NewUserRepository(db),
		testOrderCatalog(),
		"USD",
	)
	return svc, fake
}

func TestStatisticBucketCounts(t *testing.T) {
	svc, _ := newStatsService(t)
	ctx := context.Background()

	cases := []struct {
		filter string
		count  int
		first  int
	}{
		{repository.PeriodDay, 24, 0},
		{repository.PeriodWeek, 7, 0},
		{repository.PeriodYear, 12, 1},
	}
	for _, tc := range cases {
		resp, err := svc.Statistic(ctx, tc.filter)
		if err != nil {
			t.Fatalf("%s: 统计失败: %v", tc.filter, err)
		}
		if len(resp.XAxis) != tc.count || len(resp.Orders) != tc.count || len(resp.Clients) != tc.count {
			t.Fatalf("%s: 桶数应为 %d, 实际 xAxis=%d orders=%d clients=%d",
				tc.filter, tc.count, len(resp.XAxis), len(resp.Orders), len(resp.Clients))
		}
		if resp.XAxis[0] != tc.first {
			t.Fatalf("%s: 首桶应为 %d, 实际 %d", tc.filter, tc.first, resp.XAxis[0])
		}
	}
}

func TestStatisticMonthBuckets(t *testing.T) {
	svc, _ := newStatsService(t)
	svc.now = func() time.Time { return time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC) }

	resp, err := svc.Statistic(context.Background(), repository.PeriodMonth)
	if err != nil {
		t.Fatalf("月统计失败: %v", err)
	}
	if len(resp.XAxis) != 28 {
		t.Fatalf("2026 年 2 月应有 28 桶, 实际 %d", len(resp.XAxis))
	}
	if resp.XAxis[0] != 1 || resp.XAxis[27] != 28 {
		t.Fatalf("月桶应从 1 到 28: %v ... %v", resp.XAxis[0], resp.XAxis[27])
	}
}

func TestStatisticValuesAndTotals(t *testing.T) {
	svc, _ := newStatsService(t)

	resp, err := svc.Statistic(context.Background(), repository.PeriodWeek)
	if err != nil {
		t.Fatalf("周统计失败: %v", err)
	}
	if resp.Orders[0] != 2 || resp.Orders[3] != 1 || resp.Orders[1] != 0 {
		t.Fatalf("桶内订单数不对: %v", resp.Orders)
	}
	if resp.Clients[3] != 4 {
		t.Fatalf("桶内客户数不对: %v", resp.Clients)
	}

	// 全局汇总：订单来自内存库，排除已取消
	if resp.TotalSales != 150 || resp.OrdersTotal != 2 {
		t.Fatalf("汇总不对: sales=%v orders=%d", resp.TotalSales, resp.OrdersTotal)
	}
	if resp.SaleYearTotal != 120.5 {
		t.Fatalf("年销售额不对: %v", resp.SaleYearTotal)
	}
	if resp.ClientsTotal != 2 {
		t.Fatalf("客户总数应为 2, 实际 %d", resp.ClientsTotal)
	}
	if resp.CurrencyCode != "USD" {
		t.Fatalf("币种不对: %q", resp.CurrencyCode)
	}
}

func TestStatisticUnknownFilter(t *testing.T) {
	svc, _ := newStatsService(t)

	if _, err := svc.Statistic(context.Background(), "decade"); !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("未知周期应报 Unknown filter set, 实际 %v", err)
	}
}
