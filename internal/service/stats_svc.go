package service

import (
	"context"
	"errors"
	"time"

	"ucmob_admin/internal/api/dto"
	"ucmob_admin/internal/model"
	"ucmob_admin/internal/repository"
)

// ErrUnknownFilter 统计周期取值不在 day/week/month/year 里
var ErrUnknownFilter = errors.New("Unknown filter set")

// ==================== StatsService 仪表盘统计 ====================

// StatsService 订单/新客户的时间桶统计与汇总
type StatsService struct {
	statsRepo repository.StatsRepository
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	statuses  *model.OrderStatusCatalog
	currency  string
	now       func() time.Time
}

// NewStatsService 创建统计服务
func NewStatsService(
	statsRepo repository.StatsRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	statuses *model.OrderStatusCatalog,
	currency string,
) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		statuses:  statuses,
		currency:  currency,
		now:       time.Now,
	}
}

// buckets 返回周期的桶起点和桶数
// day 按小时 0..23，week 按星期 0..6（周一为 0），
// month 按当月日 1..N，year 按月 1..12
func (s *StatsService) buckets(period string) (start, count int, err error) {
	switch period {
	case repository.PeriodDay:
		return 0, 24, nil
	case repository.PeriodWeek:
		return 0, 7, nil
	case repository.PeriodMonth:
		t := s.now()
		last := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
		return 1, last, nil
	case repository.PeriodYear:
		return 1, 12, nil
	}
	return 0, 0, ErrUnknownFilter
}

// Statistic 仪表盘数据：每桶的订单数和新客户数，外加全局汇总
// 营收类汇总不计被排除状态（已取消、结算中）的订单
func (s *StatsService) Statistic(ctx context.Context, filter string) (*dto.StatisticResponse, error) {
	start, count, err := s.buckets(filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.StatisticResponse{
		XAxis:        make([]int, 0, count),
		Clients:      make([]int64, 0, count),
		Orders:       make([]int64, 0, count),
		CurrencyCode: s.currency,
	}
	for b := start; b < start+count; b++ {
		orders, err := s.statsRepo.CountOrdersInBucket(ctx, filter, b)
		if err != nil {
			return nil, err
		}
		clients, err := s.statsRepo.CountClientsInBucket(ctx, filter, b)
		if err != nil {
			return nil, err
		}
		resp.XAxis = append(resp.XAxis, b)
		resp.Orders = append(resp.Orders, orders)
		resp.Clients = append(resp.Clients, clients)
	}

	blocked := s.statuses.BlockedIDs()
	if resp.TotalSales, err = s.orderRepo.TotalSum(ctx, blocked, 0); err != nil {
		return nil, err
	}
	if resp.SaleYearTotal, err = s.statsRepo.YearTotalSum(ctx, blocked); err != nil {
		return nil, err
	}
	if resp.OrdersTotal, err = s.orderRepo.Count(ctx, blocked, 0); err != nil {
		return nil, err
	}
	if resp.ClientsTotal, err = s.userRepo.CountClients(ctx); err != nil {
		return nil, err
	}
	return resp, nil
}
