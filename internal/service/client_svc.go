package service

import (
	"context"
	"errors"
	"fmt"

	"ucmob_admin/internal/api/dto"
	"ucmob_admin/internal/config"
	"ucmob_admin/internal/model"
	"ucmob_admin/internal/repository"
)

// ErrNoClients 列表查询没有命中任何客户
var ErrNoClients = errors.New("No client found")

func errClientNotFound(id int64) error {
	return fmt.Errorf("Could not find client with id = %d", id)
}

// ==================== ClientService 客户服务 ====================

// ClientService 按订单聚合出的客户视图
// 客户没有独立的业务表，全部数据从订单和用户表推出来
type ClientService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	statuses  *model.OrderStatusCatalog
	store     config.StoreConfig
}

// NewClientService 创建客户服务
func NewClientService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	statuses *model.OrderStatusCatalog,
	store config.StoreConfig,
) *ClientService {
	return &ClientService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		statuses:  statuses,
		store:     store,
	}
}

// Clients 客户列表（按 uid 聚合订单，排除被屏蔽状态）
func (s *ClientService) Clients(ctx context.Context, req *dto.ClientsRequest) (*dto.ClientsResponse, error) {
	f := repository.ClientFilter{
		Fio:   req.Fio,
		Sort:  req.Sort,
		Page:  req.Page,
		Limit: req.Limit,
	}
	rows, err := s.orderRepo.ClientSummaries(ctx, f, s.statuses.BlockedIDs())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoClients
	}

	resp := &dto.ClientsResponse{Clients: make([]dto.ClientItem, 0, len(rows))}
	for _, row := range rows {
		currency := row.Currency
		if currency == "" {
			currency = s.store.Currency
		}
		resp.Clients = append(resp.Clients, dto.ClientItem{
			ClientID:     row.ClientID,
			Fio:          row.Fio,
			Total:        round2(row.Total),
			Quantity:     row.Quantity,
			CurrencyCode: currency,
		})
	}
	return resp, nil
}

// ClientInfo 客户详情：联系方式 + 订单汇总
// 电话取该客户最近一笔带电话的订单
func (s *ClientService) ClientInfo(ctx context.Context, clientID int64) (*dto.ClientInfoResponse, error) {
	user, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errClientNotFound(clientID)
	}

	blocked := s.statuses.BlockedIDs()
	total, err := s.orderRepo.TotalSum(ctx, blocked, clientID)
	if err != nil {
		return nil, err
	}
	quantity, err := s.orderRepo.Count(ctx, blocked, clientID)
	if err != nil {
		return nil, err
	}
	completed, err := s.orderRepo.CountByStatuses(ctx, clientID, s.statuses.CompletedIDs())
	if err != nil {
		return nil, err
	}
	phone, err := s.orderRepo.LatestBillingPhone(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return &dto.ClientInfoResponse{
		ClientID:     user.UID,
		Fio:          user.Name,
		Email:        user.Mail,
		Telephone:    phone,
		Total:        round2(total),
		Quantity:     quantity,
		Completed:    completed,
		CurrencyCode: s.store.Currency,
	}, nil
}

// ClientOrders 客户的订单列表，sort = sum / completed
func (s *ClientService) ClientOrders(ctx context.Context, clientID int64, sort string) (*dto.ClientOrdersResponse, error) {
	user, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errClientNotFound(clientID)
	}

	rows, err := s.orderRepo.ClientOrders(ctx, clientID, sort, s.statuses.CompletedIDs())
	if err != nil {
		return nil, err
	}

	resp := &dto.ClientOrdersResponse{Orders: make([]dto.OrderListItem, 0, len(rows))}
	for _, row := range rows {
		status := row.Status
		if name, ok := s.statuses.Name(status); ok {
			status = name
		}
		resp.Orders = append(resp.Orders, dto.OrderListItem{
			OrderID:      row.OrderID,
			OrderNumber:  row.OrderID,
			Status:       status,
			Total:        row.Total,
			DateAdded:    formatDate(row.Created),
			CurrencyCode: row.Currency,
		})
	}
	return resp, nil
}
