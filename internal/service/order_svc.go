package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"ucmob_admin/internal/api/dto"
	"ucmob_admin/internal/config"
	"ucmob_admin/internal/model"
	"ucmob_admin/internal/repository"
)

// ErrNoOrders 列表查询没有命中任何订单
var ErrNoOrders = errors.New("No order found")

// 订单备注里 "-" 表示无备注，对外展示成空串
const emptyComment = "-"

// dateLayout 信封里所有时间字段的格式
const dateLayout = "2006-01-02 15:04:05"

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// parseDate 过滤参数的时间解析，支持带时间和纯日期两种写法
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{dateLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func errOrderNotFound(id int64) error {
	return fmt.Errorf("Could not find order with id = %d", id)
}

// round2 金额保留两位
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ==================== OrderService 订单服务 ====================

// OrderService 订单列表、详情、历史与状态流转
type OrderService struct {
	orderRepo repository.OrderRepository
	statuses  *model.OrderStatusCatalog
	store     config.StoreConfig
	files     config.FilesConfig
	now       func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	statuses *model.OrderStatusCatalog,
	store config.StoreConfig,
	files config.FilesConfig,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		statuses:  statuses,
		store:     store,
		files:     files,
		now:       time.Now,
	}
}

// statusName 状态 id 换展示名，未知 id 原样返回
func (s *OrderService) statusName(id string) string {
	if name, ok := s.statuses.Name(id); ok {
		return name
	}
	return id
}

// Orders 订单列表，最新在前
// 响应里同时带状态目录和全局汇总（排除被屏蔽状态）
func (s *OrderService) Orders(ctx context.Context, req *dto.OrdersRequest) (*dto.OrdersResponse, error) {
	f := repository.OrderFilter{
		Fio:      req.Fio,
		StatusID: req.OrderStatusID,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		DateMin:  parseDate(req.DateMin),
		DateMax:  parseDate(req.DateMax),
		Page:     req.Page,
		Limit:    req.Limit,
	}
	rows, err := s.orderRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoOrders
	}

	resp := &dto.OrdersResponse{
		Orders:       make([]dto.OrderListItem, 0, len(rows)),
		Statuses:     s.statuses.All(),
		CurrencyCode: s.store.Currency,
	}
	for _, row := range rows {
		resp.Orders = append(resp.Orders, dto.OrderListItem{
			OrderID:      row.OrderID,
			OrderNumber:  row.OrderID,
			Fio:          row.Fio,
			Status:       s.statusName(row.Status),
			Total:        row.Total,
			DateAdded:    formatDate(row.Created),
			CurrencyCode: row.Currency,
		})
	}

	blocked := s.statuses.BlockedIDs()
	if resp.TotalSum, err = s.orderRepo.TotalSum(ctx, blocked, 0); err != nil {
		return nil, err
	}
	if resp.TotalQuantity, err = s.orderRepo.Count(ctx, blocked, 0); err != nil {
		return nil, err
	}
	if resp.MaxPrice, err = s.orderRepo.MaxTotal(ctx, blocked); err != nil {
		return nil, err
	}
	return resp, nil
}

// OrderInfo 单个订单详情
func (s *OrderService) OrderInfo(ctx context.Context, orderID int64) (*dto.OrderInfoResponse, error) {
	row, err := s.orderRepo.GetInfo(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errOrderNotFound(orderID)
	}
	return &dto.OrderInfoResponse{
		OrderNumber:  row.OrderID,
		Status:       s.statusName(row.Status),
		Total:        row.Total,
		DateAdded:    formatDate(row.Created),
		CurrencyCode: row.Currency,
		Email:        row.Email,
		Telephone:    row.Telephone,
		Fio:          row.Fio,
		Statuses:     s.statuses.All(),
	}, nil
}

// PaymentAndDelivery 支付方式、配送方式和收货地址
func (s *OrderService) PaymentAndDelivery(ctx context.Context, orderID int64) (*dto.PaymentAndDeliveryResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errOrderNotFound(orderID)
	}

	payment := order.PaymentMethod
	if name, ok := s.store.PaymentMethods[payment]; ok {
		payment = name
	}

	shipping := ""
	if item, err := s.orderRepo.ShippingLineItem(ctx, orderID); err != nil {
		return nil, err
	} else if item != nil {
		shipping = item.Title
	}

	return &dto.PaymentAndDeliveryResponse{
		PaymentMethod:   payment,
		ShippingMethod:  shipping,
		ShippingAddress: composeAddress(order),
	}, nil
}

// composeAddress 收货地址拼接，跳过空段
func composeAddress(o *model.Order) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{
		strings.TrimSpace(o.DeliveryStreet1 + " " + o.DeliveryStreet2),
		o.DeliveryCity,
		o.DeliveryZone,
		o.DeliveryCountry,
	} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// OrderProducts 订单商品清单和金额汇总块
// total 是商品小计，total_price 是订单实付，差额记为折扣
func (s *OrderService) OrderProducts(ctx context.Context, orderID int64) (*dto.OrderProductsResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errOrderNotFound(orderID)
	}

	rows, err := s.orderRepo.Products(ctx, orderID)
	if err != nil {
		return nil, err
	}
	products := make([]dto.OrderProductItem, 0, len(rows))
	for _, row := range rows {
		products = append(products, dto.OrderProductItem{
			ProductID: row.ProductID,
			Name:      row.Name,
			Sku:       row.Sku,
			Quantity:  row.Quantity,
			Price:     row.Price,
			Image:     s.files.FileURL(row.ImageURI),
		})
	}

	subtotal, err := s.orderRepo.ProductsTotal(ctx, orderID)
	if err != nil {
		return nil, err
	}
	shippingPrice := 0.0
	if item, err := s.orderRepo.ShippingLineItem(ctx, orderID); err != nil {
		return nil, err
	} else if item != nil {
		shippingPrice = item.Amount
	}

	return &dto.OrderProductsResponse{
		Products: products,
		TotalOrderPrice: dto.OrderTotalBlock{
			CurrencyCode:  order.Currency,
			Total:         round2(subtotal),
			ShippingPrice: round2(shippingPrice),
			TotalPrice:    round2(order.OrderTotal),
			TotalDiscount: round2(subtotal + shippingPrice - order.OrderTotal),
		},
	}, nil
}

// OrderHistory 状态流转历史
// 首条是按订单创建时间合成的"结算中"记录；如果备注里没有"待处理"，
// 再从订单日志里找首次流转时间补一条合成记录
func (s *OrderService) OrderHistory(ctx context.Context, orderID int64) (*dto.OrderHistoryResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errOrderNotFound(orderID)
	}

	inCheckoutID := s.statuses.InCheckoutID()
	items := []dto.OrderHistoryItem{{
		Name:          s.statusName(inCheckoutID),
		OrderStatusID: inCheckoutID,
		DateAdded:     formatDate(order.Created),
	}}

	comments, err := s.orderRepo.Comments(ctx, orderID)
	if err != nil {
		return nil, err
	}
	pendingID := s.statuses.PendingID()
	pendingSeen := false
	for _, c := range comments {
		message := c.Message
		if message == emptyComment {
			message = ""
		}
		if c.OrderStatus == pendingID {
			pendingSeen = true
		}
		items = append(items, dto.OrderHistoryItem{
			Name:          s.statusName(c.OrderStatus),
			OrderStatusID: c.OrderStatus,
			DateAdded:     formatDate(c.Created),
			Comment:       message,
		})
	}

	if !pendingSeen && pendingID != "" {
		pendingName := s.statusName(pendingID)
		at, err := s.orderRepo.FirstLogTimeLike(ctx, orderID, "%"+pendingName+"%")
		if err != nil {
			return nil, err
		}
		if at != nil {
			items = append(items, dto.OrderHistoryItem{
				Name:          pendingName,
				OrderStatusID: pendingID,
				DateAdded:     formatDate(*at),
			})
		}
	}

	return &dto.OrderHistoryResponse{
		Orders:   items,
		Statuses: s.statuses.All(),
	}, nil
}

// ChangeStatus 订单状态流转：改订单、写备注、写日志
func (s *OrderService) ChangeStatus(ctx context.Context, adminUID, orderID int64, statusID, comment string, inform int) (*dto.ChangeStatusResponse, error) {
	newName, ok := s.statuses.Name(statusID)
	if !ok {
		return nil, ErrParameters
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errOrderNotFound(orderID)
	}

	now := s.now()
	rows, err := s.orderRepo.UpdateFields(ctx, orderID, map[string]interface{}{
		"order_status": statusID,
		"changed":      now,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrDatabaseUpdate
	}

	message := comment
	if message == "" {
		message = emptyComment
	}
	err = s.orderRepo.CreateComment(ctx, &model.OrderComment{
		OrderID:     orderID,
		UID:         adminUID,
		OrderStatus: statusID,
		Notified:    inform,
		Message:     message,
		Created:     now,
	})
	if err != nil {
		return nil, err
	}
	err = s.orderRepo.CreateLog(ctx, &model.OrderLog{
		OrderID: orderID,
		UID:     adminUID,
		Changes: fmt.Sprintf("Order status changed from %s to %s.", s.statusName(order.OrderStatus), newName),
		Created: now,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ChangeStatusResponse{
		Name:      newName,
		DateAdded: formatDate(now),
	}, nil
}

// Delivery 修改收货地址（街道/城市），每个字段单独记一条日志
func (s *OrderService) Delivery(ctx context.Context, adminUID, orderID int64, address, city string) error {
	if address == "" && city == "" {
		return ErrParameters
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return errOrderNotFound(orderID)
	}

	now := s.now()
	fields := map[string]interface{}{"changed": now}
	changes := make([]string, 0, 2)
	if address != "" {
		fields["delivery_street1"] = address
		changes = append(changes,
			fmt.Sprintf("Delivery street changed from %s to %s.", order.DeliveryStreet1, address))
	}
	if city != "" {
		fields["delivery_city"] = city
		changes = append(changes,
			fmt.Sprintf("Delivery city changed from %s to %s.", order.DeliveryCity, city))
	}

	rows, err := s.orderRepo.UpdateFields(ctx, orderID, fields)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDatabaseUpdate
	}
	for _, c := range changes {
		err = s.orderRepo.CreateLog(ctx, &model.OrderLog{
			OrderID: orderID,
			UID:     adminUID,
			Changes: c,
			Created: now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
