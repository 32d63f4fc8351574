package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"ucmob_admin/internal/config"
	"ucmob_admin/internal/model"
	"ucmob_admin/internal/repository"
)

// ==================== 推送载荷 ====================

// pushNotification iOS 系统通知块
type pushNotification struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Vibrate  int    `json:"vibrate"`
	Sound    int    `json:"sound"`
	Priority string `json:"priority"`
}

// newOrderData 业务数据块，两个端都带
// site_url 让客户端知道是哪个店面来的事件
type newOrderData struct {
	EventType string       `json:"event_type"`
	SiteURL   string       `json:"site_url"`
	NewOrder  orderPayload `json:"new_order"`
}

type orderPayload struct {
	OrderID      int64   `json:"order_id"`
	Total        float64 `json:"total"`
	CurrencyCode string  `json:"currency_code"`
}

// iosPush iOS 走系统通知，data 附带业务数据
type iosPush struct {
	RegistrationIDs []string         `json:"registration_ids"`
	Notification    pushNotification `json:"notification"`
	Data            newOrderData     `json:"data"`
}

// androidPush Android 全走 data，通知由客户端自己渲染
type androidPush struct {
	RegistrationIDs []string     `json:"registration_ids"`
	Data            newOrderData `json:"data"`
}

const eventNewOrder = "new_order"

// ==================== PushService 新订单推送 ====================

// PushService 把最新订单推给所有注册设备
// 发送是尽力而为：网关响应只记日志，不重试不回查
type PushService struct {
	orderRepo  repository.OrderRepository
	deviceRepo repository.DeviceRepository
	client     *resty.Client
	cfg        config.FCMConfig
	siteURL    string
	log        *zap.Logger
}

// NewPushService 创建推送服务
func NewPushService(
	orderRepo repository.OrderRepository,
	deviceRepo repository.DeviceRepository,
	cfg config.FCMConfig,
	store config.StoreConfig,
	log *zap.Logger,
) *PushService {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &PushService{
		orderRepo:  orderRepo,
		deviceRepo: deviceRepo,
		client:     client,
		cfg:        cfg,
		siteURL:    store.SiteURL,
		log:        log,
	}
}

// MaxOrderID 当前最大订单号，定时任务用来判断有没有新单
func (s *PushService) MaxOrderID(ctx context.Context) (int64, error) {
	return s.orderRepo.MaxOrderID(ctx)
}

// Dispatch 对最新订单做一轮推送
// 设备按系统分成 iOS 和其余两批，各发一次网关请求
func (s *PushService) Dispatch(ctx context.Context) error {
	maxID, err := s.orderRepo.MaxOrderID(ctx)
	if err != nil {
		return err
	}
	if maxID == 0 {
		return nil
	}
	order, err := s.orderRepo.GetByID(ctx, maxID)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}

	devices, err := s.deviceRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	var ios, android []string
	for _, d := range devices {
		if d.OsType == model.OsTypeIOS {
			ios = append(ios, d.DeviceToken)
		} else {
			android = append(android, d.DeviceToken)
		}
	}
	if len(ios) == 0 && len(android) == 0 {
		return nil
	}

	data := newOrderData{
		EventType: eventNewOrder,
		SiteURL:   s.siteURL,
		NewOrder: orderPayload{
			OrderID:      order.OrderID,
			Total:        order.OrderTotal,
			CurrencyCode: order.Currency,
		},
	}

	if len(ios) > 0 {
		body := iosPush{
			RegistrationIDs: ios,
			Notification: pushNotification{
				Title:    "New order",
				Body:     fmt.Sprintf("Order #%d on %.2f %s", order.OrderID, order.OrderTotal, order.Currency),
				Vibrate:  1,
				Sound:    1,
				Priority: "high",
			},
			Data: data,
		}
		s.send(ctx, "ios", body)
	}
	if len(android) > 0 {
		body := androidPush{
			RegistrationIDs: android,
			Data:            data,
		}
		s.send(ctx, "android", body)
	}
	return nil
}

func (s *PushService) send(ctx context.Context, family string, body interface{}) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "key="+s.cfg.ServerKey).
		SetBody(body).
		Post(s.cfg.URL)
	if err != nil {
		s.log.Warn("推送网关请求失败",
			zap.String("family", family),
			zap.Error(err))
		return
	}
	s.log.Info("推送已发送",
		zap.String("family", family),
		zap.Int("status", resp.StatusCode()),
		zap.String("body", resp.String()))
}
