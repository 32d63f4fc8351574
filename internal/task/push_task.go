package task

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ucmob_admin/internal/service"
)

// ==================== PushTask 新订单推送巡检 ====================

// PushTask 定时对比最大订单号，有新单就推一轮
// 首轮只记水位不推，避免服务重启时把旧单当新单
type PushTask struct {
	pushSvc *service.PushService
	log     *zap.Logger
	cron    *cron.Cron

	mu        sync.Mutex
	lastMaxID int64
	primed    bool
}

// NewPushTask 创建推送巡检任务
func NewPushTask(pushSvc *service.PushService, log *zap.Logger) *PushTask {
	return &PushTask{
		pushSvc: pushSvc,
		log:     log,
		cron:    cron.New(cron.WithSeconds()),
	}
}

// Start 每 30 秒巡检一次
func (t *PushTask) Start() error {
	if _, err := t.cron.AddFunc("*/30 * * * * *", t.check); err != nil {
		return err
	}
	t.cron.Start()
	t.log.Info("推送巡检任务已启动")
	return nil
}

// Stop 停止巡检，等执行中的一轮跑完
func (t *PushTask) Stop() {
	<-t.cron.Stop().Done()
	t.log.Info("推送巡检任务已停止")
}

func (t *PushTask) check() {
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	maxID, err := t.pushSvc.MaxOrderID(ctx)
	if err != nil {
		t.log.Warn("查询最大订单号失败", zap.Error(err))
		return
	}

	t.mu.Lock()
	primed := t.primed
	advanced := maxID > t.lastMaxID
	t.lastMaxID = maxID
	t.primed = true
	t.mu.Unlock()

	if !primed || !advanced {
		return
	}

	t.log.Info("发现新订单", zap.Int64("order_id", maxID))
	if err := t.pushSvc.Dispatch(ctx); err != nil {
		t.log.Warn("新订单推送失败", zap.Error(err))
	}
}
