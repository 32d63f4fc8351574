package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"ucmob_admin/internal/model"
)

// 统计周期
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// StatsRepository 仪表盘统计查询接口
// 时间桶谓词是 Postgres date_part 写法，所以单独拆一个接口，
// 统计服务的单测用内存假实现替换
type StatsRepository interface {
	CountOrdersInBucket(ctx context.Context, period string, bucket int) (int64, error)
	CountClientsInBucket(ctx context.Context, period string, bucket int) (int64, error)
	YearTotalSum(ctx context.Context, blocked []string) (float64, error)
}

type statsRepo struct {
	db *gorm.DB
}

// NewStatsRepository 创建统计仓储
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepo{db: db}
}

// bucketCond 返回"created 落在当前周期第 bucket 桶"的谓词
// day: 当天按小时；week: 当周按星期（周一为 0）；month: 当月按日；year: 当年按月
func bucketCond(period string, bucket int) (string, int, error) {
	switch period {
	case PeriodDay:
		return "date_part('day', created) = date_part('day', now()) AND date_part('hour', created) = ?", bucket, nil
	case PeriodWeek:
		return "date_part('week', created) = date_part('week', now()) AND date_part('isodow', created) = ?", bucket + 1, nil
	case PeriodMonth:
		return "date_part('month', created) = date_part('month', now()) AND date_part('day', created) = ?", bucket, nil
	case PeriodYear:
		return "date_part('year', created) = date_part('year', now()) AND date_part('month', created) = ?", bucket, nil
	}
	return "", 0, fmt.Errorf("unknown period %q", period)
}

func (r *statsRepo) CountOrdersInBucket(ctx context.Context, period string, bucket int) (int64, error) {
	cond, arg, err := bucketCond(period, bucket)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where(cond, arg).
		Count(&count).Error
	return count, err
}

func (r *statsRepo) CountClientsInBucket(ctx context.Context, period string, bucket int) (int64, error) {
	cond, arg, err := bucketCond(period, bucket)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid > 0").
		Where(cond, arg).
		Count(&count).Error
	return count, err
}

func (r *statsRepo) YearTotalSum(ctx context.Context, blocked []string) (float64, error) {
	var sum float64
	q := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COALESCE(SUM(order_total), 0)").
		Where("date_part('year', created) = date_part('year', now())")
	q = excludeStatuses(q, blocked)
	err := q.Scan(&sum).Error
	return sum, err
}
