package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"ucmob_admin/internal/model"
)

// ==================== 过滤条件 ====================

// OrderFilter 订单列表过滤条件
type OrderFilter struct {
	Fio      string
	StatusID string
	MinPrice float64
	MaxPrice float64
	DateMin  *time.Time
	DateMax  *time.Time
	Page     int
	Limit    int
}

// ClientFilter 客户列表过滤条件
type ClientFilter struct {
	Fio   string
	Sort  string // sum / quantity / 默认按 client_id
	Page  int
	Limit int
}

// ==================== 查询行 ====================

// OrderListRow 订单列表行（status 存原始 id，由服务层换成展示名）
type OrderListRow struct {
	OrderID  int64
	Fio      string
	Status   string
	Total    float64
	Created  time.Time
	Currency string
}

// OrderInfoRow 订单详情行
type OrderInfoRow struct {
	OrderID   int64
	Fio       string
	Status    string
	Total     float64
	Created   time.Time
	Currency  string
	Email     string
	Telephone string
}

// OrderProductRow 订单商品行（带主图 URI）
type OrderProductRow struct {
	ProductID int64
	Name      string
	Sku       string
	Quantity  int
	Price     float64
	ImageURI  string
}

// ClientSummaryRow 客户聚合行
type ClientSummaryRow struct {
	ClientID int64
	Fio      string
	Total    float64
	Quantity int64
	Currency string
}

// ==================== 接口定义 ====================

// OrderRepository 订单仓储接口
type OrderRepository interface {
	List(ctx context.Context, f OrderFilter) ([]OrderListRow, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetInfo(ctx context.Context, id int64) (*OrderInfoRow, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) (int64, error)

	ShippingLineItem(ctx context.Context, orderID int64) (*model.OrderLineItem, error)
	Products(ctx context.Context, orderID int64) ([]OrderProductRow, error)
	ProductsTotal(ctx context.Context, orderID int64) (float64, error)

	Comments(ctx context.Context, orderID int64) ([]model.OrderComment, error)
	CreateComment(ctx context.Context, c *model.OrderComment) error
	CreateLog(ctx context.Context, l *model.OrderLog) error
	FirstLogTimeLike(ctx context.Context, orderID int64, pattern string) (*time.Time, error)

	// 聚合统计（blocked 状态不计入营收/数量，uid = 0 表示全部客户）
	TotalSum(ctx context.Context, blocked []string, uid int64) (float64, error)
	Count(ctx context.Context, blocked []string, uid int64) (int64, error)
	CountByStatuses(ctx context.Context, uid int64, statuses []string) (int64, error)
	MaxTotal(ctx context.Context, blocked []string) (float64, error)
	MaxOrderID(ctx context.Context) (int64, error)
	LatestBillingPhone(ctx context.Context, uid int64) (string, error)

	ClientSummaries(ctx context.Context, f ClientFilter, blocked []string) ([]ClientSummaryRow, error)
	ClientOrders(ctx context.Context, uid int64, sort string, completed []string) ([]OrderListRow, error)
}

// ==================== 仓储实现 ====================

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

// fio 展示格式：用户名 (账单名 姓)
const fioExpr = "u.name || ' (' || o.billing_first_name || ' ' || o.billing_last_name || ')'"

func (r *orderRepo) List(ctx context.Context, f OrderFilter) ([]OrderListRow, error) {
	q := r.db.WithContext(ctx).
		Table("uc_orders o").
		Select("o.order_id AS order_id, "+fioExpr+" AS fio, "+
			"o.order_status AS status, o.order_total AS total, "+
			"o.created AS created, o.currency AS currency").
		Joins("JOIN users u ON u.uid = o.uid")

	if f.Fio != "" {
		parts := strings.Fields(f.Fio)
		cond := r.db.Where("u.name LIKE ?", "%"+parts[0]+"%")
		for _, p := range parts {
			p = strings.Trim(p, "()")
			cond = cond.Or("o.billing_first_name LIKE ? OR o.billing_last_name LIKE ?",
				"%"+p+"%", "%"+p+"%")
		}
		q = q.Where(cond)
	}
	if f.StatusID != "" {
		q = q.Where("o.order_status = ?", f.StatusID)
	}
	if f.MinPrice > 0 {
		q = q.Where("o.order_total >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("o.order_total <= ?", f.MaxPrice)
	}
	if f.DateMin != nil {
		q = q.Where("o.created >= ?", *f.DateMin)
	}
	if f.DateMax != nil {
		q = q.Where("o.created <= ?", *f.DateMax)
	}

	q = q.Order("o.order_id DESC")
	q = applyRange(q, f.Page, f.Limit)

	var rows []OrderListRow
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).First(&o, "order_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) GetInfo(ctx context.Context, id int64) (*OrderInfoRow, error) {
	var row OrderInfoRow
	res := r.db.WithContext(ctx).
		Table("uc_orders o").
		Select("o.order_id AS order_id, "+fioExpr+" AS fio, "+
			"o.order_status AS status, o.order_total AS total, "+
			"o.created AS created, o.currency AS currency, "+
			"o.primary_email AS email, o.billing_phone AS telephone").
		Joins("JOIN users u ON u.uid = o.uid").
		Where("o.order_id = ?", id).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *orderRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("order_id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *orderRepo) ShippingLineItem(ctx context.Context, orderID int64) (*model.OrderLineItem, error) {
	var item model.OrderLineItem
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND type = ?", orderID, model.LineItemShipping).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderRepo) Products(ctx context.Context, orderID int64) ([]OrderProductRow, error) {
	var rows []OrderProductRow
	err := r.db.WithContext(ctx).
		Table("uc_order_products p").
		Select("p.nid AS product_id, p.title AS name, p.model AS sku, "+
			"p.qty AS quantity, p.price AS price, f.uri AS image_uri").
		Joins("LEFT JOIN uc_product_images pi ON pi.product_id = p.nid AND pi.delta = 0").
		Joins("LEFT JOIN file_managed f ON f.fid = pi.file_id").
		Where("p.order_id = ?", orderID).
		Scan(&rows).Error
	return rows, err
}

func (r *orderRepo) ProductsTotal(ctx context.Context, orderID int64) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&model.OrderProduct{}).
		Select("COALESCE(SUM(price * qty), 0)").
		Where("order_id = ?", orderID).
		Scan(&total).Error
	return total, err
}

func (r *orderRepo) Comments(ctx context.Context, orderID int64) ([]model.OrderComment, error) {
	var comments []model.OrderComment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created").
		Find(&comments).Error
	return comments, err
}

func (r *orderRepo) CreateComment(ctx context.Context, c *model.OrderComment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *orderRepo) CreateLog(ctx context.Context, l *model.OrderLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *orderRepo) FirstLogTimeLike(ctx context.Context, orderID int64, pattern string) (*time.Time, error) {
	var l model.OrderLog
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND changes LIKE ?", orderID, pattern).
		Order("created").
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l.Created, nil
}

func (r *orderRepo) TotalSum(ctx context.Context, blocked []string, uid int64) (float64, error) {
	var sum float64
	q := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COALESCE(SUM(order_total), 0)")
	q = excludeStatuses(q, blocked)
	if uid > 0 {
		q = q.Where("uid = ?", uid)
	}
	err := q.Scan(&sum).Error
	return sum, err
}

func (r *orderRepo) Count(ctx context.Context, blocked []string, uid int64) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Order{})
	q = excludeStatuses(q, blocked)
	if uid > 0 {
		q = q.Where("uid = ?", uid)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *orderRepo) CountByStatuses(ctx context.Context, uid int64, statuses []string) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("uid = ? AND order_status IN ?", uid, statuses).
		Count(&count).Error
	return count, err
}

func (r *orderRepo) MaxTotal(ctx context.Context, blocked []string) (float64, error) {
	var max float64
	q := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COALESCE(MAX(order_total), 0)")
	q = excludeStatuses(q, blocked)
	err := q.Scan(&max).Error
	return max, err
}

func (r *orderRepo) MaxOrderID(ctx context.Context) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COALESCE(MAX(order_id), 0)").
		Scan(&id).Error
	return id, err
}

func (r *orderRepo) LatestBillingPhone(ctx context.Context, uid int64) (string, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Where("uid = ? AND billing_phone <> ''", uid).
		Order("order_id DESC").
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return o.BillingPhone, nil
}

func (r *orderRepo) ClientSummaries(ctx context.Context, f ClientFilter, blocked []string) ([]ClientSummaryRow, error) {
	q := r.db.WithContext(ctx).
		Table("uc_orders o").
		Select("o.uid AS client_id, " +
			"(SELECT u.name FROM users u WHERE u.uid = o.uid) AS fio, " +
			"SUM(o.order_total) AS total, COUNT(*) AS quantity, " +
			"(SELECT x.currency FROM uc_orders x WHERE x.uid = o.uid LIMIT 1) AS currency")
	if len(blocked) > 0 {
		q = q.Where("o.order_status NOT IN ?", blocked)
	}
	if f.Fio != "" {
		first := strings.Fields(f.Fio)[0]
		q = q.Joins("JOIN users u ON u.uid = o.uid").
			Where("u.name LIKE ?", "%"+first+"%")
	}
	q = q.Group("o.uid")

	switch f.Sort {
	case "sum":
		q = q.Order("total DESC")
	case "quantity":
		q = q.Order("quantity DESC")
	default:
		q = q.Order("client_id DESC")
	}
	q = applyRange(q, f.Page, f.Limit)

	var rows []ClientSummaryRow
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *orderRepo) ClientOrders(ctx context.Context, uid int64, sort string, completed []string) ([]OrderListRow, error) {
	q := r.db.WithContext(ctx).
		Table("uc_orders o").
		Where("o.uid = ?", uid)

	switch sort {
	case "sum":
		q = q.Select(clientOrderColumns).Order("total DESC")
	case "completed":
		if len(completed) > 0 {
			q = q.Select(clientOrderColumns+", CASE WHEN o.order_status IN ? THEN 1 ELSE 0 END AS completed_flag",
				completed).
				Order("completed_flag DESC")
		} else {
			q = q.Select(clientOrderColumns).Order("o.order_id DESC")
		}
	default:
		q = q.Select(clientOrderColumns).Order("o.order_id DESC")
	}

	var rows []OrderListRow
	err := q.Scan(&rows).Error
	return rows, err
}

const clientOrderColumns = "o.order_id AS order_id, o.order_status AS status, " +
	"o.order_total AS total, o.created AS created, o.currency AS currency"

// ==================== 辅助 ====================

// applyRange 1-based page + limit 翻页，limit <= 0 不分页
func applyRange(q *gorm.DB, page, limit int) *gorm.DB {
	if limit <= 0 {
		return q
	}
	if page < 1 {
		page = 1
	}
	return q.Offset(limit*page - limit).Limit(limit)
}

func excludeStatuses(q *gorm.DB, blocked []string) *gorm.DB {
	if len(blocked) == 0 {
		return q
	}
	return q.Where("order_status NOT IN ?", blocked)
}
