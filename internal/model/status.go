package model

// ==================== 状态目录 ====================
// 原系统把状态序列化存在 config 表里每次请求重新解析，
// 这里改为启动时构建一次的只读目录，按值传给用到的服务

// 订单状态 state 分类
const (
	StateInCheckout = "in_checkout"
	StatePending    = "pending"
	StateCompleted  = "completed"
	StateCanceled   = "canceled"
)

// OrderStatus 单个订单状态定义
type OrderStatus struct {
	ID         string `json:"order_status_id"`
	Name       string `json:"name"`
	LanguageID string `json:"language_id"`
	State      string `json:"-"`
}

// OrderStatusCatalog 订单状态目录
type OrderStatusCatalog struct {
	statuses []OrderStatus
}

// NewOrderStatusCatalog 构建目录
func NewOrderStatusCatalog(statuses []OrderStatus) *OrderStatusCatalog {
	return &OrderStatusCatalog{statuses: statuses}
}

// All 全部状态（响应里的 statuses 列表）
func (c *OrderStatusCatalog) All() []OrderStatus {
	out := make([]OrderStatus, len(c.statuses))
	copy(out, c.statuses)
	return out
}

// Name 按 id 取展示名，未知 id 返回 ok=false
func (c *OrderStatusCatalog) Name(id string) (string, bool) {
	for _, s := range c.statuses {
		if s.ID == id {
			return s.Name, true
		}
	}
	return "", false
}

// IDsByState 按 state 取状态 id 集合
func (c *OrderStatusCatalog) IDsByState(state string) []string {
	var ids []string
	for _, s := range c.statuses {
		if s.State == state {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// BlockedIDs 被排除在营收/数量统计外的状态：已取消 + 结算中
func (c *OrderStatusCatalog) BlockedIDs() []string {
	blocked := c.IDsByState(StateCanceled)
	return append(blocked, c.IDsByState(StateInCheckout)...)
}

// CompletedIDs 已完成状态集合
func (c *OrderStatusCatalog) CompletedIDs() []string {
	return c.IDsByState(StateCompleted)
}

// InCheckoutID 结算中状态 id（订单历史的首条合成记录用）
func (c *OrderStatusCatalog) InCheckoutID() string {
	if ids := c.IDsByState(StateInCheckout); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// PendingID 待处理状态 id
func (c *OrderStatusCatalog) PendingID() string {
	if ids := c.IDsByState(StatePending); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// ==================== 商品状态目录 ====================

// ProductStatus 单个商品状态定义
type ProductStatus struct {
	ID   string `json:"status_id"`
	Name string `json:"name"`
}

// ProductStatusCatalog 商品状态目录
type ProductStatusCatalog struct {
	statuses []ProductStatus
}

// NewProductStatusCatalog 构建目录
func NewProductStatusCatalog(statuses []ProductStatus) *ProductStatusCatalog {
	return &ProductStatusCatalog{statuses: statuses}
}

// All 全部商品状态
func (c *ProductStatusCatalog) All() []ProductStatus {
	out := make([]ProductStatus, len(c.statuses))
	copy(out, c.statuses)
	return out
}

// Name 按 id 取展示名，未知 id 原样返回
func (c *ProductStatusCatalog) Name(id string) string {
	for _, s := range c.statuses {
		if s.ID == id {
			return s.Name
		}
	}
	return id
}
