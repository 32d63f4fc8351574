package model

import "time"

// ==================== 订单投影 ====================
// 店面订单表，本服务是二级读写方

// Order 订单
type Order struct {
	OrderID      int64   `gorm:"column:order_id;primaryKey;autoIncrement"`
	UID          int64   `gorm:"column:uid;index"`
	OrderStatus  string  `gorm:"size:32;index"`
	OrderTotal   float64 `gorm:"column:order_total"`
	Currency     string  `gorm:"size:5"`
	PrimaryEmail string  `gorm:"size:255"`

	// 账单信息
	BillingFirstName string `gorm:"size:255"`
	BillingLastName  string `gorm:"size:255"`
	BillingPhone     string `gorm:"size:64"`

	// 收货信息
	DeliveryFirstName string `gorm:"size:255"`
	DeliveryLastName  string `gorm:"size:255"`
	DeliveryStreet1   string `gorm:"size:255"`
	DeliveryStreet2   string `gorm:"size:255"`
	DeliveryCity      string `gorm:"size:255"`
	DeliveryZone      string `gorm:"size:64"`
	DeliveryCountry   string `gorm:"size:64"`

	PaymentMethod string `gorm:"size:64"`

	Created time.Time `gorm:"index"`
	Changed time.Time
}

func (Order) TableName() string {
	return "uc_orders"
}

// OrderProduct 订单商品行
type OrderProduct struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	OrderID   int64  `gorm:"index;not null"`
	ProductID int64  `gorm:"column:nid;index"`
	Title     string `gorm:"size:255"`
	Model     string `gorm:"size:255"` // SKU
	Qty       int
	Price     float64
}

func (OrderProduct) TableName() string {
	return "uc_order_products"
}

// 行项目类型
const (
	LineItemShipping = "shipping"
)

// OrderLineItem 订单附加行项目（运费等）
type OrderLineItem struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	OrderID int64  `gorm:"index;not null"`
	Type    string `gorm:"size:32;index"`
	Title   string `gorm:"size:255"`
	Amount  float64
}

func (OrderLineItem) TableName() string {
	return "uc_order_line_items"
}

// OrderComment 订单状态备注，状态每次变更都会写一条
type OrderComment struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	OrderID     int64  `gorm:"index;not null"`
	UID         int64  `gorm:"column:uid"`
	OrderStatus string `gorm:"size:32"`
	Notified    int    `gorm:"default:0"`
	Message     string `gorm:"type:text"`
	Created     time.Time
}

func (OrderComment) TableName() string {
	return "uc_order_comments"
}

// OrderLog 订单修改日志（纯文本 changes 记录）
type OrderLog struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	OrderID int64  `gorm:"index;not null"`
	UID     int64  `gorm:"column:uid"`
	Changes string `gorm:"type:text"`
	Created time.Time
}

func (OrderLog) TableName() string {
	return "uc_order_log"
}
