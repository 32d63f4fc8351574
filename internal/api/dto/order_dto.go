package dto

import "ucmob_admin/internal/model"

// ==================== 请求 ====================

// OrdersRequest 订单组请求（route 决定走哪个操作）
type OrdersRequest struct {
	Route         string  `form:"route"`
	OrderID       int64   `form:"order_id"`
	Filter        string  `form:"filter"`
	Fio           string  `form:"fio"`
	OrderStatusID string  `form:"order_status_id"`
	MinPrice      float64 `form:"min_price"`
	MaxPrice      float64 `form:"max_price"`
	DateMin       string  `form:"date_min"`
	DateMax       string  `form:"date_max"`
	StatusID      string  `form:"status_id"`
	Comment       string  `form:"comment"`
	Inform        int     `form:"inform"`
	Address       string  `form:"address"`
	City          string  `form:"city"`
	Page          int     `form:"page"`
	Limit         int     `form:"limit"`
}

// ==================== 响应 ====================

// OrderListItem 订单列表项
type OrderListItem struct {
	OrderID      int64   `json:"order_id"`
	OrderNumber  int64   `json:"order_number"`
	Fio          string  `json:"fio,omitempty"`
	Status       string  `json:"status"`
	Total        float64 `json:"total"`
	DateAdded    string  `json:"date_added"`
	CurrencyCode string  `json:"currency_code"`
}

// OrdersResponse 订单列表响应
type OrdersResponse struct {
	Orders        []OrderListItem     `json:"orders"`
	Statuses      []model.OrderStatus `json:"statuses"`
	CurrencyCode  string              `json:"currency_code"`
	TotalQuantity int64               `json:"total_quantity"`
	TotalSum      float64             `json:"total_sum"`
	MaxPrice      float64             `json:"max_price"`
}

// OrderInfoResponse 订单详情响应
type OrderInfoResponse struct {
	OrderNumber  int64               `json:"order_number"`
	Status       string              `json:"status"`
	Total        float64             `json:"total"`
	DateAdded    string              `json:"date_added"`
	CurrencyCode string              `json:"currency_code"`
	Email        string              `json:"email"`
	Telephone    string              `json:"telephone"`
	Fio          string              `json:"fio"`
	Statuses     []model.OrderStatus `json:"statuses"`
}

// PaymentAndDeliveryResponse 支付与配送响应
type PaymentAndDeliveryResponse struct {
	PaymentMethod   string `json:"payment_method"`
	ShippingMethod  string `json:"shipping_method"`
	ShippingAddress string `json:"shipping_address"`
}

// OrderProductItem 订单商品项
type OrderProductItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Sku       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// OrderTotalBlock 订单金额汇总块
type OrderTotalBlock struct {
	CurrencyCode  string  `json:"currency_code"`
	Total         float64 `json:"total"`
	ShippingPrice float64 `json:"shipping_price"`
	TotalPrice    float64 `json:"total_price"`
	TotalDiscount float64 `json:"total_discount"`
}

// OrderProductsResponse 订单商品响应
type OrderProductsResponse struct {
	Products        []OrderProductItem `json:"products"`
	TotalOrderPrice OrderTotalBlock    `json:"total_order_price"`
}

// OrderHistoryItem 订单历史项
type OrderHistoryItem struct {
	Name          string `json:"name"`
	OrderStatusID string `json:"order_status_id"`
	DateAdded     string `json:"date_added"`
	Comment       string `json:"comment"`
}

// OrderHistoryResponse 订单历史响应
type OrderHistoryResponse struct {
	Orders   []OrderHistoryItem  `json:"orders"`
	Statuses []model.OrderStatus `json:"statuses"`
}

// ChangeStatusResponse 改状态响应
type ChangeStatusResponse struct {
	Name      string `json:"name"`
	DateAdded string `json:"date_added"`
}

// StatisticResponse 仪表盘统计响应
type StatisticResponse struct {
	XAxis         []int   `json:"xAxis"`
	Clients       []int64 `json:"clients"`
	Orders        []int64 `json:"orders"`
	TotalSales    float64 `json:"total_sales"`
	SaleYearTotal float64 `json:"sale_year_total"`
	CurrencyCode  string  `json:"currency_code"`
	OrdersTotal   int64   `json:"orders_total"`
	ClientsTotal  int64   `json:"clients_total"`
}
