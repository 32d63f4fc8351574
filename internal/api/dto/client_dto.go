package dto

// ClientsRequest 客户组请求
type ClientsRequest struct {
	Route    string `form:"route"`
	ClientID int64  `form:"client_id"`
	Fio      string `form:"fio"`
	Sort     string `form:"sort"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// ClientItem 客户聚合项
type ClientItem struct {
	ClientID     int64   `json:"client_id"`
	Fio          string  `json:"fio"`
	Total        float64 `json:"total"`
	Quantity     int64   `json:"quantity"`
	CurrencyCode string  `json:"currency_code"`
}

// ClientsResponse 客户列表响应
type ClientsResponse struct {
	Clients []ClientItem `json:"clients"`
}

// ClientInfoResponse 客户详情响应
type ClientInfoResponse struct {
	ClientID     int64   `json:"client_id"`
	Fio          string  `json:"fio"`
	Email        string  `json:"email"`
	Telephone    string  `json:"telephone"`
	Total        float64 `json:"total"`
	Quantity     int64   `json:"quantity"`
	Completed    int64   `json:"completed"`
	CurrencyCode string  `json:"currency_code"`
}

// ClientOrdersResponse 客户订单响应
type ClientOrdersResponse struct {
	Orders []OrderListItem `json:"orders"`
}
