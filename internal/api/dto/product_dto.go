package dto

import (
	"ucmob_admin/internal/model"
	"ucmob_admin/internal/repository"
)

// ProductsRequest 商品组请求
type ProductsRequest struct {
	Route       string  `form:"route"`
	ProductID   int64   `form:"product_id"`
	Name        string  `form:"name"`
	Sku         string  `form:"sku"`
	Status      string  `form:"status"`
	Price       float64 `form:"price"`
	Description string  `form:"description"`
	// 库存 0 和未提交要区分，所以用指针
	Quantity   *int    `form:"quantity"`
	Categories []int64 `form:"categories"`
	ImageIDs   []int64 `form:"image_ids"`
	CategoryID int64   `form:"category_id"`
	ImageID    int64   `form:"image_id"`
	Page       int     `form:"page"`
	Limit      int     `form:"limit"`
}

// ProductItem 商品列表项
type ProductItem struct {
	ProductID    int64   `json:"product_id"`
	Name         string  `json:"name"`
	Sku          string  `json:"sku"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	Category     string  `json:"category"`
	CurrencyCode string  `json:"currency_code"`
}

// ProductsResponse 商品列表响应
type ProductsResponse struct {
	Products []ProductItem `json:"products"`
}

// ProductImageItem 商品图片项（主图的 image_id 对外报 -1）
type ProductImageItem struct {
	ImageID int64  `json:"image_id"`
	Image   string `json:"image"`
}

// ProductInfoResponse 商品详情响应
type ProductInfoResponse struct {
	ProductID    int64                    `json:"product_id"`
	Name         string                   `json:"name"`
	Sku          string                   `json:"sku"`
	Quantity     int                      `json:"quantity"`
	Price        float64                  `json:"price"`
	Description  string                   `json:"description"`
	StatusName   string                   `json:"status_name"`
	CurrencyCode string                   `json:"currency_code"`
	Images       []ProductImageItem       `json:"images"`
	Categories   []repository.CategoryRow `json:"categories"`
	Statuses     []model.ProductStatus    `json:"statuses"`
}

// CategoryItem 分类项（parent 表示还有下级）
type CategoryItem struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	Parent     bool   `json:"parent"`
}

// CategoriesResponse 分类响应
type CategoriesResponse struct {
	Categories []CategoryItem `json:"categories"`
}

// SubstatusResponse 商品状态目录响应
type SubstatusResponse struct {
	Statuses []model.ProductStatus `json:"statuses"`
}

// UpdateProductResponse 新建/更新商品响应
type UpdateProductResponse struct {
	ProductID int64              `json:"product_id"`
	Images    []ProductImageItem `json:"images"`
}
