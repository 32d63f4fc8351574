package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ucmob_admin/internal/api/dto"
	"ucmob_admin/internal/config"
	"ucmob_admin/internal/model"
	"ucmob_admin/internal/repository"
	"ucmob_admin/pkg/utils"
)

var (
	// ErrNoProducts 列表查询没有命中任何商品
	ErrNoProducts = errors.New("No product found")
	// ErrZeroProduct 商品组路由带了 product_id = 0（历史接口的原文）
	ErrZeroProduct = errors.New("Can not found product with id = 0")
	// ErrMissingParams 新建商品缺 name/sku
	ErrMissingParams = errors.New("Missing some params")
)

func errProductNotFound(id int64) error {
	return fmt.Errorf("Could not find product with id = %d", id)
}

func errCategoryNotFound(id int64) error {
	return fmt.Errorf("Could not find category with id = %d", id)
}

// ==================== ProductService 商品服务 ====================

// ProductService 商品目录、库存、分类和图册
type ProductService struct {
	productRepo repository.ProductRepository
	imageSvc    *ImageService
	statuses    *model.ProductStatusCatalog
	store       config.StoreConfig
	files       config.FilesConfig
	now         func() time.Time
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	imageSvc *ImageService,
	statuses *model.ProductStatusCatalog,
	store config.StoreConfig,
	files config.FilesConfig,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		imageSvc:    imageSvc,
		statuses:    statuses,
		store:       store,
		files:       files,
		now:         time.Now,
	}
}

// stockQuantity nid 联查没有命中时按 SKU 兜底
func (s *ProductService) stockQuantity(ctx context.Context, joined bool, joinedValue int64, sku string) (int, error) {
	if joined {
		return int(joinedValue), nil
	}
	if sku == "" {
		return 0, nil
	}
	stock, err := s.productRepo.FindStockBySKU(ctx, sku)
	if err != nil {
		return 0, err
	}
	if stock == nil {
		return 0, nil
	}
	return stock.Stock, nil
}

// Products 商品列表，最新在前
func (s *ProductService) Products(ctx context.Context, req *dto.ProductsRequest) (*dto.ProductsResponse, error) {
	rows, err := s.productRepo.List(ctx, repository.ProductFilter{
		Name:  req.Name,
		Page:  req.Page,
		Limit: req.Limit,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoProducts
	}

	resp := &dto.ProductsResponse{Products: make([]dto.ProductItem, 0, len(rows))}
	for _, row := range rows {
		quantity, err := s.stockQuantity(ctx, row.Quantity.Valid, row.Quantity.Int64, row.Sku)
		if err != nil {
			return nil, err
		}
		resp.Products = append(resp.Products, dto.ProductItem{
			ProductID:    row.ProductID,
			Name:         row.Name,
			Sku:          row.Sku,
			Quantity:     quantity,
			Price:        row.Price,
			Image:        s.files.FileURL(row.ImageURI.String),
			Category:     row.Category.String,
			CurrencyCode: s.store.Currency,
		})
	}
	return resp, nil
}

// ProductInfo 商品详情：描述、库存、分类、图册、状态目录
func (s *ProductService) ProductInfo(ctx context.Context, productID int64) (*dto.ProductInfoResponse, error) {
	if productID == 0 {
		return nil, ErrZeroProduct
	}
	row, err := s.productRepo.GetInfo(ctx, productID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errProductNotFound(productID)
	}

	quantity, err := s.stockQuantity(ctx, row.Quantity.Valid, row.Quantity.Int64, row.Sku)
	if err != nil {
		return nil, err
	}
	categories, err := s.productRepo.Categories(ctx, productID)
	if err != nil {
		return nil, err
	}
	images, err := s.imageSvc.Images(ctx, productID)
	if err != nil {
		return nil, err
	}

	// 描述里的存储 URI 换成对外 URL，富文本里嵌的图片才能显示。
	// 渲染结果进缓存，商品或图册变更时按 node key 清理
	description, cached := utils.GetProductCache(productID)
	if !cached {
		description = strings.ReplaceAll(row.Description,
			"public://", strings.TrimRight(s.files.BaseURL, "/")+"/")
		utils.SetProductCache(productID, description)
	}

	return &dto.ProductInfoResponse{
		ProductID:    row.ProductID,
		Name:         row.Name,
		Sku:          row.Sku,
		Quantity:     quantity,
		Price:        row.Price,
		Description:  description,
		StatusName:   s.statuses.Name(row.Status),
		CurrencyCode: s.store.Currency,
		Images:       images,
		Categories:   categories,
		Statuses:     s.statuses.All(),
	}, nil
}

// Categories 分类树下钻：返回 category_id 的直接子级
// id < 1 视为根；叶子分类返回自身；parent 标记该行还有没有下级
func (s *ProductService) Categories(ctx context.Context, categoryID int64) (*dto.CategoriesResponse, error) {
	if categoryID < 1 {
		categoryID = 0
	}

	var self *model.Category
	if categoryID > 0 {
		var err error
		self, err = s.productRepo.CategoryByID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if self == nil {
			return nil, errCategoryNotFound(categoryID)
		}
	}

	children, err := s.productRepo.CategoryChildren(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 && self != nil {
		children = []model.Category{*self}
	}

	resp := &dto.CategoriesResponse{Categories: make([]dto.CategoryItem, 0, len(children))}
	for _, c := range children {
		count, err := s.productRepo.CategoryChildCount(ctx, c.TID)
		if err != nil {
			return nil, err
		}
		resp.Categories = append(resp.Categories, dto.CategoryItem{
			CategoryID: c.TID,
			Name:       c.Name,
			Parent:     count > 0,
		})
	}
	return resp, nil
}

// Substatus 商品状态目录
func (s *ProductService) Substatus() *dto.SubstatusResponse {
	return &dto.SubstatusResponse{Statuses: s.statuses.All()}
}

// UpdateProduct 新建或更新商品
// product_id = 0 走新建（name+sku 必填）；更新只动提交过来的字段。
// 库存按 SKU 优先、nid 兜底做 upsert；image_ids 追加到图册尾部
func (s *ProductService) UpdateProduct(ctx context.Context, adminUID int64, req *dto.ProductsRequest) (*dto.UpdateProductResponse, error) {
	productID := req.ProductID
	if productID == 0 {
		if req.Name == "" || req.Sku == "" {
			return nil, ErrMissingParams
		}
		now := s.now()
		p := &model.Product{
			Title:       req.Name,
			Model:       req.Sku,
			Price:       req.Price,
			Status:      "1",
			Description: req.Description,
			UID:         adminUID,
			Created:     now,
			Changed:     now,
		}
		if req.Status != "" {
			p.Status = req.Status
		}
		if err := s.productRepo.Create(ctx, p); err != nil {
			return nil, err
		}
		productID = p.ID
	} else {
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, errProductNotFound(productID)
		}

		fields := map[string]interface{}{"changed": s.now()}
		if req.Name != "" {
			fields["title"] = req.Name
		}
		if req.Sku != "" {
			fields["model"] = req.Sku
		}
		// 状态 "0"（下架）是合法取值，空串才算未提交
		if req.Status != "" {
			fields["status"] = req.Status
		}
		if req.Price > 0 {
			fields["price"] = req.Price
		}
		if req.Description != "" {
			fields["description"] = req.Description
		}
		if _, err := s.productRepo.UpdateFields(ctx, productID, fields); err != nil {
			return nil, err
		}
	}

	if req.Quantity != nil {
		if err := s.upsertStock(ctx, productID, req.Sku, *req.Quantity); err != nil {
			return nil, err
		}
	}
	if len(req.Categories) > 0 {
		if err := s.productRepo.ReplaceCategories(ctx, productID, req.Categories); err != nil {
			return nil, err
		}
	}
	if len(req.ImageIDs) > 0 {
		if err := s.appendImages(ctx, productID, req.ImageIDs); err != nil {
			return nil, err
		}
	}

	utils.InvalidateProduct(productID)

	images, err := s.imageSvc.Images(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateProductResponse{
		ProductID: productID,
		Images:    images,
	}, nil
}

// upsertStock SKU 命中就按 SKU 改，其次按 nid，都没有就插一行
func (s *ProductService) upsertStock(ctx context.Context, productID int64, sku string, quantity int) error {
	if sku == "" {
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product != nil {
			sku = product.Model
		}
	}

	if sku != "" {
		stock, err := s.productRepo.FindStockBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if stock != nil {
			return s.productRepo.UpdateStockBySKU(ctx, sku, quantity)
		}
	}
	stock, err := s.productRepo.FindStockByNID(ctx, productID)
	if err != nil {
		return err
	}
	if stock != nil {
		return s.productRepo.UpdateStockByNID(ctx, productID, quantity)
	}
	return s.productRepo.CreateStock(ctx, &model.ProductStock{
		SKU:       sku,
		ProductID: productID,
		Stock:     quantity,
		Active:    1,
	})
}

// appendImages 已托管文件追加到图册尾部并加引用计数
// 不存在的文件 id 和已在图册里的直接跳过
func (s *ProductService) appendImages(ctx context.Context, productID int64, fileIDs []int64) error {
	for _, fid := range fileIDs {
		exists, err := s.productRepo.FileExists(ctx, fid)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		img, err := s.productRepo.FindImage(ctx, productID, fid)
		if err != nil {
			return err
		}
		if img != nil {
			continue
		}
		max, err := s.productRepo.MaxImageDelta(ctx, productID)
		if err != nil {
			return err
		}
		err = s.productRepo.AddImage(ctx, &model.ProductImage{
			ProductID:  productID,
			FileID:     fid,
			RevisionID: productID,
			Delta:      max + 1,
		})
		if err != nil {
			return err
		}
		if err := s.productRepo.IncrementFileUsage(ctx, fid, productID); err != nil {
			return err
		}
	}
	return nil
}
