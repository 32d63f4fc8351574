package controller

import (
	"context"

	"github.com/gin-gonic/gin"

	"ucmob_admin/internal/api/dto"
	"ucmob_admin/internal/service"
)

// ==================== ProductsController 商品组接口 ====================

// ProductsController 商品组：一个端点按 route 参数分发
type ProductsController struct {
	BaseController
	productSvc *service.ProductService
	imageSvc   *service.ImageService
}

// NewProductsController 创建商品控制器
func NewProductsController(version string, productSvc *service.ProductService, imageSvc *service.ImageService) *ProductsController {
	return &ProductsController{
		BaseController: BaseController{Version: version},
		productSvc:     productSvc,
		imageSvc:       imageSvc,
	}
}

// Handle POST/GET /api/ucmob/products
func (ctl *ProductsController) Handle(c *gin.Context) {
	var req dto.ProductsRequest
	if err := c.ShouldBind(&req); err != nil {
		ctl.fail(c, service.ErrParameters)
		return
	}
	ctx := c.Request.Context()

	var (
		resp interface{}
		err  error
	)
	switch req.Route {
	case "products":
		resp, err = ctl.productSvc.Products(ctx, &req)
	case "productinfo":
		resp, err = ctl.productSvc.ProductInfo(ctx, req.ProductID)
	case "getcategories":
		resp, err = ctl.productSvc.Categories(ctx, req.CategoryID)
	case "getsubstatus":
		resp = ctl.productSvc.Substatus()
	case "updateproduct":
		resp, err = ctl.productSvc.UpdateProduct(ctx, adminUID(c), &req)
	case "mainimage":
		resp, err = ctl.gallery(ctx, &req, ctl.imageSvc.Promote)
	case "deleteimage":
		resp, err = ctl.gallery(ctx, &req, ctl.imageSvc.Delete)
	default:
		err = service.ErrParameters
	}

	if err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.ok(c, resp)
}

// gallery 图册变更的公共壳：先改顺序，再把最新图册回给客户端
func (ctl *ProductsController) gallery(
	ctx context.Context,
	req *dto.ProductsRequest,
	op func(ctx context.Context, productID, fileID int64) error,
) (interface{}, error) {
	if req.ProductID == 0 {
		return nil, service.ErrZeroProduct
	}
	if err := op(ctx, req.ProductID, req.ImageID); err != nil {
		return nil, err
	}
	images, err := ctl.imageSvc.Images(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	return dto.UpdateProductResponse{
		ProductID: req.ProductID,
		Images:    images,
	}, nil
}
