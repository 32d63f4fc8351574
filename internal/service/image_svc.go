package service

import (
	"context"
	"errors"
	"fmt"

	"ucmob_admin/internal/api/dto"
	"ucmob_admin/internal/config"
	"ucmob_admin/internal/repository"
	"ucmob_admin/pkg/utils"
)

// ErrDatabaseUpdate 写操作影响 0 行
var ErrDatabaseUpdate = errors.New("Database updating error")

// 主图对外的哨兵 id：客户端传 image_id < 1 表示"当前主图"
const PrimaryImageSentinel = -1

// 重排时给目标图片占位用的临时 delta，必须在有效区间之外
const tempDelta = 9999

// ==================== ImageService 图片顺序服务 ====================

// ImageService 维护商品图册的 delta 不变量：
// 同一商品下 delta 始终是 0..n-1 的连续无重复序列，0 为主图。
// 同一商品的并发修改这里不做保护，管理端需要自行串行化
type ImageService struct {
	productRepo repository.ProductRepository
	files       config.FilesConfig
}

// NewImageService 创建图片服务
func NewImageService(productRepo repository.ProductRepository, files config.FilesConfig) *ImageService {
	return &ImageService{productRepo: productRepo, files: files}
}

// Images 商品图册（升序 delta），主图的 image_id 对外报 -1
// 文件 URL 走渲染缓存，删图时按 file key 清理
func (s *ImageService) Images(ctx context.Context, productID int64) ([]dto.ProductImageItem, error) {
	rows, err := s.productRepo.Images(ctx, productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductImageItem, 0, len(rows))
	for _, row := range rows {
		url, cached := utils.GetFileCache(row.FileID)
		if !cached {
			url = s.files.FileURL(row.URI)
			utils.SetFileCache(row.FileID, url)
		}
		item := dto.ProductImageItem{
			ImageID: row.FileID,
			Image:   url,
		}
		if row.Delta == 0 {
			item.ImageID = PrimaryImageSentinel
		}
		items = append(items, item)
	}
	return items, nil
}

// Promote 把 image_id 提为主图
// 其余图片保持相对顺序整体后移一位：先给目标一个区间外的临时位置，
// 再从 count..1 倒序回填其他图片，最后落 0。
// 设主图必须点名具体图片，image_id < 1 的哨兵写法只在删除时有意义
func (s *ImageService) Promote(ctx context.Context, productID, fileID int64) error {
	if fileID < 1 {
		return ErrMissingParams
	}
	img, err := s.productRepo.FindImage(ctx, productID, fileID)
	if err != nil {
		return err
	}
	if img == nil {
		return errImageNotFound(fileID, productID)
	}

	others, err := s.productRepo.OtherImageFileIDs(ctx, productID, fileID)
	if err != nil {
		return err
	}

	if err := s.productRepo.SetImageDelta(ctx, productID, fileID, img.RevisionID, tempDelta); err != nil {
		return err
	}
	for i := len(others); i > 0; i-- {
		if err := s.productRepo.SetImageDelta(ctx, productID, others[i-1], img.RevisionID, i); err != nil {
			return err
		}
	}
	if err := s.productRepo.SetImageDelta(ctx, productID, fileID, img.RevisionID, 0); err != nil {
		return err
	}

	utils.InvalidateProduct(productID)
	return nil
}

// Delete 删除商品图片并重排剩余 delta 为 0..n-1
// image_id < 1 表示删当前主图；同时维护文件引用计数和缓存
func (s *ImageService) Delete(ctx context.Context, productID, fileID int64) error {
	if fileID < 1 {
		primary, err := s.productRepo.PrimaryImageFileID(ctx, productID)
		if err != nil {
			return err
		}
		if primary == 0 {
			return fmt.Errorf("Could not find image for product with id = %d", productID)
		}
		fileID = primary
	}

	img, err := s.productRepo.FindImage(ctx, productID, fileID)
	if err != nil {
		return err
	}
	if img == nil {
		return errImageNotFound(fileID, productID)
	}

	rows, err := s.productRepo.DeleteImage(ctx, productID, fileID, img.RevisionID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDatabaseUpdate
	}

	// 按删除前的顺序重排剩余图片
	remaining, err := s.productRepo.ImageFileIDs(ctx, productID)
	if err != nil {
		return err
	}
	for i, fid := range remaining {
		if err := s.productRepo.SetImageDelta(ctx, productID, fid, img.RevisionID, i); err != nil {
			return err
		}
	}

	if err := s.decrementFileUsage(ctx, fileID, productID); err != nil {
		return err
	}

	utils.InvalidateFile(fileID)
	utils.InvalidateProduct(productID)
	return nil
}

// decrementFileUsage 引用计数减一，减到 0 删行
func (s *ImageService) decrementFileUsage(ctx context.Context, fileID, productID int64) error {
	usage, err := s.productRepo.FileUsage(ctx, fileID, productID)
	if err != nil {
		return err
	}
	if usage == nil {
		return nil
	}
	if usage.Count-1 > 0 {
		return s.productRepo.SetFileUsageCount(ctx, fileID, productID, usage.Count-1)
	}
	return s.productRepo.DeleteFileUsage(ctx, fileID, productID)
}

func errImageNotFound(fileID, productID int64) error {
	return fmt.Errorf("Could not find image with id = %d for product with id = %d", fileID, productID)
}
