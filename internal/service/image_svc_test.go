package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/gorm"

	"ucmob_admin/internal/model"
	"ucmob_admin/internal/repository"
	"ucmob_admin/pkg/utils"
)

func newImageService(t *testing.T) (*ImageService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t,
		&model.Product{},
		&model.ProductImage{},
		&model.ProductImageRevision{},
		&model.FileManaged{},
		&model.FileUsage{},
	)
	svc := NewImageService(repository.NewProductRepository(db), testFiles)
	return svc, db
}

// seedGallery 商品 1 挂三张图，delta 0/1/2，文件 id 10/20/30
func seedGallery(t *testing.T, db *gorm.DB) {
	t.Helper()
	db.Create(&model.Product{ID: 1, Title: "Mug", Model: "MUG-1"})
	for i, fid := range []int64{10, 20, 30} {
		db.Create(&model.FileManaged{FID: fid, URI: fmt.Sprintf("public://img-%d.jpg", fid)})
		db.Create(&model.ProductImage{ProductID: 1, FileID: fid, RevisionID: 1, Delta: i})
		db.Create(&model.ProductImageRevision{ProductID: 1, FileID: fid, RevisionID: 1, Delta: i})
		db.Create(&model.FileUsage{FileID: fid, ProductID: 1, Count: 1})
	}
}

// galleryDeltas 按 delta 升序返回 file_id 序列，顺带校验连续性
func galleryDeltas(t *testing.T, db *gorm.DB, productID int64) []int64 {
	t.Helper()
	var imgs []model.ProductImage
	if err := db.Where("product_id = ?", productID).Order("delta").Find(&imgs).Error; err != nil {
		t.Fatalf("读取图册失败: %v", err)
	}
	ids := make([]int64, 0, len(imgs))
	for i, img := range imgs {
		if img.Delta != i {
			t.Fatalf("delta 序列断裂: 位置 %d 的 delta 是 %d", i, img.Delta)
		}
		ids = append(ids, img.FileID)
	}
	return ids
}

func TestPromoteKeepsRelativeOrder(t *testing.T) {
	svc, db := newImageService(t)
	seedGallery(t, db)

	if err := svc.Promote(context.Background(), 1, 30); err != nil {
		t.Fatalf("设主图失败: %v", err)
	}
	got := galleryDeltas(t, db, 1)
	want := []int64{30, 10, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("图册顺序应为 %v, 实际 %v", want, got)
		}
	}

	// revision 副本要跟着当前关联一起动
	var rev model.ProductImageRevision
	db.Where("product_id = ? AND file_id = ?", 1, 30).First(&rev)
	if rev.Delta != 0 {
		t.Fatalf("revision 副本 delta 应为 0, 实际 %d", rev.Delta)
	}
}

func TestPromoteTwiceLeavesSameOrder(t *testing.T) {
	svc, db := newImageService(t)
	seedGallery(t, db)
	ctx := context.Background()

	if err := svc.Promote(ctx, 1, 30); err != nil {
		t.Fatalf("首次设主图失败: %v", err)
	}
	if err := svc.Promote(ctx, 1, 30); err != nil {
		t.Fatalf("重复设主图失败: %v", err)
	}

	// 重复操作不改变结果，delta 仍然连续
	got := galleryDeltas(t, db, 1)
	want := []int64{30, 10, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("重复设主图后顺序应仍为 %v, 实际 %v", want, got)
		}
	}
}

func TestPromoteRejectsSentinelID(t *testing.T) {
	svc, db := newImageService(t)
	seedGallery(t, db)

	if err := svc.Promote(context.Background(), 1, 0); !errors.Is(err, ErrMissingParams) {
		t.Fatalf("image_id < 1 应报 Missing some params, 实际 %v", err)
	}
}

func TestPromoteUnknownImage(t *testing.T) {
	svc, db := newImageService(t)
	seedGallery(t, db)

	err := svc.Promote(context.Background(), 1, 99)
	if err == nil || err.Error() != "Could not find image with id = 99 for product with id = 1" {
		t.Fatalf("错误文本不对: %v", err)
	}
}

func TestDeleteRenumbersAndDropsUsage(t *testing.T) {
	svc, db := newImageService(t)
	seedGallery(t, db)

	// 先读一次图册，让文件 URL 进渲染缓存
	if _, err := svc.Images(context.Background(), 1); err != nil {
		t.Fatalf("读取图册失败: %v", err)
	}
	if _, ok := utils.GetFileCache(20); !ok {
		t.Fatal("图册渲染应缓存文件 URL")
	}

	if err := svc.Delete(context.Background(), 1, 20); err != nil {
		t.Fatalf("删图失败: %v", err)
	}
	if _, ok := utils.GetFileCache(20); ok {
		t.Fatal("删图后文件缓存应已清掉")
	}
	got := galleryDeltas(t, db, 1)
	want := []int64{10, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("图册应为 %v, 实际 %v", want, got)
		}
	}

	var count int64
	db.Model(&model.FileUsage{}).Where("fid = ?", 20).Count(&count)
	if count != 0 {
		t.Fatalf("引用计数减到 0 应删行, 实际还有 %d 行", count)
	}
}

func TestDeleteDecrementsSharedUsage(t *testing.T) {
	svc, db := newImageService(t)
	seedGallery(t, db)
	db.Model(&model.FileUsage{}).Where("fid = ?", 20).Update("count", 2)

	if err := svc.Delete(context.Background(), 1, 20); err != nil {
		t.Fatalf("删图失败: %v", err)
	}
	var usage model.FileUsage
	if err := db.Where("fid = ?", 20).First(&usage).Error; err != nil {
		t.Fatalf("引用计数行不应被删: %v", err)
	}
	if usage.Count != 1 {
		t.Fatalf("引用计数应为 1, 实际 %d", usage.Count)
	}
}

func TestDeleteSentinelTargetsPrimary(t *testing.T) {
	svc, db := newImageService(t)
	seedGallery(t, db)

	if err := svc.Delete(context.Background(), 1, 0); err != nil {
		t.Fatalf("删主图失败: %v", err)
	}
	got := galleryDeltas(t, db, 1)
	if got[0] != 20 {
		t.Fatalf("删主图后新主图应为 20, 实际 %d", got[0])
	}
}

func TestDeleteSentinelWithoutImages(t *testing.T) {
	svc, db := newImageService(t)
	db.Create(&model.Product{ID: 2, Title: "Empty"})

	err := svc.Delete(context.Background(), 2, 0)
	if err == nil || err.Error() != "Could not find image for product with id = 2" {
		t.Fatalf("错误文本不对: %v", err)
	}
}

func TestImagesReportsPrimaryAsSentinel(t *testing.T) {
	svc, db := newImageService(t)
	seedGallery(t, db)

	items, err := svc.Images(context.Background(), 1)
	if err != nil {
		t.Fatalf("读取图册失败: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("应有 3 张图, 实际 %d", len(items))
	}
	if items[0].ImageID != PrimaryImageSentinel {
		t.Fatalf("主图 image_id 应为 %d, 实际 %d", PrimaryImageSentinel, items[0].ImageID)
	}
	if !strings.HasPrefix(items[0].Image, "http://shop.test/files/") {
		t.Fatalf("图片 URL 前缀不对: %s", items[0].Image)
	}
}
