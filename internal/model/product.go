package model

import "time"

// ==================== 商品投影 ====================

// Product 商品（原系统里 node + uc_products 两表合一的投影）
type Product struct {
	ID          int64  `gorm:"column:nid;primaryKey;autoIncrement"`
	Title       string `gorm:"size:255;index"`
	Model       string `gorm:"size:255;index"` // SKU
	Price       float64
	Status      string `gorm:"size:16"` // 商品状态目录里的 id，"1" 已发布
	Description string `gorm:"type:text"`
	UID         int64  `gorm:"column:uid"`
	Created     time.Time
	Changed     time.Time
}

func (Product) TableName() string {
	return "uc_products"
}

// ProductStock 库存，按 SKU 维护，nid 冗余一份
type ProductStock struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	SKU       string `gorm:"column:sku;size:255;index"`
	ProductID int64  `gorm:"column:nid;index"`
	Stock     int
	Active    int `gorm:"default:1"` // 是否跟踪库存
}

func (ProductStock) TableName() string {
	return "uc_product_stock"
}

// ProductImage 商品图片关联
// delta 是展示顺序：同一商品下必须是从 0 开始的连续无重复序列，0 为主图
type ProductImage struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	ProductID  int64 `gorm:"index:idx_product_file,unique;not null"`
	FileID     int64 `gorm:"index:idx_product_file,unique;not null"`
	RevisionID int64 `gorm:"index"`
	Delta      int
}

func (ProductImage) TableName() string {
	return "uc_product_images"
}

// ProductImageRevision 图片关联的版本副本，随当前 revision 同步维护
type ProductImageRevision struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	ProductID  int64 `gorm:"index;not null"`
	FileID     int64 `gorm:"index;not null"`
	RevisionID int64 `gorm:"index;not null"`
	Delta      int
}

func (ProductImageRevision) TableName() string {
	return "uc_product_image_revisions"
}

// Category 商品分类树
type Category struct {
	TID      int64  `gorm:"column:tid;primaryKey;autoIncrement"`
	Name     string `gorm:"size:255"`
	ParentID int64  `gorm:"column:parent;index;default:0"`
}

func (Category) TableName() string {
	return "categories"
}

// ProductCategory 商品-分类关联
type ProductCategory struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	ProductID  int64 `gorm:"index;not null"`
	CategoryID int64 `gorm:"index;not null"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}

// FileManaged 托管文件（图片实体），存储和 URL 生成在外部
type FileManaged struct {
	FID int64  `gorm:"column:fid;primaryKey;autoIncrement"`
	URI string `gorm:"size:255"`
}

func (FileManaged) TableName() string {
	return "file_managed"
}

// FileUsage 文件被商品引用的计数，减到 0 就删行
type FileUsage struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	FileID    int64 `gorm:"column:fid;index:idx_file_product,unique;not null"`
	ProductID int64 `gorm:"index:idx_file_product,unique;not null"`
	Count     int
}

func (FileUsage) TableName() string {
	return "file_usage"
}
