package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"ucmob_admin/internal/model"
)

// ==================== 过滤条件与查询行 ====================

// ProductFilter 商品列表过滤条件
type ProductFilter struct {
	Name  string
	Page  int
	Limit int
}

// ProductListRow 商品列表行（LEFT JOIN 列允许 NULL）
type ProductListRow struct {
	ProductID int64
	Name      string
	Sku       string
	Quantity  sql.NullInt64
	Price     float64
	ImageURI  sql.NullString
	Category  sql.NullString
}

// ProductInfoRow 商品详情行
type ProductInfoRow struct {
	ProductID   int64
	Name        string
	Sku         string
	Quantity    sql.NullInt64
	Price       float64
	Description string
	Status      string
}

// CategoryRow 分类行
type CategoryRow struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}

// ImageRow 商品图片行
type ImageRow struct {
	FileID int64
	URI    string
	Delta  int
}

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	List(ctx context.Context, f ProductFilter) ([]ProductListRow, error)
	GetInfo(ctx context.Context, id int64) (*ProductInfoRow, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) (int64, error)

	// 库存：按 SKU 优先，nid 兜底
	FindStockBySKU(ctx context.Context, sku string) (*model.ProductStock, error)
	FindStockByNID(ctx context.Context, nid int64) (*model.ProductStock, error)
	UpdateStockBySKU(ctx context.Context, sku string, stock int) error
	UpdateStockByNID(ctx context.Context, nid int64, stock int) error
	CreateStock(ctx context.Context, s *model.ProductStock) error

	// 分类
	Categories(ctx context.Context, productID int64) ([]CategoryRow, error)
	CategoryChildren(ctx context.Context, parentID int64) ([]model.Category, error)
	CategoryByID(ctx context.Context, id int64) (*model.Category, error)
	CategoryChildCount(ctx context.Context, id int64) (int64, error)
	ReplaceCategories(ctx context.Context, productID int64, categoryIDs []int64) error

	// 图片顺序（delta）
	Images(ctx context.Context, productID int64) ([]ImageRow, error)
	FindImage(ctx context.Context, productID, fileID int64) (*model.ProductImage, error)
	PrimaryImageFileID(ctx context.Context, productID int64) (int64, error)
	OtherImageFileIDs(ctx context.Context, productID, exceptFileID int64) ([]int64, error)
	ImageFileIDs(ctx context.Context, productID int64) ([]int64, error)
	MaxImageDelta(ctx context.Context, productID int64) (int, error)
	AddImage(ctx context.Context, img *model.ProductImage) error
	SetImageDelta(ctx context.Context, productID, fileID, revisionID int64, delta int) error
	DeleteImage(ctx context.Context, productID, fileID, revisionID int64) (int64, error)

	// 文件与引用计数
	FileURI(ctx context.Context, fileID int64) (string, error)
	FileExists(ctx context.Context, fileID int64) (bool, error)
	FileUsage(ctx context.Context, fileID, productID int64) (*model.FileUsage, error)
	SetFileUsageCount(ctx context.Context, fileID, productID int64, count int) error
	DeleteFileUsage(ctx context.Context, fileID, productID int64) error
	IncrementFileUsage(ctx context.Context, fileID, productID int64) error
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) List(ctx context.Context, f ProductFilter) ([]ProductListRow, error) {
	q := r.db.WithContext(ctx).
		Table("uc_products p").
		Select("p.nid AS product_id, p.title AS name, p.model AS sku, " +
			"s.stock AS quantity, p.price AS price, f.uri AS image_uri, " +
			"(SELECT c.name FROM product_categories pc " +
			" JOIN categories c ON c.tid = pc.category_id " +
			" WHERE pc.product_id = p.nid LIMIT 1) AS category").
		Joins("LEFT JOIN uc_product_stock s ON s.nid = p.nid").
		Joins("LEFT JOIN uc_product_images pi ON pi.product_id = p.nid AND pi.delta = 0").
		Joins("LEFT JOIN file_managed f ON f.fid = pi.file_id")

	if f.Name != "" {
		q = q.Where("p.title LIKE ?", "%"+f.Name+"%")
	}
	q = q.Order("p.nid DESC")
	q = applyRange(q, f.Page, f.Limit)

	var rows []ProductListRow
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *productRepo) GetInfo(ctx context.Context, id int64) (*ProductInfoRow, error) {
	var row ProductInfoRow
	res := r.db.WithContext(ctx).
		Table("uc_products p").
		Select("p.nid AS product_id, p.title AS name, p.model AS sku, "+
			"s.stock AS quantity, p.price AS price, "+
			"p.description AS description, p.status AS status").
		Joins("LEFT JOIN uc_product_stock s ON s.nid = p.nid").
		Where("p.nid = ?", id).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "nid = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("nid = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// -------- 库存 --------

func (r *productRepo) FindStockBySKU(ctx context.Context, sku string) (*model.ProductStock, error) {
	var s model.ProductStock
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *productRepo) FindStockByNID(ctx context.Context, nid int64) (*model.ProductStock, error) {
	var s model.ProductStock
	err := r.db.WithContext(ctx).Where("nid = ?", nid).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *productRepo) UpdateStockBySKU(ctx context.Context, sku string, stock int) error {
	return r.db.WithContext(ctx).
		Model(&model.ProductStock{}).
		Where("sku = ?", sku).
		Update("stock", stock).Error
}

func (r *productRepo) UpdateStockByNID(ctx context.Context, nid int64, stock int) error {
	return r.db.WithContext(ctx).
		Model(&model.ProductStock{}).
		Where("nid = ?", nid).
		Update("stock", stock).Error
}

func (r *productRepo) CreateStock(ctx context.Context, s *model.ProductStock) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// -------- 分类 --------

func (r *productRepo) Categories(ctx context.Context, productID int64) ([]CategoryRow, error) {
	var rows []CategoryRow
	err := r.db.WithContext(ctx).
		Table("product_categories pc").
		Select("c.tid AS category_id, c.name AS name").
		Joins("LEFT JOIN categories c ON c.tid = pc.category_id").
		Where("pc.product_id = ?", productID).
		Order("c.tid DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *productRepo) CategoryChildren(ctx context.Context, parentID int64) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).
		Where("parent = ?", parentID).
		Find(&cats).Error
	return cats, err
}

func (r *productRepo) CategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, "tid = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *productRepo) CategoryChildCount(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("parent = ?", id).
		Count(&count).Error
	return count, err
}

func (r *productRepo) ReplaceCategories(ctx context.Context, productID int64, categoryIDs []int64) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).
		Delete(&model.ProductCategory{}).Error; err != nil {
		return err
	}
	for _, id := range categoryIDs {
		pc := model.ProductCategory{ProductID: productID, CategoryID: id}
		if err := tx.Create(&pc).Error; err != nil {
			return err
		}
	}
	return nil
}

// -------- 图片顺序 --------

func (r *productRepo) Images(ctx context.Context, productID int64) ([]ImageRow, error) {
	var rows []ImageRow
	err := r.db.WithContext(ctx).
		Table("uc_product_images i").
		Select("f.fid AS file_id, f.uri AS uri, i.delta AS delta").
		Joins("LEFT JOIN file_managed f ON f.fid = i.file_id").
		Where("i.product_id = ?", productID).
		Order("i.delta").
		Scan(&rows).Error
	return rows, err
}

func (r *productRepo) FindImage(ctx context.Context, productID, fileID int64) (*model.ProductImage, error) {
	var img model.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND file_id = ?", productID, fileID).
		First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *productRepo) PrimaryImageFileID(ctx context.Context, productID int64) (int64, error) {
	var img model.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND delta = 0", productID).
		First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return img.FileID, nil
}

func (r *productRepo) OtherImageFileIDs(ctx context.Context, productID, exceptFileID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.ProductImage{}).
		Where("product_id = ? AND file_id <> ?", productID, exceptFileID).
		Order("delta").
		Pluck("file_id", &ids).Error
	return ids, err
}

func (r *productRepo) ImageFileIDs(ctx context.Context, productID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.ProductImage{}).
		Where("product_id = ?", productID).
		Order("delta").
		Pluck("file_id", &ids).Error
	return ids, err
}

func (r *productRepo) MaxImageDelta(ctx context.Context, productID int64) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&model.ProductImage{}).
		Select("COALESCE(MAX(delta), -1)").
		Where("product_id = ?", productID).
		Scan(&max).Error
	return max, err
}

func (r *productRepo) AddImage(ctx context.Context, img *model.ProductImage) error {
	if err := r.db.WithContext(ctx).Create(img).Error; err != nil {
		return err
	}
	rev := model.ProductImageRevision{
		ProductID:  img.ProductID,
		FileID:     img.FileID,
		RevisionID: img.RevisionID,
		Delta:      img.Delta,
	}
	return r.db.WithContext(ctx).Create(&rev).Error
}

// SetImageDelta 同步更新当前关联和对应 revision 副本
func (r *productRepo) SetImageDelta(ctx context.Context, productID, fileID, revisionID int64, delta int) error {
	err := r.db.WithContext(ctx).
		Model(&model.ProductImage{}).
		Where("product_id = ? AND file_id = ?", productID, fileID).
		Update("delta", delta).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.ProductImageRevision{}).
		Where("product_id = ? AND file_id = ? AND revision_id = ?", productID, fileID, revisionID).
		Update("delta", delta).Error
}

func (r *productRepo) DeleteImage(ctx context.Context, productID, fileID, revisionID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("product_id = ? AND file_id = ?", productID, fileID).
		Delete(&model.ProductImage{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		err := r.db.WithContext(ctx).
			Where("product_id = ? AND file_id = ? AND revision_id = ?", productID, fileID, revisionID).
			Delete(&model.ProductImageRevision{}).Error
		if err != nil {
			return res.RowsAffected, err
		}
	}
	return res.RowsAffected, nil
}

// -------- 文件与引用计数 --------

func (r *productRepo) FileURI(ctx context.Context, fileID int64) (string, error) {
	var f model.FileManaged
	err := r.db.WithContext(ctx).First(&f, "fid = ?", fileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return f.URI, nil
}

func (r *productRepo) FileExists(ctx context.Context, fileID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.FileManaged{}).
		Where("fid = ?", fileID).
		Count(&count).Error
	return count > 0, err
}

func (r *productRepo) FileUsage(ctx context.Context, fileID, productID int64) (*model.FileUsage, error) {
	var u model.FileUsage
	err := r.db.WithContext(ctx).
		Where("fid = ? AND product_id = ?", fileID, productID).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *productRepo) SetFileUsageCount(ctx context.Context, fileID, productID int64, count int) error {
	return r.db.WithContext(ctx).
		Model(&model.FileUsage{}).
		Where("fid = ? AND product_id = ?", fileID, productID).
		Update("count", count).Error
}

func (r *productRepo) DeleteFileUsage(ctx context.Context, fileID, productID int64) error {
	return r.db.WithContext(ctx).
		Where("fid = ? AND product_id = ?", fileID, productID).
		Delete(&model.FileUsage{}).Error
}

func (r *productRepo) IncrementFileUsage(ctx context.Context, fileID, productID int64) error {
	usage, err := r.FileUsage(ctx, fileID, productID)
	if err != nil {
		return err
	}
	if usage == nil {
		u := model.FileUsage{FileID: fileID, ProductID: productID, Count: 1}
		return r.db.WithContext(ctx).Create(&u).Error
	}
	return r.SetFileUsageCount(ctx, fileID, productID, usage.Count+1)
}
