package repository

import (
	"errors"
	"time"

	"github.com/gcs-courier/internal/models"

	"gorm.io/gorm"
)

// ParcelRepository 包裹数据访问接口
type ParcelRepository interface {
	Create(parcel *models.Parcel) error
	GetByID(id uint) (*models.Parcel, error)
	GetByTrackingCode(code string) (*models.Parcel, error)
	ExistsTrackingCode(code string) (bool, error)
	ListByCustomer(customerID uint) ([]models.Parcel, error)
	ListByOriginPincodes(pincodes []string) ([]models.Parcel, error)
	ListByDestinationPincodes(pincodes []string) ([]models.Parcel, error)
	List(filter ParcelListFilter) ([]models.Parcel, int64, error)
	UpdateStatus(id uint, fromStatus, status string, at time.Time) (bool, error)
	CountByStatus() (map[string]int64, error)
	CountCreatedBetween(from, to time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormParcelRepository
}

// GormParcelRepository GORM 实现
type GormParcelRepository struct {
	db *gorm.DB
}

// NewParcelRepository 创建包裹仓库
func NewParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

// WithTx 绑定事务
func (r *GormParcelRepository) WithTx(tx *gorm.DB) *GormParcelRepository {
	if tx == nil {
		return r
	}
	return &GormParcelRepository{db: tx}
}

// Create 创建包裹
func (r *GormParcelRepository) Create(parcel *models.Parcel) error {
	return r.db.Create(parcel).Error
}

// GetByID 根据 ID 获取包裹
func (r *GormParcelRepository) GetByID(id uint) (*models.Parcel, error) {
	var parcel models.Parcel
	if err := r.db.First(&parcel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &parcel, nil
}

// GetByTrackingCode 根据运单号精确获取包裹
func (r *GormParcelRepository) GetByTrackingCode(code string) (*models.Parcel, error) {
	var parcel models.Parcel
	if err := r.db.Where("tracking_code = ?", code).First(&parcel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &parcel, nil
}

// ExistsTrackingCode 运单号是否已被占用
func (r *GormParcelRepository) ExistsTrackingCode(code string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Parcel{}).Where("tracking_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByCustomer 客户自己的包裹（新创建的在前）
func (r *GormParcelRepository) ListByCustomer(customerID uint) ([]models.Parcel, error) {
	var parcels []models.Parcel
	if err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC, id DESC").Find(&parcels).Error; err != nil {
		return nil, err
	}
	return parcels, nil
}

// ListByOriginPincodes 始发邮编命中的包裹
func (r *GormParcelRepository) ListByOriginPincodes(pincodes []string) ([]models.Parcel, error) {
	return r.listByPincodeColumn("from_pincode", pincodes)
}

// ListByDestinationPincodes 目的邮编命中的包裹
func (r *GormParcelRepository) ListByDestinationPincodes(pincodes []string) ([]models.Parcel, error) {
	return r.listByPincodeColumn("to_pincode", pincodes)
}

func (r *GormParcelRepository) listByPincodeColumn(column string, pincodes []string) ([]models.Parcel, error) {
	if len(pincodes) == 0 {
		return []models.Parcel{}, nil
	}
	var parcels []models.Parcel
	if err := r.db.Where(column+" IN ?", pincodes).Order("created_at DESC, id DESC").Find(&parcels).Error; err != nil {
		return nil, err
	}
	return parcels, nil
}

// List 包裹列表
func (r *GormParcelRepository) List(filter ParcelListFilter) ([]models.Parcel, int64, error) {
	query := r.db.Model(&models.Parcel{})

	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		condition, args := buildLikeCondition(r.db, filter.Keyword, "tracking_code", "from_pincode", "to_pincode")
		query = query.Where(condition, args...)
	}
	if len(filter.FromPincodes) > 0 {
		query = query.Where("from_pincode IN ?", filter.FromPincodes)
	}
	if len(filter.ToPincodes) > 0 {
		query = query.Where("to_pincode IN ?", filter.ToPincodes)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var parcels []models.Parcel
	if err := query.Order("created_at DESC, id DESC").Find(&parcels).Error; err != nil {
		return nil, 0, err
	}
	return parcels, total, nil
}

// UpdateStatus 仅当当前状态仍为 fromStatus 时更新，返回是否命中
func (r *GormParcelRepository) UpdateStatus(id uint, fromStatus, status string, at time.Time) (bool, error) {
	result := r.db.Model(&models.Parcel{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByStatus 按状态统计包裹数量
func (r *GormParcelRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	if err := r.db.Model(&models.Parcel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, item := range rows {
		result[item.Status] = item.Total
	}
	return result, nil
}

// CountCreatedBetween 统计时间区间内创建的包裹
func (r *GormParcelRepository) CountCreatedBetween(from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Parcel{}).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
