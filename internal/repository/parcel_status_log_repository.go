package repository

import (
	"github.com/gcs-courier/internal/models"

	"gorm.io/gorm"
)

// ParcelStatusLogRepository 包裹状态记录数据访问接口
type ParcelStatusLogRepository interface {
	Create(log *models.ParcelStatusLog) error
	ListByParcel(parcelID uint) ([]models.ParcelStatusLog, error)
	WithTx(tx *gorm.DB) *GormParcelStatusLogRepository
}

// GormParcelStatusLogRepository GORM 实现
type GormParcelStatusLogRepository struct {
	db *gorm.DB
}

// NewParcelStatusLogRepository 创建状态记录仓库
func NewParcelStatusLogRepository(db *gorm.DB) *GormParcelStatusLogRepository {
	return &GormParcelStatusLogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormParcelStatusLogRepository) WithTx(tx *gorm.DB) *GormParcelStatusLogRepository {
	if tx == nil {
		return r
	}
	return &GormParcelStatusLogRepository{db: tx}
}

// Create 追加状态记录
func (r *GormParcelStatusLogRepository) Create(log *models.ParcelStatusLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// ListByParcel 按时间顺序返回包裹的状态记录
func (r *GormParcelStatusLogRepository) ListByParcel(parcelID uint) ([]models.ParcelStatusLog, error) {
	var logs []models.ParcelStatusLog
	if err := r.db.Where("parcel_id = ?", parcelID).Order("id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
