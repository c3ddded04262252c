package repository

import (
	"github.com/gcs-courier/internal/models"

	"gorm.io/gorm"
)

// DispatcherPincodeRepository 派送员区域数据访问接口
type DispatcherPincodeRepository interface {
	ListPincodes(dispatcherID uint) ([]string, error)
	ListByDispatcherIDs(ids []uint) ([]models.DispatcherPincode, error)
	CreateBatch(items []models.DispatcherPincode) error
	WithTx(tx *gorm.DB) *GormDispatcherPincodeRepository
}

// GormDispatcherPincodeRepository GORM 实现
type GormDispatcherPincodeRepository struct {
	db *gorm.DB
}

// NewDispatcherPincodeRepository 创建派送员区域仓库
func NewDispatcherPincodeRepository(db *gorm.DB) *GormDispatcherPincodeRepository {
	return &GormDispatcherPincodeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDispatcherPincodeRepository) WithTx(tx *gorm.DB) *GormDispatcherPincodeRepository {
	if tx == nil {
		return r
	}
	return &GormDispatcherPincodeRepository{db: tx}
}

// ListPincodes 获取派送员负责的邮编
func (r *GormDispatcherPincodeRepository) ListPincodes(dispatcherID uint) ([]string, error) {
	var pincodes []string
	if err := r.db.Model(&models.DispatcherPincode{}).
		Where("dispatcher_id = ?", dispatcherID).
		Order("id ASC").
		Pluck("pincode", &pincodes).Error; err != nil {
		return nil, err
	}
	return pincodes, nil
}

// ListByDispatcherIDs 批量获取区域分配
func (r *GormDispatcherPincodeRepository) ListByDispatcherIDs(ids []uint) ([]models.DispatcherPincode, error) {
	if len(ids) == 0 {
		return []models.DispatcherPincode{}, nil
	}
	var items []models.DispatcherPincode
	if err := r.db.Where("dispatcher_id IN ?", ids).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateBatch 批量写入区域分配
func (r *GormDispatcherPincodeRepository) CreateBatch(items []models.DispatcherPincode) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}
