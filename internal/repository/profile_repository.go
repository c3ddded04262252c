package repository

import (
	"errors"

	"github.com/gcs-courier/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository 客户资料数据访问接口
type ProfileRepository interface {
	GetByID(id uint) (*models.Profile, error)
	ListByIDs(ids []uint) ([]models.Profile, error)
	Upsert(profile *models.Profile) error
	WithTx(tx *gorm.DB) *GormProfileRepository
}

// GormProfileRepository GORM 实现
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建资料仓库
func NewProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProfileRepository) WithTx(tx *gorm.DB) *GormProfileRepository {
	if tx == nil {
		return r
	}
	return &GormProfileRepository{db: tx}
}

// GetByID 获取资料
func (r *GormProfileRepository) GetByID(id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// ListByIDs 批量获取资料
func (r *GormProfileRepository) ListByIDs(ids []uint) ([]models.Profile, error) {
	if len(ids) == 0 {
		return []models.Profile{}, nil
	}
	var profiles []models.Profile
	if err := r.db.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert 按主键写入或覆盖资料
func (r *GormProfileRepository) Upsert(profile *models.Profile) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "address", "city", "state", "pincode", "updated_at"}),
	}).Create(profile).Error
}
