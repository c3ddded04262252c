package repository

import (
	"errors"

	"github.com/gcs-courier/internal/models"

	"gorm.io/gorm"
)

// UserRoleRepository 角色分配数据访问接口
type UserRoleRepository interface {
	GetByUserID(userID uint) (*models.UserRole, error)
	Create(role *models.UserRole) error
	ListUserIDsByRole(role string, page, pageSize int) ([]uint, int64, error)
	WithTx(tx *gorm.DB) *GormUserRoleRepository
}

// GormUserRoleRepository GORM 实现
type GormUserRoleRepository struct {
	db *gorm.DB
}

// NewUserRoleRepository 创建角色仓库
func NewUserRoleRepository(db *gorm.DB) *GormUserRoleRepository {
	return &GormUserRoleRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRoleRepository) WithTx(tx *gorm.DB) *GormUserRoleRepository {
	if tx == nil {
		return r
	}
	return &GormUserRoleRepository{db: tx}
}

// GetByUserID 获取账号角色
func (r *GormUserRoleRepository) GetByUserID(userID uint) (*models.UserRole, error) {
	var role models.UserRole
	if err := r.db.Where("user_id = ?", userID).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// Create 写入角色
func (r *GormUserRoleRepository) Create(role *models.UserRole) error {
	return r.db.Create(role).Error
}

// ListUserIDsByRole 按角色分页列出账号ID（新创建的在前）
func (r *GormUserRoleRepository) ListUserIDsByRole(role string, page, pageSize int) ([]uint, int64, error) {
	query := r.db.Model(&models.UserRole{}).Where("role = ?", role)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, page, pageSize)

	var ids []uint
	if err := query.Order("id DESC").Pluck("user_id", &ids).Error; err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}
