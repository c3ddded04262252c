package models

import (
	"strings"

	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@gcs.local"
	defaultAdminPassword = "admin123"
)

// InitDefaultAdmin 初始化默认管理员账号
// 已存在任意管理员时不做任何修改
func InitDefaultAdmin(email, password string) error {
	var count int64
	if err := DB.Model(&UserRole{}).Where("role = ?", constants.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = defaultAdminEmail
	}
	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	err = DB.Transaction(func(tx *gorm.DB) error {
		user := User{
			Email:        email,
			PasswordHash: string(hash),
			Status:       constants.UserStatusActive,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&UserRole{UserID: user.ID, Role: constants.RoleAdmin}).Error
	})
	if err != nil {
		return err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}
	return nil
}
