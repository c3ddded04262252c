package service

import (
	"strings"
	"time"

	"github.com/gcs-courier/internal/models"
	"github.com/gcs-courier/internal/repository"
)

// ProfileService 客户资料服务
type ProfileService struct {
	repo repository.ProfileRepository
}

// NewProfileService 创建资料服务
func NewProfileService(repo repository.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// ProfileView 资料及完整度
type ProfileView struct {
	Profile  *models.Profile `json:"profile"`
	Complete bool            `json:"complete"`
	Missing  []string        `json:"missing_fields"`
}

// UpsertProfileInput 资料写入参数
type UpsertProfileInput struct {
	Name    string
	Phone   string
	Address string
	City    string
	State   string
	Pincode string
}

// Get 获取资料，不存在时返回空资料
func (s *ProfileService) Get(userID uint) (*ProfileView, error) {
	profile, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &models.Profile{ID: userID}
	}
	return buildProfileView(profile), nil
}

// Upsert 写入资料，姓名、电话、地址、邮编为必填
func (s *ProfileService) Upsert(userID uint, input UpsertProfileInput) (*ProfileView, error) {
	profile := &models.Profile{
		ID:        userID,
		Name:      strings.TrimSpace(input.Name),
		Phone:     strings.TrimSpace(input.Phone),
		Address:   strings.TrimSpace(input.Address),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		Pincode:   strings.TrimSpace(input.Pincode),
		UpdatedAt: time.Now(),
	}
	if missing := profile.MissingFields(); len(missing) > 0 {
		return nil, &ProfileIncompleteError{Missing: missing}
	}
	if err := s.repo.Upsert(profile); err != nil {
		return nil, err
	}
	return buildProfileView(profile), nil
}

// EnsureComplete 下单前校验资料完整
func (s *ProfileService) EnsureComplete(userID uint) (*models.Profile, error) {
	profile, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if missing := profile.MissingFields(); len(missing) > 0 {
		return nil, &ProfileIncompleteError{Missing: missing}
	}
	return profile, nil
}

func buildProfileView(profile *models.Profile) *ProfileView {
	missing := profile.MissingFields()
	return &ProfileView{
		Profile:  profile,
		Complete: len(missing) == 0,
		Missing:  missing,
	}
}
