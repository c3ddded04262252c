package service

import (
	"strings"
	"time"

	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/logger"
	"github.com/gcs-courier/internal/models"
	"github.com/gcs-courier/internal/repository"

	"gorm.io/gorm"
)

// DispatcherAdminService 管理端派送员管理
type DispatcherAdminService struct {
	userRepo       repository.UserRepository
	roleRepo       repository.UserRoleRepository
	pincodeRepo    repository.DispatcherPincodeRepository
	profileRepo    repository.ProfileRepository
	sessionService *SessionService
}

// NewDispatcherAdminService 创建派送员管理服务
func NewDispatcherAdminService(
	userRepo repository.UserRepository,
	roleRepo repository.UserRoleRepository,
	pincodeRepo repository.DispatcherPincodeRepository,
	profileRepo repository.ProfileRepository,
	sessionService *SessionService,
) *DispatcherAdminService {
	return &DispatcherAdminService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		pincodeRepo:    pincodeRepo,
		profileRepo:    profileRepo,
		sessionService: sessionService,
	}
}

// CreateDispatcherInput 创建派送员输入
type CreateDispatcherInput struct {
	Email    string
	Password string
	Pincodes []string
	Name     string
	Phone    string
}

// DispatcherView 派送员列表项
type DispatcherView struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	Pincodes  []string  `json:"pincodes"`
	CreatedAt time.Time `json:"created_at"`
}

// ParsePincodes 解析邮编列表，支持数组与逗号分隔字符串，去空去重
func ParsePincodes(raw ...string) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0, len(raw))
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			code := strings.TrimSpace(part)
			if code == "" {
				continue
			}
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			result = append(result, code)
		}
	}
	return result
}

// CreateDispatcher 创建派送员，账号、角色、区域在同一事务中写入
func (s *DispatcherAdminService) CreateDispatcher(principal Principal, input CreateDispatcherInput) (*DispatcherView, error) {
	if !principal.CanManageDispatchers() {
		return nil, ErrForbidden
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := s.sessionService.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	pincodes := ParsePincodes(input.Pincodes...)
	if len(pincodes) == 0 {
		return nil, ErrDispatcherPincodesRequired
	}
	exist, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}
	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashed,
		Status:       constants.UserStatusActive,
	}
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			return err
		}
		if err := s.roleRepo.WithTx(tx).Create(&models.UserRole{UserID: user.ID, Role: constants.RoleDispatcher}); err != nil {
			return err
		}
		if name != "" || phone != "" {
			if err := s.profileRepo.WithTx(tx).Upsert(&models.Profile{ID: user.ID, Name: name, Phone: phone}); err != nil {
				return err
			}
		}
		items := make([]models.DispatcherPincode, 0, len(pincodes))
		for _, code := range pincodes {
			items = append(items, models.DispatcherPincode{DispatcherID: user.ID, Pincode: code})
		}
		return s.pincodeRepo.WithTx(tx).CreateBatch(items)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("dispatcher_created",
		"dispatcher_id", user.ID,
		"email", user.Email,
		"pincodes", pincodes,
		"admin_id", principal.UserID,
	)
	return &DispatcherView{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      name,
		Phone:     phone,
		Status:    user.Status,
		Pincodes:  pincodes,
		CreatedAt: user.CreatedAt,
	}, nil
}

// ListDispatchers 派送员列表，关联账号、资料与区域
func (s *DispatcherAdminService) ListDispatchers(principal Principal, page, pageSize int) ([]DispatcherView, int64, error) {
	if !principal.CanManageDispatchers() {
		return nil, 0, ErrForbidden
	}
	ids, total, err := s.roleRepo.ListUserIDsByRole(constants.RoleDispatcher, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []DispatcherView{}, total, nil
	}
	users, err := s.userRepo.ListByIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	profiles, err := s.profileRepo.ListByIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	assignments, err := s.pincodeRepo.ListByDispatcherIDs(ids)
	if err != nil {
		return nil, 0, err
	}

	userMap := make(map[uint]models.User, len(users))
	for _, user := range users {
		userMap[user.ID] = user
	}
	profileMap := make(map[uint]models.Profile, len(profiles))
	for _, profile := range profiles {
		profileMap[profile.ID] = profile
	}
	pincodeMap := make(map[uint][]string, len(ids))
	for _, item := range assignments {
		pincodeMap[item.DispatcherID] = append(pincodeMap[item.DispatcherID], item.Pincode)
	}

	views := make([]DispatcherView, 0, len(ids))
	for _, id := range ids {
		user, ok := userMap[id]
		if !ok {
			continue
		}
		profile := profileMap[id]
		pincodes := pincodeMap[id]
		if pincodes == nil {
			pincodes = []string{}
		}
		views = append(views, DispatcherView{
			UserID:    user.ID,
			Email:     user.Email,
			Name:      profile.Name,
			Phone:     profile.Phone,
			Status:    user.Status,
			Pincodes:  pincodes,
			CreatedAt: user.CreatedAt,
		})
	}
	return views, total, nil
}
