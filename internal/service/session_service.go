package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/gcs-courier/internal/cache"
	"github.com/gcs-courier/internal/config"
	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/logger"
	"github.com/gcs-courier/internal/models"
	"github.com/gcs-courier/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionClaims 会话 JWT 声明
type SessionClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// Identity 已解析的当前身份
type Identity struct {
	UserID   uint     `json:"user_id"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Pincodes []string `json:"pincodes,omitempty"`
}

// Principal 转换为访问判定主体
func (i *Identity) Principal() Principal {
	if i == nil {
		return AnonymousPrincipal()
	}
	return Principal{UserID: i.UserID, Role: i.Role, Pincodes: i.Pincodes}
}

// Landing 按角色返回根路径跳转目标
func (i *Identity) Landing() string {
	if i == nil {
		return constants.LandingAuth
	}
	return LandingForRole(i.Role)
}

// IdentityResolver 将会话令牌解析为身份
type IdentityResolver interface {
	ResolveToken(ctx context.Context, token string) (*Identity, error)
}

// SessionResult 登录/注册结果
type SessionResult struct {
	User      *models.User
	Identity  *Identity
	Token     string
	ExpiresAt time.Time
}

// SessionService 账号会话服务
type SessionService struct {
	cfg         *config.Config
	userRepo    repository.UserRepository
	roleRepo    repository.UserRoleRepository
	pincodeRepo repository.DispatcherPincodeRepository
}

// NewSessionService 创建会话服务
func NewSessionService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	roleRepo repository.UserRoleRepository,
	pincodeRepo repository.DispatcherPincodeRepository,
) *SessionService {
	return &SessionService{
		cfg:         cfg,
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		pincodeRepo: pincodeRepo,
	}
}

// HashPassword 使用 bcrypt 加密密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码是否符合策略
func (s *SessionService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// SignUp 注册客户账号，账号与角色在同一事务中写入
func (s *SessionService) SignUp(ctx context.Context, email, password string) (*SessionResult, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(password); err != nil {
		return nil, err
	}
	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Email:        normalized,
		PasswordHash: hashed,
		Status:       constants.UserStatusActive,
		LastLoginAt:  &now,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			return err
		}
		return s.roleRepo.WithTx(tx).Create(&models.UserRole{UserID: user.ID, Role: constants.RoleCustomer})
	})
	if err != nil {
		return nil, err
	}

	identity := &Identity{UserID: user.ID, Email: user.Email, Role: constants.RoleCustomer}
	return s.issue(ctx, user, identity)
}

// SignIn 邮箱密码登录
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*SessionResult, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !isActiveUserStatus(user.Status) {
		return nil, ErrUserDisabled
	}

	identity, err := s.loadIdentity(user)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.userRepo.TouchLastLogin(user.ID, now); err != nil {
		logger.Warnw("session_touch_last_login_failed", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now
	return s.issue(ctx, user, identity)
}

// SignOut 使该账号的全部会话失效
func (s *SessionService) SignOut(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrInvalidToken
	}
	if err := s.userRepo.RevokeTokens(userID, time.Now()); err != nil {
		return err
	}
	if err := cache.DelSessionState(ctx, userID); err != nil {
		logger.Warnw("session_state_cache_delete_failed", "user_id", userID, "error", err)
	}
	return nil
}

// ResolveToken 解析令牌并校验账号状态与令牌版本
func (s *SessionService) ResolveToken(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if cached, hit, cacheErr := cache.GetSessionState(ctx, claims.UserID); cacheErr == nil && hit && cached != nil {
		if !isActiveUserStatus(cached.Status) {
			return nil, ErrUserDisabled
		}
		if claims.TokenVersion != cached.TokenVersion || !isIssuedAfterInvalidBeforeUnix(claims.IssuedAt, cached.TokenInvalidBefore) {
			return nil, ErrTokenRevoked
		}
		return &Identity{UserID: cached.UserID, Email: cached.Email, Role: cached.Role, Pincodes: cached.Pincodes}, nil
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	if !isActiveUserStatus(user.Status) {
		return nil, ErrUserDisabled
	}
	if claims.TokenVersion != user.TokenVersion || !isIssuedAfterInvalidBefore(claims.IssuedAt, user.TokenInvalidBefore) {
		return nil, ErrTokenRevoked
	}
	identity, err := s.loadIdentity(user)
	if err != nil {
		return nil, err
	}
	_ = cache.SetSessionState(ctx, cache.BuildSessionState(user, identity.Role, identity.Pincodes))
	return identity, nil
}

// GenerateToken 签发会话令牌
func (s *SessionService) GenerateToken(user *models.User, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(resolveJWTExpireHours(s.cfg.JWT)) * time.Hour)
	claims := SessionClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         role,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    strings.TrimSpace(s.cfg.JWT.Issuer),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken 解析会话令牌
func (s *SessionService) ParseToken(tokenString string) (*SessionClaims, error) {
	if strings.TrimSpace(s.cfg.JWT.SecretKey) == "" {
		return nil, ErrInvalidToken
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &SessionClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *SessionService) issue(ctx context.Context, user *models.User, identity *Identity) (*SessionResult, error) {
	token, expiresAt, err := s.GenerateToken(user, identity.Role)
	if err != nil {
		return nil, err
	}
	_ = cache.SetSessionState(ctx, cache.BuildSessionState(user, identity.Role, identity.Pincodes))
	return &SessionResult{User: user, Identity: identity, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *SessionService) loadIdentity(user *models.User) (*Identity, error) {
	role, err := s.roleRepo.GetByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleMissing
	}
	identity := &Identity{UserID: user.ID, Email: user.Email, Role: role.Role}
	if role.Role == constants.RoleDispatcher {
		pincodes, err := s.pincodeRepo.ListPincodes(user.ID)
		if err != nil {
			return nil, err
		}
		identity.Pincodes = pincodes
	}
	return identity, nil
}

// LandingForRole 角色对应的落地页
func LandingForRole(role string) string {
	switch role {
	case constants.RoleCustomer:
		return constants.LandingCustomer
	case constants.RoleDispatcher:
		return constants.LandingDispatcher
	case constants.RoleAdmin:
		return constants.LandingAdmin
	default:
		return constants.LandingAuth
	}
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

func isActiveUserStatus(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), constants.UserStatusActive)
}

func isIssuedAfterInvalidBefore(issuedAt *jwt.NumericDate, invalidBefore *time.Time) bool {
	if invalidBefore == nil {
		return true
	}
	return isIssuedAfterInvalidBeforeUnix(issuedAt, invalidBefore.Unix())
}

func isIssuedAfterInvalidBeforeUnix(issuedAt *jwt.NumericDate, invalidBefore int64) bool {
	if invalidBefore <= 0 {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBefore
}

func resolveJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 24
	}
	return cfg.ExpireHours
}
