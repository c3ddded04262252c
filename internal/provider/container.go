package provider

import (
	"github.com/gcs-courier/internal/authz"
	"github.com/gcs-courier/internal/cache"
	"github.com/gcs-courier/internal/config"
	"github.com/gcs-courier/internal/logger"
	"github.com/gcs-courier/internal/models"
	"github.com/gcs-courier/internal/queue"
	"github.com/gcs-courier/internal/repository"
	"github.com/gcs-courier/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo              repository.UserRepository
	UserRoleRepo          repository.UserRoleRepository
	ProfileRepo           repository.ProfileRepository
	DispatcherPincodeRepo repository.DispatcherPincodeRepository
	ParcelRepo            repository.ParcelRepository
	ParcelStatusLogRepo   repository.ParcelStatusLogRepository
	UserLoginLogRepo      repository.UserLoginLogRepository

	// Services
	AuthzService           *authz.Service
	SessionService         *service.SessionService
	ProfileService         *service.ProfileService
	ParcelService          *service.ParcelService
	DispatcherAdminService *service.DispatcherAdminService
	EmailService           *service.EmailService
	CaptchaService         *service.CaptchaService
	UserLoginLogService    *service.UserLoginLogService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.UserRoleRepo = repository.NewUserRoleRepository(db)
	c.ProfileRepo = repository.NewProfileRepository(db)
	c.DispatcherPincodeRepo = repository.NewDispatcherPincodeRepository(db)
	c.ParcelRepo = repository.NewParcelRepository(db)
	c.ParcelStatusLogRepo = repository.NewParcelStatusLogRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.SessionService = service.NewSessionService(c.Config, c.UserRepo, c.UserRoleRepo, c.DispatcherPincodeRepo)
	c.ProfileService = service.NewProfileService(c.ProfileRepo)
	c.ParcelService = service.NewParcelService(
		c.ParcelRepo,
		c.ParcelStatusLogRepo,
		c.ProfileService,
		nil,
		c.QueueClient,
		c.Config.Tracking,
	)
	c.DispatcherAdminService = service.NewDispatcherAdminService(
		c.UserRepo,
		c.UserRoleRepo,
		c.DispatcherPincodeRepo,
		c.ProfileRepo,
		c.SessionService,
	)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
}
