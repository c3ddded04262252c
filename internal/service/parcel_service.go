package service

import (
	"context"
	"strings"
	"time"

	"github.com/gcs-courier/internal/cache"
	"github.com/gcs-courier/internal/config"
	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/logger"
	"github.com/gcs-courier/internal/metrics"
	"github.com/gcs-courier/internal/models"
	"github.com/gcs-courier/internal/queue"
	"github.com/gcs-courier/internal/repository"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const defaultTrackingCacheTTL = 60 * time.Second

// ParcelService 包裹服务
type ParcelService struct {
	parcelRepo       repository.ParcelRepository
	statusLogRepo    repository.ParcelStatusLogRepository
	profileService   *ProfileService
	allocator        *trackingCodeAllocator
	queueClient      *queue.Client
	trackingCacheTTL time.Duration
}

// NewParcelService 创建包裹服务
func NewParcelService(
	parcelRepo repository.ParcelRepository,
	statusLogRepo repository.ParcelStatusLogRepository,
	profileService *ProfileService,
	generator TrackingCodeGenerator,
	queueClient *queue.Client,
	cfg config.TrackingConfig,
) *ParcelService {
	if generator == nil {
		generator = NewRandomTrackingCodeGenerator(cfg)
	}
	ttl := defaultTrackingCacheTTL
	if cfg.CacheTTLSeconds > 0 {
		ttl = time.Duration(cfg.CacheTTLSeconds) * time.Second
	}
	return &ParcelService{
		parcelRepo:     parcelRepo,
		statusLogRepo:  statusLogRepo,
		profileService: profileService,
		allocator: &trackingCodeAllocator{
			generator:   generator,
			exists:      parcelRepo.ExistsTrackingCode,
			prefix:      cfg.Prefix,
			maxAttempts: cfg.MaxAttempts,
		},
		queueClient:      queueClient,
		trackingCacheTTL: ttl,
	}
}

// CreateParcelInput 下单输入
type CreateParcelInput struct {
	FromPincode string
	ToPincode   string
	ParcelType  string
	Weight      decimal.Decimal
	Description string
}

// ParcelDetail 包裹详情
type ParcelDetail struct {
	Parcel   *models.Parcel           `json:"parcel"`
	Timeline []TimelineStep           `json:"timeline"`
	History  []models.ParcelStatusLog `json:"history"`
	Actions  []QueueAction            `json:"actions,omitempty"`
}

// QueueAction 派送员在某一方向上可执行的下一步
type QueueAction struct {
	Direction  string `json:"direction"`
	NextStatus string `json:"next_status"`
}

// QueueItem 派送员队列项
type QueueItem struct {
	Parcel     models.Parcel `json:"parcel"`
	Direction  string        `json:"direction"`
	NextStatus string        `json:"next_status,omitempty"`
}

// DispatcherQueues 派送员发件与收件队列
type DispatcherQueues struct {
	Pincodes []string    `json:"pincodes"`
	Sent     []QueueItem `json:"sent"`
	Receive  []QueueItem `json:"receive"`
}

// TrackingEvent 公开时间线事件
type TrackingEvent struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// TrackingResult 公开查询结果，未找到不视为错误
type TrackingResult struct {
	Found    bool              `json:"found"`
	Parcel   *PublicParcelView `json:"parcel,omitempty"`
	Timeline []TimelineStep    `json:"timeline,omitempty"`
	History  []TrackingEvent   `json:"history,omitempty"`
}

// ParcelOverview 管理端概览
type ParcelOverview struct {
	Total        int64            `json:"total"`
	StatusCounts map[string]int64 `json:"status_counts"`
	CreatedToday int64            `json:"created_today"`
}

// CreateParcel 客户下单
func (s *ParcelService) CreateParcel(ctx context.Context, principal Principal, input CreateParcelInput) (*models.Parcel, error) {
	if !principal.CanCreateParcel() {
		return nil, ErrForbidden
	}
	if _, err := s.profileService.EnsureComplete(principal.UserID); err != nil {
		return nil, err
	}

	fromPincode := strings.TrimSpace(input.FromPincode)
	toPincode := strings.TrimSpace(input.ToPincode)
	if fromPincode == "" || toPincode == "" {
		return nil, ErrParcelPincodeRequired
	}
	parcelType := NormalizeParcelType(input.ParcelType)
	weight, err := ResolveParcelWeight(input.Weight)
	if err != nil {
		return nil, err
	}
	cost, err := ComputeCost(parcelType, weight)
	if err != nil {
		return nil, err
	}

	parcel := &models.Parcel{
		TrackingCode: s.allocator.Allocate(ctx),
		CustomerID:   principal.UserID,
		FromPincode:  fromPincode,
		ToPincode:    toPincode,
		ParcelType:   parcelType,
		Weight:       models.NewWeight(weight),
		Description:  strings.TrimSpace(input.Description),
		Cost:         cost,
		Status:       constants.ParcelStatusCreated,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.parcelRepo.WithTx(tx).Create(parcel); err != nil {
			return err
		}
		return s.statusLogRepo.WithTx(tx).Create(&models.ParcelStatusLog{
			ParcelID:  parcel.ID,
			ToStatus:  constants.ParcelStatusCreated,
			CreatedAt: parcel.CreatedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.IncParcelCreated(parcel.ParcelType)
	logger.Infow("parcel_created",
		"parcel_id", parcel.ID,
		"tracking_code", parcel.TrackingCode,
		"customer_id", parcel.CustomerID,
		"parcel_type", parcel.ParcelType,
		"cost", parcel.Cost.String(),
	)
	return parcel, nil
}

// ListCustomerParcels 客户自己的包裹
func (s *ParcelService) ListCustomerParcels(principal Principal) ([]models.Parcel, error) {
	if principal.IsAnonymous() || principal.Role != constants.RoleCustomer {
		return nil, ErrForbidden
	}
	return s.parcelRepo.ListByCustomer(principal.UserID)
}

// GetParcelDetail 包裹详情，按身份判定可见性
func (s *ParcelService) GetParcelDetail(principal Principal, parcelID uint) (*ParcelDetail, error) {
	parcel, err := s.parcelRepo.GetByID(parcelID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, ErrParcelNotFound
	}
	if !principal.CanViewParcel(parcel) {
		return nil, ErrParcelAccessDenied
	}
	history, err := s.statusLogRepo.ListByParcel(parcel.ID)
	if err != nil {
		return nil, err
	}
	return &ParcelDetail{
		Parcel:   parcel,
		Timeline: ProjectTimeline(parcel.Status),
		History:  history,
		Actions:  availableActions(principal, parcel),
	}, nil
}

// DispatcherQueues 并发加载发件与收件队列
func (s *ParcelService) DispatcherQueues(ctx context.Context, principal Principal) (*DispatcherQueues, error) {
	if principal.IsAnonymous() || principal.Role != constants.RoleDispatcher {
		return nil, ErrForbidden
	}
	result := &DispatcherQueues{
		Pincodes: principal.Pincodes,
		Sent:     []QueueItem{},
		Receive:  []QueueItem{},
	}
	if len(principal.Pincodes) == 0 {
		return result, nil
	}

	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error {
		parcels, err := s.parcelRepo.ListByOriginPincodes(principal.Pincodes)
		if err != nil {
			return err
		}
		result.Sent = buildQueueItems(parcels, constants.DirectionSender)
		return nil
	})
	group.Go(func() error {
		parcels, err := s.parcelRepo.ListByDestinationPincodes(principal.Pincodes)
		if err != nil {
			return err
		}
		result.Receive = buildQueueItems(parcels, constants.DirectionReceiver)
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyStatusTransition 派送员推进包裹状态
func (s *ParcelService) ApplyStatusTransition(ctx context.Context, principal Principal, parcelID uint, targetStatus string) (*models.Parcel, error) {
	parcel, err := s.parcelRepo.GetByID(parcelID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, ErrParcelNotFound
	}
	if !principal.CanMutateParcelStatus(parcel) {
		return nil, ErrParcelAccessDenied
	}

	target := strings.ToLower(strings.TrimSpace(targetStatus))
	if !IsValidParcelStatus(target) {
		return nil, ErrParcelStatusInvalid
	}
	if parcel.Status == target {
		return parcel, nil
	}
	if !canAdvanceTo(principal, parcel, target) {
		return nil, ErrParcelStatusTransitionInvalid
	}

	fromStatus := parcel.Status
	updatedAt := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		updated, err := s.parcelRepo.WithTx(tx).UpdateStatus(parcel.ID, fromStatus, target, updatedAt)
		if err != nil {
			return err
		}
		if !updated {
			// 读取后状态已被其他请求推进
			return ErrParcelStatusTransitionInvalid
		}
		return s.statusLogRepo.WithTx(tx).Create(&models.ParcelStatusLog{
			ParcelID:     parcel.ID,
			FromStatus:   fromStatus,
			ToStatus:     target,
			DispatcherID: principal.UserID,
			CreatedAt:    updatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	parcel.Status = target
	parcel.UpdatedAt = updatedAt

	if err := cache.DelTracking(ctx, parcel.TrackingCode); err != nil {
		logger.Warnw("parcel_tracking_cache_delete_failed", "parcel_id", parcel.ID, "error", err)
	}
	metrics.IncStatusTransition(fromStatus, target)
	logger.Infow("parcel_status_updated",
		"parcel_id", parcel.ID,
		"tracking_code", parcel.TrackingCode,
		"from_status", fromStatus,
		"status", target,
		"dispatcher_id", principal.UserID,
	)
	if s.queueClient != nil {
		payload := queue.ParcelStatusNotifyPayload{
			ParcelID:     parcel.ID,
			FromStatus:   fromStatus,
			Status:       target,
			DispatcherID: principal.UserID,
		}
		if err := s.queueClient.EnqueueParcelStatusNotify(payload); err != nil {
			logger.Warnw("parcel_enqueue_status_notify_failed",
				"parcel_id", parcel.ID,
				"status", target,
				"error", err,
			)
		}
	}
	return parcel, nil
}

// Track 匿名按运单号查询
func (s *ParcelService) Track(ctx context.Context, trackingCode string) (*TrackingResult, error) {
	code := NormalizeTrackingCode(trackingCode)
	if code == "" {
		metrics.IncTrackingLookup("not_found")
		return &TrackingResult{Found: false}, nil
	}

	var cached TrackingResult
	if hit, err := cache.GetTracking(ctx, code, &cached); err == nil && hit {
		metrics.IncTrackingLookup("cache_hit")
		return &cached, nil
	}

	parcel, err := s.parcelRepo.GetByTrackingCode(code)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		metrics.IncTrackingLookup("not_found")
		return &TrackingResult{Found: false}, nil
	}
	logs, err := s.statusLogRepo.ListByParcel(parcel.ID)
	if err != nil {
		return nil, err
	}
	view := NewPublicParcelView(parcel)
	result := &TrackingResult{
		Found:    true,
		Parcel:   &view,
		Timeline: ProjectTimeline(parcel.Status),
		History:  buildTrackingEvents(logs),
	}
	if err := cache.SetTracking(ctx, code, result, s.trackingCacheTTL); err != nil {
		logger.Warnw("parcel_tracking_cache_set_failed", "tracking_code", code, "error", err)
	}
	metrics.IncTrackingLookup("found")
	return result, nil
}

// ListForAdmin 管理端包裹列表
func (s *ParcelService) ListForAdmin(principal Principal, filter repository.ParcelListFilter) ([]models.Parcel, int64, error) {
	if !principal.CanListAllParcels() {
		return nil, 0, ErrForbidden
	}
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	if filter.Status != "" && !IsValidParcelStatus(filter.Status) {
		return nil, 0, ErrParcelStatusInvalid
	}
	return s.parcelRepo.List(filter)
}

// OverviewForAdmin 按状态统计与当日新增
func (s *ParcelService) OverviewForAdmin(principal Principal) (*ParcelOverview, error) {
	if !principal.CanListAllParcels() {
		return nil, ErrForbidden
	}
	counts, err := s.parcelRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	statusCounts := make(map[string]int64, len(parcelStatusFlow))
	var total int64
	for _, status := range parcelStatusFlow {
		statusCounts[status] = counts[status]
		total += counts[status]
	}
	today, err := s.parcelRepo.CountCreatedBetween(now.BeginningOfDay(), now.EndOfDay())
	if err != nil {
		return nil, err
	}
	return &ParcelOverview{
		Total:        total,
		StatusCounts: statusCounts,
		CreatedToday: today,
	}, nil
}

// HistoryForAdmin 包裹状态变更记录
func (s *ParcelService) HistoryForAdmin(principal Principal, parcelID uint) ([]models.ParcelStatusLog, error) {
	if !principal.CanListAllParcels() {
		return nil, ErrForbidden
	}
	parcel, err := s.parcelRepo.GetByID(parcelID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, ErrParcelNotFound
	}
	return s.statusLogRepo.ListByParcel(parcel.ID)
}

// canAdvanceTo 目标状态必须是所持方向上的下一状态
func canAdvanceTo(principal Principal, parcel *models.Parcel, target string) bool {
	for _, direction := range principal.Directions(parcel) {
		if next, ok := NextStatus(parcel.Status, direction); ok && next == target {
			return true
		}
	}
	return false
}

func availableActions(principal Principal, parcel *models.Parcel) []QueueAction {
	directions := principal.Directions(parcel)
	if len(directions) == 0 {
		return nil
	}
	actions := make([]QueueAction, 0, len(directions))
	for _, direction := range directions {
		if next, ok := NextStatus(parcel.Status, direction); ok {
			actions = append(actions, QueueAction{Direction: direction, NextStatus: next})
		}
	}
	return actions
}

func buildQueueItems(parcels []models.Parcel, direction string) []QueueItem {
	items := make([]QueueItem, 0, len(parcels))
	for _, parcel := range parcels {
		next, _ := NextStatus(parcel.Status, direction)
		items = append(items, QueueItem{
			Parcel:     parcel,
			Direction:  direction,
			NextStatus: next,
		})
	}
	return items
}

func buildTrackingEvents(logs []models.ParcelStatusLog) []TrackingEvent {
	events := make([]TrackingEvent, 0, len(logs))
	for _, item := range logs {
		events = append(events, TrackingEvent{Status: item.ToStatus, At: item.CreatedAt})
	}
	return events
}
