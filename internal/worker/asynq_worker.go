package worker

import (
	"context"
	"errors"
	"strings"

	"github.com/gcs-courier/internal/logger"
	"github.com/gcs-courier/internal/metrics"
	"github.com/gcs-courier/internal/models"
	"github.com/gcs-courier/internal/provider"
	"github.com/gcs-courier/internal/queue"
	"github.com/gcs-courier/internal/service"

	"github.com/hibiken/asynq"
)

const (
	notifyResultSent    = "sent"
	notifyResultSkipped = "skipped"
	notifyResultFailed  = "failed"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskParcelStatusNotify, c.handleParcelStatusNotify)
}

func (c *Consumer) handleParcelStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_parcel_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseParcelStatusNotifyPayload(task)
	if err != nil {
		logger.Warnw("worker_parcel_status_notify_unmarshal_failed", "error", err)
		metrics.IncNotification(notifyResultFailed)
		return err
	}
	parcel, err := c.ParcelRepo.GetByID(payload.ParcelID)
	if err != nil {
		logger.Warnw("worker_parcel_status_notify_fetch_parcel_failed", "parcel_id", payload.ParcelID, "error", err)
		metrics.IncNotification(notifyResultFailed)
		return err
	}
	if parcel == nil {
		logger.Debugw("worker_parcel_status_notify_skip_parcel_not_found", "parcel_id", payload.ParcelID)
		metrics.IncNotification(notifyResultSkipped)
		return nil
	}

	customer, err := c.UserRepo.GetByID(parcel.CustomerID)
	if err != nil {
		logger.Warnw("worker_parcel_status_notify_fetch_customer_failed",
			"parcel_id", parcel.ID,
			"customer_id", parcel.CustomerID,
			"error", err,
		)
		metrics.IncNotification(notifyResultFailed)
		return err
	}
	receiverEmail := ""
	locale := ""
	if customer != nil {
		receiverEmail = strings.TrimSpace(customer.Email)
		locale = strings.TrimSpace(customer.Locale)
	}
	if receiverEmail == "" {
		logger.Debugw("worker_parcel_status_notify_skip_empty_receiver", "parcel_id", parcel.ID, "tracking_code", parcel.TrackingCode)
		metrics.IncNotification(notifyResultSkipped)
		return nil
	}
	if !c.EmailService.Enabled() {
		logger.Debugw("worker_parcel_status_notify_skip_email_disabled", "parcel_id", parcel.ID, "tracking_code", parcel.TrackingCode)
		metrics.IncNotification(notifyResultSkipped)
		return nil
	}

	input := buildParcelStatusEmailInput(parcel, payload)
	if err := c.EmailService.SendParcelStatusEmail(receiverEmail, input, locale); err != nil {
		if errors.Is(err, service.ErrInvalidEmail) || errors.Is(err, service.ErrEmailRecipientRejected) {
			logger.Warnw("worker_parcel_status_notify_receiver_rejected",
				"parcel_id", parcel.ID,
				"receiver_email", receiverEmail,
				"error", err,
			)
			metrics.IncNotification(notifyResultSkipped)
			return nil
		}
		logger.Warnw("worker_parcel_status_notify_send_failed",
			"parcel_id", parcel.ID,
			"tracking_code", parcel.TrackingCode,
			"receiver_email", receiverEmail,
			"status", input.Status,
			"error", err,
		)
		metrics.IncNotification(notifyResultFailed)
		return err
	}
	logger.Infow("worker_parcel_status_notify_sent",
		"parcel_id", parcel.ID,
		"tracking_code", parcel.TrackingCode,
		"status", input.Status,
	)
	metrics.IncNotification(notifyResultSent)
	return nil
}

// buildParcelStatusEmailInput 优先使用任务载荷中的状态，缺省时回退到包裹当前状态
func buildParcelStatusEmailInput(parcel *models.Parcel, payload queue.ParcelStatusNotifyPayload) service.ParcelStatusEmailInput {
	if parcel == nil {
		return service.ParcelStatusEmailInput{}
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = parcel.Status
	}
	return service.ParcelStatusEmailInput{
		TrackingCode: parcel.TrackingCode,
		FromPincode:  parcel.FromPincode,
		ToPincode:    parcel.ToPincode,
		FromStatus:   strings.TrimSpace(payload.FromStatus),
		Status:       status,
	}
}
