package queue

import (
	"encoding/json"
	"fmt"

	"github.com/gcs-courier/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskParcelStatusNotify 包裹状态变更通知任务
const TaskParcelStatusNotify = constants.TaskParcelStatusNotify

// ParcelStatusNotifyPayload 包裹状态变更通知载荷
type ParcelStatusNotifyPayload struct {
	ParcelID     uint   `json:"parcel_id"`
	FromStatus   string `json:"from_status"`
	Status       string `json:"status"`
	DispatcherID uint   `json:"dispatcher_id"`
}

// NewParcelStatusNotifyTask 创建包裹状态通知任务
func NewParcelStatusNotifyTask(payload ParcelStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskParcelStatusNotify, body), nil
}

// ParseParcelStatusNotifyPayload 解析任务载荷
func ParseParcelStatusNotifyPayload(task *asynq.Task) (ParcelStatusNotifyPayload, error) {
	var payload ParcelStatusNotifyPayload
	if task == nil {
		return payload, fmt.Errorf("nil task")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	if payload.ParcelID == 0 {
		return payload, fmt.Errorf("missing parcel_id")
	}
	return payload, nil
}
