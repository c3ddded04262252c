package queue

import (
	"testing"

	"github.com/gcs-courier/internal/config"

	"github.com/hibiken/asynq"
)

func TestDisabledClientEnqueueIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueParcelStatusNotify(ParcelStatusNotifyPayload{ParcelID: 1, Status: "paid"}); err != nil {
		t.Fatalf("disabled enqueue should be noop, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestParcelStatusNotifyTaskRoundTrip(t *testing.T) {
	task, err := NewParcelStatusNotifyTask(ParcelStatusNotifyPayload{ParcelID: 9, FromStatus: "paid", Status: "shipped", DispatcherID: 3})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskParcelStatusNotify {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	payload, err := ParseParcelStatusNotifyPayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.ParcelID != 9 || payload.Status != "shipped" || payload.DispatcherID != 3 {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	if _, err := ParseParcelStatusNotifyPayload(asynq.NewTask(TaskParcelStatusNotify, []byte(`{"status":"paid"}`))); err == nil {
		t.Fatalf("payload without parcel id should be rejected")
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected redis addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}
