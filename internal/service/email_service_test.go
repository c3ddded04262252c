package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/gcs-courier/internal/config"
	"github.com/gcs-courier/internal/i18n"
)

func TestBuildParcelStatusContent(t *testing.T) {
	tests := []struct {
		name                string
		locale              string
		fromStatus          string
		status              string
		wantSubjectContains []string
		wantBodyContains    []string
	}{
		{
			name:                "paid_en",
			locale:              i18n.LocaleEN,
			fromStatus:          "created",
			status:              "paid",
			wantSubjectContains: []string{"GCS0000000001", "Paid"},
			wantBodyContains:    []string{"380001 → 380099", "from Created to Paid"},
		},
		{
			name:                "shipped_zh",
			locale:              i18n.LocaleZH,
			fromStatus:          "paid",
			status:              "shipped",
			wantSubjectContains: []string{"GCS0000000001", "已发出"},
			wantBodyContains:    []string{"已支付", "已发出"},
		},
		{
			name:                "delivered_en",
			locale:              "en-GB",
			fromStatus:          "shipped",
			status:              "delivered",
			wantSubjectContains: []string{"Delivered"},
			wantBodyContains:    []string{"has been delivered"},
		},
		{
			name:                "unknown_locale_falls_back",
			locale:              "fr-FR",
			fromStatus:          "created",
			status:              "paid",
			wantSubjectContains: []string{"is now Paid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := ParcelStatusEmailInput{
				TrackingCode: "GCS0000000001",
				FromPincode:  "380001",
				ToPincode:    "380099",
				FromStatus:   tt.fromStatus,
				Status:       tt.status,
			}
			subject, body := buildParcelStatusContent(input, tt.locale)
			for _, expected := range tt.wantSubjectContains {
				if !strings.Contains(subject, expected) {
					t.Fatalf("subject missing %q: %s", expected, subject)
				}
			}
			for _, expected := range tt.wantBodyContains {
				if !strings.Contains(body, expected) {
					t.Fatalf("body missing %q: %s", expected, body)
				}
			}
		})
	}
}

func TestSendParcelStatusEmailDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	if svc.Enabled() {
		t.Fatalf("disabled email service should report disabled")
	}
	err := svc.SendParcelStatusEmail("user@example.com", ParcelStatusEmailInput{TrackingCode: "GCS1", Status: "paid"}, i18n.LocaleEN)
	if !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}

	svc = NewEmailService(&config.EmailConfig{Enabled: true})
	err = svc.SendParcelStatusEmail("user@example.com", ParcelStatusEmailInput{TrackingCode: "GCS1", Status: "paid"}, i18n.LocaleEN)
	if !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "smtp_550_no_such_recipient",
			err:  errors.New("550 No such recipient here"),
			want: true,
		},
		{
			name: "smtp_user_unknown",
			err:  errors.New("SMTP 5.1.1 user unknown"),
			want: true,
		},
		{
			name: "smtp_550_mailbox_unavailable",
			err:  errors.New("550 mailbox unavailable"),
			want: true,
		},
		{
			name: "network_timeout",
			err:  errors.New("dial tcp timeout"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tt.err); got != tt.want {
				t.Fatalf("isEmailRecipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	rejected := errors.New("550 No such recipient here")
	if got := normalizeEmailSendError(rejected); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("normalizeEmailSendError() expected ErrEmailRecipientRejected, got %v", got)
	}

	networkErr := errors.New("dial tcp timeout")
	if got := normalizeEmailSendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("normalizeEmailSendError() should keep original error, got %v", got)
	}

	if got := normalizeEmailSendError(nil); got != nil {
		t.Fatalf("normalizeEmailSendError(nil) should be nil, got %v", got)
	}
}
