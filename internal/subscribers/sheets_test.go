package subscribers

import (
	"context"
	"testing"

	"github.com/investordaily/AI-Investor-Daily/internal/config"
)

func TestNewSheetsSource_DisabledWithoutSpreadsheet(t *testing.T) {
	if src := NewSheetsSource(config.SubscribersConfig{}); src != nil {
		t.Error("expected nil source when spreadsheet_id is empty")
	}
}

func TestFetch_MissingCredentialFails(t *testing.T) {
	src := NewSheetsSource(config.SubscribersConfig{
		SpreadsheetID:  "sheet-123",
		ReadRange:      "Subscribers!A2:A",
		CredentialsEnv: "TEST_MISSING_CREDENTIAL_VAR",
	})
	if src == nil {
		t.Fatal("expected non-nil source")
	}

	t.Setenv("TEST_MISSING_CREDENTIAL_VAR", "")
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Error("expected error when credential env var is unset")
	}
}

func TestRecipientsLine(t *testing.T) {
	tests := []struct {
		name   string
		emails []string
		want   string
	}{
		{name: "multiple", emails: []string{"a@example.com", "b@example.com"}, want: "a@example.com,b@example.com"},
		{name: "single", emails: []string{"a@example.com"}, want: "a@example.com"},
		{name: "empty", emails: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecipientsLine(tt.emails); got != tt.want {
				t.Errorf("RecipientsLine(%v) = %q, want %q", tt.emails, got, tt.want)
			}
		})
	}
}
