// Package subscribers reads the newsletter recipient list from a Google
// Sheet. Every failure degrades to an empty list: a missing credential or an
// unreachable spreadsheet must never block newsletter generation.
package subscribers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/investordaily/AI-Investor-Daily/internal/config"
)

// SheetsSource reads one column of email addresses from a spreadsheet using
// a service-account credential.
type SheetsSource struct {
	cfg config.SubscribersConfig
}

// NewSheetsSource creates a SheetsSource. It returns nil when no spreadsheet
// is configured, which callers treat as "subscriber list disabled".
func NewSheetsSource(cfg config.SubscribersConfig) *SheetsSource {
	if cfg.SpreadsheetID == "" {
		return nil
	}
	return &SheetsSource{cfg: cfg}
}

// Fetch returns the subscriber email addresses from the configured range.
func (s *SheetsSource) Fetch(ctx context.Context) ([]string, error) {
	blob, err := s.credentialJSON()
	if err != nil {
		return nil, err
	}

	creds, err := google.CredentialsFromJSON(ctx, blob, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service-account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}

	resp, err := svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, s.cfg.ReadRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading range %q: %w", s.cfg.ReadRange, err)
	}

	var emails []string
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		email, ok := row[0].(string)
		if !ok {
			continue
		}
		if email = strings.TrimSpace(email); email != "" {
			emails = append(emails, email)
		}
	}
	return emails, nil
}

// credentialJSON resolves the configured env var to the credential bytes.
// The variable may hold either the JSON blob itself or a path to it.
func (s *SheetsSource) credentialJSON() ([]byte, error) {
	raw := os.Getenv(s.cfg.CredentialsEnv)
	if raw == "" {
		return nil, fmt.Errorf("environment variable %s is not set", s.cfg.CredentialsEnv)
	}
	if strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return []byte(raw), nil
	}
	data, err := os.ReadFile(raw)
	if err != nil {
		return nil, fmt.Errorf("reading credential file: %w", err)
	}
	return data, nil
}

// RecipientsLine joins the emails into the comma-separated line written next
// to the newsletter.
func RecipientsLine(emails []string) string {
	return strings.Join(emails, ",")
}
