// internal/infrastructure/datastore/sheets/sheets.go
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/infrastructure/datastore"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const revokeURL = "https://oauth2.googleapis.com/revoke"

// Backend opens Google Sheets sources with a user access token
type Backend struct {
	spreadsheetID string
	names         datastore.Names
	logger        *logrus.Logger

	endpoint   string
	httpClient *http.Client
	revokeURL  string
}

// NewBackend creates a Google Sheets backend for the configured spreadsheet
func NewBackend(cfg config.DatastoreConfig, logger *logrus.Logger) *Backend {
	return &Backend{
		spreadsheetID: cfg.SpreadsheetID,
		names:         datastore.Names(cfg.Sheets),
		logger:        logger,
		httpClient:    http.DefaultClient,
		revokeURL:     revokeURL,
	}
}

// WithEndpoint points every Google API call at base using client, which then
// carries authentication itself. Used by tests.
func (b *Backend) WithEndpoint(base string, client *http.Client) *Backend {
	b.endpoint = base
	b.httpClient = client
	b.revokeURL = strings.TrimRight(base, "/") + "/revoke"
	return b
}

func (b *Backend) clientOptions(credential string) []option.ClientOption {
	if b.endpoint != "" {
		return []option.ClientOption{
			option.WithEndpoint(b.endpoint),
			option.WithHTTPClient(b.httpClient),
		}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: credential, TokenType: "Bearer"})
	return []option.ClientOption{option.WithTokenSource(ts)}
}

// Open creates a Sheets client bound to the credential
func (b *Backend) Open(ctx context.Context, credential string) (datastore.Source, error) {
	if credential == "" {
		return nil, datastore.ErrUnauthorized
	}
	svc, err := sheetsapi.NewService(ctx, b.clientOptions(credential)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &Source{
		svc:           svc,
		spreadsheetID: b.spreadsheetID,
		names:         b.names,
		logger:        b.logger,
	}, nil
}

// ResolveEmail asks the userinfo endpoint for the credential owner
func (b *Backend) ResolveEmail(ctx context.Context, credential string) (string, error) {
	svc, err := oauth2api.NewService(ctx, b.clientOptions(credential)...)
	if err != nil {
		return "", fmt.Errorf("failed to create oauth2 client: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", mapError(err)
	}
	return info.Email, nil
}

// Revoke invalidates the access token at Google
func (b *Backend) Revoke(ctx context.Context, credential string) error {
	form := url.Values{"token": {credential}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build revoke request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token revoke returned status %d", resp.StatusCode)
	}
	return nil
}

// Source reads and appends rows of one spreadsheet
type Source struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	names         datastore.Names
	logger        *logrus.Logger
}

// ReadRows returns the data rows of a table
func (s *Source) ReadRows(ctx context.Context, table datastore.Table) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.names.ReadRange(table)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, mapError(err))
	}

	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, v := range raw {
			row[j] = cellString(v)
		}
		rows[i] = row
	}
	return rows, nil
}

// AppendRows inserts rows after the last row of a table
func (s *Source) AppendRows(ctx context.Context, table datastore.Table, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = make([]interface{}, len(row))
		for j, c := range row {
			values[i][j] = c
		}
	}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.names.AppendRange(table), &sheetsapi.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", table, mapError(err))
	}
	return nil
}

// EnsureSchema adds missing tabs and rewrites every header row
func (s *Source) EnsureSchema(ctx context.Context) error {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet: %w", mapError(err))
	}

	existing := make(map[string]bool, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			existing[sh.Properties.Title] = true
		}
	}

	var requests []*sheetsapi.Request
	for _, t := range datastore.AllTables() {
		name := s.names.Name(t)
		if existing[name] {
			continue
		}
		requests = append(requests, &sheetsapi.Request{
			AddSheet: &sheetsapi.AddSheetRequest{Properties: &sheetsapi.SheetProperties{Title: name}},
		})
	}
	if len(requests) > 0 {
		_, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{Requests: requests}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to add sheets: %w", mapError(err))
		}
		s.logger.WithField("added", len(requests)).Info("Created missing sheets")
	}

	data := make([]*sheetsapi.ValueRange, 0, len(datastore.AllTables()))
	for _, t := range datastore.AllTables() {
		header := t.Header()
		row := make([]interface{}, len(header))
		for i, h := range header {
			row[i] = h
		}
		data = append(data, &sheetsapi.ValueRange{Range: s.names.HeaderRange(t), Values: [][]interface{}{row}})
	}
	_, err = s.svc.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write headers: %w", mapError(err))
	}
	return nil
}

// Probe fetches spreadsheet metadata to check the credential
func (s *Source) Probe(ctx context.Context) error {
	if _, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do(); err != nil {
		return mapError(err)
	}
	return nil
}

// mapError turns rejected credentials and revoked scopes into ErrUnauthorized
func mapError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	switch gerr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", datastore.ErrUnauthorized, gerr.Message)
	}
	return err
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		if c {
			return "TRUE"
		}
		return "FALSE"
	case nil:
		return ""
	default:
		return fmt.Sprint(c)
	}
}
