// Cloud store adapter over the Drive and Sheets APIs
package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/lilpaoo/jimbo/internal/shared"
)

// The Sheets API enforces a per-user, per-minute request quota.
const cloudRequestsPerMinute = 60

// RangeWrite is one cell-range write within a batch.
type RangeWrite struct {
	Range  string
	Values [][]any
}

// CloudStore wraps document search/creation and cell-range operations
// against the user's spreadsheet. The HTTP client passed in must
// already attach an access credential; the adapter never acquires
// credentials itself.
type CloudStore struct {
	drive   *drive.Service
	sheets  *sheets.Service
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewCloudStore creates the adapter. Extra options (such as an endpoint
// override) are appended after the client option, so tests can point
// the adapter at a local server.
func NewCloudStore(ctx context.Context, client *http.Client, logger *log.Logger, opts ...option.ClientOption) (*CloudStore, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	all := append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)

	driveSvc, err := drive.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}
	sheetsSvc, err := sheets.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &CloudStore{
		drive:   driveSvc,
		sheets:  sheetsSvc,
		limiter: rate.NewLimiter(rate.Every(time.Minute/cloudRequestsPerMinute), 1),
		logger:  logger,
	}, nil
}

// FindDocument searches for a non-trashed spreadsheet by exact name.
// Returns the empty string when no document matches.
func (c *CloudStore) FindDocument(ctx context.Context, name string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	q := fmt.Sprintf("name='%s' and mimeType='application/vnd.google-apps.spreadsheet' and trashed=false", name)
	list, err := c.drive.Files.List().Q(q).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("document search failed: %w", err)
	}

	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

// CreateDocument creates a spreadsheet with the given named sub-sheets
// and returns its id.
func (c *CloudStore) CreateDocument(ctx context.Context, name string, sheetNames []string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	doc := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: name},
	}
	for _, sheetName := range sheetNames {
		doc.Sheets = append(doc.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: sheetName},
		})
	}

	created, err := c.sheets.Spreadsheets.Create(doc).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("document creation failed: %w", err)
	}

	c.logger.Info("created data document", "name", name, "id", created.SpreadsheetId)
	return created.SpreadsheetId, nil
}

// BatchRead reads multiple cell ranges in one call, returning the
// values per range in request order.
func (c *CloudStore) BatchRead(ctx context.Context, documentID string, ranges []string) ([][][]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.sheets.Spreadsheets.Values.BatchGet(documentID).Ranges(ranges...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("batch read failed: %w", err)
	}

	values := make([][][]any, len(resp.ValueRanges))
	for i, vr := range resp.ValueRanges {
		values[i] = vr.Values
	}
	return values, nil
}

// BatchWrite writes multiple cell ranges in one call.
func (c *CloudStore) BatchWrite(ctx context.Context, documentID string, writes []RangeWrite) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
	}
	for _, w := range writes {
		req.Data = append(req.Data, &sheets.ValueRange{
			Range:  w.Range,
			Values: w.Values,
		})
	}

	if _, err := c.sheets.Spreadsheets.Values.BatchUpdate(documentID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("batch write failed: %w", err)
	}
	return nil
}

// ClearRange clears all values in a range (or an entire sheet when the
// range is a bare sheet name).
func (c *CloudStore) ClearRange(ctx context.Context, documentID, rng string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if _, err := c.sheets.Spreadsheets.Values.Clear(documentID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	return nil
}

// AppendRow appends one row after the last row of the given range.
func (c *CloudStore) AppendRow(ctx context.Context, documentID, rng string, row []any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body := &sheets.ValueRange{Values: [][]any{row}}
	_, err := c.sheets.Spreadsheets.Values.Append(documentID, rng, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append failed: %w", err)
	}
	return nil
}
