package csvimport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/protrack-service/internal/i18n"
	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/pkg/clock"
	"go.uber.org/zap"
)

// Store is the persistence the import needs: which of these IDs already
// exist, and one all-or-nothing insert.
type Store interface {
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)
	BulkInsert(ctx context.Context, products []model.Product) error
}

// Owner is stamped on every imported product.
type Owner struct {
	CompanyID string
	UserID    string
}

var (
	ErrEmptyFile    = errors.New("csv has no data rows")
	ErrFileTooLarge = errors.New("csv exceeds the size limit")
)

// Batch is the outcome of parsing before anything is written.
type Batch struct {
	Products   []model.Product `json:"products"`
	Duplicates []string        `json:"duplicates"`
	Warnings   []string        `json:"warnings"`
	Errors     []string        `json:"errors"`
}

type Data struct {
	Imported   int      `json:"imported"`
	Duplicates []string `json:"duplicates"`
	Warnings   []string `json:"warnings"`
	Errors     []string `json:"errors"`
	Message    string   `json:"message"`
}

// Response is returned for every import, successful or not.
type Response struct {
	Success bool   `json:"success"`
	Data    *Data  `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Importer struct {
	store    Store
	tr       *i18n.Translator
	clock    clock.Clock
	logger   logger.ZapLogger
	maxBytes int
}

type Option func(*Importer)

func WithClock(c clock.Clock) Option {
	return func(im *Importer) { im.clock = c }
}

// WithMaxBytes rejects files larger than n bytes. Zero disables the check.
func WithMaxBytes(n int) Option {
	return func(im *Importer) { im.maxBytes = n }
}

func NewImporter(store Store, tr *i18n.Translator, log logger.ZapLogger, opts ...Option) *Importer {
	im := &Importer{
		store:  store,
		tr:     tr,
		clock:  clock.RealClock{},
		logger: log,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import parses text, skips IDs the store already has and inserts the rest
// in one call. Failures come back as an unsuccessful Response, never as a Go
// error.
func (im *Importer) Import(ctx context.Context, text string, owner Owner) *Response {
	log := im.logger.With(zap.String("company_id", owner.CompanyID), zap.String("user_id", owner.UserID))

	if err := im.CheckSize(text); err != nil {
		return im.fail("import.too_large", map[string]any{"Max": im.maxBytes})
	}

	lines := splitLines(text)
	if len(lines) < 2 {
		return im.fail("import.empty_file", nil)
	}
	cols := ResolveColumns(splitRow(lines[0]))

	var existing []string
	if ids := scanIDs(lines, cols); len(ids) > 0 {
		found, err := im.store.ExistingIDs(ctx, ids)
		if err != nil {
			log.Error("failed to look up existing product ids", zap.Error(err))
			return im.fail("import.lookup_failed", map[string]any{"Reason": err.Error()})
		}
		existing = found
	}

	batch := im.parseLines(lines, cols, existing, owner, log)
	if len(batch.Products) == 0 && len(batch.Duplicates) == 0 {
		return im.fail("import.no_products", nil)
	}

	if len(batch.Products) > 0 {
		if err := im.store.BulkInsert(ctx, batch.Products); err != nil {
			log.Error("bulk insert rejected", zap.Int("rows", len(batch.Products)), zap.Error(err))
			return im.fail("import.insert_failed", map[string]any{"Reason": err.Error()})
		}
	}

	log.Info("csv import finished",
		zap.Int("imported", len(batch.Products)),
		zap.Int("duplicates", len(batch.Duplicates)),
		zap.Int("warnings", len(batch.Warnings)),
		zap.Int("errors", len(batch.Errors)),
	)

	return &Response{
		Success: true,
		Data: &Data{
			Imported:   len(batch.Products),
			Duplicates: batch.Duplicates,
			Warnings:   nilIfEmpty(batch.Warnings),
			Errors:     nilIfEmpty(batch.Errors),
			Message:    im.summary(batch),
		},
	}
}

// CheckSize applies the WithMaxBytes limit.
func (im *Importer) CheckSize(text string) error {
	if im.maxBytes > 0 && len(text) > im.maxBytes {
		return fmt.Errorf("%w: %d > %d bytes", ErrFileTooLarge, len(text), im.maxBytes)
	}
	return nil
}

// Parse runs the row stage alone against a known set of existing IDs.
func (im *Importer) Parse(text string, existingIDs []string, owner Owner) (*Batch, error) {
	if err := im.CheckSize(text); err != nil {
		return nil, err
	}
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil, ErrEmptyFile
	}
	cols := ResolveColumns(splitRow(lines[0]))
	return im.parseLines(lines, cols, existingIDs, owner, im.logger), nil
}

// CandidateIDs lists the explicit IDs in text, for callers that look up the
// existing ones themselves before calling Parse.
func CandidateIDs(text string) []string {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil
	}
	return scanIDs(lines, ResolveColumns(splitRow(lines[0])))
}

func (im *Importer) parseLines(lines []string, cols ColumnMapping, existingIDs []string, owner Owner, log logger.ZapLogger) *Batch {
	now := im.clock.Now().UTC()
	defaultExpiry := DefaultExpiry(now)

	existing := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}
	seen := make(map[string]struct{})

	batch := &Batch{Duplicates: []string{}}
	idIdx := cols.Index(FieldID)

	for i := 1; i < len(lines); i++ {
		row := i + 1
		values := splitRow(lines[i])
		if values[0] == "" {
			continue
		}

		id := ""
		if idIdx >= 0 && idIdx < len(values) {
			id = values[idIdx]
		}
		if id == "" {
			id = fmt.Sprintf("PROD-%d-%d", now.UnixMilli(), i)
		}

		if _, dup := existing[id]; dup {
			batch.Duplicates = append(batch.Duplicates, im.tr.T("import.duplicate_existing", map[string]any{"Row": row, "ID": id}))
			continue
		}
		if _, dup := seen[id]; dup {
			batch.Duplicates = append(batch.Duplicates, im.tr.T("import.duplicate_in_file", map[string]any{"Row": row, "ID": id}))
			continue
		}

		p, warnings, err := im.parseRow(values, cols, rowDefaults{
			ID:              id,
			Nombre:          fmt.Sprintf("Producto %d", i),
			FechaExpiracion: defaultExpiry,
			CompanyID:       owner.CompanyID,
			UserID:          owner.UserID,
			Now:             now,
		}, row)
		if err != nil {
			log.Warn("csv row rejected", zap.Int("row", row), zap.Error(err))
			batch.Errors = append(batch.Errors, im.tr.T("import.row_error", map[string]any{"Row": row}))
			continue
		}

		seen[id] = struct{}{}
		batch.Products = append(batch.Products, p)
		batch.Warnings = append(batch.Warnings, warnings...)
	}
	return batch
}

// parseRow turns a panic anywhere in the row into an error for that row.
func (im *Importer) parseRow(values []string, cols ColumnMapping, d rowDefaults, row int) (p model.Product, warnings []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	b := newRowBuilder(values, cols)

	if raw := b.cell(FieldFechaExpiracion); raw != "" {
		date, derr := NormalizeDate(raw)
		if derr == nil {
			d.FechaExpiracion = date
		} else {
			warnings = append(warnings, im.tr.T("import.invalid_date", map[string]any{
				"Row": row, "Value": raw, "Default": d.FechaExpiracion,
			}))
		}
	}

	p, err = b.build(d)
	if err != nil {
		return model.Product{}, nil, err
	}
	for _, issue := range b.issues {
		warnings = append(warnings, im.tr.T("import.invalid_number", map[string]any{
			"Row": row, "Value": issue.Value, "Field": issue.Field,
		}))
	}
	return p, warnings, nil
}

func (im *Importer) summary(b *Batch) string {
	parts := []string{im.tr.T("import.summary_imported", map[string]any{"Count": len(b.Products)})}
	if n := len(b.Duplicates); n > 0 {
		parts = append(parts, im.tr.T("import.summary_duplicates", map[string]any{"Count": n}))
	}
	if n := len(b.Warnings); n > 0 {
		parts = append(parts, im.tr.T("import.summary_warnings", map[string]any{"Count": n}))
	}
	return strings.Join(parts, ". ")
}

func (im *Importer) fail(id string, data map[string]any) *Response {
	return &Response{Success: false, Error: im.tr.T(id, data)}
}

// splitLines drops blank lines; the first remaining line is the header.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// splitRow is a plain comma split. Quoted fields are not supported.
func splitRow(line string) []string {
	values := strings.Split(line, ",")
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
	return values
}

// scanIDs collects the explicit IDs in the file so only those are looked up.
func scanIDs(lines []string, cols ColumnMapping) []string {
	idIdx := cols.Index(FieldID)
	if idIdx < 0 {
		return nil
	}
	var ids []string
	for _, line := range lines[1:] {
		values := splitRow(line)
		if values[0] == "" || idIdx >= len(values) || values[idIdx] == "" {
			continue
		}
		ids = append(ids, values[idIdx])
	}
	return ids
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

// DefaultExpiry is the expiration given to products whose date is missing or
// unreadable: one year from now.
func DefaultExpiry(now time.Time) string {
	return now.UTC().AddDate(1, 0, 0).Format(isoDate)
}
