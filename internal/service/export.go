package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"talent-horizon/internal/clients"
	"talent-horizon/internal/domain"
	"talent-horizon/internal/textfmt"
)

const (
	SheetCreditCards = "Credit Cards"
	SheetTaxRefunds  = "Tax Refunds"

	exportType       = "applications"
	exportSetKey     = "export_ids:"
	exportTTL        = 20 * time.Minute
	defaultURLExpiry = 48 * time.Hour
)

var ErrExportNotFound = errors.New("export not found")

// ApplicationSource is the read side of a client's application store.
type ApplicationSource interface {
	CreditCardApplications() []domain.CreditCardApplication
	TaxRefundApplications() []domain.TaxRefundApplication
}

type ExportNotifier interface {
	NotifyExportProgress(ctx context.Context, clientID, exportID string, progress float64, stage string) error
	NotifyExportComplete(ctx context.Context, clientID, exportID, url, filename string) error
	NotifyExportFailed(ctx context.Context, clientID, exportID, errMsg string) error
}

// ExportRequest selects the columns of each sheet by key. Empty selects the
// default columns.
type ExportRequest struct {
	CreditCardFields []string `json:"credit_card_fields"`
	TaxRefundFields  []string `json:"tax_refund_fields"`
}

type ExportStatus struct {
	Key      string        `json:"key"`
	Type     string        `json:"type"`
	ClientID string        `json:"client_id"`
	Fields   ExportRequest `json:"fields"`
	Progress float64       `json:"progress"`
	FileURL  *string       `json:"file_url"`
	FileName string        `json:"file_name,omitempty"`
	Created  time.Time     `json:"created_at"`
}

type ExportResult struct {
	ID       string `json:"export_id"`
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Rows     int    `json:"rows"`
}

type ExportOptions struct {
	Files    *clients.StorageClient
	S3       *clients.S3Client
	Redis    *clients.RedisClient
	Notifier ExportNotifier
	Logger   *zap.Logger
	Now      func() time.Time
	// URLExpiry bounds presigned S3 links. Defaults to 48h.
	URLExpiry time.Duration
}

type ExportService struct {
	files     *clients.StorageClient
	s3        *clients.S3Client
	redis     *clients.RedisClient
	notifier  ExportNotifier
	log       *zap.Logger
	now       func() time.Time
	urlExpiry time.Duration
}

func NewExportService(opts ExportOptions) *ExportService {
	s := &ExportService{
		files:     opts.Files,
		s3:        opts.S3,
		redis:     opts.Redis,
		notifier:  opts.Notifier,
		log:       opts.Logger,
		now:       opts.Now,
		urlExpiry: opts.URLExpiry,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.urlExpiry <= 0 {
		s.urlExpiry = defaultURLExpiry
	}
	return s
}

// ExportApplications writes both collections of src into one workbook,
// stores it and returns where it can be downloaded. Progress is published
// to the client's socket and, when redis is configured, to the export
// status list.
func (s *ExportService) ExportApplications(ctx context.Context, clientID string, src ApplicationSource, req ExportRequest) (ExportResult, error) {
	ccCols, err := pickColumns(req.CreditCardFields, defaultCreditCardFields, creditCardColumns)
	if err != nil {
		return ExportResult{}, err
	}
	trCols, err := pickColumns(req.TaxRefundFields, defaultTaxRefundFields, taxRefundColumns)
	if err != nil {
		return ExportResult{}, err
	}
	if s.files == nil && s.s3 == nil {
		return ExportResult{}, errors.New("no export destination configured")
	}

	status := &ExportStatus{
		Key:      "exports:" + uuid.NewString(),
		Type:     exportType,
		ClientID: clientID,
		Fields:   req,
		Created:  s.now().UTC(),
	}
	s.progress(ctx, status, 0, "started")

	result, err := s.export(ctx, status, src, ccCols, trCols)
	if err != nil {
		s.log.Error("export failed",
			zap.String("client_id", clientID),
			zap.String("export_id", status.Key),
			zap.Error(err),
		)
		if s.notifier != nil {
			_ = s.notifier.NotifyExportFailed(ctx, clientID, status.Key, err.Error())
		}
		return ExportResult{}, err
	}
	return result, nil
}

func (s *ExportService) export(
	ctx context.Context,
	status *ExportStatus,
	src ApplicationSource,
	ccCols []CreditCardColumn,
	trCols []TaxRefundColumn,
) (ExportResult, error) {
	f := excelize.NewFile()
	defer f.Close()

	_ = f.SetDocProps(&excelize.DocProperties{
		Creator: "client_" + status.ClientID,
		Created: status.Created.Format(time.RFC3339),
	})
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return ExportResult{}, fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetName(f.GetSheetName(0), SheetCreditCards); err != nil {
		return ExportResult{}, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetTaxRefunds); err != nil {
		return ExportResult{}, fmt.Errorf("create sheet: %w", err)
	}

	creditCards := src.CreditCardApplications()
	if err := writeSheet(f, SheetCreditCards, header, ccCols, creditCards,
		func(c CreditCardColumn) string { return c.Header },
		func(c CreditCardColumn, a domain.CreditCardApplication) any { return c.Value(a) },
	); err != nil {
		return ExportResult{}, err
	}
	s.progress(ctx, status, 40, SheetCreditCards)

	taxRefunds := src.TaxRefundApplications()
	if err := writeSheet(f, SheetTaxRefunds, header, trCols, taxRefunds,
		func(c TaxRefundColumn) string { return c.Header },
		func(c TaxRefundColumn, a domain.TaxRefundApplication) any { return c.Value(a) },
	); err != nil {
		return ExportResult{}, err
	}
	s.progress(ctx, status, 80, SheetTaxRefunds)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ExportResult{}, fmt.Errorf("render workbook: %w", err)
	}
	data := buf.Bytes()
	fileName := fmt.Sprintf("applications_%s.xlsx", status.Created.Format("20060102_150405"))

	s.progress(ctx, status, 95, "uploading")
	url, err := s.store(ctx, objectKey(status, fileName), fileName, data)
	if err != nil {
		return ExportResult{}, err
	}

	status.FileURL = &url
	status.FileName = fileName
	s.progress(ctx, status, 100, "ready")
	if s.notifier != nil {
		_ = s.notifier.NotifyExportComplete(ctx, status.ClientID, status.Key, url, fileName)
	}

	return ExportResult{
		ID:       status.Key,
		URL:      url,
		FileName: fileName,
		Rows:     len(creditCards) + len(taxRefunds),
	}, nil
}

func writeSheet[C, R any](
	f *excelize.File,
	sheet string,
	headerStyle int,
	cols []C,
	rows []R,
	header func(C) string,
	value func(C, R) any,
) error {
	head := make([]any, len(cols))
	for i, col := range cols {
		head[i] = header(col)
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(cols), 1)
	_ = f.SetCellStyle(sheet, "A1", last, headerStyle)

	for i, r := range rows {
		line := make([]any, len(cols))
		for j, col := range cols {
			line[j] = value(col, r)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// objectKey is unique per export: exports/<client>/<export uuid>_<file>.
func objectKey(st *ExportStatus, fileName string) string {
	return path.Join("exports", st.ClientID, strings.TrimPrefix(st.Key, "exports:")+"_"+fileName)
}

// store saves the workbook locally and, with S3 configured, uploads it under
// key and returns a presigned link instead. A failed upload falls back to the
// local link when one exists.
func (s *ExportService) store(ctx context.Context, key, fileName string, data []byte) (string, error) {
	var localURL string
	if s.files != nil {
		saved, err := s.files.Save(ctx, fileName, data)
		if err != nil {
			return "", fmt.Errorf("save export: %w", err)
		}
		localURL = s.files.GetURL(saved)
	}

	if s.s3 == nil {
		return localURL, nil
	}

	key, err := s.s3.UploadXLSX(ctx, key, data)
	if err == nil {
		var url string
		if url, err = s.s3.GetTemporaryURL(ctx, key, s.urlExpiry); err == nil {
			return url, nil
		}
	}
	if localURL == "" {
		return "", fmt.Errorf("upload export: %w", err)
	}
	s.log.Warn("export upload failed, serving local copy",
		zap.String("file", fileName),
		zap.String("key", key),
		zap.Error(err),
	)
	return localURL, nil
}

func (s *ExportService) progress(ctx context.Context, st *ExportStatus, progress float64, stage string) {
	st.Progress = progress
	if err := s.saveExportStatus(ctx, st); err != nil {
		s.log.Warn("save export status failed", zap.String("export_id", st.Key), zap.Error(err))
	}
	if s.notifier != nil {
		_ = s.notifier.NotifyExportProgress(ctx, st.ClientID, st.Key, progress, stage)
	}
}

func (s *ExportService) saveExportStatus(ctx context.Context, st *ExportStatus) error {
	if s.redis == nil {
		return nil
	}

	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, st.Key, data, exportTTL); err != nil {
		return err
	}
	return s.redis.SAdd(ctx, exportSetKey+st.ClientID, st.Key)
}

// GetExports lists the client's recent exports, newest first. Without redis
// there is no history and the list is empty.
func (s *ExportService) GetExports(ctx context.Context, clientID string) ([]map[string]any, error) {
	exports := []map[string]any{}
	if s.redis == nil {
		return exports, nil
	}

	keys, err := s.redis.SMembers(ctx, exportSetKey+clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get export keys: %w", err)
	}

	var statuses []ExportStatus
	for _, key := range keys {
		st, err := s.loadStatus(ctx, key)
		if errors.Is(err, clients.ErrCacheMiss) {
			_ = s.redis.SRem(ctx, exportSetKey+clientID, key)
			continue
		}
		if err != nil || st.ClientID != clientID {
			continue
		}
		statuses = append(statuses, st)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Created.After(statuses[j].Created)
	})

	for _, st := range statuses {
		exports = append(exports, s.view(st))
	}
	return exports, nil
}

func (s *ExportService) GetExport(ctx context.Context, exportID, clientID string) (map[string]any, error) {
	if s.redis == nil {
		return nil, ErrExportNotFound
	}

	st, err := s.loadStatus(ctx, exportID)
	if errors.Is(err, clients.ErrCacheMiss) {
		return nil, ErrExportNotFound
	}
	if err != nil {
		return nil, err
	}
	if st.ClientID != clientID {
		return nil, ErrExportNotFound
	}
	return s.view(st), nil
}

func (s *ExportService) loadStatus(ctx context.Context, key string) (ExportStatus, error) {
	data, err := s.redis.Get(ctx, key)
	if err != nil {
		return ExportStatus{}, err
	}

	var st ExportStatus
	if err := json.Unmarshal(data, &st); err != nil {
		return ExportStatus{}, fmt.Errorf("failed to parse export status: %w", err)
	}
	return st, nil
}

func (s *ExportService) view(st ExportStatus) map[string]any {
	return map[string]any{
		"key":        st.Key,
		"type":       st.Type,
		"client_id":  st.ClientID,
		"progress":   st.Progress,
		"file_url":   st.FileURL,
		"file_name":  st.FileName,
		"fields":     st.Fields,
		"created_at": textfmt.DistanceToNow(st.Created, s.now()),
	}
}
