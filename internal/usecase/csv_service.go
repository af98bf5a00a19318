package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/booze-baton/internal/domain/fine"
	"github.com/riskibarqy/booze-baton/internal/platform/logging"
	"github.com/riskibarqy/booze-baton/internal/platform/metrics"
	"github.com/valyala/bytebufferpool"
)

const defaultCSVImportWorkers = 4

var csvExportHeader = []string{"Name", "Date", "Fine", "Amount", "Paid"}

type ImportResult struct {
	Imported int
	Skipped  int
}

type csvColumns struct {
	name   int
	date   int
	reason int
	amount int
	paid   int
}

type FineCSVService struct {
	fines   *FineService
	repo    fine.Repository
	workers int
	metrics *metrics.Recorder
	logger  *logging.Logger
}

func NewFineCSVService(fines *FineService, repo fine.Repository, workers int, recorder *metrics.Recorder, logger *logging.Logger) *FineCSVService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultCSVImportWorkers
	}
	return &FineCSVService{
		fines:   fines,
		repo:    repo,
		workers: workers,
		metrics: recorder,
		logger:  logger,
	}
}

// Export renders every fine as CSV with the Name,Date,Fine,Amount,Paid header.
func (s *FineCSVService) Export(ctx context.Context) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FineCSVService.Export")
	defer span.End()

	items, err := s.repo.List(ctx, fine.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list fines: %w", err)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := csv.NewWriter(buf)
	if err := w.Write(csvExportHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, item := range items {
		paid := ""
		if item.PaidDate != nil {
			paid = item.PaidDate.Format(fine.DateLayout)
		}
		record := []string{
			item.PlayerName,
			item.Date.Format(fine.DateLayout),
			item.Reason,
			item.Amount.StringFixed(2),
			paid,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

// Import reads fines from CSV. Rows that fail validation are skipped and counted; valid rows
// are inserted concurrently.
func (s *FineCSVService) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FineCSVService.Import")
	defer span.End()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return ImportResult{}, fmt.Errorf("%w: csv is empty", ErrInvalidInput)
	}
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: read csv header: %v", ErrInvalidInput, err)
	}
	cols, err := detectCSVColumns(header)
	if err != nil {
		return ImportResult{}, err
	}

	var (
		result ImportResult
		valid  []fine.Fine
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Skipped++
			continue
		}
		if isBlankRecord(record) {
			continue
		}

		item, err := s.fines.buildFine(cols.input(record))
		if err != nil {
			result.Skipped++
			continue
		}
		valid = append(valid, item)
	}
	s.metrics.CSVRows("skipped", result.Skipped)

	if len(valid) == 0 {
		return result, fmt.Errorf("%w: no valid fines found", ErrInvalidInput)
	}

	imported, err := s.insertAll(ctx, valid)
	result.Imported = imported
	s.metrics.CSVRows("imported", imported)
	if err != nil {
		return result, fmt.Errorf("import stopped after %d fines: %w", imported, err)
	}

	s.logger.InfoContext(ctx, "imported fines from csv", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

func (s *FineCSVService) insertAll(ctx context.Context, items []fine.Fine) (int, error) {
	workerPool, err := ants.NewPool(min(s.workers, len(items)))
	if err != nil {
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		imported atomic.Int32
		firstErr error
		errOnce  sync.Once
		workers  sync.WaitGroup
	)
	for _, item := range items {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()
			if ctx.Err() != nil {
				errOnce.Do(func() { firstErr = ctx.Err() })
				return
			}
			if err := s.repo.Create(ctx, item); err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			imported.Add(1)
		}); err != nil {
			workers.Done()
			errOnce.Do(func() { firstErr = fmt.Errorf("submit row to worker pool: %w", err) })
			break
		}
	}
	workers.Wait()

	return int(imported.Load()), firstErr
}

func detectCSVColumns(header []string) (csvColumns, error) {
	cols := csvColumns{name: -1, date: -1, reason: -1, amount: -1, paid: -1}
	for i, raw := range header {
		h := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
		if cols.name < 0 && strings.Contains(h, "name") {
			cols.name = i
		}
		if cols.date < 0 && strings.Contains(h, "date") && !strings.Contains(h, "paid") {
			cols.date = i
		}
		if cols.reason < 0 && strings.Contains(h, "fine") && !strings.Contains(h, "amount") {
			cols.reason = i
		}
		if cols.amount < 0 && strings.Contains(h, "amount") {
			cols.amount = i
		}
		if cols.paid < 0 && strings.Contains(h, "paid") {
			cols.paid = i
		}
	}
	if cols.name < 0 || cols.date < 0 || cols.reason < 0 || cols.amount < 0 {
		return cols, fmt.Errorf("%w: csv needs Name, Date, Fine, Amount columns", ErrInvalidInput)
	}
	return cols, nil
}

func (c csvColumns) input(record []string) AddFineInput {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	return AddFineInput{
		PlayerName: field(c.name),
		Date:       field(c.date),
		Reason:     field(c.reason),
		Amount:     field(c.amount),
		PaidDate:   field(c.paid),
	}
}

func isBlankRecord(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
