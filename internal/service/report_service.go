package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/skilltrack/tms-api/internal/models"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
	"github.com/skilltrack/tms-api/pkg/export"
)

const reportDateLayout = "2006-01-02"

type reportStore interface {
	ReportData(ctx context.Context, typ models.ReportType, from, to *time.Time) ([]models.ReportRow, error)
}

// ReportQuery carries the parsed filters for a report request.
type ReportQuery struct {
	Type models.ReportType
	From *time.Time
	To   *time.Time
}

// ExportResult is a rendered report file ready to stream to the client.
type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ReportService generates enrollment, completion and payment reports.
type ReportService struct {
	store  reportStore
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(st reportStore, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		store:  st,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// ParseQuery validates the raw report type and optional date bounds.
func (s *ReportService) ParseQuery(rawType, rawFrom, rawTo string) (ReportQuery, error) {
	typ := models.ReportType(rawType)
	if !typ.Valid() {
		return ReportQuery{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown report type %q", rawType))
	}
	query := ReportQuery{Type: typ}

	if rawFrom != "" {
		from, err := time.Parse(reportDateLayout, rawFrom)
		if err != nil {
			return ReportQuery{}, appErrors.Clone(appErrors.ErrValidation, "from must be formatted as YYYY-MM-DD")
		}
		query.From = &from
	}
	if rawTo != "" {
		to, err := time.Parse(reportDateLayout, rawTo)
		if err != nil {
			return ReportQuery{}, appErrors.Clone(appErrors.ErrValidation, "to must be formatted as YYYY-MM-DD")
		}
		query.To = &to
	}
	if query.From != nil && query.To != nil && query.To.Before(*query.From) {
		return ReportQuery{}, appErrors.Clone(appErrors.ErrValidation, "to must not be earlier than from")
	}
	return query, nil
}

// Generate returns the report rows for the query.
func (s *ReportService) Generate(ctx context.Context, query ReportQuery) ([]models.ReportRow, error) {
	rows, err := s.store.ReportData(ctx, query.Type, query.From, query.To)
	if err != nil {
		return nil, translateStore(err, "")
	}
	return rows, nil
}

// Export renders the report in the requested format (csv or pdf).
func (s *ReportService) Export(ctx context.Context, query ReportQuery, format string) (*ExportResult, error) {
	rows, err := s.Generate(ctx, query)
	if err != nil {
		return nil, err
	}
	dataset := buildReportDataset(query.Type, rows)
	stamp := time.Now().UTC().Format("20060102")

	switch format {
	case "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv report")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("%s-report-%s.csv", query.Type, stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case "pdf":
		title := fmt.Sprintf("%s report", query.Type)
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf report")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("%s-report-%s.pdf", query.Type, stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func buildReportDataset(typ models.ReportType, rows []models.ReportRow) export.Dataset {
	switch typ {
	case models.ReportCompletion:
		dataset := export.Dataset{Headers: []string{"Trainee ID", "Name", "Course", "Completion Date"}}
		for _, row := range rows {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Trainee ID":      row.TraineeID,
				"Name":            row.Name,
				"Course":          row.Course,
				"Completion Date": formatReportDate(row.CompletionDate),
			})
		}
		return dataset
	case models.ReportPayment:
		dataset := export.Dataset{Headers: []string{"Receipt", "Trainee", "Course", "Amount", "Date"}}
		for _, row := range rows {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Receipt": row.ReceiptNumber,
				"Trainee": row.Name,
				"Course":  row.Course,
				"Amount":  strconv.FormatInt(row.Amount, 10),
				"Date":    formatReportDate(row.PaymentDate),
			})
		}
		return dataset
	default:
		dataset := export.Dataset{Headers: []string{"Trainee ID", "Name", "Course", "Enrollment Date"}}
		for _, row := range rows {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Trainee ID":      row.TraineeID,
				"Name":            row.Name,
				"Course":          row.Course,
				"Enrollment Date": formatReportDate(row.EnrollmentDate),
			})
		}
		return dataset
	}
}

func formatReportDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(reportDateLayout)
}
