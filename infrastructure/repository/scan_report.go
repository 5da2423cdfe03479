package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-intel-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-intel-api/internal/domain"
)

const (
	scanReportTable = "scan_reports"
)

//go:generate mockgen -source=scan_report.go -destination=mocks/scan_report_mock.go -package=mocks
type ScanReportRepository interface {
	SaveReport(report *domain.ScanReport) error
	GetReportByID(id string) (*domain.ScanReport, error)
	ListReports(brandID *string, limit int) ([]*domain.ScanReport, error)
	UpdateReportInsight(id string, insight *domain.InsightReport, insightError string) error
}

type scanReportRepository struct {
	conn postgres.Queryer
}

func NewScanReportRepository(conn *postgres.Connection) ScanReportRepository {
	return &scanReportRepository{
		conn: conn,
	}
}

func (r *scanReportRepository) SaveReport(report *domain.ScanReport) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	groupsJSON, err := json.Marshal(report.Groups)
	if err != nil {
		return fmt.Errorf("erro ao serializar grupos: %w", err)
	}

	filtersJSON, err := json.Marshal(report.Filters)
	if err != nil {
		return fmt.Errorf("erro ao serializar filtros: %w", err)
	}

	var insightJSON []byte
	if report.Insight != nil {
		insightJSON, err = json.Marshal(report.Insight)
		if err != nil {
			return fmt.Errorf("erro ao serializar insight: %w", err)
		}
	}

	sqlQuery, args, err := squirrel.
		Insert(scanReportTable).
		Columns(
			"id", "brand_id", "source_url", "total_raw", "total_groups",
			"filters", "groups", "insight", "insight_error", "created_at",
		).
		Values(
			report.ID, report.BrandID, report.SourceURL, report.TotalRaw, report.TotalGroups,
			filtersJSON, groupsJSON, insightJSON, report.InsightError, report.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao salvar relatório: %w", err)
	}

	return nil
}

func (r *scanReportRepository) GetReportByID(id string) (*domain.ScanReport, error) {
	sqlQuery, args, err := squirrel.
		Select(
			"id", "brand_id", "source_url", "total_raw", "total_groups",
			"filters", "groups", "insight", "insight_error", "created_at",
		).
		From(scanReportTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.scanReport(r.conn.QueryRow(sqlQuery, args...))
}

// UpdateReportInsight grava o resultado de uma nova geração de insight sobre um
// relatório já persistido. Quando o pipeline falha, insight fica nulo e o motivo
// vai na coluna insight_error.
func (r *scanReportRepository) UpdateReportInsight(id string, insight *domain.InsightReport, insightError string) error {
	var insightJSON []byte
	if insight != nil {
		var err error
		insightJSON, err = json.Marshal(insight)
		if err != nil {
			return fmt.Errorf("erro ao serializar insight: %w", err)
		}
	}

	sqlQuery, args, err := squirrel.
		Update(scanReportTable).
		Set("insight", insightJSON).
		Set("insight_error", insightError).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao atualizar insight do relatório: %w", err)
	}

	return nil
}

func (r *scanReportRepository) ListReports(brandID *string, limit int) ([]*domain.ScanReport, error) {
	queryBuilder := squirrel.
		Select(
			"id", "brand_id", "source_url", "total_raw", "total_groups",
			"filters", "groups", "insight", "insight_error", "created_at",
		).
		From(scanReportTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if brandID != nil && *brandID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"brand_id": *brandID})
	}

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.ScanReport, 0)
	for rows.Next() {
		report, err := r.scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *scanReportRepository) scanReport(row rowScanner) (*domain.ScanReport, error) {
	report := &domain.ScanReport{}

	var filtersJSON, groupsJSON []byte
	var insightJSON sql.Null[[]byte]
	var insightError sql.NullString

	err := row.Scan(
		&report.ID,
		&report.BrandID,
		&report.SourceURL,
		&report.TotalRaw,
		&report.TotalGroups,
		&filtersJSON,
		&groupsJSON,
		&insightJSON,
		&insightError,
		&report.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao ler relatório: %w", err)
	}

	if len(filtersJSON) > 0 {
		if err := json.Unmarshal(filtersJSON, &report.Filters); err != nil {
			return nil, fmt.Errorf("erro ao desserializar filtros: %w", err)
		}
	}

	if len(groupsJSON) > 0 {
		if err := json.Unmarshal(groupsJSON, &report.Groups); err != nil {
			return nil, fmt.Errorf("erro ao desserializar grupos: %w", err)
		}
	}

	if insightJSON.Valid && len(insightJSON.V) > 0 {
		report.Insight = &domain.InsightReport{}
		if err := json.Unmarshal(insightJSON.V, report.Insight); err != nil {
			return nil, fmt.Errorf("erro ao desserializar insight: %w", err)
		}
	}

	if insightError.Valid {
		report.InsightError = insightError.String
	}

	return report, nil
}
