package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path"
	"time"

	config "procure-chat-api/configs"
	"procure-chat-api/pkg/models"

	"github.com/go-resty/resty/v2"
	_ "github.com/lib/pq"
)

// TenderSource produces the full tender catalogue.
type TenderSource interface {
	Load(ctx context.Context) ([]models.TenderRecord, error)
	Describe() string
}

// NewTenderSource picks a source from configuration.
func NewTenderSource(cfg *config.Config) (TenderSource, error) {
	switch cfg.TenderSource {
	case "", "file":
		return NewFileTenderSource(cfg.TenderDataPath), nil
	case "http":
		if cfg.TenderDataURL == "" {
			return nil, fmt.Errorf("TENDER_SOURCE=http requires TENDER_DATA_URL")
		}
		return NewHTTPTenderSource(cfg.TenderDataURL, 30*time.Second), nil
	case "postgres":
		if cfg.TenderDatabaseURL == "" {
			return nil, fmt.Errorf("TENDER_SOURCE=postgres requires TENDER_DATABASE_URL")
		}
		src, err := NewPostgresTenderSource(cfg.TenderDatabaseURL)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown TENDER_SOURCE %q", cfg.TenderSource)
	}
}

// FileTenderSource reads a local .csv or .xlsx file.
type FileTenderSource struct {
	path string
}

func NewFileTenderSource(path string) *FileTenderSource {
	return &FileTenderSource{path: path}
}

func (s *FileTenderSource) Load(_ context.Context) ([]models.TenderRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read tender file %s: %w", s.path, err)
	}
	return ParseTenderData(s.path, data)
}

func (s *FileTenderSource) Describe() string { return "file:" + s.path }

// HTTPTenderSource fetches the catalogue from a URL, typically the static
// /sample_data/aldi_tenders.csv asset.
type HTTPTenderSource struct {
	url    string
	client *resty.Client
}

func NewHTTPTenderSource(rawURL string, timeout time.Duration) *HTTPTenderSource {
	return &HTTPTenderSource{
		url:    rawURL,
		client: resty.New().SetTimeout(timeout),
	}
}

func (s *HTTPTenderSource) Load(ctx context.Context) ([]models.TenderRecord, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/csv, application/vnd.openxmlformats-officedocument.spreadsheetml.sheet, */*").
		Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch tender data: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch tender data: unexpected status %d", resp.StatusCode())
	}

	name := s.url
	if u, err := url.Parse(s.url); err == nil {
		name = path.Base(u.Path)
	}
	return ParseTenderData(name, resp.Body())
}

func (s *HTTPTenderSource) Describe() string { return "http:" + s.url }

// tenderSelectSQL lists columns in the order scanTender expects.
const tenderSelectSQL = `
	SELECT tender_id, product_code, product, category, product_description,
	       secondary_description, tender_start, tender_end, delivery_start,
	       delivery_end, case_size, unit_size, origin, sales_packaging,
	       storage, tender_comment, trait
	FROM tenders
	ORDER BY tender_id`

// PostgresTenderSource reads the catalogue from a read-only tenders table.
type PostgresTenderSource struct {
	db *sql.DB
}

// NewPostgresTenderSource opens (but does not ping) the database.
func NewPostgresTenderSource(dsn string) (*PostgresTenderSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	return &PostgresTenderSource{db: db}, nil
}

func (s *PostgresTenderSource) Load(ctx context.Context) ([]models.TenderRecord, error) {
	rows, err := s.db.QueryContext(ctx, tenderSelectSQL)
	if err != nil {
		return nil, fmt.Errorf("postgres: query tenders: %w", err)
	}
	defer rows.Close()

	var records []models.TenderRecord
	for rows.Next() {
		rec, err := scanTender(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan tender: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate tenders: %w", err)
	}
	return records, nil
}

func (s *PostgresTenderSource) Describe() string { return "postgres:tenders" }

// Close releases the connection pool.
func (s *PostgresTenderSource) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTender maps one row of tenderSelectSQL. NULL columns become empty strings.
func scanTender(row rowScanner) (models.TenderRecord, error) {
	var cols [17]sql.NullString
	dest := make([]any, len(cols))
	for i := range cols {
		dest[i] = &cols[i]
	}
	if err := row.Scan(dest...); err != nil {
		return models.TenderRecord{}, err
	}

	return models.TenderRecord{
		TenderID:             cols[0].String,
		ProductCode:          cols[1].String,
		Product:              cols[2].String,
		Category:             cols[3].String,
		ProductDescription:   cols[4].String,
		SecondaryDescription: cols[5].String,
		TenderStart:          cols[6].String,
		TenderEnd:            cols[7].String,
		DeliveryStart:        cols[8].String,
		DeliveryEnd:          cols[9].String,
		CaseSize:             cols[10].String,
		UnitSize:             cols[11].String,
		Origin:               cols[12].String,
		SalesPackaging:       cols[13].String,
		Storage:              cols[14].String,
		TenderComment:        cols[15].String,
		Trait:                cols[16].String,
	}, nil
}
