package services

import (
	"context"
	"log"
	"sync"

	config "procure-chat-api/configs"
	"procure-chat-api/pkg/models"
)

// TenderDataService loads the tender catalogue once and serves read-only views of it.
type TenderDataService struct {
	mu      sync.RWMutex
	source  TenderSource
	records []models.TenderRecord
	loaded  bool
}

// NewTenderDataService creates a service backed by source. Nothing is read until first use.
func NewTenderDataService(source TenderSource) *TenderDataService {
	return &TenderDataService{source: source}
}

// LoadTenderData returns the catalogue, reading the source on first call.
// A failed or empty read is logged and yields an empty slice, and is retried
// on the next call; a successful read is kept for the life of the process.
func (s *TenderDataService) LoadTenderData(ctx context.Context) []models.TenderRecord {
	s.mu.RLock()
	if s.loaded {
		records := s.records
		s.mu.RUnlock()
		return records
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded { // double-check
		return s.records
	}

	if s.source == nil {
		log.Printf("⚠️ [tenders] no tender source configured")
		return []models.TenderRecord{}
	}

	records, err := s.source.Load(ctx)
	if err != nil {
		log.Printf("❌ [tenders] failed to load tender data from %s: %v", s.source.Describe(), err)
		return []models.TenderRecord{}
	}
	if len(records) == 0 {
		log.Printf("⚠️ [tenders] %s returned no tender records", s.source.Describe())
		return []models.TenderRecord{}
	}

	log.Printf("✅ [tenders] loaded %d tender records from %s", len(records), s.source.Describe())
	s.records = records
	s.loaded = true
	return s.records
}

// GetUniqueCategories returns the distinct categories in first-seen order.
func GetUniqueCategories(records []models.TenderRecord) []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, r := range records {
		if !seen[r.Category] {
			seen[r.Category] = true
			categories = append(categories, r.Category)
		}
	}
	return categories
}

// GetProductsByCategory returns the records whose category equals category exactly.
func GetProductsByCategory(records []models.TenderRecord, category string) []models.TenderRecord {
	products := make([]models.TenderRecord, 0)
	for _, r := range records {
		if r.Category == category {
			products = append(products, r)
		}
	}
	return products
}

// GetTenderByID returns the first record with the given tender ID.
func GetTenderByID(records []models.TenderRecord, id string) (models.TenderRecord, bool) {
	for _, r := range records {
		if r.TenderID == id {
			return r, true
		}
	}
	return models.TenderRecord{}, false
}

// GetUniqueProducts returns the distinct product names in first-seen order.
func GetUniqueProducts(records []models.TenderRecord) []string {
	seen := make(map[string]bool)
	products := make([]string, 0)
	for _, r := range records {
		if !seen[r.Product] {
			seen[r.Product] = true
			products = append(products, r.Product)
		}
	}
	return products
}

// SummarizeCategories returns one summary per category in first-seen order.
func SummarizeCategories(records []models.TenderRecord) []models.CategorySummary {
	categories := GetUniqueCategories(records)
	summaries := make([]models.CategorySummary, 0, len(categories))
	for _, c := range categories {
		summaries = append(summaries, models.CategorySummary{
			Category:     c,
			Metadata:     config.LookupCategory(c),
			ProductCount: len(GetProductsByCategory(records, c)),
		})
	}
	return summaries
}

// AnalyzeTenderRecords builds the summary returned for an uploaded tender file.
func AnalyzeTenderRecords(fileName string, records []models.TenderRecord) models.FileAnalysisResult {
	result := models.FileAnalysisResult{
		FileName:           fileName,
		RecordCount:        len(records),
		Categories:         SummarizeCategories(records),
		ProductsByCategory: make(map[string][]string),
	}
	for _, summary := range result.Categories {
		result.ProductsByCategory[summary.Category] = GetUniqueProducts(GetProductsByCategory(records, summary.Category))
		if !config.IsKnownCategory(summary.Category) {
			result.UnknownCategories = append(result.UnknownCategories, summary.Category)
		}
	}
	return result
}
