package handlers

import (
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	config "procure-chat-api/configs"
	"procure-chat-api/pkg/models"
	"procure-chat-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// maxUploadSize limits tender file uploads.
const maxUploadSize = 10 << 20

// TenderHandler serves the tender catalogue and its synthetic price views.
type TenderHandler struct {
	data   *services.TenderDataService
	series *services.SeriesGenerator
}

// NewTenderHandler creates a TenderHandler.
func NewTenderHandler(data *services.TenderDataService, series *services.SeriesGenerator) *TenderHandler {
	return &TenderHandler{data: data, series: series}
}

// ListTenders returns every tender, optionally filtered by ?category=.
func (h *TenderHandler) ListTenders(c *gin.Context) {
	records := h.data.LoadTenderData(c.Request.Context())
	if category := c.Query("category"); category != "" {
		records = services.GetProductsByCategory(records, category)
	}
	respondOK(c, gin.H{"tenders": records, "count": len(records)})
}

// GetTender returns one tender by id.
func (h *TenderHandler) GetTender(c *gin.Context) {
	record, ok := h.lookup(c)
	if !ok {
		return
	}
	respondOK(c, record)
}

// GetPriceData returns historical and forecast prices for a tender (?days=, default 180).
func (h *TenderHandler) GetPriceData(c *gin.Context) {
	record, ok := h.lookup(c)
	if !ok {
		return
	}

	days := services.DefaultPriceDataDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 3650 {
			respondError(c, http.StatusBadRequest, "days must be an integer between 1 and 3650")
			return
		}
		days = n
	}

	points := h.series.GeneratePriceData(record, days)
	respondOK(c, gin.H{
		"tenderId":   record.TenderID,
		"trait":      record.Trait,
		"points":     points,
		"statistics": services.CalculatePriceStatistics(points),
	})
}

// GetSuppliers returns synthetic supplier quotes for a tender.
func (h *TenderHandler) GetSuppliers(c *gin.Context) {
	record, ok := h.lookup(c)
	if !ok {
		return
	}
	respondOK(c, gin.H{"tenderId": record.TenderID, "suppliers": h.series.GenerateSupplierData(record)})
}

// ListCategories returns the distinct categories with metadata and counts.
func (h *TenderHandler) ListCategories(c *gin.Context) {
	records := h.data.LoadTenderData(c.Request.Context())
	respondOK(c, services.SummarizeCategories(records))
}

// GetCategoryProducts returns the tenders of one category.
func (h *TenderHandler) GetCategoryProducts(c *gin.Context) {
	category := c.Param("category")
	records := services.GetProductsByCategory(h.data.LoadTenderData(c.Request.Context()), category)
	respondOK(c, gin.H{
		"category": category,
		"metadata": config.LookupCategory(category),
		"tenders":  records,
	})
}

// GetCategoryTrend returns the 24 month price index of a category.
func (h *TenderHandler) GetCategoryTrend(c *gin.Context) {
	category := c.Param("category")
	respondOK(c, gin.H{
		"category": category,
		"metadata": config.LookupCategory(category),
		"trend":    h.series.GetCategoryPriceTrend(category),
	})
}

// GetSeasonality returns the monthly seasonality factors of a category.
func (h *TenderHandler) GetSeasonality(c *gin.Context) {
	category := c.Param("category")
	respondOK(c, gin.H{
		"category":    category,
		"seasonality": h.series.GetSeasonalityFactors(category),
	})
}

// GetAveragePrice returns the average unit price of a category.
func (h *TenderHandler) GetAveragePrice(c *gin.Context) {
	category := c.Param("category")
	records := h.data.LoadTenderData(c.Request.Context())
	respondOK(c, gin.H{
		"category":     category,
		"averagePrice": h.series.GetCategoryAveragePrice(records, category),
	})
}

// ListProducts returns the distinct product names.
func (h *TenderHandler) ListProducts(c *gin.Context) {
	respondOK(c, services.GetUniqueProducts(h.data.LoadTenderData(c.Request.Context())))
}

// GetProductPriceHistory returns 12 months of prices for a product code.
func (h *TenderHandler) GetProductPriceHistory(c *gin.Context) {
	code := c.Param("code")
	respondOK(c, gin.H{"productCode": code, "history": h.series.GetProductPriceHistory(code)})
}

// AnalyzeFile parses an uploaded .csv or .xlsx tender file and summarizes it.
// The loaded catalogue is left untouched.
func (h *TenderHandler) AnalyzeFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		respondError(c, http.StatusBadRequest, "unsupported file type, upload a .csv or .xlsx file")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}
	if len(data) > maxUploadSize {
		respondError(c, http.StatusRequestEntityTooLarge, "file exceeds the 10MB limit")
		return
	}

	records, err := services.ParseTenderData(header.Filename, data)
	if err != nil {
		log.Printf("⚠️ [file-analysis] %s: %v", header.Filename, err)
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("📊 [file-analysis] %s: %d tender records", header.Filename, len(records))
	respondOK(c, services.AnalyzeTenderRecords(header.Filename, records))
}

func (h *TenderHandler) lookup(c *gin.Context) (models.TenderRecord, bool) {
	id := c.Param("id")
	record, ok := services.GetTenderByID(h.data.LoadTenderData(c.Request.Context()), id)
	if !ok {
		respondError(c, http.StatusNotFound, "tender not found: "+id)
	}
	return record, ok
}
