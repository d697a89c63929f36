package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"procure-chat-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

// tenderColumn binds a set of accepted header spellings to a record field.
type tenderColumn struct {
	names []string
	set   func(r *models.TenderRecord, v string)
}

// Headers are matched after normalizeHeaderName, so "Tender ID", "tender_id"
// and "tenderId" all hit the same column.
var tenderColumns = []tenderColumn{
	{[]string{"tenderid", "tender"}, func(r *models.TenderRecord, v string) { r.TenderID = v }},
	{[]string{"productcode", "sku", "articlecode"}, func(r *models.TenderRecord, v string) { r.ProductCode = v }},
	{[]string{"product", "productname"}, func(r *models.TenderRecord, v string) { r.Product = v }},
	{[]string{"category", "productcategory"}, func(r *models.TenderRecord, v string) { r.Category = v }},
	{[]string{"productdescription", "description"}, func(r *models.TenderRecord, v string) { r.ProductDescription = v }},
	{[]string{"secondarydescription"}, func(r *models.TenderRecord, v string) { r.SecondaryDescription = v }},
	{[]string{"tenderstart"}, func(r *models.TenderRecord, v string) { r.TenderStart = v }},
	{[]string{"tenderend"}, func(r *models.TenderRecord, v string) { r.TenderEnd = v }},
	{[]string{"deliverystart"}, func(r *models.TenderRecord, v string) { r.DeliveryStart = v }},
	{[]string{"deliveryend"}, func(r *models.TenderRecord, v string) { r.DeliveryEnd = v }},
	{[]string{"casesize"}, func(r *models.TenderRecord, v string) { r.CaseSize = v }},
	{[]string{"unitsize"}, func(r *models.TenderRecord, v string) { r.UnitSize = v }},
	{[]string{"origin", "countryoforigin"}, func(r *models.TenderRecord, v string) { r.Origin = v }},
	{[]string{"salespackaging", "packaging"}, func(r *models.TenderRecord, v string) { r.SalesPackaging = v }},
	{[]string{"storage", "storagetype"}, func(r *models.TenderRecord, v string) { r.Storage = v }},
	{[]string{"tendercomment", "comment", "comments"}, func(r *models.TenderRecord, v string) { r.TenderComment = v }},
	{[]string{"trait"}, func(r *models.TenderRecord, v string) { r.Trait = v }},
}

var errNoHeader = errors.New("tender data: no header row")

// ParseTenderCSV parses header-based CSV content into tender records. Blank
// lines are skipped; short rows leave the missing fields empty.
func ParseTenderCSV(r io.Reader) ([]models.TenderRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tender data: csv parse: %w", err)
	}
	return recordsFromRows(rows)
}

// ParseTenderXLSX parses the first sheet of a workbook the same way as ParseTenderCSV.
func ParseTenderXLSX(r io.Reader) ([]models.TenderRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("tender data: open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("tender data: read sheet rows: %w", err)
	}
	return recordsFromRows(rows)
}

// ParseTenderData dispatches on the file name extension. Anything that is not
// .xlsx is read as CSV.
func ParseTenderData(name string, data []byte) ([]models.TenderRecord, error) {
	if strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		return ParseTenderXLSX(bytes.NewReader(data))
	}
	return ParseTenderCSV(bytes.NewReader(data))
}

func recordsFromRows(rows [][]string) ([]models.TenderRecord, error) {
	start := firstNonBlankRow(rows)
	if start == -1 {
		return nil, errNoHeader
	}

	header := rows[start]
	setters := make([]func(*models.TenderRecord, string), len(header))
	matched := 0
	for i, h := range header {
		if col := findTenderColumn(h); col != nil {
			setters[i] = col.set
			matched++
		}
	}
	if matched == 0 {
		return nil, fmt.Errorf("tender data: header has no known columns: %v", header)
	}

	records := make([]models.TenderRecord, 0, len(rows)-start-1)
	for _, row := range rows[start+1:] {
		if isBlankRow(row) {
			continue
		}
		var rec models.TenderRecord
		for i, value := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&rec, strings.TrimSpace(value))
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func findTenderColumn(header string) *tenderColumn {
	name := normalizeHeaderName(header)
	for i := range tenderColumns {
		for _, candidate := range tenderColumns[i].names {
			if name == candidate {
				return &tenderColumns[i]
			}
		}
	}
	return nil
}

// normalizeHeaderName lower-cases and strips separators and a UTF-8 BOM.
func normalizeHeaderName(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

func firstNonBlankRow(rows [][]string) int {
	for i, row := range rows {
		if !isBlankRow(row) {
			return i
		}
	}
	return -1
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
