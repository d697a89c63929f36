package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const tenderCSV = `tenderId,productCode,product,category,trait,tenderComment
T1,P-1,Bananas,Fruits & Vegetables,Imported,"Weekly, confirmed"

T2,P-2,Whole Milk,Dairy,Value,
T3,P-3,Apples,Fruits & Vegetables,,
`

func TestParseTenderCSV(t *testing.T) {
	records, err := ParseTenderCSV(strings.NewReader(tenderCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "T1", records[0].TenderID)
	assert.Equal(t, "P-1", records[0].ProductCode)
	assert.Equal(t, "Fruits & Vegetables", records[0].Category)
	assert.Equal(t, "Imported", records[0].Trait)
	assert.Equal(t, "Weekly, confirmed", records[0].TenderComment)
	assert.Equal(t, "", records[2].Trait)
}

func TestParseTenderCSVHeaderAliases(t *testing.T) {
	data := "\ufeffTender ID,Product_Name,Product Category,Country of Origin\n  ,  ,  ,\nT9,Rice,Pantry,India\nT10,Oats\n"

	records, err := ParseTenderCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "T9", records[0].TenderID)
	assert.Equal(t, "Rice", records[0].Product)
	assert.Equal(t, "Pantry", records[0].Category)
	assert.Equal(t, "India", records[0].Origin)
	// short rows leave the rest empty
	assert.Equal(t, "Oats", records[1].Product)
	assert.Empty(t, records[1].Category)
}

func TestParseTenderCSVErrors(t *testing.T) {
	_, err := ParseTenderCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, errNoHeader)

	_, err = ParseTenderCSV(strings.NewReader("foo,bar\n1,2\n"))
	assert.Error(t, err)

	_, err = ParseTenderCSV(strings.NewReader("tenderId,product\n\"T1,Bananas\n"))
	assert.Error(t, err)
}

func TestParseTenderCSVHeaderOnly(t *testing.T) {
	records, err := ParseTenderCSV(strings.NewReader("tenderId,product\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseTenderDataXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"tenderId", "product", "category", "trait"},
		{"X1", "Frozen Peas", "Freezer", "Value"},
		{"X2", "Ice Cream", "Freezer", "Premium"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	records, err := ParseTenderData("Tenders.XLSX", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "X2", records[1].TenderID)
	assert.Equal(t, "Freezer", records[1].Category)
	assert.Equal(t, "Premium", records[1].Trait)

	_, err = ParseTenderData("broken.xlsx", []byte("not a workbook"))
	assert.Error(t, err)
}

func TestNormalizeHeaderName(t *testing.T) {
	testCases := map[string]string{
		"tenderId":              "tenderid",
		"Tender ID":             "tenderid",
		"tender_id":             "tenderid",
		"\ufeffTender-Id ":      "tenderid",
		"Sales Packaging":       "salespackaging",
		"SECONDARY_DESCRIPTION": "secondarydescription",
	}
	for in, want := range testCases {
		assert.Equal(t, want, normalizeHeaderName(in), in)
	}
}
