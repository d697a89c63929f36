package services

import (
	"context"
	"errors"
	"testing"

	"procure-chat-api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	records []models.TenderRecord
	err     error
	calls   int
}

func (f *fakeSource) Load(context.Context) ([]models.TenderRecord, error) {
	f.calls++
	return f.records, f.err
}

func (f *fakeSource) Describe() string { return "fake" }

func testRecords() []models.TenderRecord {
	return []models.TenderRecord{
		{TenderID: "T1", Product: "Bananas", Category: "Fruits & Vegetables", Trait: models.TraitImported},
		{TenderID: "T2", Product: "Milk", Category: "Dairy", Trait: models.TraitValue},
		{TenderID: "T3", Product: "Apples", Category: "Fruits & Vegetables"},
		{TenderID: "T4", Product: "Bananas", Category: "Fruits & Vegetables", Trait: models.TraitOrganic},
		{TenderID: "T5", Product: "Kombucha", Category: "Ferments"},
		{TenderID: "T1", Product: "Duplicate id", Category: "dairy"},
	}
}

func TestLoadTenderDataCachesSuccess(t *testing.T) {
	src := &fakeSource{records: testRecords()}
	svc := NewTenderDataService(src)

	first := svc.LoadTenderData(context.Background())
	second := svc.LoadTenderData(context.Background())

	assert.Len(t, first, 6)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls)
}

func TestLoadTenderDataFailureYieldsEmpty(t *testing.T) {
	src := &fakeSource{err: errors.New("unreachable")}
	svc := NewTenderDataService(src)

	records := svc.LoadTenderData(context.Background())
	require.NotNil(t, records)
	assert.Empty(t, records)

	// failures are not cached
	src.err = nil
	src.records = testRecords()
	assert.Len(t, svc.LoadTenderData(context.Background()), 6)
	assert.Equal(t, 2, src.calls)
}

func TestLoadTenderDataEmptyOrMissingSource(t *testing.T) {
	empty := &fakeSource{records: []models.TenderRecord{}}
	svc := NewTenderDataService(empty)
	assert.Empty(t, svc.LoadTenderData(context.Background()))
	assert.Empty(t, svc.LoadTenderData(context.Background()))
	assert.Equal(t, 2, empty.calls)

	records := NewTenderDataService(nil).LoadTenderData(context.Background())
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestLoadTenderDataFromBrokenFile(t *testing.T) {
	svc := NewTenderDataService(NewFileTenderSource("does/not/exist.csv"))
	records := svc.LoadTenderData(context.Background())
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestGetUniqueCategories(t *testing.T) {
	assert.Equal(t, []string{"Fruits & Vegetables", "Dairy", "Ferments", "dairy"}, GetUniqueCategories(testRecords()))
	assert.Empty(t, GetUniqueCategories(nil))
}

func TestGetProductsByCategoryPartitions(t *testing.T) {
	records := testRecords()

	total := 0
	seen := make(map[string]int)
	for _, c := range GetUniqueCategories(records) {
		group := GetProductsByCategory(records, c)
		require.NotEmpty(t, group)
		for _, r := range group {
			assert.Equal(t, c, r.Category)
			seen[r.TenderID+"/"+r.Product]++
		}
		total += len(group)
	}

	assert.Equal(t, len(records), total)
	for key, n := range seen {
		assert.Equal(t, 1, n, key)
	}
	// matching is case sensitive
	assert.Len(t, GetProductsByCategory(records, "Dairy"), 1)
	assert.Empty(t, GetProductsByCategory(records, "Bakery"))
}

func TestGetTenderByID(t *testing.T) {
	records := testRecords()

	rec, ok := GetTenderByID(records, "T1")
	require.True(t, ok)
	assert.Equal(t, "Bananas", rec.Product)

	_, ok = GetTenderByID(records, "T404")
	assert.False(t, ok)
}

func TestGetUniqueProducts(t *testing.T) {
	assert.Equal(t, []string{"Bananas", "Milk", "Apples", "Kombucha", "Duplicate id"}, GetUniqueProducts(testRecords()))
}

func TestSummarizeAndAnalyze(t *testing.T) {
	result := AnalyzeTenderRecords("upload.csv", testRecords())

	assert.Equal(t, "upload.csv", result.FileName)
	assert.Equal(t, 6, result.RecordCount)
	require.Len(t, result.Categories, 4)
	assert.Equal(t, 3, result.Categories[0].ProductCount)
	assert.Equal(t, models.TrendIncreasing, result.Categories[0].Metadata.Trend)
	assert.Equal(t, "Dairy & Eggs", result.Categories[1].Metadata.Display)
	assert.Equal(t, "Ferments", result.Categories[2].Metadata.Display)
	assert.Equal(t, []string{"Bananas", "Apples"}, result.ProductsByCategory["Fruits & Vegetables"])
	assert.Equal(t, []string{"Ferments", "dairy"}, result.UnknownCategories)
}
