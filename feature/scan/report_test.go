package scan

import (
	"context"
	"encoding/json"
	"testing"

	"texture-scanner/core/storage"
	"texture-scanner/core/storage/mocks"
	"texture-scanner/feature/scan/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestReportStore(t *testing.T) (*ReportStore, *storage.Store) {
	t.Helper()
	client := mocks.NewMemoryClient()
	store := storage.NewStore(client, "test-bucket")
	return NewReportStore(store, zap.NewNop()), store
}

func TestReportStoreRoundTrip(t *testing.T) {
	rs, _ := newTestReportStore(t)
	ctx := context.Background()

	report := &models.Report{
		ScanID: "s1",
		Gallery: []models.GalleryItem{
			{Key: "IRON_PICKAXE", Label: "Iron Pickaxe", Pool: models.PoolAllItems, Order: 3},
		},
		AvailablePools: []string{models.PoolAllItems, models.PoolOwnRisk},
	}
	report.Recount()

	require.NoError(t, rs.Save(ctx, "s1", report))

	loaded, err := rs.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, report.ScanID, loaded.ScanID)
	require.Len(t, loaded.Gallery, 1)
	assert.Equal(t, 3, loaded.Gallery[0].Order)
}

func TestReportStoreLoadNotFound(t *testing.T) {
	rs, _ := newTestReportStore(t)

	_, err := rs.Load(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScanNotFound)
}

func TestReportStoreUpgradesLegacyReport(t *testing.T) {
	rs, store := newTestReportStore(t)
	ctx := context.Background()

	// A report written before pool, category and order existed.
	legacy := `{
  "scan_id": "s1",
  "summary": {"total_items": 1, "total_textures": 1},
  "gallery": [
    {"key": "IRON_PICKAXE", "label": "Iron Pickaxe"}
  ]
}`
	require.NoError(t, store.Put(ctx, reportPath("s1"), []byte(legacy), "application/json"))
	require.NoError(t, rs.SaveScript(ctx, "s1", `ALL_ITEM_POOL = [
    # Tools
    "IRON_PICKAXE",
]
`))

	loaded, err := rs.Load(ctx, "s1")
	require.NoError(t, err)

	require.Len(t, loaded.Gallery, 1)
	item := loaded.Gallery[0]
	assert.Equal(t, models.PoolAllItems, item.Pool)
	assert.Equal(t, "Tools", item.Category)
	assert.Equal(t, 0, item.Order)
	assert.Equal(t, []string{models.PoolAllItems, models.PoolOwnRisk}, loaded.AvailablePools)

	// The upgraded report was persisted, so a raw read sees the fields.
	raw, err := store.Get(ctx, reportPath("s1"))
	require.NoError(t, err)
	var persisted models.Report
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, models.PoolAllItems, persisted.Gallery[0].Pool)
}

func TestReportStoreUpgradesDespiteOrderInValues(t *testing.T) {
	rs, store := newTestReportStore(t)
	ctx := context.Background()

	// A legacy report whose category value happens to be "order" must
	// still be recognized as legacy.
	legacy := `{
  "scan_id": "s1",
  "summary": {"total_items": 1, "total_textures": 1},
  "gallery": [
    {"key": "IRON_PICKAXE", "label": "Iron Pickaxe", "category": "order"}
  ]
}`
	require.NoError(t, store.Put(ctx, reportPath("s1"), []byte(legacy), "application/json"))
	require.NoError(t, rs.SaveScript(ctx, "s1", `ALL_ITEM_POOL = [
    "IRON_PICKAXE",
]
`))

	loaded, err := rs.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.PoolAllItems, loaded.Gallery[0].Pool)
	assert.Equal(t, 0, loaded.Gallery[0].Order)
}

func TestCurrentReportNotTreatedAsLegacy(t *testing.T) {
	rs, _ := newTestReportStore(t)
	ctx := context.Background()

	report := &models.Report{
		ScanID: "s1",
		Gallery: []models.GalleryItem{
			{Key: "IRON_PICKAXE", Label: "Iron Pickaxe", Pool: models.PoolAllItems, Order: 7},
		},
		AvailablePools: []string{models.PoolAllItems, models.PoolOwnRisk},
	}
	report.Recount()
	require.NoError(t, rs.Save(ctx, "s1", report))

	// No script stored: a load that wrongly took the upgrade path would
	// still succeed, but writing order fields marks the report current.
	loaded, err := rs.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Gallery[0].Order)
}

func TestReportStoreUpgradeWithoutScript(t *testing.T) {
	rs, store := newTestReportStore(t)
	ctx := context.Background()

	legacy := `{
  "scan_id": "s1",
  "summary": {},
  "gallery": [
    {"key": "SOME_ITEM", "label": "Some Item"}
  ]
}`
	require.NoError(t, store.Put(ctx, reportPath("s1"), []byte(legacy), "application/json"))

	loaded, err := rs.Load(ctx, "s1")
	require.NoError(t, err)

	// No script to re-derive from: unmarshal defaults apply.
	assert.Equal(t, models.DefaultOrder, loaded.Gallery[0].Order)
	assert.Empty(t, loaded.Gallery[0].Pool)
	assert.Equal(t, []string{models.PoolAllItems, models.PoolOwnRisk}, loaded.AvailablePools)
}

func TestScriptTextNotFound(t *testing.T) {
	rs, _ := newTestReportStore(t)

	_, err := rs.ScriptText(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScanNotFound)
}
