package scan

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"texture-scanner/core/storage"
	"texture-scanner/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestService(t *testing.T) (*Service, *mocks.MemoryClient) {
	t.Helper()
	client := mocks.NewMemoryClient()
	store := storage.NewStore(client, "test-bucket")
	return NewService(store, zap.NewNop(), nil), client
}

const testScript = `ALL_ITEM_POOL = [
    # Tools
    "IRON_PICKAXE",
    "IRON_SHOVEL",
]

OWN_RISK_ITEM_POOL = [
    "TNT_BLOCK",
]
`

func startTestScan(t *testing.T, svc *Service, uploads []Upload) string {
	t.Helper()
	report, err := svc.StartScan(context.Background(), testScript, uploads)
	require.NoError(t, err)
	return report.ScanID
}

func TestStartScan(t *testing.T) {
	svc, client := newTestService(t)

	uploads := []Upload{
		{Filename: "IRON_PICKAXE.png", Data: pngBytes(t, 16, 16)},
		{Filename: "tnt_block.png", Data: pngBytes(t, 32, 32)},
		{Filename: "GOLDEN_APPLE.png", Data: pngBytes(t, 16, 16)},
	}

	report, err := svc.StartScan(context.Background(), testScript, uploads)
	require.NoError(t, err)

	assert.Len(t, report.Gallery, 4)
	assert.Equal(t, 3, report.Summary.TotalItems)
	assert.Equal(t, 3, report.Summary.TotalTextures)
	assert.Equal(t, 1, report.Summary.MissingTextures) // IRON_SHOVEL
	assert.Equal(t, 1, report.Summary.MissingNames)    // GOLDEN_APPLE
	assert.Equal(t, 1, report.Summary.WrongSize)       // tnt_block
	assert.Equal(t, 0, report.Summary.Duplicates)

	// Texture keys resolve case-insensitively against declared items.
	item := report.Find("TNT_BLOCK")
	require.NotNil(t, item)
	assert.True(t, item.WrongSize)
	require.NotNil(t, item.WrongSizeInfo)
	assert.Equal(t, 32, item.WrongSizeInfo.Width)

	undeclared := report.Find("GOLDEN_APPLE")
	require.NotNil(t, undeclared)
	assert.True(t, undeclared.MissingName)
	assert.Equal(t, "Golden Apple", undeclared.Label)
	assert.True(t, undeclared.HasProblem)

	// Script, report and textures all persisted.
	objects := client.Objects()
	assert.Contains(t, objects, "scans/"+report.ScanID+"/settings.py")
	assert.Contains(t, objects, "scans/"+report.ScanID+"/report.json")
	assert.Contains(t, objects, "scans/"+report.ScanID+"/textures/iron_pickaxe.png")
}

func TestStartScanPreservesScriptVerbatim(t *testing.T) {
	svc, _ := newTestService(t)
	id := startTestScan(t, svc, nil)

	text, err := svc.GetScriptText(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, testScript, text)
}

func TestGetReportUnknownScan(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetReport(context.Background(), "no-such-scan")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestAddTexture(t *testing.T) {
	svc, _ := newTestService(t)
	id := startTestScan(t, svc, nil)
	ctx := context.Background()

	report, err := svc.AddTexture(ctx, id, "diamond_sword", "ALL_ITEM_POOL", pngBytes(t, 16, 16))
	require.NoError(t, err)

	item := report.Find("DIAMOND_SWORD")
	require.NotNil(t, item)
	assert.Equal(t, "Diamond Sword", item.Label)
	assert.Equal(t, "ALL_ITEM_POOL", item.Pool)
	assert.False(t, item.HasProblem)

	// Summary reflects the new item.
	assert.Equal(t, 4, report.Summary.TotalItems)
	assert.Equal(t, 1, report.Summary.TotalTextures)

	// Script regenerated to include the new key.
	text, err := svc.GetScriptText(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, text, `"DIAMOND_SWORD"`)
}

func TestAddTextureValidation(t *testing.T) {
	svc, _ := newTestService(t)
	id := startTestScan(t, svc, nil)
	ctx := context.Background()
	valid := pngBytes(t, 16, 16)

	cases := []struct {
		name  string
		key   string
		pool  string
		image []byte
	}{
		{"BadKey", "no spaces!", "ALL_ITEM_POOL", valid},
		{"UnknownPool", "IRON_AXE", "NOT_A_POOL", valid},
		{"WrongSize", "IRON_AXE", "ALL_ITEM_POOL", pngBytes(t, 32, 32)},
		{"NotAnImage", "IRON_AXE", "ALL_ITEM_POOL", []byte("junk")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddTexture(ctx, id, tc.key, tc.pool, tc.image)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}

	// No partial effect: none of the rejected keys appear.
	report, err := svc.GetReport(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, report.Find("IRON_AXE"))
}

func TestAddTextureReplacesExistingKey(t *testing.T) {
	svc, _ := newTestService(t)
	id := startTestScan(t, svc, nil)
	ctx := context.Background()

	// IRON_SHOVEL is declared but missing its texture; adding it under a
	// different casing replaces the entry and clears the flag.
	report, err := svc.AddTexture(ctx, id, "iron_shovel", "ALL_ITEM_POOL", pngBytes(t, 16, 16))
	require.NoError(t, err)

	item := report.Find("IRON_SHOVEL")
	require.NotNil(t, item)
	assert.False(t, item.MissingTexture)
	assert.False(t, item.HasProblem)
	assert.Equal(t, 0, report.Summary.MissingTextures)
	assert.Len(t, report.Gallery, 3)
}

func TestEditTextureRename(t *testing.T) {
	svc, client := newTestService(t)
	uploads := []Upload{{Filename: "IRON_PICKAXE.png", Data: pngBytes(t, 16, 16)}}
	id := startTestScan(t, svc, uploads)
	ctx := context.Background()

	report, err := svc.EditTexture(ctx, id, "IRON_PICKAXE", "STEEL_PICKAXE", "OWN_RISK_ITEM_POOL", nil)
	require.NoError(t, err)

	assert.Nil(t, report.Find("IRON_PICKAXE"))
	item := report.Find("STEEL_PICKAXE")
	require.NotNil(t, item)
	assert.Equal(t, "Steel Pickaxe", item.Label)
	assert.Equal(t, "OWN_RISK_ITEM_POOL", item.Pool)

	// The stored texture follows the rename.
	objects := client.Objects()
	assert.Contains(t, objects, "scans/"+id+"/textures/steel_pickaxe.png")
	assert.NotContains(t, objects, "scans/"+id+"/textures/iron_pickaxe.png")
}

func TestEditTextureRenameOntoExistingKey(t *testing.T) {
	svc, _ := newTestService(t)
	uploads := []Upload{{Filename: "IRON_PICKAXE.png", Data: pngBytes(t, 16, 16)}}
	id := startTestScan(t, svc, uploads)
	ctx := context.Background()

	report, err := svc.EditTexture(ctx, id, "IRON_PICKAXE", "IRON_SHOVEL", "ALL_ITEM_POOL", nil)
	require.NoError(t, err)

	// The pre-existing IRON_SHOVEL entry is replaced, not duplicated.
	count := 0
	for _, g := range report.Gallery {
		if g.Key == "IRON_SHOVEL" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Len(t, report.Gallery, 2)

	item := report.Find("IRON_SHOVEL")
	require.NotNil(t, item)
	assert.False(t, item.MissingTexture)

	// The regenerated script declares the key exactly once.
	text, err := svc.GetScriptText(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(text, `"IRON_SHOVEL"`))
}

func TestEditTextureReplacementClearsWrongSize(t *testing.T) {
	svc, _ := newTestService(t)
	uploads := []Upload{{Filename: "TNT_BLOCK.png", Data: pngBytes(t, 32, 32)}}
	id := startTestScan(t, svc, uploads)
	ctx := context.Background()

	report, err := svc.GetReport(ctx, id)
	require.NoError(t, err)
	require.True(t, report.Find("TNT_BLOCK").WrongSize)

	report, err = svc.EditTexture(ctx, id, "TNT_BLOCK", "TNT_BLOCK", "OWN_RISK_ITEM_POOL", pngBytes(t, 16, 16))
	require.NoError(t, err)

	item := report.Find("TNT_BLOCK")
	require.NotNil(t, item)
	assert.False(t, item.WrongSize)
	assert.Nil(t, item.WrongSizeInfo)
	assert.False(t, item.HasProblem)
	assert.Equal(t, 0, report.Summary.WrongSize)
}

func TestEditTextureUnknownItem(t *testing.T) {
	svc, _ := newTestService(t)
	id := startTestScan(t, svc, nil)

	_, err := svc.EditTexture(context.Background(), id, "NOPE", "STILL_NOPE", "ALL_ITEM_POOL", nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDeleteTextures(t *testing.T) {
	svc, client := newTestService(t)
	uploads := []Upload{{Filename: "IRON_PICKAXE.png", Data: pngBytes(t, 16, 16)}}
	id := startTestScan(t, svc, uploads)

	deleted, report, err := svc.DeleteTextures(context.Background(), id, []string{"iron_pickaxe", "UNKNOWN_KEY"})
	require.NoError(t, err)

	assert.Equal(t, 1, deleted)
	assert.Nil(t, report.Find("IRON_PICKAXE"))
	assert.Equal(t, 0, report.Summary.TotalTextures)
	assert.NotContains(t, client.Objects(), "scans/"+id+"/textures/iron_pickaxe.png")
}

func TestBulkAddMissing(t *testing.T) {
	svc, _ := newTestService(t)
	uploads := []Upload{
		{Filename: "GOLDEN_APPLE.png", Data: pngBytes(t, 16, 16)},
		{Filename: "ENDER_PEARL.png", Data: pngBytes(t, 16, 16)},
	}
	id := startTestScan(t, svc, uploads)

	added, report, err := svc.BulkAddMissing(context.Background(), id, "OWN_RISK_ITEM_POOL")
	require.NoError(t, err)

	assert.Equal(t, 2, added)
	assert.Equal(t, 0, report.Summary.MissingNames)
	for _, key := range []string{"GOLDEN_APPLE", "ENDER_PEARL"} {
		item := report.Find(key)
		require.NotNil(t, item)
		assert.False(t, item.MissingName)
		assert.Equal(t, "OWN_RISK_ITEM_POOL", item.Pool)
	}
	// Declared items without textures are untouched.
	assert.Equal(t, 3, report.Summary.MissingTextures)
}

func TestBulkAddToPool(t *testing.T) {
	svc, _ := newTestService(t)
	id := startTestScan(t, svc, nil)

	moved, report, err := svc.BulkAddToPool(context.Background(), id,
		[]string{"IRON_PICKAXE", "IRON_SHOVEL"}, "OWN_RISK_ITEM_POOL")
	require.NoError(t, err)

	assert.Equal(t, 2, moved)
	assert.Equal(t, "OWN_RISK_ITEM_POOL", report.Find("IRON_PICKAXE").Pool)
	assert.Equal(t, "OWN_RISK_ITEM_POOL", report.Find("IRON_SHOVEL").Pool)
}

func TestUpdateCategory(t *testing.T) {
	svc, _ := newTestService(t)
	id := startTestScan(t, svc, nil)
	ctx := context.Background()

	report, err := svc.UpdateCategory(ctx, id, "TNT_BLOCK", "Explosives")
	require.NoError(t, err)
	assert.Equal(t, "Explosives", report.Find("TNT_BLOCK").Category)

	text, err := svc.GetScriptText(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, text, "# Explosives")

	_, err = svc.UpdateCategory(ctx, id, "MISSING", "Explosives")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestBulkUpdateCategory(t *testing.T) {
	svc, _ := newTestService(t)
	id := startTestScan(t, svc, nil)

	updated, report, err := svc.BulkUpdateCategory(context.Background(), id,
		[]string{"IRON_PICKAXE", "IRON_SHOVEL", "NOPE"}, "Gear")
	require.NoError(t, err)

	assert.Equal(t, 2, updated)
	assert.Equal(t, "Gear", report.Find("IRON_PICKAXE").Category)
	assert.Equal(t, "Gear", report.Find("IRON_SHOVEL").Category)
}

func TestReorderItems(t *testing.T) {
	svc, _ := newTestService(t)
	id := startTestScan(t, svc, nil)
	ctx := context.Background()

	report, err := svc.ReorderItems(ctx, id, map[string]int{
		"IRON_SHOVEL":  1,
		"IRON_PICKAXE": 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Find("IRON_SHOVEL").Order)
	assert.Equal(t, 2, report.Find("IRON_PICKAXE").Order)

	// The regenerated script follows the new order.
	text, err := svc.GetScriptText(ctx, id)
	require.NoError(t, err)
	assert.Less(t,
		bytes.Index([]byte(text), []byte("IRON_SHOVEL")),
		bytes.Index([]byte(text), []byte("IRON_PICKAXE")))
}

func TestMutationSequenceKeepsSummaryConsistent(t *testing.T) {
	svc, _ := newTestService(t)
	uploads := []Upload{
		{Filename: "IRON_PICKAXE.png", Data: pngBytes(t, 16, 16)},
		{Filename: "GOLDEN_APPLE.png", Data: pngBytes(t, 16, 16)},
	}
	id := startTestScan(t, svc, uploads)
	ctx := context.Background()

	_, _, err := svc.BulkAddMissing(ctx, id, "ALL_ITEM_POOL")
	require.NoError(t, err)
	_, err = svc.AddTexture(ctx, id, "IRON_SHOVEL", "ALL_ITEM_POOL", pngBytes(t, 16, 16))
	require.NoError(t, err)
	_, report, err := svc.DeleteTextures(ctx, id, []string{"TNT_BLOCK"})
	require.NoError(t, err)

	// Recount the gallery by hand and compare against the summary.
	var items, textures, missingTex, missingName int
	for _, g := range report.Gallery {
		if !g.MissingName {
			items++
		}
		if !g.MissingTexture {
			textures++
		}
		if g.MissingTexture && !g.MissingName {
			missingTex++
		}
		if g.MissingName {
			missingName++
		}
	}
	assert.Equal(t, items, report.Summary.TotalItems)
	assert.Equal(t, textures, report.Summary.TotalTextures)
	assert.Equal(t, missingTex, report.Summary.MissingTextures)
	assert.Equal(t, missingName, report.Summary.MissingNames)
}

func TestListExportableFiles(t *testing.T) {
	svc, _ := newTestService(t)
	uploads := []Upload{{Filename: "IRON_PICKAXE.png", Data: pngBytes(t, 16, 16)}}
	id := startTestScan(t, svc, uploads)
	ctx := context.Background()

	files, err := svc.ListExportableFiles(ctx, id)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "settings.py", files[0].Name)
	assert.Equal(t, "textures/iron_pickaxe.png", files[1].Name)

	_, err = svc.ListExportableFiles(ctx, "no-such-scan")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestListScansWithoutDatabase(t *testing.T) {
	svc, _ := newTestService(t)

	records, err := svc.ListScans(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
