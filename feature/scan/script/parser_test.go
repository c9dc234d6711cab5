package script_test

import (
	"testing"

	"texture-scanner/feature/scan/models"
	"texture-scanner/feature/scan/script"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScript = `ALL_ITEM_POOL = [
    "SWORD",
    "SHIELD",

    # Tools
    "PICKAXE",
    "SHOVEL",

    # Food
    "APPLE",
]

OWN_RISK_ITEM_POOL = [
    "TNT",
]
`

func TestParse(t *testing.T) {
	res := script.Parse(sampleScript)

	assert.Equal(t, []string{"ALL_ITEM_POOL", "OWN_RISK_ITEM_POOL"}, res.PoolNames)

	assert.Equal(t, map[string]string{
		"SWORD":   "ALL_ITEM_POOL",
		"SHIELD":  "ALL_ITEM_POOL",
		"PICKAXE": "ALL_ITEM_POOL",
		"SHOVEL":  "ALL_ITEM_POOL",
		"APPLE":   "ALL_ITEM_POOL",
		"TNT":     "OWN_RISK_ITEM_POOL",
	}, res.Pools)

	assert.Equal(t, "Sword", res.Labels["SWORD"])
	assert.Equal(t, "Tnt", res.Labels["TNT"])

	// Items before the first comment carry no category
	_, hasCategory := res.Categories["SWORD"]
	assert.False(t, hasCategory)
	assert.Equal(t, "Tools", res.Categories["PICKAXE"])
	assert.Equal(t, "Tools", res.Categories["SHOVEL"])
	assert.Equal(t, "Food", res.Categories["APPLE"])

	// 0-based document order within each pool
	assert.Equal(t, 0, res.Orders["SWORD"])
	assert.Equal(t, 1, res.Orders["SHIELD"])
	assert.Equal(t, 2, res.Orders["PICKAXE"])
	assert.Equal(t, 4, res.Orders["APPLE"])
	assert.Equal(t, 0, res.Orders["TNT"])
}

func TestParse_Idempotent(t *testing.T) {
	first := script.Parse(sampleScript)
	second := script.Parse(sampleScript)

	assert.Equal(t, first.Labels, second.Labels)
	assert.Equal(t, first.Pools, second.Pools)
	assert.Equal(t, first.Categories, second.Categories)
	assert.Equal(t, first.Orders, second.Orders)
	assert.Equal(t, first.PoolNames, second.PoolNames)
}

func TestParse_DuplicateKeyAcrossPools(t *testing.T) {
	text := `ALL_ITEM_POOL = [
    # First
    "SWORD",
]

OWN_RISK_ITEM_POOL = [
    "SHIELD",
    "SWORD",
]
`
	res := script.Parse(text)

	// The last declaration wins for pool, category and order alike.
	assert.Equal(t, "OWN_RISK_ITEM_POOL", res.Pools["SWORD"])
	assert.NotContains(t, res.Categories, "SWORD")
	assert.Equal(t, 1, res.Orders["SWORD"])
}

func TestParse_MalformedPool(t *testing.T) {
	// The unterminated list yields no items but the pool name is still known
	text := `ALL_ITEM_POOL = [
    "SWORD",
`
	res := script.Parse(text)

	assert.Empty(t, res.Labels)
	assert.Empty(t, res.Pools)
	assert.Equal(t, []string{"ALL_ITEM_POOL"}, res.PoolNames)
}

func TestParse_EmptyInput(t *testing.T) {
	res := script.Parse("")
	assert.Empty(t, res.Labels)
	assert.Empty(t, res.PoolNames)
}

func TestAvailablePools(t *testing.T) {
	t.Run("AppendsWellKnown", func(t *testing.T) {
		res := script.Parse(`CUSTOM_ITEM_POOL = [
    "A",
]
`)
		assert.Equal(t,
			[]string{"CUSTOM_ITEM_POOL", models.PoolAllItems, models.PoolOwnRisk},
			res.AvailablePools())
	})

	t.Run("NoDuplicateWellKnown", func(t *testing.T) {
		res := script.Parse(sampleScript)
		assert.Equal(t,
			[]string{models.PoolAllItems, models.PoolOwnRisk},
			res.AvailablePools())
	})
}

func TestKeys(t *testing.T) {
	res := script.Parse(sampleScript)
	ks := res.Keys()

	canonical, ok := ks.Resolve("sword")
	require.True(t, ok)
	assert.Equal(t, "SWORD", canonical)

	_, ok = ks.Resolve("UNKNOWN")
	assert.False(t, ok)
}
