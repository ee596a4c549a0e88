package hobby

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
)

func TestCategoryTableComplete(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Categories() {
		info := c.Info()
		assert.NotEmpty(t, info.Name, "category %d has no name", c)
		assert.NotEmpty(t, info.Icon, "category %s has no icon", info.Name)
		assert.Regexp(t, `^#[0-9A-F]{6}$`, info.Color)
		assert.False(t, seen[info.Name], "duplicate category name %s", info.Name)
		seen[info.Name] = true
	}
	assert.Len(t, Categories(), 12)
}

func TestCategory_UnknownFallsBackToOther(t *testing.T) {
	assert.False(t, Category(99).IsValid())
	assert.Equal(t, "Other", Category(99).String())
	assert.Equal(t, CategoryOther.Icon(), Category(-1).Icon())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("  photography ")
	require.NoError(t, err)
	assert.Equal(t, CategoryPhotography, c)

	_, err = ParseCategory("Knitting")
	assert.ErrorIs(t, err, shared.ErrUnknownCategory)
}

func TestCategory_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		C Category `json:"c"`
	}{CategoryMusic})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"Music"}`, string(data))

	var out struct {
		C Category `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"c":"gaming"}`), &out))
	assert.Equal(t, CategoryGaming, out.C)
}

func TestPriority(t *testing.T) {
	assert.Equal(t, "High", PriorityHigh.String())
	assert.Equal(t, "#4CAF50", PriorityLow.Color())
	assert.Equal(t, "Medium", Priority(7).String())

	p, err := ParsePriority("low")
	require.NoError(t, err)
	assert.Equal(t, PriorityLow, p)

	_, err = ParsePriority("urgent")
	assert.ErrorIs(t, err, shared.ErrUnknownPriority)
}
