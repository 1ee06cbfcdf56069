package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	seed, err := Default()
	require.NoError(t, err)

	assert.Len(t, seed.Products(), 20)
	assert.NotEmpty(t, seed.Records())

	names := make(map[string]bool)
	for _, c := range seed.Categories() {
		names[c.Name] = true
	}
	assert.True(t, names["adhesives"])
	assert.True(t, names["sealants"])
}

func TestDefault_EveryProductHasCategory(t *testing.T) {
	seed, err := Default()
	require.NoError(t, err)

	for _, p := range seed.Products() {
		assert.NotEmpty(t, p.Category, "product %s has no category", p.SKU)
	}
}

func TestDefault_RecordsReferenceProducts(t *testing.T) {
	seed, err := Default()
	require.NoError(t, err)

	ids := make(map[int64]bool)
	for _, p := range seed.Products() {
		ids[p.ID] = true
	}
	for _, r := range seed.Records() {
		assert.True(t, ids[r.ProductRef], "record %q references unknown product %d", r.Question, r.ProductRef)
	}
}

func TestDefault_ScenarioData(t *testing.T) {
	seed, err := Default()
	require.NoError(t, err)

	var found bool
	for _, r := range seed.Records() {
		if r.ProductRef == 1001 {
			assert.Equal(t, "How do I install Super Adhesive?", r.Question)
			found = true
		}
	}
	assert.True(t, found)

	byName := make(map[string][2]int64)
	for _, c := range seed.Categories() {
		byName[c.Name] = [2]int64{c.FirstProduct, c.LastProduct}
	}
	assert.Equal(t, [2]int64{1001, 1001}, byName["adhesives"])
	assert.Equal(t, [2]int64{1002, 1003}, byName["sealants"])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "invalid yaml", data: "categories: [\n"},
		{name: "unnamed category", data: "categories:\n  - {name: '', first: 1, last: 2}\n"},
		{name: "inverted range", data: "categories:\n  - {name: a, first: 5, last: 2}\n"},
		{name: "product without sku", data: "products:\n  - {id: 1, name: x}\n"},
		{name: "duplicate product", data: "products:\n  - {id: 1, sku: A}\n  - {id: 1, sku: B}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParse_Minimal(t *testing.T) {
	data := `
categories:
  - {name: tools, first: 10, last: 19}
products:
  - id: 12
    sku: T12
    name: Torque Wrench
    keywords: [wrench]
    alternatives: [T13]
records:
  - product: 12
    question: What torque range?
    answer: 10 to 150 ft-lbs.
    additional: [Calibrated at the factory.]
`
	seed, err := Parse([]byte(data))
	require.NoError(t, err)

	require.Len(t, seed.Products(), 1)
	p := seed.Products()[0]
	assert.Equal(t, "tools", p.Category)
	assert.Equal(t, []string{"wrench"}, p.Keywords)
	assert.Equal(t, []string{"T13"}, p.Alternatives)

	require.Len(t, seed.Records(), 1)
	assert.Equal(t, []string{"Calibrated at the factory."}, seed.Records()[0].AdditionalAnswers)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  - {id: 7, sku: S7}\n"), 0600))

	seed, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, seed.Products(), 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	def, err := Load("")
	require.NoError(t, err)
	assert.Len(t, def.Products(), 20)
}
