package facts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []string{
		"technology", "science", "finance", "society",
		"entertainment", "health", "history", "news",
	}, r.Names())
	assert.Equal(t, 8, r.Len())
	assert.Equal(t, "bg-green-700", r.Color("science"))
	assert.Equal(t, "bg-purple-700", r.Color("news"))
}

func TestRegistryLookupIsTotal(t *testing.T) {
	r := DefaultRegistry()

	known := r.Lookup("history")
	assert.Equal(t, "history", known.Name)
	assert.Equal(t, "bg-amber-700", known.Color)

	unknown := r.Lookup("astrology")
	assert.Equal(t, "astrology", unknown.Name)
	assert.Equal(t, FallbackColor, unknown.Color)
	assert.Equal(t, FallbackHex, unknown.Hex)
}

func TestRegistryFilters(t *testing.T) {
	r := DefaultRegistry()

	assert.True(t, r.IsFilter(AllCategories))
	assert.True(t, r.IsFilter("science"))
	assert.False(t, r.IsFilter("astrology"))
	assert.False(t, r.IsFilter(""))

	assert.False(t, r.Has(AllCategories))
}

func TestRegistryCategoriesIsCopy(t *testing.T) {
	r := DefaultRegistry()

	cats := r.Categories()
	cats[0].Color = "bg-black"

	assert.Equal(t, "bg-sky-700", r.Color("technology"))
}

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name       string
		categories []Category
		wantErr    bool
	}{
		{"empty", nil, true},
		{"blank name", []Category{{Name: " "}}, true},
		{"reserved name", []Category{{Name: AllCategories}}, true},
		{"duplicate", []Category{{Name: "science"}, {Name: "science"}}, true},
		{"valid", []Category{{Name: "science", Color: "bg-green-700"}, {Name: "art"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegistry(tt.categories)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, FallbackColor, r.Color("art"))
		})
	}
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	content := "categories:\n  - { name: science, color: bg-green-700, hex: \"#15803d\" }\n  - { name: art, color: bg-rose-700 }\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"science", "art"}, r.Names())
	assert.Equal(t, "#15803d", r.Lookup("science").Hex)
	assert.Equal(t, FallbackHex, r.Lookup("art").Hex)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	r, err = LoadRegistryWithFallback("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRegistry().Names(), r.Names())
}

func TestShippedRegistryMatchesDefault(t *testing.T) {
	r, err := LoadRegistry(filepath.Join("..", "..", "configs", "categories.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRegistry().Categories(), r.Categories())
}
