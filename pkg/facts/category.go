package facts

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AllCategories is the filter sentinel that selects every category
const AllCategories = "all"

// Fallback display values for categories the registry does not know about
const (
	FallbackColor = "bg-stone-500"
	FallbackHex   = "#78716c"
)

// Category is a topic tag with its display colors
type Category struct {
	Name  string `json:"name" yaml:"name"`   // Unique key
	Color string `json:"color" yaml:"color"` // Tailwind class used by the web page
	Hex   string `json:"hex" yaml:"hex"`     // Terminal color used by the TUI
}

// defaultCategories is the registry shipped with the app
var defaultCategories = []Category{
	{Name: "technology", Color: "bg-sky-700", Hex: "#0369a1"},
	{Name: "science", Color: "bg-green-700", Hex: "#15803d"},
	{Name: "finance", Color: "bg-red-700", Hex: "#b91c1c"},
	{Name: "society", Color: "bg-yellow-700", Hex: "#a16207"},
	{Name: "entertainment", Color: "bg-pink-700", Hex: "#be185d"},
	{Name: "health", Color: "bg-cyan-700", Hex: "#0e7490"},
	{Name: "history", Color: "bg-amber-700", Hex: "#b45309"},
	{Name: "news", Color: "bg-purple-700", Hex: "#7e22ce"},
}

// Registry is an immutable, ordered set of categories. Lookups never fail
type Registry struct {
	categories []Category
	index      map[string]int
}

// NewRegistry builds a registry from an ordered list of categories
func NewRegistry(categories []Category) (*Registry, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("registry needs at least one category")
	}

	r := &Registry{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
	}

	for _, cat := range categories {
		cat.Name = strings.TrimSpace(cat.Name)
		if cat.Name == "" {
			return nil, fmt.Errorf("category name cannot be empty")
		}
		if cat.Name == AllCategories {
			return nil, fmt.Errorf("category name '%s' is reserved", AllCategories)
		}
		if _, exists := r.index[cat.Name]; exists {
			return nil, fmt.Errorf("duplicate category '%s'", cat.Name)
		}
		if cat.Color == "" {
			cat.Color = FallbackColor
		}
		if cat.Hex == "" {
			cat.Hex = FallbackHex
		}

		r.index[cat.Name] = len(r.categories)
		r.categories = append(r.categories, cat)
	}

	return r, nil
}

// DefaultRegistry returns the built-in categories
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultCategories)
	if err != nil {
		panic(err)
	}
	return r
}

// LoadRegistry reads a YAML file with a top level `categories` list
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}

	var file struct {
		Categories []Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse categories file: %w", err)
	}

	return NewRegistry(file.Categories)
}

// LoadRegistryWithFallback loads the registry at path, or the default one when path is empty
func LoadRegistryWithFallback(path string) (*Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}
	return LoadRegistry(path)
}

// Categories returns a copy of the categories in registry order
func (r *Registry) Categories() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Names returns the category names in registry order
func (r *Registry) Names() []string {
	names := make([]string, len(r.categories))
	for i, cat := range r.categories {
		names[i] = cat.Name
	}
	return names
}

// Len returns the number of categories
func (r *Registry) Len() int {
	return len(r.categories)
}

// Has reports whether name is a registered category
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// IsFilter reports whether name can be used to filter the fact list
func (r *Registry) IsFilter(name string) bool {
	return name == AllCategories || r.Has(name)
}

// Lookup returns the category for name. Unknown names get the fallback colors
func (r *Registry) Lookup(name string) Category {
	if i, ok := r.index[name]; ok {
		return r.categories[i]
	}
	return Category{Name: name, Color: FallbackColor, Hex: FallbackHex}
}

// Color returns the display class for name
func (r *Registry) Color(name string) string {
	return r.Lookup(name).Color
}
