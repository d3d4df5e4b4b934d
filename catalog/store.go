// Package catalog holds the fixed list of selectable chat platforms and the
// filtered, paginated view the sidebar shows of it.
package catalog

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grovetools/deck/errors"
	"github.com/moby/patternmatcher"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultCatalog []byte

// AllCategories is the category sentinel that matches every item.
const AllCategories = "All"

// Item is one selectable platform. Items are values and never change after load.
type Item struct {
	ID       string `yaml:"id" toml:"id" json:"id"`
	Name     string `yaml:"name" toml:"name" json:"name"`
	URL      string `yaml:"url" toml:"url" json:"url"`
	IconRef  string `yaml:"icon,omitempty" toml:"icon,omitempty" json:"icon,omitempty"`
	Category string `yaml:"category" toml:"category" json:"category"`
}

// file is the on-disk shape of a catalog, shared by the YAML and TOML loaders.
type file struct {
	Items []Item `yaml:"items" toml:"items"`
}

// Store is the immutable, ordered catalog.
type Store struct {
	items []Item
	index map[string]int
}

// NewStore validates items and builds a store that preserves their order.
func NewStore(items []Item) (*Store, error) {
	s := &Store{
		items: make([]Item, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, item := range items {
		if err := validateItem(item); err != nil {
			return nil, errors.CatalogInvalid(i, err.Error()).WithDetail("id", item.ID)
		}
		if _, dup := s.index[item.ID]; dup {
			return nil, errors.CatalogInvalid(i, fmt.Sprintf("duplicate id '%s'", item.ID)).
				WithDetail("id", item.ID)
		}
		s.index[item.ID] = len(s.items)
		s.items = append(s.items, item)
	}
	return s, nil
}

// Default returns the store built from the embedded catalog table.
func Default() (*Store, error) {
	return Parse(defaultCatalog, ".yml")
}

// Load reads a catalog file. The extension selects the format (.toml, otherwise YAML).
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCatalogInvalid, "failed to read catalog file").
			WithDetail("path", path)
	}
	store, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return store, nil
}

// Parse decodes catalog data in the format named by ext.
func Parse(data []byte, ext string) (*Store, error) {
	var f file
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeCatalogInvalid, "failed to parse TOML catalog")
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeCatalogInvalid, "failed to parse YAML catalog")
		}
	}
	return NewStore(f.Items)
}

func validateItem(item Item) error {
	if strings.TrimSpace(item.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("name is required")
	}
	u, err := url.Parse(item.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("url must be an absolute http(s) URL, got %q", item.URL)
	}
	if strings.TrimSpace(item.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if item.Category == AllCategories {
		return fmt.Errorf("category %q is reserved", AllCategories)
	}
	return nil
}

// Without returns a new store with every item whose id matches one of the glob
// patterns removed. An empty pattern list returns the receiver.
func (s *Store) Without(patterns []string) (*Store, error) {
	if len(patterns) == 0 {
		return s, nil
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid catalog.hidden pattern")
	}
	kept := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		hidden, err := pm.MatchesOrParentMatches(item.ID)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid catalog.hidden pattern")
		}
		if !hidden {
			kept = append(kept, item)
		}
	}
	return NewStore(kept)
}

// Items returns the catalog in its original order. The slice is a copy.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len is the number of items in the catalog.
func (s *Store) Len() int {
	return len(s.items)
}

// Lookup finds an item by id.
func (s *Store) Lookup(id string) (Item, bool) {
	i, ok := s.index[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

// Categories returns the "All" sentinel plus every distinct category, sorted.
func (s *Store) Categories() []string {
	seen := map[string]bool{AllCategories: true}
	cats := []string{AllCategories}
	for _, item := range s.items {
		if !seen[item.Category] {
			seen[item.Category] = true
			cats = append(cats, item.Category)
		}
	}
	sort.Strings(cats)
	return cats
}
