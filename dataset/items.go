package dataset

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/knapgrid/knapsack"
)

// itemsFile is the on-disk layout of an item list.
type itemsFile struct {
	Items []knapsack.Item `yaml:"items"`
}

// LoadItems decodes an item list and validates every item.
func LoadItems(r io.Reader) ([]knapsack.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}

	var f itemsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing items: %w", err)
	}
	if f.Items == nil {
		f.Items = []knapsack.Item{}
	}
	if err := knapsack.ValidateItems(f.Items); err != nil {
		return nil, err
	}

	return f.Items, nil
}

// LoadItemsFile opens path and calls LoadItems.
func LoadItemsFile(path string) ([]knapsack.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	items, err := LoadItems(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return items, nil
}
