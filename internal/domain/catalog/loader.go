package catalog

import (
	"fmt"
	"io"
	"os"

	"party-rental/internal/domain/money"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File layout:
//
//	items:
//	  - id: 1
//	    name: Folding Chair
//	    price: 5
//	    deposit: 10
//	    image: "🪑"
//	    stock: 50
type fileCatalog struct {
	Items []fileItem `yaml:"items"`
}

type fileItem struct {
	ID      int    `yaml:"id"`
	Name    string `yaml:"name"`
	Price   amount `yaml:"price"`
	Deposit amount `yaml:"deposit"`
	Image   string `yaml:"image"`
	Stock   int    `yaml:"stock"`
}

// amount parses the scalar text directly so YAML floats never pass through float64.
type amount struct {
	value money.Money
}

func (a *amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", node.Line)
	}
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q", node.Line, node.Value)
	}
	m, err := money.New(d)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	a.value = m
	return nil
}

func Load(r io.Reader) (*Catalog, error) {
	var fc fileCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	items := make([]Item, 0, len(fc.Items))
	for _, fi := range fc.Items {
		item, err := NewItem(fi.ID, fi.Name, fi.Price.value, fi.Deposit.value, fi.Image, fi.Stock)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", fi.ID, err)
		}
		items = append(items, item)
	}
	return New(items)
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return Load(f)
}
