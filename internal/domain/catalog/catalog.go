package catalog

import (
	"fmt"
	"slices"

	"party-rental/internal/domain/money"
)

// Catalog is an immutable, ordered set of items.
type Catalog struct {
	items []Item
	index map[int]int
}

func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[int]int, len(items)),
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", item.ID, err)
		}
		if _, dup := c.index[item.ID]; dup {
			return nil, fmt.Errorf("item %d: %w", item.ID, ErrDuplicateItemID)
		}
		c.index[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}
	return c, nil
}

func (c *Catalog) Items() []Item {
	return slices.Clone(c.items)
}

func (c *Catalog) Find(id int) (Item, error) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	return c.items[i], nil
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// Default is the stock party catalog.
func Default() *Catalog {
	c, err := New([]Item{
		defaultItem(1, "Folding Chair", "5", "10", "🪑", 50),
		defaultItem(2, "Canopy Tent (10x10)", "50", "100", "⛺", 10),
		defaultItem(3, "Round Table", "15", "30", "🪵", 20),
		defaultItem(4, "Dinner Plates (Set of 10)", "8", "15", "🍽️", 30),
		defaultItem(5, "Cutlery Set (10 pieces)", "6", "10", "🍴", 40),
		defaultItem(6, "Serving Bowls (Set of 5)", "10", "20", "🥣", 25),
		defaultItem(7, "Beverage Dispenser", "12", "25", "🥤", 15),
		defaultItem(8, "Party Lights String", "20", "30", "💡", 20),
	})
	if err != nil {
		panic("catalog: invalid default catalog: " + err.Error())
	}
	return c
}

func defaultItem(id int, name, price, deposit, image string, stock int) Item {
	return Item{
		ID:      id,
		Name:    name,
		Price:   money.MustParse(price),
		Deposit: money.MustParse(deposit),
		Image:   image,
		Stock:   stock,
	}
}
