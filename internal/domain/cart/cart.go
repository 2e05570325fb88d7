package cart

import (
	"slices"

	"party-rental/internal/domain/catalog"
)

// Cart is a single customer's in-progress selection. Lines keep first-added
// order and no two lines share an item id. A Cart is not safe for concurrent use.
//
// Mutating methods report whether the cart changed so callers can decide to re-render.
type Cart struct {
	lines []Line
}

// MaxQuantity caps a single line. Increments beyond it are clamped.
const MaxQuantity = 9999

func New() *Cart {
	return &Cart{}
}

func (c *Cart) AddItem(item catalog.Item) bool {
	if i := c.indexOf(item.ID); i >= 0 {
		if c.lines[i].Quantity >= MaxQuantity {
			return false
		}
		c.lines[i].Quantity++
		return true
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
	return true
}

// ChangeQuantity adds delta to the line's quantity and drops the line once it
// reaches zero. Results above MaxQuantity are clamped. Unknown ids are
// ignored, so an absent line is never recreated.
func (c *Cart) ChangeQuantity(itemID, delta int) bool {
	i := c.indexOf(itemID)
	if i < 0 || delta == 0 {
		return false
	}
	current := c.lines[i].Quantity
	if delta <= -current {
		c.lines = slices.Delete(c.lines, i, i+1)
		return true
	}
	// compared before adding so huge deltas cannot wrap
	next := MaxQuantity
	if delta < MaxQuantity-current {
		next = current + delta
	}
	if next == current {
		return false
	}
	c.lines[i].Quantity = next
	return true
}

func (c *Cart) RemoveItem(itemID int) bool {
	i := c.indexOf(itemID)
	if i < 0 {
		return false
	}
	c.lines = slices.Delete(c.lines, i, i+1)
	return true
}

func (c *Cart) Clear() bool {
	if len(c.lines) == 0 {
		return false
	}
	c.lines = nil
	return true
}

// Lines returns a copy; editing it never touches the cart.
func (c *Cart) Lines() []Line {
	return slices.Clone(c.lines)
}

func (c *Cart) Quantity(itemID int) int {
	if i := c.indexOf(itemID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) ComputeTotals() Totals {
	return ComputeTotals(c.lines)
}

func (c *Cart) indexOf(itemID int) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.Item.ID == itemID })
}
