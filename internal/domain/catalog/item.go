package catalog

import (
	"errors"
	"strings"

	"party-rental/internal/domain/money"
)

var (
	ErrInvalidItemID   = errors.New("item id must be positive")
	ErrEmptyItemName   = errors.New("item name cannot be empty")
	ErrNegativeStock   = errors.New("stock cannot be negative")
	ErrDuplicateItemID = errors.New("duplicate item id")
	ErrItemNotFound    = errors.New("catalog item not found")
	ErrEmptyCatalog    = errors.New("catalog has no items")
)

// Item is a rentable product. Price is the rental charge; Deposit is refundable.
// Stock is shown to customers and never enforced.
type Item struct {
	ID      int
	Name    string
	Price   money.Money
	Deposit money.Money
	Image   string
	Stock   int
}

func NewItem(id int, name string, price, deposit money.Money, image string, stock int) (Item, error) {
	item := Item{
		ID:      id,
		Name:    strings.TrimSpace(name),
		Price:   price,
		Deposit: deposit,
		Image:   image,
		Stock:   stock,
	}
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (i Item) Validate() error {
	if i.ID <= 0 {
		return ErrInvalidItemID
	}
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyItemName
	}
	if i.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}
