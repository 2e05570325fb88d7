package cart

import (
	"party-rental/internal/domain/catalog"
	"party-rental/internal/domain/money"
)

// Line is a catalog item copy with its quantity. Quantity is at least 1 while
// the line is held by a Cart.
type Line struct {
	Item     catalog.Item
	Quantity int
}

// RentAmount is price × quantity.
func (l Line) RentAmount() money.Money {
	return l.Item.Price.Times(l.Quantity)
}

func (l Line) DepositAmount() money.Money {
	return l.Item.Deposit.Times(l.Quantity)
}

// LineTotal is rent plus refundable deposit for the line.
func (l Line) LineTotal() money.Money {
	return l.RentAmount().Add(l.DepositAmount())
}

type Totals struct {
	Subtotal money.Money
	Deposit  money.Money
	Total    money.Money
}

// ComputeTotals sums rent and deposit over lines. It has no side effects.
func ComputeTotals(lines []Line) Totals {
	subtotal := money.Zero()
	deposit := money.Zero()
	for _, l := range lines {
		subtotal = subtotal.Add(l.RentAmount())
		deposit = deposit.Add(l.DepositAmount())
	}
	return Totals{
		Subtotal: subtotal,
		Deposit:  deposit,
		Total:    subtotal.Add(deposit),
	}
}
