package response

import (
	"party-rental/internal/domain/cart"
	"party-rental/internal/domain/money"
	"party-rental/internal/usecase"
)

type CartLineResponse struct {
	CatalogItemResponse
	Quantity   int         `json:"quantity"`
	RentAmount money.Money `json:"rentAmount" swaggertype:"number"`
	LineTotal  money.Money `json:"lineTotal" swaggertype:"number"`
}

type CartResponse struct {
	CartID    string             `json:"cartId"`
	Items     []CartLineResponse `json:"items"`
	ItemCount int                `json:"itemCount"`
	Subtotal  money.Money        `json:"subtotal" swaggertype:"number"`
	Deposit   money.Money        `json:"deposit" swaggertype:"number"`
	Total     money.Money        `json:"total" swaggertype:"number"`
	Changed   *bool              `json:"changed,omitempty"`
}

func FromCartView(v usecase.CartView) *CartResponse {
	items := make([]CartLineResponse, len(v.Lines))
	count := 0
	for i, l := range v.Lines {
		items[i] = fromLine(l)
		count += l.Quantity
	}
	return &CartResponse{
		CartID:    v.ID.String(),
		Items:     items,
		ItemCount: count,
		Subtotal:  v.Totals.Subtotal,
		Deposit:   v.Totals.Deposit,
		Total:     v.Totals.Total,
	}
}

// FromCartChange is the response of a mutating cart call.
func FromCartChange(v usecase.CartView, changed bool) *CartResponse {
	res := FromCartView(v)
	res.Changed = &changed
	return res
}

func fromLine(l cart.Line) CartLineResponse {
	return CartLineResponse{
		CatalogItemResponse: FromCatalogItem(l.Item),
		Quantity:            l.Quantity,
		RentAmount:          l.RentAmount(),
		LineTotal:           l.LineTotal(),
	}
}
