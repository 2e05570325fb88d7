package response

import (
	"party-rental/internal/domain/catalog"
	"party-rental/internal/domain/money"
)

type CatalogItemResponse struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Price   money.Money `json:"price" swaggertype:"number"`
	Deposit money.Money `json:"deposit" swaggertype:"number"`
	Image   string      `json:"image"`
	Stock   int         `json:"stock"`
}

func FromCatalogItem(it catalog.Item) CatalogItemResponse {
	return CatalogItemResponse{
		ID:      it.ID,
		Name:    it.Name,
		Price:   it.Price,
		Deposit: it.Deposit,
		Image:   it.Image,
		Stock:   it.Stock,
	}
}

func FromCatalogItems(items []catalog.Item) []CatalogItemResponse {
	res := make([]CatalogItemResponse, len(items))
	for i, it := range items {
		res[i] = FromCatalogItem(it)
	}
	return res
}
