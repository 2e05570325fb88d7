package request

import (
	"party-rental/internal/domain/order"

	"github.com/jinzhu/copier"
)

type AddItemRequest struct {
	ItemID int `json:"itemId" binding:"required,gt=0"`
}

// Delta is a pointer so an explicit 0 passes the required check.
type ChangeQuantityRequest struct {
	Delta *int `json:"delta" binding:"required,min=-9999,max=9999"`
}

// CheckoutRequest checks formats only. Missing fields are left for the order
// engine so its validation error can name them.
type CheckoutRequest struct {
	Name         string `json:"name" binding:"max=200"`
	Email        string `json:"email" binding:"omitempty,email,max=254"`
	Phone        string `json:"phone" binding:"max=50"`
	Location     string `json:"location" binding:"max=500"`
	DeliveryDate string `json:"deliveryDate" binding:"omitempty,datetime=2006-01-02"`
	DeliveryTime string `json:"deliveryTime" binding:"omitempty,datetime=15:04"`
}

func (r *CheckoutRequest) ToDomain() (order.CheckoutDetails, error) {
	var details order.CheckoutDetails
	if err := copier.Copy(&details, r); err != nil {
		return order.CheckoutDetails{}, err
	}
	return details, nil
}
