package docstore

import (
	"party-rental/internal/domain/money"
	"party-rental/internal/domain/order"
	"party-rental/internal/infra/converter"
	"party-rental/internal/pkg/errs"
)

// Money is stored as a Firestore double, the way browser clients write it.
type itemDocument struct {
	ID       int     `firestore:"id"`
	Name     string  `firestore:"name"`
	Price    float64 `firestore:"price"`
	Deposit  float64 `firestore:"deposit"`
	Image    string  `firestore:"image"`
	Stock    int     `firestore:"stock"`
	Quantity int     `firestore:"quantity"`
}

type orderDocument struct {
	ID           string         `firestore:"id"`
	Name         string         `firestore:"name"`
	Email        string         `firestore:"email"`
	Phone        string         `firestore:"phone"`
	Location     string         `firestore:"location"`
	DeliveryDate string         `firestore:"deliveryDate"`
	DeliveryTime string         `firestore:"deliveryTime"`
	Items        []itemDocument `firestore:"items"`
	Subtotal     float64        `firestore:"subtotal"`
	Deposit      float64        `firestore:"deposit"`
	Total        float64        `firestore:"total"`
	Status       string         `firestore:"status"`
	Timestamp    string         `firestore:"timestamp"`
}

func toDocument(o *order.Order) orderDocument {
	wire := converter.OrderToDocument(o)
	items := make([]itemDocument, len(wire.Items))
	for i, it := range wire.Items {
		items[i] = itemDocument{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price.Float64(),
			Deposit:  it.Deposit.Float64(),
			Image:    it.Image,
			Stock:    it.Stock,
			Quantity: it.Quantity,
		}
	}
	return orderDocument{
		ID:           wire.ID,
		Name:         wire.Name,
		Email:        wire.Email,
		Phone:        wire.Phone,
		Location:     wire.Location,
		DeliveryDate: wire.DeliveryDate,
		DeliveryTime: wire.DeliveryTime,
		Items:        items,
		Subtotal:     wire.Subtotal.Float64(),
		Deposit:      wire.Deposit.Float64(),
		Total:        wire.Total.Float64(),
		Status:       wire.Status,
		Timestamp:    wire.Timestamp,
	}
}

// fromDocument decodes a stored document. Documents written without an id
// field take the document id.
func fromDocument(docID string, d orderDocument) (*order.Order, error) {
	wire := converter.OrderDocument{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		Location:     d.Location,
		DeliveryDate: d.DeliveryDate,
		DeliveryTime: d.DeliveryTime,
		Items:        make([]converter.ItemDocument, len(d.Items)),
		Status:       d.Status,
		Timestamp:    d.Timestamp,
	}
	if wire.ID == "" {
		wire.ID = docID
	}

	var err error
	for i, it := range d.Items {
		w := converter.ItemDocument{
			ID:       it.ID,
			Name:     it.Name,
			Image:    it.Image,
			Stock:    it.Stock,
			Quantity: it.Quantity,
		}
		if w.Price, err = amount(it.Price); err != nil {
			return nil, err
		}
		if w.Deposit, err = amount(it.Deposit); err != nil {
			return nil, err
		}
		wire.Items[i] = w
	}
	if wire.Subtotal, err = amount(d.Subtotal); err != nil {
		return nil, err
	}
	if wire.Deposit, err = amount(d.Deposit); err != nil {
		return nil, err
	}
	if wire.Total, err = amount(d.Total); err != nil {
		return nil, err
	}

	return converter.DocumentToOrder(wire)
}

func amount(f float64) (money.Money, error) {
	m, err := money.FromFloat(f)
	if err != nil {
		return money.Money{}, errs.Mark(errs.Wrapf(err, "amount %v", f), converter.ErrMalformedOrder)
	}
	return m, nil
}
