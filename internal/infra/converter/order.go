package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"party-rental/internal/domain/cart"
	"party-rental/internal/domain/catalog"
	"party-rental/internal/domain/money"
	"party-rental/internal/domain/order"
	"party-rental/internal/pkg/errs"
)

// TimestampLayout is the persisted creation instant: UTC, millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

var ErrMalformedOrder = errs.New("malformed order record")

type ItemDocument struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Price    money.Money `json:"price" swaggertype:"number"`
	Deposit  money.Money `json:"deposit" swaggertype:"number"`
	Image    string      `json:"image"`
	Stock    int         `json:"stock"`
	Quantity int         `json:"quantity"`
}

// OrderDocument is the persisted and transmitted shape of an order.
type OrderDocument struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Location     string         `json:"location"`
	DeliveryDate string         `json:"deliveryDate"`
	DeliveryTime string         `json:"deliveryTime"`
	Items        []ItemDocument `json:"items"`
	Subtotal     money.Money    `json:"subtotal" swaggertype:"number"`
	Deposit      money.Money    `json:"deposit" swaggertype:"number"`
	Total        money.Money    `json:"total" swaggertype:"number"`
	Status       string         `json:"status"`
	Timestamp    string         `json:"timestamp"`
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func OrderToDocument(o *order.Order) OrderDocument {
	d := o.Details()
	t := o.Totals()
	return OrderDocument{
		ID:           o.ID(),
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		Location:     d.Location,
		DeliveryDate: d.DeliveryDate,
		DeliveryTime: d.DeliveryTime,
		Items:        LinesToDocuments(o.Items()),
		Subtotal:     t.Subtotal,
		Deposit:      t.Deposit,
		Total:        t.Total,
		Status:       o.Status().String(),
		Timestamp:    FormatTimestamp(o.CreatedAt()),
	}
}

func LinesToDocuments(lines []cart.Line) []ItemDocument {
	items := make([]ItemDocument, len(lines))
	for i, l := range lines {
		items[i] = ItemDocument{
			ID:       l.Item.ID,
			Name:     l.Item.Name,
			Price:    l.Item.Price,
			Deposit:  l.Item.Deposit,
			Image:    l.Item.Image,
			Stock:    l.Item.Stock,
			Quantity: l.Quantity,
		}
	}
	return items
}

// DocumentToOrder rebuilds an order, rejecting records no order could have
// produced. Stored totals are kept as written.
func DocumentToOrder(doc OrderDocument) (*order.Order, error) {
	if doc.ID == "" {
		return nil, errs.Wrap(ErrMalformedOrder, "missing id")
	}
	status, err := order.ParseStatus(doc.Status)
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "order %s", doc.ID), ErrMalformedOrder)
	}
	createdAt, err := ParseTimestamp(doc.Timestamp)
	if err != nil {
		return nil, errs.Wrapf(ErrMalformedOrder, "order %s: bad timestamp %q", doc.ID, doc.Timestamp)
	}
	lines, err := DocumentsToLines(doc.Items)
	if err != nil {
		return nil, errs.Wrapf(err, "order %s", doc.ID)
	}

	details := order.CheckoutDetails{
		Name:         doc.Name,
		Email:        doc.Email,
		Phone:        doc.Phone,
		Location:     doc.Location,
		DeliveryDate: doc.DeliveryDate,
		DeliveryTime: doc.DeliveryTime,
	}
	totals := cart.Totals{
		Subtotal: doc.Subtotal,
		Deposit:  doc.Deposit,
		Total:    doc.Total,
	}
	return order.Reconstruct(doc.ID, details, lines, totals, status, createdAt), nil
}

func DocumentsToLines(items []ItemDocument) ([]cart.Line, error) {
	lines := make([]cart.Line, len(items))
	for i, it := range items {
		if it.Quantity < 1 {
			return nil, errs.Wrapf(ErrMalformedOrder, "item %d has quantity %d", it.ID, it.Quantity)
		}
		lines[i] = cart.Line{
			Item: catalog.Item{
				ID:      it.ID,
				Name:    it.Name,
				Price:   it.Price,
				Deposit: it.Deposit,
				Image:   it.Image,
				Stock:   it.Stock,
			},
			Quantity: it.Quantity,
		}
	}
	return lines, nil
}

func EncodeOrder(o *order.Order) ([]byte, error) {
	data, err := json.Marshal(OrderToDocument(o))
	if err != nil {
		return nil, fmt.Errorf("encode order %s: %w", o.ID(), err)
	}
	return data, nil
}

func DecodeOrder(data []byte) (*order.Order, error) {
	var doc OrderDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode order"), ErrMalformedOrder)
	}
	return DocumentToOrder(doc)
}
