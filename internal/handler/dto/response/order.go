package response

import (
	"party-rental/internal/domain/order"
	"party-rental/internal/infra/converter"
	"party-rental/internal/usecase"
)

// OrderResponse is the stored order document plus a presentation-only tone.
// Tone is derived from status and never persisted.
type OrderResponse struct {
	converter.OrderDocument
	Tone string `json:"tone"`
}

func FromOrder(o *order.Order) *OrderResponse {
	return &OrderResponse{
		OrderDocument: converter.OrderToDocument(o),
		Tone:          string(o.Status().Tone()),
	}
}

type CheckoutResponse struct {
	Order   *OrderResponse `json:"order"`
	Message string         `json:"message"`
}

func FromCheckout(o *order.Order) *CheckoutResponse {
	return &CheckoutResponse{
		Order:   FromOrder(o),
		Message: order.Receipt(o),
	}
}

type OrderListResponse struct {
	Orders  []*OrderResponse `json:"orders"`
	Skipped int              `json:"skipped"`
}

func FromBoard(b usecase.BoardSnapshot) *OrderListResponse {
	orders := make([]*OrderResponse, len(b.Orders))
	for i, o := range b.Orders {
		orders[i] = FromOrder(o)
	}
	return &OrderListResponse{Orders: orders, Skipped: b.Skipped}
}

type StatusChangeResponse struct {
	ID     string         `json:"id"`
	Status string         `json:"status"`
	Order  *OrderResponse `json:"order,omitempty"`
}

func FromStatusChange(id string, st order.Status, o *order.Order) *StatusChangeResponse {
	res := &StatusChangeResponse{ID: id, Status: st.String()}
	if o != nil {
		res.Order = FromOrder(o)
	}
	return res
}

type StatusResponse struct {
	Label    string   `json:"label"`
	Terminal bool     `json:"terminal"`
	Tone     string   `json:"tone"`
	Next     []string `json:"next,omitempty"`
}

// FromStatuses lists every status; next is filled only under the workflow policy.
func FromStatuses(policy order.TransitionPolicy) []StatusResponse {
	wf, strict := policy.(*order.WorkflowPolicy)
	res := make([]StatusResponse, 0, len(order.Statuses()))
	for _, s := range order.Statuses() {
		r := StatusResponse{
			Label:    s.String(),
			Terminal: s.IsTerminal(),
			Tone:     string(s.Tone()),
		}
		if strict {
			for _, n := range wf.Next(s) {
				r.Next = append(r.Next, n.String())
			}
		}
		res = append(res, r)
	}
	return res
}
