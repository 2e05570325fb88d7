package order

import "fmt"

// Receipt is the confirmation text shown to the customer after checkout.
func Receipt(o *Order) string {
	t := o.Totals()
	return fmt.Sprintf(
		"Order confirmed! Order ID: %s\n\nTotal: $%s\nDeposit (Refundable): $%s",
		o.ID(), t.Total.String(), t.Deposit.String(),
	)
}
