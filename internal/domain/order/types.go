package order

import (
	"party-rental/internal/pkg/errs"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusDelivered Status = "Delivered"
	StatusReturned  Status = "Returned"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Statuses lists every status in workflow order.
func Statuses() []Status {
	return []Status{
		StatusPending,
		StatusConfirmed,
		StatusDelivered,
		StatusReturned,
		StatusCompleted,
		StatusCancelled,
	}
}

// ParseStatus accepts the exact labels only; no case folding or trimming.
func ParseStatus(label string) (Status, error) {
	s := Status(label)
	if !s.IsValid() {
		return "", errs.Wrapf(errs.ErrInvalidStatus, "unrecognized status %q", label)
	}
	return s, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusReturned, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Tone is the badge colour class an operator view uses for a status.
type Tone string

const (
	TonePending Tone = "pending"
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
)

func (s Status) Tone() Tone {
	switch s {
	case StatusCompleted:
		return ToneSuccess
	case StatusCancelled:
		return ToneDanger
	default:
		return TonePending
	}
}
