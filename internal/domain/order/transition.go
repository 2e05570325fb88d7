package order

import (
	"party-rental/internal/pkg/errs"
)

// TransitionPolicy decides whether an order may move from one status to another.
type TransitionPolicy interface {
	// Enforced reports whether Allow needs the current status at all.
	Enforced() bool
	Allow(from, to Status) error
}

// PermissivePolicy lets any recognized status replace any other.
type PermissivePolicy struct{}

func (PermissivePolicy) Enforced() bool { return false }

func (PermissivePolicy) Allow(_, to Status) error {
	if !to.IsValid() {
		return errs.Wrapf(errs.ErrInvalidStatus, "unrecognized status %q", to)
	}
	return nil
}

// WorkflowPolicy follows Pending → Confirmed → Delivered → Returned → Completed,
// with Cancelled reachable from every non-terminal status. Re-applying the
// current status is allowed.
type WorkflowPolicy struct {
	allowed map[Status][]Status
}

func NewWorkflowPolicy() *WorkflowPolicy {
	return &WorkflowPolicy{
		allowed: map[Status][]Status{
			StatusPending:   {StatusConfirmed, StatusCancelled},
			StatusConfirmed: {StatusDelivered, StatusCancelled},
			StatusDelivered: {StatusReturned, StatusCancelled},
			StatusReturned:  {StatusCompleted, StatusCancelled},
			StatusCompleted: nil,
			StatusCancelled: nil,
		},
	}
}

func (p *WorkflowPolicy) Enforced() bool { return true }

func (p *WorkflowPolicy) Allow(from, to Status) error {
	if !to.IsValid() {
		return errs.Wrapf(errs.ErrInvalidStatus, "unrecognized status %q", to)
	}
	if from == to {
		return nil
	}
	for _, next := range p.allowed[from] {
		if next == to {
			return nil
		}
	}
	return errs.Wrapf(errs.ErrIllegalTransition, "%s -> %s", from, to)
}

// Next lists the statuses reachable from s in one step.
func (p *WorkflowPolicy) Next(s Status) []Status {
	return append([]Status(nil), p.allowed[s]...)
}
