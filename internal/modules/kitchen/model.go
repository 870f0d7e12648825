package kitchen

import (
	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
)

// ErrStaleStatus is returned when another request moved the order first.
var ErrStaleStatus = apperr.New(apperr.ErrInvalidTransition, "order status changed concurrently")

// validTransitions defines the kitchen state machine. READY and COMPLETED are
// terminal here; only payment moves an order to COMPLETED.
var validTransitions = map[order.Status][]order.Status{
	order.StatusCreated:    {order.StatusInProgress},
	order.StatusInProgress: {order.StatusReady},
}

// CanTransition returns true if the kitchen may move an order from current to next.
func CanTransition(current, next order.Status) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// UpdateStatusRequest is the payload for moving an order along the kitchen line.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}
