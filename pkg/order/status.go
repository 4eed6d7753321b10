package order

import "Hostel-Food-Ordering/domain"

var nextStatuses = map[string][]string{
	domain.OrderStatusPending:   {domain.OrderStatusApproved, domain.OrderStatusRejected, domain.OrderStatusCancelled},
	domain.OrderStatusApproved:  {domain.OrderStatusPreparing, domain.OrderStatusCancelled},
	domain.OrderStatusPreparing: {domain.OrderStatusReady, domain.OrderStatusCancelled},
	domain.OrderStatusReady:     {domain.OrderStatusServed, domain.OrderStatusCancelled},
}

func CanTransition(from, to string) bool {
	for _, next := range nextStatuses[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves status.
func IsTerminal(status string) bool {
	return len(nextStatuses[status]) == 0
}
