package domain

// OrderStatus is the canonical order lifecycle status
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusInTransit      OrderStatus = "IN_TRANSIT"
	OrderStatusAtOffice       OrderStatus = "AT_OFFICE"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusReturned       OrderStatus = "RETURNED"
	OrderStatusCanceled       OrderStatus = "CANCELED"
)

// statusPriority ranks the lifecycle: a transition is only legal toward
// a strictly higher rank. Unknown statuses rank zero and never pass the
// guard in either direction.
var statusPriority = map[OrderStatus]int{
	OrderStatusPending:        1,
	OrderStatusPreparing:      2,
	OrderStatusShipped:        3,
	OrderStatusInTransit:      4,
	OrderStatusAtOffice:       5,
	OrderStatusOutForDelivery: 6,
	OrderStatusDelivered:      7,
	OrderStatusReturned:       8,
	OrderStatusCanceled:       9,
}

// agencyStatusMap folds the delivery agency's raw tracking statuses into
// the canonical lifecycle. Raw values the agency may add later simply
// fail the lookup and leave the order untouched.
var agencyStatusMap = map[string]OrderStatus{
	"pending":          OrderStatusPending,
	"validated":        OrderStatusPreparing,
	"picked_up":        OrderStatusShipped,
	"suspended":        OrderStatusAtOffice,
	"out_for_delivery": OrderStatusOutForDelivery,
	"delivered":        OrderStatusDelivered,
	"returned":         OrderStatusReturned,
	"cancelled":        OrderStatusCanceled,
}

// MapAgencyStatus translates a raw agency status into the canonical one.
// The lookup is exact; unknown or differently cased values report false.
func MapAgencyStatus(raw string) (OrderStatus, bool) {
	status, ok := agencyStatusMap[raw]
	return status, ok
}

// StatusPriority returns the lifecycle rank of a status, zero if unknown
func StatusPriority(status OrderStatus) int {
	return statusPriority[status]
}

// IsTerminal reports whether the status ends the order's lifecycle
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusDelivered, OrderStatusReturned, OrderStatusCanceled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving to next is legal: terminal
// statuses never move, and every other move must climb the priority
// ranking. Same-status and backward moves are refused.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	nextPriority := StatusPriority(next)
	if nextPriority == 0 {
		return false
	}
	return nextPriority > StatusPriority(s)
}
