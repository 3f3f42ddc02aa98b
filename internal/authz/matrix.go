// Package authz is the single authorization matrix consulted by every
// booking transition. Role checks live here and nowhere else; callers pass
// roles already normalized at the identity boundary.
package authz

import "fleetride-backend/internal/domain"

// Transition names every mutation the state machine mediates, including the
// driver sub-lifecycle events.
type Transition string

const (
	TransitionCreate          Transition = "CREATE"
	TransitionApprove         Transition = "APPROVE"
	TransitionReject          Transition = "REJECT"
	TransitionCustomerCancel  Transition = "CUSTOMER_CANCEL"
	TransitionAssignResources Transition = "ASSIGN_RESOURCES"
	TransitionHandover        Transition = "HANDOVER"
	TransitionProcessReturn   Transition = "PROCESS_RETURN"
	TransitionDriverAccept    Transition = "DRIVER_ACCEPT"
	TransitionDriverDecline   Transition = "DRIVER_DECLINE"
	TransitionDriverStart     Transition = "DRIVER_START"
	TransitionDriverComplete  Transition = "DRIVER_COMPLETE"
)

var allowedRoles = map[Transition]map[domain.Role]bool{
	TransitionCreate: {
		domain.RoleCustomer: true,
	},
	TransitionApprove: {
		domain.RoleAdmin: true, domain.RoleManager: true, domain.RoleOperator: true,
	},
	TransitionReject: {
		domain.RoleAdmin: true, domain.RoleManager: true, domain.RoleOperator: true,
	},
	TransitionCustomerCancel: {
		domain.RoleCustomer: true,
	},
	TransitionAssignResources: {
		domain.RoleOperator: true, domain.RoleAdmin: true, domain.RoleManager: true,
	},
	TransitionHandover: {
		domain.RoleStaff: true, domain.RoleOperator: true, domain.RoleManager: true, domain.RoleAdmin: true,
	},
	TransitionProcessReturn: {
		domain.RoleStaff: true, domain.RoleOperator: true, domain.RoleManager: true, domain.RoleAdmin: true,
	},
	TransitionDriverAccept: {
		domain.RoleDriver: true, domain.RoleOperator: true, domain.RoleManager: true, domain.RoleAdmin: true,
	},
	TransitionDriverDecline: {
		domain.RoleDriver: true, domain.RoleOperator: true, domain.RoleManager: true, domain.RoleAdmin: true,
	},
	TransitionDriverStart: {
		domain.RoleDriver: true, domain.RoleOperator: true, domain.RoleManager: true, domain.RoleAdmin: true,
	},
	TransitionDriverComplete: {
		domain.RoleDriver: true, domain.RoleOperator: true, domain.RoleManager: true, domain.RoleAdmin: true,
	},
}

// allowedFrom restricts booking-status transitions to the statuses they may
// start from. Driver sub-lifecycle events are keyed off the trip status, not
// the booking status, and are absent here.
var allowedFrom = map[Transition][]domain.BookingStatus{
	TransitionApprove:         {domain.BookingStatusPending},
	TransitionReject:          {domain.BookingStatusPending, domain.BookingStatusConfirmed},
	TransitionCustomerCancel:  {domain.BookingStatusPending},
	TransitionAssignResources: {domain.BookingStatusConfirmed},
	TransitionHandover:        {domain.BookingStatusConfirmed},
	TransitionProcessReturn:   {domain.BookingStatusInProgress},
}

// CanTransition reports whether role may request the transition from the
// given booking status. Ownership checks (customer on own booking, driver on
// own trip) stay with the state machine, which holds the aggregate.
func CanTransition(role domain.Role, from domain.BookingStatus, tr Transition) bool {
	if !allowedRoles[tr][role] {
		return false
	}
	statuses, restricted := allowedFrom[tr]
	if !restricted {
		return true
	}
	for _, s := range statuses {
		if s == from {
			return true
		}
	}
	return false
}

// Check is CanTransition with the distinct error split the callers rely on:
// a role mismatch is ErrForbidden, a missing edge is ErrInvalidTransition.
func Check(role domain.Role, from domain.BookingStatus, tr Transition) error {
	if !allowedRoles[tr][role] {
		return domain.ErrForbidden
	}
	if !CanTransition(role, from, tr) {
		return domain.ErrInvalidTransition
	}
	return nil
}
