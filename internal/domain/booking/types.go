package booking

import "fmt"

// Status is the lifecycle position of a booking aggregate.
type Status string

const (
	StatusPending              Status = "PENDING"
	StatusVerifyAcceptance     Status = "VERIFY_ACCEPTANCE"
	StatusConfirmed            Status = "CONFIRMED"
	StatusInProgress           Status = "IN_PROGRESS"
	StatusCompleted            Status = "COMPLETED"
	StatusCancelled            Status = "CANCELLED"
	StatusNoShow               Status = "NO_SHOW"
	StatusExpired              Status = "EXPIRED"
	StatusPendingAdminApproval Status = "PENDING_ADMIN_APPROVAL"
)

// IsTerminal reports whether no further commands are accepted from s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow, StatusExpired:
		return true
	}
	return false
}

type Command string

const (
	CommandCreate         Command = "CREATE"
	CommandAccept         Command = "ACCEPT"
	CommandConfirmPayment Command = "CONFIRM_PAYMENT"
	CommandStart          Command = "START"
	CommandComplete       Command = "COMPLETE"
	CommandCancel         Command = "CANCEL"
	CommandMarkNoShow     Command = "MARK_NO_SHOW"
	CommandExpire         Command = "EXPIRE"
	CommandReschedule     Command = "RESCHEDULE"
	CommandApproveCancel  Command = "APPROVE_CANCELLATION"
	CommandRejectCancel   Command = "REJECT_CANCELLATION"
)

type ActorRole string

const (
	RoleClient  ActorRole = "CLIENT"
	RoleStylist ActorRole = "STYLIST"
	RoleAdmin   ActorRole = "ADMIN"
	RoleSystem  ActorRole = "SYSTEM"
)

// ParseActorRole validates a role string from an external source, such as a
// JWT claim.
func ParseActorRole(s string) (ActorRole, error) {
	switch ActorRole(s) {
	case RoleClient, RoleStylist, RoleAdmin, RoleSystem:
		return ActorRole(s), nil
	}
	return "", fmt.Errorf("unknown actor role: %s", s)
}

type PaymentStatus string

const (
	PaymentUnpaid            PaymentStatus = "UNPAID"
	PaymentPaid              PaymentStatus = "PAID"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

// NoShowParty identifies which side failed to appear.
type NoShowParty string

const (
	NoShowClient  NoShowParty = "CLIENT"
	NoShowStylist NoShowParty = "STYLIST"
)
