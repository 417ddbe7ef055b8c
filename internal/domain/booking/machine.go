package booking

import "fmt"

// InvalidTransitionError reports a command that is not legal from the current
// status. It is always surfaced to the caller, never coerced into a no-op.
type InvalidTransitionError struct {
	Current Status
	Command Command
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: command %s not allowed from %s", e.Command, e.Current)
}

// transitions maps each command to the statuses it may be issued from and the
// status it produces. RESCHEDULE keeps the source status; it is listed with an
// empty target and handled in Transition.
var transitions = map[Command]struct {
	from   []Status
	target Status
}{
	CommandAccept:         {from: []Status{StatusPending}, target: StatusVerifyAcceptance},
	CommandConfirmPayment: {from: []Status{StatusVerifyAcceptance}, target: StatusConfirmed},
	CommandStart:          {from: []Status{StatusConfirmed}, target: StatusInProgress},
	CommandComplete:       {from: []Status{StatusInProgress}, target: StatusCompleted},
	CommandCancel:         {from: []Status{StatusPending, StatusVerifyAcceptance, StatusConfirmed}, target: StatusCancelled},
	CommandMarkNoShow:     {from: []Status{StatusConfirmed, StatusInProgress}, target: StatusNoShow},
	CommandExpire:         {from: []Status{StatusPending, StatusVerifyAcceptance}, target: StatusExpired},
	CommandReschedule:     {from: []Status{StatusPending, StatusVerifyAcceptance, StatusConfirmed}},
	CommandApproveCancel:  {from: []Status{StatusPendingAdminApproval}, target: StatusCancelled},
	CommandRejectCancel:   {from: []Status{StatusPendingAdminApproval}},
}

// Transition validates cmd against the current status and returns the
// resulting status. CREATE is only valid for a booking that does not exist
// yet, which the aggregate service checks before calling here.
func Transition(current Status, cmd Command) (Status, error) {
	rule, ok := transitions[cmd]
	if !ok {
		return "", &InvalidTransitionError{Current: current, Command: cmd}
	}

	for _, from := range rule.from {
		if from == current {
			if cmd == CommandReschedule {
				return current, nil
			}
			if cmd == CommandRejectCancel {
				// Caller restores the status held before the approval request.
				return current, nil
			}
			return rule.target, nil
		}
	}

	return "", &InvalidTransitionError{Current: current, Command: cmd}
}

// CanTransition reports whether cmd is legal from current without computing
// the target.
func CanTransition(current Status, cmd Command) bool {
	_, err := Transition(current, cmd)
	return err == nil
}
