package payment

type DepositState string

const (
	DepositNone     DepositState = "none"
	DepositPending  DepositState = "pending"
	DepositHeld     DepositState = "held"
	DepositReleased DepositState = "released"
)

// State is the derived payment picture of a booking: what has actually been
// collected for the rental and where the security deposit stands. Like the
// duration quote it is stateless, recomputed from the record list on every
// read and never persisted.
type State struct {
	RentalPaidCents        int64
	RentalOutstandingCents int64
	RentalSettled          bool
	RentalOverpaid         bool
	Deposit                DepositState
	DepositShortfallCents  int64
}

// Reconcile folds a booking's payment records into a State. The fold is
// order-independent: records carry their own kind/intent/status and only
// succeeded records move money; pending records influence the deposit state
// but never the rental balance. Failed and canceled records never count.
func Reconcile(records []Record, rentalDueCents, depositDueCents int64) State {
	var rentalPaid int64
	var depositHeld int64
	var depositEverHeld bool
	var depositPending bool

	for _, r := range records {
		switch r.Status {
		case StatusSucceeded:
		case StatusPending:
			if r.Kind == KindDeposit && (r.Intent == IntentAuthorization || r.Intent == IntentCharge) {
				depositPending = true
			}
			continue
		default:
			continue
		}

		switch r.Kind {
		case KindRental:
			switch r.Intent {
			case IntentCharge:
				rentalPaid += r.AmountCents
			case IntentRefund:
				rentalPaid -= r.AmountCents
			}
		case KindDeposit:
			switch r.Intent {
			case IntentAuthorization, IntentCharge:
				depositHeld += r.AmountCents
				depositEverHeld = true
			case IntentRelease, IntentRefund:
				depositHeld -= r.AmountCents
			}
		}
	}

	outstanding := rentalDueCents - rentalPaid
	if outstanding < 0 {
		outstanding = 0
	}

	state := State{
		RentalPaidCents:        rentalPaid,
		RentalOutstandingCents: outstanding,
		RentalSettled:          rentalPaid >= rentalDueCents,
		RentalOverpaid:         rentalPaid > rentalDueCents,
		Deposit:                DepositNone,
	}

	switch {
	case depositHeld > 0:
		state.Deposit = DepositHeld
		if depositHeld < depositDueCents {
			state.DepositShortfallCents = depositDueCents - depositHeld
		}
	case depositEverHeld:
		state.Deposit = DepositReleased
	case depositPending:
		state.Deposit = DepositPending
		state.DepositShortfallCents = depositDueCents
	default:
		state.DepositShortfallCents = depositDueCents
	}

	return state
}
