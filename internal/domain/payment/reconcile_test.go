//go:build unit

package payment_test

import (
	"math/rand"
	"testing"

	"rentdesk/internal/domain/payment"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(kind payment.Kind, intent payment.Intent, status payment.Status, amount int64) payment.Record {
	return payment.Record{Kind: kind, Intent: intent, Status: status, AmountCents: amount}
}

func TestReconcile(t *testing.T) {
	type testCase struct {
		name       string
		records    []payment.Record
		rentalDue  int64
		depositDue int64
		want       payment.State
	}

	cases := []testCase{
		{
			name:       "no records",
			records:    nil,
			rentalDue:  10000,
			depositDue: 50000,
			want: payment.State{
				RentalOutstandingCents: 10000,
				Deposit:                payment.DepositNone,
				DepositShortfallCents:  50000,
			},
		},
		{
			name: "rental fully paid, deposit held",
			records: []payment.Record{
				record(payment.KindRental, payment.IntentCharge, payment.StatusSucceeded, 10000),
				record(payment.KindDeposit, payment.IntentAuthorization, payment.StatusSucceeded, 50000),
			},
			rentalDue:  10000,
			depositDue: 50000,
			want: payment.State{
				RentalPaidCents: 10000,
				RentalSettled:   true,
				Deposit:         payment.DepositHeld,
			},
		},
		{
			name: "partial rental payment leaves an outstanding balance",
			records: []payment.Record{
				record(payment.KindRental, payment.IntentCharge, payment.StatusSucceeded, 4000),
			},
			rentalDue: 10000,
			want: payment.State{
				RentalPaidCents:        4000,
				RentalOutstandingCents: 6000,
				Deposit:                payment.DepositNone,
			},
		},
		{
			name: "refund reopens the balance",
			records: []payment.Record{
				record(payment.KindRental, payment.IntentCharge, payment.StatusSucceeded, 10000),
				record(payment.KindRental, payment.IntentRefund, payment.StatusSucceeded, 3000),
			},
			rentalDue: 10000,
			want: payment.State{
				RentalPaidCents:        7000,
				RentalOutstandingCents: 3000,
				Deposit:                payment.DepositNone,
			},
		},
		{
			name: "overpayment is flagged, never clamped into paid",
			records: []payment.Record{
				record(payment.KindRental, payment.IntentCharge, payment.StatusSucceeded, 12000),
			},
			rentalDue: 10000,
			want: payment.State{
				RentalPaidCents: 12000,
				RentalSettled:   true,
				RentalOverpaid:  true,
				Deposit:         payment.DepositNone,
			},
		},
		{
			name: "failed and canceled records never count",
			records: []payment.Record{
				record(payment.KindRental, payment.IntentCharge, payment.StatusFailed, 10000),
				record(payment.KindRental, payment.IntentCharge, payment.StatusCanceled, 10000),
				record(payment.KindDeposit, payment.IntentAuthorization, payment.StatusFailed, 50000),
			},
			rentalDue:  10000,
			depositDue: 50000,
			want: payment.State{
				RentalOutstandingCents: 10000,
				Deposit:                payment.DepositNone,
				DepositShortfallCents:  50000,
			},
		},
		{
			name: "pending deposit authorization shows as pending",
			records: []payment.Record{
				record(payment.KindDeposit, payment.IntentAuthorization, payment.StatusPending, 50000),
			},
			rentalDue:  0,
			depositDue: 50000,
			want: payment.State{
				RentalSettled:         true,
				Deposit:               payment.DepositPending,
				DepositShortfallCents: 50000,
			},
		},
		{
			name: "released deposit",
			records: []payment.Record{
				record(payment.KindDeposit, payment.IntentAuthorization, payment.StatusSucceeded, 50000),
				record(payment.KindDeposit, payment.IntentRelease, payment.StatusSucceeded, 50000),
			},
			rentalDue:  0,
			depositDue: 50000,
			want: payment.State{
				RentalSettled: true,
				Deposit:       payment.DepositReleased,
			},
		},
		{
			name: "under-collected deposit reports the shortfall",
			records: []payment.Record{
				record(payment.KindDeposit, payment.IntentCharge, payment.StatusSucceeded, 20000),
			},
			rentalDue:  0,
			depositDue: 50000,
			want: payment.State{
				RentalSettled:         true,
				Deposit:               payment.DepositHeld,
				DepositShortfallCents: 30000,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := payment.Reconcile(tc.records, tc.rentalDue, tc.depositDue)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("state mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReconcileOrderIndependence(t *testing.T) {
	records := []payment.Record{
		record(payment.KindRental, payment.IntentCharge, payment.StatusSucceeded, 6000),
		record(payment.KindRental, payment.IntentCharge, payment.StatusSucceeded, 4000),
		record(payment.KindRental, payment.IntentRefund, payment.StatusSucceeded, 2000),
		record(payment.KindDeposit, payment.IntentAuthorization, payment.StatusSucceeded, 50000),
		record(payment.KindDeposit, payment.IntentRelease, payment.StatusSucceeded, 50000),
		record(payment.KindRental, payment.IntentCharge, payment.StatusFailed, 9999),
	}

	want := payment.Reconcile(records, 10000, 50000)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]payment.Record, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := payment.Reconcile(shuffled, 10000, 50000)
		require.Equal(t, want, got, "shuffle %d diverged", i)
	}

	assert.Equal(t, int64(8000), want.RentalPaidCents)
	assert.Equal(t, payment.DepositReleased, want.Deposit)
}
