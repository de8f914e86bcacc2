//go:build unit

package commands

import (
	"context"
	"errors"
	"testing"

	"rentdesk/internal/domain/invoice"
	"rentdesk/internal/infra/db"
	"rentdesk/internal/usecase/queries"
	queriesmock "rentdesk/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubInvoiceRepo struct {
	issuedID *uuid.UUID
	findErr  error
}

func (s *stubInvoiceRepo) Create(context.Context, db.DBTX, *invoice.Invoice) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (s *stubInvoiceRepo) FindByID(context.Context, uuid.UUID) (*invoice.Invoice, error) {
	return nil, nil
}

func (s *stubInvoiceRepo) FindIssuedIDByBookingID(context.Context, uuid.UUID) (*uuid.UUID, error) {
	return s.issuedID, s.findErr
}

func (s *stubInvoiceRepo) NextSequence(context.Context, db.DBTX, int) (int64, error) {
	return 0, nil
}

func (s *stubInvoiceRepo) UpdateStatus(context.Context, db.DBTX, uuid.UUID, invoice.Status) error {
	return nil
}

// The partial unique index on issued invoices rejects the loser of a
// concurrent issue; the loser must answer with the winner's invoice.
func TestReplayIssuedInvoice(t *testing.T) {
	bookingID := uuid.New()

	t.Run("returns the winning invoice as replayed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		winnerID := uuid.New()
		view := &queries.InvoiceView{ID: winnerID, BookingID: bookingID, Number: "INV-2026-0001"}

		mockQueries := queriesmock.NewMockInvoiceQueries(ctrl)
		mockQueries.EXPECT().GetByID(gomock.Any(), winnerID).Return(view, nil).Times(1)

		uc := &invoiceUseCaseImpl{
			invoiceRepo:    &stubInvoiceRepo{issuedID: &winnerID},
			invoiceQueries: mockQueries,
		}

		result, err := uc.replayIssuedInvoice(context.Background(), bookingID)
		require.NoError(t, err)
		assert.True(t, result.IsReplayed)
		assert.Equal(t, view, result.Invoice)
	})

	t.Run("missing winner surfaces a database error", func(t *testing.T) {
		uc := &invoiceUseCaseImpl{invoiceRepo: &stubInvoiceRepo{}}

		_, err := uc.replayIssuedInvoice(context.Background(), bookingID)
		assert.True(t, errors.Is(err, ErrDatabaseOperationFailed))
	})

	t.Run("lookup failure surfaces a database error", func(t *testing.T) {
		uc := &invoiceUseCaseImpl{
			invoiceRepo: &stubInvoiceRepo{findErr: errors.New("connection reset")},
		}

		_, err := uc.replayIssuedInvoice(context.Background(), bookingID)
		assert.True(t, errors.Is(err, ErrDatabaseOperationFailed))
	})
}
