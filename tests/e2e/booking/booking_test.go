//go:build e2e

package booking_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	reqdto "rentdesk/internal/handler/dto/request"
	resdto "rentdesk/internal/handler/dto/response"
	"rentdesk/tests/common/dbtest"
	"rentdesk/tests/common/httptest"
	"rentdesk/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL    = "/api/auth/login"
	bookingsURL = "/api/bookings"
	quoteURL    = "/api/bookings/quote"
)

type bookingSuite struct {
	e2e.SharedSuite
	vehicleID uuid.UUID
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	s.vehicleID = dbtest.CreateTestVehicle(s.T(), s.DB, "AB-123-CD", "Renault Clio", 4500)
}

func (s *bookingSuite) login(email string) string {
	t := s.T()
	reqBody := reqdto.LoginRequest{Email: email, Password: dbtest.TestPassword}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed for %s", email)

	var res resdto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.AccessToken)
	return res.AccessToken
}

func (s *bookingSuite) createRequest() reqdto.CreateBookingRequest {
	delivery := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	deposit := int64(50000)
	return reqdto.CreateBookingRequest{
		VehicleID:    s.vehicleID,
		ClientName:   "Ada Wong",
		ClientEmail:  "ada@example.com",
		Delivery:     delivery,
		Collection:   delivery.Add(72 * time.Hour),
		DepositCents: &deposit,
	}
}

func (s *bookingSuite) TestBookingLifecycle() {
	s.Run("booked bookings flow through delivery, payment, and invoicing", func() {
		t := s.T()
		token := s.login("operator@example.com")
		idemKey := map[string]string{"Idempotency-Key": uuid.New().String()}
		reqBody := s.createRequest()

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, token, idemKey)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created resdto.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		require.Equal(t, 3, created.BilledDays)
		require.Equal(t, "3 days", created.FormattedDuration)
		require.Equal(t, int64(13500), created.PriceCents)
		require.Equal(t, "booked", created.Status)

		// Same key and body replays the original result.
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, token, idemKey)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var replayed resdto.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &replayed))
		require.Equal(t, created.ID, replayed.ID)

		bookingURL := bookingsURL + "/" + created.ID.String()

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/delivered", nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		payment := reqdto.RecordPaymentRequest{
			Kind:        "rental",
			Intent:      "charge",
			Status:      "succeeded",
			AmountCents: 13500,
		}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/payments", payment, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingURL+"/payment-status", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var status resdto.PaymentStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		require.True(t, status.RentalSettled)
		require.Equal(t, int64(0), status.RentalOutstandingCents)
		require.Equal(t, "none", status.DepositState)
		require.Equal(t, int64(50000), status.DepositShortfallCents)

		depositHold := reqdto.RecordPaymentRequest{
			Kind:        "deposit",
			Intent:      "authorization",
			Status:      "succeeded",
			AmountCents: 50000,
		}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/payments", depositHold, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingURL+"/payment-status", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		require.Equal(t, "held", status.DepositState)
		require.Equal(t, int64(0), status.DepositShortfallCents)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/returned", nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/invoice", nil, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var inv resdto.InvoiceResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
		require.Regexp(t, `^INV-\d{4}-\d{4,}$`, inv.Number)
		require.Equal(t, int64(13500), inv.TotalCents)
		require.Equal(t, "issued", inv.Status)

		// Issuing twice returns the existing invoice instead of a new number.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/invoice", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var reissued resdto.InvoiceResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reissued))
		require.Equal(t, inv.Number, reissued.Number)

		// The issued invoice shows up in the revenue report for its year.
		year := strconv.Itoa(inv.IssuedAt.Year())
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/reports/revenue?year="+year, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var report resdto.RevenueReportResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		require.Len(t, report.Months, 1)
		require.Equal(t, int64(13500), report.Months[0].TotalCents)

		// Voiding needs the admin role.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/invoices/"+inv.ID.String()+"/void", nil, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		adminToken := s.login("admin@example.com")
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/invoices/"+inv.ID.String()+"/void", nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	})

	s.Run("idempotency key reuse with a different body is rejected", func() {
		t := s.T()
		token := s.login("operator@example.com")
		idemKey := map[string]string{"Idempotency-Key": uuid.New().String()}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, s.createRequest(), token, idemKey)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		altered := s.createRequest()
		altered.ClientName = "Leon Kennedy"
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, altered, token, idemKey)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("viewers cannot create bookings", func() {
		t := s.T()
		token := s.login("viewer@example.com")
		idemKey := map[string]string{"Idempotency-Key": uuid.New().String()}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, s.createRequest(), token, idemKey)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		// Reads stay open to any authenticated user.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}

func (s *bookingSuite) TestQuote() {
	s.Run("quotes price the window without persisting anything", func() {
		t := s.T()
		token := s.login("viewer@example.com")

		delivery := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		reqBody := reqdto.QuoteRequest{
			Delivery:   delivery,
			Collection: delivery.Add(73*time.Hour + 30*time.Minute),
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, quoteURL, reqBody, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var quote resdto.QuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
		require.Equal(t, 4, quote.BilledDays)
		require.True(t, quote.ExceedsTolerance)
		require.Equal(t, "3 days 1 hour 30 minutes", quote.FormattedDuration)

		var count int
		err := s.DB.QueryRow(t.Context(), "SELECT count(*) FROM bookings").Scan(&count)
		require.NoError(t, err)
		require.Zero(t, count)
	})
}
