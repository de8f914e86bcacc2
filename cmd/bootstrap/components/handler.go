package components

import (
	"rentdesk/internal/handler"
	"rentdesk/internal/handler/api"
	"rentdesk/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewInvoiceHandler,
		api.NewVehicleHandler,
		api.NewReportHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	booking *api.BookingHandler,
	payment *api.PaymentHandler,
	invoice *api.InvoiceHandler,
	vehicle *api.VehicleHandler,
	report *api.ReportHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:    auth,
		Booking: booking,
		Payment: payment,
		Invoice: invoice,
		Vehicle: vehicle,
		Report:  report,
	}
}
