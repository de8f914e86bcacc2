package booking

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrEmptyClientName    = errors.New("client name must not be empty")
	ErrInvalidClientEmail = errors.New("invalid client email format")
)

// Window is a rental window between two absolute instants. Collection at or
// after delivery; a same-instant window is valid (short rentals bill one day).
type Window struct {
	delivery   time.Time
	collection time.Time
}

func NewWindow(delivery, collection time.Time) (Window, error) {
	if collection.Before(delivery) {
		return Window{}, ErrInvalidWindow
	}
	return Window{
		delivery:   delivery.UTC(),
		collection: collection.UTC(),
	}, nil
}

func (w Window) Delivery() time.Time   { return w.delivery }
func (w Window) Collection() time.Time { return w.collection }

func (w Window) Elapsed() time.Duration {
	return w.collection.Sub(w.delivery)
}

// Quote bills the window under the given tolerance. The error case is
// unreachable for a constructed Window; kept explicit for reconstructed data.
func (w Window) Quote(hourTolerance int) (DurationQuote, error) {
	return QuoteDuration(w.delivery, w.collection, hourTolerance)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func NewMoneyNonNegative(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) MulDays(days int) Money {
	return Money{cents: m.cents * int64(days)}
}

var clientEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Contact is the client snapshot carried on a booking. The back office keys
// bookings by contact rather than a client aggregate; portals live upstream.
type Contact struct {
	name  string
	email string
}

func NewContact(name, email string) (Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Contact{}, ErrEmptyClientName
	}
	email = strings.TrimSpace(email)
	if !clientEmailRegex.MatchString(email) {
		return Contact{}, ErrInvalidClientEmail
	}
	return Contact{name: name, email: email}, nil
}

func (c Contact) Name() string  { return c.name }
func (c Contact) Email() string { return c.email }

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: strings.TrimSpace(value)}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
