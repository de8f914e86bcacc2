package booking

type Status string

const (
	StatusBooked    Status = "booked"
	StatusDelivered Status = "delivered"
	StatusReturned  Status = "returned"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusBooked, StatusDelivered, StatusReturned, StatusCanceled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusReturned || s == StatusCanceled
}
