package request

type RecordPaymentRequest struct {
	Kind        string  `json:"kind" binding:"required,oneof=rental deposit"`
	Intent      string  `json:"intent" binding:"required,oneof=charge refund authorization release"`
	Status      string  `json:"status" binding:"required,oneof=pending succeeded failed canceled"`
	AmountCents int64   `json:"amount_cents" binding:"required,gt=0"`
	Reference   *string `json:"reference,omitempty"`
}
