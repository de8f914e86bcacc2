package queries

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"rentdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidCursor = errs.New("invalid cursor")

// Cursor encodes the keyset position (created_at, id) of the last item of a
// page. Opaque to clients.
type Cursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        uuid.UUID `json:"id"`
}

func (c Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(data)
}

func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}
	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}
	return &c, nil
}
