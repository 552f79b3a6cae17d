package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"blogstarter/internal/models"
)

// ErrInvalidCursor is a client error.
var ErrInvalidCursor = fmt.Errorf("%w: invalid cursor", models.ErrBadRequest)

// Cursor pins a row under one ordering: the value of the ordering field plus
// the row id as tie-break. The ordering travels with the cursor so it cannot
// be replayed against a different one.
type Cursor struct {
	Field     string          `json:"f"`
	Direction Direction       `json:"d"`
	Value     json.RawMessage `json:"v"`
	ID        string          `json:"id"`
}

func EncodeCursor(order Order, value any, id string) (string, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode cursor value: %w", err)
	}

	payload, err := json.Marshal(Cursor{
		Field:     order.Field,
		Direction: order.Direction,
		Value:     raw,
		ID:        id,
	})
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(payload), nil
}

func DecodeCursor(s string, order Order) (Cursor, error) {
	payload, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: not base64", ErrInvalidCursor)
	}

	var c Cursor
	if err := json.Unmarshal(payload, &c); err != nil {
		return Cursor{}, fmt.Errorf("%w: malformed payload", ErrInvalidCursor)
	}
	if c.ID == "" || len(c.Value) == 0 {
		return Cursor{}, fmt.Errorf("%w: missing position", ErrInvalidCursor)
	}
	if c.Field != order.Field || c.Direction != order.Direction {
		return Cursor{}, fmt.Errorf("%w: issued for order %s %s", ErrInvalidCursor, c.Field, c.Direction)
	}

	return c, nil
}

// Scan decodes the ordering value into dst.
func (c Cursor) Scan(dst any) error {
	if err := json.Unmarshal(c.Value, dst); err != nil {
		return fmt.Errorf("%w: value does not match field %s", ErrInvalidCursor, c.Field)
	}
	return nil
}
