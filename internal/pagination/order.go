package pagination

import (
	"fmt"
	"strings"

	"blogstarter/internal/models"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("%w: unknown order direction %q", models.ErrBadRequest, s)
}

// Reversed is used for backward windows.
func (d Direction) Reversed() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

func (d Direction) SQL() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// Order sorts by Field then by the unique id in the same direction, so rows
// that tie on Field still have a stable position.
type Order struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

func (o Order) Validate() error {
	if o.Field == "" {
		return fmt.Errorf("%w: order field is required", models.ErrBadRequest)
	}
	if o.Direction != Asc && o.Direction != Desc {
		return fmt.Errorf("%w: unknown order direction %q", models.ErrBadRequest, o.Direction)
	}
	return nil
}
