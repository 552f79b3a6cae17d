// Package pagination implements relay style cursor connections over any
// ordered collection. Storage is reached through a FindFunc that honours a
// Window; the package owns argument validation, cursor encoding and page
// info bookkeeping.
package pagination

import (
	"context"
	"fmt"
	"slices"

	"blogstarter/internal/models"
)

const MaxPageSize = 100

type Args struct {
	First  *int    `json:"first,omitempty"`
	Last   *int    `json:"last,omitempty"`
	After  *string `json:"after,omitempty"`
	Before *string `json:"before,omitempty"`
}

type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor,omitempty"`
	EndCursor       *string `json:"endCursor,omitempty"`
}

type Edge[T any] struct {
	Cursor string `json:"cursor"`
	Node   T      `json:"node"`
}

type Connection[T any] struct {
	Edges      []Edge[T] `json:"edges"`
	PageInfo   PageInfo  `json:"pageInfo"`
	TotalCount int       `json:"totalCount"`
}

// Window is what a FindFunc must return: rows strictly between After and
// Before under Order. With Backward set the rows nearest to Before are
// wanted. Limit caps the number of rows; rows are always returned in Order.
type Window struct {
	Order    Order
	After    *Cursor
	Before   *Cursor
	Limit    int
	Backward bool
}

type FindFunc[T any] func(ctx context.Context, w Window) ([]T, error)

type CountFunc func(ctx context.Context) (int, error)

// KeyFunc returns the value of the ordering field and the unique id of a node.
type KeyFunc[T any] func(node T, field string) (value any, id string)

func (a Args) Validate() error {
	if a.First != nil && a.Last != nil {
		return fmt.Errorf("%w: first and last cannot be combined", models.ErrBadRequest)
	}
	if a.First != nil && *a.First < 0 {
		return fmt.Errorf("%w: first must be non-negative", models.ErrBadRequest)
	}
	if a.Last != nil && *a.Last < 0 {
		return fmt.Errorf("%w: last must be non-negative", models.ErrBadRequest)
	}
	return nil
}

// FindManyCursorConnection fetches one window through find and counts the
// whole filtered collection through count.
func FindManyCursorConnection[T any](
	ctx context.Context,
	find FindFunc[T],
	count CountFunc,
	args Args,
	order Order,
	key KeyFunc[T],
) (*Connection[T], error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	window := Window{Order: order}

	if args.After != nil {
		c, err := DecodeCursor(*args.After, order)
		if err != nil {
			return nil, err
		}
		window.After = &c
	}
	if args.Before != nil {
		c, err := DecodeCursor(*args.Before, order)
		if err != nil {
			return nil, err
		}
		window.Before = &c
	}

	size := MaxPageSize
	switch {
	case args.Last != nil:
		size = min(*args.Last, MaxPageSize)
		window.Backward = true
	case args.First != nil:
		size = min(*args.First, MaxPageSize)
	}
	// one extra row tells whether another page exists in the fetch direction
	window.Limit = size + 1

	rows, err := find(ctx, window)
	if err != nil {
		return nil, err
	}

	var info PageInfo
	if window.Backward {
		info.HasPreviousPage = len(rows) > size
		if info.HasPreviousPage {
			rows = rows[len(rows)-size:]
		}
		info.HasNextPage = window.Before != nil
	} else {
		info.HasNextPage = len(rows) > size
		if info.HasNextPage {
			rows = rows[:size]
		}
		info.HasPreviousPage = window.After != nil
	}

	total, err := count(ctx)
	if err != nil {
		return nil, err
	}

	edges := make([]Edge[T], 0, len(rows))
	for _, row := range rows {
		value, id := key(row, order.Field)
		cursor, err := EncodeCursor(order, value, id)
		if err != nil {
			return nil, err
		}
		edges = append(edges, Edge[T]{Cursor: cursor, Node: row})
	}

	if len(edges) > 0 {
		start := edges[0].Cursor
		end := edges[len(edges)-1].Cursor
		info.StartCursor = &start
		info.EndCursor = &end
	}

	return &Connection[T]{Edges: edges, PageInfo: info, TotalCount: total}, nil
}

// Reverse is a convenience for FindFunc implementations that fetch backward
// windows in reverse order.
func Reverse[T any](rows []T) []T {
	slices.Reverse(rows)
	return rows
}
