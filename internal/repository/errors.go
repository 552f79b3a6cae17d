package repository

import (
	"errors"

	"github.com/lib/pq"
)

const (
	uniqueViolation           pq.ErrorCode = "23505"
	invalidTextRepresentation pq.ErrorCode = "22P02"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// isInvalidText reports a value Postgres could not parse into the column
// type, e.g. an id that is not a uuid.
func isInvalidText(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation
}
