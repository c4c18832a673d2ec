package repository

import (
	"database/sql"
	"errors"
	"fmt"
)

// notFoundOr превращает sql.ErrNoRows в доменную ошибку, остальные ошибки оборачивает.
func notFoundOr(err, notFound error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return fmt.Errorf("%s %w", op, err)
}
