package service

import (
	"errors"

	"github.com/ignatzorin/propostas-backend/internal/pkg/apperror"
)

// mapRepoError переводит sentinel-ошибку репозитория в AppError.
// Прочие ошибки оборачиваются как ошибки базы данных.
func mapRepoError(err error, notFound error, appErr *apperror.AppError) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, notFound) {
		return appErr
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "erro ao acessar o banco de dados")
}

// firstError возвращает первую ненулевую ошибку проверки.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
