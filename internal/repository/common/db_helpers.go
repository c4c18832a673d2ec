package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникальности.
const uniqueViolation = "23505"

// GetOwned - универсальная функция для получения сущности по ID в рамках владельца.
// Все таблицы приложения содержат user_id, чужие строки не видны.
func GetOwned[T any](ctx context.Context, db sqlx.QueryerContext, table string, id, userID uuid.UUID, notFoundErr error) (*T, error) {
	var entity T
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1 AND user_id = $2", table)

	if err := sqlx.GetContext(ctx, db, &entity, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundErr
		}
		return nil, fmt.Errorf("get by id from %s: %w", table, err)
	}

	return &entity, nil
}

// ListOwned возвращает все строки пользователя в заданном порядке.
func ListOwned[T any](ctx context.Context, db sqlx.QueryerContext, table string, userID uuid.UUID, orderBy string) ([]T, error) {
	items := make([]T, 0)
	query := fmt.Sprintf("SELECT * FROM %s WHERE user_id = $1 ORDER BY %s", table, orderBy)

	if err := sqlx.SelectContext(ctx, db, &items, query, userID); err != nil {
		return nil, fmt.Errorf("list from %s: %w", table, err)
	}
	return items, nil
}

// DeleteOwned удаляет строку пользователя; notFoundErr, если ничего не удалено.
func DeleteOwned(ctx context.Context, db sqlx.ExecerContext, table string, id, userID uuid.UUID, notFoundErr error) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2", table)
	res, err := db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return ExpectAffected(res, notFoundErr)
}

// ExpectAffected возвращает notFoundErr, если запрос не затронул ни одной строки.
func ExpectAffected(res sql.Result, notFoundErr error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFoundErr
	}
	return nil
}

// IsUniqueViolation проверяет, что ошибка вызвана нарушением уникального индекса.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// BatchInserter - массовая вставка строк одним запросом
// Устраняет N+1 проблемы при вставке в цикле
type BatchInserter struct {
	tx          *sqlx.Tx
	query       string
	batchSize   int
	values      []interface{}
	rowCount    int
	fieldsCount int
}

// NewBatchInserter создает новый batch inserter
func NewBatchInserter(tx *sqlx.Tx, baseQuery string, fieldsCount int, batchSize int) *BatchInserter {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BatchInserter{
		tx:          tx,
		query:       baseQuery,
		batchSize:   batchSize,
		values:      make([]interface{}, 0, batchSize*fieldsCount),
		fieldsCount: fieldsCount,
	}
}

// Add добавляет строку для вставки
func (bi *BatchInserter) Add(ctx context.Context, rowValues ...interface{}) error {
	if len(rowValues) != bi.fieldsCount {
		return fmt.Errorf("expected %d fields, got %d", bi.fieldsCount, len(rowValues))
	}

	bi.values = append(bi.values, rowValues...)
	bi.rowCount++

	if bi.rowCount >= bi.batchSize {
		return bi.Flush(ctx)
	}
	return nil
}

// Flush выполняет вставку накопленных значений
func (bi *BatchInserter) Flush(ctx context.Context) error {
	if bi.rowCount == 0 {
		return nil
	}

	query := bi.query + " VALUES " + placeholders(bi.rowCount, bi.fieldsCount)
	if _, err := bi.tx.ExecContext(ctx, query, bi.values...); err != nil {
		return fmt.Errorf("batch insert: %w", err)
	}

	bi.values = bi.values[:0]
	bi.rowCount = 0
	return nil
}

// placeholders генерирует ($1, $2), ($3, $4), ...
func placeholders(rows, fields int) string {
	var buf []byte
	for i := 0; i < rows; i++ {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = append(buf, '(')
		for j := 0; j < fields; j++ {
			if j > 0 {
				buf = append(buf, ", "...)
			}
			buf = append(buf, fmt.Sprintf("$%d", i*fields+j+1)...)
		}
		buf = append(buf, ')')
	}
	return string(buf)
}

// WithTransaction выполняет функцию внутри транзакции с правильной обработкой ошибок
func WithTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
