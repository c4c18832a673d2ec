package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/propostas-backend/internal/logger"
)

// Logger интерфейс для логирования паник
type Logger interface {
	WithFields(fields logrus.Fields) *logrus.Entry
}

// RecoveryHandler обрабатывает panic в горутинах
type RecoveryHandler struct {
	logger Logger
}

// NewRecoveryHandler создает новый обработчик
func NewRecoveryHandler(l Logger) *RecoveryHandler {
	return &RecoveryHandler{logger: l}
}

func (rh *RecoveryHandler) recover(task string) {
	if r := recover(); r != nil {
		var l Logger = logger.Log
		if rh.logger != nil {
			l = rh.logger
		}
		l.WithFields(logrus.Fields{
			"task":  task,
			"panic": r,
			"stack": string(debug.Stack()),
		}).Error("panic in goroutine")
	}
}

// SafeGo запускает горутину с обработкой panic
func (rh *RecoveryHandler) SafeGo(task string, fn func()) {
	go func() {
		defer rh.recover(task)
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic
func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, task string, fn func(context.Context)) {
	go func() {
		defer rh.recover(task)
		fn(ctx)
	}()
}

// DefaultRecoveryHandler - глобальный обработчик; без явного логгера пишет в logger.Log
var DefaultRecoveryHandler = NewRecoveryHandler(nil)

// SafeGo - упрощенная функция для запуска безопасной горутины
func SafeGo(task string, fn func()) {
	DefaultRecoveryHandler.SafeGo(task, fn)
}

// SafeGoWithContext - упрощенная функция с контекстом
func SafeGoWithContext(ctx context.Context, task string, fn func(context.Context)) {
	DefaultRecoveryHandler.SafeGoWithContext(ctx, task, fn)
}
