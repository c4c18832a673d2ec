package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/propostas-backend/internal/logger"
	"github.com/ignatzorin/propostas-backend/internal/pkg/apperror"
	"github.com/ignatzorin/propostas-backend/internal/repository"
)

// ErrorHandler обрабатывает ошибки, добавленные через c.Error, централизованно.
// Внутренние ошибки маскируются, AppError отдаются со своим статусом и сообщением.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Ответ уже отправлен хэндлером
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		statusCode, message := classify(err)

		entry := logger.Log.WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"status": statusCode,
		})
		if statusCode >= http.StatusInternalServerError {
			entry.Error("request error")
		} else {
			entry.Warn("request error")
		}

		c.JSON(statusCode, gin.H{"error": message})
	}
}

func classify(err error) (int, string) {
	if appErr, ok := apperror.As(err); ok {
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			return appErr.HTTPStatus, "erro interno do servidor"
		}
		return appErr.HTTPStatus, appErr.Message
	}

	switch {
	case errors.Is(err, repository.ErrProposalNotFound):
		return http.StatusNotFound, apperror.ErrProposalNotFound.Message
	case errors.Is(err, repository.ErrClientNotFound):
		return http.StatusNotFound, apperror.ErrClientNotFound.Message
	case errors.Is(err, repository.ErrServiceNotFound):
		return http.StatusNotFound, apperror.ErrServiceNotFound.Message
	case errors.Is(err, repository.ErrTemplateNotFound):
		return http.StatusNotFound, apperror.ErrTemplateNotFound.Message
	case errors.Is(err, repository.ErrCompanyNotFound):
		return http.StatusNotFound, apperror.ErrCompanyNotFound.Message
	case errors.Is(err, repository.ErrProposalNumberTaken):
		return http.StatusConflict, apperror.ErrProposalNumberUsed.Message
	}
	return http.StatusInternalServerError, "erro interno do servidor"
}
