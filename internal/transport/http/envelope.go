package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
)

// envelope — единый формат ответа API.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, envelope{Success: false, Error: &errorBody{Code: code, Message: message}})
}

// respondDomainError — отображение доменных ошибок на HTTP-статусы.
// Конфликты состояния (недопустимый переход, нехватка остатка, гонка
// версий) — это 409: запрос корректен, но текущее состояние его запрещает.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "sale not found")
	case domain.IsInvalidTransition(err):
		respondError(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case domain.IsInsufficientStock(err):
		respondError(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, domain.ErrConcurrencyConflict):
		respondError(c, http.StatusConflict, "CONCURRENCY_CONFLICT", "sale was modified concurrently, retry")
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}
