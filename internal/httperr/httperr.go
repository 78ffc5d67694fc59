package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var kindStatus = map[Kind]int{
	KindValidation:        http.StatusBadRequest,
	KindInvalidTransition: http.StatusUnprocessableEntity,
	KindNotFound:          http.StatusNotFound,
	KindConflict:          http.StatusConflict,
	KindForbidden:         http.StatusForbidden,
}

// From mapeia um erro de caso de uso para a resposta HTTP estável.
// Erro desconhecido vira 500 sem vazar detalhe interno.
func From(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		status, ok := kindStatus[be.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		Write(c, status, be.Code, be.Message)
		return
	}

	Internal(c, "internal_error", "Erro interno.")
}
