package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flashflow/flashflow-backend/internal/domain/funnel"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// StatusForCode maps engine error codes onto HTTP statuses.
func StatusForCode(code funnel.ErrorCode) int {
	switch code {
	case funnel.CodeNotFound:
		return http.StatusNotFound
	case funnel.CodeAlreadyWinner, funnel.CodeNotAWinner:
		return http.StatusConflict
	case funnel.CodeValidation, funnel.CodeInvalidChangeTypes, funnel.CodeInvalidCount, funnel.CodeUnknownAccount:
		return http.StatusUnprocessableEntity
	case funnel.CodeBriefSynthesisFailed:
		return http.StatusBadGateway
	case funnel.CodeTransactionFailed:
		return http.StatusServiceUnavailable
	case funnel.CodeDataIntegrity, funnel.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError renders an engine error with its mapped status; errors
// without an engine code fall back to 500.
func RespondDomainError(c *gin.Context, err error) {
	code := funnel.CodeOf(err)
	if code == "" {
		RespondError(c, http.StatusInternalServerError, string(funnel.CodeInternal), err)
		return
	}
	RespondError(c, StatusForCode(code), string(code), err)
}
