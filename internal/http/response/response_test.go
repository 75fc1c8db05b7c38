package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/flashflow/flashflow-backend/internal/domain/funnel"
)

func TestStatusForCode(t *testing.T) {
	cases := []struct {
		code funnel.ErrorCode
		want int
	}{
		{funnel.CodeNotFound, http.StatusNotFound},
		{funnel.CodeAlreadyWinner, http.StatusConflict},
		{funnel.CodeNotAWinner, http.StatusConflict},
		{funnel.CodeValidation, http.StatusUnprocessableEntity},
		{funnel.CodeInvalidChangeTypes, http.StatusUnprocessableEntity},
		{funnel.CodeInvalidCount, http.StatusUnprocessableEntity},
		{funnel.CodeUnknownAccount, http.StatusUnprocessableEntity},
		{funnel.CodeBriefSynthesisFailed, http.StatusBadGateway},
		{funnel.CodeTransactionFailed, http.StatusServiceUnavailable},
		{funnel.CodeDataIntegrity, http.StatusInternalServerError},
		{funnel.CodeInternal, http.StatusInternalServerError},
		{funnel.ErrorCode("something_new"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusForCode(tc.code); got != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestRespondDomainError_EngineError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondDomainError(c, funnel.NewError(funnel.CodeAlreadyWinner, "svc.Promote", "already a winner", nil))

	if w.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusConflict)
	}
	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Error.Code != string(funnel.CodeAlreadyWinner) {
		t.Fatalf("code: got %q", env.Error.Code)
	}
	if env.Error.Message == "" {
		t.Fatalf("message missing")
	}
}

func TestRespondDomainError_PlainErrorFallsBackTo500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondDomainError(c, errors.New("boom"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusInternalServerError)
	}
	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Error.Code != string(funnel.CodeInternal) {
		t.Fatalf("code: got %q", env.Error.Code)
	}
}
