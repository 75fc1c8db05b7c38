package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/flashflow/flashflow-backend/internal/http/response"
	"github.com/flashflow/flashflow-backend/internal/repos"
)

type AccountHandler struct {
	accounts repos.AccountRepo
}

func NewAccountHandler(accounts repos.AccountRepo) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// GET /api/accounts
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context(), nil)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"accounts": accounts})
}
