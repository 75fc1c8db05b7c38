package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/flashflow/flashflow-backend/internal/http/response"
	"github.com/flashflow/flashflow-backend/internal/platform/envutil"
	"github.com/flashflow/flashflow-backend/internal/services"
)

type VariantHandler struct {
	lineage   services.LineageService
	promotion services.PromotionService
	scaling   services.ScalingService
}

func NewVariantHandler(lineage services.LineageService, promotion services.PromotionService, scaling services.ScalingService) *VariantHandler {
	return &VariantHandler{lineage: lineage, promotion: promotion, scaling: scaling}
}

// GET /api/variants/:id
func (h *VariantHandler) GetVariant(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	variant, err := h.lineage.GetVariant(c.Request.Context(), nil, variantID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"variant": variant})
}

// GET /api/variants/:id/lineage
func (h *VariantHandler) GetLineage(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	lineage, err := h.lineage.GetLineage(c.Request.Context(), nil, variantID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, lineage)
}

// GET /api/winners
func (h *VariantHandler) ListWinners(c *gin.Context) {
	limit := envutil.Int("WINNERS_DEFAULT_LIMIT", 20)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := parsePositiveInt(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = parsed
	}

	winners, err := h.lineage.ListWinners(c.Request.Context(), nil, limit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"winners": winners})
}

func parsePositiveInt(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if v < 1 {
		return 0, fmt.Errorf("value must be positive, got %d", v)
	}
	return v, nil
}

type promoteRequest struct {
	Note string `json:"note"`
}

// POST /api/variants/:id/promote
func (h *VariantHandler) PromoteVariant(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	var req promoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}

	variant, err := h.promotion.Promote(c.Request.Context(), variantID, req.Note)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"variant": variant})
}

type scaleRequest struct {
	ChangeTypes    []string `json:"change_types"`
	CountPerType   int      `json:"count_per_type"`
	AccountIDs     []string `json:"account_ids"`
	GoogleDriveURL string   `json:"google_drive_url"`
}

// POST /api/variants/:id/scale
func (h *VariantHandler) ScaleVariant(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	var req scaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	accountIDs := make([]uuid.UUID, 0, len(req.AccountIDs))
	for _, raw := range req.AccountIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_account_id", err)
			return
		}
		accountIDs = append(accountIDs, id)
	}

	result, err := h.scaling.Scale(c.Request.Context(), services.ScaleParams{
		WinnerVariantID: variantID,
		ChangeTypes:     req.ChangeTypes,
		CountPerType:    req.CountPerType,
		AccountIDs:      accountIDs,
		GoogleDriveURL:  req.GoogleDriveURL,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, result)
}
