package handler

import (
	"context"

	appregistration "github.com/erp/bizid/internal/application/registration"
	"github.com/erp/bizid/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// IdentifierService is the application service behind IdentifierHandler
type IdentifierService interface {
	GenerateACNs(ctx context.Context, count int) ([]appregistration.ACNResponse, error)
	GenerateABNs(ctx context.Context, count int) ([]appregistration.ABNResponse, error)
	GeneratePairs(ctx context.Context, count int) ([]appregistration.PairResponse, error)
	DeriveABN(ctx context.Context, acn int64) (*appregistration.ABNResponse, error)
	MaxBatchSize() int
}

// IdentifierHandler serves ACN and ABN generation endpoints
type IdentifierHandler struct {
	BaseHandler
	service IdentifierService
}

// NewIdentifierHandler creates a new IdentifierHandler
func NewIdentifierHandler(service IdentifierService) *IdentifierHandler {
	return &IdentifierHandler{service: service}
}

// GenerateACNs handles GET /identifiers/acn?count=N
func (h *IdentifierHandler) GenerateACNs(c *gin.Context) {
	var req dto.CountRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.service.GenerateACNs(c.Request.Context(), req.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result, len(result), h.service.MaxBatchSize())
}

// GenerateABNs handles GET /identifiers/abn?count=N
func (h *IdentifierHandler) GenerateABNs(c *gin.Context) {
	var req dto.CountRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.service.GenerateABNs(c.Request.Context(), req.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result, len(result), h.service.MaxBatchSize())
}

// GeneratePairs handles GET /identifiers/pairs?count=N
func (h *IdentifierHandler) GeneratePairs(c *gin.Context) {
	var req dto.CountRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.service.GeneratePairs(c.Request.Context(), req.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result, len(result), h.service.MaxBatchSize())
}

// DeriveABN handles POST /identifiers/abn/derive
func (h *IdentifierHandler) DeriveABN(c *gin.Context) {
	var req dto.DeriveABNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.service.DeriveABN(c.Request.Context(), req.ACN.Int64())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
