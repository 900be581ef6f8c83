package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/scanplan/backend/internal/domain"
	"github.com/scanplan/backend/internal/service"
)

// roleHeader carries the acting role; commercial is assumed when absent.
const roleHeader = "X-Planner-Role"

type PlannerHandler struct {
	service *service.PlannerService
}

func NewPlannerHandler(service *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{service: service}
}

type clusterRequest struct {
	Market   string                `json:"market"`
	Account  string                `json:"account"`
	Products []domain.ProductEntry `json:"products"`
}

type scanRequest struct {
	Product string  `json:"product"`
	Week    string  `json:"week"`
	Amount  float64 `json:"scan_amount"`
}

func (h *PlannerHandler) ListClusters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"clusters": h.service.Clusters()})
}

func (h *PlannerHandler) GetCluster(c *gin.Context) {
	cluster, ok := h.service.Cluster(c.Param("id"))
	if !ok {
		errorResponse(c, http.StatusNotFound, "cluster not found")
		return
	}
	c.JSON(http.StatusOK, cluster)
}

func (h *PlannerHandler) CreateCluster(c *gin.Context) {
	role, ok := requestRole(c)
	if !ok {
		return
	}

	var req clusterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cluster, err := h.service.CreateCluster(c.Request.Context(), role, req.Market, req.Account, req.Products)
	if err != nil {
		domainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cluster)
}

func (h *PlannerHandler) ReplaceCluster(c *gin.Context) {
	role, ok := requestRole(c)
	if !ok {
		return
	}

	var req clusterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cluster, err := h.service.ReplaceCluster(c.Request.Context(), role, c.Param("id"), req.Products)
	if err != nil {
		domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cluster)
}

func (h *PlannerHandler) DeleteCluster(c *gin.Context) {
	role, ok := requestRole(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCluster(c.Request.Context(), role, c.Param("id")); err != nil {
		domainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlannerHandler) AddScan(c *gin.Context) {
	role, ok := requestRole(c)
	if !ok {
		return
	}

	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cluster, err := h.service.AddScan(c.Request.Context(), role, c.Param("id"), req.Product, domain.ScanEvent{
		Week:       req.Week,
		ScanAmount: req.Amount,
	})
	if err != nil {
		domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cluster)
}

func (h *PlannerHandler) PublishCluster(c *gin.Context) {
	role, ok := requestRole(c)
	if !ok {
		return
	}

	cluster, err := h.service.Publish(c.Request.Context(), role, c.Param("id"))
	if err != nil {
		domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cluster)
}

func (h *PlannerHandler) RejectCluster(c *gin.Context) {
	role, ok := requestRole(c)
	if !ok {
		return
	}

	cluster, err := h.service.Reject(c.Request.Context(), role, c.Param("id"))
	if err != nil {
		domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cluster)
}

func (h *PlannerHandler) GetRows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rows": h.service.Rows()})
}

func (h *PlannerHandler) GetSummary(c *gin.Context) {
	summaries, err := h.service.Summary(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to build summary")
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summaries})
}

// GetPermissions answers the canEdit probe for the calling role across
// all statuses under the current mode.
func (h *PlannerHandler) GetPermissions(c *gin.Context) {
	role, ok := requestRole(c)
	if !ok {
		return
	}

	statuses := []domain.Status{domain.StatusDraft, domain.StatusReview, domain.StatusApproved}
	permissions := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		permissions[string(status)] = h.service.CanEdit(role, status)
	}
	c.JSON(http.StatusOK, gin.H{
		"role":        role,
		"mode":        h.service.Mode(),
		"permissions": permissions,
	})
}

func (h *PlannerHandler) GetMode(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mode": h.service.Mode()})
}

func (h *PlannerHandler) SetMode(c *gin.Context) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	mode, ok := domain.ParseMode(req.Mode)
	if !ok {
		errorResponse(c, http.StatusBadRequest, "mode must be budget or forecast")
		return
	}
	h.service.SetMode(mode)
	c.JSON(http.StatusOK, gin.H{"mode": mode})
}

// requestRole resolves the acting role from the request header. It writes
// the error response itself when the header value is unknown.
func requestRole(c *gin.Context) (domain.Role, bool) {
	value := c.GetHeader(roleHeader)
	if value == "" {
		return domain.RoleCommercial, true
	}
	role, ok := domain.ParseRole(value)
	if !ok {
		errorResponse(c, http.StatusBadRequest, "unknown role: "+value)
		return "", false
	}
	return role, true
}

// domainError maps the planner error taxonomy onto HTTP statuses.
func domainError(c *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		dateErr       *domain.InvalidDateError
		transitionErr *domain.InvalidTransitionError
		duplicateErr  *domain.DuplicateScanWeekError
	)

	switch {
	case errors.Is(err, domain.ErrClusterNotFound):
		errorResponse(c, http.StatusNotFound, err.Error())
	case errors.As(err, &validationErr):
		errorResponse(c, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &dateErr):
		errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &transitionErr):
		errorResponse(c, http.StatusForbidden, err.Error())
	case errors.As(err, &duplicateErr):
		errorResponse(c, http.StatusConflict, err.Error())
	default:
		errorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	log.Error().Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
}
