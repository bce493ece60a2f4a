package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	printingapp "github.com/sereci/sirepre/internal/application/printing"
	regapp "github.com/sereci/sirepre/internal/application/registration"
	"github.com/sereci/sirepre/internal/interfaces/http/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler serves the staff review API.
type AdminHandler struct {
	BaseHandler
	reviews  *regapp.ReviewService
	export   *regapp.ExportService
	stats    *regapp.StatsService
	receipts *printingapp.ReceiptService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	reviews *regapp.ReviewService,
	export *regapp.ExportService,
	stats *regapp.StatsService,
	receipts *printingapp.ReceiptService,
) *AdminHandler {
	return &AdminHandler{reviews: reviews, export: export, stats: stats, receipts: receipts}
}

// ListApplicants returns one page of applicants.
// Query: page, limit (default 10, max 100), search.
func (h *AdminHandler) ListApplicants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.reviews.List(c.Request.Context(), regapp.ListInput{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetApplicant returns one applicant with venues and reviews.
func (h *AdminHandler) GetApplicant(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.reviews.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// RecordReviewRequest is the body of a new review. Verdicts are CUMPLE,
// NO_CUMPLE or NO_REVISADO; empty means NO_REVISADO.
type RecordReviewRequest struct {
	CumpleExperienciaEspecifica        string `json:"cumple_experiencia_especifica"`
	CumpleNoMilitancia                 string `json:"cumple_no_militancia"`
	CumpleBachillerOSuperior           string `json:"cumple_bachiller_o_superior"`
	ObservacionesExperienciaEspecifica string `json:"observaciones_experiencia_especifica" binding:"max=2000"`
	ObservacionesNoMilitancia          string `json:"observaciones_no_militancia" binding:"max=2000"`
	ObservacionesBachillerOSuperior    string `json:"observaciones_bachiller_o_superior" binding:"max=2000"`
}

// RecordReview adds a review signed by the caller.
func (h *AdminHandler) RecordReview(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req RecordReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	input := regapp.RecordReviewInput{
		ApplicantID:                        id,
		ReviewerName:                       middleware.GetJWTUsername(c),
		CumpleExperienciaEspecifica:        req.CumpleExperienciaEspecifica,
		CumpleNoMilitancia:                 req.CumpleNoMilitancia,
		CumpleBachillerOSuperior:           req.CumpleBachillerOSuperior,
		ObservacionesExperienciaEspecifica: req.ObservacionesExperienciaEspecifica,
		ObservacionesNoMilitancia:          req.ObservacionesNoMilitancia,
		ObservacionesBachillerOSuperior:    req.ObservacionesBachillerOSuperior,
	}
	if reviewerID, ok := middleware.GetJWTUserID(c); ok {
		input.ReviewerID = &reviewerID
	}

	review, err := h.reviews.RecordReview(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

// RegenerateReceipt rebuilds the stored receipt of an applicant.
func (h *AdminHandler) RegenerateReceipt(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.receipts.Generate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Export downloads every applicant as an xlsx workbook.
func (h *AdminHandler) Export(c *gin.Context) {
	result, err := h.export.Export(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Header("X-Total-Count", strconv.Itoa(result.Rows))
	c.Data(http.StatusOK, xlsxContentType, result.Data)
}

// Stats returns the dashboard counters.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// GetConfig returns the registration switch.
func (h *AdminHandler) GetConfig(c *gin.Context) {
	cfg, err := h.reviews.GetConfig(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

// UpdateConfigRequest toggles the registration window.
type UpdateConfigRequest struct {
	SistemaActivo *bool  `json:"sistema_activo" binding:"required"`
	Mensaje       string `json:"mensaje" binding:"max=1000"`
}

// UpdateConfig opens or closes registration.
func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	cfg, err := h.reviews.UpdateConfig(c.Request.Context(), regapp.UpdateConfigInput{
		SistemaActivo: *req.SistemaActivo,
		Mensaje:       req.Mensaje,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}
