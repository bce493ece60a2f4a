package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	printingapp "github.com/sereci/sirepre/internal/application/printing"
	regapp "github.com/sereci/sirepre/internal/application/registration"
)

// VenueHandler serves the staff venue endpoints.
type VenueHandler struct {
	BaseHandler
	venues *regapp.VenueService
	roster *printingapp.RosterService
}

// NewVenueHandler creates a new VenueHandler
func NewVenueHandler(venues *regapp.VenueService, roster *printingapp.RosterService) *VenueHandler {
	return &VenueHandler{venues: venues, roster: roster}
}

// Import upserts venues from the uploaded CSV in the "file" field.
func (h *VenueHandler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "No se subió ningún archivo.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.BadRequest(c, "No se pudo leer el archivo.")
		return
	}
	defer f.Close()

	result, err := h.venues.Import(c.Request.Context(), f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Roster downloads the PDF roster of one venue.
func (h *VenueHandler) Roster(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.roster.Generate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}
