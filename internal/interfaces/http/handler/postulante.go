package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	printingapp "github.com/sereci/sirepre/internal/application/printing"
	regapp "github.com/sereci/sirepre/internal/application/registration"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const multipartMemory = 8 << 20

// PostulanteHandler serves the public registration form API.
type PostulanteHandler struct {
	BaseHandler
	submissions *regapp.SubmissionService
	uploads     *regapp.UploadService
	venues      *regapp.VenueService
	receipts    *printingapp.ReceiptService
}

// NewPostulanteHandler creates a new PostulanteHandler
func NewPostulanteHandler(
	submissions *regapp.SubmissionService,
	uploads *regapp.UploadService,
	venues *regapp.VenueService,
	receipts *printingapp.ReceiptService,
) *PostulanteHandler {
	return &PostulanteHandler{
		submissions: submissions,
		uploads:     uploads,
		venues:      venues,
		receipts:    receipts,
	}
}

// SubmitResponse is the body of a successful registration.
type SubmitResponse struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message"`
	ID             string  `json:"id"`
	PDFURL         *string `json:"pdfUrl"`
	PDFFilename    *string `json:"pdfFilename"`
	NombreCompleto string  `json:"nombreCompleto"`
}

// Submit registers an applicant from a multipart form.
func (h *PostulanteHandler) Submit(c *gin.Context) {
	input, closeFiles, err := readSubmission(c.Request)
	defer closeFiles()
	if err != nil {
		h.BadRequest(c, "Formulario inválido")
		return
	}

	result, err := h.submissions.Submit(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubmitResponse{
		Success:        true,
		Message:        "Postulante registrado exitosamente",
		ID:             result.ID.String(),
		PDFURL:         result.PDFURL,
		PDFFilename:    result.PDFFilename,
		NombreCompleto: result.NombreCompleto,
	})
}

// readSubmission collects the text parts and the document file parts of
// r. The returned func closes every opened part and is safe to call on
// error.
func readSubmission(r *http.Request) (regapp.SubmitInput, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	input := regapp.SubmitInput{Files: make(map[string]regapp.DocumentUpload)}

	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		if err := r.ParseForm(); err != nil {
			return input, closeAll, err
		}
		input.Values = r.PostForm
		return input, closeAll, nil
	}
	if err != nil {
		return input, closeAll, err
	}

	input.Values = r.MultipartForm.Value
	for key, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		if _, ok := registration.DocumentKindForKey(key); !ok {
			continue
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			return input, closeAll, err
		}
		opened = append(opened, f)
		input.Files[key] = regapp.DocumentUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		}
	}
	return input, closeAll, nil
}

// Exists answers whether (cedula_identidad, complemento) is registered.
func (h *PostulanteHandler) Exists(c *gin.Context) {
	ci, _ := strconv.ParseInt(strings.TrimSpace(c.Query("cedula_identidad")), 10, 64)
	result, err := h.submissions.Exists(c.Request.Context(), ci, c.Query("complemento"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"existe":  result.Existe,
		"mensaje": result.Mensaje,
	})
}

// Venues lists every venue for the selection map.
func (h *PostulanteHandler) Venues(c *gin.Context) {
	venues, err := h.venues.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, venues)
}

// Upload stores one document ahead of the submission.
func (h *PostulanteHandler) Upload(c *gin.Context) {
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

	result, err := h.uploads.Upload(c.Request.Context(), regapp.DocumentUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      result.ID,
		"url":     result.URL,
		"name":    result.Name,
	})
}

// Status reports whether the registration window is open.
func (h *PostulanteHandler) Status(c *gin.Context) {
	result, err := h.submissions.Status(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"sistema_activo": result.SistemaActivo,
		"mensaje":        result.Mensaje,
	})
}

// Receipt streams the stored receipt of a cédula inline.
func (h *PostulanteHandler) Receipt(c *gin.Context) {
	ci, err := strconv.ParseInt(c.Param("ci"), 10, 64)
	if err != nil || ci <= 0 {
		h.NotFound(c, "PDF no encontrado")
		return
	}

	file, err := h.receipts.Open(ci)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Body.Close()

	logger.FromContext(c.Request.Context()).Debug("serving receipt",
		zap.Int64("cedula", ci), zap.Int64("size", file.Size))

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+file.Filename+`"`)
	c.Header("Cache-Control", "public, max-age=3600")
	http.ServeContent(c.Writer, c.Request, file.Filename, file.ModTime, file.Body)
}
