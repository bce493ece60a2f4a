package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serve(f *apiFixture, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestPostulanteHandler_Submit(t *testing.T) {
	f := newAPIFixture(t)
	f.configs.On("Get", mock.Anything).Return(registration.DefaultSystemConfig(), nil)
	f.applicants.On("ExistsByIdentity", mock.Anything, registration.IdentityKey{CedulaIdentidad: 7654321}).Return(false, nil)
	f.applicants.On("Create", mock.Anything, mock.AnythingOfType("*registration.Applicant")).Return(nil)

	req := testutil.MultipartRequest(t, http.MethodPost, "/api/postulantes/", formValues(),
		testutil.FormFile{Field: "archivoCI", Name: "ci.pdf", Content: []byte("%PDF-1.4 ci")})
	w := serve(f, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := testutil.JSONBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Postulante registrado exitosamente", body["message"])
	assert.Equal(t, "Juan Mamani Condori", body["nombreCompleto"])
	assert.Equal(t, "comprobante_7654321.pdf", body["pdfFilename"])
	assert.Equal(t, "/api/postulantes/pdf/7654321/", body["pdfUrl"])
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, 1, f.receipts.calls)
	assert.Equal(t, []string{registration.EventTypeApplicantRegistered}, f.publisher.EventTypes())

	created := f.applicants.Calls[len(f.applicants.Calls)-1].Arguments.Get(1).(*registration.Applicant)
	assert.NotEmpty(t, created.Documents.CI)
}

func TestPostulanteHandler_SubmitClosed(t *testing.T) {
	f := newAPIFixture(t)
	cfg := registration.DefaultSystemConfig()
	cfg.Update(false, "Convocatoria cerrada")
	f.configs.On("Get", mock.Anything).Return(cfg, nil)

	w := serve(f, testutil.MultipartRequest(t, http.MethodPost, "/api/postulantes/", formValues()))

	assert.Equal(t, http.StatusForbidden, w.Code)
	body := testutil.JSONBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Convocatoria cerrada", body["message"])
	f.applicants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPostulanteHandler_SubmitDuplicate(t *testing.T) {
	f := newAPIFixture(t)
	f.configs.On("Get", mock.Anything).Return(registration.DefaultSystemConfig(), nil)
	f.applicants.On("ExistsByIdentity", mock.Anything, mock.Anything).Return(true, nil)

	w := serve(f, testutil.MultipartRequest(t, http.MethodPost, "/api/postulantes/", formValues()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := testutil.JSONBody(t, w)
	assert.Equal(t, registration.ErrDuplicateApplicant.Message, body["message"])
	testutil.AssertErrorCode(t, w, registration.CodeDuplicateApplicant)
}

func TestPostulanteHandler_SubmitInvalidRequisitos(t *testing.T) {
	f := newAPIFixture(t)
	f.configs.On("Get", mock.Anything).Return(registration.DefaultSystemConfig(), nil)
	values := formValues()
	values["requisitos"] = []string{"{no es json"}

	w := serve(f, testutil.MultipartRequest(t, http.MethodPost, "/api/postulantes/", values))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	testutil.AssertErrorCode(t, w, registration.CodeInvalidRequisitos)
}

func TestPostulanteHandler_Exists(t *testing.T) {
	f := newAPIFixture(t)
	f.applicants.On("ExistsByIdentity", mock.Anything, registration.IdentityKey{CedulaIdentidad: 123}).Return(true, nil)

	w := serve(f, httptest.NewRequest(http.MethodGet, "/api/postulantes/existe/?cedula_identidad=123&complemento=null", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := testutil.JSONBody(t, w)
	assert.Equal(t, true, body["existe"])

	w = serve(f, httptest.NewRequest(http.MethodGet, "/api/postulantes/existe/", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	testutil.AssertErrorCode(t, w, registration.CodeMissingCedula)
}

func TestPostulanteHandler_Venues(t *testing.T) {
	f := newAPIFixture(t)
	venue, err := registration.NewVenue("LP-1", "Colegio Ayacucho")
	require.NoError(t, err)
	f.venues.On("FindAll", mock.Anything).Return([]registration.Venue{*venue}, nil)

	w := serve(f, httptest.NewRequest(http.MethodGet, "/api/postulantes/recintos/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(w.Body.String()), "["))
	assert.Contains(t, w.Body.String(), `"codigo":"LP-1"`)
}

func TestPostulanteHandler_Upload(t *testing.T) {
	f := newAPIFixture(t)
	f.uploads.On("Create", mock.Anything, mock.AnythingOfType("*registration.UploadedFile")).Return(nil)

	w := serve(f, testutil.MultipartRequest(t, http.MethodPost, "/api/postulantes/upload/", nil,
		testutil.FormFile{Field: "file", Name: "hoja.pdf", Content: []byte("%PDF-1.4 cv")}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := testutil.JSONBody(t, w)
	assert.Equal(t, true, body["success"])
	url, _ := body["url"].(string)
	assert.True(t, strings.HasPrefix(url, "/media/uploads/"), url)

	// the stored document is served back under its URL
	w = serve(f, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4 cv", w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
}

func TestPostulanteHandler_UploadErrors(t *testing.T) {
	f := newAPIFixture(t)

	w := serve(f, testutil.MultipartRequest(t, http.MethodPost, "/api/postulantes/upload/", map[string][]string{"x": {"y"}}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	big := make([]byte, 5<<10)
	w = serve(f, testutil.MultipartRequest(t, http.MethodPost, "/api/postulantes/upload/", nil,
		testutil.FormFile{Field: "file", Name: "grande.pdf", Content: big}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	testutil.AssertErrorCode(t, w, "FILE_TOO_LARGE")
}

func TestPostulanteHandler_Status(t *testing.T) {
	f := newAPIFixture(t)
	f.configs.On("Get", mock.Anything).Return(registration.DefaultSystemConfig(), nil)

	w := serve(f, httptest.NewRequest(http.MethodGet, "/api/postulantes/status/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := testutil.JSONBody(t, w)
	assert.Equal(t, true, body["sistema_activo"])
	assert.Equal(t, registration.DefaultClosureMessage, body["mensaje"])
}

func TestPostulanteHandler_StatusError(t *testing.T) {
	f := newAPIFixture(t)
	f.configs.On("Get", mock.Anything).Return(nil, shared.ErrNotFound)

	w := serve(f, httptest.NewRequest(http.MethodGet, "/api/postulantes/status/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostulanteHandler_Receipt(t *testing.T) {
	f := newAPIFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.receiptDir, "comprobante_4455667.pdf"), []byte("%PDF-1.4 receipt"), 0o644))

	w := serve(f, httptest.NewRequest(http.MethodGet, "/api/postulantes/pdf/4455667/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="comprobante_4455667.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Equal(t, "%PDF-1.4 receipt", w.Body.String())

	w = serve(f, httptest.NewRequest(http.MethodGet, "/api/postulantes/pdf/1111/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	testutil.AssertErrorCode(t, w, "RECEIPT_NOT_FOUND")

	w = serve(f, httptest.NewRequest(http.MethodGet, "/api/postulantes/pdf/abc/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMediaHandler_RejectsTraversal(t *testing.T) {
	f := newAPIFixture(t)
	w := serve(f, httptest.NewRequest(http.MethodGet, "/media/uploads/2025/../../etc/passwd", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
