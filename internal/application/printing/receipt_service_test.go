package printing

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	domain "github.com/sereci/sirepre/internal/domain/printing"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	infra "github.com/sereci/sirepre/internal/infrastructure/printing"
	"github.com/sereci/sirepre/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type receiptFixture struct {
	svc        *ReceiptService
	applicants *testutil.MockApplicantRepository
	venues     *testutil.MockVenueRepository
	receiptDir string
	qrDir      string
}

func newReceiptFixture(t *testing.T, renderer DocumentRenderer) *receiptFixture {
	t.Helper()
	root := t.TempDir()
	f := &receiptFixture{
		applicants: new(testutil.MockApplicantRepository),
		venues:     new(testutil.MockVenueRepository),
		receiptDir: filepath.Join(root, "comprobantes"),
		qrDir:      filepath.Join(root, "qr_temp"),
	}
	store, err := infra.NewReceiptStorage(infra.ReceiptStorageConfig{
		ReceiptDir: f.receiptDir,
		QRTempDir:  f.qrDir,
		LogoPath:   filepath.Join(root, "missing-logo.png"),
	})
	require.NoError(t, err)
	qr, err := infra.NewQREncoder(f.qrDir, zap.NewNop())
	require.NoError(t, err)
	if renderer == nil {
		renderer = infra.NewFPDFRenderer(infra.DefaultFPDFRendererConfig())
	}
	f.svc = NewReceiptService(f.applicants, f.venues, infra.NewFPDFMeasurer(), renderer, qr, store, zap.NewNop(),
		WithClock(func() time.Time { return time.Date(2025, 7, 10, 9, 30, 0, 0, time.UTC) }))
	return f
}

func newApplicant(t *testing.T, ci int64, venueID *uuid.UUID) *registration.Applicant {
	t.Helper()
	var decl registration.Declarations
	decl.Set("es_boliviano", true)
	decl.Set("ci_vigente", true)
	a, err := registration.NewApplicant(registration.ApplicantInput{
		Nombre:                 "María",
		ApellidoPaterno:        "Quispe",
		FechaNacimiento:        time.Date(1995, 4, 12, 0, 0, 0, 0, time.UTC),
		CedulaIdentidad:        ci,
		Expedicion:             "LP",
		Ciudad:                 "El Alto",
		Zona:                   "Villa Adela",
		CalleAvenida:           "Av. Bolivia",
		Email:                  "maria@example.com",
		Celular:                71234567,
		CargoPostulacion:       "Notario Electoral",
		Declarations:           decl,
		RecintoPrimeraOpcionID: venueID,
	})
	require.NoError(t, err)
	return a
}

func emptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "expected %s to be empty", dir)
}

func TestReceiptService_Generate(t *testing.T) {
	ctx := context.Background()
	f := newReceiptFixture(t, nil)

	venue, err := registration.NewVenue("LP-001", "Colegio Ayacucho")
	require.NoError(t, err)
	applicant := newApplicant(t, 4567890, &venue.ID)
	f.applicants.On("FindByID", mock.Anything, applicant.ID).Return(applicant, nil)
	f.venues.On("FindByID", mock.Anything, venue.ID).Return(venue, nil)

	result, err := f.svc.Generate(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, "comprobante_4567890.pdf", result.Filename)
	assert.Equal(t, "/api/postulantes/pdf/4567890/", result.URL)
	assert.GreaterOrEqual(t, result.Pages, 1)

	data, err := os.ReadFile(filepath.Join(f.receiptDir, result.Filename))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	emptyDir(t, f.qrDir)
}

func TestReceiptService_IndependentFilesPerCedula(t *testing.T) {
	ctx := context.Background()
	f := newReceiptFixture(t, nil)

	first := newApplicant(t, 1000001, nil)
	second := newApplicant(t, 1000002, nil)

	r1, err := f.svc.GenerateFor(ctx, first)
	require.NoError(t, err)
	r2, err := f.svc.GenerateFor(ctx, second)
	require.NoError(t, err)
	assert.NotEqual(t, r1.Filename, r2.Filename)

	for _, ci := range []int64{1000001, 1000002} {
		file, err := f.svc.Open(ci)
		require.NoError(t, err)
		assert.Equal(t, domain.ReceiptFilename(ci), file.Filename)
		assert.Positive(t, file.Size)
		head := make([]byte, 4)
		_, err = io.ReadFull(file.Body, head)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(head))
		require.NoError(t, file.Body.Close())
	}
	emptyDir(t, f.qrDir)
}

func TestReceiptService_MissingVenueStillGenerates(t *testing.T) {
	f := newReceiptFixture(t, nil)
	venueID := testutil.NewTestUUID("deleted-venue")
	applicant := newApplicant(t, 2222222, &venueID)
	f.venues.On("FindByID", mock.Anything, venueID).Return(nil, shared.ErrNotFound)

	result, err := f.svc.GenerateFor(context.Background(), applicant)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.receiptDir, result.Filename))
}

type failingRenderer struct{}

func (failingRenderer) Render(*domain.Document) ([]byte, error) {
	return nil, infra.NewRenderError(infra.ErrCodeRenderFailed, "boom", nil)
}

func TestReceiptService_RenderFailureRemovesQR(t *testing.T) {
	f := newReceiptFixture(t, failingRenderer{})
	applicant := newApplicant(t, 3333333, nil)

	_, err := f.svc.GenerateFor(context.Background(), applicant)
	require.Error(t, err)
	assert.True(t, infra.IsRenderErrorCode(err, infra.ErrCodeRenderFailed))
	emptyDir(t, f.qrDir)
	assert.NoFileExists(t, filepath.Join(f.receiptDir, domain.ReceiptFilename(3333333)))
}

func TestReceiptService_GenerateUnknownApplicant(t *testing.T) {
	f := newReceiptFixture(t, nil)
	id := testutil.NewTestUUID("nobody")
	f.applicants.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := f.svc.Generate(context.Background(), id)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestReceiptService_Open(t *testing.T) {
	f := newReceiptFixture(t, nil)

	_, err := f.svc.Open(0)
	assert.ErrorIs(t, err, registration.ErrMissingCedula)

	_, err = f.svc.Open(999)
	assert.True(t, infra.IsRenderErrorCode(err, infra.ErrCodeNotFound))
}
