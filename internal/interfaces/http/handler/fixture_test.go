package handler

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/sereci/sirepre/internal/application/identity"
	printingapp "github.com/sereci/sirepre/internal/application/printing"
	regapp "github.com/sereci/sirepre/internal/application/registration"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/infrastructure/auth"
	"github.com/sereci/sirepre/internal/infrastructure/config"
	infraprinting "github.com/sereci/sirepre/internal/infrastructure/printing"
	"github.com/sereci/sirepre/internal/infrastructure/storage"
	"github.com/sereci/sirepre/internal/interfaces/http/middleware"
	"github.com/sereci/sirepre/internal/interfaces/http/router"
	"github.com/sereci/sirepre/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReceipts struct {
	calls int
}

func (s *stubReceipts) GenerateFor(_ context.Context, a *registration.Applicant) (*printingapp.ReceiptResult, error) {
	s.calls++
	return &printingapp.ReceiptResult{
		Filename: "comprobante_" + strconv.FormatInt(a.CedulaIdentidad, 10) + ".pdf",
		URL:      "/api/postulantes/pdf/" + strconv.FormatInt(a.CedulaIdentidad, 10) + "/",
		Pages:    1,
	}, nil
}

// apiFixture is the full route tree wired to repository mocks.
type apiFixture struct {
	engine     *gin.Engine
	jwt        *auth.JWTService
	applicants *testutil.MockApplicantRepository
	venues     *testutil.MockVenueRepository
	reviews    *testutil.MockReviewRepository
	configs    *testutil.MockSystemConfigRepository
	uploads    *testutil.MockUploadedFileRepository
	users      *testutil.MockStaffUserRepository
	receipts   *stubReceipts
	publisher  *testutil.RecordingPublisher
	receiptDir string
	docs       storage.DocumentStorage
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	f := &apiFixture{
		jwt: auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-at-least-32-characters",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "sirepre-test",
		}),
		applicants: new(testutil.MockApplicantRepository),
		venues:     new(testutil.MockVenueRepository),
		reviews:    new(testutil.MockReviewRepository),
		configs:    new(testutil.MockSystemConfigRepository),
		uploads:    new(testutil.MockUploadedFileRepository),
		users:      new(testutil.MockStaffUserRepository),
		receipts:   &stubReceipts{},
		publisher:  testutil.NewRecordingPublisher(nil),
		receiptDir: t.TempDir(),
	}

	docs, err := storage.NewLocalStorage(t.TempDir(), "/media/uploads", log)
	require.NoError(t, err)
	f.docs = docs

	store, err := infraprinting.NewReceiptStorage(infraprinting.ReceiptStorageConfig{
		ReceiptDir: f.receiptDir,
		QRTempDir:  t.TempDir(),
	})
	require.NoError(t, err)

	blacklist := auth.NewInMemoryTokenBlacklist()
	submissions := regapp.NewSubmissionService(f.applicants, f.uploads, f.configs, docs, f.receipts, f.publisher, nil, log)
	uploads := regapp.NewUploadService(f.uploads, docs, 4<<10, log)
	venues := regapp.NewVenueService(f.venues, nil, log)
	receipts := printingapp.NewReceiptService(f.applicants, f.venues, nil, nil, nil, store, log)
	reviewSvc := regapp.NewReviewService(f.applicants, f.venues, f.reviews, f.configs, f.publisher, nil, log)
	export := regapp.NewExportService(f.applicants, f.venues, f.reviews, log)
	stats := regapp.NewStatsService(f.applicants, f.reviews, log)
	roster := printingapp.NewRosterService(f.applicants, f.venues, f.reviews, nil, log)
	authSvc := identityapp.NewAuthService(f.users, f.jwt, blacklist, log)

	jwtMiddleware := middleware.JWTAuthMiddleware(f.jwt, blacklist, log)
	uploadLimit := middleware.BodyLimit(1 << 20)

	f.engine = gin.New()
	f.engine.Use(middleware.RequestID())
	router.NewRouter(f.engine).
		Register(PostulanteRoutes(NewPostulanteHandler(submissions, uploads, venues, receipts), uploadLimit)).
		Register(HealthRoutes(NewHealthHandler(nil))).
		Register(AuthRoutes(NewAuthHandler(authSvc), jwtMiddleware)).
		Register(AdminRoutes(
			NewAdminHandler(reviewSvc, export, stats, receipts),
			NewVenueHandler(venues, roster),
			jwtMiddleware, uploadLimit)).
		Setup()
	RegisterMedia(f.engine, NewMediaHandler(docs))
	return f
}

// token issues an access token for a staff user with role.
func (f *apiFixture) token(t *testing.T, role string) (string, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	pair, err := f.jwt.GenerateTokenPair(auth.GenerateTokenInput{UserID: id, Username: "staff-" + role, Role: role})
	require.NoError(t, err)
	return pair.AccessToken, id
}

func formValues() map[string][]string {
	return map[string][]string{
		"nombre":           {"Juan"},
		"apellidoPaterno":  {"Mamani"},
		"apellidoMaterno":  {"Condori"},
		"fechaNacimiento":  {"1990-02-03"},
		"cedulaIdentidad":  {"7654321"},
		"complemento":      {"null"},
		"expedicion":       {"LP"},
		"ciudad":           {"La Paz"},
		"zona":             {"Miraflores"},
		"calleAvenida":     {"Av. Busch"},
		"email":            {"juan@example.com"},
		"celular":          {"76543210"},
		"cargoPostulacion": {"Notario Electoral"},
		"requisitos":       {`{"esBoliviano":true,"ciVigente":true}`},
	}
}

func newApplicant(t *testing.T, ci int64) *registration.Applicant {
	t.Helper()
	values := formValues()
	values["cedulaIdentidad"] = []string{strconv.FormatInt(ci, 10)}
	form, err := registration.DecodeApplicantForm(values)
	require.NoError(t, err)
	a, err := registration.NewApplicant(form.Input)
	require.NoError(t, err)
	a.ClearDomainEvents()
	return a
}
