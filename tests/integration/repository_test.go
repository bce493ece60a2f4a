package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/identity"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildApplicant(t *testing.T, ci int64, complemento, nombre string) *registration.Applicant {
	t.Helper()
	a, err := registration.NewApplicant(registration.ApplicantInput{
		Nombre:           nombre,
		ApellidoPaterno:  "Choque",
		ApellidoMaterno:  "Apaza",
		FechaNacimiento:  time.Date(1988, 11, 20, 0, 0, 0, 0, time.UTC),
		CedulaIdentidad:  ci,
		Complemento:      complemento,
		Expedicion:       "LP",
		Ciudad:           "La Paz",
		Zona:             "Sopocachi",
		CalleAvenida:     "Av. 6 de Agosto",
		Email:            "postulante@example.com",
		Celular:          70011223,
		CargoPostulacion: "Notario Electoral",
		Declarations:     registration.Declarations{EsBoliviano: true, LineaEntel: true},
	})
	require.NoError(t, err)
	return a
}

func TestApplicantRepository_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()
	repo := persistence.NewGormApplicantRepository(tdb.DB)

	a := buildApplicant(t, 3344556, "", "Lucía")
	a.Observacion = "no está de acuerdo con designación de recinto"
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lucía", got.Nombre)
	assert.Equal(t, a.FechaNacimiento.Format("2006-01-02"), got.FechaNacimiento.Format("2006-01-02"))
	assert.True(t, got.HasDisagreementMarker())

	// the unique index covers (cédula, complemento) with '' as a real value
	assert.ErrorIs(t, repo.Create(ctx, buildApplicant(t, 3344556, "", "Otra")), registration.ErrDuplicateApplicant)
	require.NoError(t, repo.Create(ctx, buildApplicant(t, 3344556, "1B", "Lucía")))

	exists, err := repo.ExistsByIdentity(ctx, registration.IdentityKey{CedulaIdentidad: 3344556})
	require.NoError(t, err)
	assert.True(t, exists)

	decl, err := repo.CountDeclarations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), decl["linea_entel"])
	assert.Equal(t, int64(0), decl["ci_vigente"])

	buckets, err := repo.RegistrationsPerMinute(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	var total int64
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, int64(2), total)

	page, count, err := repo.List(ctx, registration.ApplicantFilter{Filter: shared.Filter{Page: 1, PageSize: 10, Search: "lucía"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, page, 2)
}

func TestVenueRepository_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()
	repo := persistence.NewGormVenueRepository(tdb.DB)

	v, err := registration.NewVenue("LP-200", "Unidad Educativa Bolivia")
	require.NoError(t, err)
	v.Latitud = decimal.NewNullDecimal(decimal.RequireFromString("-16.50012345"))
	v.Longitud = decimal.NewNullDecimal(decimal.RequireFromString("-68.13456789"))
	created, err := repo.Upsert(ctx, v)
	require.NoError(t, err)
	assert.True(t, created)

	got, err := repo.FindByCodigo(ctx, "LP-200")
	require.NoError(t, err)
	require.True(t, got.Latitud.Valid)
	assert.True(t, got.Latitud.Decimal.Equal(decimal.RequireFromString("-16.50012345")))

	renamed, err := registration.NewVenue("LP-200", "U.E. Bolivia")
	require.NoError(t, err)
	created, err = repo.Upsert(ctx, renamed)
	require.NoError(t, err)
	assert.False(t, created)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "U.E. Bolivia", all[0].Nombre)
	assert.False(t, all[0].Latitud.Valid, "a row without coordinates clears them")
}

func TestReviewRepository_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()
	applicants := persistence.NewGormApplicantRepository(tdb.DB)
	reviews := persistence.NewGormReviewRepository(tdb.DB)

	a := buildApplicant(t, 5566778, "", "Mario")
	require.NoError(t, applicants.Create(ctx, a))

	first, err := registration.NewReview(registration.ReviewInput{
		ApplicantID:           a.ID,
		ReviewerName:          "revisor",
		ExperienciaEspecifica: registration.VerdictFails,
	})
	require.NoError(t, err)
	first.ReviewedAt = time.Now().Add(-time.Hour)
	require.NoError(t, reviews.Create(ctx, first))

	second, err := registration.NewReview(registration.ReviewInput{
		ApplicantID:           a.ID,
		ReviewerName:          "revisor",
		ExperienciaEspecifica: registration.VerdictMeets,
		NoMilitancia:          registration.VerdictMeets,
		BachillerOSuperior:    registration.VerdictMeets,
	})
	require.NoError(t, err)
	require.NoError(t, reviews.Create(ctx, second))

	list, err := reviews.FindByApplicant(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, registration.StatusMeetsAll, registration.LatestStatus(list))

	orphan, err := registration.NewReview(registration.ReviewInput{ApplicantID: uuid.New()})
	require.NoError(t, err)
	assert.Error(t, reviews.Create(ctx, orphan), "foreign key on postulante_id")
}

func TestSystemConfigAndStaff_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()

	configs := persistence.NewGormSystemConfigRepository(tdb.DB)
	cfg, err := configs.Get(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.SistemaActivo)
	cfg.Update(false, "Convocatoria cerrada")
	require.NoError(t, configs.Save(ctx, cfg))
	cfg, err = configs.Get(ctx)
	require.NoError(t, err)
	assert.False(t, cfg.SistemaActivo)

	users := persistence.NewGormStaffUserRepository(tdb.DB)
	u, err := identity.NewStaffUser("admin.lp", "clave-segura-1", "Administrador", identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, u))
	dup, err := identity.NewStaffUser("ADMIN.LP", "clave-segura-2", "", identity.RoleReviewer)
	require.NoError(t, err)
	assert.ErrorIs(t, users.Create(ctx, dup), shared.ErrAlreadyExists)
}
