package registration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	printingapp "github.com/sereci/sirepre/internal/application/printing"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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
		"requisitos":       {`{"esBoliviano":true,"ciVigente":true,"lineaEntel":false}`},
	}
}

type fakeReceipts struct {
	calls int
	err   error
}

func (f *fakeReceipts) GenerateFor(_ context.Context, a *registration.Applicant) (*printingapp.ReceiptResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &printingapp.ReceiptResult{
		Filename: "comprobante_" + a.IdentityLabel() + ".pdf",
		URL:      "/api/postulantes/pdf/" + a.IdentityLabel() + "/",
		Pages:    1,
	}, nil
}

func newLocalStorage(t *testing.T) (storage.DocumentStorage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := storage.NewLocalStorage(dir, "/media/uploads", zap.NewNop())
	require.NoError(t, err)
	return s, dir
}

// storedFiles lists every regular file below dir.
func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func newTestApplicant(t *testing.T, ci int64, nombre string, registered time.Time) registration.Applicant {
	t.Helper()
	values := formValues()
	values["cedulaIdentidad"] = []string{strconv.FormatInt(ci, 10)}
	values["nombre"] = []string{nombre}
	form, err := registration.DecodeApplicantForm(values)
	require.NoError(t, err)
	a, err := registration.NewApplicant(form.Input)
	require.NoError(t, err)
	a.CreatedAt = registered
	a.ClearDomainEvents()
	return *a
}
