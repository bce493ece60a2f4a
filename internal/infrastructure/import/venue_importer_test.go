package csvimport

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const venueHeader = "Código,Nombre,Departamento,Provincia,Municipio,Asiento,Zona,Longitud,Latitud\n"

func TestVenueImporter_Import(t *testing.T) {
	t.Run("creates and updates by codigo", func(t *testing.T) {
		repo := new(testutil.MockVenueRepository)
		var stored []*registration.Venue
		repo.On("Upsert", mock.Anything, mock.AnythingOfType("*registration.Venue")).
			Run(func(args mock.Arguments) { stored = append(stored, args.Get(1).(*registration.Venue)) }).
			Return(true, nil).Once()
		repo.On("Upsert", mock.Anything, mock.AnythingOfType("*registration.Venue")).Return(false, nil).Once()

		csv := "\ufeff" + venueHeader +
			"REC-001,U.E. Bolivia,La Paz,Murillo,La Paz,La Paz,Sopocachi,-68.1193,-16.5000\n" +
			"REC-002,Colegio Ayacucho,La Paz,Murillo,La Paz,La Paz,Centro,,\n"

		res, err := NewVenueImporter(repo, nil).Import(context.Background(), strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		assert.Equal(t, 1, res.Updated)
		assert.Equal(t, 0, res.Failed)
		assert.Equal(t, 2, res.Total())

		require.Len(t, stored, 1)
		v := stored[0]
		assert.Equal(t, "REC-001", v.Codigo)
		assert.Equal(t, "Sopocachi", v.Zona)
		assert.True(t, v.Longitud.Decimal.Equal(decimal.RequireFromString("-68.1193")))
		assert.True(t, v.HasCoordinates())
		repo.AssertExpectations(t)
	})

	t.Run("malformed coordinate becomes null", func(t *testing.T) {
		repo := new(testutil.MockVenueRepository)
		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(v *registration.Venue) bool {
			return !v.Longitud.Valid && v.Latitud.Valid && v.Latitud.Decimal.Equal(decimal.RequireFromString("-16.5"))
		})).Return(true, nil)

		csv := venueHeader + "REC-003,Escuela,La Paz,Murillo,La Paz,La Paz,Zona,abc,\"-16,5\"\n"
		res, err := NewVenueImporter(repo, nil).Import(context.Background(), strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		repo.AssertExpectations(t)
	})

	t.Run("row errors are collected", func(t *testing.T) {
		repo := new(testutil.MockVenueRepository)
		repo.On("Upsert", mock.Anything, mock.Anything).Return(false, errors.New("db down")).Once()

		csv := venueHeader +
			",Sin codigo,,,,,,,\n" +
			"REC-004,,,,,,,,\n" +
			"\n" +
			"REC-005,Falla,,,,,,,\n"
		res, err := NewVenueImporter(repo, nil).Import(context.Background(), strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 3, res.Failed)
		require.Len(t, res.Errors, 3)
		assert.Equal(t, 2, res.Errors[0].Row)
		assert.Equal(t, ErrCodeImportRequiredField, res.Errors[0].Code)
		assert.Equal(t, ErrCodeImportInvalidValue, res.Errors[1].Code)
		assert.Equal(t, ErrCodeImportStore, res.Errors[2].Code)
		assert.Equal(t, "REC-005", res.Errors[2].Value)
	})

	t.Run("file level failures", func(t *testing.T) {
		imp := NewVenueImporter(new(testutil.MockVenueRepository), nil)

		_, err := imp.Import(context.Background(), strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)

		_, err = imp.Import(context.Background(), strings.NewReader("Nombre,Zona\nx,y\n"))
		var missing *MissingColumnsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{ColCodigo}, missing.Columns)

		_, err = imp.Import(context.Background(), strings.NewReader("C\xf3digo,Nombre\n"))
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})
}

func TestErrorCollection_Truncates(t *testing.T) {
	ec := NewErrorCollection(2)
	for i := 0; i < 5; i++ {
		ec.Add(NewRowError(i+2, "", ErrCodeImportMalformedRow, "bad"))
	}
	assert.Len(t, ec.Errors(), 2)
	assert.Equal(t, 5, ec.TotalCount())
	assert.True(t, ec.IsTruncated())
	assert.Equal(t, "row 2: bad", ec.Errors()[0].Error())
}
