package city

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-typeahead/internal/api"
	"github.com/FACorreiaa/go-typeahead/internal/types"
)

var cityColumns = []string{"city_id", "city_name", "region_code", "country_code"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFindCitiesByPrefix(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM city_view").
		WithArgs("par%", 20, 0).
		WillReturnRows(pgxmock.NewRows(cityColumns).
			AddRow(5, "Paris", "75", "FR").
			AddRow(6, "Paris", "TX", "US"))

	repo := NewCityRepository(mock, nil, discardLogger())
	cities, err := repo.FindCitiesByPrefix(context.Background(), "Par", 20, 0)

	require.NoError(t, err)
	assert.Equal(t, []types.CityLite{
		{Id: 5, Name: "Paris", RegionAbbr: "75", CountryAbbr: "FR"},
		{Id: 6, Name: "Paris", RegionAbbr: "TX", CountryAbbr: "US"},
	}, cities)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCityByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`WHERE city_id = \$1`).
			WithArgs(5).
			WillReturnRows(pgxmock.NewRows(cityColumns).AddRow(5, "Paris", "75", "FR"))

		repo := NewCityRepository(mock, nil, discardLogger())
		c, err := repo.FindCityByID(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, "Paris, 75, FR", c.Label())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`WHERE city_id = \$1`).
			WithArgs(404).
			WillReturnError(pgx.ErrNoRows)

		repo := NewCityRepository(mock, nil, discardLogger())
		_, err = repo.FindCityByID(context.Background(), 404)

		assert.ErrorIs(t, err, api.ErrNotFound)
	})
}
