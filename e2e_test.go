package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"

	"github.com/FACorreiaa/go-typeahead/config"
	"github.com/FACorreiaa/go-typeahead/internal/container"
	"github.com/FACorreiaa/go-typeahead/internal/typeahead"
)

var (
	personColumns = []string{"id", "first_name", "middle_name", "last_name", "nick_name", "gender"}
	cityColumns   = []string{"city_id", "city_name", "region_code", "country_code"}
)

// E2ETestSuite drives the form bindings through the full HTTP stack down to a mocked pool.
type E2ETestSuite struct {
	suite.Suite
	mock   pgxmock.PgxPoolIface
	server *httptest.Server
	form   *typeahead.Form
	widget *formWidget
	binder *typeahead.Binder
}

// formWidget stands in for a page's autocomplete widget.
type formWidget struct {
	bound map[string]typeahead.Options
}

func (w *formWidget) Bind(element string, opts typeahead.Options) error {
	w.bound[element] = opts
	return nil
}

func (s *E2ETestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	s.Require().NoError(err)
	s.mock = mock

	cfg := &config.Config{}
	cfg.Server.Timeout = 5 * time.Second
	cfg.Search.PageSize = 20
	cfg.Search.CacheTTL = time.Minute
	cfg.Search.CacheCleanup = time.Minute

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := container.New(cfg, mock, nil, logger)
	s.server = httptest.NewServer(newRouter(cfg, c, logger))

	s.form = typeahead.NewForm()
	s.widget = &formWidget{bound: make(map[string]typeahead.Options)}
	s.binder = &typeahead.Binder{
		Widget:   s.widget,
		Page:     s.form,
		Searcher: typeahead.NewClient(s.server.URL, s.server.Client(), logger),
		Logger:   logger,
	}
}

func (s *E2ETestSuite) TearDownTest() {
	s.server.Close()
	s.NoError(s.mock.ExpectationsWereMet())
	s.mock.Close()
}

func (s *E2ETestSuite) TestPersonFormFlow() {
	s.mock.ExpectQuery("FROM people").
		WithArgs("gr%", 20, 0).
		WillReturnRows(pgxmock.NewRows(personColumns).
			AddRow(4, "Grace", "Brewster", "Hopper", "Amazing Grace", "F").
			AddRow(8, "Greg", "", "House", "", "M"))

	_, err := s.binder.PersonTypeAhead("mother_id", "mother_name")
	s.Require().NoError(err)

	opts := s.widget.bound["mother_name"]
	labels, err := opts.Source(context.Background(), "Gr")
	s.Require().NoError(err)
	s.Equal([]string{`Grace "Amazing Grace" Brewster Hopper`, "Greg House"}, labels)

	s.Equal("Greg House", opts.OnSelect("Greg House"))
	s.Equal("8", s.form.Value("mother_id"))
}

func (s *E2ETestSuite) TestCityFormFlowWithPrefill() {
	s.mock.ExpectQuery(`WHERE city_id = \$1`).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows(cityColumns).AddRow(5, "Paris", "75", "FR"))
	s.mock.ExpectQuery("FROM city_view").
		WithArgs("san jos%", 20, 0).
		WillReturnRows(pgxmock.NewRows(cityColumns).AddRow(11, "San José", "SJ", "CR"))

	binding, err := s.binder.CityTypeAhead("home_city_id", "home_city_name")
	s.Require().NoError(err)

	s.Require().NoError(binding.Prefill(context.Background(), 5))
	s.Equal("Paris, 75, FR", s.form.Value("home_city_name"))
	s.Equal("5", s.form.Value("home_city_id"))

	opts := s.widget.bound["home_city_name"]
	labels, err := opts.Source(context.Background(), "  San Jos")
	s.Require().NoError(err)
	s.Equal([]string{"San José, SJ, CR"}, labels)

	opts.OnSelect("San José, SJ, CR")
	s.Equal("11", s.form.Value("home_city_id"))
}

func (s *E2ETestSuite) TestDatabaseFailureShowsNoSuggestions() {
	s.mock.ExpectQuery("FROM city_view").
		WithArgs("x%", 20, 0).
		WillReturnError(context.DeadlineExceeded)

	_, err := s.binder.CityTypeAhead("city_id", "city_name")
	s.Require().NoError(err)

	labels, err := s.widget.bound["city_name"].Source(context.Background(), "x")
	s.NoError(err)
	s.Empty(labels)
}

func (s *E2ETestSuite) TestHealth() {
	resp, err := s.server.Client().Get(s.server.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func TestE2ETestSuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
