package typeahead

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-typeahead/internal/types"
)

const (
	PersonSearchPath = "/person/json/search"
	CitySearchPath   = "/city/json/search"
	personPath       = "/person/json/"
	cityPath         = "/city/json/"

	maxResponseBytes = 1 << 20
)

var (
	ErrMalformedResponse = errors.New("malformed search response")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
)

// Searcher is the remote lookup surface the bindings depend on.
type Searcher interface {
	SearchPeople(ctx context.Context, query string) ([]types.PersonLite, error)
	SearchCities(ctx context.Context, query string) ([]types.CityLite, error)
	Person(ctx context.Context, id int) (*types.PersonLite, error)
	City(ctx context.Context, id int) (*types.CityLite, error)
}

var _ Searcher = (*Client)(nil)

// Client talks to the person and city JSON endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient returns a Client rooted at baseURL, e.g. "http://localhost:8000".
// A nil httpClient means http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// SearchURL is the request URL for a query against one of the search paths.
func (c *Client) SearchURL(path, query string) string {
	return c.baseURL + path + "?prefix=" + url.QueryEscape(query)
}

func (c *Client) SearchPeople(ctx context.Context, query string) ([]types.PersonLite, error) {
	body, err := c.get(ctx, "SearchPeople", c.SearchURL(PersonSearchPath, query))
	if err != nil {
		return nil, err
	}
	records, err := parseArray(body)
	if err != nil {
		return nil, err
	}
	people := make([]types.PersonLite, 0, len(records))
	for _, rec := range records {
		if p, ok := parsePerson(rec); ok {
			people = append(people, p)
		}
	}
	return people, nil
}

func (c *Client) SearchCities(ctx context.Context, query string) ([]types.CityLite, error) {
	body, err := c.get(ctx, "SearchCities", c.SearchURL(CitySearchPath, query))
	if err != nil {
		return nil, err
	}
	records, err := parseArray(body)
	if err != nil {
		return nil, err
	}
	cities := make([]types.CityLite, 0, len(records))
	for _, rec := range records {
		if city, ok := parseCity(rec); ok {
			cities = append(cities, city)
		}
	}
	return cities, nil
}

func (c *Client) Person(ctx context.Context, id int) (*types.PersonLite, error) {
	body, err := c.get(ctx, "Person", c.baseURL+personPath+strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	p, ok := parsePerson(gjson.ParseBytes(body))
	if !ok {
		return nil, ErrMalformedResponse
	}
	return &p, nil
}

func (c *Client) City(ctx context.Context, id int) (*types.CityLite, error) {
	body, err := c.get(ctx, "City", c.baseURL+cityPath+strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	city, ok := parseCity(gjson.ParseBytes(body))
	if !ok {
		return nil, ErrMalformedResponse
	}
	return &city, nil
}

func (c *Client) get(ctx context.Context, op, rawURL string) ([]byte, error) {
	ctx, span := otel.Tracer("TypeaheadClient").Start(ctx, op, trace.WithAttributes(
		attribute.String("http.url", rawURL),
	))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("building request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Request failed")
		return nil, fmt.Errorf("request %s: %w", reqID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		return nil, fmt.Errorf("request %s: %w: %d", reqID, ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("reading response %s: %w", reqID, err)
	}
	if !gjson.ValidBytes(body) {
		span.SetStatus(codes.Error, "Malformed JSON")
		return nil, ErrMalformedResponse
	}
	c.logger.DebugContext(ctx, "Search request complete", slog.String("op", op), slog.String("request_id", reqID), slog.Int("bytes", len(body)))
	span.SetStatus(codes.Ok, "")
	return body, nil
}

// parseArray accepts a JSON array or null.
func parseArray(body []byte) ([]gjson.Result, error) {
	res := gjson.ParseBytes(body)
	switch {
	case res.Type == gjson.Null:
		return nil, nil
	case res.IsArray():
		return res.Array(), nil
	default:
		return nil, ErrMalformedResponse
	}
}

// Records without a numeric Id or a string Name are skipped.
func parsePerson(rec gjson.Result) (types.PersonLite, bool) {
	id, name := rec.Get("Id"), rec.Get("Name")
	if id.Type != gjson.Number || name.Type != gjson.String {
		return types.PersonLite{}, false
	}
	return types.PersonLite{
		Id:     int(id.Int()),
		Name:   name.String(),
		Gender: rec.Get("Gender").String(),
	}, true
}

func parseCity(rec gjson.Result) (types.CityLite, bool) {
	id, name := rec.Get("Id"), rec.Get("Name")
	if id.Type != gjson.Number || name.Type != gjson.String {
		return types.CityLite{}, false
	}
	return types.CityLite{
		Id:          int(id.Int()),
		Name:        name.String(),
		RegionAbbr:  rec.Get("RegionAbbr").String(),
		CountryAbbr: rec.Get("CountryAbbr").String(),
	}, true
}
