package gazetteer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-activity-locations/app/observability/metrics"
	"github.com/FACorreiaa/go-activity-locations/internal/models"
	"github.com/FACorreiaa/go-activity-locations/internal/types"
)

var _ Client = (*HTTPClient)(nil)

type Config struct {
	BaseURL   string
	ProgramID string
	Timeout   time.Duration
	PageLimit int
}

// HTTPClient talks to the gazetteer REST API:
//
//	GET {base}/program/{program}/admin/{level}/{parent}
//	GET {base}/program/{program}/search/{term}?page_limit=N&page=P
//	GET {base}/gazetteer/{id}/
type HTTPClient struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewHTTPClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *HTTPClient {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 10
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HTTPClient{cfg: cfg, http: httpClient, logger: logger}
}

type adminResponse struct {
	Results []json.RawMessage `json:"results"`
	Error   string            `json:"error,omitempty"`
}

type placeOptionJSON struct {
	GazetteerID string `json:"gazetteer_id"`
	PName       string `json:"pname"`
	PlaceName   string `json:"placeName"`
}

type gazetteerLocationJSON struct {
	ID   string `json:"id"`
	JSON string `json:"json"`
}

type placeJSON struct {
	ID            string                `json:"id"`
	Value         string                `json:"value"`
	Type          string                `json:"type"`
	Score         float64               `json:"score"`
	RegionName    string                `json:"regionName"`
	MunicipalName string                `json:"municipalName"`
	PlaceName     string                `json:"placeName"`
	MCode         string                `json:"mcode"`
	PCode         string                `json:"pcode"`
	Location      gazetteerLocationJSON `json:"location"`
	Error         string                `json:"error,omitempty"`
}

type searchResponse struct {
	Results []placeJSON `json:"results"`
	Count   int         `json:"count"`
	Total   int         `json:"total"`
}

type detailResponse struct {
	Results placeJSON `json:"results"`
}

type pointGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Geometry    *struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry,omitempty"`
}

func (c *HTTPClient) ListAdminOptions(ctx context.Context, level types.AdminLevel, parentKey string) ([]types.AdminOption, error) {
	path := fmt.Sprintf("/program/%s/admin/%d/", url.PathEscape(c.cfg.ProgramID), int(level))
	if parentKey != "" {
		path += url.PathEscape(parentKey)
	}

	var resp adminResponse
	if err := c.get(ctx, OpAdminOptions, path, nil, &resp, attribute.String("gazetteer.level", level.String())); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, NewLookupError(OpAdminOptions, errors.New(resp.Error))
	}

	opts := make([]types.AdminOption, 0, len(resp.Results))
	for _, raw := range resp.Results {
		var name string
		if err := json.Unmarshal(raw, &name); err == nil {
			opts = append(opts, types.AdminOption{Key: name, Name: name})
			continue
		}
		var place placeOptionJSON
		if err := json.Unmarshal(raw, &place); err != nil {
			return nil, NewLookupError(OpAdminOptions, fmt.Errorf("decoding option: %w", err))
		}
		name = place.PName
		if name == "" {
			name = place.PlaceName
		}
		opts = append(opts, types.AdminOption{Key: place.GazetteerID, Name: name, GazetteerID: place.GazetteerID})
	}
	return dropPlaceholders(opts), nil
}

func (c *HTTPClient) SearchPlaces(ctx context.Context, term string, page int) (types.SearchPage, error) {
	if page < 1 {
		page = 1
	}
	path := fmt.Sprintf("/program/%s/search/%s", url.PathEscape(c.cfg.ProgramID), url.PathEscape(term))
	query := url.Values{}
	query.Set("page_limit", strconv.Itoa(c.cfg.PageLimit))
	query.Set("page", strconv.Itoa(page-1))

	var resp searchResponse
	if err := c.get(ctx, OpSearch, path, query, &resp, attribute.Int("gazetteer.page", page)); err != nil {
		return types.SearchPage{}, err
	}

	results := make([]types.PlaceSearchResult, 0, len(resp.Results))
	for _, p := range resp.Results {
		coord, err := parseLocation(p.Location.JSON)
		if err != nil {
			c.logger.WarnContext(ctx, "Skipping search result without usable location",
				slog.String("gazetteer_id", p.ID), slog.Any("error", err))
			continue
		}
		results = append(results, types.PlaceSearchResult{
			GazetteerID:   p.ID,
			Value:         p.Value,
			Type:          p.Type,
			Score:         p.Score,
			RegionName:    p.RegionName,
			MunicipalName: p.MunicipalName,
			PlaceName:     p.PlaceName,
			AdminCodes:    models.AdminCodes{Municipal: p.MCode, Place: p.PCode},
			Coordinate:    coord,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	previous := (page - 1) * c.cfg.PageLimit
	return types.SearchPage{
		Results: results,
		Count:   resp.Count,
		Total:   resp.Total,
		Page:    page,
		More:    previous+resp.Count < resp.Total,
	}, nil
}

func (c *HTTPClient) GetPlaceDetail(ctx context.Context, gazetteerID string) (models.LocationSnapshot, error) {
	path := fmt.Sprintf("/gazetteer/%s/", url.PathEscape(gazetteerID))

	var resp detailResponse
	if err := c.get(ctx, OpPlaceDetail, path, nil, &resp, attribute.String("gazetteer.id", gazetteerID)); err != nil {
		return models.LocationSnapshot{}, err
	}
	p := resp.Results
	if p.Error != "" {
		return models.LocationSnapshot{}, NewLookupError(OpPlaceDetail, errors.New(p.Error))
	}
	coord, err := parseLocation(p.Location.JSON)
	if err != nil {
		return models.LocationSnapshot{}, NewLookupError(OpPlaceDetail, err)
	}
	id := p.ID
	if id == "" {
		id = gazetteerID
	}
	return models.NewPlaceSnapshot(models.Place{
		GazetteerID:   id,
		RegionName:    p.RegionName,
		MunicipalName: p.MunicipalName,
		PlaceName:     p.PlaceName,
		AdminCodes:    models.AdminCodes{Municipal: p.MCode, Place: p.PCode},
		Coordinate:    coord,
	}), nil
}

func (c *HTTPClient) get(ctx context.Context, op, path string, query url.Values, out any, attrs ...attribute.KeyValue) error {
	ctx, span := otel.Tracer("GazetteerClient").Start(ctx, op, trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	opAttr := metric.WithAttributes(attribute.String("op", op))
	defer func() {
		metrics.Get().GazetteerLookupSeconds.Record(ctx, time.Since(start).Seconds(), opAttr)
	}()

	fail := func(err error) error {
		metrics.Get().GazetteerLookupErrors.Add(ctx, 1, opAttr)
		span.RecordError(err)
		span.SetStatus(codes.Error, "gazetteer lookup failed")
		c.logger.ErrorContext(ctx, "Gazetteer lookup failed", slog.String("op", op), slog.String("path", path), slog.Any("error", err))
		return NewLookupError(op, err)
	}

	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fail(err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "Gazetteer request", slog.String("op", op), slog.String("url", u))
	resp, err := c.http.Do(req)
	if err != nil {
		return fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(fmt.Errorf("decoding response: %w", err))
	}
	span.SetStatus(codes.Ok, "lookup completed")
	return nil
}

// parseLocation reads a GeoJSON point (bare geometry or feature) encoded as
// a string. GeoJSON orders coordinates lng, lat.
func parseLocation(raw string) (models.Coordinate, error) {
	if raw == "" {
		return models.Coordinate{}, errors.New("place has no location")
	}
	var g pointGeometry
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return models.Coordinate{}, fmt.Errorf("decoding location: %w", err)
	}
	coords := g.Coordinates
	if g.Geometry != nil {
		coords = g.Geometry.Coordinates
	}
	if len(coords) < 2 {
		return models.Coordinate{}, errors.New("location is not a point")
	}
	return models.Coordinate{Lat: coords[1], Lng: coords[0]}, nil
}
