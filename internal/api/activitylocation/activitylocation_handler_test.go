package activitylocation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-activity-locations/internal/api/gazetteer"
	"github.com/FACorreiaa/go-activity-locations/internal/api/locationedit"
	"github.com/FACorreiaa/go-activity-locations/internal/models"
)

const kabulLocationID = "11111111-1111-1111-1111-111111111111"

type handlerFixture struct {
	*serviceFixture
	router chi.Router
}

func setupHandlerTest(t *testing.T) *handlerFixture {
	t.Helper()
	f := setupServiceTest(t, Config{})
	stored := models.RestoreActivityLocation(kabulLocationID, models.NewPlaceSnapshot(kabul), nil, "")
	f.repo.On("ListByActivity", mock.Anything, "act-1").Return([]*models.ActivityLocation{stored}, nil)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	h := NewHandlerImpl(f.service, f.broker, logger)
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		h.StreamRoutes(r)
		h.Routes(r)
	})
	return &handlerFixture{serviceFixture: f, router: r}
}

func (f *handlerFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func transition(t *testing.T, rec *httptest.ResponseRecorder) TransitionResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp TransitionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	msg, _ := body["error"].(string)
	return msg
}

func TestHandler_AddLocationFlow(t *testing.T) {
	f := setupHandlerTest(t)

	resp := transition(t, f.do(t, http.MethodPost, "/activities/act-1/locations", nil))
	id := resp.Outcome.ActivityLocationID
	require.True(t, id.IsTemporary())
	assert.Equal(t, locationedit.StateSelectingPlace, resp.Outcome.State)
	require.NotNil(t, resp.View.Edit)

	base := "/activities/act-1/locations/" + id.String()
	resp = transition(t, f.do(t, http.MethodPost, base+"/place/region", map[string]string{"name": "A"}))
	assert.Equal(t, locationedit.StateConfirmingPlace, resp.Outcome.State)
	assert.True(t, resp.View.Edit.ConfirmationPending)

	resp = transition(t, f.do(t, http.MethodPost, base+"/confirm", map[string]string{"answer": "yes"}))
	assert.Equal(t, locationedit.StatePromptPrecise, resp.Outcome.State)

	resp = transition(t, f.do(t, http.MethodPost, base+"/precise/choice", map[string]string{"choice": "coordinates"}))
	assert.Equal(t, locationedit.StateEnteringCoordinates, resp.Outcome.State)

	rec := f.do(t, http.MethodPost, base+"/precise/coordinates", map[string]string{"lat": "10.1234", "lng": "20.5678"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Latitude needs to have 6 real numbers after the decimal", errorMessage(t, rec))

	resp = transition(t, f.do(t, http.MethodPost, base+"/precise/coordinates", map[string]string{"lat": "10.123411", "lng": "20.567899"}))
	assert.Equal(t, locationedit.StateConfirmingPrecise, resp.Outcome.State)

	resp = transition(t, f.do(t, http.MethodPost, base+"/confirm", map[string]string{"answer": "yes"}))
	assert.Equal(t, locationedit.StateCommitted, resp.Outcome.State)
	assert.Equal(t, "A added!", resp.Outcome.Message)
	assert.Nil(t, resp.View.Edit)
	require.Len(t, resp.View.Locations, 2)
	require.NotNil(t, resp.View.Locations[1].PreciseLocation)
	assert.Equal(t, models.Coordinate{Lat: 10.123411, Lng: 20.567899}, resp.View.Locations[1].PreciseLocation.Coordinate())
}

func TestHandler_ErrorMapping(t *testing.T) {
	f := setupHandlerTest(t)
	existing := "/activities/act-1/locations/" + kabulLocationID

	transition(t, f.do(t, http.MethodPost, existing+"/precise/edit", map[string]string{"method": "coordinates"}))

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"second edit conflicts", http.MethodPost, "/activities/act-1/locations", nil, http.StatusConflict},
		{"unknown location", http.MethodPost, "/activities/act-1/locations/nope/place/edit", nil, http.StatusNotFound},
		{"unknown answer", http.MethodPost, existing + "/confirm", map[string]string{"answer": "maybe"}, http.StatusBadRequest},
		{"unknown field", http.MethodPost, existing + "/confirm", map[string]string{"reply": "yes"}, http.StatusBadRequest},
		{"nothing to confirm", http.MethodPost, existing + "/confirm", map[string]string{"answer": "yes"}, http.StatusConflict},
		{"not real coordinates", http.MethodPost, existing + "/precise/coordinates", map[string]string{"lat": "north", "lng": "1"}, http.StatusUnprocessableEntity},
		{"remove while editing", http.MethodDelete, existing + "/precise", nil, http.StatusConflict},
		{"short search", http.MethodGet, "/gazetteer/search?q=Ka", nil, http.StatusUnprocessableEntity},
		{"bad page", http.MethodGet, "/gazetteer/search?q=Kabul&page=0", nil, http.StatusBadRequest},
		{"bad admin level", http.MethodGet, "/gazetteer/admin/1/Kabul", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, errorMessage(t, rec))
		})
	}

	resp := transition(t, f.do(t, http.MethodPost, existing+"/cancel", nil))
	assert.Equal(t, locationedit.StateCommitted, resp.Outcome.State)
	assert.Nil(t, resp.View.Edit)
}

func TestHandler_LookupFailure(t *testing.T) {
	f := setupHandlerTest(t)
	resp := transition(t, f.do(t, http.MethodPost, "/activities/act-1/locations", nil))
	base := "/activities/act-1/locations/" + resp.Outcome.ActivityLocationID.String()

	f.fake.FailNext(gazetteer.OpAdminOptions, errors.New("connection refused"))
	rec := f.do(t, http.MethodPost, base+"/place/region", map[string]string{"name": "Kabul"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = f.do(t, http.MethodGet, "/activities/act-1/locations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view locationedit.WorkspaceView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.NotNil(t, view.Edit)
	assert.Equal(t, locationedit.StateSelectingPlace, view.Edit.State)
	assert.Nil(t, view.Edit.Cascade.Region)
}

func TestHandler_SelectSearchResult(t *testing.T) {
	f := setupHandlerTest(t)
	resp := transition(t, f.do(t, http.MethodPost, "/activities/act-1/locations", nil))
	base := "/activities/act-1/locations/" + resp.Outcome.ActivityLocationID.String()

	forged := map[string]interface{}{
		"id":         "g-a",
		"placeName":  "A",
		"coordinate": map[string]float64{"lat": 1.5, "lng": 2.5},
	}
	rec := f.do(t, http.MethodPost, base+"/place/search-result", forged)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, base+"/place/search-result", map[string]string{"id": "g-unknown"})
	assert.Equal(t, http.StatusBadGateway, rec.Code, rec.Body.String())

	resp = transition(t, f.do(t, http.MethodPost, base+"/place/search-result", map[string]string{"id": "g-a"}))
	assert.Equal(t, locationedit.StateConfirmingPlace, resp.Outcome.State)
	require.NotNil(t, resp.View.Edit.DefaultLocation)
	assert.Equal(t, models.Coordinate{Lat: 10.123401, Lng: 20.567801}, resp.View.Edit.DefaultLocation.Coordinate())
	assert.Equal(t, "A", resp.View.Edit.Cascade.Region.Name)
}

func TestHandler_Gazetteer(t *testing.T) {
	f := setupHandlerTest(t)

	rec := f.do(t, http.MethodGet, "/gazetteer/regions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Kabul"`)

	rec = f.do(t, http.MethodGet, "/gazetteer/admin/3/Kabul", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"gazetteerId":"g-kabul"`)
}

func TestHandler_SaveFailure(t *testing.T) {
	f := setupHandlerTest(t)
	f.repo.On("SaveBatch", mock.Anything, mock.Anything).Return(nil, errors.New("disk full")).Once()

	transition(t, f.do(t, http.MethodDelete, "/activities/act-1/locations/"+kabulLocationID, nil))

	rec := f.do(t, http.MethodPost, "/activities/act-1/locations/save", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to save activity locations", errorMessage(t, rec))
}

func TestHandler_StreamEvents(t *testing.T) {
	f := setupHandlerTest(t)
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/activities/act-1/locations/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		f.router.ServeHTTP(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return f.broker.Subscribers("act-1") == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream did not stop")
	}

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "event: view\n"))
	assert.Contains(t, rec.Body.String(), kabulLocationID)
}
