package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	appLogger "github.com/FACorreiaa/go-activity-locations/app/logger"
	"github.com/FACorreiaa/go-activity-locations/internal/api/activitylocation"
	"github.com/FACorreiaa/go-activity-locations/internal/api/events"
	"github.com/FACorreiaa/go-activity-locations/internal/api/gazetteer/gazetteertest"
	"github.com/FACorreiaa/go-activity-locations/internal/api/locationedit"
	"github.com/FACorreiaa/go-activity-locations/internal/models"
	api "github.com/FACorreiaa/go-activity-locations/internal/router"
	"github.com/FACorreiaa/go-activity-locations/internal/types"
)

// memRepository keeps saved locations in memory, assigning ids the way
// Postgres does.
type memRepository struct {
	mu     sync.Mutex
	stored map[string][]*models.ActivityLocation
}

func newMemRepository() *memRepository {
	return &memRepository{stored: make(map[string][]*models.ActivityLocation)}
}

func (r *memRepository) ListByActivity(_ context.Context, activityID string) ([]*models.ActivityLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ActivityLocation, 0, len(r.stored[activityID]))
	for _, al := range r.stored[activityID] {
		var precise *models.LocationSnapshot
		if p, ok := al.PreciseLocation(); ok {
			precise = &p
		}
		out = append(out, models.RestoreActivityLocation(al.ID(), al.DefaultLocation(), precise, al.LocationID()))
	}
	return out, nil
}

func (r *memRepository) SaveBatch(_ context.Context, changes locationedit.Changes) ([]types.SaveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.stored[changes.ActivityID]
	results := make([]types.SaveResult, 0, len(changes.Upserts))
	for _, u := range changes.Upserts {
		id := u.Location.ID()
		permanent := id
		if id.IsTemporary() {
			permanent = models.ActivityLocationID(uuid.NewString())
		}
		var precise *models.LocationSnapshot
		locationID := ""
		if p, ok := u.Location.PreciseLocation(); ok {
			precise = &p
			locationID = "pl-" + permanent.String()
		}
		saved := models.RestoreActivityLocation(permanent, u.Location.DefaultLocation(), precise, locationID)

		replaced := false
		for i, al := range list {
			if al.ID() == permanent {
				list[i] = saved
				replaced = true
			}
		}
		if !replaced {
			list = append(list, saved)
		}
		results = append(results, types.SaveResult{
			MatchWith: types.SaveMatch{TempID: id.String()},
			New:       types.SaveAssigned{PermanentID: permanent.String(), LocationID: locationID},
		})
	}
	for _, removed := range changes.Removed {
		for i, al := range list {
			if al.ID() == removed {
				list = append(list[:i], list[i+1:]...)
				break
			}
		}
	}
	r.stored[changes.ActivityID] = list
	return results, nil
}

// E2ETestSuite drives the HTTP API end to end: edits, the event stream,
// saving, and reloading from storage.
type E2ETestSuite struct {
	suite.Suite
	server *httptest.Server
	client *http.Client
	repo   *memRepository
	fake   *gazetteertest.Fake
	logger *slog.Logger
}

func (s *E2ETestSuite) SetupSuite() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s.client = &http.Client{Timeout: 5 * time.Second}
}

func (s *E2ETestSuite) SetupTest() {
	s.repo = newMemRepository()
	s.fake = gazetteertest.New()
	s.fake.AddPlace(models.Place{
		GazetteerID:   "g-herat",
		RegionName:    "Herat",
		MunicipalName: "Herat",
		PlaceName:     "Herat",
		AdminCodes:    models.AdminCodes{Municipal: "3201", Place: "3201-01"},
		Coordinate:    models.Coordinate{Lat: 34.352865, Lng: 62.204014},
	})
	s.startServer()
}

func (s *E2ETestSuite) TearDownTest() {
	s.server.Close()
}

// startServer builds a fresh process around the same storage.
func (s *E2ETestSuite) startServer() {
	broker := events.NewBroker(s.logger)
	svc := activitylocation.NewServiceImpl(s.repo, s.fake, broker, activitylocation.Config{}, s.logger)

	router := chi.NewMux()
	router.Use(appLogger.RequestID)
	router.Use(appLogger.StructuredLogger(s.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Mount("/", api.SetupRouter(&api.Config{
		LocationHandler: activitylocation.NewHandlerImpl(svc, broker, s.logger),
		Timeout:         5 * time.Second,
	}))
	s.server = httptest.NewServer(router)
}

func (s *E2ETestSuite) call(method, path string, body interface{}) (int, []byte) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.server.URL+"/api/v1"+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, out.Bytes()
}

func (s *E2ETestSuite) transition(method, path string, body interface{}) activitylocation.TransitionResponse {
	status, raw := s.call(method, path, body)
	s.Require().Equal(http.StatusOK, status, string(raw))
	var resp activitylocation.TransitionResponse
	s.Require().NoError(json.Unmarshal(raw, &resp))
	return resp
}

type sseEvent struct {
	name string
	data string
}

func (s *E2ETestSuite) openStream(ctx context.Context, activityID string) <-chan sseEvent {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.server.URL+"/api/v1/activities/"+activityID+"/locations/events", nil)
	s.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	s.Require().Equal("text/event-stream", resp.Header.Get("Content-Type"))

	out := make(chan sseEvent, 32)
	go func() {
		defer close(out)
		defer resp.Body.Close()
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		var ev sseEvent
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				ev.name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				ev.data = strings.TrimPrefix(line, "data: ")
			case line == "" && ev.name != "":
				out <- ev
				ev = sseEvent{}
			}
		}
	}()
	return out
}

func (s *E2ETestSuite) nextLocationEvent(stream <-chan sseEvent) locationedit.Event {
	for {
		select {
		case ev, ok := <-stream:
			s.Require().True(ok, "stream closed")
			if ev.name != "location" {
				continue
			}
			var e locationedit.Event
			s.Require().NoError(json.Unmarshal([]byte(ev.data), &e))
			return e
		case <-time.After(2 * time.Second):
			s.FailNow("no location event")
		}
	}
}

func (s *E2ETestSuite) TestAddSaveAndReload() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := s.openStream(ctx, "trip-1")

	first := <-stream
	s.Equal("view", first.name)

	resp := s.transition(http.MethodPost, "/activities/trip-1/locations", nil)
	tmpID := resp.Outcome.ActivityLocationID
	s.True(tmpID.IsTemporary())
	ev := s.nextLocationEvent(stream)
	s.Equal(tmpID, ev.ActivityLocationID)
	s.Equal(locationedit.StateSelectingPlace, ev.State)

	base := "/activities/trip-1/locations/" + tmpID.String()
	resp = s.transition(http.MethodPost, base+"/place/region", map[string]string{"name": "Herat"})
	s.Equal(locationedit.StateConfirmingPlace, resp.Outcome.State)
	resp = s.transition(http.MethodPost, base+"/confirm", map[string]string{"answer": "yes"})
	s.Equal(locationedit.StatePromptPrecise, resp.Outcome.State)
	resp = s.transition(http.MethodPost, base+"/precise/choice", map[string]string{"choice": "drag"})
	s.Equal(locationedit.StateDraggingPrecise, resp.Outcome.State)
	resp = s.transition(http.MethodPost, base+"/precise/drop", map[string]float64{"lat": 34.36, "lng": 62.21})
	s.Equal(locationedit.StateConfirmingPrecise, resp.Outcome.State)
	resp = s.transition(http.MethodPost, base+"/confirm", map[string]string{"answer": "yes"})
	s.Equal(locationedit.StateCommitted, resp.Outcome.State)
	s.Equal("Herat added!", resp.Outcome.Message)
	s.Equal(1, len(resp.View.Locations))

	status, raw := s.call(http.MethodPost, "/activities/trip-1/locations/save", nil)
	s.Require().Equal(http.StatusOK, status, string(raw))
	var saved types.SaveResponse
	s.Require().NoError(json.Unmarshal(raw, &saved))
	s.Equal(1, saved.Saved)
	s.Require().Len(saved.Results, 1)
	permanent := models.ActivityLocationID(saved.Results[0].New.PermanentID)
	s.False(permanent.IsTemporary())

	for {
		ev = s.nextLocationEvent(stream)
		if ev.Type == locationedit.EventRenamed {
			break
		}
	}
	s.Equal(permanent, ev.ActivityLocationID)
	s.Equal(tmpID, ev.PreviousID)

	// A new process loads what was stored. The stream has to end first or
	// Close waits on it.
	cancel()
	s.server.Close()
	s.startServer()

	status, raw = s.call(http.MethodGet, "/activities/trip-1/locations", nil)
	s.Require().Equal(http.StatusOK, status)
	var view locationedit.WorkspaceView
	s.Require().NoError(json.Unmarshal(raw, &view))
	s.Require().Len(view.Locations, 1)
	s.Equal(permanent, view.Locations[0].ID)
	s.False(view.Locations[0].IsNew)
	s.Require().NotNil(view.Locations[0].PreciseLocation)
	s.Equal(models.Coordinate{Lat: 34.36, Lng: 62.21}, view.Locations[0].PreciseLocation.Coordinate())
}

func (s *E2ETestSuite) TestRemovePreciseThenLocation() {
	def := s.fake.AddPlace(models.Place{
		GazetteerID: "g-kandahar", RegionName: "Kandahar", MunicipalName: "Kandahar", PlaceName: "Kandahar",
		Coordinate: models.Coordinate{Lat: 31.613501, Lng: 65.710101},
	})
	precise := models.NewPreciseSnapshot(models.Coordinate{Lat: 31.62, Lng: 65.72})
	_, err := s.repo.SaveBatch(context.Background(), locationedit.Changes{
		ActivityID: "trip-2",
		Upserts:    []locationedit.Change{{Location: models.RestoreActivityLocation("stored-1", def, &precise, "pl-1")}},
	})
	s.Require().NoError(err)

	resp := s.transition(http.MethodDelete, "/activities/trip-2/locations/stored-1/precise", nil)
	s.Require().Len(resp.View.Locations, 1)
	s.Nil(resp.View.Locations[0].PreciseLocation)

	resp = s.transition(http.MethodDelete, "/activities/trip-2/locations/stored-1", nil)
	s.Empty(resp.View.Locations)

	status, raw := s.call(http.MethodPost, "/activities/trip-2/locations/save", nil)
	s.Require().Equal(http.StatusOK, status, string(raw))
	var saved types.SaveResponse
	s.Require().NoError(json.Unmarshal(raw, &saved))
	s.Equal(1, saved.Removed)

	left, err := s.repo.ListByActivity(context.Background(), "trip-2")
	s.Require().NoError(err)
	s.Empty(left)
}

func (s *E2ETestSuite) TestConcurrentEditorsConflict() {
	s.transition(http.MethodPost, "/activities/trip-3/locations", nil)

	status, raw := s.call(http.MethodPost, "/activities/trip-3/locations", nil)
	s.Equal(http.StatusConflict, status, string(raw))

	status, raw = s.call(http.MethodPost, "/activities/other-trip/locations", nil)
	s.Equal(http.StatusOK, status, "edit sessions are per activity: %s", raw)
}

func TestE2ETestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end tests in short mode")
	}
	suite.Run(t, new(E2ETestSuite))
}
