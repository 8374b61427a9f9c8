package activitylocation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-activity-locations/internal/api/editsession"
	"github.com/FACorreiaa/go-activity-locations/internal/api/gazetteer"
	"github.com/FACorreiaa/go-activity-locations/internal/api/locationedit"
	"github.com/FACorreiaa/go-activity-locations/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// Editor returns the edit state machine of the activity, loading its
	// locations on first use.
	Editor(ctx context.Context, activityID string) (*locationedit.Machine, error)
	Save(ctx context.Context, activityID string) (*types.SaveResponse, error)
	// Settled is called after each accepted request; it saves when
	// auto-save is on and the location is back to committed.
	Settled(ctx context.Context, activityID string, out locationedit.Outcome)

	Regions(ctx context.Context) ([]types.AdminOption, error)
	AdminOptions(ctx context.Context, level types.AdminLevel, parent string) ([]types.AdminOption, error)
	SearchPlaces(ctx context.Context, term string, page int) (types.SearchPage, error)
}

type Config struct {
	PreciseEpsilon float64
	// WorkspaceTTL is how long an idle activity workspace stays loaded.
	WorkspaceTTL   time.Duration
	AutoSave       bool
	SearchMinChars int
}

// workspace is one activity's locations with their edit session.
type workspace struct {
	machine *locationedit.Machine
	// saveMu serializes saves so a new location is inserted once.
	saveMu  sync.Mutex
}

type ServiceImpl struct {
	logger     *slog.Logger
	repo       Repository
	gazetteer  gazetteer.Client
	publisher  locationedit.Publisher
	cfg        Config
	workspaces *cache.Cache
	loadMu     sync.Mutex
}

func NewServiceImpl(repo Repository, gz gazetteer.Client, publisher locationedit.Publisher, cfg Config, logger *slog.Logger) *ServiceImpl {
	if cfg.WorkspaceTTL <= 0 {
		cfg.WorkspaceTTL = 30 * time.Minute
	}
	if cfg.SearchMinChars <= 0 {
		cfg.SearchMinChars = 4
	}
	s := &ServiceImpl{
		logger:     logger,
		repo:       repo,
		gazetteer:  gz,
		publisher:  publisher,
		cfg:        cfg,
		workspaces: cache.New(cfg.WorkspaceTTL, cfg.WorkspaceTTL/2),
	}
	s.workspaces.OnEvicted(s.evicted)
	return s
}

func (s *ServiceImpl) Editor(ctx context.Context, activityID string) (*locationedit.Machine, error) {
	ws, err := s.workspace(ctx, activityID)
	if err != nil {
		return nil, err
	}
	return ws.machine, nil
}

func (s *ServiceImpl) workspace(ctx context.Context, activityID string) (*workspace, error) {
	if v, ok := s.workspaces.Get(activityID); ok {
		// Touch to extend the idle expiry.
		s.workspaces.SetDefault(activityID, v)
		return v.(*workspace), nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if v, ok := s.workspaces.Get(activityID); ok {
		return v.(*workspace), nil
	}

	ctx, span := otel.Tracer("ActivityLocationService").Start(ctx, "LoadWorkspace", trace.WithAttributes(
		attribute.String("activity.id", activityID),
	))
	defer span.End()

	locations, err := s.repo.ListByActivity(ctx, activityID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load activity locations")
		s.logger.ErrorContext(ctx, "failed to load activity locations",
			slog.String("activity_id", activityID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to load activity locations: %w", err)
	}

	ws := &workspace{
		machine: locationedit.NewMachine(activityID, locations, s.gazetteer, editsession.New(), s.publisher,
			locationedit.Config{PreciseEpsilon: s.cfg.PreciseEpsilon}, s.logger),
	}
	s.workspaces.SetDefault(activityID, ws)
	s.logger.InfoContext(ctx, "Activity workspace loaded",
		slog.String("activity_id", activityID), slog.Int("locations", len(locations)))
	return ws, nil
}

// evicted stores whatever an idle workspace still holds.
func (s *ServiceImpl) evicted(activityID string, v interface{}) {
	ws := v.(*workspace)
	if !ws.machine.Unsaved() {
		return
	}
	s.logger.Warn("Evicting activity workspace with unsaved changes, saving",
		slog.String("activity_id", activityID))
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.save(ctx, ws); err != nil {
			s.logger.Error("Unsaved changes lost on eviction",
				slog.String("activity_id", activityID), slog.Any("error", err))
		}
	}()
}

func (s *ServiceImpl) Save(ctx context.Context, activityID string) (*types.SaveResponse, error) {
	ctx, span := otel.Tracer("ActivityLocationService").Start(ctx, "Save", trace.WithAttributes(
		attribute.String("activity.id", activityID),
	))
	defer span.End()

	ws, err := s.workspace(ctx, activityID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	resp, err := s.save(ctx, ws)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		return nil, err
	}
	span.SetStatus(codes.Ok, "Activity locations saved")
	return resp, nil
}

func (s *ServiceImpl) save(ctx context.Context, ws *workspace) (*types.SaveResponse, error) {
	ws.saveMu.Lock()
	defer ws.saveMu.Unlock()

	changes := ws.machine.PendingChanges()
	resp := &types.SaveResponse{Results: []types.SaveResult{}}
	if changes.Empty() {
		return resp, nil
	}

	results, err := s.repo.SaveBatch(ctx, changes)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to save activity locations",
			slog.String("activity_id", changes.ActivityID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", locationedit.ErrSaveFailed, err)
	}
	ws.machine.ApplySaveResults(changes, results)

	resp.Results = results
	resp.Saved = len(changes.Upserts)
	resp.Removed = len(changes.Removed)
	return resp, nil
}

// SaveAll stores every loaded workspace with unsaved changes and returns how
// many were saved. Used on shutdown.
func (s *ServiceImpl) SaveAll(ctx context.Context) int {
	saved := 0
	for activityID, item := range s.workspaces.Items() {
		ws := item.Object.(*workspace)
		if !ws.machine.Unsaved() {
			continue
		}
		if _, err := s.save(ctx, ws); err != nil {
			s.logger.ErrorContext(ctx, "Unsaved changes lost on shutdown",
				slog.String("activity_id", activityID), slog.Any("error", err))
			continue
		}
		saved++
	}
	return saved
}

func (s *ServiceImpl) Settled(ctx context.Context, activityID string, out locationedit.Outcome) {
	if !s.cfg.AutoSave || out.State != locationedit.StateCommitted {
		return
	}
	ws, err := s.workspace(ctx, activityID)
	if err != nil || !ws.machine.Unsaved() {
		return
	}
	if _, err := s.save(ctx, ws); err != nil {
		// The changes stay pending; the next save retries them.
		s.logger.WarnContext(ctx, "Auto-save failed", slog.String("activity_id", activityID), slog.Any("error", err))
	}
}

func (s *ServiceImpl) Regions(ctx context.Context) ([]types.AdminOption, error) {
	return s.AdminOptions(ctx, types.AdminLevelRegion, "")
}

func (s *ServiceImpl) AdminOptions(ctx context.Context, level types.AdminLevel, parent string) ([]types.AdminOption, error) {
	opts, err := s.gazetteer.ListAdminOptions(ctx, level, parent)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to list admin options",
			slog.String("level", level.String()), slog.String("parent", parent), slog.Any("error", err))
		return nil, err
	}
	return opts, nil
}

func (s *ServiceImpl) SearchPlaces(ctx context.Context, term string, page int) (types.SearchPage, error) {
	if err := locationedit.ValidateSearchTerm(term, s.cfg.SearchMinChars); err != nil {
		return types.SearchPage{}, err
	}
	if page < 1 {
		page = 1
	}
	result, err := s.gazetteer.SearchPlaces(ctx, term, page)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to search places", slog.String("term", term), slog.Any("error", err))
		return types.SearchPage{}, err
	}
	return result, nil
}
