package activitylocation

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-activity-locations/internal/api"
	"github.com/FACorreiaa/go-activity-locations/internal/api/events"
	"github.com/FACorreiaa/go-activity-locations/internal/api/locationedit"
	"github.com/FACorreiaa/go-activity-locations/internal/models"
	"github.com/FACorreiaa/go-activity-locations/internal/types"
)

const (
	routeLocations = "/activities/{activityID}/locations"
	routeLocation  = routeLocations + "/{alID}"
)

// TransitionResponse is returned by every edit request.
type TransitionResponse struct {
	Outcome locationedit.Outcome       `json:"outcome"`
	View    locationedit.WorkspaceView `json:"view"`
}

type HandlerImpl struct {
	service Service
	broker  *events.Broker
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, broker *events.Broker, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		broker:  broker,
		logger:  logger,
	}
}

type editFunc func(ctx context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error)

// edit runs fn against the activity's state machine and replies with the
// outcome and the refreshed view.
func (h *HandlerImpl) edit(w http.ResponseWriter, r *http.Request, name, route string, fn editFunc) {
	ctx, span := otel.Tracer("ActivityLocationHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(route),
	))
	defer span.End()

	activityID := chi.URLParam(r, "activityID")
	id := models.ActivityLocationID(chi.URLParam(r, "alID"))
	l := h.logger.With(slog.String("handler", name), slog.String("activity_id", activityID))
	if id != "" {
		l = l.With(slog.String("activity_location_id", id.String()))
	}
	l.DebugContext(ctx, "Location edit handler invoked")

	m, err := h.service.Editor(ctx, activityID)
	if err != nil {
		h.fail(w, r, l, err)
		return
	}
	out, err := fn(ctx, m, id)
	if err != nil {
		span.RecordError(err)
		h.fail(w, r, l, err)
		return
	}
	h.service.Settled(ctx, activityID, out)

	api.WriteJSONResponse(w, r, http.StatusOK, TransitionResponse{Outcome: out, View: m.View()})
}

// fail maps an edit error to its HTTP status.
func (h *HandlerImpl) fail(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	var ve *locationedit.ValidationError
	switch {
	case errors.As(err, &ve):
		l.InfoContext(r.Context(), "Validation failed", slog.String("message", ve.Message))
		api.ErrorResponse(w, r, http.StatusUnprocessableEntity, ve.Message)
	case errors.Is(err, locationedit.ErrConflictingEdit),
		errors.Is(err, locationedit.ErrInvalidTransition),
		errors.Is(err, locationedit.ErrStaleResponse):
		api.ErrorResponse(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, locationedit.ErrNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, locationedit.ErrLookupFailed):
		l.WarnContext(r.Context(), "Gazetteer lookup failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadGateway, "The gazetteer could not be reached, please try again")
	case errors.Is(err, locationedit.ErrSaveFailed):
		l.ErrorContext(r.Context(), "Save failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to save activity locations")
	case errors.Is(err, locationedit.ErrRollbackInconsistency):
		l.ErrorContext(r.Context(), "Edit reset after rollback inconsistency", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "The edit was reset to the place location")
	default:
		l.ErrorContext(r.Context(), "Request failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *HandlerImpl) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := api.DecodeJSONBody(w, r, dst); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// GetRegions godoc
// @Summary      List Regions
// @Description  Lists the top level of the gazetteer hierarchy.
// @Tags         Gazetteer
// @Produce      json
// @Success      200 {array} types.AdminOption "Regions"
// @Failure      502 {object} types.Response "Gazetteer Unavailable"
// @Router       /gazetteer/regions [get]
func (h *HandlerImpl) GetRegions(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ActivityLocationHandler").Start(r.Context(), "GetRegions", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/gazetteer/regions"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetRegions"))

	regions, err := h.service.Regions(ctx)
	if err != nil {
		h.fail(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, regions)
}

// GetAdminOptions godoc
// @Summary      List Admin Options
// @Description  Lists the municipal (level 2) or place (level 3) options under a parent.
// @Tags         Gazetteer
// @Produce      json
// @Param        level path int true "Admin level (2 or 3)"
// @Param        parent path string true "Parent key"
// @Success      200 {array} types.AdminOption "Options"
// @Failure      400 {object} types.Response "Invalid Level"
// @Failure      502 {object} types.Response "Gazetteer Unavailable"
// @Router       /gazetteer/admin/{level}/{parent} [get]
func (h *HandlerImpl) GetAdminOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ActivityLocationHandler").Start(r.Context(), "GetAdminOptions", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/gazetteer/admin/{level}/{parent}"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetAdminOptions"))

	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil || level < int(types.AdminLevelMunicipal) || level > int(types.AdminLevelPlace) {
		api.ErrorResponse(w, r, http.StatusBadRequest, "level must be 2 or 3")
		return
	}
	parent, err := url.PathUnescape(chi.URLParam(r, "parent"))
	if err != nil || parent == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid parent")
		return
	}

	opts, err := h.service.AdminOptions(ctx, types.AdminLevel(level), parent)
	if err != nil {
		h.fail(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, opts)
}

// SearchPlaces godoc
// @Summary      Search Places
// @Description  Free-text place search, best matches first.
// @Tags         Gazetteer
// @Produce      json
// @Param        q query string true "Search term (at least 4 characters)"
// @Param        page query int false "Page, starting at 1"
// @Success      200 {object} types.SearchPage "Results"
// @Failure      422 {object} types.Response "Search Term Too Short"
// @Failure      502 {object} types.Response "Gazetteer Unavailable"
// @Router       /gazetteer/search [get]
func (h *HandlerImpl) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ActivityLocationHandler").Start(r.Context(), "SearchPlaces", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/gazetteer/search"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "SearchPlaces"))

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			api.ErrorResponse(w, r, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = n
	}

	result, err := h.service.SearchPlaces(ctx, r.URL.Query().Get("q"), page)
	if err != nil {
		h.fail(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// GetWorkspace godoc
// @Summary      Get Activity Locations
// @Description  Returns every location of the activity and the edit in progress, if any.
// @Tags         Activity Locations
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Success      200 {object} locationedit.WorkspaceView "Workspace"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /activities/{activityID}/locations [get]
func (h *HandlerImpl) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ActivityLocationHandler").Start(r.Context(), "GetWorkspace", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(routeLocations),
	))
	defer span.End()
	activityID := chi.URLParam(r, "activityID")
	l := h.logger.With(slog.String("handler", "GetWorkspace"), slog.String("activity_id", activityID))

	m, err := h.service.Editor(ctx, activityID)
	if err != nil {
		h.fail(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, m.View())
}

// StreamEvents godoc
// @Summary      Stream Location Events
// @Description  Server-sent events: a "view" event with the full workspace, then one "location" event per change.
// @Tags         Activity Locations
// @Produce      text/event-stream
// @Param        activityID path string true "Activity ID"
// @Success      200 {object} locationedit.Event "Events"
// @Router       /activities/{activityID}/locations/events [get]
func (h *HandlerImpl) StreamEvents(w http.ResponseWriter, r *http.Request) {
	activityID := chi.URLParam(r, "activityID")
	l := h.logger.With(slog.String("handler", "StreamEvents"), slog.String("activity_id", activityID))

	m, err := h.service.Editor(r.Context(), activityID)
	if err != nil {
		h.fail(w, r, l, err)
		return
	}
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		l.DebugContext(r.Context(), "Could not clear write deadline", slog.Any("error", err))
	}

	l.InfoContext(r.Context(), "Event stream opened")
	if err := events.Stream(w, r, h.broker, activityID, m.View()); err != nil {
		l.ErrorContext(r.Context(), "Event stream failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Streaming unsupported")
		return
	}
	l.InfoContext(r.Context(), "Event stream closed")
}

// Save godoc
// @Summary      Save Activity Locations
// @Description  Stores every committed change in one batch. New locations receive permanent ids.
// @Tags         Activity Locations
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Success      200 {object} types.SaveResponse "Saved"
// @Failure      500 {object} types.Response "Save Failed"
// @Router       /activities/{activityID}/locations/save [post]
func (h *HandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ActivityLocationHandler").Start(r.Context(), "Save", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(routeLocations+"/save"),
	))
	defer span.End()
	activityID := chi.URLParam(r, "activityID")
	l := h.logger.With(slog.String("handler", "Save"), slog.String("activity_id", activityID))

	resp, err := h.service.Save(ctx, activityID)
	if err != nil {
		span.RecordError(err)
		h.fail(w, r, l, err)
		return
	}
	l.InfoContext(ctx, "Activity locations saved", slog.Int("saved", resp.Saved), slog.Int("removed", resp.Removed))
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// BeginNewLocation godoc
// @Summary      Add Location
// @Description  Starts choosing the place of a new location. The location is added once its edit completes.
// @Tags         Activity Locations
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Success      200 {object} TransitionResponse "Editing"
// @Failure      409 {object} types.Response "Another Location Is Being Edited"
// @Router       /activities/{activityID}/locations [post]
func (h *HandlerImpl) BeginNewLocation(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, "BeginNewLocation", routeLocations, func(_ context.Context, m *locationedit.Machine, _ models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.BeginNewLocation()
	})
}

// BeginPlaceEdit godoc
// @Summary      Edit Place
// @Description  Starts changing the place of an existing location.
// @Tags         Activity Locations
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Param        alID path string true "Activity location ID"
// @Success      200 {object} TransitionResponse "Editing"
// @Failure      404 {object} types.Response "Not Found"
// @Failure      409 {object} types.Response "Another Location Is Being Edited"
// @Router       /activities/{activityID}/locations/{alID}/place/edit [post]
func (h *HandlerImpl) BeginPlaceEdit(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, "BeginPlaceEdit", routeLocation+"/place/edit", func(ctx context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.BeginPlaceEdit(ctx, id)
	})
}

// SelectRegion godoc
// @Summary      Select Region
// @Tags         Activity Locations
// @Accept       json
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Param        alID path string true "Activity location ID"
// @Param        selection body types.AdminSelectionRequest true "Region"
// @Success      200 {object} TransitionResponse "Selected"
// @Failure      409 {object} types.Response "Not Allowed"
// @Failure      502 {object} types.Response "Gazetteer Unavailable"
// @Router       /activities/{activityID}/locations/{alID}/place/region [post]
func (h *HandlerImpl) SelectRegion(w http.ResponseWriter, r *http.Request) {
	var req types.AdminSelectionRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.edit(w, r, "SelectRegion", routeLocation+"/place/region", func(ctx context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.SelectRegion(ctx, id, req.Name)
	})
}

// SelectMunicipal godoc
// @Summary      Select Municipal
// @Tags         Activity Locations
// @Accept       json
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Param        alID path string true "Activity location ID"
// @Param        selection body types.AdminSelectionRequest true "Municipal"
// @Success      200 {object} TransitionResponse "Selected"
// @Failure      409 {object} types.Response "Not Allowed"
// @Failure      502 {object} types.Response "Gazetteer Unavailable"
// @Router       /activities/{activityID}/locations/{alID}/place/municipal [post]
func (h *HandlerImpl) SelectMunicipal(w http.ResponseWriter, r *http.Request) {
	var req types.AdminSelectionRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.edit(w, r, "SelectMunicipal", routeLocation+"/place/municipal", func(ctx context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.SelectMunicipal(ctx, id, req.Name)
	})
}

// SelectPlace godoc
// @Summary      Select Place
// @Tags         Activity Locations
// @Accept       json
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Param        alID path string true "Activity location ID"
// @Param        selection body types.PlaceSelectionRequest true "Place"
// @Success      200 {object} TransitionResponse "Selected"
// @Failure      409 {object} types.Response "Not Allowed"
// @Failure      502 {object} types.Response "Gazetteer Unavailable"
// @Router       /activities/{activityID}/locations/{alID}/place/place [post]
func (h *HandlerImpl) SelectPlace(w http.ResponseWriter, r *http.Request) {
	var req types.PlaceSelectionRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.edit(w, r, "SelectPlace", routeLocation+"/place/place", func(ctx context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.SelectPlace(ctx, id, req.GazetteerID)
	})
}

// SelectSearchResult godoc
// @Summary      Select Search Result
// @Description  Uses a place search hit as the place, skipping the cascade. The place is resolved from the gazetteer by id.
// @Tags         Activity Locations
// @Accept       json
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Param        alID path string true "Activity location ID"
// @Param        result body types.SearchResultSelectionRequest true "Search hit id"
// @Success      200 {object} TransitionResponse "Selected"
// @Failure      409 {object} types.Response "Not Allowed"
// @Failure      502 {object} types.Response "Gazetteer Unavailable"
// @Router       /activities/{activityID}/locations/{alID}/place/search-result [post]
func (h *HandlerImpl) SelectSearchResult(w http.ResponseWriter, r *http.Request) {
	var req types.SearchResultSelectionRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.GazetteerID == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "id is required")
		return
	}
	h.edit(w, r, "SelectSearchResult", routeLocation+"/place/search-result", func(ctx context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.SelectSearchResult(ctx, id, req.GazetteerID)
	})
}

// Confirm godoc
// @Summary      Answer Confirmation
// @Description  Accepts or declines the place or precise location awaiting confirmation.
// @Tags         Activity Locations
// @Accept       json
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Param        alID path string true "Activity location ID"
// @Param        answer body types.ConfirmRequest true "yes or no"
// @Success      200 {object} TransitionResponse "Answered"
// @Failure      400 {object} types.Response "Unknown Answer"
// @Failure      409 {object} types.Response "Nothing To Confirm"
// @Router       /activities/{activityID}/locations/{alID}/confirm [post]
func (h *HandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	var req types.ConfirmRequest
	if !h.decode(w, r, &req) {
		return
	}
	answer, err := locationedit.ParseAnswer(req.Answer)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	h.edit(w, r, "Confirm", routeLocation+"/confirm", func(ctx context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.Confirm(ctx, id, answer)
	})
}

// BeginPreciseEdit godoc
// @Summary      Edit Precise Location
// @Description  Starts adding or changing the precise location by dragging the marker or entering coordinates.
// @Tags         Activity Locations
// @Accept       json
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Param        alID path string true "Activity location ID"
// @Param        method body types.PreciseMethodRequest true "drag or coordinates"
// @Success      200 {object} TransitionResponse "Editing"
// @Failure      409 {object} types.Response "Another Location Is Being Edited"
// @Router       /activities/{activityID}/locations/{alID}/precise/edit [post]
func (h *HandlerImpl) BeginPreciseEdit(w http.ResponseWriter, r *http.Request) {
	var req types.PreciseMethodRequest
	if !h.decode(w, r, &req) {
		return
	}
	method, err := locationedit.ParsePreciseMethod(req.Method)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	h.edit(w, r, "BeginPreciseEdit", routeLocation+"/precise/edit", func(_ context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.BeginPreciseEdit(id, method)
	})
}

// ChoosePrecise godoc
// @Summary      Answer Precise Location Prompt
// @Tags         Activity Locations
// @Accept       json
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Param        alID path string true "Activity location ID"
// @Param        choice body types.PreciseChoiceRequest true "drag, coordinates or skip"
// @Success      200 {object} TransitionResponse "Chosen"
// @Failure      409 {object} types.Response "Not Allowed"
// @Router       /activities/{activityID}/locations/{alID}/precise/choice [post]
func (h *HandlerImpl) ChoosePrecise(w http.ResponseWriter, r *http.Request) {
	var req types.PreciseChoiceRequest
	if !h.decode(w, r, &req) {
		return
	}
	choice, err := locationedit.ParsePreciseChoice(req.Choice)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	h.edit(w, r, "ChoosePrecise", routeLocation+"/precise/choice", func(_ context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.ChoosePrecise(id, choice)
	})
}

// DropMarker godoc
// @Summary      Drop Marker
// @Tags         Activity Locations
// @Accept       json
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Param        alID path string true "Activity location ID"
// @Param        coordinate body types.DropMarkerRequest true "Where the marker was dropped"
// @Success      200 {object} TransitionResponse "Dropped"
// @Failure      409 {object} types.Response "Not Allowed"
// @Failure      422 {object} types.Response "Same As Place"
// @Router       /activities/{activityID}/locations/{alID}/precise/drop [post]
func (h *HandlerImpl) DropMarker(w http.ResponseWriter, r *http.Request) {
	var req types.DropMarkerRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.edit(w, r, "DropMarker", routeLocation+"/precise/drop", func(_ context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.DropMarker(id, models.Coordinate{Lat: req.Lat, Lng: req.Lng})
	})
}

// SubmitCoordinates godoc
// @Summary      Enter Coordinates
// @Description  Validates typed coordinates. On failure the location stays in coordinate entry and the message is returned.
// @Tags         Activity Locations
// @Accept       json
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Param        alID path string true "Activity location ID"
// @Param        coordinates body types.CoordinatesRequest true "Latitude and longitude as typed"
// @Success      200 {object} TransitionResponse "Accepted"
// @Failure      409 {object} types.Response "Not Allowed"
// @Failure      422 {object} types.Response "Invalid Coordinates"
// @Router       /activities/{activityID}/locations/{alID}/precise/coordinates [post]
func (h *HandlerImpl) SubmitCoordinates(w http.ResponseWriter, r *http.Request) {
	var req types.CoordinatesRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.edit(w, r, "SubmitCoordinates", routeLocation+"/precise/coordinates", func(_ context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.SubmitCoordinates(id, req.Lat, req.Lng)
	})
}

// Cancel godoc
// @Summary      Cancel Edit
// @Description  Abandons the edit and restores the last committed location.
// @Tags         Activity Locations
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Param        alID path string true "Activity location ID"
// @Success      200 {object} TransitionResponse "Cancelled"
// @Failure      409 {object} types.Response "Not Being Edited"
// @Router       /activities/{activityID}/locations/{alID}/cancel [post]
func (h *HandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, "Cancel", routeLocation+"/cancel", func(_ context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.Cancel(id)
	})
}

// RemoveLocation godoc
// @Summary      Remove Location
// @Tags         Activity Locations
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Param        alID path string true "Activity location ID"
// @Success      200 {object} TransitionResponse "Removed"
// @Failure      404 {object} types.Response "Not Found"
// @Failure      409 {object} types.Response "Another Location Is Being Edited"
// @Router       /activities/{activityID}/locations/{alID} [delete]
func (h *HandlerImpl) RemoveLocation(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, "RemoveLocation", routeLocation, func(_ context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.RemoveLocation(id)
	})
}

// RemovePreciseLocation godoc
// @Summary      Remove Precise Location
// @Tags         Activity Locations
// @Produce      json
// @Param        activityID path string true "Activity ID"
// @Param        alID path string true "Activity location ID"
// @Success      200 {object} TransitionResponse "Removed"
// @Failure      404 {object} types.Response "Not Found"
// @Failure      409 {object} types.Response "Location Is Being Edited"
// @Router       /activities/{activityID}/locations/{alID}/precise [delete]
func (h *HandlerImpl) RemovePreciseLocation(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, "RemovePreciseLocation", routeLocation+"/precise", func(_ context.Context, m *locationedit.Machine, id models.ActivityLocationID) (locationedit.Outcome, error) {
		return m.RemovePreciseLocation(id)
	})
}

// Routes mounts the activity location endpoints.
func (h *HandlerImpl) Routes(r chi.Router) {
	r.Route("/gazetteer", func(r chi.Router) {
		r.Get("/regions", h.GetRegions)
		r.Get("/admin/{level}/{parent}", h.GetAdminOptions)
		r.Get("/search", h.SearchPlaces)
	})

	r.Route(routeLocations, func(r chi.Router) {
		r.Get("/", h.GetWorkspace)
		r.Post("/", h.BeginNewLocation)
		r.Post("/save", h.Save)

		r.Route("/{alID}", func(r chi.Router) {
			r.Delete("/", h.RemoveLocation)
			r.Post("/place/edit", h.BeginPlaceEdit)
			r.Post("/place/region", h.SelectRegion)
			r.Post("/place/municipal", h.SelectMunicipal)
			r.Post("/place/place", h.SelectPlace)
			r.Post("/place/search-result", h.SelectSearchResult)
			r.Post("/confirm", h.Confirm)
			r.Post("/precise/edit", h.BeginPreciseEdit)
			r.Post("/precise/choice", h.ChoosePrecise)
			r.Post("/precise/drop", h.DropMarker)
			r.Post("/precise/coordinates", h.SubmitCoordinates)
			r.Delete("/precise", h.RemovePreciseLocation)
			r.Post("/cancel", h.Cancel)
		})
	})
}

// StreamRoutes mounts the long-lived event stream; it must stay outside
// request timeouts.
func (h *HandlerImpl) StreamRoutes(r chi.Router) {
	r.Get(routeLocations+"/events", h.StreamEvents)
}
