package types

// SaveMatch identifies the temporary id a save result belongs to.
type SaveMatch struct {
	TempID string `json:"activityLocationId"`
}

// SaveAssigned carries the ids storage assigned to a new location.
type SaveAssigned struct {
	PermanentID string `json:"activityLocationId"`
	LocationID  string `json:"locationId,omitempty"`
}

// SaveResult maps one newly stored location to its permanent ids.
type SaveResult struct {
	MatchWith SaveMatch    `json:"matchWith"`
	New       SaveAssigned `json:"new"`
}

// SaveResponse is returned by the batch save endpoint.
type SaveResponse struct {
	Results []SaveResult `json:"results"`
	Saved   int          `json:"saved"`
	Removed int          `json:"removed"`
}

// Response is the generic message envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type ConfirmRequest struct {
	Answer string `json:"answer"`
}

type PreciseMethodRequest struct {
	Method string `json:"method"`
}

type PreciseChoiceRequest struct {
	Choice string `json:"choice"`
}

type AdminSelectionRequest struct {
	Name string `json:"name"`
}

type PlaceSelectionRequest struct {
	GazetteerID string `json:"gazetteerId"`
}

// SearchResultSelectionRequest names a search hit by its gazetteer id.
type SearchResultSelectionRequest struct {
	GazetteerID string `json:"id"`
}

type DropMarkerRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoordinatesRequest carries raw operator input; it is validated server side.
type CoordinatesRequest struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}
