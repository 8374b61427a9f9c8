package types

import (
	"fmt"

	"github.com/FACorreiaa/go-activity-locations/internal/models"
)

// AdminLevel is a depth in the gazetteer hierarchy.
type AdminLevel int

const (
	AdminLevelRegion    AdminLevel = 1
	AdminLevelMunicipal AdminLevel = 2
	AdminLevelPlace     AdminLevel = 3
)

func (l AdminLevel) String() string {
	switch l {
	case AdminLevelRegion:
		return "region"
	case AdminLevelMunicipal:
		return "municipal"
	case AdminLevelPlace:
		return "place"
	default:
		return fmt.Sprintf("level-%d", int(l))
	}
}

// AdminOption is one selectable entry at an admin level. Region and
// municipal options are keyed by name; place options by gazetteer id.
type AdminOption struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	GazetteerID string `json:"gazetteerId,omitempty"`
}

// PlaceSearchResult is a free-text search hit carrying its full admin hierarchy.
type PlaceSearchResult struct {
	GazetteerID   string            `json:"id"`
	Value         string            `json:"value"`
	Type          string            `json:"type"`
	Score         float64           `json:"score"`
	RegionName    string            `json:"regionName"`
	MunicipalName string            `json:"municipalName"`
	PlaceName     string            `json:"placeName"`
	AdminCodes    models.AdminCodes `json:"adminCodes"`
	Coordinate    models.Coordinate `json:"coordinate"`
}

// SearchPage is one page of place search results.
type SearchPage struct {
	Results []PlaceSearchResult `json:"results"`
	Count   int                 `json:"count"`
	Total   int                 `json:"totalCount"`
	Page    int                 `json:"page"`
	More    bool                `json:"more"`
}
