package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// CoordinatePrecision is the number of decimal places coordinates are
// rounded to when compared or displayed.
const CoordinatePrecision = 6

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Fixed returns both components formatted with CoordinatePrecision decimals.
func (c Coordinate) Fixed() (lat, lng string) {
	return strconv.FormatFloat(c.Lat, 'f', CoordinatePrecision, 64),
		strconv.FormatFloat(c.Lng, 'f', CoordinatePrecision, 64)
}

// SameRounded reports whether both coordinates print identically at CoordinatePrecision.
func (c Coordinate) SameRounded(o Coordinate) bool {
	aLat, aLng := c.Fixed()
	bLat, bLng := o.Fixed()
	return aLat == bLat && aLng == bLng
}

// Within reports whether o lies within eps degrees of c on both axes. Both
// sides are compared as whole units of the last kept decimal.
func (c Coordinate) Within(o Coordinate, eps float64) bool {
	limit := toUnits(eps)
	return abs64(toUnits(c.Lat)-toUnits(o.Lat)) <= limit && abs64(toUnits(c.Lng)-toUnits(o.Lng)) <= limit
}

var unitScale = math.Pow10(CoordinatePrecision)

// toUnits rounds v to CoordinatePrecision decimals and returns it as an
// integer count of units.
func toUnits(v float64) int64 { return int64(math.Round(v * unitScale)) }

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// AdminCodes are the gazetteer codes of the municipal and place levels.
type AdminCodes struct {
	Municipal string `json:"mcode,omitempty"`
	Place     string `json:"pcode,omitempty"`
}

// Place describes one gazetteer resolution.
type Place struct {
	GazetteerID   string
	RegionName    string
	MunicipalName string
	PlaceName     string
	AdminCodes    AdminCodes
	Coordinate    Coordinate
}

// LocationSnapshot is an immutable location value. It is either derived from
// a gazetteer resolution or holds a precise coordinate pair only.
// Snapshots are comparable with ==; Equal is provided for readability.
type LocationSnapshot struct {
	place   Place
	precise bool
}

// NewPlaceSnapshot captures a gazetteer resolution.
func NewPlaceSnapshot(p Place) LocationSnapshot {
	return LocationSnapshot{place: p}
}

// NewPreciseSnapshot captures a surveyed coordinate pair.
func NewPreciseSnapshot(c Coordinate) LocationSnapshot {
	return LocationSnapshot{place: Place{Coordinate: c}, precise: true}
}

func (s LocationSnapshot) Place() Place           { return s.place }
func (s LocationSnapshot) Coordinate() Coordinate { return s.place.Coordinate }
func (s LocationSnapshot) GazetteerID() string    { return s.place.GazetteerID }
func (s LocationSnapshot) RegionName() string     { return s.place.RegionName }
func (s LocationSnapshot) MunicipalName() string  { return s.place.MunicipalName }
func (s LocationSnapshot) PlaceName() string      { return s.place.PlaceName }
func (s LocationSnapshot) AdminCodes() AdminCodes { return s.place.AdminCodes }
func (s LocationSnapshot) IsPrecise() bool        { return s.precise }

// IsZero reports whether s was never set.
func (s LocationSnapshot) IsZero() bool { return s == LocationSnapshot{} }

// Equal reports whether every field of s and o matches.
func (s LocationSnapshot) Equal(o LocationSnapshot) bool { return s == o }

type snapshotJSON struct {
	Type          string     `json:"type"`
	GazetteerID   string     `json:"gazetteerId,omitempty"`
	RegionName    string     `json:"regionName,omitempty"`
	MunicipalName string     `json:"municipalName,omitempty"`
	PlaceName     string     `json:"placeName,omitempty"`
	AdminCodes    AdminCodes `json:"adminCodes"`
	Lat           float64    `json:"lat"`
	Lng           float64    `json:"lng"`
}

func (s LocationSnapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{
		Type:          "place",
		GazetteerID:   s.place.GazetteerID,
		RegionName:    s.place.RegionName,
		MunicipalName: s.place.MunicipalName,
		PlaceName:     s.place.PlaceName,
		AdminCodes:    s.place.AdminCodes,
		Lat:           s.place.Coordinate.Lat,
		Lng:           s.place.Coordinate.Lng,
	}
	if s.precise {
		out = snapshotJSON{Type: "precise", Lat: s.place.Coordinate.Lat, Lng: s.place.Coordinate.Lng}
	}
	return json.Marshal(out)
}

func (s *LocationSnapshot) UnmarshalJSON(data []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	c := Coordinate{Lat: in.Lat, Lng: in.Lng}
	if in.Type == "precise" {
		*s = NewPreciseSnapshot(c)
		return nil
	}
	*s = NewPlaceSnapshot(Place{
		GazetteerID:   in.GazetteerID,
		RegionName:    in.RegionName,
		MunicipalName: in.MunicipalName,
		PlaceName:     in.PlaceName,
		AdminCodes:    in.AdminCodes,
		Coordinate:    c,
	})
	return nil
}

// Committed is the rollback baseline of an ActivityLocation: the default
// location plus the precise location, if any, as of the last commit.
type Committed struct {
	Default    LocationSnapshot
	Precise    LocationSnapshot
	HasPrecise bool
}

func (c Committed) Equal(o Committed) bool { return c == o }
