package locationedit

import (
	"github.com/FACorreiaa/go-activity-locations/internal/models"
	"github.com/FACorreiaa/go-activity-locations/internal/types"
)

// Cascade is the region, municipal and place selection of one place edit.
// Options and selections are replaced, never mutated in place, so a value
// copy is a snapshot.
type Cascade struct {
	Region           *types.AdminOption  `json:"region,omitempty"`
	Municipal        *types.AdminOption  `json:"municipal,omitempty"`
	Place            *types.AdminOption  `json:"place,omitempty"`
	MunicipalOptions []types.AdminOption `json:"municipalOptions"`
	PlaceOptions     []types.AdminOption `json:"placeOptions"`
	// OnlyMunicipalInRegion is set when the region has a single municipal.
	OnlyMunicipalInRegion bool `json:"onlyMunicipalInRegion"`
	// PlaceElided is set when the only place shares the municipal's name;
	// the place level is not shown and the municipal stands in for it.
	PlaceElided bool `json:"placeElided"`

	municipalLoaded bool
	placeLoaded     bool
	// resolved is set once Place has been turned into a default location.
	resolved bool
}

// cascadeFromSnapshot selects every level of an already resolved place.
// Option lists still have to be loaded.
func cascadeFromSnapshot(s models.LocationSnapshot) Cascade {
	return Cascade{
		Region:    &types.AdminOption{Key: s.RegionName(), Name: s.RegionName()},
		Municipal: &types.AdminOption{Key: s.MunicipalName(), Name: s.MunicipalName()},
		Place:     &types.AdminOption{Key: s.GazetteerID(), Name: s.PlaceName(), GazetteerID: s.GazetteerID()},
		resolved:  true,
	}
}

func (c *Cascade) selectRegion(opt types.AdminOption) {
	*c = Cascade{Region: &opt}
}

func (c *Cascade) selectMunicipal(opt types.AdminOption) {
	c.Municipal = &opt
	c.clearPlaceLevel()
}

func (c *Cascade) selectPlace(opt types.AdminOption) {
	c.Place = &opt
	c.resolved = false
}

func (c *Cascade) clearPlaceLevel() {
	c.Place = nil
	c.PlaceOptions = nil
	c.PlaceElided = false
	c.placeLoaded = false
	c.resolved = false
}

// applyMunicipalOptions stores the region's municipals, auto-selecting a
// single option.
func (c *Cascade) applyMunicipalOptions(opts []types.AdminOption) {
	c.MunicipalOptions = opts
	c.municipalLoaded = true
	c.OnlyMunicipalInRegion = len(opts) == 1
	if c.Municipal == nil && len(opts) == 1 {
		m := opts[0]
		c.Municipal = &m
	}
}

// applyPlaceOptions stores the municipal's places, auto-selecting a single
// option. Several places named like the municipal are not elided.
func (c *Cascade) applyPlaceOptions(opts []types.AdminOption) {
	c.PlaceOptions = opts
	c.placeLoaded = true
	c.PlaceElided = len(opts) == 1 && c.Municipal != nil && opts[0].Name == c.Municipal.Name
	if c.Place == nil && len(opts) == 1 {
		p := opts[0]
		c.Place = &p
		c.resolved = false
	}
}

func (c *Cascade) findMunicipal(name string) (types.AdminOption, bool) {
	for _, o := range c.MunicipalOptions {
		if o.Name == name {
			return o, true
		}
	}
	return types.AdminOption{}, false
}

func (c *Cascade) findPlace(gazetteerID string) (types.AdminOption, bool) {
	for _, o := range c.PlaceOptions {
		if o.GazetteerID == gazetteerID {
			return o, true
		}
	}
	return types.AdminOption{}, false
}

// unwind undoes a rejected place so the operator can choose again. An
// elided place was auto-selected through its municipal, so the municipal
// (or the region, when it was auto-selected too) is reset instead.
func (c *Cascade) unwind() {
	if !c.PlaceElided {
		c.Place = nil
		c.resolved = false
		return
	}
	if c.OnlyMunicipalInRegion {
		*c = Cascade{}
		return
	}
	c.Municipal = nil
	c.clearPlaceLevel()
}

type cascadeStep int

const (
	stepNone cascadeStep = iota
	stepMunicipalOptions
	stepPlaceOptions
	stepPlaceDetail
)

// next returns the lookup that continues the cascade. Levels are resolved
// strictly top-down.
func (c *Cascade) next() cascadeStep {
	switch {
	case c.Region != nil && !c.municipalLoaded:
		return stepMunicipalOptions
	case c.Municipal != nil && !c.placeLoaded:
		return stepPlaceOptions
	case c.Place != nil && !c.resolved:
		return stepPlaceDetail
	}
	return stepNone
}

func (s cascadeStep) message() string {
	switch s {
	case stepMunicipalOptions:
		return "Unable to load the municipals for this region. Please try again."
	case stepPlaceOptions:
		return "Unable to load the places for this municipal. Please try again."
	default:
		return "Unable to load the place information. Please try again."
	}
}
