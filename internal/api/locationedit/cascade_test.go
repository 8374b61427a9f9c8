package locationedit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-activity-locations/internal/types"
)

func opt(name string) types.AdminOption { return types.AdminOption{Key: name, Name: name} }

func TestCascade_SelectingHigherLevelDiscardsLower(t *testing.T) {
	var c Cascade
	c.selectRegion(opt("Kabul"))
	c.applyMunicipalOptions([]types.AdminOption{opt("Kabul"), opt("Paghman")})
	c.selectMunicipal(opt("Paghman"))
	c.applyPlaceOptions([]types.AdminOption{{Key: "g1", Name: "Qargha", GazetteerID: "g1"}, {Key: "g2", Name: "Paghman", GazetteerID: "g2"}})
	c.selectPlace(c.PlaceOptions[0])
	assert.Equal(t, stepPlaceDetail, c.next())

	c.selectMunicipal(opt("Kabul"))
	assert.Nil(t, c.Place)
	assert.Nil(t, c.PlaceOptions)
	assert.Equal(t, stepPlaceOptions, c.next())

	c.selectRegion(opt("Herat"))
	assert.Nil(t, c.Municipal)
	assert.Nil(t, c.MunicipalOptions)
	assert.Equal(t, stepMunicipalOptions, c.next())
}

func TestCascade_AutoSelection(t *testing.T) {
	var c Cascade
	c.selectRegion(opt("A"))
	c.applyMunicipalOptions([]types.AdminOption{opt("A")})
	assert.True(t, c.OnlyMunicipalInRegion)
	assert.Equal(t, "A", c.Municipal.Name)

	c.applyPlaceOptions([]types.AdminOption{{Key: "g-a", Name: "A", GazetteerID: "g-a"}})
	assert.True(t, c.PlaceElided)
	assert.Equal(t, "g-a", c.Place.GazetteerID)
	assert.Equal(t, stepPlaceDetail, c.next())

	c.resolved = true
	assert.Equal(t, stepNone, c.next())
}

func TestCascade_SinglePlaceWithOtherNameIsSelectedNotElided(t *testing.T) {
	var c Cascade
	c.selectRegion(opt("Kabul"))
	c.applyMunicipalOptions([]types.AdminOption{opt("Kabul"), opt("Paghman")})
	c.selectMunicipal(opt("Paghman"))
	c.applyPlaceOptions([]types.AdminOption{{Key: "g1", Name: "Qargha", GazetteerID: "g1"}})

	assert.False(t, c.PlaceElided)
	assert.Equal(t, "g1", c.Place.GazetteerID)

	c.unwind()
	assert.Nil(t, c.Place)
	assert.Equal(t, "Paghman", c.Municipal.Name)
}

func TestCascade_UnwindElidedPlace(t *testing.T) {
	var c Cascade
	c.selectRegion(opt("Kabul"))
	c.applyMunicipalOptions([]types.AdminOption{opt("Kabul"), opt("Paghman")})
	c.selectMunicipal(opt("Kabul"))
	c.applyPlaceOptions([]types.AdminOption{{Key: "g1", Name: "Kabul", GazetteerID: "g1"}})
	assert.True(t, c.PlaceElided)

	c.unwind()
	assert.Nil(t, c.Municipal)
	assert.Nil(t, c.Place)
	assert.Equal(t, "Kabul", c.Region.Name)
	assert.Len(t, c.MunicipalOptions, 2)
}
