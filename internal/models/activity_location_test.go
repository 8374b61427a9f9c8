package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlace(name string, lat, lng float64) LocationSnapshot {
	return NewPlaceSnapshot(Place{
		GazetteerID:   "gz-" + name,
		RegionName:    "Region " + name,
		MunicipalName: "Municipal " + name,
		PlaceName:     name,
		AdminCodes:    AdminCodes{Municipal: "M-" + name, Place: "P-" + name},
		Coordinate:    Coordinate{Lat: lat, Lng: lng},
	})
}

func TestLocationSnapshot_Equal(t *testing.T) {
	a := testPlace("Kabul", 34.5, 69.2)
	b := testPlace("Kabul", 34.5, 69.2)
	c := testPlace("Kabul", 34.5, 69.200001)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, NewPreciseSnapshot(a.Coordinate()).Equal(NewPlaceSnapshot(Place{Coordinate: a.Coordinate()})))
}

func TestLocationSnapshot_JSONRoundTrip(t *testing.T) {
	for _, s := range []LocationSnapshot{testPlace("Herat", 34.35, 62.2), NewPreciseSnapshot(Coordinate{Lat: 1.234567, Lng: 2.345678})} {
		data, err := json.Marshal(s)
		require.NoError(t, err)
		var out LocationSnapshot
		require.NoError(t, json.Unmarshal(data, &out))
		assert.True(t, s.Equal(out), string(data))
	}
}

func TestCoordinate_Comparisons(t *testing.T) {
	a := Coordinate{Lat: 10.1234001, Lng: 20.5678}
	b := Coordinate{Lat: 10.1234, Lng: 20.5678}
	assert.True(t, a.SameRounded(b))
	assert.True(t, a.Within(b, DefaultPreciseEpsilon))
	assert.False(t, a.Within(Coordinate{Lat: 10.1244, Lng: 20.5678}, DefaultPreciseEpsilon))

	lat, lng := b.Fixed()
	assert.Equal(t, "10.123400", lat)
	assert.Equal(t, "20.567800", lng)
}

func TestCoordinate_WithinCountsWholeUnits(t *testing.T) {
	pairs := []struct {
		def  Coordinate
		near Coordinate
		far  Coordinate
	}{
		{def: Coordinate{Lat: 34.352865, Lng: 62.204014}, near: Coordinate{Lat: 34.352866, Lng: 62.204015}, far: Coordinate{Lat: 34.352867, Lng: 62.204014}},
		{def: Coordinate{Lat: 0.1, Lng: 0.7}, near: Coordinate{Lat: 0.100001, Lng: 0.699999}, far: Coordinate{Lat: 0.1, Lng: 0.699998}},
		{def: Coordinate{Lat: -89.999999, Lng: 179.999999}, near: Coordinate{Lat: -90, Lng: 180}, far: Coordinate{Lat: -89.999997, Lng: 180}},
		{def: Coordinate{Lat: 10.1234014, Lng: 20.5678014}, near: Coordinate{Lat: 10.123402, Lng: 20.567802}, far: Coordinate{Lat: 10.123403, Lng: 20.567801}},
	}
	for _, p := range pairs {
		assert.True(t, p.near.Within(p.def, DefaultPreciseEpsilon), "%v vs %v", p.near, p.def)
		assert.True(t, p.def.Within(p.near, DefaultPreciseEpsilon), "%v vs %v", p.def, p.near)
		assert.False(t, p.far.Within(p.def, DefaultPreciseEpsilon), "%v vs %v", p.far, p.def)
	}
}

func TestActivityLocation_RollbackRestoresLastCommit(t *testing.T) {
	al := NewActivityLocation("al-1", testPlace("Kabul", 34.5, 69.2))
	require.NoError(t, al.SetPreciseLocation(NewPreciseSnapshot(Coordinate{Lat: 34.51, Lng: 69.21}), DefaultPreciseEpsilon))
	al.Commit()
	want, ok := al.LastCommitted()
	require.True(t, ok)

	require.NoError(t, al.ChangeDefaultLocation(testPlace("Herat", 34.35, 62.2)))
	require.NoError(t, al.SetPreciseLocation(NewPreciseSnapshot(Coordinate{Lat: 34.36, Lng: 62.21}), DefaultPreciseEpsilon))
	al.ClearPreciseLocation()
	require.NoError(t, al.ChangeDefaultLocation(testPlace("Balkh", 36.7, 66.9)))

	require.NoError(t, al.Rollback())
	assert.True(t, want.Equal(al.Working()))

	// idempotent
	require.NoError(t, al.Rollback())
	assert.True(t, want.Equal(al.Working()))
}

func TestActivityLocation_RollbackWithoutBaseline(t *testing.T) {
	def := testPlace("Kabul", 34.5, 69.2)
	al := NewActivityLocation("al-1", def)
	require.NoError(t, al.SetPreciseLocation(NewPreciseSnapshot(Coordinate{Lat: 34.51, Lng: 69.21}), DefaultPreciseEpsilon))

	err := al.Rollback()
	assert.ErrorIs(t, err, ErrRollbackInconsistency)

	_, hasPrecise := al.PreciseLocation()
	assert.False(t, hasPrecise)
	assert.True(t, def.Equal(al.DefaultLocation()))
	committed, ok := al.LastCommitted()
	require.True(t, ok)
	assert.True(t, committed.Default.Equal(def))

	assert.NoError(t, al.Rollback())
}

func TestActivityLocation_SetPreciseLocation(t *testing.T) {
	al := NewActivityLocation("al-1", testPlace("Kabul", 34.5, 69.2))

	err := al.SetPreciseLocation(NewPreciseSnapshot(Coordinate{Lat: 34.5, Lng: 69.2}), DefaultPreciseEpsilon)
	assert.ErrorIs(t, err, ErrPreciseMatchesDefault)

	err = al.SetPreciseLocation(testPlace("Herat", 1, 2), DefaultPreciseEpsilon)
	assert.ErrorIs(t, err, ErrSnapshotKind)

	require.NoError(t, al.SetPreciseLocation(NewPreciseSnapshot(Coordinate{Lat: 34.500002, Lng: 69.2}), DefaultPreciseEpsilon))
	assert.Equal(t, Coordinate{Lat: 34.500002, Lng: 69.2}, al.DisplayCoordinate())
}

func TestActivityLocation_Identity(t *testing.T) {
	id := NewTemporaryID()
	assert.True(t, id.IsTemporary())

	al := NewActivityLocation(id, testPlace("Kabul", 34.5, 69.2))
	al.MarkNew()
	assert.True(t, al.IsNew())

	al.AssignPermanentID("2b1f0f5e-0a4e-4c8e-9a51-5e0f0b2c7d11")
	assert.False(t, al.IsNew())
	assert.False(t, al.ID().IsTemporary())

	err := al.ChangeDefaultLocation(NewPreciseSnapshot(Coordinate{Lat: 1, Lng: 1}))
	assert.ErrorIs(t, err, ErrSnapshotKind)
}
