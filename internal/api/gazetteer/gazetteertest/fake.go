// Package gazetteertest provides an in-memory gazetteer.Client for tests.
package gazetteertest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/FACorreiaa/go-activity-locations/internal/api/gazetteer"
	"github.com/FACorreiaa/go-activity-locations/internal/models"
	"github.com/FACorreiaa/go-activity-locations/internal/types"
)

var _ gazetteer.Client = (*Fake)(nil)

var errNotFound = errors.New("not found")

// Gate blocks one call of an operation until released.
type Gate struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

// Entered is closed once the held call is in flight.
func (g *Gate) Entered() <-chan struct{} { return g.entered }

// Release lets the held call return.
func (g *Gate) Release() { g.once.Do(func() { close(g.release) }) }

// Fake is a scriptable gazetteer. The zero value is not usable; call New.
type Fake struct {
	mu       sync.Mutex
	options  map[string][]types.AdminOption
	details  map[string]models.LocationSnapshot
	search   map[string]types.SearchPage
	failures map[string][]error
	gates    map[string][]*Gate
	calls    map[string]int
}

func New() *Fake {
	return &Fake{
		options:  make(map[string][]types.AdminOption),
		details:  make(map[string]models.LocationSnapshot),
		search:   make(map[string]types.SearchPage),
		failures: make(map[string][]error),
		gates:    make(map[string][]*Gate),
		calls:    make(map[string]int),
	}
}

func optionsKey(level types.AdminLevel, parent string) string {
	return fmt.Sprintf("%d/%s", int(level), parent)
}

// AddPlace registers p at every level of the hierarchy and as place detail.
// It returns the detail snapshot.
func (f *Fake) AddPlace(p models.Place) models.LocationSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.addOption(types.AdminLevelRegion, "", types.AdminOption{Key: p.RegionName, Name: p.RegionName})
	f.addOption(types.AdminLevelMunicipal, p.RegionName, types.AdminOption{Key: p.MunicipalName, Name: p.MunicipalName})
	f.addOption(types.AdminLevelPlace, p.MunicipalName, types.AdminOption{Key: p.GazetteerID, Name: p.PlaceName, GazetteerID: p.GazetteerID})

	snap := models.NewPlaceSnapshot(p)
	f.details[p.GazetteerID] = snap
	return snap
}

// SetAdminOptions replaces the options listed under parent at level.
func (f *Fake) SetAdminOptions(level types.AdminLevel, parent string, opts ...types.AdminOption) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.options[optionsKey(level, parent)] = opts
}

func (f *Fake) SetDetail(snap models.LocationSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.details[snap.GazetteerID()] = snap
}

// SetSearch scripts the page returned for term, regardless of page number.
func (f *Fake) SetSearch(term string, page types.SearchPage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.search[term] = page
}

// FailNext makes the next call of op return err wrapped as a lookup failure.
func (f *Fake) FailNext(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = append(f.failures[op], err)
}

// Hold makes the next call of op block until the returned gate is released.
func (f *Fake) Hold(op string) *Gate {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := &Gate{entered: make(chan struct{}), release: make(chan struct{})}
	f.gates[op] = append(f.gates[op], g)
	return g
}

// Calls returns how many times op was invoked.
func (f *Fake) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *Fake) ListAdminOptions(ctx context.Context, level types.AdminLevel, parentKey string) ([]types.AdminOption, error) {
	if err := f.enter(ctx, gazetteer.OpAdminOptions); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.AdminOption(nil), f.options[optionsKey(level, parentKey)]...), nil
}

func (f *Fake) SearchPlaces(ctx context.Context, term string, page int) (types.SearchPage, error) {
	if err := f.enter(ctx, gazetteer.OpSearch); err != nil {
		return types.SearchPage{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.search[term]
	p.Page = page
	return p, nil
}

func (f *Fake) GetPlaceDetail(ctx context.Context, gazetteerID string) (models.LocationSnapshot, error) {
	if err := f.enter(ctx, gazetteer.OpPlaceDetail); err != nil {
		return models.LocationSnapshot{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	snap, ok := f.details[gazetteerID]
	if !ok {
		return models.LocationSnapshot{}, gazetteer.NewLookupError(gazetteer.OpPlaceDetail, fmt.Errorf("%s: %w", gazetteerID, errNotFound))
	}
	return snap, nil
}

func (f *Fake) addOption(level types.AdminLevel, parent string, opt types.AdminOption) {
	key := optionsKey(level, parent)
	for _, o := range f.options[key] {
		if o.Key == opt.Key {
			return
		}
	}
	f.options[key] = append(f.options[key], opt)
}

// enter counts the call, applies scripted failures and blocks on gates.
func (f *Fake) enter(ctx context.Context, op string) error {
	f.mu.Lock()
	f.calls[op]++
	var gate *Gate
	if gs := f.gates[op]; len(gs) > 0 {
		gate, f.gates[op] = gs[0], gs[1:]
	}
	var failure error
	if fs := f.failures[op]; len(fs) > 0 {
		failure, f.failures[op] = fs[0], fs[1:]
	}
	f.mu.Unlock()

	if gate != nil {
		close(gate.entered)
		select {
		case <-gate.release:
		case <-ctx.Done():
			return gazetteer.NewLookupError(op, ctx.Err())
		}
	}
	if failure != nil {
		return gazetteer.NewLookupError(op, failure)
	}
	return nil
}
