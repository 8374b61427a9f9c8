package gazetteer

import (
	"context"
	"errors"
	"fmt"

	"github.com/FACorreiaa/go-activity-locations/internal/models"
	"github.com/FACorreiaa/go-activity-locations/internal/types"
)

// ErrLookupFailed wraps every failure reported by a Client.
var ErrLookupFailed = errors.New("gazetteer lookup failed")

// Operation names, used for errors, metrics and test doubles.
const (
	OpAdminOptions = "admin_options"
	OpSearch       = "search"
	OpPlaceDetail  = "place_detail"
)

// placeholderOption is the gazetteer's marker for not-yet-named entries.
const placeholderOption = "TBD"

// Client resolves hierarchical place options and place detail.
type Client interface {
	// ListAdminOptions lists the children of parentKey at level. Region
	// options take an empty parentKey.
	ListAdminOptions(ctx context.Context, level types.AdminLevel, parentKey string) ([]types.AdminOption, error)
	// SearchPlaces runs a free-text search. page is 1-based.
	SearchPlaces(ctx context.Context, term string, page int) (types.SearchPage, error)
	GetPlaceDetail(ctx context.Context, gazetteerID string) (models.LocationSnapshot, error)
}

// LookupError reports which gazetteer operation failed. It matches both
// ErrLookupFailed and the underlying cause.
type LookupError struct {
	Op  string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrLookupFailed, e.Op, e.Err)
}

func (e *LookupError) Unwrap() []error { return []error{ErrLookupFailed, e.Err} }

func NewLookupError(op string, cause error) error {
	return &LookupError{Op: op, Err: cause}
}

func dropPlaceholders(opts []types.AdminOption) []types.AdminOption {
	out := opts[:0]
	for _, o := range opts {
		if o.Name == placeholderOption {
			continue
		}
		out = append(out, o)
	}
	return out
}
