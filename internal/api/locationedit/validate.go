package locationedit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/FACorreiaa/go-activity-locations/internal/models"
)

const (
	msgNotReal      = "You must enter a real latitude and longitude."
	msgLatPrecision = "Latitude needs to have 6 real numbers after the decimal"
	msgLngPrecision = "Longitude needs to have 6 real numbers after the decimal"
	msgSameAsPlace  = "You can't set the precise location to be the same as the place"
)

// ValidateCoordinates parses an entered precise location. The checks run in
// order and the first failure wins:
//
//  1. both values parse as finite numbers in range
//  2. rounded to 6 decimals, the pair differs from the default coordinate
//  3. neither rounded value ends in "00"
//  4. the pair lies further than eps from the default coordinate
func ValidateCoordinates(latText, lngText string, def models.Coordinate, eps float64) (models.Coordinate, error) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(lngText), 64)
	if errLat != nil || errLng != nil || !finite(lat) || !finite(lng) ||
		math.Abs(lat) > 90 || math.Abs(lng) > 180 {
		return models.Coordinate{}, validationError(msgNotReal)
	}

	c := models.Coordinate{Lat: lat, Lng: lng}
	if c.SameRounded(def) {
		return models.Coordinate{}, validationError(msgSameAsPlace)
	}

	latFixed, lngFixed := c.Fixed()
	if strings.HasSuffix(latFixed, "00") {
		return models.Coordinate{}, validationError(msgLatPrecision)
	}
	if strings.HasSuffix(lngFixed, "00") {
		return models.Coordinate{}, validationError(msgLngPrecision)
	}

	if c.Within(def, eps) {
		return models.Coordinate{}, validationError(msgSameAsPlace)
	}
	return c, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// ValidateSearchTerm rejects place searches shorter than minChars runes.
func ValidateSearchTerm(term string, minChars int) error {
	if utf8.RuneCountInString(strings.TrimSpace(term)) < minChars {
		return validationError(fmt.Sprintf("Search terms need at least %d characters", minChars))
	}
	return nil
}
