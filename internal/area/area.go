// Package area validates alert area codes and builds alert feed URLs for them.
package area

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public National Weather Service API.
const DefaultBaseURL = "https://api.weather.gov"

var (
	ErrEmptyArea   = errors.New("area code cannot be empty")
	ErrUnknownArea = errors.New("unknown area code")
)

var names = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AS": "American Samoa", "AZ": "Arizona",
	"AR": "Arkansas", "CA": "California", "CO": "Colorado", "CT": "Connecticut",
	"DE": "Delaware", "DC": "District of Columbia", "FL": "Florida", "GA": "Georgia",
	"GU": "Guam", "HI": "Hawaii", "ID": "Idaho", "IL": "Illinois",
	"IN": "Indiana", "IA": "Iowa", "KS": "Kansas", "KY": "Kentucky",
	"LA": "Louisiana", "ME": "Maine", "MD": "Maryland", "MA": "Massachusetts",
	"MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi", "MO": "Missouri",
	"MT": "Montana", "NE": "Nebraska", "NV": "Nevada", "NH": "New Hampshire",
	"NJ": "New Jersey", "NM": "New Mexico", "NY": "New York", "NC": "North Carolina",
	"ND": "North Dakota", "MP": "Northern Mariana Islands", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "PR": "Puerto Rico", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VI": "U.S. Virgin Islands", "VA": "Virginia",
	"WA": "Washington", "WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
	"PW": "Palau", "FM": "Federated States of Micronesia", "MH": "Marshall Islands",

	// marine areas
	"AM": "Western North Atlantic Ocean",
	"AN": "Western North Atlantic Ocean and along U.S. East Coast",
	"GM": "Gulf of Mexico",
	"LC": "Lake St. Clair",
	"LE": "Lake Erie",
	"LH": "Lake Huron",
	"LM": "Lake Michigan",
	"LO": "Lake Ontario",
	"LS": "Lake Superior",
	"PH": "Central Pacific Ocean including Hawaiian waters",
	"PK": "North Pacific Ocean near Alaska",
	"PM": "Western Pacific Ocean including Mariana Island waters",
	"PS": "South Central Pacific Ocean including American Samoa waters",
	"PZ": "Eastern North Pacific Ocean and along U.S. West Coast",
	"SL": "St. Lawrence River",
}

// Normalize trims and upper-cases code and checks that it names a known area.
func Normalize(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return "", ErrEmptyArea
	}

	if _, ok := names[normalized]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownArea, code)
	}

	return normalized, nil
}

// Name returns the human readable name of a normalized code, or the code itself.
func Name(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

// URL returns the active alerts endpoint of base for a normalized area code.
func URL(base, code string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %s: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid base URL %s: missing scheme or host", base)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/alerts/active"
	u.RawQuery = url.Values{"area": []string{code}}.Encode()

	return u.String(), nil
}
