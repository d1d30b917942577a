package handler

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tcassidy/brotherhood-data/internal/model"
)

// GroupSearchFilter is the parsed query for the i-group search endpoint.
// Geographic filtering happens in memory after the SQL fetch: the dataset
// is small (hundreds of groups) and the schedule fields are free text.
type GroupSearchFilter struct {
	Lat      *float64
	Lng      *float64
	RadiusKM float64
	Day      string
	// Before/After bound the meeting start time, minutes since midnight.
	Before *int
	After  *int
}

// IGroupResult is an i-group plus its distance from the search point.
type IGroupResult struct {
	model.IGroup
	DistanceKM *float64 `json:"distance_km,omitempty"`
}

const earthRadiusKM = 6371.0

// haversineKM computes the great-circle distance between two points.
func haversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

var meetingTimeRe = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)

// parseMeetingTime extracts the meeting start from a schedule description
// ("Weekly on Monday at 7:00 PM" -> 19*60). Returns ok=false when the
// description has no recognizable time clause.
func parseMeetingTime(desc string) (minutes int, ok bool) {
	m := meetingTimeRe.FindStringSubmatch(desc)
	if m == nil {
		return 0, false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return 0, false
	}
	min := 0
	if m[2] != "" {
		if min, err = strconv.Atoi(m[2]); err != nil || min > 59 {
			return 0, false
		}
	}
	switch strings.ToLower(m[3]) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return hour*60 + min, true
}

// matchesDay reports whether the schedule description mentions the given
// weekday.
func matchesDay(desc, day string) bool {
	if day == "" {
		return true
	}
	return strings.Contains(strings.ToLower(desc), strings.ToLower(strings.TrimSpace(day)))
}

// FilterIGroups applies the in-memory post-filter: day, meeting-time
// bounds, and radius. When a search point is given, results carry their
// distance and come back nearest-first; otherwise input order is kept.
func FilterIGroups(groups []model.IGroup, f GroupSearchFilter) []IGroupResult {
	results := []IGroupResult{}
	for _, g := range groups {
		desc := ""
		if g.ScheduleDescription != nil {
			desc = *g.ScheduleDescription
		}

		if !matchesDay(desc, f.Day) {
			continue
		}
		if f.Before != nil || f.After != nil {
			start, ok := parseMeetingTime(desc)
			if !ok {
				continue
			}
			if f.Before != nil && start > *f.Before {
				continue
			}
			if f.After != nil && start < *f.After {
				continue
			}
		}

		res := IGroupResult{IGroup: g}
		if f.Lat != nil && f.Lng != nil {
			if g.Latitude == nil || g.Longitude == nil {
				continue
			}
			d := haversineKM(*f.Lat, *f.Lng, *g.Latitude, *g.Longitude)
			if f.RadiusKM > 0 && d > f.RadiusKM {
				continue
			}
			res.DistanceKM = &d
		}
		results = append(results, res)
	}

	if f.Lat != nil && f.Lng != nil {
		sort.SliceStable(results, func(i, j int) bool {
			return *results[i].DistanceKM < *results[j].DistanceKM
		})
	}
	return results
}

// parseClock converts "19:30" or "7:30 PM" style query values to minutes
// since midnight.
func parseClock(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	// Reuse the schedule parser by prefixing the "at" clause it expects.
	if minutes, ok := parseMeetingTime("at " + v); ok {
		return minutes, true
	}
	return 0, false
}

// parseFloat is a tolerant query-param float parser.
func parseFloat(v string) *float64 {
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	return &f
}
