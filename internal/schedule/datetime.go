package schedule

import "time"

// WAT is the fixed display and comparison zone for all session times
// (West Africa Time, UTC+1, no DST).
var WAT = loadWAT()

func loadWAT() *time.Location {
	loc, err := time.LoadLocation("Africa/Lagos")
	if err != nil {
		return time.FixedZone("WAT", 60*60)
	}
	return loc
}

// Normalize converts a stored timestamp into the target zone. The value
// may be a time.Time, a *time.Time, or an ISO-8601 string. The second
// return value reports whether a usable instant could be produced; parse
// failures and unsupported types yield ok=false, never an error or panic.
func Normalize(v any, loc *time.Location) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.In(loc), true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return t.In(loc), true
	case string:
		parsed, err := parseISO(t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed.In(loc), true
	default:
		return time.Time{}, false
	}
}

// parseISO accepts the ISO-8601 variants the backend store emits:
// RFC 3339 with or without fractional seconds, and the offset-less
// form which is taken as WAT.
func parseISO(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
	}

	var lastErr error
	for _, layout := range layouts {
		if layout == "2006-01-02T15:04:05" {
			if t, err := time.ParseInLocation(layout, s, WAT); err == nil {
				return t, nil
			} else {
				lastErr = err
			}
			continue
		}
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// FormatWAT renders an instant for display in the fixed zone
func FormatWAT(t time.Time) string {
	return t.In(WAT).Format("Mon, 02 Jan 2006 15:04")
}
