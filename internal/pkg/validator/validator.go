package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // timezone validation must not depend on the host zoneinfo
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap keys messages by field. The first message for a field wins.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		if _, exists := result[err.Field]; exists {
			continue
		}
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func IsValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidTime checks a time of day in HH:MM format and returns minutes since midnight.
func IsValidTime(timeStr string) (int, bool) {
	if !clockRegex.MatchString(timeStr) {
		return 0, false
	}
	hours, _ := strconv.Atoi(timeStr[:2])
	minutes, _ := strconv.Atoi(timeStr[3:])
	return hours*60 + minutes, true
}

// IsValidTimezone checks an IANA timezone name such as "America/New_York".
func IsValidTimezone(name string) (*time.Location, bool) {
	if IsEmpty(name) {
		return nil, false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, false
	}
	return loc, true
}

// localDateTimeLayouts are the wall-clock formats accepted for absence requests.
var localDateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseLocalDateTime interprets a wall-clock datetime (no offset) in loc.
func ParseLocalDateTime(value string, loc *time.Location) (time.Time, bool) {
	for _, layout := range localDateTimeLayouts {
		t, err := time.ParseInLocation(layout, strings.TrimSpace(value), loc)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
