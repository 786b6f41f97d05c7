package models

import (
	"strconv"
	"strings"
)

// Document maps a day-number string ("1".."75") to that day's record.
// The whole mapping is persisted as one JSON file.
type Document map[string]*DayRecord

// Photo is one uploaded image attached to a day. ID is a stable identifier
// assigned at upload time; Path is document-relative (images/<file>) so it is
// directly usable as a web resource URL. IsCover marks the calendar-cell
// thumbnail; a non-empty photo list has exactly one cover.
type Photo struct {
	ID      string `json:"id,omitempty"`
	Path    string `json:"path"`
	IsCover bool   `json:"isCover"`
}

// DayRecord holds everything tracked for one challenge day. Nullable fields
// are pointers: once a day is touched they are persisted as explicit nulls,
// never omitted.
type DayRecord struct {
	Mood            *string  `json:"mood"`
	DietRating      *float64 `json:"diet_rating"`
	SleepHours      *float64 `json:"sleep_hours"`
	CaloriesBurned  *int     `json:"calories_burned"`
	StepsTaken      *int     `json:"steps_taken"`
	StrengthWorkout *string  `json:"strength_workout"`
	CardioWorkout   *string  `json:"cardio_workout"`
	AdditionalNotes *string  `json:"additional_notes"`
	Photos          []Photo  `json:"photos"`
}

// Day returns the record for a day number, or nil if the day was never saved.
func (d Document) Day(day int) *DayRecord {
	return d[strconv.Itoa(day)]
}

// Ensure returns the record for a day number, creating an empty one in the
// document if the day was never saved.
func (d Document) Ensure(day int) *DayRecord {
	key := strconv.Itoa(day)
	rec := d[key]
	if rec == nil {
		rec = &DayRecord{Photos: []Photo{}}
		d[key] = rec
	}
	return rec
}

// HasContent reports whether the record holds anything at all: any non-null
// field or at least one photo. Drives the calendar cell indicator.
func (r *DayRecord) HasContent() bool {
	if r == nil {
		return false
	}
	if len(r.Photos) > 0 {
		return true
	}
	for _, s := range []*string{r.Mood, r.StrengthWorkout, r.CardioWorkout, r.AdditionalNotes} {
		if s != nil && *s != "" {
			return true
		}
	}
	return r.DietRating != nil || r.SleepHours != nil ||
		r.CaloriesBurned != nil || r.StepsTaken != nil
}

// Cover returns the designated cover photo, falling back to the first photo
// when none is explicitly marked. ok is false for an empty list.
func (r *DayRecord) Cover() (photo Photo, ok bool) {
	if r == nil || len(r.Photos) == 0 {
		return Photo{}, false
	}
	for _, p := range r.Photos {
		if p.IsCover {
			return p, true
		}
	}
	return r.Photos[0], true
}

// DayFields carries the raw form values of one save request before coercion.
// Every field is overwritten on save; blank or unparsable values become null.
type DayFields struct {
	Mood            string
	DietRating      string
	SleepHours      string
	CaloriesBurned  string
	StepsTaken      string
	StrengthWorkout string
	CardioWorkout   string
	AdditionalNotes string
}

// Apply overwrites all non-photo fields of rec with the coerced values.
// The photo list is left untouched.
func (f DayFields) Apply(rec *DayRecord) {
	rec.Mood = optString(f.Mood)
	rec.DietRating = optFloat(f.DietRating)
	rec.SleepHours = optFloat(f.SleepHours)
	rec.CaloriesBurned = optInt(f.CaloriesBurned)
	rec.StepsTaken = optInt(f.StepsTaken)
	rec.StrengthWorkout = optString(f.StrengthWorkout)
	rec.CardioWorkout = optString(f.CardioWorkout)
	rec.AdditionalNotes = optString(f.AdditionalNotes)
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func optInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
