package dataprocessing

import (
	"fmt"
	"strconv"
	"time"
)

// Locale selects the display labels used for weekday buckets
type Locale string

const (
	LocaleVietnamese Locale = "vi"
	LocaleEnglish    Locale = "en"
)

// WeekdayOrder is the fixed display order of weekday buckets
var WeekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

var vietnameseWeekdays = map[time.Weekday]string{
	time.Monday:    "Thứ 2",
	time.Tuesday:   "Thứ 3",
	time.Wednesday: "Thứ 4",
	time.Thursday:  "Thứ 5",
	time.Friday:    "Thứ 6",
	time.Saturday:  "Thứ 7",
	time.Sunday:    "CN",
}

// ParseLocale maps a config value to a Locale, defaulting to Vietnamese
func ParseLocale(s string) Locale {
	if Locale(s) == LocaleEnglish {
		return LocaleEnglish
	}
	return LocaleVietnamese
}

// WeekdayLabel returns the display name of d in the locale
func (l Locale) WeekdayLabel(d time.Weekday) string {
	if l == LocaleEnglish {
		return d.String()
	}
	return vietnameseWeekdays[d]
}

// MonthLabel formats a calendar month as "T<month>"
func MonthLabel(month int) string {
	return "T" + strconv.Itoa(month)
}

// HourLabel formats an hour of day as a "HH:00-HH:59" range
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00-%02d:59", hour, hour)
}
