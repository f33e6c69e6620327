package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// FormatRuntime renders minutes as "2h 28m".
func FormatRuntime(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatVoteCount abbreviates large counts: 950, 1.2K, 3.4M.
func FormatVoteCount(count int) string {
	switch {
	case count < 1000:
		return fmt.Sprintf("%d", count)
	case count < 1000000:
		return fmt.Sprintf("%.1fK", float64(count)/1000)
	default:
		return fmt.Sprintf("%.1fM", float64(count)/1000000)
	}
}

// FormatMoney renders budget and revenue figures: $950, $12.5 K, $160.0 M.
func FormatMoney(amount int64) string {
	switch {
	case amount < 1000:
		return fmt.Sprintf("$%d", amount)
	case amount < 1000000:
		return fmt.Sprintf("$%.1f K", float64(amount)/1000)
	default:
		return fmt.Sprintf("$%.1f M", float64(amount)/1000000)
	}
}

// FormatRating keeps one decimal; a missing or zero average is "N/A".
func FormatRating(avg *float64) string {
	if avg == nil || *avg == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *avg)
}

func ReleaseYear(date *string) string {
	if date == nil || len(*date) < 4 {
		return "N/A"
	}
	return (*date)[:4]
}

// FormatReleaseDate turns "2010-07-15" into "July 15, 2010".
func FormatReleaseDate(date *string) string {
	if date == nil {
		return "N/A"
	}
	t, err := time.Parse("2006-01-02", *date)
	if err != nil {
		return "N/A"
	}
	return t.Format("January 2, 2006")
}

func RatingLabel(adult bool) string {
	if adult {
		return "R"
	}
	return "PG-13"
}

// Slug lowercases a title and joins its alphanumeric runs with dashes.
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
