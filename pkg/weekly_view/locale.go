package weekly_view

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const invalidDateLabel = "Invalid Date"

// Locale carries the names and label layout used for week day labels and the
// language tag used for collating user names.
type Locale struct {
	Tag      language.Tag
	weekdays [7]string
	months   [12]string
	label    func(weekday string, month string, day int) string
}

var English = Locale{
	Tag:      language.AmericanEnglish,
	weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	months:   [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	label: func(weekday string, month string, day int) string {
		return fmt.Sprintf("%s, %s %d", weekday, month, day)
	},
}

var German = Locale{
	Tag:      language.German,
	weekdays: [7]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."},
	months:   [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
	label: func(weekday string, month string, day int) string {
		return fmt.Sprintf("%s, %d. %s", weekday, day, month)
	},
}

var Polish = Locale{
	Tag:      language.Polish,
	weekdays: [7]string{"niedz.", "pon.", "wt.", "śr.", "czw.", "pt.", "sob."},
	months:   [12]string{"sty", "lut", "mar", "kwi", "maj", "cze", "lip", "sie", "wrz", "paź", "lis", "gru"},
	label: func(weekday string, month string, day int) string {
		return fmt.Sprintf("%s, %d %s", weekday, day, month)
	},
}

var supportedLocales = []Locale{English, German, Polish}

var localeMatcher = language.NewMatcher([]language.Tag{English.Tag, German.Tag, Polish.Tag})

// ParseLocale returns the supported locale closest to the given BCP 47 tag.
// Unknown or malformed tags fall back to English.
func ParseLocale(tag string) Locale {
	if tag == "" {
		return English
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		log.Warnf("invalid locale %q, falling back to %s: %v", tag, English.Tag, err)
		return English
	}
	_, idx, confidence := localeMatcher.Match(parsed)
	if confidence == language.No {
		log.Debugf("locale %s is not supported, falling back to %s", parsed, English.Tag)
		return English
	}
	return supportedLocales[idx]
}

// FullLabel formats a date as a short weekday, month and day of month.
func (l Locale) FullLabel(date time.Time) string {
	if l.label == nil {
		return English.FullLabel(date)
	}
	return l.label(l.weekdays[date.Weekday()], l.months[date.Month()-1], date.Day())
}

// collator returns a fresh case-insensitive collator. Collators are not safe
// for concurrent use, so every build gets its own.
func (l Locale) collator() *collate.Collator {
	return collate.New(l.Tag, collate.IgnoreCase)
}
