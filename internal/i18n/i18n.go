// Package i18n holds the game copy for every supported display language and
// resolves a requested language to one of them.
package i18n

import (
	"maps"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// PreferenceKey is the single key the display language is stored under.
	PreferenceKey = "language"

	DefaultLanguage = "zh"
)

// Supported lists the display languages; the first one is the fallback.
var Supported = []language.Tag{language.Chinese, language.English}

var matcher = language.NewMatcher(Supported)

func init() {
	for tag, msgs := range catalogs {
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}

// Match resolves a language code or an Accept-Language header value to a
// supported tag. Anything unknown falls back to Chinese.
func Match(requested string) language.Tag {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return Supported[0]
	}
	tags, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(tags) == 0 {
		return Supported[0]
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

// Code is the short code stored as the user's preference.
func Code(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// IsSupported reports whether code names a supported language exactly.
func IsSupported(code string) bool {
	for _, tag := range Supported {
		if Code(tag) == code {
			return true
		}
	}
	return false
}

func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// T formats key in the given language.
func T(tag language.Tag, key string, args ...any) string {
	return Printer(tag).Sprintf(key, args...)
}

// Catalog returns the raw message templates for tag.
func Catalog(tag language.Tag) map[string]string {
	msgs, ok := catalogs[tag]
	if !ok {
		msgs = catalogs[Supported[0]]
	}
	return maps.Clone(msgs)
}
