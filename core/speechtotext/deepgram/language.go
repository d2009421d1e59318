package deepgram

import "strings"

// regionalLanguages lists locales Deepgram accepts with their region subtag.
// Every other locale is reduced to its primary language.
var regionalLanguages = map[string]struct{}{
	"en-US": {}, "en-GB": {}, "en-AU": {}, "en-IN": {}, "en-NZ": {},
	"es-419": {}, "pt-BR": {}, "pt-PT": {}, "fr-CA": {},
	"zh-CN": {}, "zh-TW": {}, "de-CH": {}, "nl-BE": {},
}

func toDeepgramLanguage(locale string) string {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return "en-US"
	}
	if _, ok := regionalLanguages[locale]; ok {
		return locale
	}
	language, _, _ := strings.Cut(locale, "-")
	return strings.ToLower(language)
}
