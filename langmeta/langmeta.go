// Package langmeta provides display metadata (native names and emoji
// flags) for locale codes shown in status output and apply reports.
// Locale codes themselves stay free-form opaque strings everywhere else
// in the engine; this registry is presentation only.
package langmeta

import "strings"

// Meta describes locale display metadata.
type Meta struct {
	Name string
	Flag string
}

// Registry contains canonical locale metadata. Variants are resolved in
// Resolve via normalization and base-language fallback.
var Registry = map[string]Meta{
	"ar":      {Name: "العربية", Flag: "🇸🇦"},
	"cs":      {Name: "Čeština", Flag: "🇨🇿"},
	"da":      {Name: "Dansk", Flag: "🇩🇰"},
	"de":      {Name: "Deutsch", Flag: "🇩🇪"},
	"el":      {Name: "Ελληνικά", Flag: "🇬🇷"},
	"en":      {Name: "English", Flag: "🇺🇸"},
	"en-GB":   {Name: "English (UK)", Flag: "🇬🇧"},
	"es":      {Name: "Español", Flag: "🇪🇸"},
	"es-MX":   {Name: "Español (México)", Flag: "🇲🇽"},
	"fi":      {Name: "Suomi", Flag: "🇫🇮"},
	"fr":      {Name: "Français", Flag: "🇫🇷"},
	"fr-CA":   {Name: "Français (Canada)", Flag: "🇨🇦"},
	"he":      {Name: "עברית", Flag: "🇮🇱"},
	"hi":      {Name: "हिन्दी", Flag: "🇮🇳"},
	"hu":      {Name: "Magyar", Flag: "🇭🇺"},
	"id":      {Name: "Bahasa Indonesia", Flag: "🇮🇩"},
	"it":      {Name: "Italiano", Flag: "🇮🇹"},
	"ja":      {Name: "日本語", Flag: "🇯🇵"},
	"ko":      {Name: "한국어", Flag: "🇰🇷"},
	"nb":      {Name: "Norsk bokmål", Flag: "🇳🇴"},
	"nl":      {Name: "Nederlands", Flag: "🇳🇱"},
	"pl":      {Name: "Polski", Flag: "🇵🇱"},
	"pt":      {Name: "Português", Flag: "🇵🇹"},
	"pt-BR":   {Name: "Português (Brasil)", Flag: "🇧🇷"},
	"ro":      {Name: "Română", Flag: "🇷🇴"},
	"ru":      {Name: "Русский", Flag: "🇷🇺"},
	"sv":      {Name: "Svenska", Flag: "🇸🇪"},
	"th":      {Name: "ไทย", Flag: "🇹🇭"},
	"tr":      {Name: "Türkçe", Flag: "🇹🇷"},
	"uk":      {Name: "Українська", Flag: "🇺🇦"},
	"vi":      {Name: "Tiếng Việt", Flag: "🇻🇳"},
	"zh":      {Name: "中文", Flag: "🇨🇳"},
	"zh-Hans": {Name: "简体中文", Flag: "🇨🇳"},
	"zh-Hant": {Name: "繁體中文", Flag: "🇹🇼"},
}

func canonicalize(locale string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 && len(parts[1]) == 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// Resolve returns best-effort display metadata for a locale code,
// supporting variants like pt_BR and pt-BR and base-language fallback.
// Unknown codes come back as themselves with no flag.
func Resolve(locale string) Meta {
	if m, ok := Registry[locale]; ok {
		return m
	}
	normalized := canonicalize(locale)
	if m, ok := Registry[normalized]; ok {
		return m
	}
	if parts := strings.SplitN(normalized, "-", 2); len(parts) == 2 {
		if m, ok := Registry[parts[0]]; ok {
			return m
		}
	}
	return Meta{Name: locale}
}
