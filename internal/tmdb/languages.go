package tmdb

// languageNames maps ISO 639-1 codes to display names. Unmapped codes pass
// through as the raw code so nothing is lost for unusual languages.
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"cn": "Chinese",
	"ru": "Russian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"sv": "Swedish",
	"no": "Norwegian",
	"da": "Danish",
	"fi": "Finnish",
	"pl": "Polish",
	"tr": "Turkish",
	"ar": "Arabic",
	"hi": "Hindi",
	"th": "Thai",
	"cs": "Czech",
	"hu": "Hungarian",
	"el": "Greek",
	"he": "Hebrew",
}

// LanguageName resolves a language code to its display name.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}
