package release

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func lower(s string) string { return strings.ToLower(s) }

// stripPunct lowercases s and removes everything that is not a letter or
// digit, so "Blu-ray", "BLURAY" and "blu.ray" all key identically.
func stripPunct(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sourceTags maps punctuation-stripped source tokens to canonical tags.
var sourceTags = map[string]string{
	"bluray":   "BluRay",
	"bd":       "BluRay",
	"bdmv":     "BluRay",
	"bdrip":    "BDRip",
	"brrip":    "BDRip",
	"remux":    "Remux",
	"bdremux":  "Remux",
	"webdl":    "WEB-DL",
	"web":      "WEB-DL",
	"webrip":   "WEBRip",
	"hdtv":     "HDTV",
	"pdtv":     "HDTV",
	"dvd":      "DVD",
	"dvdrip":   "DVDRip",
	"hddvd":    "HD-DVD",
	"cam":      "CAM",
	"telesync": "TS",
	"ts":       "TS",
}

// NormalizeSource maps a source token to its canonical tag. Canonical tags
// map to themselves, so normalization is idempotent. Unknown tokens pass
// through unchanged (custom values stay usable).
func NormalizeSource(s string) string {
	if canon, ok := sourceTags[stripPunct(s)]; ok {
		return canon
	}
	return s
}

// videoCodecTags maps codec tokens to canonical tags.
var videoCodecTags = map[string]string{
	"x264": "x264",
	"h264": "x264",
	"avc":  "x264",
	"x265": "x265",
	"h265": "x265",
	"hevc": "x265",
	"av1":  "AV1",
	"vp9":  "VP9",
	"xvid": "XviD",
	"divx": "XviD",
}

// NormalizeVideoCodec maps a video codec token to its canonical tag.
func NormalizeVideoCodec(s string) string {
	if canon, ok := videoCodecTags[stripPunct(s)]; ok {
		return canon
	}
	return s
}

// audioCodecTags maps audio codec tokens to canonical tags.
var audioCodecTags = map[string]string{
	"aac":     "AAC",
	"ac3":     "AC3",
	"dd":      "AC3",
	"dd51":    "AC3",
	"eac3":    "EAC3",
	"ddp":     "EAC3",
	"ddp51":   "EAC3",
	"dts":     "DTS",
	"dtshd":   "DTS-HD",
	"dtshdma": "DTS-HD",
	"truehd":  "TrueHD",
	"atmos":   "Atmos",
	"flac":    "FLAC",
	"opus":    "Opus",
	"mp3":     "MP3",
}

// NormalizeAudioCodec maps an audio codec token to its canonical tag.
func NormalizeAudioCodec(s string) string {
	if canon, ok := audioCodecTags[stripPunct(s)]; ok {
		return canon
	}
	return s
}

// resolutionTags maps resolution tokens to the conventional height tag.
var resolutionTags = map[string]string{
	"2160p": "2160p",
	"4k":    "2160p",
	"uhd":   "2160p",
	"1440p": "1440p",
	"1080p": "1080p",
	"1080i": "1080p",
	"fhd":   "1080p",
	"720p":  "720p",
	"hd":    "720p",
	"576p":  "576p",
	"480p":  "480p",
	"sd":    "480p",
}

// NormalizeResolution maps a resolution token to its canonical tag.
func NormalizeResolution(s string) string {
	if canon, ok := resolutionTags[stripPunct(s)]; ok {
		return canon
	}
	return s
}

// languageTokens are filename language markers mapped to display names.
var languageTokens = map[string]string{
	"english":  "English",
	"french":   "French",
	"german":   "German",
	"spanish":  "Spanish",
	"italian":  "Italian",
	"japanese": "Japanese",
	"korean":   "Korean",
	"chinese":  "Chinese",
	"russian":  "Russian",
	"multi":    "Multi",
	"vostfr":   "French",
	"nordic":   "Nordic",
}

// CleanTitle normalizes a title for fuzzy comparison: lowercase, accents
// stripped, punctuation removed, leading articles dropped, whitespace
// collapsed. Used for ranking metadata search results, never for display.
func CleanTitle(title string) string {
	s := strings.ToLower(title)
	s = removeAccents(s)

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "'", "")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	s = b.String()

	for _, art := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, art) {
			s = strings.TrimPrefix(s, art)
			break
		}
	}

	return strings.Join(strings.Fields(s), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, _ := transform.String(t, s)
	return out
}
