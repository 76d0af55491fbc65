package release

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	seasonEpisodeRe = regexp.MustCompile(`^[Ss](\d{1,2})[ ._-]?[Ee](\d{1,3})$`)
	crossEpisodeRe  = regexp.MustCompile(`^(\d{1,2})[xX](\d{2,3})$`)
	seasonOnlyRe    = regexp.MustCompile(`^[Ss](\d{1,2})$`)
	yearRe          = regexp.MustCompile(`^(19|20)\d{2}$`)
)

// tokens the group heuristic must never claim: trailing fragments of
// hyphenated vocabulary like "Blu-ray" or "WEB-DL".
var notAGroup = map[string]bool{
	"ray": true, "dl": true, "rip": true, "hd": true,
}

// Parse extracts release metadata from a file or folder name by matching
// tokens against known vocabularies. It never fails: a name with no
// recognizable tokens yields an Info whose Title is the whole name (sans
// extension) with separators replaced by spaces.
func Parse(name string) *Info {
	info := &Info{}
	base := filepath.Base(name)

	// Container extension
	if ext := filepath.Ext(base); ext != "" && IsVideoExtension(ext[1:]) {
		info.Container = strings.ToLower(ext[1:])
		base = strings.TrimSuffix(base, ext)
	}

	// Release group: text after the last hyphen, when it looks like a
	// single bare token rather than the tail of a hyphenated vocabulary
	// word (Blu-ray, WEB-DL).
	if idx := strings.LastIndex(base, "-"); idx > 0 {
		cand := strings.TrimSpace(base[idx+1:])
		if cand != "" && !strings.ContainsAny(cand, ". _") && !notAGroup[strings.ToLower(cand)] && !isVocabToken(cand) {
			info.Group = cand
			base = base[:idx]
		}
	}

	toks := tokenize(base)

	// boundary is the index of the first token that matched a vocabulary;
	// everything before it is the title.
	boundary := len(toks)
	seMarker := -1

	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		matched := false

		switch {
		case seasonEpisodeRe.MatchString(tok):
			m := seasonEpisodeRe.FindStringSubmatch(tok)
			info.Season = atoi(m[1])
			info.Episode = atoi(m[2])
			seMarker = i
			matched = true
		case crossEpisodeRe.MatchString(tok):
			m := crossEpisodeRe.FindStringSubmatch(tok)
			info.Season = atoi(m[1])
			info.Episode = atoi(m[2])
			seMarker = i
			matched = true
		case seasonOnlyRe.MatchString(tok) && info.Season == 0:
			m := seasonOnlyRe.FindStringSubmatch(tok)
			info.Season = atoi(m[1])
			seMarker = i
			matched = true
		case strings.EqualFold(tok, "season") && i+1 < len(toks) && isNumber(toks[i+1]):
			info.Season = atoi(toks[i+1])
			seMarker = i
			matched = true
		case yearRe.MatchString(tok) && i > 0 && info.Year == 0:
			info.Year = atoi(tok)
			matched = true
		default:
			key := stripPunct(tok)
			switch {
			case resolutionTags[key] != "" && info.Resolution == "":
				info.Resolution = resolutionTags[key]
				matched = true
			case sourceTags[key] != "" && info.Source == "":
				info.Source = sourceTags[key]
				matched = true
			case videoCodecTags[key] != "" && info.VideoCodec == "":
				info.VideoCodec = videoCodecTags[key]
				matched = true
			case audioCodecTags[key] != "" && info.AudioCodec == "":
				info.AudioCodec = audioCodecTags[key]
				matched = true
			case languageTokens[key] != "" && info.Language == "":
				info.Language = languageTokens[key]
				matched = true
			}
		}

		if matched && i < boundary {
			boundary = i
		}
	}

	info.Title = strings.Join(toks[:boundary], " ")
	if info.Title == "" && len(toks) > 0 {
		info.Title = strings.Join(toks, " ")
	}

	// Tokens between the S/E marker and the next technical marker are the
	// episode title ("Show.S01E02.The.Heist.1080p...").
	if info.Episode > 0 && seMarker >= 0 {
		var ep []string
		for i := seMarker + 1; i < len(toks); i++ {
			if isMarkerToken(toks[i]) {
				break
			}
			ep = append(ep, toks[i])
		}
		info.EpisodeTitle = strings.Join(ep, " ")
	}

	return info
}

// tokenize splits a release name on the conventional separators, keeping
// hyphenated vocabulary words like "Blu-ray" intact.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '_' || r == ' '
	})
}

func isVocabToken(tok string) bool {
	key := stripPunct(tok)
	return resolutionTags[key] != "" || sourceTags[key] != "" ||
		videoCodecTags[key] != "" || audioCodecTags[key] != ""
}

func isMarkerToken(tok string) bool {
	if yearRe.MatchString(tok) || seasonEpisodeRe.MatchString(tok) || crossEpisodeRe.MatchString(tok) {
		return true
	}
	return isVocabToken(tok) || languageTokens[stripPunct(tok)] != ""
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
