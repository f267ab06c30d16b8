package papertitle

import (
	"regexp"
	"strings"
)

var (
	tokenNoisePattern   = regexp.MustCompile(`(?i)[^a-z0-9-]`)
	catTokenPattern     = regexp.MustCompile(`^cat-?\d$`)
	examTokenPattern    = regexp.MustCompile(`^(?:fat|fat\d|quiz|mid|midterm|cia)$`)
	fillerTokenPattern  = regexp.MustCompile(`^(?:qp|paper|select)$`)
	slotTokenPattern    = regexp.MustCompile(`^[a-g]\d$`)
	yearRangeToken      = regexp.MustCompile(`^(?:20)?\d{2}-(?:20)?\d{2}$`)
	bareYearPattern     = regexp.MustCompile(`^20\d{2}$`)
	slotCodeAnywhere    = regexp.MustCompile(`(?i)[A-G][1-2]`)
	compositeSlotMarker = regexp.MustCompile(`[()+]`)
)

func normalizeToken(token string) string {
	return strings.ToLower(tokenNoisePattern.ReplaceAllString(token, ""))
}

// isMetadataToken reports whether a single token carries exam, slot, year or
// filler information rather than course text.
func isMetadataToken(token string) bool {
	normalized := normalizeToken(token)
	switch {
	case normalized == "":
		return true
	case catTokenPattern.MatchString(normalized),
		examTokenPattern.MatchString(normalized),
		fillerTokenPattern.MatchString(normalized),
		slotTokenPattern.MatchString(normalized),
		yearRangeToken.MatchString(normalized),
		bareYearPattern.MatchString(normalized):
		return true
	}
	return isCompositeSlot(token)
}

// isCompositeSlot matches slot expressions like "(A1+B2)" or "A1+TA1".
func isCompositeSlot(token string) bool {
	return compositeSlotMarker.MatchString(token) && slotCodeAnywhere.MatchString(token)
}

func isMetadataLabel(token string) bool {
	switch normalizeToken(token) {
	case "slot", "year":
		return true
	}
	return false
}

func isExamLabel(token string) bool {
	switch normalizeToken(token) {
	case "cat", "fat", "mid", "midterm", "quiz", "cia":
		return true
	}
	return false
}

func isExamNumber(token string) bool {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, token)
	return digits == "1" || digits == "2"
}

// isMetadataPair reports whether token and the one following it form a
// two-token metadata phrase such as "Slot G2" or "CAT 1".
func isMetadataPair(token, next string) bool {
	if isMetadataLabel(token) && isMetadataToken(next) {
		return true
	}
	return isExamLabel(token) && isExamNumber(next)
}

// stripLeading drops metadata tokens and pairs from the front of tokens and
// returns the remainder.
func stripLeading(tokens []string) []string {
	i := 0
	for i < len(tokens) {
		switch {
		case i+1 < len(tokens) && isMetadataPair(tokens[i], tokens[i+1]):
			i += 2
		case isMetadataToken(tokens[i]):
			i++
		default:
			return tokens[i:]
		}
	}
	return nil
}

// stripTrailing drops metadata pairs and tokens from the back of tokens and
// joins what is left. Pairs are checked first so a label such as "Slot" goes
// with its value.
func stripTrailing(tokens []string) string {
	end := len(tokens)
	for end > 0 {
		switch {
		case end > 1 && isMetadataPair(tokens[end-2], tokens[end-1]):
			end -= 2
		case isMetadataToken(tokens[end-1]):
			end--
		default:
			return strings.Join(tokens[:end], " ")
		}
	}
	return ""
}

// StripMetadata trims metadata tokens from both ends of title, first from the
// front and then from the back. Interior tokens are kept.
func StripMetadata(title string) string {
	return stripTrailing(stripLeading(strings.Fields(title)))
}
