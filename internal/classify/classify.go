// Package classify holds the heuristic utterance classifiers used by
// the dialogue engine. Both are pure functions over fixed token sets so
// they can be tested independently of the state machine.
package classify

import "strings"

// affirmativeTokens are matched as case-insensitive substrings anywhere
// in the utterance. No negation handling: "yes, actually no" matches.
var affirmativeTokens = []string{
	"yes", "yeah", "yup", "sure", "ok", "okay",
	"i agree", "go ahead", "fine", "yes please",
}

// hedgingPhrases mark answers that claim familiarity without evidence.
var hedgingPhrases = []string{
	"i know", "i'm familiar", "i used to", "i learned",
}

// minSubstantiveWords is the word count below which an answer is
// considered too short to score without a concrete example.
const minSubstantiveWords = 12

// Affirmative reports whether the utterance reads as consent.
// Empty text is never affirmative.
func Affirmative(text string) bool {
	if text == "" {
		return false
	}
	t := strings.ToLower(text)
	for _, tok := range affirmativeTokens {
		if strings.Contains(t, tok) {
			return true
		}
	}
	return false
}

// NeedsExample reports whether the utterance is too short or too vague
// to accept as a final answer, in which case the interviewer asks for a
// concrete example instead of scoring it.
func NeedsExample(text string) bool {
	if text == "" {
		return true
	}
	t := strings.ToLower(text)
	if len(strings.Fields(t)) < minSubstantiveWords {
		return true
	}
	for _, p := range hedgingPhrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}
