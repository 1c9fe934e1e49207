// Package tokenizer turns job-posting text into the fixed-length integer
// sequences the fraud model was trained on.
//
// The pipeline is Tokenize, then Resolve each token to an id, then Encode to
// exactly MaxLen ids. Every step must stay bit-exact with the preprocessing used
// at training time, otherwise scores silently drift.
package tokenizer

import "strings"

// fullCaseFold applies the unconditional full lowercase mappings that
// strings.ToLower, which maps rune to rune, leaves out. U+0130 lowers to
// "i" plus a combining dot, and the dot splits the token.
var fullCaseFold = strings.NewReplacer("\u0130", "i\u0307")

// Tokenize lowercases text and splits it into runs of [a-z0-9].
//
// Every other character acts as a separator, including non-ASCII letters.
// The result never contains empty tokens.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return strings.FieldsFunc(strings.ToLower(fullCaseFold.Replace(text)), isSeparator)
}

func isSeparator(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
}
