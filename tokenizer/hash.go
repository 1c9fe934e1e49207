package tokenizer

import "unicode/utf16"

// hashBuckets is the number of ids available to unseen tokens under the
// hash-fallback policy. Ids are shifted by one so 0 stays free for padding.
const hashBuckets = 29999

// Hash is the 31-multiplier string hash used to assign ids to tokens missing
// from the vocabulary.
//
// It walks UTF-16 code units and relies on int32 wraparound, so the result
// matches the hash the model's vocabulary was built with bit for bit.
func Hash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	return h
}

// HashID maps a token into [1, 29999].
func HashID(token string) int32 {
	// abs in 64 bits: -MinInt32 does not fit in an int32.
	h := int64(Hash(token))
	if h < 0 {
		h = -h
	}
	return int32(h%hashBuckets) + 1
}
