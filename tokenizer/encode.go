package tokenizer

// PadID fills positions past the last token.
const PadID int32 = 0

// Sequence is a fixed-length model input. Its element type is int32 because
// the model declares an int32 input; feeding floats would not fail loudly.
type Sequence []int32

// Encode resolves the first maxLen tokens and zero-pads the rest.
// Tokens beyond maxLen are dropped.
func Encode(tokens []string, r Resolver, maxLen int) Sequence {
	if maxLen < 0 {
		maxLen = 0
	}
	seq := make(Sequence, maxLen)
	n := min(len(tokens), maxLen)
	for i := 0; i < n; i++ {
		seq[i] = r.Resolve(tokens[i])
	}
	return seq
}

// EncodeText tokenizes text and encodes the tokens. It also returns the
// number of tokens found before truncation.
func EncodeText(text string, r Resolver, maxLen int) (Sequence, int) {
	tokens := Tokenize(text)
	return Encode(tokens, r, maxLen), len(tokens)
}
