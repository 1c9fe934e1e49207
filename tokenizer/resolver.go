package tokenizer

// Policy names the id resolution strategy chosen for a vocabulary.
type Policy string

const (
	// PolicyHash falls back to HashID for tokens missing from the vocabulary.
	PolicyHash Policy = "hash"

	// PolicyOOV falls back to a single out-of-vocabulary id.
	PolicyOOV Policy = "oov"
)

// Resolver maps a token to its integer id.
type Resolver interface {
	Resolve(token string) int32
	Policy() Policy
}

// HashResolver looks tokens up in a word index and hashes the misses.
type HashResolver struct {
	index map[string]int32
}

// NewHashResolver returns a resolver over index. A nil index is valid and
// hashes every token.
func NewHashResolver(index map[string]int32) *HashResolver {
	return &HashResolver{index: index}
}

// Resolve returns the vocabulary id of token, or its hash id.
func (r *HashResolver) Resolve(token string) int32 {
	if id, ok := r.index[token]; ok {
		return id
	}
	return HashID(token)
}

// Policy returns PolicyHash.
func (r *HashResolver) Policy() Policy { return PolicyHash }

// OOVResolver looks tokens up in a word index and maps misses to one id.
type OOVResolver struct {
	index map[string]int32
	oovID int32
}

// NewOOVResolver returns a resolver that maps unknown tokens to oovID.
func NewOOVResolver(index map[string]int32, oovID int32) *OOVResolver {
	return &OOVResolver{index: index, oovID: oovID}
}

// Resolve returns the vocabulary id of token, or the OOV id.
func (r *OOVResolver) Resolve(token string) int32 {
	if id, ok := r.index[token]; ok {
		return id
	}
	return r.oovID
}

// Policy returns PolicyOOV.
func (r *OOVResolver) Policy() Policy { return PolicyOOV }

// OOVID returns the id assigned to unknown tokens.
func (r *OOVResolver) OOVID() int32 { return r.oovID }
