package tokenizer

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// DefaultMaxLen is the sequence length the model was trained with.
const DefaultMaxLen = 300

// ErrInvalidVocabulary indicates a vocabulary config that cannot be used.
var ErrInvalidVocabulary = errors.New("tokenizer: invalid vocabulary")

// Config keys, as exported next to the trained model.
const (
	keyMaxLen    = "max_len"
	keyWordIndex = "word_index"
	keyOOVIndex  = "oov_index"
)

// Vocabulary is the token to id mapping the model was trained with.
// It is immutable once built.
type Vocabulary struct {
	maxLen int
	index  map[string]int32
	oovID  int32
	hasOOV bool
}

// NewVocabulary builds a vocabulary from a word index. A nil oovID selects the
// hash-fallback policy. maxLen <= 0 means "not declared".
func NewVocabulary(maxLen int, index map[string]int32, oovID *int32) (*Vocabulary, error) {
	v := &Vocabulary{
		maxLen: maxLen,
		index:  make(map[string]int32, len(index)),
	}
	for tok, id := range index {
		if tok == "" {
			return nil, fmt.Errorf("%w: empty token in word index", ErrInvalidVocabulary)
		}
		if id <= 0 {
			return nil, fmt.Errorf("%w: token %q has non-positive id %d", ErrInvalidVocabulary, tok, id)
		}
		v.index[tok] = id
	}
	if oovID != nil {
		if *oovID <= 0 {
			return nil, fmt.Errorf("%w: oov_index must be positive, got %d", ErrInvalidVocabulary, *oovID)
		}
		v.oovID = *oovID
		v.hasOOV = true
	}
	return v, nil
}

// LoadVocabulary reads a vocabulary config file. Files ending in .pb or .binpb
// hold a binary google.protobuf.Struct; anything else is parsed as JSON.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary file: %w", err)
	}

	var s structpb.Struct
	switch filepath.Ext(path) {
	case ".pb", ".binpb":
		if err := proto.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing protobuf: %w", err)
		}
	default:
		if err := protojson.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	}
	return vocabularyFromStruct(&s)
}

func vocabularyFromStruct(s *structpb.Struct) (*Vocabulary, error) {
	fields := s.GetFields()

	var maxLen int
	if v, ok := fields[keyMaxLen]; ok {
		n, err := asInt32(keyMaxLen, v)
		if err != nil {
			return nil, err
		}
		maxLen = int(n)
	}

	index := make(map[string]int32)
	if v, ok := fields[keyWordIndex]; ok {
		words := v.GetStructValue()
		if words == nil {
			return nil, fmt.Errorf("%w: %s is not an object", ErrInvalidVocabulary, keyWordIndex)
		}
		for tok, idv := range words.GetFields() {
			id, err := asInt32(tok, idv)
			if err != nil {
				return nil, err
			}
			index[tok] = id
		}
	}

	var oov *int32
	if v, ok := fields[keyOOVIndex]; ok {
		if _, isNull := v.GetKind().(*structpb.Value_NullValue); !isNull {
			n, err := asInt32(keyOOVIndex, v)
			if err != nil {
				return nil, err
			}
			oov = &n
		}
	}

	return NewVocabulary(maxLen, index, oov)
}

func asInt32(name string, v *structpb.Value) (int32, error) {
	nv, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s is not a number", ErrInvalidVocabulary, name)
	}
	f := nv.NumberValue
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s is not a 32-bit integer: %v", ErrInvalidVocabulary, name, f)
	}
	return int32(f), nil
}

// MarshalBinary encodes the vocabulary as a binary google.protobuf.Struct,
// the format LoadVocabulary reads from .pb files.
func (v *Vocabulary) MarshalBinary() ([]byte, error) {
	words := make(map[string]any, len(v.index))
	for tok, id := range v.index {
		words[tok] = id
	}
	m := map[string]any{keyWordIndex: words}
	if v.maxLen > 0 {
		m[keyMaxLen] = v.maxLen
	}
	if v.hasOOV {
		m[keyOOVIndex] = v.oovID
	}

	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("building struct: %w", err)
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(s)
}

// MaxLen returns the declared sequence length, or 0 if none was declared.
func (v *Vocabulary) MaxLen() int { return v.maxLen }

// Size returns the number of tokens in the word index.
func (v *Vocabulary) Size() int { return len(v.index) }

// OOVID returns the out-of-vocabulary id and whether one was declared.
func (v *Vocabulary) OOVID() (int32, bool) { return v.oovID, v.hasOOV }

// Lookup returns the id of token if it is in the word index.
func (v *Vocabulary) Lookup(token string) (int32, bool) {
	id, ok := v.index[token]
	return id, ok
}

// Resolver returns the id resolution strategy for this vocabulary.
//
// The OOV policy applies only when the word index is non-empty and an OOV id is
// declared. An empty vocabulary always hashes, whatever oov_index says.
func (v *Vocabulary) Resolver() Resolver {
	if v == nil {
		return NewHashResolver(nil)
	}
	if v.hasOOV && len(v.index) > 0 {
		return NewOOVResolver(v.index, v.oovID)
	}
	return NewHashResolver(v.index)
}
