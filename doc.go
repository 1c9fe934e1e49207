// Package jobscore scores job postings for fraud risk with a pre-trained ONNX
// text classifier.
//
// # Quick Start
//
//	s, err := jobscore.New("model.onnx", "vocab.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	res, err := s.Score(ctx, "Work from home! Earn $$$ NOW")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s (%.3f)\n", res.Assessment.Label, res.Assessment.Score)
//
// # Preprocessing
//
// Text is tokenized, mapped to ids and padded to a fixed length by package
// tokenizer. Pass an empty vocabulary path to hash every token; a vocabulary
// that declares oov_index maps unknown tokens to that id instead.
//
// # Thread Safety
//
// Scorer is safe for concurrent use. It manages an internal pool of ONNX
// sessions, configurable via WithPoolSize.
package jobscore
