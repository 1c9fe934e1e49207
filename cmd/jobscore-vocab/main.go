package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jamesainslie/go-jobscore/tokenizer"
)

func main() {
	vocabPath := flag.String("vocab", "", "Path to vocabulary config (.json or .pb)")
	out := flag.String("out", "", "Write the vocabulary as a binary .pb file")
	flag.Parse()

	if *vocabPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: jobscore-vocab -vocab VOCAB [-out VOCAB.pb] [TOKEN...]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	vocab, err := tokenizer.LoadVocabulary(*vocabPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	resolver := vocab.Resolver()
	fmt.Printf("Words: %d\n", vocab.Size())
	if vocab.MaxLen() > 0 {
		fmt.Printf("Max length: %d\n", vocab.MaxLen())
	} else {
		fmt.Printf("Max length: not declared (default %d)\n", tokenizer.DefaultMaxLen)
	}
	fmt.Printf("Policy: %s\n", resolver.Policy())
	if oov, ok := vocab.OOVID(); ok {
		fmt.Printf("OOV id: %d\n", oov)
	}

	// Show how individual tokens resolve.
	for _, arg := range flag.Args() {
		for _, tok := range tokenizer.Tokenize(arg) {
			_, known := vocab.Lookup(tok)
			fmt.Printf("  %-20s %6d  known=%v\n", tok, resolver.Resolve(tok), known)
		}
	}

	if *out != "" {
		data, err := vocab.MarshalBinary()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding vocabulary: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", *out, len(data))
	}
}
