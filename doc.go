// Package verbdrill is the Composition Root for the verbdrill application.
//
// It connects the grammar domain (feature vectors, mutation rules, the dictionary and the
// drill session) with the infrastructure adapters that read word lists from disk.
//
// Philosophy:
//
// A drill shows a dictionary form and a grammatical change, then asks for the form that
// results. The answer is always another row of the same dictionary, so the quality of a
// drill is the quality of the word list. verbdrill keeps the rules pure and auditable and
// treats the word list as data that can be checked and watched.
//
// Features:
//
//   - **Pure Mutation Rules**: Seven total functions on feature vectors, each either valid or explicitly invalid.
//   - **Composite Lookup**: Forms are found by their full feature vector, never by a rendered string.
//   - **Injected Randomness**: Sessions take a random source, so seeded runs are reproducible.
//   - **Many Formats**: CSV, TSV and XLSX word lists, selected by file or doublestar pattern.
//   - **Integrity Audit**: Lists every mutation whose target form is missing from the dictionary.
//
// Usage:
//
//	// Load a dictionary and start a session
//	s, err := verbdrill.New("words/*.csv",
//		verbdrill.WithSeed(42),
//		verbdrill.WithLogger(logger),
//	)
//
//	// Play on the terminal
//	score, err := s.Run(ctx, os.Stdin, os.Stdout)
package verbdrill
