package questiongen

// Config controls the Generator.
type Config struct {
	// Validators run in order on every generated question. A question that
	// fails any of them is dropped from the batch.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxPrior caps how many existing question texts go into the prompt.
	MaxPrior int

	// MaxPerRequest caps Count for a single LLM call.
	MaxPerRequest int

	// Concurrency bounds parallel requests in GenerateBatch.
	Concurrency int
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators:    []Validator{StructuralValidator{}, DuplicateValidator{}},
		MaxTokens:     2048,
		Temperature:   0.8,
		MaxPrior:      20,
		MaxPerRequest: 10,
		Concurrency:   3,
	}
}
