package runner

const (
	DefaultTopK        = 4
	DefaultConcurrency = 1
)

type Config struct {
	TopK int
	// PromptTemplate is the persona text appended to the system prompt, empty for none.
	PromptTemplate string
	// Concurrency caps how many cases run at once.
	Concurrency int
}

func DefaultConfig() Config {
	return Config{
		TopK:        DefaultTopK,
		Concurrency: DefaultConcurrency,
	}
}

func (c Config) normalized() Config {
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	return c
}
