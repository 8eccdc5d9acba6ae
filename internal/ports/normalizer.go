package ports

// Normalizer defines the interface for single-pass text cleanup.
type Normalizer interface {
	Normalize(text string) string
}
