package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrTranslation wraps failures of the codon translation backend.
	ErrTranslation = errors.New("translation failed")
	// ErrEmptySequence is returned when an operation needs a non-empty sequence.
	ErrEmptySequence = errors.New("empty sequence")
	// ErrSearchFailed wraps failures of the remote alignment search.
	ErrSearchFailed = errors.New("alignment search failed")
)

// NoMatchMessage is rendered when a search returns no alignments.
const NoMatchMessage = "No matching sequences found."

// AlignmentHit is the best-scoring pairwise alignment returned by a search.
type AlignmentHit struct {
	Title   string  `json:"title"`
	Length  int     `json:"length"`
	EValue  float64 `json:"e_value"`
	Score   float64 `json:"score"`
	Query   string  `json:"query"`
	Match   string  `json:"match"`
	Subject string  `json:"subject"`
}

// Format renders the hit as the fixed-order text block shown on the results page.
func (h AlignmentHit) Format() string {
	var sb strings.Builder
	sb.WriteString("=====Best Alignment=====\n")
	fmt.Fprintf(&sb, "Sequence: %s\n", h.Title)
	fmt.Fprintf(&sb, "Length: %d\n", h.Length)
	fmt.Fprintf(&sb, "E-value: %s\n", formatFloat(h.EValue))
	fmt.Fprintf(&sb, "Score: %s\n", formatFloat(h.Score))
	fmt.Fprintf(&sb, "Query: %s\n", h.Query)
	fmt.Fprintf(&sb, "Match: %s\n", h.Match)
	fmt.Fprintf(&sb, "Sbjct: %s\n", h.Subject)
	return sb.String()
}

// formatFloat prints the shortest round-trip form of f, always with a
// fractional part or an exponent: 98 becomes "98.0", 1e-50 stays "1e-50".
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if f == 0 || (abs >= 1e-4 && abs < 1e16) {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.ContainsRune(s, '.') {
			s += ".0"
		}
		return s
	}
	return strconv.FormatFloat(f, 'e', -1, 64)
}

// LookupStatus distinguishes the three outcomes of an alignment lookup.
type LookupStatus int

const (
	LookupFailed LookupStatus = iota
	LookupNoMatch
	LookupFound
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupNoMatch:
		return "no_match"
	default:
		return "failed"
	}
}

// LookupResult holds the outcome of an alignment lookup.
// Hit is set only for LookupFound and Err only for LookupFailed.
type LookupResult struct {
	Status LookupStatus
	Hit    *AlignmentHit
	Err    error
}

// Found builds a successful result.
func Found(hit AlignmentHit) LookupResult {
	return LookupResult{Status: LookupFound, Hit: &hit}
}

// NoMatch builds a result for a search with zero alignments.
func NoMatch() LookupResult {
	return LookupResult{Status: LookupNoMatch}
}

// Failed builds a failed result.
func Failed(err error) LookupResult {
	return LookupResult{Status: LookupFailed, Err: err}
}

// Text renders the result for display.
func (r LookupResult) Text() string {
	switch r.Status {
	case LookupFound:
		return r.Hit.Format()
	case LookupNoMatch:
		return NoMatchMessage
	default:
		return fmt.Sprintf("An error occurred: %v", r.Err)
	}
}

// Composition holds nucleotide counts and GC statistics for a sequence.
type Composition struct {
	Length       int            `json:"length"`
	Counts       map[string]int `json:"counts"`
	GCContent    float64        `json:"gc_content"`
	Window       int            `json:"window"`
	WindowGC     []float64      `json:"window_gc"`
	WindowMean   float64        `json:"window_gc_mean"`
	WindowStdDev float64        `json:"window_gc_stddev"`
}
