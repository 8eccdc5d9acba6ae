package chart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/baditaflorin/go_sequence_tools/internal/core/composition"
	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
)

func TestGCWindowSVG(t *testing.T) {
	c := composition.Analyze("GGGGAAAAGCGCATAT", 4)

	svg, err := GCWindowSVG(c)
	if err != nil {
		t.Fatalf("GCWindowSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("output does not look like SVG: %.80s", svg)
	}
}

func TestGCWindowSVGEmpty(t *testing.T) {
	if _, err := GCWindowSVG(domain.Composition{}); !errors.Is(err, ErrNoWindows) {
		t.Errorf("expected ErrNoWindows, got %v", err)
	}
}
