package ncbi

import "testing"

func TestParseXMLSkipsHitsWithoutHsps(t *testing.T) {
	data := []byte(`<BlastOutput><BlastOutput_iterations><Iteration><Iteration_hits>
<Hit><Hit_id>empty</Hit_id><Hit_def>no hsps</Hit_def><Hit_len>5</Hit_len></Hit>
</Iteration_hits></Iteration></BlastOutput_iterations></BlastOutput>`)

	hits, err := ParseXML(data)
	if err != nil {
		t.Fatalf("ParseXML: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected hits without HSPs to be skipped, got %d", len(hits))
	}
}

func TestParseXMLNoIterations(t *testing.T) {
	hits, err := ParseXML([]byte(`<BlastOutput></BlastOutput>`))
	if err != nil || hits != nil {
		t.Errorf("expected nil hits and no error, got %v, %v", hits, err)
	}
}

func TestParseXMLMalformed(t *testing.T) {
	if _, err := ParseXML([]byte(`<BlastOutput><unclosed>`)); err == nil {
		t.Error("expected error for malformed XML")
	}
}
