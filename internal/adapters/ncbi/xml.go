package ncbi

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
)

type blastOutput struct {
	XMLName    xml.Name    `xml:"BlastOutput"`
	Iterations []iteration `xml:"BlastOutput_iterations>Iteration"`
}

type iteration struct {
	Hits []hit `xml:"Iteration_hits>Hit"`
}

type hit struct {
	ID        string `xml:"Hit_id"`
	Def       string `xml:"Hit_def"`
	Accession string `xml:"Hit_accession"`
	Len       int    `xml:"Hit_len"`
	Hsps      []hsp  `xml:"Hit_hsps>Hsp"`
}

type hsp struct {
	BitScore float64 `xml:"Hsp_bit-score"`
	Score    float64 `xml:"Hsp_score"`
	Evalue   float64 `xml:"Hsp_evalue"`
	Qseq     string  `xml:"Hsp_qseq"`
	Hseq     string  `xml:"Hsp_hseq"`
	Midline  string  `xml:"Hsp_midline"`
}

// ParseXML projects a BLAST XML report onto alignment hits, best first. Each
// hit is described by its first HSP; hits without HSPs are skipped.
func ParseXML(data []byte) ([]domain.AlignmentHit, error) {
	var out blastOutput
	if err := xml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing BLAST XML: %w", err)
	}
	if len(out.Iterations) == 0 {
		return nil, nil
	}

	hits := make([]domain.AlignmentHit, 0, len(out.Iterations[0].Hits))
	for _, h := range out.Iterations[0].Hits {
		if len(h.Hsps) == 0 {
			continue
		}
		best := h.Hsps[0]
		hits = append(hits, domain.AlignmentHit{
			Title:   strings.TrimSpace(h.ID + " " + h.Def),
			Length:  h.Len,
			EValue:  best.Evalue,
			Score:   best.Score,
			Query:   best.Qseq,
			Match:   best.Midline,
			Subject: best.Hseq,
		})
	}
	return hits, nil
}
