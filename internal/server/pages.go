package server

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageData struct {
	Title   string
	Actions []string
	Status  string
	Output  string
}

func parsePages() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

func actionLabels() []string {
	actions := domain.Actions()
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = a.String()
	}
	return labels
}

func (s *Server) renderPage(name string, data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
