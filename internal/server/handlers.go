package server

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
)

// TransformResponse is the JSON body returned by POST /.
type TransformResponse struct {
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler is the main fasthttp request handler. Work it starts is not tied
// to a server lifetime; Serve routes through the same handlers with its own
// context so shutdown cancels in-flight lookups.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	s.route(context.Background(), ctx)
}

func (s *Server) route(base context.Context, ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	switch string(ctx.Path()) {
	case "/":
		s.handleIndex(base, ctx)
	case "/blast":
		s.handleBlast(base, ctx)
	case "/composition":
		s.handleComposition(ctx)
	case "/composition.svg":
		s.handleCompositionPlot(ctx)
	case "/health":
		s.handleHealthCheck(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleIndex serves the transform form and runs transform actions.
func (s *Server) handleIndex(base context.Context, ctx *fasthttp.RequestCtx) {
	switch {
	case ctx.IsGet():
		s.writePage(ctx, "index", pageData{Title: "Sequence tools", Actions: actionLabels()})
	case ctx.IsPost():
		seq := sequenceParam(ctx)
		action := domain.ParseAction(string(ctx.FormValue("action")))

		c, cancel := context.WithTimeout(base, TransformTimeout)
		defer cancel()

		result, err := s.sequencer.Apply(c, action, seq)
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
			s.writeJSON(ctx, TransformResponse{Error: err.Error()})
			return
		}
		ctx.SetStatusCode(fasthttp.StatusOK)
		s.writeJSON(ctx, TransformResponse{Result: result})
	default:
		s.methodNotAllowed(ctx)
	}
}

// handleBlast serves the BLAST form and renders lookup results.
func (s *Server) handleBlast(base context.Context, ctx *fasthttp.RequestCtx) {
	switch {
	case ctx.IsGet():
		s.writePage(ctx, "blast", pageData{Title: "BLAST search"})
	case ctx.IsPost():
		seq := sequenceParam(ctx)
		result := s.lookup.Lookup(base, seq)
		if result.Status == domain.LookupFailed {
			s.logger.Warn("BLAST lookup failed", "error", result.Err)
		}
		s.writePage(ctx, "output", pageData{
			Title:  "BLAST result",
			Status: result.Status.String(),
			Output: result.Text(),
		})
	default:
		s.methodNotAllowed(ctx)
	}
}

// handleComposition returns base counts and windowed GC statistics.
func (s *Server) handleComposition(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		s.methodNotAllowed(ctx)
		return
	}
	window, err := windowParam(ctx)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, err.Error())
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSON(ctx, s.sequencer.Analyze(sequenceParam(ctx), window))
}

// handleCompositionPlot renders the windowed GC content as SVG.
func (s *Server) handleCompositionPlot(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		s.methodNotAllowed(ctx)
		return
	}
	window, err := windowParam(ctx)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, err.Error())
		return
	}
	svg, err := s.sequencer.GCWindowSVG(sequenceParam(ctx), window)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, err.Error())
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("image/svg+xml")
	ctx.SetBody(svg)
}

// handleHealthCheck responds to health check requests
func (s *Server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSON(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// sequenceParam returns the sequence form field with invalid UTF-8 replaced
// by U+FFFD. A missing field is the empty string.
func sequenceParam(ctx *fasthttp.RequestCtx) string {
	return strings.ToValidUTF8(string(ctx.FormValue("sequence")), "\uFFFD")
}

func windowParam(ctx *fasthttp.RequestCtx) (int, error) {
	raw := ctx.FormValue("window")
	if len(raw) == 0 {
		return DefaultWindow, nil
	}
	window, err := strconv.Atoi(string(raw))
	if err != nil || window < 0 {
		return 0, errors.New("window must be a non-negative integer")
	}
	return window, nil
}

func (s *Server) methodNotAllowed(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
	s.writeJSONError(ctx, "Method not allowed")
}

func (s *Server) writePage(ctx *fasthttp.RequestCtx, name string, data pageData) {
	body, err := s.renderPage(name, data)
	if err != nil {
		s.logger.Error("Error rendering page", "page", name, "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.writeJSONError(ctx, "Internal server error")
		return
	}
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(body)
}

// writeJSON writes a JSON response to the context
func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *Server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}
