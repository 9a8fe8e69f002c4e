package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/tabular/internal/columns"
	"github.com/JonMunkholm/tabular/internal/headerio"
	"github.com/JonMunkholm/tabular/internal/logging"
)

// ColumnsRequest is the body of POST /api/columns.
//
// Headers lists the header labels in order. Mapping may be sent instead;
// its member names become the labels, in document order. Config is a configuration table
// merged over the server's own. Append and Delete are applied in that
// order. Sample is one raw data row, coerced and rendered per column.
type ColumnsRequest struct {
	Headers []any           `json:"headers"`
	Mapping json.RawMessage `json:"mapping,omitempty"`
	Config  map[string]any  `json:"config,omitempty"`
	Append  []string        `json:"append,omitempty"`
	Delete  []string        `json:"delete,omitempty"`
	Sample  []string        `json:"sample,omitempty"`
}

// ColumnsResponse describes the resulting header.
type ColumnsResponse struct {
	Size           int                   `json:"size"`
	Columns        []columns.Description `json:"columns"`
	SpaceDelimited string                `json:"space_delimited"`
	TabDelimited   string                `json:"tab_delimited"`
	Rendered       []string              `json:"rendered,omitempty"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleColumns builds a header from the request and describes it.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Columns.MaxBodyBytes)

	var req ColumnsRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.respondError(w, r, err)
			return
		}
		s.respondError(w, r, fmt.Errorf("%w: %v", errMalformedBody, err))
		return
	}

	cols, err := s.buildColumns(req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	for _, label := range req.Append {
		cols.Append(label)
	}
	for _, label := range req.Delete {
		cols.Delete(label)
	}

	logging.WithFields(r.Context(), "headers", len(req.Headers)).
		Debug("header built", "columns", cols.Len())

	resp := describe(cols)
	if req.Sample != nil {
		resp.Rendered = renderSample(cols, req.Sample)
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleHeaderUpload builds a header from the first non-empty line of a
// raw delimited body. ?delimiter= selects the separator (default ',').
func (s *Server) handleHeaderUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Columns.MaxBodyBytes)

	delim, err := headerio.ParseDelimiter(r.URL.Query().Get("delimiter"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", errMalformedBody, err))
		return
	}

	header, err := headerio.ReadHeader(r.Body, headerio.Options{Delimiter: delim})
	if err != nil {
		var maxBytes *http.MaxBytesError
		if !errors.As(err, &maxBytes) && !errors.Is(err, headerio.ErrNoHeader) {
			err = fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		s.respondError(w, r, err)
		return
	}
	if len(header) > s.cfg.Columns.MaxHeaders {
		s.respondError(w, r, fmt.Errorf("%w: %d > %d", errTooManyHeaders, len(header), s.cfg.Columns.MaxHeaders))
		return
	}

	cols := columns.New(header, s.base)
	logging.FromContext(r.Context()).Debug("header read", "columns", cols.Len())

	writeJSON(w, http.StatusOK, describe(cols))
}

// handleColumnsPage renders an HTML preview for ?header=a,b,c.
func (s *Server) handleColumnsPage(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("header")
	var labels []string
	if raw != "" {
		labels = strings.Split(raw, ",")
	}
	if len(labels) > s.cfg.Columns.MaxHeaders {
		s.respondError(w, r, fmt.Errorf("%w: %d > %d", errTooManyHeaders, len(labels), s.cfg.Columns.MaxHeaders))
		return
	}

	cols := columns.New(labels, s.base)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := columnsPage(cols).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render columns page", "error", err)
	}
}

// buildColumns validates the request and constructs the collection.
func (s *Server) buildColumns(req ColumnsRequest) (*columns.Columns, error) {
	mapping, err := columns.DecodeJSONMapping(req.Mapping)
	if err != nil {
		return nil, fmt.Errorf("%w: mapping: %v", errMalformedBody, err)
	}

	count := len(req.Headers) + len(mapping) + len(req.Append)
	if len(req.Headers) == 0 && len(mapping) == 0 {
		return nil, errNoHeaders
	}
	if count > s.cfg.Columns.MaxHeaders {
		return nil, fmt.Errorf("%w: %d > %d", errTooManyHeaders, count, s.cfg.Columns.MaxHeaders)
	}

	config := s.base
	if len(req.Config) > 0 {
		override, err := columns.NewConfigTable(req.Config)
		if err != nil {
			return nil, err
		}
		config = s.base.With(override)
	}

	if len(req.Headers) > 0 {
		return columns.NewFromLabels(req.Headers, config)
	}
	return columns.NewFromMapping(mapping, config)
}

func describe(cols *columns.Columns) ColumnsResponse {
	return ColumnsResponse{
		Size:           cols.Len(),
		Columns:        cols.Describe(),
		SpaceDelimited: cols.SpaceDelimited(),
		TabDelimited:   cols.TabDelimited(),
	}
}

// renderSample coerces and renders one raw row. Missing cells are empty.
func renderSample(cols *columns.Columns, sample []string) []string {
	out := make([]string, 0, cols.Len())
	i := 0
	for col := range cols.All() {
		var raw string
		if i < len(sample) {
			raw = sample[i]
		}
		out = append(out, col.Render(col.Coerce(raw)))
		i++
	}
	return out
}
