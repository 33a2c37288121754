package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/capnow/portfolio"
	"github.com/capnow/portfolio/leads"
	"github.com/capnow/portfolio/renderer"
)

// maxFormSize bounds a lead submission body.
const maxFormSize = 64 << 10

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLanding serves the landing page.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	l := renderer.NewLanding(s.progress.State())
	s.writeMarkdown(w, http.StatusOK, "Capnow Portfolio", renderer.RenderLanding(l))
}

// handleDashboard serves the investor dashboard.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	m, err := portfolio.DeriveSnapshotMetrics(s.snapshot)
	if err != nil {
		s.log.Error().Err(err).Msg("Invalid dashboard snapshot")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	d := renderer.NewDashboard(s.snapshot, m)
	s.writeMarkdown(w, http.StatusOK, "Investor Dashboard", renderer.RenderDashboard(d))
}

// handleProgressDocument serves the raw progress counters.
func (s *Server) handleProgressDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := portfolio.EncodeProgress(w, s.progress.State()); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode progress")
	}
}

type dashboardResponse struct {
	Snapshot portfolio.PortfolioSnapshot `json:"snapshot"`
	Metrics  portfolio.DerivedMetrics    `json:"metrics"`
	Display  *renderer.Dashboard         `json:"display"`
}

// handleDashboardAPI returns the snapshot, its metrics and their display values.
func (s *Server) handleDashboardAPI(w http.ResponseWriter, r *http.Request) {
	m, err := portfolio.Derive(s.snapshot, s.progress.State())
	if err != nil {
		s.log.Error().Err(err).Msg("Invalid dashboard snapshot")
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, dashboardResponse{
		Snapshot: s.snapshot,
		Metrics:  m,
		Display:  renderer.NewDashboard(s.snapshot, m),
	})
}

type progressResponse struct {
	Current   float64    `json:"current"`
	Target    float64    `json:"target"`
	Fraction  float64    `json:"fraction"`
	Ratio     float64    `json:"ratio"`
	Label     string     `json:"label"`
	Percent   string     `json:"percent"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// handleProgressAPI returns the campaign progress with its display values.
func (s *Server) handleProgressAPI(w http.ResponseWriter, r *http.Request) {
	p := s.progress.State()
	view := renderer.NewProgress(p)
	resp := progressResponse{
		Current:  p.Current,
		Target:   p.Target,
		Fraction: p.Fraction(),
		Ratio:    p.Ratio(),
		Label:    view.Headline,
		Percent:  view.Percent,
	}
	if t := s.progress.LastUpdated(); !t.IsZero() {
		resp.UpdatedAt = &t
	}
	w.Header().Set("Cache-Control", "no-store")
	s.writeJSON(w, http.StatusOK, resp)
}

type leadRequest struct {
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Amount json.RawMessage `json:"amount"`
}

// amount accepts 25000 as well as "$25,000".
func (req leadRequest) amount() string {
	var str string
	if err := json.Unmarshal(req.Amount, &str); err == nil {
		return str
	}
	var n float64
	if err := json.Unmarshal(req.Amount, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

// handleCreateLead records a lead from a JSON body or a form post.
//
// Form posts come from the landing page and are answered with a page,
// JSON requests with JSON.
func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	isJSON := mediaType == "application/json"

	fail := func(status int, message string) {
		if isJSON {
			s.writeError(w, status, message)
			return
		}
		md := fmt.Sprintf("# We could not record your interest\n\n%s\n\n[← Back to the form](/#interest)\n", renderer.Escape(message))
		s.writeMarkdown(w, status, "Capnow Portfolio", md)
	}

	if s.leads == nil {
		fail(http.StatusServiceUnavailable, "lead capture is not available")
		return
	}

	var name, email, amount string
	if isJSON {
		var req leadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(http.StatusBadRequest, "invalid request body")
			return
		}
		name, email, amount = req.Name, req.Email, req.amount()
	} else {
		if err := r.ParseForm(); err != nil {
			fail(http.StatusBadRequest, "invalid form")
			return
		}
		name, email, amount = r.PostForm.Get("name"), r.PostForm.Get("email"), r.PostForm.Get("amount")
	}

	l, err := leads.NewLead(name, email, amount)
	if err != nil {
		fail(http.StatusBadRequest, err.Error())
		return
	}
	l, err = s.leads.Insert(r.Context(), l)
	if errors.Is(err, portfolio.ErrInvalidInput) {
		fail(http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to record lead")
		fail(http.StatusInternalServerError, "failed to record lead")
		return
	}
	s.log.Info().Str("lead", l.ID).Float64("amount", l.Amount).Msg("Lead recorded")

	if isJSON {
		s.writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "id": l.ID})
		return
	}
	s.writeMarkdown(w, http.StatusCreated, "Thank you", renderer.RenderLeadReceipt(renderer.NewReceipt(l)))
}

// handleLeadStats returns the number of leads and their total indicated allocation.
func (s *Server) handleLeadStats(w http.ResponseWriter, r *http.Request) {
	if s.leads == nil {
		s.writeError(w, http.StatusServiceUnavailable, "lead capture is not available")
		return
	}
	st, err := s.leads.Stats(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to read lead stats")
		s.writeError(w, http.StatusInternalServerError, "failed to read lead stats")
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

// writeMarkdown renders markdown as a complete HTML page.
func (s *Server) writeMarkdown(w http.ResponseWriter, status int, title, md string) {
	body, err := renderer.HTML(md)
	if err == nil {
		body, err = renderer.Page(title, body)
	}
	if err != nil {
		s.log.Error().Err(err).Str("page", title).Msg("Failed to render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		s.log.Error().Err(err).Msg("Failed to write page")
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
