// Package http provides the dashboard and admin transport
package http

import (
	"io"
	stdhttp "net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	perr "pulsetrack/internal/platform/errors"
	phttp "pulsetrack/internal/platform/net/http"

	apidom "pulsetrack/internal/services/api/domain"
	auditdom "pulsetrack/internal/services/audit/domain"
	demodom "pulsetrack/internal/services/demographics/domain"
	ratdom "pulsetrack/internal/services/ratings/domain"
)

// maxUploadBytes caps admin CSV uploads
const maxUploadBytes = 16 << 20

// Ports are the read/ingest surfaces the API serves
type Ports struct {
	Ratings ratdom.ReaderPort
	Demos   demodom.ReaderPort
	Audit   auditdom.ReaderPort

	// UploadDir receives admin batch uploads, the ingest watcher picks them up
	UploadDir string
}

// Register mounts dashboard read endpoints on r
func Register(r phttp.Router, p Ports) {
	h := &handlers{ports: p}

	r.Route("/approvals", func(r phttp.Router) {
		r.Post("/latest", phttp.JSONHandlerNoBody(h.latest))
		r.Post("/series", phttp.JSONHandler[apidom.SeriesInput](h.series))
	})
	r.Post("/breakdowns", phttp.JSONHandler[apidom.BreakdownInput](h.breakdowns))
	r.Post("/demographics/list", phttp.JSONHandlerNoBody(h.demographics))
	r.Post("/audit/recent", phttp.JSONHandler[apidom.AuditRecentInput](h.auditRecent))
}

// RegisterAdmin mounts the upload endpoint, callers wrap it with the API key
// middleware
func RegisterAdmin(r phttp.Router, p Ports) {
	h := &handlers{ports: p}
	r.Post("/upload", phttp.Handle(h.upload))
}

type handlers struct{ ports Ports }

func (h *handlers) latest(r *stdhttp.Request) (any, error) {
	return h.ports.Ratings.Latest(r.Context())
}

func (h *handlers) series(r *stdhttp.Request, in apidom.SeriesInput) (any, error) {
	var since, until time.Time
	if in.Since != nil {
		since = *in.Since
	}
	if in.Until != nil {
		until = *in.Until
	}
	return h.ports.Ratings.Series(r.Context(), in.Candidate, since, until)
}

func (h *handlers) breakdowns(r *stdhttp.Request, in apidom.BreakdownInput) (any, error) {
	return h.ports.Ratings.Breakdowns(r.Context(), in.Candidate, in.Limit)
}

func (h *handlers) demographics(r *stdhttp.Request) (any, error) {
	return h.ports.Demos.List(r.Context())
}

func (h *handlers) auditRecent(r *stdhttp.Request, in apidom.AuditRecentInput) (any, error) {
	return h.ports.Audit.Recent(r.Context(), in.Limit)
}

// upload accepts one multipart CSV under the "file" field and drops it into
// the ingest directory for the next pass
func (h *handlers) upload(r *stdhttp.Request) phttp.Response {
	r.Body = stdhttp.MaxBytesReader(nil, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return phttp.Error(perr.InvalidArgf("parse multipart form: %v", err))
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return phttp.Error(perr.InvalidArgf("missing file field"))
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if name == "" || name == "." || !strings.EqualFold(filepath.Ext(name), ".csv") {
		return phttp.Error(perr.InvalidArgf("only .csv uploads are accepted"))
	}

	if err := os.MkdirAll(h.ports.UploadDir, 0o755); err != nil {
		return phttp.Error(perr.Internalf("prepare upload dir: %v", err))
	}
	dst, err := os.Create(filepath.Join(h.ports.UploadDir, name))
	if err != nil {
		return phttp.Error(perr.Internalf("store upload: %v", err))
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return phttp.Error(perr.Internalf("store upload: %v", err))
	}

	return phttp.Created(apidom.UploadReceipt{Accepted: true, Filename: name})
}
