// Package server serves the folder-selection web form that drives a batch run.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"aset-analyzer/internal/batch"
	"aset-analyzer/internal/config"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>ASET Analyzer</title></head>
<body>
<h1>ASET image analysis</h1>
<form method="post" action="/">
  <p><label>Source folder <input type="text" name="src_folder" size="60" value="{{.Src}}"></label></p>
  <p><label>Destination folder <input type="text" name="dest_folder" size="60" value="{{.Dest}}"></label></p>
  <p><button type="submit">Analyze</button></p>
</form>
</body>
</html>
`))

// RunFunc runs a batch. It is batch.Run outside tests.
type RunFunc func(ctx context.Context, opts batch.Options) (*batch.Summary, error)

// Server handles the web form.
type Server struct {
	cfg config.Config
	run RunFunc
}

// New creates a Server that runs batches with cfg's settings.
func New(cfg config.Config) *Server {
	return &Server{cfg: cfg, run: batch.Run}
}

// Handler returns the HTTP handler for the form.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.index)
	return mux
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTemplate.Execute(w, struct{ Src, Dest string }{}); err != nil {
			log.Printf("Server: rendering form: %v", err)
		}
	case http.MethodPost:
		s.analyze(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	src := strings.TrimSpace(r.FormValue("src_folder"))
	dest := strings.TrimSpace(r.FormValue("dest_folder"))
	if err := batch.CheckSource(src); err != nil {
		if errors.Is(err, batch.ErrSourceMissing) {
			http.Error(w, "Source folder does not exist: "+src, http.StatusBadRequest)
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	if dest == "" {
		http.Error(w, "Destination folder is required", http.StatusBadRequest)
		return
	}

	opts := batch.Options{
		Src:        src,
		Dest:       dest,
		Extensions: s.cfg.Extensions,
		Workers:    s.cfg.Workers,
		Timeout:    s.cfg.Timeout,
		Render:     s.cfg.Render,
		ReportName: s.cfg.ReportName,
	}

	log.Printf("Server: batch %s -> %s", src, dest)
	sum, err := s.run(r.Context(), opts)
	if errors.Is(err, batch.ErrSourceMissing) {
		http.Error(w, "Source folder does not exist: "+src, http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("Server: batch failed: %v", err)
		http.Error(w, "Processing failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Processing complete! Results saved in: %s\n", dest)
	fmt.Fprintf(w, "Analyzed %d of %d images", len(sum.Rows), len(sum.Files))
	if n := len(sum.Failures); n > 0 {
		fmt.Fprintf(w, ", %d problems (see %s)", n, sum.ReportPath)
	}
	fmt.Fprintln(w)
}

// ListenAndServe serves the form on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server: listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
