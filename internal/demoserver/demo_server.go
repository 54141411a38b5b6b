package demoserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/raysh454/webshot/internal/logging"
)

// DemoServer serves a small fixture site with known pages and selectors.
type DemoServer struct {
	cfg    Config
	pages  []PageDefinition
	router chi.Router
	logger logging.Logger
	slow   []byte
}

// NewDemoServer creates a fixture server instance.
func NewDemoServer(cfg Config, logger logging.Logger) *DemoServer {
	s := &DemoServer{
		cfg:    cfg,
		pages:  GetAllPages(),
		router: chi.NewRouter(),
		logger: logger,
		slow:   solidPNG(64, 64, color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}),
	}
	s.routes()
	return s
}

func (s *DemoServer) routes() {
	r := s.router
	for _, p := range s.pages {
		r.Get(p.Path, s.pageHandler(p))
	}
	r.Get("/assets/slow.png", s.slowAssetHandler)
	r.Get("/pages", s.listPagesHandler)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// Handler returns the router, for httptest servers.
func (s *DemoServer) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port and blocks.
func (s *DemoServer) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("fixture server starting", logging.Field{Key: "addr", Value: "http://localhost" + addr})
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *DemoServer) pageHandler(p PageDefinition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := p.tmpl.Execute(&buf, p.data(s.cfg)); err != nil {
			s.logger.Error("rendering page",
				logging.Field{Key: "path", Value: p.Path},
				logging.Field{Key: "error", Value: err})
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}

func (s *DemoServer) slowAssetHandler(w http.ResponseWriter, r *http.Request) {
	select {
	case <-time.After(s.cfg.AssetDelay):
	case <-r.Context().Done():
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(s.slow)
}

type pageInfo struct {
	Path        string   `json:"path"`
	Description string   `json:"description"`
	Selectors   []string `json:"selectors"`
}

func (s *DemoServer) listPagesHandler(w http.ResponseWriter, _ *http.Request) {
	out := make([]pageInfo, 0, len(s.pages))
	for _, p := range s.pages {
		out = append(out, pageInfo{Path: p.Path, Description: p.Description, Selectors: p.Selectors})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Warn("encoding page list", logging.Field{Key: "error", Value: err})
	}
}

func solidPNG(w, h int, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
