package httpadapter

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/weljim73-spec/soccertrainerocr/internal/config"
	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
	"github.com/weljim73-spec/soccertrainerocr/internal/core/ports"
	"github.com/weljim73-spec/soccertrainerocr/internal/observability/metrics"
)

type Router struct {
	cfg       config.Config
	extractor ports.SessionExtractor
	metrics   *metrics.HTTPServerMetrics
}

func NewRouter(cfg config.Config, extractor ports.SessionExtractor, m *metrics.HTTPServerMetrics) *Router {
	return &Router{
		cfg:       cfg,
		extractor: extractor,
		metrics:   m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/config", rt.clientConfig)
	mux.HandleFunc("/process", rt.process)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	if rt.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(rt.cfg.StaticDir)))
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware("api", handler)
	}
	if rt.cfg.APIMaxInFlight > 0 {
		handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, 100*time.Millisecond)
	}
	if rt.cfg.APIRateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	}
	handler = corsMiddleware(handler, rt.cfg.CORSAllowedOrigins, rt.cfg.Development())
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// clientConfig tells the frontend how to shape its upload form.
func (rt *Router) clientConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"api_key_mode":  rt.cfg.APIKeyMode,
		"max_file_size": rt.cfg.MaxFileSizeBytes,
		"max_files":     rt.cfg.MaxFiles,
	})
}

func (rt *Router) process(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	// Parse limit leaves headroom over the per-file ceiling; exact size
	// enforcement happens in the use case.
	maxMemory := rt.cfg.MaxFileSizeBytes * int64(rt.cfg.MaxFiles+1)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	sessionType, err := domain.ParseSessionType(r.FormValue("session_type"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session type"})
		return
	}

	images, err := readImages(r.MultipartForm.File["images"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "could not read uploaded files"})
		return
	}

	start := time.Now()
	result, err := rt.extractor.Extract(r.Context(), domain.ExtractionRequest{
		SessionType: sessionType,
		Images:      images,
		APIKey:      r.FormValue("api_key"),
	})
	if err != nil {
		if rt.metrics != nil {
			rt.metrics.RecordExtraction("api", string(sessionType), "error", time.Since(start))
		}
		rt.writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordExtraction("api", string(sessionType), "success", time.Since(start))
		rt.metrics.RecordVerdict("api", string(result.Verdict.Confidence), result.Verdict.Valid)
		if result.FallbackUsed {
			rt.metrics.RecordFallback("api", result.ModelUsed)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"data":     result.Record,
		"ocr_text": result.RawText,
	})
}

func readImages(headers []*multipart.FileHeader) ([]domain.ImageFile, error) {
	images := make([]domain.ImageFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		images = append(images, domain.ImageFile{Filename: fh.Filename, Data: data})
	}
	return images, nil
}

func (rt *Router) writeError(w http.ResponseWriter, err error) {
	status := mapErrorToHTTPStatus(err)
	writeJSON(w, status, map[string]string{
		"error": rt.errorMessage(status, err),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
