package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/weljim73-spec/soccertrainerocr/internal/config"
	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
	"github.com/weljim73-spec/soccertrainerocr/internal/core/normalize"
)

type fakeExtractor struct {
	result *domain.Extraction
	err    error
	gotReq domain.ExtractionRequest
}

func (f *fakeExtractor) Extract(_ context.Context, req domain.ExtractionRequest) (*domain.Extraction, error) {
	f.gotReq = req
	return f.result, f.err
}

func testConfig() config.Config {
	return config.Config{
		AppEnv:           "production",
		APIKeyMode:       "user",
		MaxFileSizeBytes: 1024 * 1024,
		MaxFiles:         5,
	}
}

func multipartBody(t *testing.T, sessionType, apiKey string, files int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if sessionType != "" {
		if err := mw.WriteField("session_type", sessionType); err != nil {
			t.Fatal(err)
		}
	}
	if apiKey != "" {
		if err := mw.WriteField("api_key", apiKey); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < files; i++ {
		fw, err := mw.CreateFormFile("images", "screen.png")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte{0x89, 0x50, 0x4e, 0x47}); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestHealthz(t *testing.T) {
	handler := NewRouter(testConfig(), &fakeExtractor{}, nil).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if decodeBody(t, rec)["status"] != "ok" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestClientConfig(t *testing.T) {
	cfg := testConfig()
	cfg.APIKeyMode = "server"
	handler := NewRouter(cfg, &fakeExtractor{}, nil).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/config", nil))

	body := decodeBody(t, rec)
	if body["api_key_mode"] != "server" {
		t.Fatalf("unexpected key mode: %v", body["api_key_mode"])
	}
	if body["max_files"] != float64(5) {
		t.Fatalf("unexpected max files: %v", body["max_files"])
	}
}

func TestProcessSuccess(t *testing.T) {
	record := normalize.RecordFromText(domain.SessionBallWork, "Ball Touches: 88")
	extractor := &fakeExtractor{result: &domain.Extraction{
		SessionType: domain.SessionBallWork,
		Record:      record,
		RawText:     "Ball Touches: 88",
		Verdict: domain.Verdict{
			DetectedType: "ball_work",
			Confidence:   domain.ConfidenceConfident,
			Valid:        true,
		},
		ModelUsed: "primary",
	}}
	handler := NewRouter(testConfig(), extractor, nil).Handler()

	body, contentType := multipartBody(t, "ball_work", "sk-test", 2)
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeBody(t, rec)
	if got["success"] != true {
		t.Fatalf("expected success flag: %s", rec.Body.String())
	}
	if got["ocr_text"] != "Ball Touches: 88" {
		t.Fatalf("raw text missing: %s", rec.Body.String())
	}
	data, ok := got["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected a data object: %s", rec.Body.String())
	}
	highlights, ok := data["highlights"].(map[string]any)
	if !ok || highlights["ball_touches"] != float64(88) {
		t.Fatalf("record not serialized: %s", rec.Body.String())
	}

	if extractor.gotReq.SessionType != domain.SessionBallWork {
		t.Fatalf("session type not forwarded: %q", extractor.gotReq.SessionType)
	}
	if extractor.gotReq.APIKey != "sk-test" {
		t.Fatalf("api key not forwarded: %q", extractor.gotReq.APIKey)
	}
	if len(extractor.gotReq.Images) != 2 {
		t.Fatalf("expected 2 images forwarded, got %d", len(extractor.gotReq.Images))
	}
}

func TestProcessRejectsBadSessionType(t *testing.T) {
	handler := NewRouter(testConfig(), &fakeExtractor{}, nil).Handler()

	body, contentType := multipartBody(t, "yoga", "k", 1)
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProcessMethodNotAllowed(t *testing.T) {
	handler := NewRouter(testConfig(), &fakeExtractor{}, nil).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/process", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestProcessErrorMapping(t *testing.T) {
	mismatch := domain.WrapError(domain.ErrSessionMismatch, "validate session type",
		errors.New("screenshots look like a match session, not speed_agility"))

	cases := []struct {
		name       string
		err        error
		appEnv     string
		keyMode    string
		wantStatus int
		wantBody   string
	}{
		{"invalid input", domain.WrapError(domain.ErrInvalidInput, "validate upload", errors.New("no images provided")), "production", "user", http.StatusBadRequest, "no images provided"},
		{"session mismatch", mismatch, "production", "user", http.StatusBadRequest, "screenshots look like a match session"},
		{"unauthorized user mode", domain.WrapError(domain.ErrUnauthorized, "messages", errors.New("401")), "production", "user", http.StatusUnauthorized, "Invalid API key"},
		{"unauthorized server mode", domain.WrapError(domain.ErrUnauthorized, "messages", errors.New("401")), "production", "server", http.StatusUnauthorized, "Server API key invalid"},
		{"rate limited", domain.WrapError(domain.ErrRateLimited, "messages", errors.New("429")), "production", "user", http.StatusTooManyRequests, "Rate limit exceeded"},
		{"malformed response", domain.WrapError(domain.ErrMalformedResponse, "normalize", errors.New("no json object found")), "production", "user", http.StatusBadGateway, "Processing error occurred"},
		{"internal production", errors.New("pipeline exploded"), "production", "user", http.StatusInternalServerError, "Processing error occurred"},
		{"internal development", errors.New("pipeline exploded"), "development", "user", http.StatusInternalServerError, "pipeline exploded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.AppEnv = tc.appEnv
			cfg.APIKeyMode = tc.keyMode
			handler := NewRouter(cfg, &fakeExtractor{err: tc.err}, nil).Handler()

			body, contentType := multipartBody(t, "match", "k", 1)
			req := httptest.NewRequest(http.MethodPost, "/process", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			if msg, _ := decodeBody(t, rec)["error"].(string); !strings.Contains(msg, tc.wantBody) {
				t.Fatalf("expected error containing %q, got %q", tc.wantBody, msg)
			}
		})
	}
}

func TestRequestIDPreserved(t *testing.T) {
	handler := NewRouter(testConfig(), &fakeExtractor{}, nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("expected the caller's request id echoed, got %q", got)
	}
}
