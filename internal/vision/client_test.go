// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package vision

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodboard/internal/models"
)

// chatResponse wraps content in a minimal chat.completion body.
func chatResponse(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return body
}

// newTestClient serves every completion with handler and returns a client
// pointed at it. Request bodies are delivered on the returned channel.
func newTestClient(t *testing.T, status int, content string) (*Client, <-chan map[string]any) {
	t.Helper()
	bodies := make(chan map[string]any, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var decoded map[string]any
		_ = json.Unmarshal(raw, &decoded)
		select {
		case bodies <- decoded:
		default:
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write(chatResponse(t, content))
			return
		}
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{
		APIKey:      "test-key",
		BaseURL:     srv.URL + "/",
		Model:       "gpt-4o",
		OracleModel: "gpt-4o-mini",
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, bodies
}

func TestNew_RequiresAPIKey(t *testing.T) {
	t.Parallel()
	if _, err := New(Config{}, zerolog.Nop()); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()
	c, err := New(Config{APIKey: "k"}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if c.cfg.Model != "gpt-4o" || c.cfg.OracleModel != "gpt-4o" {
		t.Errorf("models = %q/%q", c.cfg.Model, c.cfg.OracleModel)
	}
	if c.cfg.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d", c.cfg.MaxTokens)
	}
}

const profileJSON = `{
  "name": "Coastal Grandmother",
  "mood": "relaxed and airy",
  "color_palette": [{"name": "Sand", "hex": "#d8c8a8"}, {"name": "White", "hex": "#ffffff"}],
  "textures": ["linen", "cotton"],
  "key_pieces": ["wide leg trousers", "cardigan"],
  "avoid": ["neon"],
  "target_brands": {"accessible": ["J.Crew"], "aspirational": ["Loro Piana"]},
  "search_queries": ["linen wide leg trousers", "cream cable knit cardigan"]
}`

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "plain json", content: profileJSON},
		{name: "fenced json", content: "```json\n" + profileJSON + "\n```"},
		{name: "prose around json", content: "Here you go:\n" + profileJSON + "\nEnjoy!"},
		{name: "missing name", content: `{"mood": "calm"}`, wantErr: models.ErrMalformedProfile},
		{name: "not json", content: "sorry, I cannot help", wantErr: models.ErrMalformedProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, _ := newTestClient(t, http.StatusOK, tt.content)

			p, err := c.Extract(context.Background(), []string{"data:image/png;base64,AAAA"}, "beach weekend")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if p.Name != "Coastal Grandmother" {
				t.Errorf("Name = %q", p.Name)
			}
			if got := p.TargetBrands["aspirational"]; len(got) != 1 || got[0] != "Loro Piana" {
				t.Errorf("aspirational brands = %v", got)
			}
			if len(p.SearchQueries) != 2 {
				t.Errorf("SearchQueries = %v", p.SearchQueries)
			}
		})
	}
}

func TestExtract_Request(t *testing.T) {
	t.Parallel()
	c, bodies := newTestClient(t, http.StatusOK, profileJSON)

	if _, err := c.Extract(context.Background(), []string{"data:image/png;base64,AAAA"}, "beach weekend"); err != nil {
		t.Fatal(err)
	}
	body := <-bodies
	if body["model"] != "gpt-4o" {
		t.Errorf("model = %v", body["model"])
	}
	raw, _ := json.Marshal(body)
	for _, want := range []string{"data:image/png;base64,AAAA", "User context: beach weekend", `"json_object"`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("request missing %q", want)
		}
	}
}

func TestExtract_NothingToAnalyze(t *testing.T) {
	t.Parallel()
	c, bodies := newTestClient(t, http.StatusOK, profileJSON)
	if _, err := c.Extract(context.Background(), nil, "   "); !errors.Is(err, ErrNothingToAnalyze) {
		t.Fatalf("err = %v", err)
	}
	if len(bodies) != 0 {
		t.Error("no request should be sent")
	}
}

func TestExtract_UpstreamError(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, http.StatusInternalServerError, "")
	if _, err := c.Extract(context.Background(), nil, "quiet luxury"); err == nil {
		t.Fatal("expected error")
	}
}

func TestStripFences(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{in: `{"a":1}`, want: `{"a":1}`},
		{in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "```{\"a\":1}```", want: `{"a":1}`},
		{in: "  \n{\"a\":1}\n  ", want: `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
