package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rastreio/internal/cache"
	"rastreio/internal/carrier"
	"rastreio/internal/correction"
	"rastreio/internal/detector"
	"rastreio/internal/validation"
)

func newDetectionHandler(t *testing.T, c *cache.Manager) *DetectionHandler {
	t.Helper()
	d := detector.New(carrier.DefaultTable(), nil, nil)
	return NewDetectionHandler(d, validation.New(d, nil), correction.New(d, nil), c)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestDetectionHandler_Detect(t *testing.T) {
	h := newDetectionHandler(t, nil)

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantLen     int
		wantCarrier string
		wantConf    int
	}{
		{
			name:        "correios code",
			body:        `{"code": "BR123456789BR"}`,
			wantStatus:  http.StatusOK,
			wantLen:     1,
			wantCarrier: "correios",
			wantConf:    79,
		},
		{
			name:       "min confidence excludes weak match",
			body:       `{"code": "BR123456789BR", "min_confidence": 80}`,
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{
			name:        "international excluded",
			body:        `{"code": "1ZAB12340112345678", "include_international": false}`,
			wantStatus:  http.StatusOK,
			wantLen:     0,
			wantCarrier: "",
		},
		{
			name:       "empty code",
			body:       `{"code": ""}`,
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{
			name:       "invalid JSON",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.Detect, tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("Status = %d, expected %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var results []DetectionResult
			if err := json.NewDecoder(w.Body).Decode(&results); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if len(results) != tt.wantLen {
				t.Fatalf("Got %d results, expected %d", len(results), tt.wantLen)
			}
			if tt.wantCarrier != "" {
				if results[0].Carrier != tt.wantCarrier {
					t.Errorf("Carrier = %q, expected %q", results[0].Carrier, tt.wantCarrier)
				}
				if results[0].Confidence != tt.wantConf {
					t.Errorf("Confidence = %d, expected %d", results[0].Confidence, tt.wantConf)
				}
			}
		})
	}
}

func TestDetectionHandler_DetectBest(t *testing.T) {
	h := newDetectionHandler(t, nil)

	t.Run("confident match", func(t *testing.T) {
		w := postJSON(t, h.DetectBest, `{"code": "AA123456785BR"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, expected 200", w.Code)
		}
		var result DetectionResult
		if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if result.Carrier != "correios" || result.Confidence != 99 {
			t.Errorf("Result = %+v, expected correios at 99", result)
		}
	})

	t.Run("no confident match", func(t *testing.T) {
		w := postJSON(t, h.DetectBest, `{"code": "XYZXYZXYZ"}`)

		if w.Code != http.StatusNoContent {
			t.Errorf("Status = %d, expected 204", w.Code)
		}
	})
}

func TestDetectionHandler_CachesContextFreeDetections(t *testing.T) {
	m := cache.NewManager(cache.Config{TTL: time.Minute, CleanupInterval: time.Minute})
	defer m.Close()
	h := newDetectionHandler(t, m)

	w := postJSON(t, h.Detect, `{"code": "BR123456789BR"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, expected 200", w.Code)
	}

	key := cache.Key("BR123456789BR", detector.Options{})
	if _, ok := m.Get(key); !ok {
		t.Error("Detection results should be cached for context-free calls")
	}

	// Personalized calls must bypass the cache.
	w = postJSON(t, h.Detect, `{"code": "AA123456785BR", "user_id": "u1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, expected 200", w.Code)
	}
	personalKey := cache.Key("AA123456785BR", detector.Options{UserID: "u1"})
	if _, ok := m.Get(personalKey); ok {
		t.Error("Personalized detections must not be cached")
	}
}

func TestDetectionHandler_Validate(t *testing.T) {
	h := newDetectionHandler(t, nil)

	tests := []struct {
		name      string
		body      string
		wantValid bool
		wantError string
	}{
		{
			name:      "valid code",
			body:      `{"code": "AA123456785BR"}`,
			wantValid: true,
		},
		{
			name:      "empty code",
			body:      `{"code": ""}`,
			wantValid: false,
			wantError: "Código inválido",
		},
		{
			name:      "carrier-specific pass",
			body:      `{"code": "BR123456789BR", "carrier": "correios"}`,
			wantValid: true,
		},
		{
			name:      "carrier-specific mismatch",
			body:      `{"code": "1ZAB12340112345678", "carrier": "correios"}`,
			wantValid: false,
			wantError: "Código não corresponde ao formato da transportadora",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.Validate, tt.body)

			if w.Code != http.StatusOK {
				t.Fatalf("Status = %d, expected 200", w.Code)
			}
			var result validation.Result
			if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if result.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, expected %v", result.IsValid, tt.wantValid)
			}
			if tt.wantError != "" {
				found := false
				for _, e := range result.Errors {
					if e == tt.wantError {
						found = true
					}
				}
				if !found {
					t.Errorf("Errors = %v, expected to contain %q", result.Errors, tt.wantError)
				}
			}
		})
	}
}

func TestDetectionHandler_Suggest(t *testing.T) {
	h := newDetectionHandler(t, nil)

	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "missing suffix",
			body: `{"code": "AA123456785"}`,
			want: []string{"AA123456785BR"},
		},
		{
			name: "nothing to suggest",
			body: `{"code": "?????"}`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.Suggest, tt.body)

			if w.Code != http.StatusOK {
				t.Fatalf("Status = %d, expected 200", w.Code)
			}
			var resp SuggestResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if len(resp.Suggestions) != len(tt.want) {
				t.Fatalf("Suggestions = %v, expected %v", resp.Suggestions, tt.want)
			}
			for i := range tt.want {
				if resp.Suggestions[i] != tt.want[i] {
					t.Errorf("Suggestions[%d] = %q, expected %q", i, resp.Suggestions[i], tt.want[i])
				}
			}
		})
	}
}
