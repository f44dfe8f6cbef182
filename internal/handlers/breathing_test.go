package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mindful_companion/internal/breathing"
	"mindful_companion/internal/service"
)

func TestBreathingHandlers_StateStartStopReset(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	br := &mockBreathing{state: breathing.Snapshot{
		Phase:                breathing.PhaseInhale,
		RemainingSeconds:     4,
		Running:              true,
		Instruction:          "Inhale",
		TotalDurationSeconds: 60,
	}}
	r := newTestRouter(&service.Service{Authorization: auth, Breathing: br})

	// GET state requires auth → 401 without header
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/breathing/state", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/breathing/state", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("state status=%d, body=%s", w.Code, w.Body.String())
	}
	var st breathing.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if st != br.state {
		t.Fatalf("unexpected state: %+v", st)
	}
	if br.lastUserID != 7 {
		t.Fatalf("state read for user %d", br.lastUserID)
	}

	cases := []struct {
		path   string
		status string
		calls  func() int
	}{
		{"/api/v1/breathing/start", statusStarted, func() int { return br.startCalled }},
		{"/api/v1/breathing/stop", statusStopped, func() int { return br.stopCalled }},
		{"/api/v1/breathing/reset", statusReset, func() int { return br.resetCalled }},
	}
	for _, tc := range cases {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodPost, tc.path, ""))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d, body=%s", tc.path, w.Code, w.Body.String())
		}
		if tc.calls() != 1 {
			t.Fatalf("%s: expected one call, got %d", tc.path, tc.calls())
		}
		var resp struct {
			Status string             `json:"status"`
			State  breathing.Snapshot `json:"state"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Status != tc.status || resp.State.Phase != breathing.PhaseInhale {
			t.Fatalf("%s: bad response %+v", tc.path, resp)
		}
	}
}

func TestBreathingHandlers_LoggingFailureStillReturnsState(t *testing.T) {
	br := &mockBreathing{state: breathing.Snapshot{Running: true}, cmdErr: errors.New("event store down")}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 1}, Breathing: br})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/breathing/start", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("start status=%d, body=%s", w.Code, w.Body.String())
	}
}

func TestBreathingHandlers_SetDuration(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		durErr   error
		wantCode int
	}{
		{"ok", `{"seconds":300}`, nil, http.StatusOK},
		{"missing seconds", `{}`, nil, http.StatusBadRequest},
		{"not a number", `{"seconds":"five"}`, nil, http.StatusBadRequest},
		{"rejected by controller", `{"seconds":-5}`, breathing.ErrInvalidDuration, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			br := &mockBreathing{durErr: tc.durErr}
			r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 3}, Breathing: br})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, authedRequest(http.MethodPut, "/api/v1/breathing/duration", tc.body))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.name == "ok" && br.lastSeconds != 300 {
				t.Fatalf("SetDuration got %d seconds", br.lastSeconds)
			}
		})
	}
}

func TestBreathingHandlers_Pattern(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 1}, Breathing: &mockBreathing{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/breathing/pattern", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("pattern status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Start  breathing.Phase `json:"start"`
		Phases []patternStep   `json:"phases"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Start != breathing.PhaseInhale || len(out.Phases) != 4 {
		t.Fatalf("unexpected pattern: %+v", out)
	}
	if out.Phases[2].Phase != breathing.PhaseExhale || out.Phases[2].DurationSeconds != 6 {
		t.Fatalf("unexpected exhale step: %+v", out.Phases[2])
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"ok"`)) {
		t.Fatalf("health status=%d, body=%s", w.Code, w.Body.String())
	}
}
