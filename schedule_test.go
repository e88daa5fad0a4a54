package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testTTC(gatewayURL, otpURL string) *TTC {
	return &TTC{
		gatewayURL: gatewayURL,
		otpURL:     otpURL,
		apiKey:     "test-key",
		arrivals:   &http.Client{Timeout: 5 * time.Second},
		otp:        &http.Client{},
	}
}

var tbilisi = time.FixedZone("Asia/Tbilisi", 4*60*60)

func TestRenderStopSchedule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `[
			{"shortName":"306","headsign":"ვარკეთილი","realtimeArrivalMinutes":3},
			{"shortName":"150","headsign":"დიდუბე","realtimeArrivalMinutes":0},
			{"shortName":"371","headsign":"გლდანი","realtimeArrivalMinutes":12}
		]`)
	}))
	defer srv.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	got, err := renderStopSchedule(testTTC(srv.URL, ""), tbilisi, "3855", now)
	if err != nil {
		t.Fatalf("renderStopSchedule: %v", err)
	}

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), got)
	}

	// upstream order preserved, clock time = now in Tbilisi + minutes
	expected := []struct {
		contains []string
	}{
		{[]string{"<code>16:03</code>", "🟡", "<code>306</code>", "Varketili", "3 мин."}},
		{[]string{"<code>16:00</code>", "🔥", "<code>150</code>", "Didube", "0 мин."}},
		{[]string{"<code>16:12</code>", "🟢", "<code>371</code>", "Gldani", "12 мин."}},
	}
	for i, e := range expected {
		for _, want := range e.contains {
			if !strings.Contains(lines[i], want) {
				t.Errorf("line %d = %q, missing %q", i, lines[i], want)
			}
		}
	}
}

func TestRenderStopScheduleEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	_, err := renderStopSchedule(testTTC(srv.URL, ""), tbilisi, "3855", time.Now())
	if !errors.Is(err, errNoArrivals) {
		t.Fatalf("expected errNoArrivals, got %v", err)
	}
	if errors.Is(err, errUpstream) {
		t.Fatal("empty board must not be an upstream error")
	}
}

func TestRenderStopScheduleUpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{not json`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := renderStopSchedule(testTTC(srv.URL, ""), tbilisi, "3855", time.Now())
			if !errors.Is(err, errUpstream) {
				t.Fatalf("expected errUpstream, got %v", err)
			}
		})
	}
}

func TestRenderStopScheduleConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := renderStopSchedule(testTTC(srv.URL, ""), tbilisi, "3855", time.Now())
	if !errors.Is(err, errUpstream) {
		t.Fatalf("connection failure must surface as errUpstream, got %v", err)
	}
}

func fakeOTPServer(t *testing.T, stops map[string][]string, forwardNext, backwardNext string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forward := r.URL.Query().Get("forward")
		switch {
		case strings.HasSuffix(r.URL.Path, "/buses"):
			next := backwardNext
			if forward == "1" {
				next = forwardNext
			}
			if next == "" {
				fmt.Fprint(w, `{}`) // missing key means no buses
				return
			}
			fmt.Fprintf(w, `{"Bus":[{"NextStopId":%q}]}`, next)
		case strings.HasSuffix(r.URL.Path, "/routeStops"):
			ids := stops[forward]
			if ids == nil {
				fmt.Fprint(w, `{}`)
				return
			}
			entries := make([]string, 0, len(ids))
			for _, id := range ids {
				entries = append(entries, fmt.Sprintf(`{"StopId":%q,"Name":"Stop %s"}`, id, id))
			}
			fmt.Fprintf(w, `{"Stop":[%s]}`, strings.Join(entries, ","))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestRenderRouteStopList(t *testing.T) {
	srv := fakeOTPServer(t, map[string][]string{
		"1": {"a", "b", "c"},
		"0": {"c", "b", "a"},
	}, "b", "c")
	defer srv.Close()

	got, err := renderRouteStopList(testTTC("", srv.URL), "306", true)
	if err != nil {
		t.Fatalf("renderRouteStopList: %v", err)
	}

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 stops, got %q", got)
	}
	if !strings.Contains(lines[0], "3⃣0⃣6⃣") {
		t.Errorf("header %q missing emoji route number", lines[0])
	}
	for i, want := range []string{"┃ Stop A", "▲ Stop B", "▼ Stop C"} {
		if lines[i+1] != want {
			t.Errorf("line %d = %q, want %q", i+1, lines[i+1], want)
		}
	}
}

func TestRenderRouteStopListBackwardReversed(t *testing.T) {
	srv := fakeOTPServer(t, map[string][]string{
		"1": {"a", "b", "c"},
		"0": {"a", "b", "c"},
	}, "", "")
	defer srv.Close()

	got, err := renderRouteStopList(testTTC("", srv.URL), "306", false)
	if err != nil {
		t.Fatalf("renderRouteStopList: %v", err)
	}

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	for i, want := range []string{"┃ Stop C", "┃ Stop B", "┃ Stop A"} {
		if lines[i+1] != want {
			t.Errorf("line %d = %q, want %q", i+1, lines[i+1], want)
		}
	}
}

func TestRenderRouteStopListForwardWinsTies(t *testing.T) {
	srv := fakeOTPServer(t, map[string][]string{
		"1": {"a", "b"},
		"0": {"b", "a"},
	}, "b", "b")
	defer srv.Close()

	got, err := renderRouteStopList(testTTC("", srv.URL), "306", true)
	if err != nil {
		t.Fatalf("renderRouteStopList: %v", err)
	}
	if !strings.Contains(got, "▲ Stop B") {
		t.Errorf("forward marker must win when both directions match: %q", got)
	}
}

func TestRenderRouteStopListEmpty(t *testing.T) {
	srv := fakeOTPServer(t, map[string][]string{}, "", "")
	defer srv.Close()

	_, err := renderRouteStopList(testTTC("", srv.URL), "999", true)
	if !errors.Is(err, errNoArrivals) {
		t.Fatalf("expected errNoArrivals for missing Stop key, got %v", err)
	}
}

func TestIsBusNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"#519", true},
		{"#12", false},
		{"#5190", false},
		{"519", false},
		{"#51a", false},
		{"#", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isBusNumber(tt.input); got != tt.expected {
			t.Errorf("isBusNumber(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestUrgencyGlyph(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{0, "🔥"},
		{1, "🔥"},
		{2, "🟡"},
		{5, "🟡"},
		{6, "🟢"},
		{30, "🟢"},
	}

	for _, tt := range tests {
		if got := urgencyGlyph(tt.minutes); got != tt.expected {
			t.Errorf("urgencyGlyph(%d) = %q, want %q", tt.minutes, got, tt.expected)
		}
	}
}

func TestReplaceDigitsWithEmojis(t *testing.T) {
	if got := replaceDigitsWithEmojis("306"); got != "3⃣0⃣6⃣" {
		t.Errorf("replaceDigitsWithEmojis(306) = %q", got)
	}
	if got := replaceDigitsWithEmojis("N4"); got != "N4⃣" {
		t.Errorf("replaceDigitsWithEmojis(N4) = %q", got)
	}
}
