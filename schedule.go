package main

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// errNoArrivals marks a valid request with nothing to show: an empty board
// or an unknown stop. Distinct from errUpstream on purpose.
var errNoArrivals = errors.New("no arrivals")

// urgencyGlyph picks the indicator for an arrival by minutes remaining.
// Three-tier scheme: leaving now, leaving soon, plenty of time.
func urgencyGlyph(minutes int) string {
	switch {
	case minutes <= 1:
		return "🔥"
	case minutes <= 5:
		return "🟡"
	default:
		return "🟢"
	}
}

// renderStopSchedule renders the live arrival board of a single stop. One
// line per arrival, upstream order preserved.
func renderStopSchedule(t *TTC, loc *time.Location, stopID string, now time.Time) (string, error) {
	arrivals, err := t.ArrivalTimes(stopID)
	if err != nil {
		return "", err
	}
	if len(arrivals) == 0 {
		return "", errNoArrivals
	}

	now = now.In(loc)
	var b strings.Builder
	for _, a := range arrivals {
		minutes := a.RealtimeArrivalMinutes
		arrivalTime := now.Add(time.Duration(minutes) * time.Minute).Format("15:04")
		headsign := normalizeHeadsign(a.Headsign)
		fmt.Fprintf(&b, "<code>%s</code> %s <code>%s</code> <b>%s</b> через <b>%d мин.</b>\n",
			arrivalTime, urgencyGlyph(minutes), a.ShortName, headsign, minutes)
	}
	return b.String(), nil
}

// renderRouteStopList draws a route's ordered stop sequence for one
// direction and marks the stops live buses are approaching: ▲ for a bus
// going forward, ▼ for a bus going backward, ┃ otherwise. The sequence is
// reversed for the backward direction so both renders read top to bottom.
func renderRouteStopList(t *TTC, route string, forward bool) (string, error) {
	stops, err := t.RouteStops(route, forward)
	if err != nil {
		return "", err
	}
	if len(stops) == 0 {
		return "", errNoArrivals
	}

	forwardBuses, err := t.RouteBuses(route, true)
	if err != nil {
		return "", err
	}
	backwardBuses, err := t.RouteBuses(route, false)
	if err != nil {
		return "", err
	}

	nextForward := make(map[string]bool, len(forwardBuses))
	for _, bus := range forwardBuses {
		nextForward[bus.NextStopID] = true
	}
	nextBackward := make(map[string]bool, len(backwardBuses))
	for _, bus := range backwardBuses {
		nextBackward[bus.NextStopID] = true
	}

	if !forward {
		for i, j := 0, len(stops)-1; i < j; i, j = i+1, j-1 {
			stops[i], stops[j] = stops[j], stops[i]
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚌 %s\n", replaceDigitsWithEmojis(route))
	for _, stop := range stops {
		marker := "┃"
		if nextForward[stop.StopID] {
			marker = "▲"
		} else if nextBackward[stop.StopID] {
			marker = "▼"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, normalizeHeadsign(stop.Name))
	}
	return b.String(), nil
}

// isBusNumber reports whether s is a route reference: the # marker
// followed by exactly three digits.
func isBusNumber(s string) bool {
	if len(s) != 4 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var digitEmojis = map[rune]string{
	'0': "0⃣",
	'1': "1⃣",
	'2': "2⃣",
	'3': "3⃣",
	'4': "4⃣",
	'5': "5⃣",
	'6': "6⃣",
	'7': "7⃣",
	'8': "8⃣",
	'9': "9⃣",
}

func replaceDigitsWithEmojis(s string) string {
	var b strings.Builder
	for _, r := range s {
		if e, ok := digitEmojis[r]; ok {
			b.WriteString(e)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
