package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// errUpstream marks transit API failures: transport errors, non-200
// responses and malformed bodies all end up here.
var errUpstream = errors.New("transit api error")

const (
	defaultGatewayURL = "https://transit.ttc.com.ge"
	defaultOTPURL     = "https://transfer.msplus.ge:2443"
)

// TTC talks to the Tbilisi transit APIs: the pis-gateway for live arrival
// boards and the legacy OTP router for route geometry and bus positions.
type TTC struct {
	gatewayURL string
	otpURL     string
	apiKey     string

	// Only the arrival board fetch carries a timeout. The OTP endpoints
	// answer from cache and are left on the default client.
	arrivals *http.Client
	otp      *http.Client
}

func newTTC(apiKey string) *TTC {
	return &TTC{
		gatewayURL: defaultGatewayURL,
		otpURL:     defaultOTPURL,
		apiKey:     apiKey,
		arrivals:   &http.Client{Timeout: 5 * time.Second},
		otp:        &http.Client{},
	}
}

// ArrivalTimes fetches the live arrival board shown on a stop's physical
// display.
func (t *TTC) ArrivalTimes(stopID string) ([]Arrival, error) {
	u := fmt.Sprintf("%s/pis-gateway/api/v2/stops/1:%s/arrival-times?locale=en&ignoreScheduledArrivalTimes=false",
		t.gatewayURL, url.PathEscape(stopID))

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUpstream, err)
	}
	req.Header.Set("X-Api-Key", t.apiKey)

	resp, err := t.arrivals.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", errUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUpstream, err)
	}

	var arrivals []Arrival
	if err := json.Unmarshal(body, &arrivals); err != nil {
		return nil, fmt.Errorf("%w: %v", errUpstream, err)
	}

	return arrivals, nil
}

// RouteBuses fetches the live buses on a route in one direction. A body
// without the Bus key means no buses, not an error.
func (t *TTC) RouteBuses(route string, forward bool) ([]Bus, error) {
	u := fmt.Sprintf("%s/otp/routers/ttc/buses?routeNumber=%s&forward=%s",
		t.otpURL, url.QueryEscape(route), forwardParam(forward))

	var body struct {
		Bus []Bus `json:"Bus"`
	}
	if err := t.getOTP(u, &body); err != nil {
		return nil, err
	}
	return body.Bus, nil
}

// RouteStops fetches a route's ordered stop sequence in one direction. A
// body without the Stop key means an empty sequence, not an error.
func (t *TTC) RouteStops(route string, forward bool) ([]RouteStop, error) {
	u := fmt.Sprintf("%s/otp/routers/ttc/routeStops?routeNumber=%s&forward=%s",
		t.otpURL, url.QueryEscape(route), forwardParam(forward))

	var body struct {
		Stop []RouteStop `json:"Stop"`
	}
	if err := t.getOTP(u, &body); err != nil {
		return nil, err
	}
	return body.Stop, nil
}

func (t *TTC) getOTP(u string, out any) error {
	resp, err := t.otp.Get(u)
	if err != nil {
		return fmt.Errorf("%w: %v", errUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", errUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", errUpstream, err)
	}
	return nil
}

func forwardParam(forward bool) string {
	if forward {
		return "1"
	}
	return "0"
}
