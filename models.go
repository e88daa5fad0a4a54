package main

// Favorite stop saved by a user. invariant: unique per (user, StopNumber)
type Station struct {
	StopNumber string
	Name       string
}

// One row of a stop's live arrival board.
type Arrival struct {
	ShortName              string `json:"shortName"`
	Headsign               string `json:"headsign"`
	RealtimeArrivalMinutes int    `json:"realtimeArrivalMinutes"`
}

// Live bus on a route. NextStopID is the stop the bus is approaching.
type Bus struct {
	NextStopID string `json:"NextStopId"`
}

// One stop of a route's ordered stop sequence.
type RouteStop struct {
	StopID string `json:"StopId"`
	Name   string `json:"Name"`
}
