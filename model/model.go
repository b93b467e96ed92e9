package model

// Holds all external facing types.

// A stop from the reference dataset.
type Stop struct {
	ID   int
	Name string
}

// A departure as scraped from the upstream board, before any
// cleanup. Time is expected on the form HH:MM, but may carry noise
// such as asterisks marking realtime data.
type RawDeparture struct {
	Time        string
	Line        string
	Destination string
}

// A cleaned departure annotated with the time remaining until it
// leaves. Wait is formatted as MM:SS, or HH:MM:SS when an hour or
// more away.
type Departure struct {
	Wait string
	RawDeparture
}

// Column headers of a departure board, in display order.
var DepartureColumns = []string{"Wait", "Departure", "Line", "Destination"}

// Row returns the departure's cells in DepartureColumns order.
func (d Departure) Row() []string {
	return []string{d.Wait, d.Time, d.Line, d.Destination}
}
