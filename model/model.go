// Package model holds the value objects the Connection Scan engine
// consumes. These are produced by the parse package (or any other
// collaborator) from the MSN/MCA/ALF feed files; the engine itself
// never reads a file.
package model

import (
	"github.com/paulmach/orb"
)

// StopId is the TIPLOC (Timing Point Location) identifying a stop
// within a trip schedule. Up to 7 characters, uppercase, trimmed.
type StopId string

// CRS is the 3-letter Computer Reservation System code identifying a
// station. Coarser than StopId: several TIPLOCs may share one CRS.
type CRS string

// TripId is the 6-character schedule identifier from the BS record.
// Not unique on its own — overlays and cancellations share the id of
// the trip they modify.
type TripId string

// TripType orders calendar variants so the overriding record sorts
// after the permanent one. Lower values are "more fundamental".
type TripType int8

const (
	Permanent TripType = iota
	New
	Overlay
	Cancellation
)

func (t TripType) String() string {
	switch t {
	case Permanent:
		return "Permanent"
	case New:
		return "New"
	case Overlay:
		return "Overlay"
	case Cancellation:
		return "Cancellation"
	default:
		return "Unknown"
	}
}

// Stop is a station or timing point, immutable once the engine is
// built.
type Stop struct {
	ID   StopId
	Name string
	CRS  CRS

	// MinChangeTime is the minimum dwell, in minutes, between
	// alighting one service and boarding another at this stop.
	// The MSN feed encodes this as a single character, so it is
	// only ever 0-9.
	MinChangeTime int

	// Coord is the station's geographic point, when known. Not
	// every TIPLOC appears in the coordinate auxiliary dataset.
	Coord *orb.Point
}

// LocationKind tags which shape a Location record has. Go has no
// closed sum type, so the invariant (origin has departure only,
// destination has arrival only, intermediate has both) is enforced by
// convention and checked at build time instead of by the type system.
type LocationKind int8

const (
	LocationOrigin LocationKind = iota
	LocationIntermediate
	LocationDestination
)

// Location is one stop visited by a Trip, in service order. A
// well-formed Trip's Locations are Origin, Intermediate*, Destination.
type Location struct {
	Kind LocationKind
	Stop StopId

	// DepartureSec is seconds-from-midnight, valid when
	// Kind != LocationDestination.
	DepartureSec uint32

	// ArrivalSec is seconds-from-midnight, valid when
	// Kind != LocationOrigin.
	ArrivalSec uint32
}

// HasDeparture reports whether this location is boardable.
func (l Location) HasDeparture() bool {
	return l.Kind != LocationDestination
}

// HasArrival reports whether this location is alightable.
func (l Location) HasArrival() bool {
	return l.Kind != LocationOrigin
}

// Trip is one scheduled service, as one calendar variant. Multiple
// Trip records can share a TripId: a Permanent base plus New, Overlay
// or Cancellation records that override it for part of its date
// range. See the Calendar for how these are resolved per date.
type Trip struct {
	ID        TripId
	StartDate Date
	EndDate   Date
	TripType  TripType

	// DaysRun is indexed 0=Monday .. 6=Sunday.
	DaysRun [7]bool

	// Locations is Origin, Intermediate*, Destination in service
	// order. Populated incrementally by a parser via AddLocation.
	Locations []Location
}

// AddLocation appends a stop to the trip's service-order location
// list.
func (t *Trip) AddLocation(loc Location) {
	t.Locations = append(t.Locations, loc)
}

// RunsOn reports whether this specific calendar variant covers date,
// ignoring any other variant that might share its TripId. Calendar
// resolves the interaction between variants; this method only answers
// for the one record.
func (t Trip) RunsOn(date Date) bool {
	if date.Before(t.StartDate) || date.After(t.EndDate) {
		return false
	}
	return t.DaysRun[date.Weekday()]
}

// FootpathMode describes how a Footpath's transfer is made.
type FootpathMode int8

const (
	ModeBus FootpathMode = iota
	ModeTube
	ModeWalk
	ModeFerry
	ModeMetro
	ModeTram
	ModeTransfer
)

// Footpath is a fixed inter-station transfer link, as parsed from the
// ALF feed file. Endpoints are CRS codes (station level), not
// TIPLOCs; the engine resolves them to a representative TIPLOC at
// build time.
type Footpath struct {
	FromCRS CRS
	ToCRS   CRS
	Mode    FootpathMode

	// MinTransferSeconds is the minimum walking/connecting time
	// for this link.
	MinTransferSeconds uint32
}
