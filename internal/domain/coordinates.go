package domain

import "encoding/json"

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Bounds is a running min/max bounding box over coordinates.
// The zero value is empty; Extend initializes it on first use.
type Bounds struct {
	West  float64
	South float64
	East  float64
	North float64
	set   bool
}

// NewBounds returns a box already covering the given corners.
func NewBounds(west, south, east, north float64) Bounds {
	return Bounds{West: west, South: south, East: east, North: north, set: true}
}

// IsEmpty reports whether the box has never been extended.
func (b Bounds) IsEmpty() bool { return !b.set }

// Extend grows the box to include c.
func (b *Bounds) Extend(c Coordinates) {
	if !b.set {
		b.West, b.East = c.Lon, c.Lon
		b.South, b.North = c.Lat, c.Lat
		b.set = true
		return
	}
	if c.Lon < b.West {
		b.West = c.Lon
	}
	if c.Lon > b.East {
		b.East = c.Lon
	}
	if c.Lat < b.South {
		b.South = c.Lat
	}
	if c.Lat > b.North {
		b.North = c.Lat
	}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Coordinates {
	return Coordinates{Lon: (b.West + b.East) / 2, Lat: (b.South + b.North) / 2}
}

// boundsJSON carries the corners across serialization; the initialized
// flag is implied by presence (an empty box serializes as null).
type boundsJSON struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

func (b Bounds) MarshalJSON() ([]byte, error) {
	if !b.set {
		return []byte("null"), nil
	}
	return json.Marshal(boundsJSON{West: b.West, South: b.South, East: b.East, North: b.North})
}

func (b *Bounds) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = Bounds{}
		return nil
	}
	var v boundsJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = NewBounds(v.West, v.South, v.East, v.North)
	return nil
}
