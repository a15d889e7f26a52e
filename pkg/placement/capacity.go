/*
Volume provisioner for Primary Data DataSphere
Copyright © 2017 Primary Data, Inc.

This program is free software; you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation; either version 2 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program; if not, see <http://www.gnu.org/licenses/>.
*/

package placement

import (
	"fmt"
	"strconv"
)

type capacityKind int

const (
	capacityUnset capacityKind = iota
	capacityNumeric
	capacityInfinite
	capacityUnknown
)

// Capacity is a capacity figure reported by a storage backend. Backends
// that cannot report a real number send one of the sentinels instead, and
// hosts with broken telemetry report nothing at all. The zero value is the
// unset capacity.
type Capacity struct {
	kind capacityKind
	gb   float64
}

// Sentinel capacities for backends that cannot report actual numbers.
var (
	Infinite = Capacity{kind: capacityInfinite}
	Unknown  = Capacity{kind: capacityUnknown}
)

// GB returns a numeric capacity value.
func GB(v float64) Capacity {
	return Capacity{kind: capacityNumeric, gb: v}
}

// ParseCapacity reads a capacity figure as reported on the wire: a decimal
// number, one of the sentinels "infinite" and "unknown", or the empty
// string for absent telemetry.
func ParseCapacity(s string) (Capacity, error) {
	switch s {
	case "":
		return Capacity{}, nil
	case "infinite":
		return Infinite, nil
	case "unknown":
		return Unknown, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Capacity{}, fmt.Errorf("malformed capacity %q: %w", s, err)
	}
	return GB(v), nil
}

// IsSet reports whether any capacity figure was reported at all.
func (c Capacity) IsSet() bool {
	return c.kind != capacityUnset
}

// IsSentinel reports whether the backend sent a placeholder instead of a
// number.
func (c Capacity) IsSentinel() bool {
	return c.kind == capacityInfinite || c.kind == capacityUnknown
}

// Value returns the capacity in GB. Only meaningful when the capacity is
// set and not a sentinel.
func (c Capacity) Value() float64 {
	return c.gb
}

func (c Capacity) String() string {
	switch c.kind {
	case capacityInfinite:
		return "infinite"
	case capacityUnknown:
		return "unknown"
	case capacityNumeric:
		return strconv.FormatFloat(c.gb, 'f', -1, 64)
	default:
		return ""
	}
}
