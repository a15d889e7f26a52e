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

// Package placement holds the host capacity model consumed by the external
// scheduler when ranking placement candidates.
package placement

// Request describes a single allocation to place.
type Request struct {
	// SizeGB is the requested size in GB. Always positive.
	SizeGB int64
	// ExistingHost names a host the volume already occupies, for example
	// during a retype. Such a host is exempt from capacity rejection.
	ExistingHost string
}

// HostState is one host's capacity snapshot for a single scheduling cycle.
// It is produced fresh per cycle by the inventory collector and never
// mutated by filters.
type HostState struct {
	Host            string
	FreeCapacityGB  Capacity
	TotalCapacityGB Capacity
	// ReservedPercentage is the fraction of the total capacity held back
	// from allocation, in whole percent (0-100).
	ReservedPercentage int
}

// Filter decides whether a candidate host can receive an allocation.
// Implementations must be pure aside from logging, so the scheduler can run
// them concurrently across many candidate hosts.
type Filter interface {
	HostPasses(host *HostState, req *Request) bool
}
