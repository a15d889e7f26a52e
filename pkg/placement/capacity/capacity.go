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

// Package capacity filters placement candidates on their capacity
// utilization.
package capacity

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/primarydatastore/datasphere-provisioner/pkg/placement"
)

// Filter admits hosts that have enough free capacity for a request.
type Filter struct {
	log *logrus.Entry
}

// NewFilter returns a capacity based placement filter.
func NewFilter(log *logrus.Entry) *Filter {
	return &Filter{
		log: log.WithFields(logrus.Fields{
			"provisionerComponent": "capacity-filter",
		}),
	}
}

// HostPasses returns true if the host has sufficient free capacity for the
// request. Every branch resolves to a boolean; capacity problems are
// logged, never returned.
func (f *Filter) HostPasses(host *placement.HostState, req *placement.Request) bool {
	// A volume that already exists on this host must not be rejected for
	// insufficient capacity, e.g. while retyping.
	if req.ExistingHost != "" && req.ExistingHost == host.Host {
		return true
	}

	if !host.FreeCapacityGB.IsSet() {
		// Fail safe: the host's info collection is broken.
		f.log.WithField("host", host.Host).Error("free capacity not set, rejecting host")
		return false
	}

	if host.FreeCapacityGB.IsSentinel() {
		// The backend cannot report actual available capacity. Assume it
		// is able to serve the request; the retry mechanism handles a
		// failure by rescheduling.
		return true
	}

	reserved := float64(host.ReservedPercentage) / 100

	if !host.TotalCapacityGB.IsSet() || host.TotalCapacityGB.IsSentinel() {
		// The reserved amount cannot be computed against a non-numeric
		// total, so only an unreserved host can serve the request.
		return reserved == 0
	}

	total := host.TotalCapacityGB.Value()
	if total <= 0 {
		f.log.WithFields(logrus.Fields{
			"host":    host.Host,
			"totalGB": total,
		}).Warn("insufficient free space for volume creation, non-positive total capacity")
		return false
	}

	free := host.FreeCapacityGB.Value() - math.Floor(total*reserved)

	fields := logrus.Fields{
		"host":        host.Host,
		"requestedGB": req.SizeGB,
		"availableGB": free,
	}
	if free < float64(req.SizeGB) {
		f.log.WithFields(fields).Warn("insufficient free space for volume creation")
	} else {
		f.log.WithFields(fields).Debug("sufficient free space for volume creation")
	}

	return free >= float64(req.SizeGB)
}
