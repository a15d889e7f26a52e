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

package client

import (
	"fmt"

	"github.com/primarydatastore/datasphere-provisioner/pkg/datasphere/api"
	"github.com/primarydatastore/datasphere-provisioner/pkg/placement"
)

// HostStates converts share telemetry reports into the per-host capacity
// snapshots consumed by placement filters during one scheduling cycle.
func HostStates(reports []api.ShareStatus) ([]placement.HostState, error) {
	states := make([]placement.HostState, 0, len(reports))

	for _, r := range reports {
		free, err := placement.ParseCapacity(r.FreeCapacityGB)
		if err != nil {
			return nil, fmt.Errorf("share %s: %w", r.Host, err)
		}

		total, err := placement.ParseCapacity(r.TotalCapacityGB)
		if err != nil {
			return nil, fmt.Errorf("share %s: %w", r.Host, err)
		}

		if r.ReservedPercentage < 0 || r.ReservedPercentage > 100 {
			return nil, fmt.Errorf("share %s: reserved percentage %d out of range", r.Host, r.ReservedPercentage)
		}

		states = append(states, placement.HostState{
			Host:               r.Host,
			FreeCapacityGB:     free,
			TotalCapacityGB:    total,
			ReservedPercentage: r.ReservedPercentage,
		})
	}

	return states, nil
}
