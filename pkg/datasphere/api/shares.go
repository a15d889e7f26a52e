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

package api

import (
	"context"
	"net/http"
)

// ShareService reports share level telemetry.
type ShareService struct {
	client *Client
}

// ShareStatus is one share host's capacity report. Backends that cannot
// report real numbers send the sentinels "infinite" or "unknown", hosts with
// broken telemetry send nothing.
type ShareStatus struct {
	Host               string `json:"host"`
	FreeCapacityGB     string `json:"freeCapacityGb"`
	TotalCapacityGB    string `json:"totalCapacityGb"`
	ReservedPercentage int    `json:"reservedPercentage"`
}

// Status fetches the capacity reports of all share hosts.
func (s *ShareService) Status(ctx context.Context) ([]ShareStatus, error) {
	var statuses []ShareStatus
	if err := s.client.do(ctx, http.MethodGet, "shares/status", nil, nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}
