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

// ObjectiveService manages QoS objectives and their bindings to files.
type ObjectiveService struct {
	client *Client
}

// Objective is a backend defined performance policy.
type Objective struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List fetches the full objective catalog. The API has no lookup by name.
func (s *ObjectiveService) List(ctx context.Context) ([]Objective, error) {
	var objectives []Objective
	if err := s.client.do(ctx, http.MethodGet, "objectives", nil, nil, &objectives); err != nil {
		return nil, err
	}
	return objectives, nil
}

// Bind assigns an objective to a single file on a share.
func (s *ObjectiveService) Bind(ctx context.Context, share, relativePath, objectiveID string) error {
	body := struct {
		Share        string `json:"share"`
		RelativePath string `json:"relativePath"`
		ObjectiveID  string `json:"objectiveId"`
	}{share, relativePath, objectiveID}

	return s.client.do(ctx, http.MethodPost, "objective-bindings", nil, body, nil)
}
