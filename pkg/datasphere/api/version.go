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
	"fmt"
	"net/http"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/primarydatastore/datasphere-provisioner/pkg/datasphere"
)

// MinVersion is the oldest management API generation this client speaks.
var MinVersion = version.Must(version.NewVersion(datasphere.APIVersion))

// APIVersion reports the management API version of the remote.
func (c *Client) APIVersion(ctx context.Context) (*version.Version, error) {
	var v struct {
		APIVersion string `json:"apiVersion"`
	}
	if err := c.do(ctx, http.MethodGet, "version", nil, nil, &v); err != nil {
		return nil, err
	}

	return version.NewVersion(strings.TrimPrefix(v.APIVersion, "v"))
}

// EnsureCompatible fails when the remote management API is older than
// MinVersion.
func (c *Client) EnsureCompatible(ctx context.Context) error {
	v, err := c.APIVersion(ctx)
	if err != nil {
		return fmt.Errorf("unable to determine management API version: %w", err)
	}

	if v.LessThan(MinVersion) {
		return fmt.Errorf("incompatible management API: remote speaks %s, need at least %s", v, MinVersion)
	}

	return nil
}
