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

package volume

import (
	"fmt"
	"path"
	"strings"

	"github.com/primarydatastore/datasphere-provisioner/pkg/datasphere"
)

// Location is a parsed provider location.
type Location struct {
	// Host is the share host, as reported by the backend.
	Host string
	// SharePath is the absolute share path as exported.
	SharePath string
}

// ParseLocation splits a provider location of the form
// "<host>:<absoluteSharePath>".
func ParseLocation(providerLocation string) (Location, error) {
	host, sharePath, found := strings.Cut(providerLocation, ":")
	if !found || host == "" || !strings.HasPrefix(sharePath, "/") {
		return Location{}, fmt.Errorf("malformed provider location %q, expected \"<host>:<absolute share path>\"", providerLocation)
	}

	return Location{Host: host, SharePath: sharePath}, nil
}

func (l Location) String() string {
	return l.Host + ":" + l.SharePath
}

// shareSegments strips the mount specific lead-in from the share path.
// Share paths reported through a data portal are rooted at the portal mount,
// so three leading segments are portal specific; everywhere else only the
// empty segment in front of the leading separator goes. The segment counts
// must not change, existing provider locations depend on them.
func (l Location) shareSegments() []string {
	segments := strings.Split(l.SharePath, "/")

	strip := 1
	if strings.Contains(l.SharePath, datasphere.PortalMountMarker) {
		strip = 3
	}

	if len(segments) < strip {
		return nil
	}
	return segments[strip:]
}

// Share returns the backend relative share path, without the fabric root.
func (l Location) Share() string {
	return path.Join(l.shareSegments()...)
}

// FabricPath returns the share path as addressable on the storage fabric.
func (l Location) FabricPath() string {
	return path.Join(append([]string{datasphere.FabricRoot}, l.shareSegments()...)...)
}
