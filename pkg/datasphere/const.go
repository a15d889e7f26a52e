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

package datasphere

import "os"

const (
	// APIVersion is the oldest management API generation the provisioner
	// knows how to talk to.
	APIVersion = "1.2"

	// APIPath is the REST prefix of the management API on the metadata
	// engine.
	APIPath = "/mgmt/v" + APIVersion + "/rest/"

	// FabricRoot is the path under which every share is reachable on the
	// storage fabric.
	FabricRoot = "/mnt/pdfs"

	// PortalMountMarker identifies share paths reported through a data
	// portal. Portal mounts live under /mnt/data-portal, so the three
	// leading path segments are portal specific and must be stripped.
	PortalMountMarker = "data-portal"

	// VolumePrefix is the file name prefix of volume backing files on a
	// share. Existing deployments depend on this exact spelling.
	VolumePrefix = "volume-"

	// ParameterNamespace is the preferred namespace when setting volume
	// parameters.
	ParameterNamespace = "datasphere.primarydata.com"

	// QoSPolicyKey is the volume parameter naming the QoS policy a volume
	// should be bound to.
	QoSPolicyKey = ParameterNamespace + "/qos-policy"
)

// VolumeFileMode is applied to freshly cloned volume files. The clone call
// does not preserve the permissions of its source.
const VolumeFileMode os.FileMode = 0o660
