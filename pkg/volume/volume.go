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
	"context"

	"github.com/primarydatastore/datasphere-provisioner/pkg/datasphere"
)

// Info provides everything needed to manipulate a volume.
type Info struct {
	ID     string `json:"id"`
	SizeGB int64  `json:"sizeGB"`
	// ProviderLocation encodes where the volume's backing file lives, as
	// "<host>:<absoluteSharePath>".
	ProviderLocation string `json:"providerLocation"`
	// Parameters carry provisioning hints, for example the QoS policy the
	// volume should be bound to.
	Parameters map[string]string `json:"parameters"`
}

// FileName returns the name of the volume's backing file on its share.
func (i *Info) FileName() string {
	return datasphere.VolumePrefix + i.ID
}

// SnapshotInfo describes a point-in-time copy of a volume. Snapshot files
// are named after the snapshot itself and live on the source volume's share.
type SnapshotInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SourceVolume *Info  `json:"sourceVolume"`
}

// Objective is a backend defined performance policy, identified by a
// backend assigned id and a human readable name.
type Objective struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SnapshotCreateDeleter handles the snapshot lifecycle and volumes cloned
// from snapshots.
type SnapshotCreateDeleter interface {
	SnapCreate(ctx context.Context, snap *SnapshotInfo) error
	SnapDelete(ctx context.Context, snap *SnapshotInfo) error
	// VolFromSnap creates a new volume based on the provided snapshot and
	// returns the new volume's provider location.
	VolFromSnap(ctx context.Context, snap *SnapshotInfo, vol *Info) (string, error)
}
