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
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primarydatastore/datasphere-provisioner/pkg/datasphere"
	"github.com/primarydatastore/datasphere-provisioner/pkg/volume"
)

func testDataSphere(t *testing.T, backend Backend) *DataSphere {
	t.Helper()

	d, err := NewDataSphere(Storage(backend), LogOut(io.Discard))
	require.NoError(t, err)
	return d
}

func testSnapshot() *volume.SnapshotInfo {
	return &volume.SnapshotInfo{
		ID:   "4c4a305b-66f9-4c8a-953b-8e90fbecb8ds",
		Name: "snapshot-4c4a305b",
		SourceVolume: &volume.Info{
			ID:               "ab1b4e2f-3d61-4012-ae2a-95e9121ef628",
			SizeGB:           10,
			ProviderLocation: "filer1:/exports/vols",
		},
	}
}

func TestVolFromSnap(t *testing.T) {
	backend := NewMockBackend()
	backend.Files["/mnt/pdfs/exports/vols/snapshot-4c4a305b"] = &MockFile{SizeGB: 10}

	d := testDataSphere(t, backend)

	vol := &volume.Info{ID: "new-vol", SizeGB: 10}

	loc, err := d.VolFromSnap(context.Background(), testSnapshot(), vol)
	require.NoError(t, err)

	// The new volume lives on the snapshot's share, so the provider
	// location comes back unchanged.
	assert.Equal(t, "filer1:/exports/vols", loc)
	assert.Equal(t, "filer1:/exports/vols", vol.ProviderLocation)

	cloned, ok := backend.Files["/mnt/pdfs/exports/vols/volume-new-vol"]
	require.True(t, ok)
	assert.Equal(t, int64(10), cloned.SizeGB)

	// Permissions are always reset after a clone.
	assert.Equal(t, []string{"/mnt/pdfs/exports/vols/volume-new-vol"}, backend.PermissionCalls)
	assert.Equal(t, datasphere.VolumeFileMode, cloned.Mode)

	// Sizes matched, no resize happened.
	assert.Equal(t, 0, backend.ResizeCalls)
}

func TestVolFromSnapPortalLocation(t *testing.T) {
	backend := NewMockBackend()
	backend.Files["/mnt/pdfs/exports/vols/snapshot-4c4a305b"] = &MockFile{SizeGB: 10}

	d := testDataSphere(t, backend)

	snap := testSnapshot()
	snap.SourceVolume.ProviderLocation = "portal1:/mnt/data-portal/exports/vols"

	vol := &volume.Info{ID: "new-vol", SizeGB: 10}

	loc, err := d.VolFromSnap(context.Background(), snap, vol)
	require.NoError(t, err)
	assert.Equal(t, "portal1:/mnt/data-portal/exports/vols", loc)

	_, ok := backend.Files["/mnt/pdfs/exports/vols/volume-new-vol"]
	assert.True(t, ok)
}

func TestVolFromSnapResizes(t *testing.T) {
	backend := NewMockBackend()
	backend.Files["/mnt/pdfs/exports/vols/snapshot-4c4a305b"] = &MockFile{SizeGB: 10}

	d := testDataSphere(t, backend)

	vol := &volume.Info{ID: "new-vol", SizeGB: 20}

	_, err := d.VolFromSnap(context.Background(), testSnapshot(), vol)
	require.NoError(t, err)

	assert.Equal(t, 1, backend.ResizeCalls)
	assert.Equal(t, int64(20), backend.Files["/mnt/pdfs/exports/vols/volume-new-vol"].SizeGB)
}

func TestVolFromSnapResizeIneffective(t *testing.T) {
	backend := NewMockBackend()
	backend.Files["/mnt/pdfs/exports/vols/snapshot-4c4a305b"] = &MockFile{SizeGB: 10}
	backend.BrokenResize = true

	d := testDataSphere(t, backend)

	vol := &volume.Info{ID: "new-vol", SizeGB: 20}

	_, err := d.VolFromSnap(context.Background(), testSnapshot(), vol)
	require.Error(t, err)

	var mismatch *SizeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, int64(20), mismatch.RequestedGB)
	assert.Equal(t, int64(10), mismatch.ActualGB)

	// Exactly one resize attempt, never a second.
	assert.Equal(t, 1, backend.ResizeCalls)
}

func TestVolFromSnapCloneFails(t *testing.T) {
	backend := NewMockBackend()
	backend.CloneErr = errors.New("fabric unavailable")

	d := testDataSphere(t, backend)

	vol := &volume.Info{ID: "new-vol", SizeGB: 10}

	_, err := d.VolFromSnap(context.Background(), testSnapshot(), vol)
	require.Error(t, err)

	var cloneErr *CloneError
	require.True(t, errors.As(err, &cloneErr))
	assert.Equal(t, "/mnt/pdfs/exports/vols/snapshot-4c4a305b", cloneErr.Src)
	assert.ErrorIs(t, err, backend.CloneErr)
}

func TestVolFromSnapBindsObjective(t *testing.T) {
	backend := NewMockBackend()
	backend.Files["/mnt/pdfs/exports/vols/snapshot-4c4a305b"] = &MockFile{SizeGB: 10}
	backend.Objectives = []volume.Objective{
		{ID: "obj-gold", Name: "gold"},
		{ID: "obj-silver", Name: "silver"},
	}

	d := testDataSphere(t, backend)

	vol := &volume.Info{
		ID:         "new-vol",
		SizeGB:     10,
		Parameters: map[string]string{datasphere.QoSPolicyKey: "gold"},
	}

	_, err := d.VolFromSnap(context.Background(), testSnapshot(), vol)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"exports/vols/volume-new-vol": "obj-gold"}, backend.Bindings)
}

func TestVolFromSnapObjectiveMissing(t *testing.T) {
	backend := NewMockBackend()
	backend.Files["/mnt/pdfs/exports/vols/snapshot-4c4a305b"] = &MockFile{SizeGB: 10}
	backend.Objectives = []volume.Objective{
		{ID: "obj-silver", Name: "silver"},
	}

	d := testDataSphere(t, backend)

	vol := &volume.Info{
		ID:         "new-vol",
		SizeGB:     10,
		Parameters: map[string]string{datasphere.QoSPolicyKey: "platinum"},
	}

	// A policy without a matching objective skips the binding but the
	// volume is still provisioned.
	_, err := d.VolFromSnap(context.Background(), testSnapshot(), vol)
	require.NoError(t, err)

	assert.Empty(t, backend.Bindings)
	assert.Equal(t, 1, backend.CloneCalls)
}

func TestResolveObjective(t *testing.T) {
	backend := NewMockBackend()
	backend.Objectives = []volume.Objective{
		{ID: "X", Name: "gold"},
		{ID: "Y", Name: "silver"},
	}

	d := testDataSphere(t, backend)

	id, err := d.resolveObjective(context.Background(), "gold")
	require.NoError(t, err)
	assert.Equal(t, "X", id)

	_, err = d.resolveObjective(context.Background(), "bronze")
	var notFound *ObjectiveNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "bronze", notFound.Policy)
}

func TestSnapCreate(t *testing.T) {
	backend := NewMockBackend()
	backend.Files["/mnt/pdfs/exports/vols/volume-ab1b4e2f-3d61-4012-ae2a-95e9121ef628"] = &MockFile{SizeGB: 10}

	d := testDataSphere(t, backend)

	snap := testSnapshot()
	snap.ID = ""

	err := d.SnapCreate(context.Background(), snap)
	require.NoError(t, err)

	// Snapshot files are named after the snapshot itself.
	_, ok := backend.Files["/mnt/pdfs/exports/vols/snapshot-4c4a305b"]
	assert.True(t, ok)
	assert.NotEmpty(t, snap.ID)
}

func TestSnapDelete(t *testing.T) {
	backend := NewMockBackend()
	backend.Files["/mnt/pdfs/exports/vols/snapshot-4c4a305b"] = &MockFile{SizeGB: 10}

	d := testDataSphere(t, backend)

	err := d.SnapDelete(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Empty(t, backend.Files)
}

func TestSnapDeleteAbsent(t *testing.T) {
	backend := NewMockBackend()

	d := testDataSphere(t, backend)

	// A snapshot file that is already gone counts as deleted.
	err := d.SnapDelete(context.Background(), testSnapshot())
	assert.NoError(t, err)
}

func TestSnapDeleteProbeFails(t *testing.T) {
	backend := NewMockBackend()
	backend.ExistsErr = errors.New("fabric unavailable")

	d := testDataSphere(t, backend)

	// Unlike absence, a failing probe is surfaced.
	err := d.SnapDelete(context.Background(), testSnapshot())
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.ExistsErr)
}

func TestSnapDeleteFails(t *testing.T) {
	backend := NewMockBackend()
	backend.Files["/mnt/pdfs/exports/vols/snapshot-4c4a305b"] = &MockFile{SizeGB: 10}
	backend.DeleteErr = errors.New("permission denied")

	d := testDataSphere(t, backend)

	err := d.SnapDelete(context.Background(), testSnapshot())
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.DeleteErr)
}
