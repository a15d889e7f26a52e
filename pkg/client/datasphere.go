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
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pborman/uuid"
	"github.com/sirupsen/logrus"

	"github.com/primarydatastore/datasphere-provisioner/pkg/datasphere"
	"github.com/primarydatastore/datasphere-provisioner/pkg/volume"
)

// DataSphere is a high-level client for provisioning volumes on DataSphere
// storage. Its operations run synchronously; concurrent requests for the
// same destination volume must be serialized by the caller.
type DataSphere struct {
	log      *logrus.Entry
	backend  Backend
	policies PolicyLookup
	fileMode os.FileMode
}

// NewDataSphere returns a high-level DataSphere client.
func NewDataSphere(options ...func(*DataSphere) error) (*DataSphere, error) {
	d := &DataSphere{
		log:      logrus.NewEntry(logrus.New()),
		policies: ParameterPolicyLookup{},
		fileMode: datasphere.VolumeFileMode,
	}

	// run all option functions.
	for _, opt := range options {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	if d.backend == nil {
		return nil, errors.New("no backend configured")
	}

	// Add in fields that may have been configured above.
	d.log = d.log.WithFields(logrus.Fields{
		"provisionerComponent": "client",
	})

	return d, nil
}

// Storage sets the backend all file and objective operations go through.
func Storage(b Backend) func(*DataSphere) error {
	return func(d *DataSphere) error {
		d.backend = b
		return nil
	}
}

// Policies sets the lookup used to resolve a volume's QoS policy name.
func Policies(p PolicyLookup) func(*DataSphere) error {
	return func(d *DataSphere) error {
		d.policies = p
		return nil
	}
}

// FileMode sets the mode applied to freshly cloned volume files.
func FileMode(mode os.FileMode) func(*DataSphere) error {
	return func(d *DataSphere) error {
		d.fileMode = mode
		return nil
	}
}

// LogOut sets the client to write logs to the provided io.Writer instead of
// discarding logs.
func LogOut(out io.Writer) func(*DataSphere) error {
	return func(d *DataSphere) error {
		d.log.Logger.SetOutput(out)
		return nil
	}
}

// LogFmt sets the format of the log output via the provided
// logrus.Formatter.
func LogFmt(fmt logrus.Formatter) func(*DataSphere) error {
	return func(d *DataSphere) error {
		d.log.Logger.SetFormatter(fmt)
		return nil
	}
}

// LogLevel sets the logging intensity. Debug additionally reports the
// function from which the logger was called.
func LogLevel(s string) func(*DataSphere) error {
	return func(d *DataSphere) error {
		level, err := logrus.ParseLevel(s)
		if err != nil {
			return fmt.Errorf("unable to use %s as a logging level: %v", s, err)
		}

		d.log.Logger.SetLevel(level)

		// Report function names on debug
		if level == logrus.DebugLevel {
			d.log.Logger.SetReportCaller(true)
		}
		return nil
	}
}

// VolFromSnap creates a new volume from a snapshot by cloning the snapshot
// file in place on its share. On success the new volume takes over the
// snapshot's provider location, which is returned.
//
// There is no rollback: once the clone succeeded, a failure in a later step
// leaves the cloned file in place for the caller to clean up.
func (s *DataSphere) VolFromSnap(ctx context.Context, snap *volume.SnapshotInfo, vol *volume.Info) (string, error) {
	if snap.SourceVolume == nil {
		return "", fmt.Errorf("snapshot %s has no source volume", snap.Name)
	}

	srcLocation := snap.SourceVolume.ProviderLocation

	loc, err := volume.ParseLocation(srcLocation)
	if err != nil {
		return "", err
	}

	basePath := loc.FabricPath()
	srcPath := path.Join(basePath, snap.Name)
	dstPath := path.Join(basePath, vol.FileName())

	log := s.log.WithFields(logrus.Fields{
		"volume":   vol.ID,
		"snapshot": snap.Name,
		"path":     dstPath,
	})

	// Resolve the objective before touching the fabric. A policy without a
	// matching objective skips the binding but never blocks the clone.
	objectiveID, err := s.objectiveForVolume(ctx, vol)
	if err != nil {
		return "", err
	}

	if err := s.backend.Clone(ctx, srcPath, dstPath); err != nil {
		return "", &CloneError{Src: srcPath, Dst: dstPath, Err: err}
	}

	// The clone does not preserve the source file's permissions.
	if err := s.backend.SetPermissions(ctx, dstPath, s.fileMode); err != nil {
		return "", fmt.Errorf("unable to set permissions on %s: %w", dstPath, err)
	}

	if objectiveID != "" {
		if err := s.backend.BindObjective(ctx, loc.Share(), vol.FileName(), objectiveID); err != nil {
			return "", fmt.Errorf("unable to bind objective %s to %s: %w", objectiveID, vol.FileName(), err)
		}
	}

	log.Debug("checking file for resize")

	sizeGB, err := s.backend.VirtualSizeGB(ctx, dstPath)
	if err != nil {
		return "", fmt.Errorf("unable to verify size of %s: %w", dstPath, err)
	}

	if sizeGB != vol.SizeGB {
		log.WithField("sizeGB", vol.SizeGB).Info("resizing volume file")

		if err := s.backend.Resize(ctx, dstPath, vol.SizeGB); err != nil {
			return "", fmt.Errorf("unable to resize %s: %w", dstPath, err)
		}

		sizeGB, err = s.backend.VirtualSizeGB(ctx, dstPath)
		if err != nil {
			return "", fmt.Errorf("unable to verify size of %s: %w", dstPath, err)
		}

		if sizeGB != vol.SizeGB {
			// One resize attempt only.
			return "", &SizeMismatchError{Path: dstPath, RequestedGB: vol.SizeGB, ActualGB: sizeGB}
		}
	}

	vol.ProviderLocation = srcLocation
	return srcLocation, nil
}

// SnapCreate snapshots a volume by cloning its backing file under the
// snapshot's name on the same share.
func (s *DataSphere) SnapCreate(ctx context.Context, snap *volume.SnapshotInfo) error {
	if snap.SourceVolume == nil {
		return fmt.Errorf("snapshot %s has no source volume", snap.Name)
	}

	loc, err := volume.ParseLocation(snap.SourceVolume.ProviderLocation)
	if err != nil {
		return err
	}

	if snap.ID == "" {
		snap.ID = uuid.New()
	}

	basePath := loc.FabricPath()
	srcPath := path.Join(basePath, snap.SourceVolume.FileName())
	dstPath := path.Join(basePath, snap.Name)

	if err := s.backend.Clone(ctx, srcPath, dstPath); err != nil {
		return &CloneError{Src: srcPath, Dst: dstPath, Err: err}
	}

	return nil
}

// SnapDelete removes a snapshot's backing file. A file that is already gone
// counts as deleted; any other failure is reported to the caller.
func (s *DataSphere) SnapDelete(ctx context.Context, snap *volume.SnapshotInfo) error {
	if snap.SourceVolume == nil {
		return fmt.Errorf("snapshot %s has no source volume", snap.Name)
	}

	loc, err := volume.ParseLocation(snap.SourceVolume.ProviderLocation)
	if err != nil {
		return err
	}

	snapPath := path.Join(loc.FabricPath(), snap.Name)

	exists, err := s.backend.FileExists(ctx, snapPath)
	if err != nil {
		return fmt.Errorf("unable to probe snapshot file %s: %w", snapPath, err)
	}
	if !exists {
		s.log.WithFields(logrus.Fields{
			"file":  snap.Name,
			"share": snap.SourceVolume.ProviderLocation,
		}).Debug("snapshot file not found, nothing to delete")
		return nil
	}

	if err := s.backend.Delete(ctx, snapPath); err != nil {
		return fmt.Errorf("unable to delete snapshot file %s: %w", snapPath, err)
	}

	return nil
}

// objectiveForVolume resolves the volume's QoS policy to a backend objective
// id. It returns "" when the volume has no policy or no objective matches.
func (s *DataSphere) objectiveForVolume(ctx context.Context, vol *volume.Info) (string, error) {
	policy, err := s.policies.QoSPolicy(ctx, vol)
	if err != nil {
		return "", fmt.Errorf("unable to look up QoS policy of volume %s: %w", vol.ID, err)
	}
	if policy == "" {
		return "", nil
	}

	id, err := s.resolveObjective(ctx, policy)
	if err != nil {
		var notFound *ObjectiveNotFoundError
		if errors.As(err, &notFound) {
			s.log.WithFields(logrus.Fields{
				"volume": vol.ID,
				"policy": policy,
			}).Warn("no matching objective, skipping binding")
			return "", nil
		}
		return "", err
	}

	return id, nil
}

// resolveObjective maps a QoS policy name to the backend's objective id.
// The API only supports listing the full catalog, so this scans for the
// first exact name match.
func (s *DataSphere) resolveObjective(ctx context.Context, policy string) (string, error) {
	objectives, err := s.backend.ListObjectives(ctx)
	if err != nil {
		return "", fmt.Errorf("unable to list objectives: %w", err)
	}

	for _, o := range objectives {
		if o.Name == policy {
			return o.ID, nil
		}
	}

	return "", &ObjectiveNotFoundError{Policy: policy}
}
