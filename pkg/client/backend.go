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
	"os"

	"github.com/primarydatastore/datasphere-provisioner/pkg/datasphere/api"
	"github.com/primarydatastore/datasphere-provisioner/pkg/volume"
)

// Backend is the narrow surface of the DataSphere management API the
// provisioner depends on. All paths are fabric paths except for objective
// binding, which addresses a file relative to its share.
type Backend interface {
	Clone(ctx context.Context, src, dst string) error
	Delete(ctx context.Context, path string) error
	SetPermissions(ctx context.Context, path string, mode os.FileMode) error
	ListObjectives(ctx context.Context) ([]volume.Objective, error)
	BindObjective(ctx context.Context, share, relativePath, objectiveID string) error
	FileExists(ctx context.Context, path string) (bool, error)
	VirtualSizeGB(ctx context.Context, path string) (int64, error)
	Resize(ctx context.Context, path string, sizeGB int64) error
}

// apiBackend adapts the REST client to the Backend interface.
type apiBackend struct {
	api *api.Client
}

// NewAPIBackend returns a Backend that issues its operations through the
// given REST client.
func NewAPIBackend(c *api.Client) Backend {
	return &apiBackend{api: c}
}

func (b *apiBackend) Clone(ctx context.Context, src, dst string) error {
	return b.api.FileSnapshots.Clone(ctx, src, dst)
}

func (b *apiBackend) Delete(ctx context.Context, path string) error {
	return b.api.Files.Delete(ctx, path)
}

func (b *apiBackend) SetPermissions(ctx context.Context, path string, mode os.FileMode) error {
	return b.api.Files.SetPermissions(ctx, path, mode)
}

func (b *apiBackend) ListObjectives(ctx context.Context) ([]volume.Objective, error) {
	objectives, err := b.api.Objectives.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]volume.Objective, len(objectives))
	for i, o := range objectives {
		out[i] = volume.Objective{ID: o.ID, Name: o.Name}
	}
	return out, nil
}

func (b *apiBackend) BindObjective(ctx context.Context, share, relativePath, objectiveID string) error {
	return b.api.Objectives.Bind(ctx, share, relativePath, objectiveID)
}

func (b *apiBackend) FileExists(ctx context.Context, path string) (bool, error) {
	return b.api.Files.Exists(ctx, path)
}

func (b *apiBackend) VirtualSizeGB(ctx context.Context, path string) (int64, error) {
	info, err := b.api.Files.Stat(ctx, path)
	if err != nil {
		return 0, err
	}
	return info.VirtualSizeGB, nil
}

func (b *apiBackend) Resize(ctx context.Context, path string, sizeGB int64) error {
	return b.api.Files.Resize(ctx, path, sizeGB)
}
