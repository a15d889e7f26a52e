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
	"fmt"
	"os"
	"path"

	"github.com/primarydatastore/datasphere-provisioner/pkg/volume"
)

// MockFile is one file on the MockBackend's fabric.
type MockFile struct {
	SizeGB int64
	Mode   os.FileMode
}

// MockBackend is an in-memory Backend for testing.
type MockBackend struct {
	Files      map[string]*MockFile
	Objectives []volume.Objective
	// Bindings maps "<share>/<relativePath>" to the bound objective id.
	Bindings map[string]string

	// BrokenResize makes resizes report success without changing the file,
	// to simulate resizes that do not take effect.
	BrokenResize bool

	CloneErr  error
	ExistsErr error
	DeleteErr error

	CloneCalls      int
	ResizeCalls     int
	PermissionCalls []string
}

func NewMockBackend() *MockBackend {
	return &MockBackend{
		Files:    make(map[string]*MockFile),
		Bindings: make(map[string]string),
	}
}

func (m *MockBackend) Clone(ctx context.Context, src, dst string) error {
	m.CloneCalls++
	if m.CloneErr != nil {
		return m.CloneErr
	}

	f, ok := m.Files[src]
	if !ok {
		return fmt.Errorf("source %s does not exist", src)
	}

	// Clones do not preserve the source permissions.
	m.Files[dst] = &MockFile{SizeGB: f.SizeGB}
	return nil
}

func (m *MockBackend) Delete(ctx context.Context, p string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	if _, ok := m.Files[p]; !ok {
		return fmt.Errorf("%s does not exist", p)
	}
	delete(m.Files, p)
	return nil
}

func (m *MockBackend) SetPermissions(ctx context.Context, p string, mode os.FileMode) error {
	f, ok := m.Files[p]
	if !ok {
		return fmt.Errorf("%s does not exist", p)
	}

	f.Mode = mode
	m.PermissionCalls = append(m.PermissionCalls, p)
	return nil
}

func (m *MockBackend) ListObjectives(ctx context.Context) ([]volume.Objective, error) {
	return m.Objectives, nil
}

func (m *MockBackend) BindObjective(ctx context.Context, share, relativePath, objectiveID string) error {
	m.Bindings[path.Join(share, relativePath)] = objectiveID
	return nil
}

func (m *MockBackend) FileExists(ctx context.Context, p string) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}

	_, ok := m.Files[p]
	return ok, nil
}

func (m *MockBackend) VirtualSizeGB(ctx context.Context, p string) (int64, error) {
	f, ok := m.Files[p]
	if !ok {
		return 0, fmt.Errorf("%s does not exist", p)
	}
	return f.SizeGB, nil
}

func (m *MockBackend) Resize(ctx context.Context, p string, sizeGB int64) error {
	m.ResizeCalls++

	f, ok := m.Files[p]
	if !ok {
		return fmt.Errorf("%s does not exist", p)
	}

	if !m.BrokenResize {
		f.SizeGB = sizeGB
	}
	return nil
}
