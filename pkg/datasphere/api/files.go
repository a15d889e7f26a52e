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
	"net/url"
	"os"
)

// FileSnapshotService clones files server side on the storage fabric.
type FileSnapshotService struct {
	client *Client
}

// Clone copies src to dst without moving data through the client. The clone
// does not preserve the permissions of its source.
func (s *FileSnapshotService) Clone(ctx context.Context, src, dst string) error {
	body := struct {
		SourcePath      string `json:"sourcePath"`
		DestinationPath string `json:"destinationPath"`
	}{src, dst}

	return s.client.do(ctx, http.MethodPost, "file-snapshots/clone", nil, body, nil)
}

// FileService addresses individual files on the storage fabric.
type FileService struct {
	client *Client
}

// FileInfo is the backend's view of a single file.
type FileInfo struct {
	Path string `json:"path"`
	// VirtualSizeGB is the size a sparse volume file presents to its
	// consumers, not the space it occupies.
	VirtualSizeGB int64 `json:"virtualSizeGb"`
}

// Stat reports file metadata. A missing file yields a NotFoundError.
func (s *FileService) Stat(ctx context.Context, p string) (*FileInfo, error) {
	query := url.Values{"path": []string{p}}

	var info FileInfo
	if err := s.client.do(ctx, http.MethodGet, "files/stat", query, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Exists probes for a file without treating absence as an error.
func (s *FileService) Exists(ctx context.Context, p string) (bool, error) {
	_, err := s.Stat(ctx, p)
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a file.
func (s *FileService) Delete(ctx context.Context, p string) error {
	query := url.Values{"path": []string{p}}

	return s.client.do(ctx, http.MethodDelete, "files", query, nil, nil)
}

// SetPermissions sets the file mode bits of a file.
func (s *FileService) SetPermissions(ctx context.Context, p string, mode os.FileMode) error {
	body := struct {
		Path string `json:"path"`
		Mode string `json:"mode"`
	}{p, fmt.Sprintf("%04o", mode.Perm())}

	return s.client.do(ctx, http.MethodPost, "files/permissions", nil, body, nil)
}

// Resize sets the virtual size of a sparse volume file.
func (s *FileService) Resize(ctx context.Context, p string, sizeGB int64) error {
	body := struct {
		Path   string `json:"path"`
		SizeGB int64  `json:"sizeGb"`
	}{p, sizeGB}

	return s.client.do(ctx, http.MethodPost, "files/resize", nil, body, nil)
}
