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

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primarydatastore/datasphere-provisioner/pkg/datasphere/api"
)

func testClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	c, err := api.NewClient(
		api.BaseURL(u),
		api.BasicAuth(&api.BasicAuthCfg{Username: "admin", Password: "secret"}),
	)
	require.NoError(t, err)

	return c
}

func TestClone(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	var gotAuth bool

	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _, gotAuth = r.BasicAuth()
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))

	err := c.FileSnapshots.Clone(context.Background(), "/mnt/pdfs/exports/vols/snap-1", "/mnt/pdfs/exports/vols/volume-abc")
	require.NoError(t, err)

	assert.Equal(t, "/mgmt/v1.2/rest/file-snapshots/clone", gotPath)
	assert.True(t, gotAuth)
	assert.Equal(t, map[string]string{
		"sourcePath":      "/mnt/pdfs/exports/vols/snap-1",
		"destinationPath": "/mnt/pdfs/exports/vols/volume-abc",
	}, gotBody)
}

func TestStat(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mgmt/v1.2/rest/files/stat", r.URL.Path)
		assert.Equal(t, "/mnt/pdfs/exports/vols/volume-abc", r.URL.Query().Get("path"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"path":          "/mnt/pdfs/exports/vols/volume-abc",
			"virtualSizeGb": 10,
		})
	}))

	info, err := c.Files.Stat(context.Background(), "/mnt/pdfs/exports/vols/volume-abc")
	require.NoError(t, err)
	assert.Equal(t, int64(10), info.VirtualSizeGB)
}

func TestExistsNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such file", http.StatusNotFound)
	}))

	_, err := c.Files.Stat(context.Background(), "/mnt/pdfs/exports/vols/gone")
	assert.True(t, api.IsNotFound(err))

	exists, err := c.Files.Exists(context.Background(), "/mnt/pdfs/exports/vols/gone")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAPICallError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "fabric unavailable"})
	}))

	err := c.Files.Resize(context.Background(), "/mnt/pdfs/exports/vols/volume-abc", 10)
	require.Error(t, err)

	apiErr, ok := err.(*api.APICallError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Code)
	assert.Contains(t, apiErr.Error(), "fabric unavailable")
}

func TestListObjectives(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mgmt/v1.2/rest/objectives", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"id": "obj-1", "name": "gold"},
			{"id": "obj-2", "name": "silver"},
		})
	}))

	objectives, err := c.Objectives.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []api.Objective{
		{ID: "obj-1", Name: "gold"},
		{ID: "obj-2", Name: "silver"},
	}, objectives)
}

func TestEnsureCompatible(t *testing.T) {
	testcases := []struct {
		name    string
		version string
		isError bool
	}{
		{name: "exact", version: "v1.2"},
		{name: "newer", version: "v1.3"},
		{name: "unprefixed", version: "1.2"},
		{name: "older", version: "v1.1", isError: true},
	}

	for _, tcase := range testcases {
		tcase := tcase
		t.Run(tcase.name, func(t *testing.T) {
			c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/mgmt/v1.2/rest/version", r.URL.Path)
				_ = json.NewEncoder(w).Encode(map[string]string{"apiVersion": tcase.version})
			}))

			err := c.EnsureCompatible(context.Background())
			if tcase.isError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
