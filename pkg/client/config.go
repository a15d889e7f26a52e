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
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/primarydatastore/datasphere-provisioner/pkg/datasphere/api"
)

// BackendConfig collects the connection settings for one DataSphere
// metadata engine. Every client gets its own copy, there is no process wide
// connection state.
type BackendConfig struct {
	// Endpoint is the management address, e.g.
	// https://datasphere.example.com.
	Endpoint string `yaml:"endpoint"`
	// Username of the DataSphere admin account.
	Username string `yaml:"username"`
	// Password of the DataSphere admin account.
	Password string `yaml:"password"`
	// VerifySSL toggles TLS certificate verification. Defaults to true.
	VerifySSL *bool `yaml:"verifySsl"`
	// RequestsPerSecond caps the request rate against the management API.
	// Zero means unlimited.
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	// Burst is the number of requests allowed to exceed the rate before
	// throttling kicks in. Defaults to 1, i.e. no bursting.
	Burst int `yaml:"burst"`
}

// LoadBackendConfig reads a YAML backend configuration.
func LoadBackendConfig(r io.Reader) (*BackendConfig, error) {
	cfg := &BackendConfig{Burst: 1}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode backend config: %w", err)
	}

	if cfg.Endpoint == "" {
		return nil, errors.New("backend config: endpoint is required")
	}

	return cfg, nil
}

// Client builds the low-level API client described by the configuration.
func (cfg *BackendConfig) Client(logCfg *api.LogCfg) (*api.Client, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("malformed endpoint %q: %w", cfg.Endpoint, err)
	}

	r := rate.Limit(cfg.RequestsPerSecond)
	if r <= 0 {
		r = rate.Inf
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	verify := cfg.VerifySSL == nil || *cfg.VerifySSL

	options := []api.Option{
		api.BaseURL(u),
		api.BasicAuth(&api.BasicAuthCfg{Username: cfg.Username, Password: cfg.Password}),
		api.HTTPClient(&http.Client{
			Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: !verify}},
		}),
		api.Limit(r, burst),
	}
	if logCfg != nil {
		options = append(options, api.Log(logCfg))
	}

	return api.NewClient(options...)
}
