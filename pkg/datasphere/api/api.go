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

// Package api is a low-level client for the DataSphere management REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/primarydatastore/datasphere-provisioner/pkg/datasphere"
)

// Client speaks the DataSphere management REST API on the metadata engine.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	basicAuth  *BasicAuthCfg
	lim        *rate.Limiter
	log        *logrus.Entry

	FileSnapshots *FileSnapshotService
	Files         *FileService
	Objectives    *ObjectiveService
	Shares        *ShareService
}

// BasicAuthCfg holds the credentials of the DataSphere admin account.
type BasicAuthCfg struct {
	Username string
	Password string
}

// LogCfg configures the client's logging behavior.
type LogCfg struct {
	Out       io.Writer
	Formatter logrus.Formatter
	Level     string
}

// Option configures a Client during construction.
type Option func(*Client) error

// NewClient returns a new DataSphere API client. By default it will try to
// connect with https://localhost.
func NewClient(options ...Option) (*Client, error) {
	base, err := url.Parse("https://localhost" + datasphere.APIPath)
	if err != nil {
		return nil, err
	}

	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    base,
		lim:        rate.NewLimiter(rate.Inf, 1),
		log:        logrus.NewEntry(logrus.New()),
	}

	for _, opt := range options {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.log = c.log.WithFields(logrus.Fields{
		"provisionerComponent": "api",
	})

	c.FileSnapshots = &FileSnapshotService{client: c}
	c.Files = &FileService{client: c}
	c.Objectives = &ObjectiveService{client: c}
	c.Shares = &ShareService{client: c}

	return c, nil
}

// BaseURL sets the management endpoint, e.g. https://datasphere.example.com.
// The REST API prefix is appended when missing.
func BaseURL(u *url.URL) Option {
	return func(c *Client) error {
		cp := *u
		if !strings.HasSuffix(cp.Path, datasphere.APIPath) {
			cp.Path = strings.TrimSuffix(cp.Path, "/") + datasphere.APIPath
		}
		c.baseURL = &cp
		return nil
	}
}

// BasicAuth sets the credentials sent with every request.
func BasicAuth(cfg *BasicAuthCfg) Option {
	return func(c *Client) error {
		c.basicAuth = cfg
		return nil
	}
}

// HTTPClient replaces the http.Client used for all requests, e.g. to skip
// TLS verification.
func HTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = httpClient
		return nil
	}
}

// Limit caps the request rate against the management API.
func Limit(r rate.Limit, b int) Option {
	return func(c *Client) error {
		c.lim = rate.NewLimiter(r, b)
		return nil
	}
}

// Log sets the logging output, format and level of the client.
func Log(cfg *LogCfg) Option {
	return func(c *Client) error {
		if cfg == nil {
			return nil
		}
		if cfg.Out != nil {
			c.log.Logger.SetOutput(cfg.Out)
		}
		if cfg.Formatter != nil {
			c.log.Logger.SetFormatter(cfg.Formatter)
		}
		if cfg.Level != "" {
			level, err := logrus.ParseLevel(cfg.Level)
			if err != nil {
				return fmt.Errorf("unable to use %s as a logging level: %v", cfg.Level, err)
			}
			c.log.Logger.SetLevel(level)
		}
		return nil
	}
}

// do issues a single API call. Every request passes through here, so this is
// also where call tracing happens.
func (c *Client) do(ctx context.Context, method, rel string, query url.Values, body, out interface{}) error {
	if err := c.lim.Wait(ctx); err != nil {
		return err
	}

	u := *c.baseURL
	u.Path = path.Join(u.Path, rel)
	u.RawQuery = query.Encode()

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("unable to encode request body: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.basicAuth != nil {
		req.SetBasicAuth(c.basicAuth.Username, c.basicAuth.Password)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"method": method,
			"url":    u.String(),
		}).Warn("API call failed")
		return err
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"url":      u.String(),
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("API call")

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{Path: u.Path}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APICallError{Code: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&msg); err == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("unable to decode response of %s %s: %w", method, u.Path, err)
		}
	}

	return nil
}
