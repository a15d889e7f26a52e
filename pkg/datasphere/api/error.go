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
	"errors"
	"fmt"
)

// NotFoundError is returned when the API reports 404 for a resource.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// APICallError is returned for API responses other than 404 that indicate
// a failure.
type APICallError struct {
	Code    int
	Message string
}

func (e *APICallError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API call failed with status %d", e.Code)
	}
	return fmt.Sprintf("API call failed with status %d: %s", e.Code, e.Message)
}
