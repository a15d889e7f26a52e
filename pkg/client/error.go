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

import "fmt"

// CloneError reports a failed server side clone. The provisioner does not
// retry clones; rescheduling is the caller's responsibility.
type CloneError struct {
	Src string
	Dst string
	Err error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("clone of %s to %s failed: %v", e.Src, e.Dst, e.Err)
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

// SizeMismatchError reports that a cloned volume file still has the wrong
// virtual size after the single permitted resize attempt.
type SizeMismatchError struct {
	Path        string
	RequestedGB int64
	ActualGB    int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("resizing %s failed, requested %d GB but the file reports %d GB", e.Path, e.RequestedGB, e.ActualGB)
}

// ObjectiveNotFoundError reports a QoS policy name with no matching backend
// objective. Callers treat it as "no binding performed", not as a hard
// failure.
type ObjectiveNotFoundError struct {
	Policy string
}

func (e *ObjectiveNotFoundError) Error() string {
	return fmt.Sprintf("no objective matches QoS policy %q", e.Policy)
}
