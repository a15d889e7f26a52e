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

	"github.com/primarydatastore/datasphere-provisioner/pkg/datasphere"
	"github.com/primarydatastore/datasphere-provisioner/pkg/volume"
)

// PolicyLookup resolves the QoS policy name configured for a volume. An
// empty name means the volume has no QoS association.
type PolicyLookup interface {
	QoSPolicy(ctx context.Context, vol *volume.Info) (string, error)
}

// ParameterPolicyLookup reads the policy name from the volume's own
// parameters. Volumes without parameters have no policy.
type ParameterPolicyLookup struct{}

func (ParameterPolicyLookup) QoSPolicy(ctx context.Context, vol *volume.Info) (string, error) {
	return vol.Parameters[datasphere.QoSPolicyKey], nil
}
