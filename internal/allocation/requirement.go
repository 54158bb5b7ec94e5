package allocation

import (
	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
)

// Requirement is one line of an employee's standard equipment package:
// derived from department and role, never persisted.
type Requirement struct {
	DeviceType assetDatamodel.DeviceType `json:"type"`
	Quantity   int                       `json:"quantity"`
	Priority   int                       `json:"priority"`
}

// DeriveRequirements maps department and role to the equipment package.
// IT gets a laptop and two monitors, Marketing a laptop and one monitor;
// managers get a phone on top regardless of department. An unrecognized
// department yields an empty list rather than an error.
func DeriveRequirements(department employeeDatamodel.Department, role employeeDatamodel.Role) []Requirement {
	var reqs []Requirement

	switch department {
	case employeeDatamodel.DepartmentIT:
		reqs = []Requirement{
			{DeviceType: assetDatamodel.DeviceLaptop, Quantity: 1, Priority: 1},
			{DeviceType: assetDatamodel.DeviceMonitor, Quantity: 2, Priority: 2},
		}
	case employeeDatamodel.DepartmentMarketing:
		reqs = []Requirement{
			{DeviceType: assetDatamodel.DeviceLaptop, Quantity: 1, Priority: 1},
			{DeviceType: assetDatamodel.DeviceMonitor, Quantity: 1, Priority: 2},
		}
	}

	if role == employeeDatamodel.RoleManager {
		reqs = append(reqs, Requirement{DeviceType: assetDatamodel.DevicePhone, Quantity: 1, Priority: 3})
	}

	return reqs
}
