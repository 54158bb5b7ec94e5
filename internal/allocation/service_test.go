package allocation_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/asset-lifecycle/internal"
	"github.com/frahmantamala/asset-lifecycle/internal/allocation"
	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
)

func TestAllocation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Allocation Suite")
}

type mockEmployeeRepo struct {
	employees map[int64]*employeeDatamodel.Employee
	getError  error
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[int64]*employeeDatamodel.Employee)}
}

func (m *mockEmployeeRepo) GetByID(id int64) (*employeeDatamodel.Employee, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	emp, ok := m.employees[id]
	if !ok {
		return nil, errors.New("employee not found")
	}
	return emp, nil
}

type mockAssetRepo struct {
	assets     map[int64]*assetDatamodel.Asset
	available  map[assetDatamodel.DeviceType][]*assetDatamodel.Asset
	claimError map[int64]error
	findError  error
}

func newMockAssetRepo() *mockAssetRepo {
	return &mockAssetRepo{
		assets:     make(map[int64]*assetDatamodel.Asset),
		available:  make(map[assetDatamodel.DeviceType][]*assetDatamodel.Asset),
		claimError: make(map[int64]error),
	}
}

func (m *mockAssetRepo) addAvailable(a *assetDatamodel.Asset) {
	m.assets[a.ID] = a
	m.available[a.DeviceType] = append(m.available[a.DeviceType], a)
}

func (m *mockAssetRepo) GetByID(id int64) (*assetDatamodel.Asset, error) {
	a, ok := m.assets[id]
	if !ok {
		return nil, errors.New("asset not found")
	}
	return a, nil
}

func (m *mockAssetRepo) FindAvailable(deviceType assetDatamodel.DeviceType, limit int) ([]*assetDatamodel.Asset, error) {
	if m.findError != nil {
		return nil, m.findError
	}
	var out []*assetDatamodel.Asset
	for _, a := range m.available[deviceType] {
		if a.Status == assetDatamodel.StatusAvailable && a.AssignedTo == nil {
			out = append(out, a)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockAssetRepo) Claim(assetID, employeeID int64, assignmentDate time.Time) error {
	if err := m.claimError[assetID]; err != nil {
		return err
	}
	a, ok := m.assets[assetID]
	if !ok || a.Status != assetDatamodel.StatusAvailable || a.AssignedTo != nil {
		return internal.ErrAssetUnavailable
	}
	a.Status = assetDatamodel.StatusAssigned
	a.AssignedTo = &employeeID
	a.AssignmentDate = &assignmentDate
	return nil
}

func (m *mockAssetRepo) GetByEmployee(employeeID int64) ([]*assetDatamodel.Asset, error) {
	var out []*assetDatamodel.Asset
	for _, a := range m.assets {
		if a.AssignedTo != nil && *a.AssignedTo == employeeID && a.Status == assetDatamodel.StatusAssigned {
			out = append(out, a)
		}
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("DeriveRequirements", func() {
	It("gives IT staff one laptop and two monitors", func() {
		reqs := allocation.DeriveRequirements(employeeDatamodel.DepartmentIT, employeeDatamodel.RoleStaff)
		Expect(reqs).To(HaveLen(2))
		Expect(reqs[0].DeviceType).To(Equal(assetDatamodel.DeviceLaptop))
		Expect(reqs[0].Quantity).To(Equal(1))
		Expect(reqs[0].Priority).To(Equal(1))
		Expect(reqs[1].DeviceType).To(Equal(assetDatamodel.DeviceMonitor))
		Expect(reqs[1].Quantity).To(Equal(2))
	})

	It("gives marketing staff one laptop and one monitor", func() {
		reqs := allocation.DeriveRequirements(employeeDatamodel.DepartmentMarketing, employeeDatamodel.RoleStaff)
		Expect(reqs).To(HaveLen(2))
		Expect(reqs[1].Quantity).To(Equal(1))
	})

	It("appends a phone for managers regardless of department", func() {
		reqs := allocation.DeriveRequirements(employeeDatamodel.DepartmentIT, employeeDatamodel.RoleManager)
		Expect(reqs).To(HaveLen(3))
		Expect(reqs[2].DeviceType).To(Equal(assetDatamodel.DevicePhone))
		Expect(reqs[2].Priority).To(Equal(3))
	})

	It("returns an empty package for an unknown department", func() {
		reqs := allocation.DeriveRequirements("finance", employeeDatamodel.RoleStaff)
		Expect(reqs).To(BeEmpty())
	})

	It("still gives an unknown-department manager a phone", func() {
		reqs := allocation.DeriveRequirements("finance", employeeDatamodel.RoleManager)
		Expect(reqs).To(HaveLen(1))
		Expect(reqs[0].DeviceType).To(Equal(assetDatamodel.DevicePhone))
	})
})

var _ = Describe("Allocation Service", func() {
	var (
		employees *mockEmployeeRepo
		assets    *mockAssetRepo
		service   *allocation.Service
	)

	BeforeEach(func() {
		employees = newMockEmployeeRepo()
		assets = newMockAssetRepo()
		service = allocation.NewService(employees, assets, testLogger())

		employees.employees[1] = &employeeDatamodel.Employee{
			ID:               1,
			FullName:         "Budi Santoso",
			Department:       employeeDatamodel.DepartmentIT,
			Role:             employeeDatamodel.RoleStaff,
			EmploymentStatus: employeeDatamodel.StatusActive,
		}
	})

	Describe("Assign", func() {
		It("claims an available asset", func() {
			assets.addAvailable(&assetDatamodel.Asset{
				ID:         10,
				AssetTag:   "LT-0010",
				DeviceType: assetDatamodel.DeviceLaptop,
				Status:     assetDatamodel.StatusAvailable,
				Condition:  assetDatamodel.ConditionGood,
			})

			result, err := service.Assign(1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.AssetTag).To(Equal("LT-0010"))
			Expect(result.EmployeeName).To(Equal("Budi Santoso"))
			Expect(assets.assets[10].Status).To(Equal(assetDatamodel.StatusAssigned))
			Expect(*assets.assets[10].AssignedTo).To(Equal(int64(1)))
		})

		It("rejects an asset that is already assigned", func() {
			holder := int64(99)
			assets.assets[11] = &assetDatamodel.Asset{
				ID:         11,
				DeviceType: assetDatamodel.DeviceLaptop,
				Status:     assetDatamodel.StatusAssigned,
				AssignedTo: &holder,
			}

			_, err := service.Assign(1, 11)
			Expect(err).To(Equal(internal.ErrAssetUnavailable))
		})

		It("returns not found for an unknown asset", func() {
			_, err := service.Assign(1, 404)
			Expect(err).To(Equal(internal.ErrAssetNotFound))
		})

		It("returns not found for an unknown employee", func() {
			assets.addAvailable(&assetDatamodel.Asset{
				ID:         12,
				DeviceType: assetDatamodel.DeviceLaptop,
				Status:     assetDatamodel.StatusAvailable,
			})

			_, err := service.Assign(404, 12)
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("AllocateForEmployee", func() {
		It("fulfils the full package when stock is there", func() {
			assets.addAvailable(&assetDatamodel.Asset{ID: 1, AssetTag: "LT-1", DeviceType: assetDatamodel.DeviceLaptop, Status: assetDatamodel.StatusAvailable})
			assets.addAvailable(&assetDatamodel.Asset{ID: 2, AssetTag: "MN-1", DeviceType: assetDatamodel.DeviceMonitor, Status: assetDatamodel.StatusAvailable})
			assets.addAvailable(&assetDatamodel.Asset{ID: 3, AssetTag: "MN-2", DeviceType: assetDatamodel.DeviceMonitor, Status: assetDatamodel.StatusAvailable})

			result, err := service.AllocateForEmployee(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeTrue())
			Expect(result.CompletedCount).To(Equal(3))
			Expect(result.Shortfalls).To(BeEmpty())
			Expect(result.Summary.TotalAssets).To(Equal(3))
		})

		It("assigns what is there and records the shortfall", func() {
			assets.addAvailable(&assetDatamodel.Asset{ID: 1, AssetTag: "LT-1", DeviceType: assetDatamodel.DeviceLaptop, Status: assetDatamodel.StatusAvailable})
			assets.addAvailable(&assetDatamodel.Asset{ID: 2, AssetTag: "MN-1", DeviceType: assetDatamodel.DeviceMonitor, Status: assetDatamodel.StatusAvailable})

			result, err := service.AllocateForEmployee(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeFalse())
			Expect(result.CompletedCount).To(Equal(2))
			Expect(result.Shortfalls).To(HaveLen(1))
			Expect(result.Shortfalls[0].DeviceType).To(Equal(assetDatamodel.DeviceMonitor))
			Expect(result.Shortfalls[0].Required).To(Equal(2))
			Expect(result.Shortfalls[0].Available).To(Equal(1))
		})

		It("turns a lost claim race into a shortfall and keeps going", func() {
			assets.addAvailable(&assetDatamodel.Asset{ID: 1, AssetTag: "LT-1", DeviceType: assetDatamodel.DeviceLaptop, Status: assetDatamodel.StatusAvailable})
			assets.addAvailable(&assetDatamodel.Asset{ID: 2, AssetTag: "MN-1", DeviceType: assetDatamodel.DeviceMonitor, Status: assetDatamodel.StatusAvailable})
			assets.addAvailable(&assetDatamodel.Asset{ID: 3, AssetTag: "MN-2", DeviceType: assetDatamodel.DeviceMonitor, Status: assetDatamodel.StatusAvailable})
			assets.claimError[2] = internal.ErrAssetUnavailable

			result, err := service.AllocateForEmployee(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeFalse())
			Expect(result.CompletedCount).To(Equal(2))
			Expect(result.Shortfalls).To(HaveLen(1))
		})

		It("reports every requirement as a shortfall on an empty pool", func() {
			result, err := service.AllocateForEmployee(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeFalse())
			Expect(result.CompletedCount).To(Equal(0))
			Expect(result.Shortfalls).To(HaveLen(2))
		})

		It("fails for an unknown employee", func() {
			_, err := service.AllocateForEmployee(404)
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})
})
