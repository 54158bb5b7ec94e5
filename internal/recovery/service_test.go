package recovery_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/asset-lifecycle/internal"
	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
	"github.com/frahmantamala/asset-lifecycle/internal/core/events"
	"github.com/frahmantamala/asset-lifecycle/internal/recovery"
	"github.com/shopspring/decimal"
)

func TestRecovery(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Recovery Suite")
}

type mockEmployeeRepo struct {
	employees map[int64]*employeeDatamodel.Employee
}

func (m *mockEmployeeRepo) GetByID(id int64) (*employeeDatamodel.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return nil, errors.New("employee not found")
	}
	return emp, nil
}

type mockAssetRepo struct {
	held          map[int64][]*assetDatamodel.Asset
	scheduleError error
	scheduledDue  time.Time
	scheduledFor  int64
}

func (m *mockAssetRepo) GetByEmployee(employeeID int64) ([]*assetDatamodel.Asset, error) {
	return m.held[employeeID], nil
}

func (m *mockAssetRepo) ScheduleReturns(employeeID int64, dueDate time.Time) (int64, error) {
	if m.scheduleError != nil {
		return 0, m.scheduleError
	}
	m.scheduledFor = employeeID
	m.scheduledDue = dueDate
	return int64(len(m.held[employeeID])), nil
}

type mockPublisher struct {
	published []events.Event
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, event)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("ComputeDueDate", func() {
	It("adds the grace period to the resignation date", func() {
		resignation := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		due := recovery.ComputeDueDate(resignation, 7)
		Expect(due).To(Equal(time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)))
	})

	It("rolls over month boundaries", func() {
		resignation := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
		due := recovery.ComputeDueDate(resignation, 7)
		Expect(due).To(Equal(time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)))
	})
})

var _ = Describe("Recovery Service", func() {
	var (
		employees *mockEmployeeRepo
		assets    *mockAssetRepo
		publisher *mockPublisher
		service   *recovery.Service
		ctx       context.Context
	)

	resignation := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		ctx = context.Background()
		employees = &mockEmployeeRepo{employees: make(map[int64]*employeeDatamodel.Employee)}
		assets = &mockAssetRepo{held: make(map[int64][]*assetDatamodel.Asset)}
		publisher = &mockPublisher{}
		service = recovery.NewService(employees, assets, publisher, 7, testLogger())

		employees.employees[1] = &employeeDatamodel.Employee{
			ID:               1,
			FullName:         "Budi Santoso",
			Email:            "budi@mail.com",
			EmploymentStatus: employeeDatamodel.StatusResigned,
			ResignationDate:  &resignation,
		}
	})

	Describe("ProcessResignation", func() {
		It("schedules returns and publishes the notice", func() {
			holder := int64(1)
			assets.held[1] = []*assetDatamodel.Asset{
				{ID: 10, AssetTag: "LT-0010", DeviceType: assetDatamodel.DeviceLaptop, Status: assetDatamodel.StatusAssigned, AssignedTo: &holder},
				{ID: 11, AssetTag: "MN-0011", DeviceType: assetDatamodel.DeviceMonitor, Status: assetDatamodel.StatusAssigned, AssignedTo: &holder},
			}

			result, err := service.ProcessResignation(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeTrue())
			Expect(result.TotalAssets).To(Equal(2))
			Expect(result.AssetsScheduled).To(Equal(int64(2)))
			Expect(result.NoticeSent).To(BeTrue())
			Expect(*result.ReturnDueDate).To(Equal(resignation.AddDate(0, 0, 7)))
			Expect(assets.scheduledDue).To(Equal(resignation.AddDate(0, 0, 7)))

			Expect(publisher.published).To(HaveLen(1))
			notice, ok := publisher.published[0].(events.ReturnScheduled)
			Expect(ok).To(BeTrue())
			Expect(notice.EmployeeID).To(Equal(int64(1)))
			Expect(notice.Assets).To(HaveLen(2))
		})

		It("succeeds as a no-op when the employee holds nothing", func() {
			result, err := service.ProcessResignation(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeTrue())
			Expect(result.TotalAssets).To(Equal(0))
			Expect(result.ReturnDueDate).To(BeNil())
			Expect(publisher.published).To(BeEmpty())
		})

		It("rejects an employee without a resignation date", func() {
			holder := int64(2)
			employees.employees[2] = &employeeDatamodel.Employee{
				ID:               2,
				FullName:         "Dewi Lestari",
				EmploymentStatus: employeeDatamodel.StatusActive,
			}
			assets.held[2] = []*assetDatamodel.Asset{
				{ID: 20, AssetTag: "LT-0020", DeviceType: assetDatamodel.DeviceLaptop, Status: assetDatamodel.StatusAssigned, AssignedTo: &holder},
			}

			_, err := service.ProcessResignation(ctx, 2)
			Expect(err).To(Equal(internal.ErrMissingResignationDate))
		})

		It("still succeeds when event publishing fails", func() {
			holder := int64(1)
			assets.held[1] = []*assetDatamodel.Asset{
				{ID: 10, AssetTag: "LT-0010", DeviceType: assetDatamodel.DeviceLaptop, Status: assetDatamodel.StatusAssigned, AssignedTo: &holder},
			}
			publisher.err = errors.New("bus down")

			result, err := service.ProcessResignation(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeTrue())
			Expect(result.NoticeSent).To(BeFalse())
		})

		It("fails for an unknown employee", func() {
			_, err := service.ProcessResignation(ctx, 404)
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("ScheduleReturns", func() {
		It("stamps the due date on every held asset", func() {
			holder := int64(1)
			assets.held[1] = []*assetDatamodel.Asset{
				{ID: 10, Status: assetDatamodel.StatusAssigned, AssignedTo: &holder},
			}
			due := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

			result, err := service.ScheduleReturns(1, due)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.AssetsAffected).To(Equal(int64(1)))
			Expect(assets.scheduledFor).To(Equal(int64(1)))
			Expect(assets.scheduledDue).To(Equal(due))
		})
	})

	Describe("Summary", func() {
		It("groups holdings by type and totals the book value", func() {
			holder := int64(1)
			assets.held[1] = []*assetDatamodel.Asset{
				{ID: 10, DeviceType: assetDatamodel.DeviceLaptop, CurrentValue: decimal.NewFromInt(400), Status: assetDatamodel.StatusAssigned, AssignedTo: &holder},
				{ID: 11, DeviceType: assetDatamodel.DeviceMonitor, CurrentValue: decimal.NewFromInt(150), Status: assetDatamodel.StatusAssigned, AssignedTo: &holder},
				{ID: 12, DeviceType: assetDatamodel.DeviceMonitor, CurrentValue: decimal.NewFromInt(100), Status: assetDatamodel.StatusAssigned, AssignedTo: &holder},
			}

			summary, err := service.Summary(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.TotalAssets).To(Equal(3))
			Expect(summary.AssetsByType[assetDatamodel.DeviceMonitor]).To(Equal(2))
			Expect(summary.TotalValue.Equal(decimal.NewFromInt(650))).To(BeTrue())
		})
	})
})
