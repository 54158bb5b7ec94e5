package employee_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/asset-lifecycle/internal"
	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
	"github.com/frahmantamala/asset-lifecycle/internal/employee"
)

func TestEmployee(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Suite")
}

type mockRepo struct {
	employees   map[int64]*employeeDatamodel.Employee
	byEmail     map[string]*employeeDatamodel.Employee
	nextID      int64
	createError error
	updateError error
	deleteError error
	deleted     []int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		employees: make(map[int64]*employeeDatamodel.Employee),
		byEmail:   make(map[string]*employeeDatamodel.Employee),
		nextID:    1,
	}
}

func (m *mockRepo) Create(emp *employeeDatamodel.Employee) error {
	if m.createError != nil {
		return m.createError
	}
	emp.ID = m.nextID
	m.nextID++
	m.employees[emp.ID] = emp
	m.byEmail[emp.Email] = emp
	return nil
}

func (m *mockRepo) GetByID(id int64) (*employeeDatamodel.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return nil, errors.New("employee not found")
	}
	return emp, nil
}

func (m *mockRepo) GetByEmail(email string) (*employeeDatamodel.Employee, error) {
	emp, ok := m.byEmail[email]
	if !ok {
		return nil, errors.New("employee not found")
	}
	return emp, nil
}

func (m *mockRepo) GetAll(limit, offset int) ([]*employeeDatamodel.Employee, error) {
	var out []*employeeDatamodel.Employee
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (m *mockRepo) GetByDepartment(department employeeDatamodel.Department) ([]*employeeDatamodel.Employee, error) {
	var out []*employeeDatamodel.Employee
	for _, emp := range m.employees {
		if emp.Department == department {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (m *mockRepo) GetByManager(managerID int64) ([]*employeeDatamodel.Employee, error) {
	var out []*employeeDatamodel.Employee
	for _, emp := range m.employees {
		if emp.ManagerID != nil && *emp.ManagerID == managerID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (m *mockRepo) GetActive() ([]*employeeDatamodel.Employee, error) {
	var out []*employeeDatamodel.Employee
	for _, emp := range m.employees {
		if emp.IsActive() {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (m *mockRepo) Update(emp *employeeDatamodel.Employee) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockRepo) Delete(id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.employees, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepo) Count() (int64, error) {
	return int64(len(m.employees)), nil
}

type mockReleaser struct {
	released map[int64]int64
	err      error
	calls    []int64
}

func (m *mockReleaser) ReleaseByEmployee(employeeID int64) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.calls = append(m.calls, employeeID)
	return m.released[employeeID], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("Employee Service", func() {
	var (
		repo     *mockRepo
		releaser *mockReleaser
		service  *employee.Service
	)

	BeforeEach(func() {
		repo = newMockRepo()
		releaser = &mockReleaser{released: make(map[int64]int64)}
		service = employee.NewService(repo, releaser, testLogger())
	})

	Describe("CreateEmployee", func() {
		dto := employee.CreateEmployeeDTO{
			FullName:   "Budi Santoso",
			Email:      "budi@mail.com",
			Department: employeeDatamodel.DepartmentIT,
			Role:       employeeDatamodel.RoleStaff,
			HireDate:   time.Now().AddDate(-2, 0, 0),
		}

		It("creates an active employee with derived tenure", func() {
			emp, err := service.CreateEmployee(dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(emp.ID).To(Equal(int64(1)))
			Expect(emp.EmploymentStatus).To(Equal(employeeDatamodel.StatusActive))
			Expect(emp.WorkMode).To(Equal("office"))
			Expect(emp.TenureMonths).To(BeNumerically("~", 24, 1))
		})

		It("rejects a duplicate email", func() {
			_, err := service.CreateEmployee(dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateEmployee(dto)
			Expect(err).To(HaveOccurred())

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateEmail))
		})

		It("rejects missing required fields", func() {
			_, err := service.CreateEmployee(employee.CreateEmployeeDTO{Email: "x@mail.com"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("MarkResigned", func() {
		var empID int64

		BeforeEach(func() {
			emp, err := service.CreateEmployee(employee.CreateEmployeeDTO{
				FullName:   "Dewi Lestari",
				Email:      "dewi@mail.com",
				Department: employeeDatamodel.DepartmentMarketing,
				Role:       employeeDatamodel.RoleStaff,
				HireDate:   time.Now().AddDate(-1, 0, 0),
			})
			Expect(err).NotTo(HaveOccurred())
			empID = emp.ID
		})

		It("stamps the date and flips the status", func() {
			resignation := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

			emp, err := service.MarkResigned(empID, employee.ResignEmployeeDTO{ResignationDate: resignation})
			Expect(err).NotTo(HaveOccurred())
			Expect(emp.EmploymentStatus).To(Equal(employeeDatamodel.StatusResigned))
			Expect(*emp.ResignationDate).To(Equal(resignation))
		})

		It("requires a resignation date", func() {
			_, err := service.MarkResigned(empID, employee.ResignEmployeeDTO{})
			Expect(err).To(HaveOccurred())
		})

		It("fails for an unknown employee", func() {
			_, err := service.MarkResigned(404, employee.ResignEmployeeDTO{ResignationDate: time.Now()})
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("DeleteEmployee", func() {
		var empID int64

		BeforeEach(func() {
			emp, err := service.CreateEmployee(employee.CreateEmployeeDTO{
				FullName:   "Sari Wijaya",
				Email:      "sari@mail.com",
				Department: employeeDatamodel.DepartmentIT,
				Role:       employeeDatamodel.RoleManager,
				HireDate:   time.Now().AddDate(-3, 0, 0),
			})
			Expect(err).NotTo(HaveOccurred())
			empID = emp.ID
		})

		It("releases held assets before deleting the record", func() {
			releaser.released[empID] = 3

			err := service.DeleteEmployee(empID)
			Expect(err).NotTo(HaveOccurred())
			Expect(releaser.calls).To(Equal([]int64{empID}))
			Expect(repo.deleted).To(Equal([]int64{empID}))
		})

		It("aborts the delete when asset release fails", func() {
			releaser.err = errors.New("db down")

			err := service.DeleteEmployee(empID)
			Expect(err).To(HaveOccurred())
			Expect(repo.deleted).To(BeEmpty())
		})

		It("fails for an unknown employee", func() {
			err := service.DeleteEmployee(404)
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("UpdateEmployee", func() {
		It("recomputes tenure when the hire date changes", func() {
			emp, err := service.CreateEmployee(employee.CreateEmployeeDTO{
				FullName:   "Budi Santoso",
				Email:      "budi@mail.com",
				Department: employeeDatamodel.DepartmentIT,
				Role:       employeeDatamodel.RoleStaff,
				HireDate:   time.Now().AddDate(-1, 0, 0),
			})
			Expect(err).NotTo(HaveOccurred())

			newHire := time.Now().AddDate(-4, 0, 0)
			updated, err := service.UpdateEmployee(emp.ID, employee.UpdateEmployeeDTO{HireDate: &newHire})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.TenureMonths).To(BeNumerically("~", 48, 2))
		})
	})
})
