package events

import (
	"time"

	"github.com/google/uuid"
)

const TypeReturnScheduled = "recovery.return_scheduled"

// ReturnAsset is one line of the asset list carried in a return notice.
type ReturnAsset struct {
	AssetTag      string `json:"asset_tag"`
	DeviceType    string `json:"device_type"`
	Brand         string `json:"brand"`
	Model         string `json:"model"`
	Condition     string `json:"condition"`
	ReturnDueDate string `json:"return_due_date"`
}

// ReturnScheduled is emitted after a recovery schedule commits. The
// scheduler does not wait on anything downstream of this event.
type ReturnScheduled struct {
	ID              string        `json:"id"`
	Timestamp       time.Time     `json:"timestamp"`
	EmployeeID      int64         `json:"employee_id"`
	EmployeeName    string        `json:"employee_name"`
	EmployeeEmail   string        `json:"employee_email"`
	ManagerEmail    string        `json:"manager_email,omitempty"`
	ResignationDate time.Time     `json:"resignation_date"`
	ReturnDueDate   time.Time     `json:"return_due_date"`
	Assets          []ReturnAsset `json:"assets"`
}

func NewReturnScheduled(employeeID int64) ReturnScheduled {
	return ReturnScheduled{
		ID:         uuid.NewString(),
		Timestamp:  time.Now(),
		EmployeeID: employeeID,
	}
}

func (e ReturnScheduled) EventType() string {
	return TypeReturnScheduled
}

func (e ReturnScheduled) EventID() string {
	return e.ID
}

func (e ReturnScheduled) OccurredAt() time.Time {
	return e.Timestamp
}

func (e ReturnScheduled) Payload() interface{} {
	return e
}
