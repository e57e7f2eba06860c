package constants

type TaskType string

const (
	TaskTypeService  TaskType = "SERVICE"
	TaskTypeShipping TaskType = "SHIPPING"
)

func (t TaskType) Valid() bool {
	return t == TaskTypeService || t == TaskTypeShipping
}

type TaskStatus string

const (
	StatusDraft      TaskStatus = "DRAFT"
	StatusPublished  TaskStatus = "PUBLISHED"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
	StatusDone       TaskStatus = "DONE"
	StatusCancelled  TaskStatus = "CANCELLED"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusInProgress, StatusCompleted, StatusDone, StatusCancelled:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "PENDING"
	ApplicationAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationCompleted ApplicationStatus = "COMPLETED"
	ApplicationValidated ApplicationStatus = "VALIDATED"
)

type MessageType string

const (
	MessageText           MessageType = "TEXT"
	MessageValidationCode MessageType = "VALIDATION_CODE"
	MessageSystem         MessageType = "SYSTEM"
)

func (m MessageType) Valid() bool {
	return m == MessageText || m == MessageValidationCode || m == MessageSystem
}
