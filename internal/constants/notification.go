package constants

type NotificationKind string

const (
	NotifyTaskCreated         NotificationKind = "TASK_CREATED"
	NotifyTaskApproved        NotificationKind = "TASK_APPROVED"
	NotifyTaskRejected        NotificationKind = "TASK_REJECTED"
	NotifyApplicationReceived NotificationKind = "APPLICATION_RECEIVED"
	NotifyApplicationAccepted NotificationKind = "APPLICATION_ACCEPTED"
	NotifyApplicationRejected NotificationKind = "APPLICATION_REJECTED"
	NotifyTaskStarted         NotificationKind = "TASK_STARTED"
	NotifyTaskCompleted       NotificationKind = "TASK_COMPLETED"
	NotifyTaskValidated       NotificationKind = "TASK_VALIDATED"
	NotifyMessageReceived     NotificationKind = "MESSAGE_RECEIVED"
	NotifyIntermediaryStep    NotificationKind = "INTERMEDIARY_STEP"
)
