package event_bus

// TaskCompletedEvent is published when a task transitions to the done status.
const TaskCompletedEvent EventType = "task.completed"

type TaskCompleted struct {
	TaskID    string
	ProjectID string
}
