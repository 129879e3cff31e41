package models

// Status is the lifecycle state shared by projects and tasks.
type Status string

const (
	StatusCreated    Status = "CREATED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusOverdue    Status = "OVERDUE"
	StatusCompleted  Status = "COMPLETED"
)

// Valid reports whether the status is one of the four known states.
func (s Status) Valid() bool {
	switch s {
	case StatusCreated, StatusInProgress, StatusOverdue, StatusCompleted:
		return true
	}
	return false
}
