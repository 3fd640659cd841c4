package activity

import "time"

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	ProjectID    string
	EntityID     string
	ActivityType *ActivityType
	Since        *time.Time
	Limit        int
	Offset       int
}
