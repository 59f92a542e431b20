package domain

// Stats is the project-wide aggregate computed from stages and tasks.
type Stats struct {
	TotalStages    int
	Completed      int
	InProgress     int
	Pending        int
	Testing        int
	AvgProgress    float64
	HoursWorked    float64 // sum of hours * progress / 100, not rounded
	TotalHours     int
	TotalTasks     int
	CompletedTasks int
}
