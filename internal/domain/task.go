package domain

import "time"

type Task struct {
	ID        int64
	StageID   int64
	Text      string
	Completed bool
	Position  int // sort key within the stage; gaps allowed after deletes
	CreatedAt time.Time
}
