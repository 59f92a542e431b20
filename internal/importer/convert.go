package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/stagetrack/internal/domain"
)

// ToStages converts a parsed document into stages ready for insertion, in
// document order. A missing number becomes the 1-based document index, a
// missing progress becomes 0 and a blank status becomes pending. Tasks get
// position equal to their index.
func ToStages(doc Document) []*domain.Stage {
	now := time.Now().UTC()

	stages := make([]*domain.Stage, 0, len(doc))
	for i, sd := range doc {
		status := strings.TrimSpace(sd.Status)
		if status == "" {
			status = string(domain.StagePending)
		}

		s := &domain.Stage{
			Number:      domain.ValueOr(sd.Number, i+1),
			Name:        sd.Name,
			Icon:        sd.Icon,
			Weeks:       sd.Weeks,
			Hours:       sd.Hours,
			Cost:        sd.Cost,
			Status:      domain.StageStatus(status),
			Brief:       sd.Brief,
			Description: sd.Description,
			Progress:    domain.ValueOr(sd.Progress, 0),
			CreatedAt:   now,
			UpdatedAt:   now,
			Tasks:       make([]*domain.Task, 0, len(sd.Tasks)),
		}
		for pos, td := range sd.Tasks {
			s.Tasks = append(s.Tasks, &domain.Task{
				Text:      td.Text,
				Completed: bool(td.Completed),
				Position:  pos,
				CreatedAt: now,
			})
		}
		stages = append(stages, s)
	}
	return stages
}

// FromStages builds the export document. Stages and their tasks must already
// be in display order.
func FromStages(stages []*domain.Stage) Document {
	doc := make(Document, 0, len(stages))
	for _, s := range stages {
		number, progress := s.Number, s.Progress
		sd := StageDocument{
			Number:      &number,
			Name:        s.Name,
			Icon:        s.Icon,
			Weeks:       s.Weeks,
			Hours:       s.Hours,
			Cost:        s.Cost,
			Status:      string(s.Status),
			Brief:       s.Brief,
			Description: s.Description,
			Progress:    &progress,
			Tasks:       make([]TaskDocument, 0, len(s.Tasks)),
		}
		for _, t := range s.Tasks {
			sd.Tasks = append(sd.Tasks, TaskDocument{Text: t.Text, Completed: Flag(t.Completed)})
		}
		doc = append(doc, sd)
	}
	return doc
}
