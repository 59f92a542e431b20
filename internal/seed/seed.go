// Package seed holds the default project template loaded into an empty store.
package seed

import (
	_ "embed"
	"fmt"

	"github.com/alexanderramin/stagetrack/internal/domain"
	"github.com/alexanderramin/stagetrack/internal/importer"
)

//go:embed default_stages.json
var defaultStagesJSON []byte

// DefaultDocument returns the embedded template as an import document.
func DefaultDocument() (importer.Document, error) {
	doc, err := importer.Parse(defaultStagesJSON)
	if err != nil {
		return nil, fmt.Errorf("parsing default template: %w", err)
	}
	return doc, nil
}

// DefaultStages returns fresh stage values for the template, in template
// order, with task positions set to their index.
func DefaultStages() ([]*domain.Stage, error) {
	doc, err := DefaultDocument()
	if err != nil {
		return nil, err
	}
	return importer.ToStages(doc), nil
}
