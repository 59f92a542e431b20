package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/stagetrack/internal/domain"
)

// Document is the portable export/import format: stages in display order,
// each with its tasks in display order. It carries no ids or timestamps.
type Document []StageDocument

// StageDocument is one stage in a Document. Number and Progress are optional
// on import; export always fills them.
type StageDocument struct {
	Number      *int           `json:"number,omitempty"`
	Name        string         `json:"name"`
	Icon        string         `json:"icon"`
	Weeks       string         `json:"weeks"`
	Hours       int            `json:"hours"`
	Cost        int64          `json:"cost"`
	Status      string         `json:"status"`
	Brief       string         `json:"brief"`
	Description string         `json:"description"`
	Progress    *int           `json:"progress,omitempty"`
	Tasks       []TaskDocument `json:"tasks"`
}

// TaskDocument is one task in a StageDocument.
type TaskDocument struct {
	Text      string `json:"text"`
	Completed Flag   `json:"completed"`
}

// Flag is a boolean that also accepts 0/1, which older exports used.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1":
		*f = true
	case "false", "0", "null":
		*f = false
	default:
		return fmt.Errorf("completed: expected boolean, got %s", data)
	}
	return nil
}

// Parse decodes raw JSON into a Document. Anything other than an array of
// stage objects whose fields have the expected types is a ValidationError.
func Parse(raw []byte) (Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, domain.NewValidationError("", "Invalid data format: expected an array of stages")
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, domain.NewValidationError("", "Invalid data format: %v", err)
	}

	var errs []error
	doc := make(Document, 0, len(elems))
	for i, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			errs = append(errs, fmt.Errorf("stages[%d]: expected an object", i))
			continue
		}
		var sd StageDocument
		if err := json.Unmarshal(elem, &sd); err != nil {
			errs = append(errs, fmt.Errorf("stages[%d]: %s", i, describeDecodeError(err)))
			continue
		}
		doc = append(doc, sd)
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationError("", "Invalid data format: %v", errors.Join(errs...))
	}
	return doc, nil
}

// Load reads and parses a document file.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}
	return err.Error()
}
