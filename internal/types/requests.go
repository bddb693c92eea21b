package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateSubjectRequest creates a new subject
type CreateSubjectRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CreateChapterRequest adds a chapter to a subject
type CreateChapterRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Content string `json:"content,omitempty" validate:"max=10000"`
}

// CreateTopicRequest adds a topic to a chapter
type CreateTopicRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Content    string `json:"content,omitempty" validate:"max=100000"`
	DocumentID string `json:"document_id,omitempty" validate:"omitempty,uuid"`
}

// UpdateTopicRequest edits a topic's name, notes or linked document
type UpdateTopicRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Content    string `json:"content,omitempty" validate:"max=100000"`
	DocumentID string `json:"document_id,omitempty" validate:"omitempty,uuid"`
}

// CreateJournalEntryRequest records a study session
type CreateJournalEntryRequest struct {
	Subject string  `json:"subject" validate:"required,min=1,max=200"`
	Mood    string  `json:"mood,omitempty" validate:"max=50"`
	Hours   float64 `json:"hours" validate:"gte=0,lte=24"`
	Text    string  `json:"text" validate:"required,min=1"`
}

// AnalyzeTextRequest asks for an analysis of raw text without storing it
type AnalyzeTextRequest struct {
	Text string `json:"text" validate:"required"`
}

var requestValidator = newRequestValidator()

// newRequestValidator reports fields by their JSON names
func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate validates the CreateSubjectRequest using the validator.
func (r *CreateSubjectRequest) Validate() error {
	return requestValidator.Struct(r)
}

// Validate validates the CreateChapterRequest using the validator.
func (r *CreateChapterRequest) Validate() error {
	return requestValidator.Struct(r)
}

// Validate validates the CreateTopicRequest using the validator.
func (r *CreateTopicRequest) Validate() error {
	return requestValidator.Struct(r)
}

// Validate validates the UpdateTopicRequest using the validator.
func (r *UpdateTopicRequest) Validate() error {
	return requestValidator.Struct(r)
}

// Validate validates the CreateJournalEntryRequest using the validator.
func (r *CreateJournalEntryRequest) Validate() error {
	return requestValidator.Struct(r)
}

// Validate validates the AnalyzeTextRequest using the validator.
func (r *AnalyzeTextRequest) Validate() error {
	return requestValidator.Struct(r)
}
