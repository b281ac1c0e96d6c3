package handler

import (
	"github.com/planejaula/planejaula-api/internal/core/ports"
)

// toUpdateInput maps the wire-level partial update onto the service input.
// Returns a non-empty message when the date field is present but unparseable.
func toUpdateInput(req updateLessonRequest) (ports.UpdateLessonInput, string) {
	in := ports.UpdateLessonInput{
		Title:       req.Title,
		Subject:     req.Subject,
		Class:       req.Class,
		Duration:    req.Duration,
		Objectives:  req.Objectives,
		Content:     req.Content,
		Methodology: req.Methodology,
		Resources:   req.Resources,
		Evaluation:  req.Evaluation,
		Homework:    req.Homework,
		Notes:       req.Notes,
		Status:      req.Status,
	}

	if req.Date != nil {
		date, ok := parseDate(*req.Date)
		if !ok {
			return ports.UpdateLessonInput{}, "date must be a valid date"
		}
		in.Date = &date
	}
	return in, ""
}
