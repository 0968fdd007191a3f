package model

import (
	"strings"

	"gradscout/internal/domain"
)

// JobSearchQuery is the immutable input to a search.
type JobSearchQuery struct {
	CareerField string `json:"careerField"`
	Location    string `json:"location"`
}

func NewJobSearchQuery(careerField, location string) (JobSearchQuery, error) {
	careerField = strings.TrimSpace(careerField)
	location = strings.TrimSpace(location)
	if careerField == "" || location == "" {
		return JobSearchQuery{}, domain.ErrInvalidArgument
	}
	return JobSearchQuery{CareerField: careerField, Location: location}, nil
}

// Equal is structural equality on both fields; it decides whether a search
// is already saved.
func (q JobSearchQuery) Equal(other JobSearchQuery) bool {
	return q.CareerField == other.CareerField && q.Location == other.Location
}

func (q JobSearchQuery) IsZero() bool { return q.CareerField == "" && q.Location == "" }
