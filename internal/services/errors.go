package services

import (
	"errors"
)

var (
	// ErrNotFound covers missing skills, roadmaps and quizzes; handlers
	// map it to a 404.
	ErrNotFound = errors.New("not found")

	// ErrMalformedGraph is returned when a prerequisite cycle strands
	// nodes during topological traversal.
	ErrMalformedGraph = errors.New("malformed prerequisite graph")

	// ErrCurriculumNotReady is returned when a read needs difficulty
	// levels but the ranker has not run over the roadmap yet.
	ErrCurriculumNotReady = errors.New("curriculum not ready")

	// ErrInvalidEvidence is returned when an evidence tuple carries an
	// unknown source or a weight/confidence outside [0,1].
	ErrInvalidEvidence = errors.New("invalid evidence")
)
