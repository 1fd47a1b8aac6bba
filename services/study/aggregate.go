package study

import "quizdeck/models"

// Progress is the three-bucket histogram of a module's terms for one
// user, as fractions of the module's term count. Buckets sum to 1.0 when
// the module has terms, and are all zero otherwise.
type Progress struct {
	NotStarted float64 `json:"not_started"`
	InProgress float64 `json:"in_progress"`
	Completed  float64 `json:"completed"`
}

// Aggregate folds progress rows into fractions. A module the user merely
// browsed but never collected reports 100% not-started without any rows
// being read or written; so does a collected module whose rows have not
// been materialized yet — synchronization is the caller's job and is
// never forced from here.
func Aggregate(rows []models.UserTermProgress, termCount int, isCollected bool) Progress {
	if termCount == 0 {
		return Progress{}
	}
	if !isCollected || len(rows) == 0 {
		return Progress{NotStarted: 1}
	}

	var notStarted, inProgress, completed int
	for _, row := range rows {
		switch row.Status {
		case models.StatusInProgress:
			inProgress++
		case models.StatusCompleted:
			completed++
		default:
			notStarted++
		}
	}

	total := float64(termCount)
	return Progress{
		NotStarted: float64(notStarted) / total,
		InProgress: float64(inProgress) / total,
		Completed:  float64(completed) / total,
	}
}
