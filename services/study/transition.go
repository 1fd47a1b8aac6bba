package study

import "quizdeck/models"

// NextStatus applies one study attempt to a status:
//
//	current      | success=true | success=false
//	not_started  | in_progress  | not_started
//	in_progress  | completed    | not_started
//	completed    | completed    | in_progress
//
// Failure always demotes exactly one level, mirroring the
// completed -> in_progress demotion; success never skips a level.
// Every call site goes through this table.
func NextStatus(current string, success bool) string {
	if success {
		switch current {
		case models.StatusNotStarted:
			return models.StatusInProgress
		case models.StatusInProgress:
			return models.StatusCompleted
		}
		return current
	}

	switch current {
	case models.StatusInProgress:
		return models.StatusNotStarted
	case models.StatusCompleted:
		return models.StatusInProgress
	}
	return current
}
