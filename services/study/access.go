package study

import "quizdeck/models"

// CheckAccess decides whether userID may see or act on m: owners always
// pass, everyone else only when the module is public. Pure and
// side-effect free; a missing module is the caller's concern and is
// resolved before this runs. Evaluated before any synchronization step.
func CheckAccess(m *models.Module, userID uint) error {
	if m.UserID == userID || !m.IsPrivate {
		return nil
	}
	return ErrPrivateModule
}
