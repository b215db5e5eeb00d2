package visibility

import (
	"github.com/lien-travel/planner-backend/pkg/db/models"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
)

// EnsureLocationReadable allows public locations and the requester's own records.
func EnsureLocationReadable(location *models.Location, userID uint) error {
	if location == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
	}
	if location.IsPublic || location.OwnedBy(userID) {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "location is not visible to the current user")
}

// EnsureLocationOwned gates mutations. Public locations owned by someone else
// are readable but never editable.
func EnsureLocationOwned(location *models.Location, userID uint) error {
	if location == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
	}
	if !location.OwnedBy(userID) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "location is not owned by the current user")
	}
	return nil
}

// EnsureTemplateOwned requires strict ownership; templates are never shared.
func EnsureTemplateOwned(template *models.Template, userID uint) error {
	if template == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "template not found")
	}
	if template.OwnerID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "template is not owned by the current user")
	}
	return nil
}
