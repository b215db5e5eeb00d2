package controllers

import (
	"net/http"

	"github.com/lien-travel/planner-backend/api/middleware"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
)

func requireUser(r *http.Request) (uint, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return userID, nil
}
