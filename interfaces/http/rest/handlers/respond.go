package handlers

import (
	"net/http"

	"tomato-backend/pkg/common"
	pkgerrors "tomato-backend/pkg/errors"

	"go.uber.org/zap"
)

// respondJSON sends a successful REST response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	common.RespondJSON(w, status, data)
}

// respondAppError maps an error to a REST response using the AppError
// taxonomy. Unknown errors become opaque 500s.
func respondAppError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		common.RespondError(w, status, string(appErr.Type), appErr.Message)
		return
	}

	logger.Error("Unhandled error in HTTP handler", zap.Error(err))
	common.RespondError(w, http.StatusInternalServerError, string(pkgerrors.ErrorTypeInternal), "An internal error occurred")
}
