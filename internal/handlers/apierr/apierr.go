package apierr

import (
	"errors"
	"net/http"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/competitor"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/squad"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/validate"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrResponse struct {
	Error APIError `json:"error"`
}

// Map keeps the wire contract stable even if the sentinel errors get renamed
// or rewrapped for logging. Not-found errors with an id in the message are
// handled at the handler level, where the id is known.
func Map(err error) (int, APIError, bool) {
	var vErr *validate.Error
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, Validation(vErr.Message), true
	}

	switch {
	case errors.Is(err, competitor.ErrNicknameTaken):
		return http.StatusBadRequest, NicknameTaken, true
	case errors.Is(err, competitor.ErrEmailTaken):
		return http.StatusBadRequest, EmailTaken, true
	case errors.Is(err, competitor.ErrLeadsSquad):
		return http.StatusConflict, CompetitorLeadsSquad, true

	case errors.Is(err, squad.ErrNameTaken):
		return http.StatusBadRequest, SquadNameTaken, true
	case errors.Is(err, squad.ErrNameTakenByOther):
		return http.StatusBadRequest, SquadNameTakenByOther, true
	case errors.Is(err, squad.ErrAbbreviationTaken):
		return http.StatusBadRequest, AbbreviationTaken, true
	case errors.Is(err, squad.ErrAbbreviationTakenByOther):
		return http.StatusBadRequest, AbbreviationTakenByOther, true
	case errors.Is(err, squad.ErrLeaderNotFound):
		return http.StatusBadRequest, LeaderNotFound, true
	case errors.Is(err, squad.ErrNewLeaderNotFound):
		return http.StatusBadRequest, NewLeaderNotFound, true

	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, APIError{Code: "NOT_FOUND", Message: "Ressource introuvable"}, true

	default:
		return http.StatusInternalServerError, InternalServerError, false
	}
}

func Handle(c *gin.Context, err error) bool {
	if status, apiErr, ok := Map(err); ok {
		WriteApiErrJSON(c, status, apiErr)
		return true
	}

	return false
}

func WriteApiErrJSON(c *gin.Context, status int, apiErr APIError) {
	c.JSON(status, ErrResponse{
		Error: apiErr,
	})
}
