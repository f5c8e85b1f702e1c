package handlers

import (
	"errors"
	"net/http"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/internal/handlers/apierr"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/handlers/apidto"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/roster"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/squad"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/validate"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SquadHandler struct {
	repo   squad.SquadsRepo
	logger *zap.SugaredLogger
}

func NewSquadHandler(logger *zap.SugaredLogger, repo squad.SquadsRepo) *SquadHandler {
	return &SquadHandler{
		repo:   repo,
		logger: logger,
	}
}

func (h *SquadHandler) ListSquads(c *gin.Context) {
	squads, err := h.repo.ListSquads()
	if err != nil {
		if apierr.Handle(c, err) {
			h.logger.Warnw("mapped error listing squads", "error", err)
			return
		}

		h.logger.Errorw("error listing squads", "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, apidto.FromSquads(squads))
}

func (h *SquadHandler) GetSquad(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.logger.Warnw("invalid squad id", "id", c.Param("id"))
		return
	}

	s, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, squad.ErrSquadNotFound) {
			apierr.WriteApiErrJSON(c, http.StatusNotFound, apierr.SquadNotFound(id))
			return
		}

		h.logger.Errorw("error getting squad", "id", id, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, apidto.FromSquad(s))
}

type squadReq struct {
	SquadName    string `json:"squad_name"`
	Abbreviation string `json:"abbreviation"`
	LeaderID     uint32 `json:"leader_id"`
}

// validateSquadReq runs the field checks in their fixed order and returns the
// normalized abbreviation.
func (h *SquadHandler) validateSquadReq(c *gin.Context, req squadReq) (string, bool) {
	if err := validate.SquadName(req.SquadName); err != nil {
		apierr.Handle(c, err)
		return "", false
	}
	abbreviation, err := validate.Abbreviation(req.Abbreviation)
	if err != nil {
		apierr.Handle(c, err)
		return "", false
	}
	if req.LeaderID == 0 {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.Validation("Le leader est obligatoire"))
		return "", false
	}
	return abbreviation, true
}

func (h *SquadHandler) CreateSquad(c *gin.Context) {
	var req squadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		h.logger.Warnw("error parsing request", "error", err)
		return
	}

	abbreviation, ok := h.validateSquadReq(c, req)
	if !ok {
		return
	}

	s, err := h.repo.CreateSquad(req.SquadName, abbreviation, req.LeaderID)
	if err != nil {
		if apierr.Handle(c, err) {
			h.logger.Warnw("mapped error creating squad", "error", err)
			return
		}

		h.logger.Errorw("error creating squad", "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusCreated, apidto.FromSquad(s))
}

func (h *SquadHandler) UpdateSquad(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.logger.Warnw("invalid squad id", "id", c.Param("id"))
		return
	}

	var req squadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		h.logger.Warnw("error parsing request", "error", err)
		return
	}

	abbreviation, ok := h.validateSquadReq(c, req)
	if !ok {
		return
	}

	if _, err := h.repo.UpdateSquad(id, req.SquadName, abbreviation, req.LeaderID); err != nil {
		if errors.Is(err, squad.ErrSquadNotFound) {
			apierr.WriteApiErrJSON(c, http.StatusNotFound, apierr.SquadNotFound(id))
			return
		}
		if apierr.Handle(c, err) {
			h.logger.Warnw("mapped error updating squad", "id", id, "error", err)
			return
		}

		h.logger.Errorw("error updating squad", "id", id, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SquadHandler) DeleteSquad(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.logger.Warnw("invalid squad id", "id", c.Param("id"))
		return
	}

	if err := h.repo.DeleteSquad(id); err != nil {
		if errors.Is(err, squad.ErrSquadNotFound) {
			apierr.WriteApiErrJSON(c, http.StatusNotFound, apierr.SquadNotFound(id))
			return
		}
		if apierr.Handle(c, err) {
			h.logger.Warnw("mapped error deleting squad", "id", id, "error", err)
			return
		}

		h.logger.Errorw("error deleting squad", "id", id, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SquadHandler) GetRoster(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.logger.Warnw("invalid squad id", "id", c.Param("id"))
		return
	}

	s, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, squad.ErrSquadNotFound) {
			apierr.WriteApiErrJSON(c, http.StatusNotFound, apierr.SquadNotFound(id))
			return
		}

		h.logger.Errorw("error getting squad", "id", id, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	members, err := h.repo.ListMembers(id)
	if err != nil {
		h.logger.Errorw("error listing squad members", "id", id, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, apidto.FromRoster(roster.Assemble(s.SquadName, members)))
}
