package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/internal/handlers/apierr"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/competitor"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/handlers/apidto"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/validate"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CompetitorHandler struct {
	repo   competitor.CompetitorsRepo
	logger *zap.SugaredLogger
}

func NewCompetitorHandler(logger *zap.SugaredLogger, repo competitor.CompetitorsRepo) *CompetitorHandler {
	return &CompetitorHandler{
		repo:   repo,
		logger: logger,
	}
}

func parseID(c *gin.Context) (uint32, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		return 0, false
	}
	return uint32(id), true
}

func (h *CompetitorHandler) ListCompetitors(c *gin.Context) {
	competitors, err := h.repo.ListCompetitors()
	if err != nil {
		if apierr.Handle(c, err) {
			h.logger.Warnw("mapped error listing competitors", "error", err)
			return
		}

		h.logger.Errorw("error listing competitors", "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, apidto.FromCompetitors(competitors))
}

func (h *CompetitorHandler) GetCompetitor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.logger.Warnw("invalid competitor id", "id", c.Param("id"))
		return
	}

	comp, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, competitor.ErrCompetitorNotFound) {
			apierr.WriteApiErrJSON(c, http.StatusNotFound, apierr.CompetitorNotFound(id))
			return
		}

		h.logger.Errorw("error getting competitor", "id", id, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, apidto.FromCompetitor(comp))
}

type createCompetitorReq struct {
	Nickname     string `json:"nickname"`
	EmailAddress string `json:"email_address"`
	RankLevel    string `json:"rank_level"`
}

func (h *CompetitorHandler) CreateCompetitor(c *gin.Context) {
	var req createCompetitorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		h.logger.Warnw("error parsing request", "error", err)
		return
	}

	// field validation runs before any uniqueness check, in a fixed order
	if err := validate.Nickname(req.Nickname); err != nil {
		apierr.Handle(c, err)
		return
	}
	if err := validate.Email(req.EmailAddress); err != nil {
		apierr.Handle(c, err)
		return
	}
	rank := req.RankLevel
	if rank == "" {
		rank = string(competitor.RankBronze)
	}
	if err := validate.Rank(rank); err != nil {
		apierr.Handle(c, err)
		return
	}

	comp, err := h.repo.CreateCompetitor(req.Nickname, req.EmailAddress, competitor.RankLevel(rank))
	if err != nil {
		if apierr.Handle(c, err) {
			h.logger.Warnw("mapped error creating competitor", "error", err)
			return
		}

		h.logger.Errorw("error creating competitor", "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusCreated, apidto.FromCompetitor(comp))
}

type updateCompetitorReq struct {
	Nickname          *string `json:"nickname"`
	EmailAddress      *string `json:"email_address"`
	RankLevel         *string `json:"rank_level"`
	AccumulatedPoints *int    `json:"accumulated_points"`
}

func (h *CompetitorHandler) UpdateCompetitor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.logger.Warnw("invalid competitor id", "id", c.Param("id"))
		return
	}

	var req updateCompetitorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		h.logger.Warnw("error parsing request", "error", err)
		return
	}

	patch := competitor.CompetitorPatch{}

	// an omitted or empty string field means "leave unchanged"
	if req.Nickname != nil && *req.Nickname != "" {
		if err := validate.Nickname(*req.Nickname); err != nil {
			apierr.Handle(c, err)
			return
		}
		patch.Nickname = req.Nickname
	}
	if req.EmailAddress != nil && *req.EmailAddress != "" {
		if err := validate.Email(*req.EmailAddress); err != nil {
			apierr.Handle(c, err)
			return
		}
		patch.EmailAddress = req.EmailAddress
	}
	if req.RankLevel != nil && *req.RankLevel != "" {
		if err := validate.Rank(*req.RankLevel); err != nil {
			apierr.Handle(c, err)
			return
		}
		rank := competitor.RankLevel(*req.RankLevel)
		patch.RankLevel = &rank
	}
	if req.AccumulatedPoints != nil {
		if err := validate.Points(*req.AccumulatedPoints); err != nil {
			apierr.Handle(c, err)
			return
		}
		patch.AccumulatedPoints = req.AccumulatedPoints
	}

	if _, err := h.repo.UpdateCompetitor(id, patch); err != nil {
		if errors.Is(err, competitor.ErrCompetitorNotFound) {
			apierr.WriteApiErrJSON(c, http.StatusNotFound, apierr.CompetitorNotFound(id))
			return
		}
		if apierr.Handle(c, err) {
			h.logger.Warnw("mapped error updating competitor", "id", id, "error", err)
			return
		}

		h.logger.Errorw("error updating competitor", "id", id, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CompetitorHandler) DeleteCompetitor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.logger.Warnw("invalid competitor id", "id", c.Param("id"))
		return
	}

	if err := h.repo.DeleteCompetitor(id); err != nil {
		if errors.Is(err, competitor.ErrCompetitorNotFound) {
			apierr.WriteApiErrJSON(c, http.StatusNotFound, apierr.CompetitorNotFound(id))
			return
		}
		if apierr.Handle(c, err) {
			h.logger.Warnw("mapped error deleting competitor", "id", id, "error", err)
			return
		}

		h.logger.Errorw("error deleting competitor", "id", id, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CompetitorHandler) GetLeaderboard(c *gin.Context) {
	top, err := h.repo.Leaderboard()
	if err != nil {
		if apierr.Handle(c, err) {
			h.logger.Warnw("mapped error computing leaderboard", "error", err)
			return
		}

		h.logger.Errorw("error computing leaderboard", "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, apidto.FromCompetitors(top))
}
