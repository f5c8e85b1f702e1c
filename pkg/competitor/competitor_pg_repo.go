package competitor

import (
	"errors"
	"time"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/internal/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SquadMembershipRow mirrors the squad_members join table. Declared here as well
// to keep the cascade delete in this package without importing pkg/squad back.
type SquadMembershipRow struct {
	SquadID      uint32 `gorm:"column:squad_id"`
	CompetitorID uint32 `gorm:"column:competitor_id"`
}

func (SquadMembershipRow) TableName() string {
	return "squad_members"
}

type CompetitorsRepoPg struct {
	logger *zap.SugaredLogger
	db     *gorm.DB
}

func NewCompetitorsRepoPg(logger *zap.SugaredLogger, db *gorm.DB) *CompetitorsRepoPg {
	return &CompetitorsRepoPg{
		logger: logger,
		db:     db,
	}
}

func (repo *CompetitorsRepoPg) ListCompetitors() ([]*Competitor, error) {
	repo.logger.Debugw("ListCompetitors()")

	var competitors []*Competitor
	if err := repo.db.Order("id ASC").Find(&competitors).Error; err != nil {
		repo.logger.Errorw("error listing competitors", "err", err)
		return nil, err
	}

	repo.logger.Debugw("listed competitors", "count", len(competitors))
	return competitors, nil
}

func (repo *CompetitorsRepoPg) GetByID(id uint32) (*Competitor, error) {
	repo.logger.Debugw("GetByID()", "id", id)

	var c Competitor
	if err := repo.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			repo.logger.Warnw("competitor not found", "id", id)
			return nil, ErrCompetitorNotFound
		}
		repo.logger.Errorw("error querying competitor", "id", id, "err", err)
		return nil, err
	}

	return &c, nil
}

func (repo *CompetitorsRepoPg) CreateCompetitor(nickname, email string, rank RankLevel) (*Competitor, error) {
	repo.logger.Debugw("CreateCompetitor()", "nickname", nickname)
	start := time.Now()

	var c Competitor
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		// nickname first, then email - the first collision wins the error message
		var count int64
		if err := tx.Model(&Competitor{}).Where("nickname = ?", nickname).Count(&count).Error; err != nil {
			repo.logger.Errorw("error checking nickname uniqueness", "nickname", nickname, "err", err)
			return err
		}
		if count > 0 {
			repo.logger.Warnw("nickname already taken", "nickname", nickname)
			return ErrNicknameTaken
		}

		if err := tx.Model(&Competitor{}).Where("email_address = ?", email).Count(&count).Error; err != nil {
			repo.logger.Errorw("error checking email uniqueness", "email", email, "err", err)
			return err
		}
		if count > 0 {
			repo.logger.Warnw("email already taken", "email", email)
			return ErrEmailTaken
		}

		c = Competitor{
			Nickname:          nickname,
			EmailAddress:      email,
			RankLevel:         rank,
			AccumulatedPoints: 0,
			EnrollmentDate:    time.Now(),
		}
		if err := tx.Create(&c).Error; err != nil {
			// the unique indexes backstop the checks above under concurrency
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				repo.logger.Warnw("duplicate key on competitor insert", "nickname", nickname)
				return ErrNicknameTaken
			}
			repo.logger.Errorw("error creating competitor", "nickname", nickname, "err", err)
			return err
		}
		return nil
	})

	metrics.ObserveRepoOp("competitor_create", start, err)
	if err != nil {
		return nil, err
	}

	metrics.AddCompetitors(1)
	repo.logger.Debugw("competitor created", "id", c.ID, "nickname", c.Nickname)
	return &c, nil
}

func (repo *CompetitorsRepoPg) UpdateCompetitor(id uint32, patch CompetitorPatch) (*Competitor, error) {
	repo.logger.Debugw("UpdateCompetitor()", "id", id)
	start := time.Now()

	var c Competitor
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				repo.logger.Warnw("competitor not found", "id", id)
				return ErrCompetitorNotFound
			}
			repo.logger.Errorw("error querying competitor", "id", id, "err", err)
			return err
		}

		updates := map[string]interface{}{}

		if patch.Nickname != nil && *patch.Nickname != c.Nickname {
			var count int64
			if err := tx.Model(&Competitor{}).
				Where("nickname = ? AND id <> ?", *patch.Nickname, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				repo.logger.Warnw("nickname already taken", "id", id, "nickname", *patch.Nickname)
				return ErrNicknameTaken
			}
			c.Nickname = *patch.Nickname
			updates["nickname"] = *patch.Nickname
		}

		if patch.EmailAddress != nil && *patch.EmailAddress != c.EmailAddress {
			var count int64
			if err := tx.Model(&Competitor{}).
				Where("email_address = ? AND id <> ?", *patch.EmailAddress, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				repo.logger.Warnw("email already taken", "id", id, "email", *patch.EmailAddress)
				return ErrEmailTaken
			}
			c.EmailAddress = *patch.EmailAddress
			updates["email_address"] = *patch.EmailAddress
		}

		if patch.RankLevel != nil {
			c.RankLevel = *patch.RankLevel
			updates["rank_level"] = *patch.RankLevel
		}

		if patch.AccumulatedPoints != nil {
			c.AccumulatedPoints = *patch.AccumulatedPoints
			updates["accumulated_points"] = *patch.AccumulatedPoints
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&Competitor{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			repo.logger.Errorw("error updating competitor", "id", id, "err", err)
			return err
		}
		return nil
	})

	metrics.ObserveRepoOp("competitor_update", start, err)
	if err != nil {
		return nil, err
	}

	repo.logger.Debugw("competitor updated", "id", id)
	return &c, nil
}

func (repo *CompetitorsRepoPg) DeleteCompetitor(id uint32) error {
	repo.logger.Debugw("DeleteCompetitor()", "id", id)
	start := time.Now()

	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var c Competitor
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				repo.logger.Warnw("competitor not found", "id", id)
				return ErrCompetitorNotFound
			}
			repo.logger.Errorw("error querying competitor", "id", id, "err", err)
			return err
		}

		// leadership restricts the delete; leadership must be reassigned
		// or the squad disbanded first
		var leading int64
		if err := tx.Table("squads").Where("leader_id = ?", id).Count(&leading).Error; err != nil {
			repo.logger.Errorw("error checking leaderships", "id", id, "err", err)
			return err
		}
		if leading > 0 {
			repo.logger.Warnw("competitor still leads squads", "id", id, "count", leading)
			return ErrLeadsSquad
		}

		// plain memberships in other squads cascade
		if err := tx.Where("competitor_id = ?", id).Delete(&SquadMembershipRow{}).Error; err != nil {
			repo.logger.Errorw("error deleting memberships", "id", id, "err", err)
			return err
		}

		if err := tx.Delete(&Competitor{}, "id = ?", id).Error; err != nil {
			repo.logger.Errorw("error deleting competitor", "id", id, "err", err)
			return err
		}
		return nil
	})

	metrics.ObserveRepoOp("competitor_delete", start, err)
	if err != nil {
		return err
	}

	metrics.AddCompetitors(-1)
	repo.logger.Debugw("competitor deleted", "id", id)
	return nil
}

func (repo *CompetitorsRepoPg) Leaderboard() ([]*Competitor, error) {
	repo.logger.Debugw("Leaderboard()")

	// ties broken by id - first enrolled keeps the better rank
	var top []*Competitor
	if err := repo.db.
		Order("accumulated_points DESC, id ASC").
		Limit(LeaderboardSize).
		Find(&top).Error; err != nil {
		repo.logger.Errorw("error querying leaderboard", "err", err)
		return nil, err
	}

	repo.logger.Debugw("leaderboard computed", "count", len(top))
	return top, nil
}
