package squad

import (
	"errors"
	"time"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/internal/metrics"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/competitor"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SquadsRepoPg struct {
	logger *zap.SugaredLogger
	db     *gorm.DB
}

func NewSquadsRepoPg(logger *zap.SugaredLogger, db *gorm.DB) *SquadsRepoPg {
	return &SquadsRepoPg{
		logger: logger,
		db:     db,
	}
}

func (repo *SquadsRepoPg) ListSquads() ([]*Squad, error) {
	repo.logger.Debugw("ListSquads()")

	var squads []*Squad
	if err := repo.db.Preload("Leader").Order("id ASC").Find(&squads).Error; err != nil {
		repo.logger.Errorw("error listing squads", "err", err)
		return nil, err
	}

	repo.logger.Debugw("listed squads", "count", len(squads))
	return squads, nil
}

func (repo *SquadsRepoPg) GetByID(id uint32) (*Squad, error) {
	repo.logger.Debugw("GetByID()", "id", id)

	var s Squad
	if err := repo.db.Preload("Leader").First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			repo.logger.Warnw("squad not found", "id", id)
			return nil, ErrSquadNotFound
		}
		repo.logger.Errorw("error querying squad", "id", id, "err", err)
		return nil, err
	}

	return &s, nil
}

func (repo *SquadsRepoPg) CreateSquad(name, abbreviation string, leaderID uint32) (*Squad, error) {
	repo.logger.Debugw("CreateSquad()", "name", name, "leaderID", leaderID)
	start := time.Now()

	var s Squad
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		// fixed check order: name, abbreviation, leader - first failure short-circuits
		var count int64
		if err := tx.Model(&Squad{}).Where("squad_name = ?", name).Count(&count).Error; err != nil {
			repo.logger.Errorw("error checking squad name uniqueness", "name", name, "err", err)
			return err
		}
		if count > 0 {
			repo.logger.Warnw("squad name already taken", "name", name)
			return ErrNameTaken
		}

		if err := tx.Model(&Squad{}).Where("abbreviation = ?", abbreviation).Count(&count).Error; err != nil {
			repo.logger.Errorw("error checking abbreviation uniqueness", "abbreviation", abbreviation, "err", err)
			return err
		}
		if count > 0 {
			repo.logger.Warnw("abbreviation already taken", "abbreviation", abbreviation)
			return ErrAbbreviationTaken
		}

		var leader competitor.Competitor
		if err := tx.First(&leader, "id = ?", leaderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				repo.logger.Warnw("leader does not exist", "leaderID", leaderID)
				return ErrLeaderNotFound
			}
			repo.logger.Errorw("error querying leader", "leaderID", leaderID, "err", err)
			return err
		}

		s = Squad{
			SquadName:      name,
			Abbreviation:   abbreviation,
			LeaderID:       leaderID,
			FoundationDate: time.Now(),
		}
		if err := tx.Create(&s).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				repo.logger.Warnw("duplicate key on squad insert", "name", name)
				return ErrNameTaken
			}
			repo.logger.Errorw("error creating squad", "name", name, "err", err)
			return err
		}

		// the leader membership is part of the same unit: no squad may ever be
		// visible without its position-0 row
		member := SquadMember{
			SquadID:        s.ID,
			CompetitorID:   leaderID,
			Position:       LeaderPosition,
			MembershipDate: time.Now(),
		}
		if err := tx.Create(&member).Error; err != nil {
			repo.logger.Errorw("error creating leader membership", "squadID", s.ID, "err", err)
			return err
		}

		s.Leader = &leader
		return nil
	})

	metrics.ObserveRepoOp("squad_create", start, err)
	if err != nil {
		return nil, err
	}

	metrics.AddSquads(1)
	repo.logger.Debugw("squad created", "id", s.ID, "name", s.SquadName)
	return &s, nil
}

func (repo *SquadsRepoPg) UpdateSquad(id uint32, name, abbreviation string, leaderID uint32) (*Squad, error) {
	repo.logger.Debugw("UpdateSquad()", "id", id, "name", name, "leaderID", leaderID)
	start := time.Now()

	var s Squad
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&s, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				repo.logger.Warnw("squad not found", "id", id)
				return ErrSquadNotFound
			}
			repo.logger.Errorw("error querying squad", "id", id, "err", err)
			return err
		}

		var count int64
		if err := tx.Model(&Squad{}).Where("squad_name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
			repo.logger.Errorw("error checking squad name uniqueness", "name", name, "err", err)
			return err
		}
		if count > 0 {
			repo.logger.Warnw("squad name taken by another squad", "id", id, "name", name)
			return ErrNameTakenByOther
		}

		if err := tx.Model(&Squad{}).Where("abbreviation = ? AND id <> ?", abbreviation, id).Count(&count).Error; err != nil {
			repo.logger.Errorw("error checking abbreviation uniqueness", "abbreviation", abbreviation, "err", err)
			return err
		}
		if count > 0 {
			repo.logger.Warnw("abbreviation taken by another squad", "id", id, "abbreviation", abbreviation)
			return ErrAbbreviationTakenByOther
		}

		if leaderID != s.LeaderID {
			var leader competitor.Competitor
			if err := tx.First(&leader, "id = ?", leaderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					repo.logger.Warnw("new leader does not exist", "id", id, "leaderID", leaderID)
					return ErrNewLeaderNotFound
				}
				repo.logger.Errorw("error querying new leader", "leaderID", leaderID, "err", err)
				return err
			}

			if err := repo.moveLeaderMembershipInTx(tx, id, leaderID); err != nil {
				return err
			}
		}

		s.SquadName = name
		s.Abbreviation = abbreviation
		s.LeaderID = leaderID

		if err := tx.Model(&Squad{}).Where("id = ?", id).Updates(map[string]interface{}{
			"squad_name":   name,
			"abbreviation": abbreviation,
			"leader_id":    leaderID,
		}).Error; err != nil {
			repo.logger.Errorw("error updating squad", "id", id, "err", err)
			return err
		}
		return nil
	})

	metrics.ObserveRepoOp("squad_update", start, err)
	if err != nil {
		return nil, err
	}

	repo.logger.Debugw("squad updated", "id", id)
	return &s, nil
}

// moveLeaderMembershipInTx keeps the position-0 row pointing at the current
// leader when leadership changes. If the new leader already sits in the squad,
// its row is promoted and the old leader's row dropped; otherwise the existing
// position-0 row is reassigned to the new leader.
func (repo *SquadsRepoPg) moveLeaderMembershipInTx(tx *gorm.DB, squadID, newLeaderID uint32) error {
	repo.logger.Debugw("moveLeaderMembershipInTx()", "squadID", squadID, "newLeaderID", newLeaderID)

	var existing SquadMember
	err := tx.First(&existing, "squad_id = ? AND competitor_id = ?", squadID, newLeaderID).Error
	switch {
	case err == nil:
		if err := tx.Where("squad_id = ? AND position = ? AND competitor_id <> ?",
			squadID, LeaderPosition, newLeaderID).
			Delete(&SquadMember{}).Error; err != nil {
			repo.logger.Errorw("error dropping old leader membership", "squadID", squadID, "err", err)
			return err
		}
		if err := tx.Model(&SquadMember{}).
			Where("squad_id = ? AND competitor_id = ?", squadID, newLeaderID).
			Update("position", LeaderPosition).Error; err != nil {
			repo.logger.Errorw("error promoting new leader membership", "squadID", squadID, "err", err)
			return err
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Model(&SquadMember{}).
			Where("squad_id = ? AND position = ?", squadID, LeaderPosition).
			Updates(map[string]interface{}{"competitor_id": newLeaderID}).Error; err != nil {
			repo.logger.Errorw("error reassigning leader membership", "squadID", squadID, "err", err)
			return err
		}
		return nil
	default:
		repo.logger.Errorw("error querying new leader membership", "squadID", squadID, "err", err)
		return err
	}
}

func (repo *SquadsRepoPg) DeleteSquad(id uint32) error {
	repo.logger.Debugw("DeleteSquad()", "id", id)
	start := time.Now()

	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var s Squad
		if err := tx.First(&s, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				repo.logger.Warnw("squad not found", "id", id)
				return ErrSquadNotFound
			}
			repo.logger.Errorw("error querying squad", "id", id, "err", err)
			return err
		}

		// memberships go first, then the squad itself - one atomic unit
		if err := tx.Where("squad_id = ?", id).Delete(&SquadMember{}).Error; err != nil {
			repo.logger.Errorw("error deleting squad memberships", "id", id, "err", err)
			return err
		}

		if err := tx.Delete(&Squad{}, "id = ?", id).Error; err != nil {
			repo.logger.Errorw("error deleting squad", "id", id, "err", err)
			return err
		}
		return nil
	})

	metrics.ObserveRepoOp("squad_delete", start, err)
	if err != nil {
		return err
	}

	metrics.AddSquads(-1)
	repo.logger.Debugw("squad deleted", "id", id)
	return nil
}

func (repo *SquadsRepoPg) ListMembers(squadID uint32) ([]*MemberInfo, error) {
	repo.logger.Debugw("ListMembers()", "squadID", squadID)

	var members []*MemberInfo
	if err := repo.db.
		Table("squad_members").
		Select("competitors.nickname AS nickname, squad_members.position AS position, squad_members.membership_date AS membership_date").
		Joins("JOIN competitors ON competitors.id = squad_members.competitor_id").
		Where("squad_members.squad_id = ?", squadID).
		Scan(&members).Error; err != nil {
		repo.logger.Errorw("error listing squad members", "squadID", squadID, "err", err)
		return nil, err
	}

	repo.logger.Debugw("listed squad members", "squadID", squadID, "count", len(members))
	return members, nil
}
