package competitor

import (
	"errors"
	"time"
)

var (
	ErrCompetitorNotFound = errors.New("COMPETITOR_NOT_FOUND")
	ErrNicknameTaken      = errors.New("NICKNAME_TAKEN")
	ErrEmailTaken         = errors.New("EMAIL_TAKEN")
	ErrLeadsSquad         = errors.New("COMPETITOR_LEADS_SQUAD")
)

type RankLevel string

const (
	RankBronze   RankLevel = "Bronze"
	RankSilver   RankLevel = "Silver"
	RankGold     RankLevel = "Gold"
	RankPlatinum RankLevel = "Platinum"
	RankDiamond  RankLevel = "Diamond"
	RankMaster   RankLevel = "Master"
)

func (r RankLevel) IsValid() bool {
	switch r {
	case RankBronze, RankSilver, RankGold, RankPlatinum, RankDiamond, RankMaster:
		return true
	}
	return false
}

type Competitor struct {
	ID                uint32    `gorm:"primaryKey;column:id" json:"id"`
	Nickname          string    `gorm:"type:varchar(50);uniqueIndex;not null;column:nickname" json:"nickname"`
	EmailAddress      string    `gorm:"type:varchar(100);uniqueIndex;not null;column:email_address" json:"email_address"`
	RankLevel         RankLevel `gorm:"type:varchar(20);not null;default:Bronze;column:rank_level" json:"rank_level"`
	AccumulatedPoints int       `gorm:"not null;default:0;column:accumulated_points" json:"accumulated_points"`
	EnrollmentDate    time.Time `gorm:"column:enrollment_date" json:"enrollment_date"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LeaderboardSize - fixed top-N; not worth an env var
const LeaderboardSize = 10

// CompetitorPatch - partial update: a nil field is left untouched.
// EnrollmentDate is not here on purpose - it never changes after creation.
type CompetitorPatch struct {
	Nickname          *string
	EmailAddress      *string
	RankLevel         *RankLevel
	AccumulatedPoints *int
}

type CompetitorsRepo interface {
	ListCompetitors() ([]*Competitor, error)
	GetByID(id uint32) (*Competitor, error)
	CreateCompetitor(nickname, email string, rank RankLevel) (*Competitor, error)
	UpdateCompetitor(id uint32, patch CompetitorPatch) (*Competitor, error)
	DeleteCompetitor(id uint32) error
	Leaderboard() ([]*Competitor, error)
}
