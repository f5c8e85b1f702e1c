package squad

import (
	"errors"
	"time"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/competitor"
)

var (
	ErrSquadNotFound            = errors.New("SQUAD_NOT_FOUND")
	ErrNameTaken                = errors.New("SQUAD_NAME_TAKEN")
	ErrNameTakenByOther         = errors.New("SQUAD_NAME_TAKEN_BY_OTHER")
	ErrAbbreviationTaken        = errors.New("SQUAD_ABBREVIATION_TAKEN")
	ErrAbbreviationTakenByOther = errors.New("SQUAD_ABBREVIATION_TAKEN_BY_OTHER")
	ErrLeaderNotFound           = errors.New("SQUAD_LEADER_NOT_FOUND")
	ErrNewLeaderNotFound        = errors.New("SQUAD_NEW_LEADER_NOT_FOUND")
)

// LeaderPosition is the reserved membership position of the squad leader.
const LeaderPosition = 0

type Squad struct {
	ID             uint32                 `gorm:"primaryKey;column:id" json:"id"`
	SquadName      string                 `gorm:"type:varchar(100);uniqueIndex;not null;column:squad_name" json:"squad_name"`
	Abbreviation   string                 `gorm:"type:varchar(3);uniqueIndex;not null;column:abbreviation" json:"abbreviation"`
	LeaderID       uint32                 `gorm:"not null;column:leader_id" json:"leader_id"`
	Leader         *competitor.Competitor `gorm:"foreignKey:LeaderID;constraint:OnDelete:RESTRICT" json:"leader,omitempty"`
	FoundationDate time.Time              `gorm:"column:foundation_date" json:"foundation_date"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Members []SquadMember `gorm:"foreignKey:SquadID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// SquadMember is the join row between a squad and a competitor.
// Position 0 is the leader, anything else is a regular member.
type SquadMember struct {
	SquadID        uint32    `gorm:"primaryKey;autoIncrement:false;column:squad_id" json:"squad_id"`
	CompetitorID   uint32    `gorm:"primaryKey;autoIncrement:false;column:competitor_id" json:"competitor_id"`
	Position       int       `gorm:"not null;column:position" json:"position"`
	MembershipDate time.Time `gorm:"column:membership_date" json:"membership_date"`
}

// MemberInfo is the read-time join used by the roster view: one membership row
// with the competitor's nickname resolved.
type MemberInfo struct {
	Nickname       string
	Position       int
	MembershipDate time.Time
}

type SquadsRepo interface {
	ListSquads() ([]*Squad, error)
	GetByID(id uint32) (*Squad, error)
	CreateSquad(name, abbreviation string, leaderID uint32) (*Squad, error)
	UpdateSquad(id uint32, name, abbreviation string, leaderID uint32) (*Squad, error)
	DeleteSquad(id uint32) error
	ListMembers(squadID uint32) ([]*MemberInfo, error)
}
