package apidto

import (
	"time"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/squad"
)

type Squad struct {
	ID             uint32    `json:"id"`
	SquadName      string    `json:"squad_name"`
	Abbreviation   string    `json:"abbreviation"`
	LeaderID       uint32    `json:"leader_id"`
	LeaderNickname string    `json:"leader_nickname"`
	FoundationDate time.Time `json:"foundation_date"`
}

func FromSquad(s *squad.Squad) Squad {
	if s == nil {
		return Squad{}
	}
	dto := Squad{
		ID:             s.ID,
		SquadName:      s.SquadName,
		Abbreviation:   s.Abbreviation,
		LeaderID:       s.LeaderID,
		FoundationDate: s.FoundationDate,
	}
	if s.Leader != nil {
		dto.LeaderNickname = s.Leader.Nickname
	}
	return dto
}

func FromSquads(squads []*squad.Squad) []Squad {
	out := make([]Squad, 0, len(squads))
	for _, s := range squads {
		out = append(out, FromSquad(s))
	}
	return out
}
