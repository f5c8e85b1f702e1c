package apidto

import (
	"time"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/roster"
)

type Roster struct {
	SquadName string         `json:"squad_name"`
	Members   []RosterMember `json:"members"`
}

type RosterMember struct {
	Nickname       string    `json:"nickname"`
	Position       string    `json:"position"`
	MembershipDate time.Time `json:"membership_date"`
}

func FromRoster(r *roster.Roster) Roster {
	if r == nil {
		return Roster{}
	}
	members := make([]RosterMember, 0, len(r.Members))
	for _, m := range r.Members {
		members = append(members, RosterMember{
			Nickname:       m.Nickname,
			Position:       m.Role,
			MembershipDate: m.MembershipDate,
		})
	}
	return Roster{
		SquadName: r.SquadName,
		Members:   members,
	}
}
