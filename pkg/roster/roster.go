// Package roster projects a squad's memberships into the ordered view served
// by the API. The view is computed on demand and never persisted.
package roster

import (
	"sort"
	"time"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/squad"
)

const (
	RoleLeader = "Leader"
	RoleMember = "Member"
)

type Member struct {
	Nickname       string
	Role           string
	MembershipDate time.Time
}

type Roster struct {
	SquadName string
	Members   []Member
}

// Assemble orders members by position ascending, ties broken by membership
// date ascending, and derives the human role label from the position.
func Assemble(squadName string, members []*squad.MemberInfo) *Roster {
	sorted := make([]*squad.MemberInfo, len(members))
	copy(sorted, members)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position != sorted[j].Position {
			return sorted[i].Position < sorted[j].Position
		}
		return sorted[i].MembershipDate.Before(sorted[j].MembershipDate)
	})

	out := make([]Member, 0, len(sorted))
	for _, m := range sorted {
		role := RoleMember
		if m.Position == squad.LeaderPosition {
			role = RoleLeader
		}
		out = append(out, Member{
			Nickname:       m.Nickname,
			Role:           role,
			MembershipDate: m.MembershipDate,
		})
	}

	return &Roster{
		SquadName: squadName,
		Members:   out,
	}
}
