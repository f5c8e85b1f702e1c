package apidto

import (
	"time"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/competitor"
)

type Competitor struct {
	ID                uint32    `json:"id"`
	Nickname          string    `json:"nickname"`
	EmailAddress      string    `json:"email_address"`
	RankLevel         string    `json:"rank_level"`
	AccumulatedPoints int       `json:"accumulated_points"`
	EnrollmentDate    time.Time `json:"enrollment_date"`
}

func FromCompetitor(c *competitor.Competitor) Competitor {
	if c == nil {
		return Competitor{}
	}
	return Competitor{
		ID:                c.ID,
		Nickname:          c.Nickname,
		EmailAddress:      c.EmailAddress,
		RankLevel:         string(c.RankLevel),
		AccumulatedPoints: c.AccumulatedPoints,
		EnrollmentDate:    c.EnrollmentDate,
	}
}

func FromCompetitors(competitors []*competitor.Competitor) []Competitor {
	out := make([]Competitor, 0, len(competitors))
	for _, c := range competitors {
		out = append(out, FromCompetitor(c))
	}
	return out
}
