// Package validate carries the per-field validation rules as explicit
// functions. They run in a fixed order before any uniqueness or referential
// check so that a given bad input always produces the same message.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/competitor"
)

type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}

var (
	emailRe        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	abbreviationRe = regexp.MustCompile(`^[A-Z]{3}$`)
)

func Nickname(nickname string) error {
	if nickname == "" {
		return &Error{Field: "nickname", Message: "Le pseudo est obligatoire"}
	}
	if n := utf8.RuneCountInString(nickname); n < 3 || n > 50 {
		return &Error{Field: "nickname", Message: "Le pseudo doit contenir entre 3 et 50 caractères"}
	}
	return nil
}

func Email(email string) error {
	if email == "" {
		return &Error{Field: "email_address", Message: "L'email est obligatoire"}
	}
	if utf8.RuneCountInString(email) > 100 {
		return &Error{Field: "email_address", Message: "L'email ne doit pas dépasser 100 caractères"}
	}
	if !emailRe.MatchString(email) {
		return &Error{Field: "email_address", Message: "Format d'email invalide"}
	}
	return nil
}

func Rank(rank string) error {
	if rank == "" {
		return &Error{Field: "rank_level", Message: "Le rank est obligatoire"}
	}
	if !competitor.RankLevel(rank).IsValid() {
		return &Error{Field: "rank_level", Message: "Le rank doit être : Bronze, Silver, Gold, Platinum, Diamond ou Master"}
	}
	return nil
}

func Points(points int) error {
	if points < 0 {
		return &Error{Field: "accumulated_points", Message: "Le score ne peut pas être négatif"}
	}
	return nil
}

func SquadName(name string) error {
	if name == "" {
		return &Error{Field: "squad_name", Message: "Le nom de l'équipe est obligatoire"}
	}
	if n := utf8.RuneCountInString(name); n < 3 || n > 100 {
		return &Error{Field: "squad_name", Message: "Le nom de l'équipe doit contenir entre 3 et 100 caractères"}
	}
	return nil
}

// Abbreviation normalizes to uppercase before checking; the normalized form is
// what gets stored.
func Abbreviation(abbreviation string) (string, error) {
	if abbreviation == "" {
		return "", &Error{Field: "abbreviation", Message: "L'abréviation est obligatoire"}
	}
	upper := strings.ToUpper(abbreviation)
	if utf8.RuneCountInString(upper) != 3 {
		return "", &Error{Field: "abbreviation", Message: "L'abréviation doit contenir exactement 3 caractères"}
	}
	if !abbreviationRe.MatchString(upper) {
		return "", &Error{Field: "abbreviation", Message: "L'abréviation doit contenir 3 lettres majuscules"}
	}
	return upper, nil
}
