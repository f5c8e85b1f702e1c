package apierr

import "fmt"

// The message strings are a contract surface: clients and tests match on
// substrings like "introuvable" and "déjà utilisé", so they stay verbatim.
var (
	BadRequest = APIError{
		Code:    "INVALID_REQUEST",
		Message: "Requête invalide",
	}
	InternalServerError = APIError{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "Erreur interne du serveur",
	}
	NicknameTaken = APIError{
		Code:    "NICKNAME_TAKEN",
		Message: "Ce pseudo est déjà utilisé",
	}
	EmailTaken = APIError{
		Code:    "EMAIL_TAKEN",
		Message: "Cet email est déjà utilisé",
	}
	SquadNameTaken = APIError{
		Code:    "SQUAD_NAME_TAKEN",
		Message: "Ce nom d'équipe est déjà utilisé",
	}
	SquadNameTakenByOther = APIError{
		Code:    "SQUAD_NAME_TAKEN",
		Message: "Ce nom d'équipe est déjà utilisé par une autre équipe",
	}
	AbbreviationTaken = APIError{
		Code:    "ABBREVIATION_TAKEN",
		Message: "Cette abréviation est déjà utilisée",
	}
	AbbreviationTakenByOther = APIError{
		Code:    "ABBREVIATION_TAKEN",
		Message: "Cette abréviation est déjà utilisée par une autre équipe",
	}
	LeaderNotFound = APIError{
		Code:    "LEADER_NOT_FOUND",
		Message: "Le leader spécifié n'existe pas",
	}
	NewLeaderNotFound = APIError{
		Code:    "LEADER_NOT_FOUND",
		Message: "Le nouveau leader spécifié n'existe pas",
	}
	CompetitorLeadsSquad = APIError{
		Code:    "COMPETITOR_LEADS_SQUAD",
		Message: "Ce compétiteur est leader d'une équipe et ne peut pas être supprimé",
	}
)

// Not-found messages carry the requested id, so these are builders rather
// than static definitions.

func CompetitorNotFound(id uint32) APIError {
	return APIError{
		Code:    "COMPETITOR_NOT_FOUND",
		Message: fmt.Sprintf("Compétiteur avec ID %d introuvable", id),
	}
}

func SquadNotFound(id uint32) APIError {
	return APIError{
		Code:    "SQUAD_NOT_FOUND",
		Message: fmt.Sprintf("Squad avec ID %d introuvable", id),
	}
}

func Validation(message string) APIError {
	return APIError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}
