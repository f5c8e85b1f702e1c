package validate_test

import (
	"strings"
	"testing"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/validate"

	"github.com/stretchr/testify/require"
)

func TestNickname(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		wantMsg  string
	}{
		{name: "valid", nickname: "JohnDoe"},
		{name: "empty", nickname: "", wantMsg: "Le pseudo est obligatoire"},
		{name: "too short", nickname: "Jo", wantMsg: "entre 3 et 50 caractères"},
		{name: "too long", nickname: strings.Repeat("a", 51), wantMsg: "entre 3 et 50 caractères"},
		{name: "exactly 3", nickname: "Bob"},
		{name: "exactly 50", nickname: strings.Repeat("a", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Nickname(tt.nickname)
			if tt.wantMsg == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantMsg string
	}{
		{name: "valid", email: "john@example.com"},
		{name: "empty", email: "", wantMsg: "L'email est obligatoire"},
		{name: "no at sign", email: "john.example.com", wantMsg: "Format d'email invalide"},
		{name: "no domain dot", email: "john@example", wantMsg: "Format d'email invalide"},
		{name: "too long", email: strings.Repeat("a", 95) + "@mail.com", wantMsg: "dépasser 100 caractères"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Email(tt.email)
			if tt.wantMsg == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRank(t *testing.T) {
	for _, rank := range []string{"Bronze", "Silver", "Gold", "Platinum", "Diamond", "Master"} {
		require.NoError(t, validate.Rank(rank))
	}

	err := validate.Rank("Wood")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Bronze, Silver, Gold, Platinum, Diamond ou Master")

	// casing matters - ranks are stored as written
	require.Error(t, validate.Rank("bronze"))
}

func TestPoints(t *testing.T) {
	require.NoError(t, validate.Points(0))
	require.NoError(t, validate.Points(150))

	err := validate.Points(-1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Le score ne peut pas être négatif")
}

func TestSquadName(t *testing.T) {
	tests := []struct {
		name      string
		squadName string
		wantMsg   string
	}{
		{name: "valid", squadName: "Les Invincibles"},
		{name: "empty", squadName: "", wantMsg: "Le nom de l'équipe est obligatoire"},
		{name: "too short", squadName: "ab", wantMsg: "entre 3 et 100 caractères"},
		{name: "too long", squadName: strings.Repeat("a", 101), wantMsg: "entre 3 et 100 caractères"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.SquadName(tt.squadName)
			if tt.wantMsg == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestAbbreviation(t *testing.T) {
	tests := []struct {
		name         string
		abbreviation string
		want         string
		wantMsg      string
	}{
		{name: "valid uppercase", abbreviation: "INV", want: "INV"},
		{name: "lowercase gets normalized", abbreviation: "inv", want: "INV"},
		{name: "mixed case gets normalized", abbreviation: "iNv", want: "INV"},
		{name: "empty", abbreviation: "", wantMsg: "L'abréviation est obligatoire"},
		{name: "too short", abbreviation: "IN", wantMsg: "exactement 3 caractères"},
		{name: "too long", abbreviation: "INVA", wantMsg: "exactement 3 caractères"},
		{name: "digits rejected", abbreviation: "IN1", wantMsg: "3 lettres majuscules"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validate.Abbreviation(tt.abbreviation)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			} else {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantMsg)
				require.Empty(t, got)
			}
		})
	}
}
