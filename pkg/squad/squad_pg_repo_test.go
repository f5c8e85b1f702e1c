package squad_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/squad"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(SquadsQueryMatcher()),
	)
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{})

	require.NoError(t, err)

	return gdb, mock, func() { mockDB.Close() }
}

func SquadsQueryMatcher() sqlmock.QueryMatcher {
	return sqlmock.QueryMatcherFunc(func(expected, actual string) error {
		normalize := func(s string) string {
			return strings.Join(strings.Fields(s), " ")
		}

		act := normalize(actual)
		exp := normalize(expected)

		if strings.HasPrefix(act, exp) {
			return nil
		}

		return sqlmock.ErrCancelled
	})
}

func squadColumns() []string {
	return []string{
		"id", "squad_name", "abbreviation", "leader_id",
		"foundation_date", "created_at", "updated_at",
	}
}

func competitorColumns() []string {
	return []string{
		"id", "nickname", "email_address", "rank_level",
		"accumulated_points", "enrollment_date", "created_at", "updated_at",
	}
}

func TestSquadsRepoPg_CreateSquad(t *testing.T) {
	type createArgs struct {
		name         string
		abbreviation string
		leaderID     uint32
	}

	tests := []struct {
		name     string
		args     createArgs
		mockFunc func(sqlmock.Sqlmock)
		wantErr  error
	}{
		{
			name: "success creates leader membership",
			args: createArgs{
				name:         "Les Invincibles",
				abbreviation: "INV",
				leaderID:     7,
			},
			mockFunc: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("Les Invincibles").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("INV").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				leaderRows := sqlmock.NewRows(competitorColumns()).AddRow(
					7, "Leader1", "leader1@mail.com", "Gold", 500,
					time.Now(), time.Now(), time.Now(),
				)
				m.ExpectQuery(`SELECT * FROM "competitors"`).
					WithArgs(7, 1).
					WillReturnRows(leaderRows)
				m.ExpectQuery(`INSERT INTO "squads"`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
				m.ExpectExec(`INSERT INTO "squad_members"`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				m.ExpectCommit()
			},
			wantErr: nil,
		},
		{
			name: "squad name already taken",
			args: createArgs{
				name:         "Les Invincibles",
				abbreviation: "INV",
				leaderID:     7,
			},
			mockFunc: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("Les Invincibles").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				m.ExpectRollback()
			},
			wantErr: squad.ErrNameTaken,
		},
		{
			name: "abbreviation already taken",
			args: createArgs{
				name:         "Les Autres",
				abbreviation: "INV",
				leaderID:     7,
			},
			mockFunc: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("Les Autres").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("INV").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				m.ExpectRollback()
			},
			wantErr: squad.ErrAbbreviationTaken,
		},
		{
			name: "leader does not exist",
			args: createArgs{
				name:         "Les Invincibles",
				abbreviation: "INV",
				leaderID:     999,
			},
			mockFunc: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("Les Invincibles").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("INV").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				m.ExpectQuery(`SELECT * FROM "competitors"`).
					WithArgs(999, 1).
					WillReturnError(gorm.ErrRecordNotFound)
				m.ExpectRollback()
			},
			wantErr: squad.ErrLeaderNotFound,
		},
		{
			name: "membership insert failure rolls the squad back",
			args: createArgs{
				name:         "Les Invincibles",
				abbreviation: "INV",
				leaderID:     7,
			},
			mockFunc: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("Les Invincibles").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("INV").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				leaderRows := sqlmock.NewRows(competitorColumns()).AddRow(
					7, "Leader1", "leader1@mail.com", "Gold", 500,
					time.Now(), time.Now(), time.Now(),
				)
				m.ExpectQuery(`SELECT * FROM "competitors"`).
					WithArgs(7, 1).
					WillReturnRows(leaderRows)
				m.ExpectQuery(`INSERT INTO "squads"`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
				m.ExpectExec(`INSERT INTO "squad_members"`).
					WillReturnError(gorm.ErrInvalidDB)
				m.ExpectRollback()
			},
			wantErr: gorm.ErrInvalidDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()

			logger := zap.NewNop().Sugar()
			repo := squad.NewSquadsRepoPg(logger, db)

			tt.mockFunc(mock)

			got, err := repo.CreateSquad(tt.args.name, tt.args.abbreviation, tt.args.leaderID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				require.NotZero(t, got.ID)
				require.Equal(t, tt.args.name, got.SquadName)
				require.Equal(t, tt.args.abbreviation, got.Abbreviation)
				require.Equal(t, tt.args.leaderID, got.LeaderID)
				require.NotNil(t, got.Leader)
				require.Equal(t, "Leader1", got.Leader.Nickname)
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSquadsRepoPg_GetByID(t *testing.T) {
	tests := []struct {
		name     string
		id       uint32
		mockFunc func(sqlmock.Sqlmock)
		wantErr  error
	}{
		{
			name: "success with leader preloaded",
			id:   1,
			mockFunc: func(m sqlmock.Sqlmock) {
				squadRows := sqlmock.NewRows(squadColumns()).AddRow(
					1, "Les Invincibles", "INV", 7,
					time.Now(), time.Now(), time.Now(),
				)
				m.ExpectQuery(`SELECT * FROM "squads"`).
					WithArgs(1, 1).
					WillReturnRows(squadRows)
				leaderRows := sqlmock.NewRows(competitorColumns()).AddRow(
					7, "Leader1", "leader1@mail.com", "Gold", 500,
					time.Now(), time.Now(), time.Now(),
				)
				m.ExpectQuery(`SELECT * FROM "competitors"`).
					WithArgs(7).
					WillReturnRows(leaderRows)
			},
			wantErr: nil,
		},
		{
			name: "not found",
			id:   99,
			mockFunc: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT * FROM "squads"`).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			wantErr: squad.ErrSquadNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()

			logger := zap.NewNop().Sugar()
			repo := squad.NewSquadsRepoPg(logger, db)

			tt.mockFunc(mock)

			got, err := repo.GetByID(tt.id)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				require.Equal(t, tt.id, got.ID)
				require.NotNil(t, got.Leader)
				require.Equal(t, "Leader1", got.Leader.Nickname)
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSquadsRepoPg_UpdateSquad(t *testing.T) {
	tests := []struct {
		name     string
		id       uint32
		leaderID uint32
		mockFunc func(sqlmock.Sqlmock)
		wantErr  error
	}{
		{
			name:     "leader change moves the position-0 membership",
			id:       1,
			leaderID: 20,
			mockFunc: func(m sqlmock.Sqlmock) {
				squadRows := sqlmock.NewRows(squadColumns()).AddRow(
					1, "Les Invincibles", "INV", 10,
					time.Now(), time.Now(), time.Now(),
				)
				m.ExpectBegin()
				m.ExpectQuery(`SELECT * FROM "squads"`).
					WithArgs(1, 1).
					WillReturnRows(squadRows)
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("Les Invincibles", 1).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("INV", 1).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				leaderRows := sqlmock.NewRows(competitorColumns()).AddRow(
					20, "NewLeader", "new@mail.com", "Diamond", 900,
					time.Now(), time.Now(), time.Now(),
				)
				m.ExpectQuery(`SELECT * FROM "competitors"`).
					WithArgs(20, 1).
					WillReturnRows(leaderRows)
				// the new leader has no membership row yet: the position-0 row
				// is reassigned
				m.ExpectQuery(`SELECT * FROM "squad_members"`).
					WithArgs(1, 20, 1).
					WillReturnError(gorm.ErrRecordNotFound)
				m.ExpectExec(`UPDATE "squad_members" SET`).
					WithArgs(20, 1, 0).
					WillReturnResult(sqlmock.NewResult(0, 1))
				m.ExpectExec(`UPDATE "squads" SET`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				m.ExpectCommit()
			},
			wantErr: nil,
		},
		{
			name:     "not found",
			id:       99,
			leaderID: 10,
			mockFunc: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectQuery(`SELECT * FROM "squads"`).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
				m.ExpectRollback()
			},
			wantErr: squad.ErrSquadNotFound,
		},
		{
			name:     "name taken by another squad",
			id:       1,
			leaderID: 10,
			mockFunc: func(m sqlmock.Sqlmock) {
				squadRows := sqlmock.NewRows(squadColumns()).AddRow(
					1, "Les Invincibles", "INV", 10,
					time.Now(), time.Now(), time.Now(),
				)
				m.ExpectBegin()
				m.ExpectQuery(`SELECT * FROM "squads"`).
					WithArgs(1, 1).
					WillReturnRows(squadRows)
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("Les Invincibles", 1).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				m.ExpectRollback()
			},
			wantErr: squad.ErrNameTakenByOther,
		},
		{
			name:     "new leader does not exist",
			id:       1,
			leaderID: 999,
			mockFunc: func(m sqlmock.Sqlmock) {
				squadRows := sqlmock.NewRows(squadColumns()).AddRow(
					1, "Les Invincibles", "INV", 10,
					time.Now(), time.Now(), time.Now(),
				)
				m.ExpectBegin()
				m.ExpectQuery(`SELECT * FROM "squads"`).
					WithArgs(1, 1).
					WillReturnRows(squadRows)
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("Les Invincibles", 1).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				m.ExpectQuery(`SELECT count(*) FROM "squads"`).
					WithArgs("INV", 1).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				m.ExpectQuery(`SELECT * FROM "competitors"`).
					WithArgs(999, 1).
					WillReturnError(gorm.ErrRecordNotFound)
				m.ExpectRollback()
			},
			wantErr: squad.ErrNewLeaderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()

			logger := zap.NewNop().Sugar()
			repo := squad.NewSquadsRepoPg(logger, db)

			tt.mockFunc(mock)

			got, err := repo.UpdateSquad(tt.id, "Les Invincibles", "INV", tt.leaderID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				require.Equal(t, tt.leaderID, got.LeaderID)
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSquadsRepoPg_DeleteSquad(t *testing.T) {
	tests := []struct {
		name     string
		id       uint32
		mockFunc func(sqlmock.Sqlmock)
		wantErr  error
	}{
		{
			name: "success deletes memberships first",
			id:   1,
			mockFunc: func(m sqlmock.Sqlmock) {
				squadRows := sqlmock.NewRows(squadColumns()).AddRow(
					1, "Les Invincibles", "INV", 7,
					time.Now(), time.Now(), time.Now(),
				)
				m.ExpectBegin()
				m.ExpectQuery(`SELECT * FROM "squads"`).
					WithArgs(1, 1).
					WillReturnRows(squadRows)
				m.ExpectExec(`DELETE FROM "squad_members"`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
				m.ExpectExec(`DELETE FROM "squads"`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
				m.ExpectCommit()
			},
			wantErr: nil,
		},
		{
			name: "not found",
			id:   99,
			mockFunc: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectQuery(`SELECT * FROM "squads"`).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
				m.ExpectRollback()
			},
			wantErr: squad.ErrSquadNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()

			logger := zap.NewNop().Sugar()
			repo := squad.NewSquadsRepoPg(logger, db)

			tt.mockFunc(mock)

			err := repo.DeleteSquad(tt.id)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSquadsRepoPg_ListMembers(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	logger := zap.NewNop().Sugar()
	repo := squad.NewSquadsRepoPg(logger, db)

	rows := sqlmock.NewRows([]string{"nickname", "position", "membership_date"}).
		AddRow("Member2", 2, time.Now()).
		AddRow("Leader1", 0, time.Now()).
		AddRow("Member1", 1, time.Now())
	mock.ExpectQuery(`SELECT competitors.nickname AS nickname`).
		WithArgs(1).
		WillReturnRows(rows)

	members, err := repo.ListMembers(1)
	require.NoError(t, err)
	require.Len(t, members, 3)
	require.Equal(t, "Member2", members[0].Nickname)

	require.NoError(t, mock.ExpectationsWereMet())
}
