package repositories

import (
	"fmt"
	"testing"

	"saveenergy-server/db"
	"saveenergy-server/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) db.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&entities.User{}, &entities.Calculation{}))

	return &db.GormDatabase{DB: gdb}
}

func newCalc(userID, createdAt string) *entities.Calculation {
	return &entities.Calculation{
		UserID:            userID,
		CreatedAt:         createdAt,
		VdotM3h:           10000,
		StrompreisEurKwh:  0.3,
		WaermepreisEurKwh: 0.22,
		ZeitreduktionHD:   5,
		BetriebstageDA:    300,
		WaermeKwhA:        21675,
		StromKwhA:         12000,
		EuroA:             8369,
		Co2T:              13.22,
	}
}

func TestCalculationRepository_CreateAssignsIDAndTimestamp(t *testing.T) {
	repo := NewCalculationPgRepository(newTestDB(t))

	calc := newCalc("user-a", "")
	require.NoError(t, repo.Create(calc))

	assert.NotEmpty(t, calc.ID)
	assert.NotEmpty(t, calc.CreatedAt)
}

func TestCalculationRepository_ListInCreationOrder(t *testing.T) {
	repo := NewCalculationPgRepository(newTestDB(t))

	stamps := []string{
		"2026-08-29T10:00:00.000000Z",
		"2026-08-29T10:00:00.000500Z",
		"2026-08-29T10:00:01.000000Z",
	}
	for _, ts := range stamps {
		require.NoError(t, repo.Create(newCalc("user-a", ts)))
	}

	calcs, err := repo.GetByUserID("user-a", 0, 0)
	require.NoError(t, err)
	require.Len(t, calcs, 3)
	for i, calc := range calcs {
		assert.Equal(t, stamps[i], calc.CreatedAt)
	}
}

func TestCalculationRepository_LimitOffset(t *testing.T) {
	repo := NewCalculationPgRepository(newTestDB(t))

	for i := 0; i < 5; i++ {
		ts := fmt.Sprintf("2026-08-29T10:00:0%d.000000Z", i)
		require.NoError(t, repo.Create(newCalc("user-a", ts)))
	}

	calcs, err := repo.GetByUserID("user-a", 2, 1)
	require.NoError(t, err)
	require.Len(t, calcs, 2)
	assert.Equal(t, "2026-08-29T10:00:01.000000Z", calcs[0].CreatedAt)
	assert.Equal(t, "2026-08-29T10:00:02.000000Z", calcs[1].CreatedAt)
}

func TestCalculationRepository_OwnerIsolation(t *testing.T) {
	repo := NewCalculationPgRepository(newTestDB(t))

	mine := newCalc("user-a", "")
	theirs := newCalc("user-b", "")
	require.NoError(t, repo.Create(mine))
	require.NoError(t, repo.Create(theirs))

	calcs, err := repo.GetByUserID("user-a", 0, 0)
	require.NoError(t, err)
	require.Len(t, calcs, 1)
	assert.Equal(t, mine.ID, calcs[0].ID)

	// A foreign record looks exactly like a missing one.
	_, err = repo.GetByIDForUser(theirs.ID, "user-a")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.GetByIDForUser(mine.ID, "user-a")
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserPgRepository(newTestDB(t))

	first := &entities.User{
		Email:        "a@x.com",
		PasswordHash: "hash",
		FirstName:    "A",
		LastName:     "B",
	}
	require.NoError(t, repo.Create(first))

	second := &entities.User{
		Email:        "a@x.com",
		PasswordHash: "hash2",
		FirstName:    "C",
		LastName:     "D",
	}
	err := repo.Create(second)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	repo := NewUserPgRepository(newTestDB(t))

	user := &entities.User{Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(user))

	got, err := repo.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetByEmail("missing@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
