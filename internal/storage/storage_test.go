package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-practice-bot/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGet_Missing(t *testing.T) {
	db := newTestDB(t)
	u, err := db.Get(42)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestPutGet_RoundTrip(t *testing.T) {
	db := newTestDB(t)

	in := &models.UserRecord{
		ChatID:          100,
		Username:        "tamara",
		FirstName:       "Тамара",
		Subscribed:      true,
		PracticeMode:    models.ModeDual,
		CurrentDay:      3,
		LastMorningSent: "2026-01-10",
		Stage:           models.Stage{Kind: models.StageInTest, TestID: "male_constitution_test"},
		Email:           "tamara@example.com",
		ActiveTest: &models.ActiveTest{
			TestID:      "male_constitution_test",
			QuestionIdx: 2,
			Answers:     []int{0, 1},
			Forced:      true,
			OriginDay:   14,
		},
		PendingEmail: &models.PendingEmail{
			TestID:  "female_constitution_test",
			Score:   9,
			Answers: []int{1, 1, 1, 0, 2},
		},
		TestsTaken: map[string]models.TestTaken{
			"female_constitution_test": {
				Summary:         "тип",
				Answers:         []int{1, 1, 1, 0, 2},
				TakenAt:         time.Date(2026, 1, 9, 12, 0, 0, 0, time.UTC),
				EmailRecipient:  "tamara@example.com",
				EmailStatus:     "sent",
				ConsultInterest: true,
			},
		},
	}
	require.NoError(t, db.Put(in))

	out, err := db.Get(100)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, in.Username, out.Username)
	assert.Equal(t, in.FirstName, out.FirstName)
	assert.True(t, out.Subscribed)
	assert.Equal(t, models.ModeDual, out.PracticeMode)
	assert.Equal(t, 3, out.CurrentDay)
	assert.Equal(t, "2026-01-10", out.LastMorningSent)
	assert.Empty(t, out.LastEveningSent)
	assert.Equal(t, in.Stage, out.Stage)
	assert.Equal(t, in.Email, out.Email)
	assert.Equal(t, in.ActiveTest, out.ActiveTest)
	assert.Equal(t, in.PendingEmail, out.PendingEmail)
	assert.Equal(t, in.TestsTaken, out.TestsTaken)
	assert.False(t, out.CreatedAt.IsZero())
	assert.False(t, out.LastInteraction.IsZero())
}

func TestPut_Upsert(t *testing.T) {
	db := newTestDB(t)

	u := &models.UserRecord{ChatID: 7, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 1}
	require.NoError(t, db.Put(u))

	u.CurrentDay = 5
	u.ActiveTest = &models.ActiveTest{TestID: "gender_selector", Answers: []int{}}
	require.NoError(t, db.Put(u))

	out, err := db.Get(7)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 5, out.CurrentDay)
	require.NotNil(t, out.ActiveTest)
	assert.Equal(t, "gender_selector", out.ActiveTest.TestID)

	// Сброс вложенного состояния тоже должен сохраняться.
	out.ActiveTest = nil
	require.NoError(t, db.Put(out))
	again, err := db.Get(7)
	require.NoError(t, err)
	assert.Nil(t, again.ActiveTest)
}

func TestAllSubscribed_Filters(t *testing.T) {
	db := newTestDB(t)

	records := []*models.UserRecord{
		{ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual},
		{ChatID: 2, Subscribed: true, PracticeMode: models.ModeMorningOnly},
		{ChatID: 3, Subscribed: true, PracticeMode: models.ModeExtended},
		{ChatID: 4, Subscribed: false, PracticeMode: models.ModeDual},
		{ChatID: 5, Subscribed: true, PracticeMode: models.ModeNone},
	}
	for _, r := range records {
		require.NoError(t, db.Put(r))
	}

	subs, err := db.AllSubscribed()
	require.NoError(t, err)
	ids := make([]int64, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, s.ChatID)
	}
	assert.ElementsMatch(t, []int64{1, 2, 3}, ids)

	all, err := db.All()
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
