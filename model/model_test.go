package model

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/lac-hong-legacy/epsilon_api/progression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestIDSet(t *testing.T) {
	assert.Equal(t, []string{}, IDSet(nil))
	assert.Equal(t, []string{}, IDSet(datatypes.JSON(`{"not":"a list"}`)))
	assert.Equal(t, []string{}, IDSet(datatypes.JSON(`[broken`)))
	assert.Equal(t, []string{"a", "7", "b"}, IDSet(datatypes.JSON(`["a", 7, null, "b"]`)))
}

func TestNewUserProgressIsZero(t *testing.T) {
	p := NewUserProgress("p1", "ada@example.com")

	snap := p.Snapshot()
	require.NotNil(t, snap)
	assert.Zero(t, snap.XP)
	assert.Zero(t, snap.StreakDays)
	assert.Equal(t, 0, snap.Completed())
	assert.NotNil(t, snap.Badges)
	assert.Empty(t, snap.Badges)
}

func TestSnapshotOfMissingRecord(t *testing.T) {
	var p *UserProgress
	assert.Nil(t, p.Snapshot())
}

func TestSnapshotWithoutBadgeColumn(t *testing.T) {
	p := &UserProgress{CompletedLessons: datatypes.JSON(`["l1"]`)}

	snap := p.Snapshot()
	assert.Nil(t, snap.Badges)
	assert.Equal(t, []string{"l1"}, snap.CompletedLessons)
	assert.Empty(t, snap.CompletedQuizzes)
}

func TestSnapshotNullBadgesFallBackToStarter(t *testing.T) {
	var decoded UserProgress
	require.NoError(t, sonic.Unmarshal([]byte(`{"id":"p1","user_email":"ada@example.com","badges":null}`), &decoded))

	for name, p := range map[string]*UserProgress{
		"decoded null":   &decoded,
		"null":           {Badges: datatypes.JSON(`null`)},
		"padded null":    {Badges: datatypes.JSON(" null\n")},
		"missing column": {},
	} {
		snap := p.Snapshot()
		assert.Nil(t, snap.Badges, name)
		assert.Equal(t, []string{progression.StarterBadgeID}, progression.EarnedBadgeIDs(snap), name)
	}

	empty := &UserProgress{Badges: datatypes.JSON(`[]`)}
	assert.Equal(t, []string{}, progression.EarnedBadgeIDs(empty.Snapshot()))
}

func TestAddDownload(t *testing.T) {
	p := NewUserProgress("p1", "ada@example.com")

	assert.True(t, p.AddDownload("r1"))
	assert.False(t, p.AddDownload("r1"))
	assert.True(t, p.AddDownload("r2"))
	assert.Equal(t, []string{"r1", "r2"}, IDSet(p.DownloadedResources))
	assert.Equal(t, []string{}, IDSet(p.CompletedLessons))
}
