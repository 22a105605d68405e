package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/nexaboard/internal/client/client"
	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLPersistence(t *testing.T) *SQLPersistence {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLPersistence(db)
}

func TestSQLPersistence_SaveLoadClear(t *testing.T) {
	p := newSQLPersistence(t)
	ctx := context.Background()

	rec, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, rec.Token)
	assert.Nil(t, rec.User)

	user := models.ProjectUser(models.User{ID: "u1", Username: "abc", Bio: "hi"})
	require.NoError(t, p.Save(ctx, Record{User: &user, Token: "t1", ExpiresAt: time.Now().Add(time.Hour)}))

	rec, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", rec.Token)
	require.NotNil(t, rec.User)
	assert.Equal(t, user, *rec.User)

	require.NoError(t, p.Clear(ctx))
	rec, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, rec.Token)
	assert.Nil(t, rec.User)
}

func TestSQLPersistence_SaveWithoutTokenDropsOldToken(t *testing.T) {
	p := newSQLPersistence(t)
	ctx := context.Background()
	user := models.User{Username: "abc"}

	require.NoError(t, p.Save(ctx, Record{User: &user, Token: "t1", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, p.Save(ctx, Record{User: &user}))

	rec, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, rec.Token)
	assert.NotNil(t, rec.User)
}

func TestSQLPersistence_ExpiredTokenIsIgnored(t *testing.T) {
	p := newSQLPersistence(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }
	user := models.User{Username: "abc"}

	require.NoError(t, p.Save(ctx, Record{User: &user, Token: "t1", ExpiresAt: now.Add(-time.Second)}))

	rec, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, rec.Token)
}

func TestSQLPersistence_SaveRequiresIdentity(t *testing.T) {
	p := newSQLPersistence(t)
	require.Error(t, p.Save(context.Background(), Record{Token: "t1"}))
}

func TestSQLPersistence_StoreRoundTrip(t *testing.T) {
	p := newSQLPersistence(t)
	ctx := context.Background()

	s := NewStore(p, 720*time.Hour, nil)
	require.NoError(t, s.Set(ctx, models.User{Username: "abc"}, "t1", true))

	restored := NewStore(p, 720*time.Hour, nil)
	state, refresh, err := NewBootstrapper(restored, &fakeProfiles{user: &models.User{Username: "abc"}}, nil).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, WarmRestored, state)
	assert.Equal(t, Authenticated, waitRefresh(t, refresh))

	got, ok := restored.Get()
	require.True(t, ok)
	assert.Equal(t, "t1", got.Token)
}
