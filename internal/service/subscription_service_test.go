package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/xbb_server/internal/model/dto"
	"github.com/qs3c/xbb_server/internal/pkg/apperr"
	"github.com/qs3c/xbb_server/internal/pkg/link"
	"github.com/qs3c/xbb_server/internal/testutil"
)

func TestSubscriptionService_ShareSubscribeUnsubscribe(t *testing.T) {
	env := newTestEnv(t)
	bob := testutil.TestUser(t, env.db, testutil.WithName("bob"))
	alice := testutil.TestUser(t, env.db, testutil.WithName("alice"))

	repo, err := env.repos.Create(bob.ID, &dto.CreateRepoRequest{Name: "bob-notes"})
	require.NoError(t, err)
	share, err := env.repos.ShareLink(bob.ID, repo.ID)
	require.NoError(t, err)

	_, err = env.posts.List(alice.ID, repo.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	info, created, err := env.subs.Subscribe(alice.ID, share.Link)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, repo.ID, info.ID)

	// 重复订阅保持幂等
	_, created, err = env.subs.Subscribe(alice.ID, share.Link)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = env.posts.List(alice.ID, repo.ID)
	assert.NoError(t, err)

	subs, err := env.subs.List(alice.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, repo.ID, subs[0].ID)

	require.NoError(t, env.subs.Unsubscribe(alice.ID, repo.ID))

	_, err = env.posts.List(alice.ID, repo.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	err = env.subs.Unsubscribe(alice.ID, repo.ID)
	assert.ErrorIs(t, err, ErrSubscriptionMissing)
}

func TestSubscriptionService_Subscribe_Rejected(t *testing.T) {
	env := newTestEnv(t)
	bob := testutil.TestUser(t, env.db)
	alice := testutil.TestUser(t, env.db)
	repo := testutil.TestRepo(t, env.db, bob.ID)
	deleted := testutil.TestRepo(t, env.db, bob.ID, testutil.WithRepoDeleted())
	codec := link.NewCodec("xbb")

	tests := []struct {
		name    string
		caller  string
		link    string
		wantErr error
	}{
		{"malformed", alice.ID, "not a link", ErrInvalidLink},
		{"self subscribe", bob.ID, codec.Encode(bob.ID, repo.ID), ErrSubscribeSelf},
		{"owner mismatch", alice.ID, codec.Encode(alice.ID, repo.ID), ErrRepoNotFound},
		{"absent repo", alice.ID, codec.Encode(bob.ID, "missing"), ErrRepoNotFound},
		{"deleted repo", alice.ID, codec.Encode(bob.ID, deleted.ID), ErrRepoNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.subs.Subscribe(tt.caller, tt.link)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	subs, err := env.subs.List(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)
}
