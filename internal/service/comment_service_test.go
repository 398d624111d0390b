package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/xbb_server/internal/model/dto"
	"github.com/qs3c/xbb_server/internal/pkg/apperr"
	"github.com/qs3c/xbb_server/internal/testutil"
)

func TestCommentService_SubscriberCanComment(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.TestUser(t, env.db)
	reader := testutil.TestUser(t, env.db)
	repo := testutil.TestRepo(t, env.db, owner.ID)
	post := testutil.TestPost(t, env.db, repo.ID, owner.ID)
	testutil.TestSubscription(t, env.db, reader.ID, repo.ID)

	item, result, err := env.comments.Push(reader.ID, repo.ID, post.ID, &dto.PushCommentRequest{Content: "great"})
	require.NoError(t, err)
	assert.Equal(t, PushCreated, result)
	assert.Equal(t, reader.ID, item.Author)
	assert.Nil(t, item.ParentID)

	id := item.ID
	updated, result, err := env.comments.Push(reader.ID, repo.ID, post.ID, &dto.PushCommentRequest{ID: &id, Content: "great!"})
	require.NoError(t, err)
	assert.Equal(t, PushUpdated, result)
	assert.Equal(t, "great!", updated.Content)
	assert.Equal(t, item.CreatedAt, updated.CreatedAt)

	list, err := env.comments.List(owner.ID, repo.ID, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "great!", list[0].Content)
}

func TestCommentService_StrangerCannotComment(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.TestUser(t, env.db)
	stranger := testutil.TestUser(t, env.db)
	repo := testutil.TestRepo(t, env.db, owner.ID)
	post := testutil.TestPost(t, env.db, repo.ID, owner.ID)

	_, _, err := env.comments.Push(stranger.ID, repo.ID, post.ID, &dto.PushCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.comments.List(stranger.ID, repo.ID, post.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestCommentService_EditRequiresAuthorship(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.TestUser(t, env.db)
	reader := testutil.TestUser(t, env.db)
	repo := testutil.TestRepo(t, env.db, owner.ID)
	post := testutil.TestPost(t, env.db, repo.ID, owner.ID)
	testutil.TestSubscription(t, env.db, reader.ID, repo.ID)
	comment := testutil.TestComment(t, env.db, post, reader.ID, "mine")

	// 仓库拥有者也不能改别人的评论
	id := comment.ID
	_, _, err := env.comments.Push(owner.ID, repo.ID, post.ID, &dto.PushCommentRequest{ID: &id, Content: "edited"})
	assert.ErrorIs(t, err, ErrCommentPermission)

	missing := "no-such-comment"
	_, _, err = env.comments.Push(reader.ID, repo.ID, post.ID, &dto.PushCommentRequest{ID: &missing, Content: "x"})
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentService_Delete(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.TestUser(t, env.db)
	reader := testutil.TestUser(t, env.db)
	repo := testutil.TestRepo(t, env.db, owner.ID)
	post := testutil.TestPost(t, env.db, repo.ID, owner.ID)
	testutil.TestSubscription(t, env.db, reader.ID, repo.ID)
	comment := testutil.TestComment(t, env.db, post, reader.ID, "bye")

	err := env.comments.Delete(owner.ID, repo.ID, post.ID, comment.ID)
	assert.ErrorIs(t, err, ErrCommentPermission)

	require.NoError(t, env.comments.Delete(reader.ID, repo.ID, post.ID, comment.ID))

	_, err = env.comments.Get(owner.ID, repo.ID, post.ID, comment.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	err = env.comments.Delete(reader.ID, repo.ID, post.ID, comment.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentService_DeleteRequiresReadAccess(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.TestUser(t, env.db)
	reader := testutil.TestUser(t, env.db)
	repo := testutil.TestRepo(t, env.db, owner.ID)
	post := testutil.TestPost(t, env.db, repo.ID, owner.ID)
	testutil.TestSubscription(t, env.db, reader.ID, repo.ID)
	first := testutil.TestComment(t, env.db, post, reader.ID, "first")
	second := testutil.TestComment(t, env.db, post, owner.ID, "second")

	// 取消订阅后作者也不能再删除
	require.NoError(t, env.subs.Unsubscribe(reader.ID, repo.ID))
	err := env.comments.Delete(reader.ID, repo.ID, post.ID, first.ID)
	assert.ErrorIs(t, err, ErrRepoReadDenied)

	// 仓库软删除后按不存在处理
	require.NoError(t, env.repos.Delete(owner.ID, repo.ID))
	err = env.comments.Delete(owner.ID, repo.ID, post.ID, second.ID)
	assert.ErrorIs(t, err, ErrRepoReadNotFound)
}

func TestCommentService_ParentValidation(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.TestUser(t, env.db)
	repo := testutil.TestRepo(t, env.db, owner.ID)
	post := testutil.TestPost(t, env.db, repo.ID, owner.ID)
	otherPost := testutil.TestPost(t, env.db, repo.ID, owner.ID)
	parent := testutil.TestComment(t, env.db, post, owner.ID, "parent")
	foreign := testutil.TestComment(t, env.db, otherPost, owner.ID, "elsewhere")

	reply, _, err := env.comments.Push(owner.ID, repo.ID, post.ID, &dto.PushCommentRequest{Content: "reply", ParentID: &parent.ID})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)

	_, _, err = env.comments.Push(owner.ID, repo.ID, post.ID, &dto.PushCommentRequest{Content: "x", ParentID: &foreign.ID})
	assert.ErrorIs(t, err, ErrParentNotInPost)

	missing := "missing"
	_, _, err = env.comments.Push(owner.ID, repo.ID, post.ID, &dto.PushCommentRequest{Content: "x", ParentID: &missing})
	assert.ErrorIs(t, err, ErrParentNotFound)

	_, _, err = env.comments.Push(owner.ID, repo.ID, post.ID, &dto.PushCommentRequest{ID: &parent.ID, Content: "x", ParentID: &parent.ID})
	assert.ErrorIs(t, err, ErrParentIsSelf)

	_, _, err = env.comments.Push(owner.ID, repo.ID, "no-post", &dto.PushCommentRequest{Content: "x"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}
