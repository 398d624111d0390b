package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qs3c/xbb_server/internal/model/dto"
	"github.com/qs3c/xbb_server/internal/testutil"
)

func TestPostHandler_Push(t *testing.T) {
	ctx := setupRouter(t)
	owner := testutil.TestUser(t, ctx.DB)
	reader := testutil.TestUser(t, ctx.DB)
	repo := testutil.TestRepo(t, ctx.DB, owner.ID)
	testutil.TestSubscription(t, ctx.DB, reader.ID, repo.ID)

	path := "/api/v1/repos/" + repo.ID + "/posts/p1"
	body := dto.PushPostRequest{ID: "p1", Title: "first", Author: owner.ID, RepoID: repo.ID}

	w := performRequest(ctx.Router, "PUT", path, body, owner)
	assert.Equal(t, http.StatusCreated, w.Code)

	body.Title = "first (edited)"
	w = performRequest(ctx.Router, "PUT", path, body, owner)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "first (edited)", dataMap(t, w)["title"])

	// 订阅者以自己的名义推送同样被拒
	readerBody := dto.PushPostRequest{ID: "p2", Title: "nope", Author: reader.ID, RepoID: repo.ID}
	w = performRequest(ctx.Router, "PUT", "/api/v1/repos/"+repo.ID+"/posts/p2", readerBody, reader)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 作者字段与调用者不符
	w = performRequest(ctx.Router, "PUT", path, body, reader)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(ctx.Router, "GET", path, nil, reader)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "first (edited)", dataMap(t, w)["title"])
}

func TestPostHandler_CreateListDelete(t *testing.T) {
	ctx := setupRouter(t)
	owner := testutil.TestUser(t, ctx.DB)
	repo := testutil.TestRepo(t, ctx.DB, owner.ID)
	base := "/api/v1/repos/" + repo.ID + "/posts"

	w := performRequest(ctx.Router, "POST", base, dto.CreatePostRequest{Title: "hello", Content: "world"}, owner)
	assert.Equal(t, http.StatusCreated, w.Code)
	postID := dataMap(t, w)["id"].(string)

	w = performRequest(ctx.Router, "GET", base, nil, owner)
	assert.Len(t, dataList(t, w), 1)

	w = performRequest(ctx.Router, "DELETE", base+"/"+postID, nil, owner)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(ctx.Router, "GET", base+"/"+postID, nil, owner)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
