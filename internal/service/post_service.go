package service

import (
	"github.com/google/uuid"

	"github.com/qs3c/xbb_server/internal/model"
	"github.com/qs3c/xbb_server/internal/model/dto"
	"github.com/qs3c/xbb_server/internal/pkg/apperr"
	"github.com/qs3c/xbb_server/internal/pkg/metrics"
	"github.com/qs3c/xbb_server/internal/pkg/pubsub"
	"github.com/qs3c/xbb_server/internal/repository"
)

var (
	ErrPostNotFound     = apperr.NotFound("文章不存在")
	ErrPostPermission   = apperr.Forbidden("无权修改此文章")
	ErrPostIDMismatch   = apperr.NotFound("文章或仓库 ID 与路径不一致")
	ErrPostAuthorForged = apperr.Forbidden("文章作者必须是当前用户")
)

type PostService struct {
	postRepo *repository.PostRepository
	access   *AccessService
	events   EventPublisher
}

func NewPostService(postRepo *repository.PostRepository, access *AccessService, events EventPublisher) *PostService {
	return &PostService{
		postRepo: postRepo,
		access:   access,
		events:   events,
	}
}

// List 仓库下的文章列表，需要读权限
func (s *PostService) List(callerID, repoID string) ([]*dto.PostInfo, error) {
	if err := s.access.AuthorizeRead(repoID, callerID); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByRepoID(repoID)
	if err != nil {
		return nil, storeError(err)
	}

	items := make([]*dto.PostInfo, 0, len(posts))
	for _, p := range posts {
		items = append(items, toPostInfo(p))
	}
	return items, nil
}

// Get 文章详情，需要读权限
func (s *PostService) Get(callerID, repoID, postID string) (*dto.PostInfo, error) {
	if err := s.access.AuthorizeRead(repoID, callerID); err != nil {
		return nil, err
	}

	post, err := s.loadInRepo(repoID, postID)
	if err != nil {
		return nil, err
	}
	return toPostInfo(post), nil
}

// Create 新建文章，ID 由服务端生成，需要写权限
func (s *PostService) Create(callerID, repoID string, req *dto.CreatePostRequest) (*dto.PostInfo, error) {
	if _, err := s.access.AuthorizeWrite(repoID, callerID); err != nil {
		return nil, err
	}

	t := now()
	post := &model.Post{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Category:  req.Category,
		Content:   req.Content,
		Author:    callerID,
		RepoID:    repoID,
		CreatedAt: t,
		UpdatedAt: t,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, storeError(err)
	}

	publish(s.events, pubsub.EventCreated, repoID, pubsub.EntityPost, post.ID, callerID)
	return toPostInfo(post), nil
}

// Push 客户端同步文章：不存在则创建，存在则更新标题、分类、内容
func (s *PostService) Push(callerID, repoID, postID string, req *dto.PushPostRequest) (*dto.PostInfo, PushResult, error) {
	if req.RepoID != repoID || req.ID != postID {
		return nil, 0, ErrPostIDMismatch
	}
	if req.Author != callerID {
		metrics.AccessDenied("push", apperr.KindForbidden.String())
		return nil, 0, ErrPostAuthorForged
	}

	existing, err := s.postRepo.GetByID(postID)
	if err != nil {
		if !isNotFound(err) {
			return nil, 0, storeError(err)
		}
		return s.insertPushed(callerID, req)
	}

	// 文章属于其他仓库时按不存在处理
	if existing.RepoID != repoID {
		return nil, 0, ErrPostNotFound
	}
	if existing.Author != callerID {
		metrics.AccessDenied("push", apperr.KindForbidden.String())
		return nil, 0, ErrPostPermission
	}
	if _, err := s.access.AuthorizeWrite(repoID, callerID); err != nil {
		return nil, 0, err
	}

	existing.Title = req.Title
	existing.Category = req.Category
	existing.Content = req.Content
	existing.UpdatedAt = now()
	if err := s.postRepo.Update(existing); err != nil {
		return nil, 0, storeError(err)
	}

	metrics.Pushed(pubsub.EntityPost, PushUpdated.String())
	publish(s.events, pubsub.EventUpdated, repoID, pubsub.EntityPost, existing.ID, callerID)
	return toPostInfo(existing), PushUpdated, nil
}

func (s *PostService) insertPushed(callerID string, req *dto.PushPostRequest) (*dto.PostInfo, PushResult, error) {
	if _, err := s.access.AuthorizeWrite(req.RepoID, callerID); err != nil {
		return nil, 0, err
	}

	t := now()
	createdAt := t
	if req.CreatedAt != nil {
		createdAt = req.CreatedAt.UTC()
	}

	post := &model.Post{
		ID:        req.ID,
		Title:     req.Title,
		Category:  req.Category,
		Content:   req.Content,
		Author:    callerID,
		RepoID:    req.RepoID,
		CreatedAt: createdAt,
		UpdatedAt: t,
	}
	if err := s.postRepo.Create(post); err != nil {
		if isDuplicate(err) {
			return nil, 0, apperr.Conflict("文章已存在")
		}
		return nil, 0, storeError(err)
	}

	metrics.Pushed(pubsub.EntityPost, PushCreated.String())
	publish(s.events, pubsub.EventCreated, post.RepoID, pubsub.EntityPost, post.ID, callerID)
	return toPostInfo(post), PushCreated, nil
}

// Delete 删除文章及其评论，需要写权限
func (s *PostService) Delete(callerID, repoID, postID string) error {
	if _, err := s.access.AuthorizeWrite(repoID, callerID); err != nil {
		return err
	}
	if _, err := s.loadInRepo(repoID, postID); err != nil {
		return err
	}

	if err := s.postRepo.DeleteWithComments(postID); err != nil {
		return storeError(err)
	}

	publish(s.events, pubsub.EventDeleted, repoID, pubsub.EntityPost, postID, callerID)
	return nil
}

func (s *PostService) loadInRepo(repoID, postID string) (*model.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, storeError(err)
	}
	if post.RepoID != repoID {
		return nil, ErrPostNotFound
	}
	return post, nil
}
