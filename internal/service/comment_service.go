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
	ErrCommentNotFound   = apperr.NotFound("评论不存在")
	ErrCommentPermission = apperr.Forbidden("无权操作此评论")
	ErrParentNotFound    = apperr.NotFound("父评论不存在")
	ErrParentNotInPost   = apperr.BadRequest("父评论不属于该文章")
	ErrParentIsSelf      = apperr.BadRequest("评论不能回复自己")
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
	access      *AccessService
	events      EventPublisher
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	postRepo *repository.PostRepository,
	access *AccessService,
	events EventPublisher,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		access:      access,
		events:      events,
	}
}

// List 文章的评论列表，需要读权限
func (s *CommentService) List(callerID, repoID, postID string) ([]*dto.CommentItem, error) {
	if err := s.access.AuthorizeRead(repoID, callerID); err != nil {
		return nil, err
	}
	if err := s.ensurePost(repoID, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPostID(postID)
	if err != nil {
		return nil, storeError(err)
	}

	items := make([]*dto.CommentItem, 0, len(comments))
	for _, c := range comments {
		items = append(items, toCommentItem(c))
	}
	return items, nil
}

// Get 单条评论，需要读权限
func (s *CommentService) Get(callerID, repoID, postID, commentID string) (*dto.CommentItem, error) {
	if err := s.access.AuthorizeRead(repoID, callerID); err != nil {
		return nil, err
	}

	comment, err := s.loadInPost(repoID, postID, commentID)
	if err != nil {
		return nil, err
	}
	return toCommentItem(comment), nil
}

// Push 无 ID 时新建评论，有 ID 时更新内容与父评论
// 新建需要读权限（拥有者或订阅者），更新还要求是评论作者
func (s *CommentService) Push(callerID, repoID, postID string, req *dto.PushCommentRequest) (*dto.CommentItem, PushResult, error) {
	if err := s.access.AuthorizeRead(repoID, callerID); err != nil {
		return nil, 0, err
	}
	if err := s.ensurePost(repoID, postID); err != nil {
		return nil, 0, err
	}

	var existing *model.Comment
	if req.ID != nil {
		c, err := s.loadInPost(repoID, postID, *req.ID)
		if err != nil {
			return nil, 0, err
		}
		if c.Author != callerID {
			metrics.AccessDenied("push", apperr.KindForbidden.String())
			return nil, 0, ErrCommentPermission
		}
		existing = c
	}

	if err := s.checkParent(postID, req); err != nil {
		return nil, 0, err
	}

	t := now()
	if existing != nil {
		existing.Content = req.Content
		existing.ParentID = req.ParentID
		existing.UpdatedAt = t
		if err := s.commentRepo.Update(existing); err != nil {
			return nil, 0, storeError(err)
		}

		metrics.Pushed(pubsub.EntityComment, PushUpdated.String())
		publish(s.events, pubsub.EventUpdated, repoID, pubsub.EntityComment, existing.ID, callerID)
		return toCommentItem(existing), PushUpdated, nil
	}

	comment := &model.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		RepoID:    repoID,
		Content:   req.Content,
		Author:    callerID,
		ParentID:  req.ParentID,
		CreatedAt: t,
		UpdatedAt: t,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, 0, storeError(err)
	}

	metrics.Pushed(pubsub.EntityComment, PushCreated.String())
	publish(s.events, pubsub.EventCreated, repoID, pubsub.EntityComment, comment.ID, callerID)
	return toCommentItem(comment), PushCreated, nil
}

// Delete 删除评论，需要读权限且只有作者可以删除
func (s *CommentService) Delete(callerID, repoID, postID, commentID string) error {
	if err := s.access.AuthorizeRead(repoID, callerID); err != nil {
		return err
	}

	comment, err := s.loadInPost(repoID, postID, commentID)
	if err != nil {
		return err
	}

	if comment.Author != callerID {
		metrics.AccessDenied("delete", apperr.KindForbidden.String())
		return ErrCommentPermission
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return storeError(err)
	}

	publish(s.events, pubsub.EventDeleted, repoID, pubsub.EntityComment, commentID, callerID)
	return nil
}

// checkParent 父评论必须存在且属于同一篇文章
func (s *CommentService) checkParent(postID string, req *dto.PushCommentRequest) error {
	if req.ParentID == nil {
		return nil
	}
	if req.ID != nil && *req.ID == *req.ParentID {
		return ErrParentIsSelf
	}

	parent, err := s.commentRepo.GetByID(*req.ParentID)
	if err != nil {
		if isNotFound(err) {
			return ErrParentNotFound
		}
		return storeError(err)
	}
	if parent.PostID != postID {
		return ErrParentNotInPost
	}
	return nil
}

func (s *CommentService) ensurePost(repoID, postID string) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if isNotFound(err) {
			return ErrPostNotFound
		}
		return storeError(err)
	}
	if post.RepoID != repoID {
		return ErrPostNotFound
	}
	return nil
}

func (s *CommentService) loadInPost(repoID, postID, commentID string) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, storeError(err)
	}
	if comment.PostID != postID || comment.RepoID != repoID {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}
