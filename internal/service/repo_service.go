package service

import (
	"github.com/google/uuid"

	"github.com/qs3c/xbb_server/config"
	"github.com/qs3c/xbb_server/internal/model"
	"github.com/qs3c/xbb_server/internal/model/dto"
	"github.com/qs3c/xbb_server/internal/pkg/apperr"
	"github.com/qs3c/xbb_server/internal/pkg/link"
	"github.com/qs3c/xbb_server/internal/pkg/logger"
	"github.com/qs3c/xbb_server/internal/pkg/metrics"
	"github.com/qs3c/xbb_server/internal/pkg/pubsub"
	"github.com/qs3c/xbb_server/internal/repository"
)

var (
	ErrRepoNameExists  = apperr.Conflict("仓库名已被使用")
	ErrRepoIDMismatch  = apperr.NotFound("仓库 ID 与路径不一致")
	ErrRepoOwnerForged = apperr.Forbidden("仓库拥有者必须是当前用户")
)

type RepoService struct {
	repoRepo *repository.RepoRepository
	postRepo *repository.PostRepository
	access   *AccessService
	codec    *link.Codec
	events   EventPublisher
}

func NewRepoService(
	repoRepo *repository.RepoRepository,
	postRepo *repository.PostRepository,
	access *AccessService,
	cfg *config.Config,
	events EventPublisher,
) *RepoService {
	return &RepoService{
		repoRepo: repoRepo,
		postRepo: postRepo,
		access:   access,
		codec:    link.NewCodec(cfg.LinkScheme()),
		events:   events,
	}
}

// Create 创建仓库，ID 由服务端生成
func (s *RepoService) Create(callerID string, req *dto.CreateRepoRequest) (*dto.RepoInfo, error) {
	if err := s.ensureNameFree(req.Name, ""); err != nil {
		return nil, err
	}

	t := now()
	repo := &model.Repo{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Owner:       callerID,
		Description: req.Description,
		Status:      model.RepoStatusNormal,
		CreatedAt:   t,
		UpdatedAt:   t,
	}
	if err := s.repoRepo.Create(repo); err != nil {
		if isDuplicate(err) {
			return nil, ErrRepoNameExists
		}
		return nil, storeError(err)
	}

	publish(s.events, pubsub.EventCreated, repo.ID, pubsub.EntityRepo, repo.ID, callerID)
	return toRepoInfo(repo), nil
}

// ListByOwner 当前用户拥有的仓库（不含已删除）
func (s *RepoService) ListByOwner(callerID string) ([]*dto.RepoInfo, error) {
	repos, err := s.repoRepo.ListByOwner(callerID)
	if err != nil {
		return nil, storeError(err)
	}
	return toRepoInfos(repos), nil
}

// Get 获取仓库详情，需要读权限
func (s *RepoService) Get(callerID, repoID string) (*dto.RepoInfo, error) {
	repo, err := s.loadReadable(callerID, repoID)
	if err != nil {
		return nil, err
	}
	return toRepoInfo(repo), nil
}

// Delete 软删除仓库，需要写权限
func (s *RepoService) Delete(callerID, repoID string) error {
	if _, err := s.access.AuthorizeWrite(repoID, callerID); err != nil {
		return err
	}

	if err := s.repoRepo.SoftDelete(repoID, now()); err != nil {
		return storeError(err)
	}

	logger.Log.WithField("repo_id", repoID).Info("repo soft deleted")
	publish(s.events, pubsub.EventDeleted, repoID, pubsub.EntityRepo, repoID, callerID)
	return nil
}

// Push 客户端同步仓库：不存在则创建，存在则更新名称与描述
func (s *RepoService) Push(callerID, repoID string, req *dto.PushRepoRequest) (*dto.RepoInfo, PushResult, error) {
	if req.ID != repoID {
		return nil, 0, ErrRepoIDMismatch
	}
	if req.Owner != callerID {
		metrics.AccessDenied("push", apperr.KindForbidden.String())
		return nil, 0, ErrRepoOwnerForged
	}

	existing, err := s.repoRepo.GetByID(repoID)
	if err != nil {
		if !isNotFound(err) {
			return nil, 0, storeError(err)
		}
		return s.insertPushed(callerID, req)
	}

	if existing.IsDeleted() {
		return nil, 0, ErrRepoNotFound
	}
	if existing.Owner != callerID {
		metrics.AccessDenied("push", apperr.KindForbidden.String())
		return nil, 0, ErrRepoPermission
	}
	if err := s.ensureNameFree(req.Name, existing.ID); err != nil {
		return nil, 0, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.UpdatedAt = now()
	if err := s.repoRepo.Update(existing); err != nil {
		if isDuplicate(err) {
			return nil, 0, ErrRepoNameExists
		}
		return nil, 0, storeError(err)
	}

	metrics.Pushed(pubsub.EntityRepo, PushUpdated.String())
	publish(s.events, pubsub.EventUpdated, existing.ID, pubsub.EntityRepo, existing.ID, callerID)
	return toRepoInfo(existing), PushUpdated, nil
}

func (s *RepoService) insertPushed(callerID string, req *dto.PushRepoRequest) (*dto.RepoInfo, PushResult, error) {
	if err := s.ensureNameFree(req.Name, ""); err != nil {
		return nil, 0, err
	}

	t := now()
	createdAt := t
	if req.CreatedAt != nil {
		createdAt = req.CreatedAt.UTC()
	}

	repo := &model.Repo{
		ID:          req.ID,
		Name:        req.Name,
		Owner:       callerID,
		Description: req.Description,
		Status:      model.RepoStatusNormal,
		CreatedAt:   createdAt,
		UpdatedAt:   t,
	}
	if err := s.repoRepo.Create(repo); err != nil {
		if isDuplicate(err) {
			return nil, 0, ErrRepoNameExists
		}
		return nil, 0, storeError(err)
	}

	metrics.Pushed(pubsub.EntityRepo, PushCreated.String())
	publish(s.events, pubsub.EventCreated, repo.ID, pubsub.EntityRepo, repo.ID, callerID)
	return toRepoInfo(repo), PushCreated, nil
}

// SyncInfo 仓库信息及文章摘要，供客户端判断需要拉取哪些文章
func (s *RepoService) SyncInfo(callerID, repoID string) (*dto.SyncInfoResponse, error) {
	repo, err := s.loadReadable(callerID, repoID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByRepoID(repoID)
	if err != nil {
		return nil, storeError(err)
	}

	summaries := make([]*dto.PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, &dto.PostSummary{
			ID:        p.ID,
			Title:     p.Title,
			Category:  p.Category,
			UpdatedAt: formatTime(p.UpdatedAt),
		})
	}

	return &dto.SyncInfoResponse{
		Repo:         toRepoInfo(repo),
		PostsSummary: summaries,
	}, nil
}

// ShareLink 生成订阅链接，只有拥有者可以分享
func (s *RepoService) ShareLink(callerID, repoID string) (*dto.ShareLinkResponse, error) {
	repo, err := s.access.AuthorizeWrite(repoID, callerID)
	if err != nil {
		return nil, err
	}
	return &dto.ShareLinkResponse{
		Link: s.codec.Encode(repo.Owner, repo.ID),
	}, nil
}

func (s *RepoService) loadReadable(callerID, repoID string) (*model.Repo, error) {
	if err := s.access.AuthorizeRead(repoID, callerID); err != nil {
		return nil, err
	}

	repo, err := s.repoRepo.GetByID(repoID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRepoNotFound
		}
		return nil, storeError(err)
	}
	if repo.IsDeleted() {
		return nil, ErrRepoNotFound
	}
	return repo, nil
}

// ensureNameFree 名称未被其他仓库占用（selfID 为自身时允许同名）
func (s *RepoService) ensureNameFree(name, selfID string) error {
	other, err := s.repoRepo.GetByName(name)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return storeError(err)
	}
	if other.ID != selfID {
		return ErrRepoNameExists
	}
	return nil
}
