package service

import (
	"github.com/google/uuid"

	"github.com/qs3c/xbb_server/config"
	"github.com/qs3c/xbb_server/internal/model"
	"github.com/qs3c/xbb_server/internal/model/dto"
	"github.com/qs3c/xbb_server/internal/pkg/apperr"
	"github.com/qs3c/xbb_server/internal/pkg/link"
	"github.com/qs3c/xbb_server/internal/pkg/logger"
	"github.com/qs3c/xbb_server/internal/repository"
)

var (
	ErrInvalidLink         = apperr.BadRequest("订阅链接格式错误")
	ErrSubscribeSelf       = apperr.BadRequest("不能订阅自己的仓库")
	ErrSubscriptionMissing = apperr.NotFound("未订阅该仓库")
)

type SubscriptionService struct {
	subRepo  *repository.SubscriptionRepository
	repoRepo *repository.RepoRepository
	codec    *link.Codec
}

func NewSubscriptionService(subRepo *repository.SubscriptionRepository, repoRepo *repository.RepoRepository, cfg *config.Config) *SubscriptionService {
	return &SubscriptionService{
		subRepo:  subRepo,
		repoRepo: repoRepo,
		codec:    link.NewCodec(cfg.LinkScheme()),
	}
}

// Subscribe 通过分享链接订阅仓库；已订阅时直接返回，created 为 false
func (s *SubscriptionService) Subscribe(callerID, token string) (*dto.RepoInfo, bool, error) {
	ownerID, repoID, err := s.codec.Decode(token)
	if err != nil {
		return nil, false, ErrInvalidLink
	}

	repo, err := s.repoRepo.GetByID(repoID)
	if err != nil {
		if isNotFound(err) {
			return nil, false, ErrRepoNotFound
		}
		return nil, false, storeError(err)
	}
	// 链接中的拥有者与实际不符时按不存在处理
	if repo.IsDeleted() || repo.Owner != ownerID {
		return nil, false, ErrRepoNotFound
	}
	if repo.Owner == callerID {
		return nil, false, ErrSubscribeSelf
	}

	exists, err := s.subRepo.Exists(callerID, repoID)
	if err != nil {
		return nil, false, storeError(err)
	}
	if exists {
		return toRepoInfo(repo), false, nil
	}

	err = s.subRepo.Create(&model.Subscription{
		ID:     uuid.NewString(),
		UserID: callerID,
		RepoID: repoID,
	})
	if err != nil {
		// 并发订阅命中唯一索引，结果等同于已订阅
		if isDuplicate(err) {
			return toRepoInfo(repo), false, nil
		}
		return nil, false, storeError(err)
	}

	logger.Log.WithField("user_id", callerID).WithField("repo_id", repoID).Info("repo subscribed")
	return toRepoInfo(repo), true, nil
}

// Unsubscribe 取消订阅
func (s *SubscriptionService) Unsubscribe(callerID, repoID string) error {
	affected, err := s.subRepo.Delete(callerID, repoID)
	if err != nil {
		return storeError(err)
	}
	if affected == 0 {
		return ErrSubscriptionMissing
	}
	return nil
}

// List 当前用户订阅的仓库（不含已删除）
func (s *SubscriptionService) List(callerID string) ([]*dto.RepoInfo, error) {
	repos, err := s.subRepo.ListActiveRepos(callerID)
	if err != nil {
		return nil, storeError(err)
	}
	return toRepoInfos(repos), nil
}
