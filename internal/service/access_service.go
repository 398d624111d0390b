package service

import (
	"github.com/qs3c/xbb_server/internal/model"
	"github.com/qs3c/xbb_server/internal/pkg/apperr"
	"github.com/qs3c/xbb_server/internal/pkg/logger"
	"github.com/qs3c/xbb_server/internal/pkg/metrics"
	"github.com/qs3c/xbb_server/internal/repository"
)

var (
	ErrRepoNotFound   = apperr.NotFound("仓库不存在")
	ErrRepoPermission = apperr.Forbidden("无权操作该仓库")
	// 读权限被拒绝时两种类别使用相同提示
	ErrRepoReadNotFound = apperr.NotFound("仓库不存在或无权访问")
	ErrRepoReadDenied   = apperr.Forbidden("仓库不存在或无权访问")
)

// AccessService 仓库读写权限判定
type AccessService struct {
	repoRepo *repository.RepoRepository
	subRepo  *repository.SubscriptionRepository
}

func NewAccessService(repoRepo *repository.RepoRepository, subRepo *repository.SubscriptionRepository) *AccessService {
	return &AccessService{
		repoRepo: repoRepo,
		subRepo:  subRepo,
	}
}

// AuthorizeWrite 只有未删除仓库的拥有者可写，成功时返回仓库
func (s *AccessService) AuthorizeWrite(repoID, callerID string) (*model.Repo, error) {
	repo, err := s.checkOwner(repoID, callerID)
	if err != nil {
		recordDenied("write", err)
		return nil, err
	}
	return repo, nil
}

// AuthorizeRead 订阅者或拥有者可读
// 先判断订阅，订阅者不受拥有者查询结果影响；否则沿用写权限的拒绝类别
func (s *AccessService) AuthorizeRead(repoID, callerID string) error {
	subscribed, err := s.subRepo.ExistsActive(callerID, repoID)
	if err != nil {
		return storeError(err)
	}
	if subscribed {
		return nil
	}

	if _, err := s.checkOwner(repoID, callerID); err != nil {
		switch err {
		case ErrRepoNotFound:
			err = ErrRepoReadNotFound
		case ErrRepoPermission:
			err = ErrRepoReadDenied
		}
		recordDenied("read", err)
		return err
	}
	return nil
}

func (s *AccessService) checkOwner(repoID, callerID string) (*model.Repo, error) {
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
	if repo.Owner != callerID {
		return nil, ErrRepoPermission
	}
	return repo, nil
}

func recordDenied(op string, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		return
	}
	logger.Log.WithField("op", op).WithField("kind", kind.String()).Debug("access denied")
	metrics.AccessDenied(op, kind.String())
}
