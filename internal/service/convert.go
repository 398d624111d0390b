package service

import (
	"time"

	"github.com/qs3c/xbb_server/internal/model"
	"github.com/qs3c/xbb_server/internal/model/dto"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
}

func toRepoInfo(repo *model.Repo) *dto.RepoInfo {
	return &dto.RepoInfo{
		ID:          repo.ID,
		Name:        repo.Name,
		Owner:       repo.Owner,
		Description: repo.Description,
		CreatedAt:   formatTime(repo.CreatedAt),
		UpdatedAt:   formatTime(repo.UpdatedAt),
	}
}

func toRepoInfos(repos []*model.Repo) []*dto.RepoInfo {
	items := make([]*dto.RepoInfo, 0, len(repos))
	for _, r := range repos {
		items = append(items, toRepoInfo(r))
	}
	return items
}

func toPostInfo(post *model.Post) *dto.PostInfo {
	return &dto.PostInfo{
		ID:        post.ID,
		Title:     post.Title,
		Category:  post.Category,
		Content:   post.Content,
		Author:    post.Author,
		RepoID:    post.RepoID,
		CreatedAt: formatTime(post.CreatedAt),
		UpdatedAt: formatTime(post.UpdatedAt),
	}
}

func toCommentItem(c *model.Comment) *dto.CommentItem {
	return &dto.CommentItem{
		ID:        c.ID,
		PostID:    c.PostID,
		RepoID:    c.RepoID,
		Content:   c.Content,
		Author:    c.Author,
		ParentID:  c.ParentID,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}
