package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RepoStatus 仓库状态，只允许 Normal / Deleted 两个取值
type RepoStatus uint8

const (
	RepoStatusNormal RepoStatus = iota + 1
	RepoStatusDeleted
)

const (
	repoStatusNormalText  = "normal"
	repoStatusDeletedText = "deleted"
)

// ErrInvalidRepoStatus 数据库中出现未知状态值（视为数据损坏）
type ErrInvalidRepoStatus struct {
	Raw interface{}
}

func (e *ErrInvalidRepoStatus) Error() string {
	return fmt.Sprintf("invalid repo status: %v", e.Raw)
}

func (s RepoStatus) String() string {
	switch s {
	case RepoStatusNormal:
		return repoStatusNormalText
	case RepoStatusDeleted:
		return repoStatusDeletedText
	default:
		return fmt.Sprintf("RepoStatus(%d)", uint8(s))
	}
}

// ParseRepoStatus 解析状态字符串，未知值返回错误
func ParseRepoStatus(text string) (RepoStatus, error) {
	switch text {
	case repoStatusNormalText:
		return RepoStatusNormal, nil
	case repoStatusDeletedText:
		return RepoStatusDeleted, nil
	default:
		return 0, &ErrInvalidRepoStatus{Raw: text}
	}
}

func (s RepoStatus) Value() (driver.Value, error) {
	switch s {
	case RepoStatusNormal, RepoStatusDeleted:
		return s.String(), nil
	default:
		return nil, &ErrInvalidRepoStatus{Raw: uint8(s)}
	}
}

func (s *RepoStatus) Scan(value interface{}) error {
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return &ErrInvalidRepoStatus{Raw: value}
	}

	parsed, err := ParseRepoStatus(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s RepoStatus) MarshalJSON() ([]byte, error) {
	if _, err := s.Value(); err != nil {
		return nil, err
	}
	return json.Marshal(s.String())
}

func (s *RepoStatus) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	parsed, err := ParseRepoStatus(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type Repo struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Name        string     `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Owner       string     `gorm:"size:64;not null;index" json:"owner"`
	Description string     `gorm:"type:text" json:"description"`
	Status      RepoStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Repo) TableName() string {
	return "repos"
}

// IsDeleted 是否已软删除
func (r *Repo) IsDeleted() bool {
	return r.Status == RepoStatusDeleted
}
