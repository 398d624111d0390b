// Package link 订阅分享链接的编解码，格式为 <scheme>://<owner_id>/<repo_id>
package link

import (
	"errors"
	"strings"
)

const schemeSeparator = "://"

var ErrInvalidLink = errors.New("link format error")

// Codec 订阅链接编解码器
type Codec struct {
	scheme string
}

func NewCodec(scheme string) *Codec {
	return &Codec{scheme: scheme}
}

// Encode 生成分享链接
func (c *Codec) Encode(ownerID, repoID string) string {
	return c.scheme + schemeSeparator + ownerID + "/" + repoID
}

// Decode 解析分享链接，scheme 只作为前缀，不参与校验
func (c *Codec) Decode(token string) (ownerID, repoID string, err error) {
	parts := strings.Split(token, schemeSeparator)
	if len(parts) != 2 {
		return "", "", ErrInvalidLink
	}

	segments := strings.Split(parts[1], "/")
	if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
		return "", "", ErrInvalidLink
	}

	return segments[0], segments[1], nil
}
