package dto

// SubscribeRequest 通过分享链接订阅
type SubscribeRequest struct {
	Link string `json:"link" binding:"required"`
}
