package dto

// LoginRequest 登录（不存在则注册）请求
type LoginRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserInfo 用户信息（返回给前端）
type UserInfo struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// ValidateNameResponse 用户名是否存在
type ValidateNameResponse struct {
	Exist bool `json:"exist"`
}

// UpdateUserRequest 更新用户信息请求
type UpdateUserRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=100"`
	Password  string  `json:"password" binding:"required"`
	AvatarURL *string `json:"avatar_url,omitempty" binding:"omitempty,max=500"`
}
