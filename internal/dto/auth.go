package dto

// LoginURLResponse 登录跳转地址
type LoginURLResponse struct {
	URL string `json:"url"`
}

// CallbackRequest Discord 回调参数
type CallbackRequest struct {
	Code  string `form:"code"  binding:"required"`
	State string `form:"state" binding:"required"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
