package dto

// RegisterRequest 用户注册请求（multipart 表单，头像/封面文件在 handler 层解析）
type RegisterRequest struct {
	Username string `form:"username" binding:"required,min=1,max=255"`
	Email    string `form:"email" binding:"required,email,max=255"`
	FullName string `form:"full_name" binding:"required,min=1,max=255"`
	Password string `form:"password" binding:"required,min=6,max=72"`
}

// LoginRequest 登录请求，identifier 为用户名或邮箱
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// TokenData 登录/刷新成功返回的令牌数据
type TokenData struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	User         UserInfo `json:"user"`
}
