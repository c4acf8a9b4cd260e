package handlers

type RegisterParam struct {
	UserName string `form:"user_name" json:"user_name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type LoginParam struct {
	UserName string `form:"user_name" json:"user_name"`
	PassWord string `form:"password" json:"password"`
}

type RoleParam struct {
	Role string `form:"role" json:"role"`
}
