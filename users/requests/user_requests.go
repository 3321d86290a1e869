package requests

type RegisterUserRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ValidateTOTPRequest struct {
	UserID   string `json:"user_id"`
	PreToken string `json:"pre_token"`
	Code     string `json:"code"`
}

type EnableTOTPRequest struct {
	Code string `json:"code"`
}

type SetUserRoleRequest struct {
	Role string `json:"role"`
}
