package auth

type (
	SignupRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
		FullName string `json:"fullName"`
	}
	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
)
