package auth

type TokenResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
}
