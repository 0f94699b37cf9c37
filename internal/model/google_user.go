package model

// GoogleUserInfo holds the identity fields returned by Google's userinfo
// and tokeninfo endpoints. Only Email is load-bearing; the rest is used to
// prefill the student profile on first sign-in.
type GoogleUserInfo struct {
	GID           string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// LoginResponse is returned after a successful sign-in.
type LoginResponse struct {
	Student     Student `json:"student"`
	AccessToken string  `json:"access_token"`
}
