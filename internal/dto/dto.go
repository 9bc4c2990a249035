package dto

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Msg      string `json:"msg"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

type CheckoutRequest struct {
	VideoID string `json:"video_id"`
	Email   string `json:"email"`
}

type CheckoutResponse struct {
	AuthURL string `json:"auth_url"`
	Ref     string `json:"ref"`
}

type BraintreeInitResponse struct {
	ClientToken string `json:"client_token"`
	Ref         string `json:"ref"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
}

type BraintreeCheckoutRequest struct {
	Reference string `json:"reference"`
	Nonce     string `json:"nonce"`
}

type VerifyResponse struct {
	Status    string `json:"status"` // success, cancelled
	Reference string `json:"reference"`
	VideoID   string `json:"video_id,omitempty"`
}

type CommentRequest struct {
	Email   string `json:"email"`
	Content string `json:"content"`
}

type CommentResponse struct {
	Email     string `json:"email"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
	URL string `json:"url,omitempty"`
}
