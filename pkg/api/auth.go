package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"` // username пользователя
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // plaintext пароль (передается только по TLS)
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // plaintext пароль
}

// AuthResponse представляет ответ login/register: токен и пользователь
type AuthResponse struct {
	Token     string `json:"token"`      // JWT access token
	ExpiresIn int64  `json:"expires_in"` // время жизни токена в секундах
	User      User   `json:"user"`       // пользователь без password hash
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
