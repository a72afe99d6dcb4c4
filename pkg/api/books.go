package api

// User представляет пользователя в API ответах (без password hash)
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	SavedBooks []Book `json:"savedBooks"`
	BookCount  int    `json:"bookCount"`
}

// Book представляет книгу: и результат поиска, и сохраненную книгу
type Book struct {
	BookID      string   `json:"bookId"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Link        string   `json:"link,omitempty"`
}

// SaveBookRequest представляет тело запроса на сохранение книги
type SaveBookRequest struct {
	Book
}

// UserResponse представляет ответ с данными пользователя
type UserResponse struct {
	User User `json:"user"`
}

// SearchResponse представляет ответ поиска книг
type SearchResponse struct {
	Books []Book `json:"books"`
	Total int    `json:"total"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
