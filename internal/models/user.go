package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User представляет пользователя в системе
type User struct {
	ID           string      `json:"id"            bson:"_id"`          // UUID пользователя
	Username     string      `json:"username"      bson:"username"`     // уникальный username
	Email        string      `json:"email"         bson:"email"`        // уникальный email
	PasswordHash string      `json:"-"             bson:"passwordHash"` // bcrypt хеш пароля, никогда не отдается наружу
	SavedBooks   []SavedBook `json:"savedBooks"    bson:"savedBooks"`   // сохраненные книги, уникальные по bookId
	CreatedAt    time.Time   `json:"created_at"    bson:"createdAt"`    // время создания
	UpdatedAt    time.Time   `json:"updated_at"    bson:"updatedAt"`    // время последнего обновления
}

// SavedBook представляет книгу, сохраненную пользователем
// bookId - идентификатор книги во внешнем каталоге (Google Books volume id)
type SavedBook struct {
	BookID      string   `json:"bookId"          bson:"bookId"`
	Title       string   `json:"title"           bson:"title"`
	Authors     []string `json:"authors"         bson:"authors"`
	Description string   `json:"description"     bson:"description"`
	Image       string   `json:"image,omitempty" bson:"image,omitempty"`
	Link        string   `json:"link,omitempty"  bson:"link,omitempty"`
}

// SetPassword хеширует plaintext пароль через bcrypt и сохраняет хеш
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword проверяет plaintext пароль против сохраненного bcrypt хеша
// Сравнение внутри bcrypt выполняется за константное время
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// BookCount возвращает количество сохраненных книг
func (u *User) BookCount() int {
	return len(u.SavedBooks)
}

// HasBook проверяет, сохранена ли книга с данным bookId
func (u *User) HasBook(bookID string) bool {
	for _, b := range u.SavedBooks {
		if b.BookID == bookID {
			return true
		}
	}
	return false
}
