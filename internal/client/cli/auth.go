package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/bookshelf/internal/client/storage"
	"github.com/iudanet/bookshelf/pkg/api"
)

// Register регистрирует нового пользователя и сохраняет сессию локально
func (c *Cli) Register(ctx context.Context) error {
	fmt.Println("=== Registration ===")

	username, err := readInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	passwordConfirm, err := readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if password != passwordConfirm {
		return errors.New("passwords do not match")
	}

	resp, err := c.apiClient.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if err := c.saveSession(ctx, resp); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Printf("Registered and logged in as %s\n", resp.User.Username)
	return nil
}

// Login аутентифицирует пользователя и сохраняет сессию локально
func (c *Cli) Login(ctx context.Context) error {
	fmt.Println("=== Login ===")

	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	resp, err := c.apiClient.Login(ctx, api.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := c.saveSession(ctx, resp); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Printf("Logged in as %s\n", resp.User.Username)
	return nil
}

// Logout удаляет локальную сессию. Токен на сервере не отзывается:
// он истекает сам по ExpiresAt.
func (c *Cli) Logout(ctx context.Context) error {
	if err := c.store.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	fmt.Println("Logged out")
	return nil
}

// Status показывает состояние текущей сессии
func (c *Cli) Status(ctx context.Context) error {
	session, err := c.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			fmt.Println("Not logged in")
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	if !session.Valid() {
		fmt.Printf("Session expired at %s, run 'login' again\n",
			session.ExpiresAt.Format(time.RFC3339))
		return nil
	}

	fmt.Printf("Logged in as %s (%s)\n", session.Username, session.Email)
	fmt.Printf("Token expires at %s\n", session.ExpiresAt.Format(time.RFC3339))
	fmt.Printf("Saved books: %d\n", len(session.SavedBookIDs))
	return nil
}

// saveSession записывает сессию после успешного login/register
func (c *Cli) saveSession(ctx context.Context, resp *api.AuthResponse) error {
	bookIDs := make([]string, 0, len(resp.User.SavedBooks))
	for _, book := range resp.User.SavedBooks {
		bookIDs = append(bookIDs, book.BookID)
	}

	session := &storage.Session{
		Token:        resp.Token,
		UserID:       resp.User.ID,
		Username:     resp.User.Username,
		Email:        resp.User.Email,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
		SavedBookIDs: bookIDs,
	}
	return c.store.SaveSession(ctx, session)
}

// requireSession загружает сессию и устанавливает токен в API клиент
func (c *Cli) requireSession(ctx context.Context) (*storage.Session, error) {
	session, err := c.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, errors.New("not logged in, run 'login' first")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if !session.Valid() {
		return nil, errors.New("session expired, run 'login' again")
	}

	c.apiClient.SetToken(session.Token)
	return session, nil
}

// joinAuthors форматирует список авторов для вывода
func joinAuthors(authors []string) string {
	if len(authors) == 0 {
		return "unknown author"
	}
	return strings.Join(authors, ", ")
}
