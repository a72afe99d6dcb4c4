package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/bookshelf/internal/client/storage"
	"github.com/iudanet/bookshelf/pkg/api"
)

const searchLimit = 10

// Search ищет книги в каталоге и кэширует результаты для команды save
func (c *Cli) Search(ctx context.Context, query string) error {
	resp, err := c.apiClient.Search(ctx, query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(resp.Books) == 0 {
		fmt.Println("No books found")
		return nil
	}

	results := make([]storage.SearchResult, 0, len(resp.Books))
	for _, book := range resp.Books {
		results = append(results, storage.SearchResult{
			BookID:      book.BookID,
			Title:       book.Title,
			Authors:     book.Authors,
			Description: book.Description,
			Image:       book.Image,
			Link:        book.Link,
		})
	}
	if err := c.store.SaveSearchResults(ctx, results); err != nil {
		return fmt.Errorf("failed to cache search results: %w", err)
	}

	fmt.Printf("Found %d books:\n\n", len(resp.Books))
	for i, book := range resp.Books {
		fmt.Printf("%d. %s\n", i+1, book.Title)
		fmt.Printf("   Authors: %s\n", joinAuthors(book.Authors))
		fmt.Printf("   ID: %s\n", book.BookID)
		if book.Link != "" {
			fmt.Printf("   Link: %s\n", book.Link)
		}
		fmt.Println()
	}
	fmt.Println("Use 'save <ID>' to save a book")
	return nil
}

// Save сохраняет книгу из кэша последнего поиска
func (c *Cli) Save(ctx context.Context, bookID string) error {
	session, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	if session.HasBook(bookID) {
		fmt.Println("Book is already saved")
		return nil
	}

	result, err := c.store.GetSearchResult(ctx, bookID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return fmt.Errorf("book %s is not in the last search results, run 'search' first", bookID)
		}
		return fmt.Errorf("failed to look up search result: %w", err)
	}

	resp, err := c.apiClient.SaveBook(ctx, api.SaveBookRequest{
		Book: api.Book{
			BookID:      result.BookID,
			Title:       result.Title,
			Authors:     result.Authors,
			Description: result.Description,
			Image:       result.Image,
			Link:        result.Link,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}

	if err := c.updateSessionBooks(ctx, session, resp.User); err != nil {
		return err
	}

	fmt.Printf("Saved %q (%d books total)\n", result.Title, resp.User.BookCount)
	return nil
}

// Remove удаляет сохраненную книгу
func (c *Cli) Remove(ctx context.Context, bookID string) error {
	session, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	resp, err := c.apiClient.RemoveBook(ctx, bookID)
	if err != nil {
		return fmt.Errorf("failed to remove book: %w", err)
	}

	if err := c.updateSessionBooks(ctx, session, resp.User); err != nil {
		return err
	}

	fmt.Printf("Removed %s (%d books left)\n", bookID, resp.User.BookCount)
	return nil
}

// List выводит сохраненные книги текущего пользователя
func (c *Cli) List(ctx context.Context) error {
	session, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	resp, err := c.apiClient.Me(ctx)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := c.updateSessionBooks(ctx, session, resp.User); err != nil {
		return err
	}

	if len(resp.User.SavedBooks) == 0 {
		fmt.Println("No saved books, use 'search' and 'save' to add some")
		return nil
	}

	fmt.Printf("Saved books (%d):\n\n", resp.User.BookCount)
	for i, book := range resp.User.SavedBooks {
		fmt.Printf("%d. %s\n", i+1, book.Title)
		fmt.Printf("   Authors: %s\n", joinAuthors(book.Authors))
		fmt.Printf("   ID: %s\n", book.BookID)
		fmt.Println()
	}
	return nil
}

// updateSessionBooks обновляет локальный кэш bookId после мутации
func (c *Cli) updateSessionBooks(ctx context.Context, session *storage.Session, user api.User) error {
	bookIDs := make([]string, 0, len(user.SavedBooks))
	for _, book := range user.SavedBooks {
		bookIDs = append(bookIDs, book.BookID)
	}
	session.SavedBookIDs = bookIDs

	if err := c.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}
