package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/iudanet/bookshelf/internal/client/api"
	"github.com/iudanet/bookshelf/internal/client/storage"
)

// Cli связывает API клиент и локальное хранилище сессии
type Cli struct {
	apiClient *api.Client
	store     storage.SessionStore
}

// New создает новый CLI
func New(apiClient *api.Client, store storage.SessionStore) *Cli {
	return &Cli{
		apiClient: apiClient,
		store:     store,
	}
}

// PrintUsage выводит справку по командам
func PrintUsage() {
	fmt.Println("Bookshelf Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  bookshelf [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version             Show version information")
	fmt.Println("  --server URL          Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH             Path to local database (default: bookshelf-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register              Register new user")
	fmt.Println("  login                 Login to server")
	fmt.Println("  logout                Logout (removes local session)")
	fmt.Println("  status                Show authentication status")
	fmt.Println("  search <query>        Search books in the catalog")
	fmt.Println("  save <bookId>         Save a book from the last search results")
	fmt.Println("  remove <bookId>       Remove a saved book")
	fmt.Println("  list                  Show saved books")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  bookshelf register")
	fmt.Println("  bookshelf login")
	fmt.Println("  bookshelf search 'the hobbit'")
	fmt.Println("  bookshelf save pD6arNyKyi8C")
	fmt.Println("  bookshelf list")
	fmt.Println("  bookshelf remove pD6arNyKyi8C")
	fmt.Println("  bookshelf --server https://example.com login")
}

// readInput читает строку из stdin
func readInput(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// readPassword читает пароль без отображения на экране
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Переход на новую строку после ввода пароля
	if err != nil {
		return "", err
	}
	return string(passwordBytes), nil
}
