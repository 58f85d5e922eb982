// Package seed creates the default account and demo data for development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"forum/internal/middleware"
	"forum/internal/models"
	"forum/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// Credentials of the account created on an empty database.
const (
	DefaultUsername = "testuser"
	DefaultEmail    = "test@example.com"
	DefaultPassword = "testpassword"
)

// DefaultAccount creates the test account when no user exists yet.
// It reports whether an account was created.
func DefaultAccount(ctx context.Context, users *service.UserService) (bool, error) {
	n, err := users.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	_, err = users.CreateUser(ctx, service.CreateUserInput{
		Username: DefaultUsername,
		Email:    DefaultEmail,
		Password: DefaultPassword,
	})
	if models.HasCode(err, models.CodeConflict) {
		// another instance won the race
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create default account: %w", err)
	}

	middleware.Logger.InfoContext(ctx, "Default account created", slog.String("email", DefaultEmail))
	return true, nil
}

// Options configuration for the seeder
type Options struct {
	NumUsers int
	NumPosts int
	NumLikes int
	// Seed makes the generated data reproducible when non-zero.
	Seed int64
}

// Summary counts what a run created. Likes that hit an existing like are
// counted in Duplicates.
type Summary struct {
	Users      int
	Posts      int
	Likes      int
	Duplicates int
}

// Factory builds users, posts and likes through the services so that seeded
// data obeys the same rules as user traffic.
type Factory struct {
	users *service.UserService
	posts *service.PostService
	faker *gofakeit.Faker
}

func NewFactory(users *service.UserService, posts *service.PostService, seed int64) *Factory {
	return &Factory{users: users, posts: posts, faker: gofakeit.New(seed)}
}

// Run creates opts.NumUsers users, opts.NumPosts posts spread across them,
// and up to opts.NumLikes likes by random users on random posts.
func (f *Factory) Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary

	authors := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u, err := f.CreateUser(ctx, i)
		if err != nil {
			return sum, err
		}
		authors = append(authors, u)
		sum.Users++
	}
	if len(authors) == 0 {
		return sum, nil
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := authors[f.faker.Number(0, len(authors)-1)]
		p, err := f.posts.CreatePost(ctx, author.ID, f.PostContent())
		if err != nil {
			return sum, err
		}
		posts = append(posts, p)
		sum.Posts++
	}
	if len(posts) == 0 {
		return sum, nil
	}

	for i := 0; i < opts.NumLikes; i++ {
		liker := authors[f.faker.Number(0, len(authors)-1)]
		post := posts[f.faker.Number(0, len(posts)-1)]
		result, _, err := f.posts.ToggleLike(ctx, liker.ID, post.ID)
		if err != nil {
			return sum, err
		}
		if result == models.LikeResultLiked {
			sum.Likes++
		} else {
			sum.Duplicates++
		}
	}

	return sum, nil
}

// CreateUser persists a fake user. The index keeps usernames and emails unique
// within a run.
func (f *Factory) CreateUser(ctx context.Context, index int) (*models.User, error) {
	base := strings.ToLower(f.faker.FirstName())
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, base)
	if base == "" {
		base = "user"
	}
	username := fmt.Sprintf("%s_%d_%d", base, index, f.faker.Number(1000, 9999))
	if len(username) > 30 {
		username = username[len(username)-30:]
	}

	return f.users.CreateUser(ctx, service.CreateUserInput{
		Username: username,
		Email:    fmt.Sprintf("%s@%s", username, f.faker.DomainName()),
		Password: f.faker.Password(true, true, true, false, false, 16),
	})
}

// PostContent returns a sentence or two that fits in a post.
func (f *Factory) PostContent() string {
	content := f.faker.Sentence(f.faker.Number(4, 20))
	if f.faker.Bool() {
		content += " " + f.faker.HackerPhrase()
	}
	if utf8.RuneCountInString(content) > models.MaxPostContentLength {
		r := []rune(content)
		content = strings.TrimSpace(string(r[:models.MaxPostContentLength]))
	}
	return content
}
