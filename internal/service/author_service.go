package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"moonpages/internal/model/book"
	"moonpages/internal/pkg/ctxutil"
	authRepo "moonpages/internal/repository/auth"
	bookRepo "moonpages/internal/repository/book"
	libraryRepo "moonpages/internal/repository/library"
)

// AuthorService 作者看板服务
type AuthorService struct {
	bookRepo     bookRepo.BookRepository
	userBookRepo libraryRepo.UserBookRepository
	userRepo     authRepo.UserRepository
}

// NewAuthorService 创建作者看板服务
func NewAuthorService(books bookRepo.BookRepository, userBooks libraryRepo.UserBookRepository, users authRepo.UserRepository) *AuthorService {
	return &AuthorService{
		bookRepo:     books,
		userBookRepo: userBooks,
		userRepo:     users,
	}
}

// AuthorStats 作者创作数据
type AuthorStats struct {
	PublishedBooks int64 `json:"publishedBooks"`
	TotalReaders   int64 `json:"totalReaders"`
	TotalComments  int   `json:"totalComments"`
}

// DashboardComment 看板上展示的读者评论
type DashboardComment struct {
	Content       string    `json:"content"`
	ChapterNumber *int      `json:"chapterNumber,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	BookTitle     string    `json:"bookTitle"`
	UserName      string    `json:"userName"`
	UserAvatar    string    `json:"userAvatar"`
}

// AuthorDashboard 作者看板数据
type AuthorDashboard struct {
	Stats          AuthorStats        `json:"stats"`
	RecentComments []DashboardComment `json:"recentComments"`
}

// GetDashboard 作者看板：已发布书数、读者总数、评论汇总及最近3条评论
func (s *AuthorService) GetDashboard(ctx context.Context, ident ctxutil.Identity) (*AuthorDashboard, error) {
	if err := requireAuthor(ident); err != nil {
		return nil, err
	}

	books, err := s.bookRepo.ListByAuthorFull(ctx, ident.UserID)
	if err != nil {
		log.Error().Err(err).Str("author", ident.UserID).Msg("failed to fetch author books")
		return nil, errors.New("Failed to fetch dashboard data")
	}

	bookIDs := make([]string, 0, len(books))
	titles := make(map[string]string, len(books))
	for _, b := range books {
		bookIDs = append(bookIDs, b.ID)
		titles[b.ID] = b.Title
	}

	published, err := s.bookRepo.Count(ctx, bson.M{"author": ident.UserID, "status": book.StatusPublished})
	if err != nil {
		log.Error().Err(err).Str("author", ident.UserID).Msg("failed to count published books")
		return nil, errors.New("Failed to fetch dashboard data")
	}

	readers, err := s.userBookRepo.CountByBooks(ctx, bookIDs)
	if err != nil {
		log.Error().Err(err).Str("author", ident.UserID).Msg("failed to count readers")
		return nil, errors.New("Failed to fetch dashboard data")
	}

	withComments, err := s.userBookRepo.ListWithCommentsByBooks(ctx, bookIDs)
	if err != nil {
		log.Error().Err(err).Str("author", ident.UserID).Msg("failed to fetch comments")
		return nil, errors.New("Failed to fetch dashboard data")
	}

	// 评论作者的姓名批量查一次
	commenterIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, ub := range withComments {
		for _, c := range ub.Comments {
			if !seen[c.User] {
				seen[c.User] = true
				commenterIDs = append(commenterIDs, c.User)
			}
		}
	}
	commenters, err := s.userRepo.FindByIDs(ctx, commenterIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch commenters")
		return nil, errors.New("Failed to fetch dashboard data")
	}
	names := make(map[string][2]string, len(commenters))
	for _, u := range commenters {
		names[u.ID] = [2]string{u.FirstName, u.LastName}
	}

	all := make([]DashboardComment, 0)
	for _, ub := range withComments {
		bookTitle := titles[ub.Book]
		if bookTitle == "" {
			bookTitle = "Unknown Book"
		}
		for _, c := range ub.Comments {
			dc := DashboardComment{
				Content:       c.Content,
				ChapterNumber: c.ChapterNumber,
				CreatedAt:     c.CreatedAt,
				BookTitle:     bookTitle,
				UserName:      "Deleted User",
				UserAvatar:    "??",
			}
			if n, ok := names[c.User]; ok {
				dc.UserName = strings.TrimSpace(n[0] + " " + n[1])
				dc.UserAvatar = initials(n[0], n[1])
			}
			all = append(all, dc)
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	recent := all
	if len(recent) > 3 {
		recent = recent[:3]
	}

	return &AuthorDashboard{
		Stats: AuthorStats{
			PublishedBooks: published,
			TotalReaders:   readers,
			TotalComments:  len(all),
		},
		RecentComments: recent,
	}, nil
}

func initials(first, last string) string {
	var b strings.Builder
	if first != "" {
		b.WriteString(strings.ToUpper(first[:1]))
	}
	if last != "" {
		b.WriteString(strings.ToUpper(last[:1]))
	}
	if b.Len() == 0 {
		return "??"
	}
	return b.String()
}
