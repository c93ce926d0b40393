package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"moonpages/internal/model/book"
	"moonpages/internal/model/library"
	"moonpages/internal/pkg/id"
	bookRepo "moonpages/internal/repository/book"
	libraryRepo "moonpages/internal/repository/library"
)

// LibraryService 读者书架服务
// 书架条目按需创建：读者第一次访问某本书时自动建立 (user, book) 关联
type LibraryService struct {
	userBookRepo libraryRepo.UserBookRepository
	bookRepo     bookRepo.BookRepository
}

// NewLibraryService 创建书架服务
func NewLibraryService(userBookRepo libraryRepo.UserBookRepository, books bookRepo.BookRepository) *LibraryService {
	return &LibraryService{
		userBookRepo: userBookRepo,
		bookRepo:     books,
	}
}

// LibraryEntry 书架条目及其关联的图书（图书可能已被作者删除）
type LibraryEntry struct {
	UserBook *library.UserBook `json:"userBook"`
	Book     *book.Book        `json:"book,omitempty"`
}

// GetUserBook 获取读者在某本书上的数据，没有则创建
func (s *LibraryService) GetUserBook(ctx context.Context, userID, bookID string) (*LibraryEntry, error) {
	b, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, NotFoundError("Book not found.")
	}

	ub, err := s.userBookRepo.GetOrCreate(ctx, userID, bookID)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Str("book", bookID).Msg("failed to load user book data")
		return nil, errors.New("Failed to load user book data.")
	}

	return &LibraryEntry{UserBook: ub, Book: b}, nil
}

// UpdateBookmark 设置书签（nil清除），同时刷新最近阅读时间
func (s *LibraryService) UpdateBookmark(ctx context.Context, userID, bookID string, chapterNumber *int) (*int, error) {
	if _, err := s.userBookRepo.GetOrCreate(ctx, userID, bookID); err != nil {
		log.Error().Err(err).Str("user", userID).Str("book", bookID).Msg("failed to ensure user book")
		return nil, errors.New("Failed to save bookmark.")
	}

	if err := s.userBookRepo.SetBookmark(ctx, userID, bookID, chapterNumber); err != nil {
		log.Error().Err(err).Str("user", userID).Str("book", bookID).Msg("failed to save bookmark")
		return nil, errors.New("Failed to save bookmark.")
	}
	return chapterNumber, nil
}

// HighlightInput 高亮输入
type HighlightInput struct {
	ChapterNumber int
	Text          string
	StartOffset   *int
	EndOffset     *int
}

// AddHighlight 添加高亮
func (s *LibraryService) AddHighlight(ctx context.Context, userID, bookID string, input HighlightInput) (*library.Highlight, error) {
	if input.ChapterNumber < 1 || input.Text == "" || input.StartOffset == nil || input.EndOffset == nil {
		return nil, ValidationError("Missing highlight data.")
	}

	if _, err := s.userBookRepo.GetOrCreate(ctx, userID, bookID); err != nil {
		log.Error().Err(err).Str("user", userID).Str("book", bookID).Msg("failed to ensure user book")
		return nil, errors.New("Failed to save highlight.")
	}

	h := library.Highlight{
		ID:            id.New(),
		ChapterNumber: input.ChapterNumber,
		Text:          input.Text,
		StartOffset:   *input.StartOffset,
		EndOffset:     *input.EndOffset,
		CreatedAt:     time.Now(),
	}

	if err := s.userBookRepo.AddHighlight(ctx, userID, bookID, h); err != nil {
		log.Error().Err(err).Str("user", userID).Str("book", bookID).Msg("failed to save highlight")
		return nil, errors.New("Failed to save highlight.")
	}
	return &h, nil
}

// DeleteHighlight 删除高亮
func (s *LibraryService) DeleteHighlight(ctx context.Context, userID, bookID, highlightID string) error {
	if !id.IsValid(highlightID) {
		return ValidationError("Invalid highlight ID.")
	}

	if err := s.userBookRepo.RemoveHighlight(ctx, userID, bookID, highlightID); err != nil {
		if isNoDocuments(err) {
			return NotFoundError("User data not found for this book.")
		}
		log.Error().Err(err).Str("user", userID).Str("book", bookID).Msg("failed to delete highlight")
		return errors.New("Failed to delete highlight.")
	}
	return nil
}

// AddComment 添加评论（章节号可选，空内容拒绝）
func (s *LibraryService) AddComment(ctx context.Context, userID, bookID, content string, chapterNumber *int) (*library.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ValidationError("Comment content cannot be empty.")
	}

	if _, err := s.userBookRepo.GetOrCreate(ctx, userID, bookID); err != nil {
		log.Error().Err(err).Str("user", userID).Str("book", bookID).Msg("failed to ensure user book")
		return nil, errors.New("Failed to post comment.")
	}

	c := library.Comment{
		ID:            id.New(),
		User:          userID,
		Content:       content,
		ChapterNumber: chapterNumber,
		CreatedAt:     time.Now(),
	}

	if err := s.userBookRepo.AddComment(ctx, userID, bookID, c); err != nil {
		log.Error().Err(err).Str("user", userID).Str("book", bookID).Msg("failed to post comment")
		return nil, errors.New("Failed to post comment.")
	}
	return &c, nil
}

// DeleteComment 删除评论（只删本人书架条目里的评论）
func (s *LibraryService) DeleteComment(ctx context.Context, userID, bookID, commentID string) error {
	if !id.IsValid(commentID) {
		return ValidationError("Invalid comment ID.")
	}

	if err := s.userBookRepo.RemoveComment(ctx, userID, bookID, commentID); err != nil {
		if isNoDocuments(err) {
			return NotFoundError("User data not found for this book.")
		}
		log.Error().Err(err).Str("user", userID).Str("book", bookID).Msg("failed to delete comment")
		return errors.New("Failed to delete comment.")
	}
	return nil
}

// GetLibrary 获取读者书架（图书已被删除的条目过滤掉）
func (s *LibraryService) GetLibrary(ctx context.Context, userID string) ([]*LibraryEntry, error) {
	items, err := s.userBookRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to load library")
		return nil, errors.New("Failed to load your library.")
	}

	entries := make([]*LibraryEntry, 0, len(items))
	for _, ub := range items {
		b, err := s.bookRepo.FindByID(ctx, ub.Book)
		if err != nil {
			// 图书已被作者删除，跳过该条目
			continue
		}
		entries = append(entries, &LibraryEntry{UserBook: ub, Book: b})
	}
	return entries, nil
}
