package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"moonpages/internal/model/auth"
	"moonpages/internal/model/book"
	"moonpages/internal/pkg/cache"
	"moonpages/internal/pkg/ctxutil"
	"moonpages/internal/pkg/id"
	"moonpages/internal/pkg/storage"
	"moonpages/internal/pkg/wordcount"
	bookRepo "moonpages/internal/repository/book"
)

// BookService 图书服务
// 章节与总字数的聚合一致性在这里维护：每次章节变更后
// total_word_count 必须等于所有章节 word_count 之和
type BookService struct {
	bookRepo bookRepo.BookRepository
	storage  storage.Storage
	cache    *cache.RedisCache // 可选，nil时跳过缓存
}

// NewBookService 创建图书服务
func NewBookService(repo bookRepo.BookRepository, store storage.Storage, redisCache *cache.RedisCache) *BookService {
	return &BookService{
		bookRepo: repo,
		storage:  store,
		cache:    redisCache,
	}
}

// requireAuthor 所有图书写操作都要求AUTHOR角色
func requireAuthor(ident ctxutil.Identity) error {
	if !ident.HasRole(auth.RoleAuthor.String()) {
		return ForbiddenError("Access denied. Author role required.")
	}
	return nil
}

// ChapterInput 创建图书时的章节输入
type ChapterInput struct {
	Title   string
	Content string
}

// CreateBookInput 创建图书输入
type CreateBookInput struct {
	Title       string
	Description string
	Categories  []string
	Chapters    []ChapterInput
}

// CreateBook 创建图书
// 未提供章节时自动生成一个空的第1章，章节编号按输入顺序从1分配
func (s *BookService) CreateBook(ctx context.Context, ident ctxutil.Identity, input CreateBookInput) (*book.Book, error) {
	if err := requireAuthor(ident); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ValidationError("Book title is required.")
	}

	var chapters []book.Chapter
	if len(input.Chapters) > 0 {
		chapters = make([]book.Chapter, 0, len(input.Chapters))
		for i, ch := range input.Chapters {
			chTitle := strings.TrimSpace(ch.Title)
			if chTitle == "" {
				chTitle = wordcount.DefaultChapterTitle(i + 1)
			}
			content := strings.TrimSpace(ch.Content)
			chapters = append(chapters, book.Chapter{
				ChapterNumber: i + 1,
				Title:         chTitle,
				Content:       content,
				WordCount:     wordcount.Count(content),
				IsDraft:       true,
			})
		}
	} else {
		chapters = []book.Chapter{{
			ChapterNumber: 1,
			Title:         "Chapter 1: Title",
			Content:       "",
			WordCount:     0,
			IsDraft:       true,
		}}
	}

	categories := input.Categories
	if categories == nil {
		categories = []string{}
	}

	b := &book.Book{
		ID:          id.New(),
		Author:      ident.UserID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Categories:  categories,
		Chapters:    chapters,
		Status:      book.StatusDraft,
	}
	b.TotalWordCount = b.SumWordCount()

	if err := s.bookRepo.Create(ctx, b); err != nil {
		log.Error().Err(err).Str("author", ident.UserID).Msg("failed to create book")
		return nil, errors.New("Failed to create book.")
	}

	return b, nil
}

// Pagination 分页信息
type Pagination struct {
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int64 `json:"currentPage"`
	TotalItems  int64 `json:"totalItems"`
	Limit       int64 `json:"limit"`
}

// ListAuthorBooks 查询当前作者的图书列表（分页，不含章节正文）
func (s *BookService) ListAuthorBooks(ctx context.Context, ident ctxutil.Identity, page, limit int64) ([]*book.Book, *Pagination, error) {
	if err := requireAuthor(ident); err != nil {
		return nil, nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	books, total, err := s.bookRepo.ListByAuthor(ctx, ident.UserID, page, limit)
	if err != nil {
		log.Error().Err(err).Str("author", ident.UserID).Msg("failed to list author books")
		return nil, nil, errors.New("Failed to fetch books.")
	}

	totalPages := (total + limit - 1) / limit
	return books, &Pagination{
		TotalPages:  totalPages,
		CurrentPage: page,
		TotalItems:  total,
		Limit:       limit,
	}, nil
}

// GetChapter 获取章节（仅书的作者可读）
func (s *BookService) GetChapter(ctx context.Context, ident ctxutil.Identity, bookID string, chapterNumber int) (*book.Chapter, error) {
	if err := requireAuthor(ident); err != nil {
		return nil, err
	}

	b, err := s.bookRepo.FindByIDForAuthor(ctx, bookID, ident.UserID)
	if err != nil {
		return nil, NotFoundError("Book not found.")
	}

	ch, ok := b.FindChapter(chapterNumber)
	if !ok {
		return nil, NotFoundError("Chapter not found.")
	}
	return ch, nil
}

// AddChapterInput 追加章节输入
type AddChapterInput struct {
	Title   string
	Content string
	IsDraft *bool // 缺省为true
}

// AddChapter 追加章节
// 编号取现有最大编号+1（章节曾被删除时编号不回填空洞）
func (s *BookService) AddChapter(ctx context.Context, ident ctxutil.Identity, bookID string, input AddChapterInput) (*book.Chapter, error) {
	if err := requireAuthor(ident); err != nil {
		return nil, err
	}

	b, err := s.bookRepo.FindByIDForAuthor(ctx, bookID, ident.UserID)
	if err != nil {
		return nil, NotFoundError("Book not found.")
	}

	number := b.NextChapterNumber()
	title := input.Title
	if title == "" {
		title = wordcount.DefaultChapterTitle(number)
	}
	isDraft := true
	if input.IsDraft != nil {
		isDraft = *input.IsDraft
	}

	ch := book.Chapter{
		ChapterNumber: number,
		Title:         title,
		Content:       input.Content,
		WordCount:     wordcount.Count(input.Content),
		IsDraft:       isDraft,
	}

	newTotal := b.SumWordCount() + ch.WordCount
	if err := s.bookRepo.AppendChapter(ctx, bookID, ident.UserID, ch, newTotal); err != nil {
		log.Error().Err(err).Str("book", bookID).Msg("failed to add chapter")
		return nil, errors.New("Failed to add chapter.")
	}

	return &ch, nil
}

// UpdateChapterInput 章节更新输入，nil字段不修改
type UpdateChapterInput struct {
	Title   *string
	Content *string
	IsDraft *bool
}

// UpdateChapter 按编号更新章节
// 两阶段：先定位patch章节字段，再重读全书重写总字数。
// 并发写同一本书时以后写为准
func (s *BookService) UpdateChapter(ctx context.Context, ident ctxutil.Identity, bookID string, chapterNumber int, input UpdateChapterInput) (*book.Chapter, error) {
	if err := requireAuthor(ident); err != nil {
		return nil, err
	}

	if chapterNumber < 1 {
		return nil, ValidationError("Invalid chapter number provided.")
	}

	upd := bookRepo.ChapterUpdate{
		Title:   input.Title,
		IsDraft: input.IsDraft,
	}
	if input.Content != nil {
		upd.Content = input.Content
		wc := wordcount.Count(*input.Content)
		upd.WordCount = &wc
	}
	if upd.IsEmpty() {
		return nil, ValidationError("No valid fields provided for update.")
	}

	if err := s.bookRepo.UpdateChapter(ctx, bookID, ident.UserID, chapterNumber, upd); err != nil {
		if isNoDocuments(err) {
			return nil, NotFoundError("Book not found or chapter number is incorrect.")
		}
		log.Error().Err(err).Str("book", bookID).Int("chapter", chapterNumber).Msg("failed to update chapter")
		return nil, errors.New("Failed to update chapter.")
	}

	// 聚合刷新：重读后按所有章节重算总字数
	b, err := s.bookRepo.FindByIDForAuthor(ctx, bookID, ident.UserID)
	if err != nil {
		return nil, NotFoundError("Book not found or chapter number is incorrect.")
	}

	if err := s.bookRepo.SetTotalWordCount(ctx, bookID, b.SumWordCount()); err != nil {
		log.Error().Err(err).Str("book", bookID).Msg("failed to refresh total word count")
		return nil, errors.New("Failed to update chapter.")
	}

	ch, ok := b.FindChapter(chapterNumber)
	if !ok {
		return nil, NotFoundError("Book not found or chapter number is incorrect.")
	}
	return ch, nil
}

// UpdateCategories 整体替换分类列表
func (s *BookService) UpdateCategories(ctx context.Context, ident ctxutil.Identity, bookID string, categories []string) ([]string, error) {
	if err := requireAuthor(ident); err != nil {
		return nil, err
	}

	if categories == nil {
		return nil, ValidationError("Categories must be an array of strings.")
	}

	set := bson.M{"categories": categories}
	if err := s.bookRepo.UpdateFields(ctx, bookID, ident.UserID, set); err != nil {
		if isNoDocuments(err) {
			return nil, NotFoundError("Book not found or access denied.")
		}
		log.Error().Err(err).Str("book", bookID).Msg("failed to update categories")
		return nil, errors.New("Failed to update categories.")
	}
	return categories, nil
}

// UpdateStatus 更新图书状态（仅接受合法的状态枚举值）
func (s *BookService) UpdateStatus(ctx context.Context, ident ctxutil.Identity, bookID string, status string) (book.BookStatus, error) {
	if err := requireAuthor(ident); err != nil {
		return "", err
	}

	if status == "" {
		return "", ValidationError("Book status is required.")
	}
	newStatus := book.BookStatus(status)
	if !newStatus.IsValid() {
		return "", ValidationError(fmt.Sprintf("Invalid book status: %s", status))
	}

	set := bson.M{"status": newStatus}
	if err := s.bookRepo.UpdateFields(ctx, bookID, ident.UserID, set); err != nil {
		if isNoDocuments(err) {
			return "", NotFoundError("Book not found or access denied.")
		}
		log.Error().Err(err).Str("book", bookID).Msg("failed to update book status")
		return "", errors.New("Failed to update book status.")
	}

	s.invalidatePublishedCache(ctx)
	return newStatus, nil
}

// DeleteBook 删除图书
// 书架条目不级联清理，由读者侧列表过滤失效引用
func (s *BookService) DeleteBook(ctx context.Context, ident ctxutil.Identity, bookID string) error {
	if err := requireAuthor(ident); err != nil {
		return err
	}

	if err := s.bookRepo.Delete(ctx, bookID, ident.UserID); err != nil {
		if isNoDocuments(err) {
			return NotFoundError("Book not found or access denied.")
		}
		log.Error().Err(err).Str("book", bookID).Msg("failed to delete book")
		return errors.New("Failed to delete book.")
	}

	s.invalidatePublishedCache(ctx)
	return nil
}

// GetFullBook 获取整本书（含章节正文，任何已登录用户可读）
func (s *BookService) GetFullBook(ctx context.Context, bookID string) (*book.Book, error) {
	b, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, NotFoundError("Book not found.")
	}
	return b, nil
}

// UploadCover 上传封面并更新图书
func (s *BookService) UploadCover(ctx context.Context, ident ctxutil.Identity, bookID, filename string, file io.Reader, contentType string) (*book.Book, error) {
	if err := requireAuthor(ident); err != nil {
		return nil, err
	}

	// 先确认书存在且属于当前作者，避免孤儿文件
	if _, err := s.bookRepo.FindByIDForAuthor(ctx, bookID, ident.UserID); err != nil {
		return nil, NotFoundError("Book not found or access denied.")
	}

	key := storage.CoverKeyPrefix + bookID + path.Ext(filename)
	url, err := s.storage.Upload(ctx, key, file, contentType)
	if err != nil {
		log.Error().Err(err).Str("book", bookID).Msg("failed to upload book cover")
		return nil, errors.New("Failed to upload book cover.")
	}

	set := bson.M{"cover_image_url": url}
	if err := s.bookRepo.UpdateFields(ctx, bookID, ident.UserID, set); err != nil {
		if isNoDocuments(err) {
			return nil, NotFoundError("Book not found or access denied.")
		}
		log.Error().Err(err).Str("book", bookID).Msg("failed to save cover url")
		return nil, errors.New("Failed to upload book cover.")
	}

	b, err := s.bookRepo.FindByIDForAuthor(ctx, bookID, ident.UserID)
	if err != nil {
		return nil, NotFoundError("Book not found or access denied.")
	}
	return b, nil
}

// ListPublishedBooks 查询已发布图书（公开书城，走缓存）
func (s *BookService) ListPublishedBooks(ctx context.Context) ([]*book.Book, error) {
	if s.cache != nil {
		var cached []*book.Book
		if err := s.cache.Get(ctx, cache.PublishedBooksCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	books, err := s.bookRepo.ListPublished(ctx, 0)
	if err != nil {
		log.Error().Err(err).Msg("failed to list published books")
		return nil, errors.New("Failed to fetch books.")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.PublishedBooksCacheKey, books, cache.PublishedBooksCacheTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache published books")
		}
	}
	return books, nil
}

func (s *BookService) invalidatePublishedCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.PublishedBooksCacheKey); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate published books cache")
	}
}
