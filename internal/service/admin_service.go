package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"moonpages/internal/model/auth"
	"moonpages/internal/model/book"
	"moonpages/internal/pkg/cache"
	"moonpages/internal/pkg/id"
	"moonpages/internal/pkg/password"
	authRepo "moonpages/internal/repository/auth"
	bookRepo "moonpages/internal/repository/book"
)

// AdminService 管理端服务
// 路由层已用RequireRole(ADMIN)鉴权，这里不再重复检查
type AdminService struct {
	userRepo authRepo.UserRepository
	bookRepo bookRepo.BookRepository
	cache    *cache.RedisCache // 可选，nil时跳过缓存
}

// NewAdminService 创建管理端服务
func NewAdminService(users authRepo.UserRepository, books bookRepo.BookRepository, redisCache *cache.RedisCache) *AdminService {
	return &AdminService{
		userRepo: users,
		bookRepo: books,
		cache:    redisCache,
	}
}

// DashboardStats 运营看板统计
type DashboardStats struct {
	Users          int64 `json:"users"`
	Authors        int64 `json:"authors"`
	Admins         int64 `json:"admins"`
	Books          int64 `json:"books"`
	PendingBooks   int64 `json:"pendingBooks"`
	PublishedBooks int64 `json:"publishedBooks"`
	RejectedBooks  int64 `json:"rejectedBooks"`
}

// GetDashboard 获取看板统计（短TTL缓存）
func (s *AdminService) GetDashboard(ctx context.Context) (*DashboardStats, error) {
	if s.cache != nil {
		var cached DashboardStats
		if err := s.cache.Get(ctx, cache.DashboardCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &DashboardStats{}
	counts := []struct {
		dest   *int64
		count  func(context.Context) (int64, error)
		errMsg string
	}{
		{&stats.Users, func(ctx context.Context) (int64, error) {
			return s.userRepo.Count(ctx, bson.M{"roles": auth.RoleUser})
		}, "count users"},
		{&stats.Authors, func(ctx context.Context) (int64, error) {
			return s.userRepo.Count(ctx, bson.M{"roles": auth.RoleAuthor})
		}, "count authors"},
		{&stats.Admins, func(ctx context.Context) (int64, error) {
			return s.userRepo.Count(ctx, bson.M{"roles": auth.RoleAdmin})
		}, "count admins"},
		{&stats.Books, func(ctx context.Context) (int64, error) {
			return s.bookRepo.Count(ctx, bson.M{})
		}, "count books"},
		{&stats.PendingBooks, func(ctx context.Context) (int64, error) {
			return s.bookRepo.Count(ctx, bson.M{"status": book.StatusPending})
		}, "count pending books"},
		{&stats.PublishedBooks, func(ctx context.Context) (int64, error) {
			return s.bookRepo.Count(ctx, bson.M{"status": book.StatusPublished})
		}, "count published books"},
		{&stats.RejectedBooks, func(ctx context.Context) (int64, error) {
			return s.bookRepo.Count(ctx, bson.M{"status": book.StatusRejected})
		}, "count rejected books"},
	}
	for _, c := range counts {
		n, err := c.count(ctx)
		if err != nil {
			log.Error().Err(err).Str("stat", c.errMsg).Msg("failed to load dashboard stats")
			return nil, errors.New("Failed to load dashboard stats")
		}
		*c.dest = n
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.DashboardCacheKey, stats, cache.DashboardCacheTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache dashboard stats")
		}
	}
	return stats, nil
}

// ListAdmins 获取管理员列表
func (s *AdminService) ListAdmins(ctx context.Context) ([]*auth.User, error) {
	admins, _, err := s.userRepo.ListByRole(ctx, auth.RoleAdmin, 1, 1000)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch admins")
		return nil, errors.New("Failed to fetch admins")
	}
	return admins, nil
}

// AddAdminInput 新增管理员输入
type AddAdminInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AddAdmin 新增管理员
func (s *AdminService) AddAdmin(ctx context.Context, input AddAdminInput) (*auth.User, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Password == "" {
		return nil, ValidationError("All fields are required")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, _ := s.userRepo.FindByEmail(ctx, email)
	if existing != nil {
		return nil, ValidationError("Email already exists")
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, errors.New("Failed to add admin")
	}

	admin := &auth.User{
		ID:        id.New(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Password:  hashed,
		Roles:     []auth.Role{auth.RoleAdmin},
		Approved:  auth.StatusNone,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to add admin")
		return nil, errors.New("Failed to add admin")
	}
	return admin, nil
}

// UpdateAdmin 更新管理员资料（空字段保留原值）
func (s *AdminService) UpdateAdmin(ctx context.Context, adminID, firstName, lastName, email string) (*auth.User, error) {
	admin, err := s.userRepo.FindByID(ctx, adminID)
	if err != nil || !admin.HasRole(auth.RoleAdmin) {
		return nil, NotFoundError("Admin not found")
	}

	set := bson.M{}
	if firstName != "" {
		set["first_name"] = firstName
	}
	if lastName != "" {
		set["last_name"] = lastName
	}
	if email != "" {
		set["email"] = strings.ToLower(strings.TrimSpace(email))
	}

	if len(set) > 0 {
		if err := s.userRepo.Update(ctx, adminID, bson.M{"$set": set}); err != nil {
			log.Error().Err(err).Str("admin", adminID).Msg("failed to update admin")
			return nil, errors.New("Failed to update admin")
		}
	}

	return s.userRepo.FindByID(ctx, adminID)
}

// DeleteAdmin 删除管理员
func (s *AdminService) DeleteAdmin(ctx context.Context, adminID string) error {
	admin, err := s.userRepo.FindByID(ctx, adminID)
	if err != nil || !admin.HasRole(auth.RoleAdmin) {
		return NotFoundError("Admin not found")
	}

	if err := s.userRepo.Delete(ctx, adminID); err != nil {
		log.Error().Err(err).Str("admin", adminID).Msg("failed to delete admin")
		return errors.New("Failed to delete admin")
	}
	return nil
}

// AuthorWithBooks 作者及其作品（管理端视图）
type AuthorWithBooks struct {
	Author *auth.User   `json:"author"`
	Books  []*book.Book `json:"books"`
}

// ListAuthors 获取作者列表及各自的作品
func (s *AdminService) ListAuthors(ctx context.Context) ([]*AuthorWithBooks, error) {
	authors, _, err := s.userRepo.ListByRole(ctx, auth.RoleAuthor, 1, 1000)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch authors")
		return nil, errors.New("Failed to fetch authors")
	}

	result := make([]*AuthorWithBooks, 0, len(authors))
	for _, a := range authors {
		books, err := s.bookRepo.ListByAuthorFull(ctx, a.ID)
		if err != nil {
			log.Error().Err(err).Str("author", a.ID).Msg("failed to fetch author books")
			return nil, errors.New("Failed to fetch authors")
		}
		result = append(result, &AuthorWithBooks{Author: a, Books: books})
	}
	return result, nil
}

// DeleteAuthor 删除作者并级联删除其全部作品
func (s *AdminService) DeleteAuthor(ctx context.Context, authorID string) error {
	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return NotFoundError("Author not found")
	}

	deleted, err := s.bookRepo.DeleteByAuthor(ctx, author.ID)
	if err != nil {
		log.Error().Err(err).Str("author", authorID).Msg("failed to delete author books")
		return errors.New("Failed to delete author")
	}
	log.Info().Str("author", authorID).Int64("books_deleted", deleted).Msg("author books removed")

	if err := s.userRepo.Delete(ctx, authorID); err != nil {
		log.Error().Err(err).Str("author", authorID).Msg("failed to delete author")
		return errors.New("Failed to delete author")
	}

	s.invalidateCaches(ctx)
	return nil
}

// ListUsers 获取普通读者列表
func (s *AdminService) ListUsers(ctx context.Context) ([]*auth.User, error) {
	users, _, err := s.userRepo.ListByRole(ctx, auth.RoleUser, 1, 1000)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch users")
		return nil, errors.New("Failed to fetch users")
	}
	return users, nil
}

// DeleteUser 删除读者
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return NotFoundError("User not found")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to delete user")
		return errors.New("Failed to delete user")
	}
	return nil
}

// BookOverview 图书总览条目（管理端列表）
type BookOverview struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	AuthorName     string   `json:"authorName"`
	Status         string   `json:"status"`
	TotalWordCount int      `json:"totalWordCount"`
	Categories     []string `json:"categories"`
}

// ListBooks 获取全部图书总览（带作者姓名）
func (s *AdminService) ListBooks(ctx context.Context) ([]*BookOverview, error) {
	books, _, err := s.bookRepo.List(ctx, bson.M{}, 1, 1000)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch books")
		return nil, errors.New("Failed to fetch books")
	}

	authorIDs := make([]string, 0, len(books))
	seen := make(map[string]bool)
	for _, b := range books {
		if !seen[b.Author] {
			seen[b.Author] = true
			authorIDs = append(authorIDs, b.Author)
		}
	}

	authors, err := s.userRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch book authors")
		return nil, errors.New("Failed to fetch books")
	}
	names := make(map[string]string, len(authors))
	for _, a := range authors {
		names[a.ID] = strings.TrimSpace(a.FirstName + " " + a.LastName)
	}

	overview := make([]*BookOverview, 0, len(books))
	for _, b := range books {
		overview = append(overview, &BookOverview{
			ID:             b.ID,
			Title:          b.Title,
			AuthorName:     names[b.Author],
			Status:         b.Status.String(),
			TotalWordCount: b.TotalWordCount,
			Categories:     b.Categories,
		})
	}
	return overview, nil
}

func (s *AdminService) invalidateCaches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.DashboardCacheKey, cache.PublishedBooksCacheKey); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate admin caches")
	}
}
