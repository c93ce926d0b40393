package service

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/mongo"

	"moonpages/internal/model/book"
	"moonpages/internal/model/library"
	"moonpages/internal/pkg/id"
)

// fakeUserBookRepo 内存版书架仓库
type fakeUserBookRepo struct {
	items map[string]*library.UserBook // key: user+"/"+book
}

func newFakeUserBookRepo() *fakeUserBookRepo {
	return &fakeUserBookRepo{items: make(map[string]*library.UserBook)}
}

func ubKey(userID, bookID string) string {
	return userID + "/" + bookID
}

func (f *fakeUserBookRepo) GetOrCreate(ctx context.Context, userID, bookID string) (*library.UserBook, error) {
	if ub, ok := f.items[ubKey(userID, bookID)]; ok {
		return ub, nil
	}
	now := time.Now()
	ub := &library.UserBook{
		ID:         id.New(),
		User:       userID,
		Book:       bookID,
		Highlights: []library.Highlight{},
		Comments:   []library.Comment{},
		LastRead:   now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.items[ubKey(userID, bookID)] = ub
	return ub, nil
}

func (f *fakeUserBookRepo) FindByUserAndBook(ctx context.Context, userID, bookID string) (*library.UserBook, error) {
	ub, ok := f.items[ubKey(userID, bookID)]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return ub, nil
}

func (f *fakeUserBookRepo) ListByUser(ctx context.Context, userID string) ([]*library.UserBook, error) {
	var items []*library.UserBook
	for _, ub := range f.items {
		if ub.User == userID {
			items = append(items, ub)
		}
	}
	return items, nil
}

func (f *fakeUserBookRepo) SetBookmark(ctx context.Context, userID, bookID string, chapter *int) error {
	ub, ok := f.items[ubKey(userID, bookID)]
	if !ok {
		return mongo.ErrNoDocuments
	}
	ub.BookmarkChapter = chapter
	ub.LastRead = time.Now()
	return nil
}

func (f *fakeUserBookRepo) AddHighlight(ctx context.Context, userID, bookID string, h library.Highlight) error {
	ub, ok := f.items[ubKey(userID, bookID)]
	if !ok {
		return mongo.ErrNoDocuments
	}
	ub.Highlights = append(ub.Highlights, h)
	return nil
}

func (f *fakeUserBookRepo) RemoveHighlight(ctx context.Context, userID, bookID, highlightID string) error {
	ub, ok := f.items[ubKey(userID, bookID)]
	if !ok {
		return mongo.ErrNoDocuments
	}
	kept := ub.Highlights[:0]
	for _, h := range ub.Highlights {
		if h.ID != highlightID {
			kept = append(kept, h)
		}
	}
	ub.Highlights = kept
	return nil
}

func (f *fakeUserBookRepo) AddComment(ctx context.Context, userID, bookID string, c library.Comment) error {
	ub, ok := f.items[ubKey(userID, bookID)]
	if !ok {
		return mongo.ErrNoDocuments
	}
	ub.Comments = append(ub.Comments, c)
	return nil
}

func (f *fakeUserBookRepo) RemoveComment(ctx context.Context, userID, bookID, commentID string) error {
	ub, ok := f.items[ubKey(userID, bookID)]
	if !ok {
		return mongo.ErrNoDocuments
	}
	kept := ub.Comments[:0]
	for _, c := range ub.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	ub.Comments = kept
	return nil
}

func (f *fakeUserBookRepo) TouchLastRead(ctx context.Context, userID, bookID string) error {
	ub, ok := f.items[ubKey(userID, bookID)]
	if !ok {
		return mongo.ErrNoDocuments
	}
	ub.LastRead = time.Now()
	return nil
}

func (f *fakeUserBookRepo) CountByBooks(ctx context.Context, bookIDs []string) (int64, error) {
	var n int64
	for _, ub := range f.items {
		for _, bid := range bookIDs {
			if ub.Book == bid {
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeUserBookRepo) ListWithCommentsByBooks(ctx context.Context, bookIDs []string) ([]*library.UserBook, error) {
	var items []*library.UserBook
	for _, ub := range f.items {
		if len(ub.Comments) == 0 {
			continue
		}
		for _, bid := range bookIDs {
			if ub.Book == bid {
				items = append(items, ub)
				break
			}
		}
	}
	return items, nil
}

func seedBook(repo *fakeBookRepo, bookID, authorID string) {
	repo.books[bookID] = &book.Book{
		ID:     bookID,
		Author: authorID,
		Title:  "Seeded",
		Status: book.StatusPublished,
	}
}

func TestLibraryService_GetUserBook(t *testing.T) {
	Convey("LibraryService.GetUserBook", t, func() {
		ctx := context.Background()
		books := newFakeBookRepo()
		userBooks := newFakeUserBookRepo()
		svc := NewLibraryService(userBooks, books)
		seedBook(books, "b1", "a1")

		Convey("图书不存在应返回未找到", func() {
			_, err := svc.GetUserBook(ctx, "u1", "missing")
			So(err, ShouldWrap, ErrNotFound)
		})

		Convey("首次访问自动创建书架条目", func() {
			entry, err := svc.GetUserBook(ctx, "u1", "b1")
			So(err, ShouldBeNil)
			So(entry.UserBook.User, ShouldEqual, "u1")
			So(entry.UserBook.Book, ShouldEqual, "b1")
			So(entry.Book.ID, ShouldEqual, "b1")

			again, err := svc.GetUserBook(ctx, "u1", "b1")
			So(err, ShouldBeNil)
			So(again.UserBook.ID, ShouldEqual, entry.UserBook.ID)
		})
	})
}

func TestLibraryService_Bookmark(t *testing.T) {
	Convey("LibraryService.UpdateBookmark", t, func() {
		ctx := context.Background()
		books := newFakeBookRepo()
		userBooks := newFakeUserBookRepo()
		svc := NewLibraryService(userBooks, books)
		seedBook(books, "b1", "a1")

		Convey("设置并清除书签", func() {
			three := 3
			got, err := svc.UpdateBookmark(ctx, "u1", "b1", &three)
			So(err, ShouldBeNil)
			So(*got, ShouldEqual, 3)

			ub, err := userBooks.FindByUserAndBook(ctx, "u1", "b1")
			So(err, ShouldBeNil)
			So(*ub.BookmarkChapter, ShouldEqual, 3)

			got, err = svc.UpdateBookmark(ctx, "u1", "b1", nil)
			So(err, ShouldBeNil)
			So(got, ShouldBeNil)
			So(ub.BookmarkChapter, ShouldBeNil)
		})
	})
}

func TestLibraryService_Highlights(t *testing.T) {
	Convey("LibraryService 高亮", t, func() {
		ctx := context.Background()
		books := newFakeBookRepo()
		userBooks := newFakeUserBookRepo()
		svc := NewLibraryService(userBooks, books)
		seedBook(books, "b1", "a1")

		intPtr := func(v int) *int { return &v }

		Convey("缺少字段应校验失败", func() {
			_, err := svc.AddHighlight(ctx, "u1", "b1", HighlightInput{
				ChapterNumber: 1,
				Text:          "quote",
				StartOffset:   intPtr(0),
			})
			So(err, ShouldWrap, ErrValidation)

			_, err = svc.AddHighlight(ctx, "u1", "b1", HighlightInput{
				ChapterNumber: 0,
				Text:          "quote",
				StartOffset:   intPtr(0),
				EndOffset:     intPtr(5),
			})
			So(err, ShouldWrap, ErrValidation)
		})

		Convey("添加后可删除", func() {
			h, err := svc.AddHighlight(ctx, "u1", "b1", HighlightInput{
				ChapterNumber: 2,
				Text:          "a fine quote",
				StartOffset:   intPtr(10),
				EndOffset:     intPtr(22),
			})
			So(err, ShouldBeNil)
			So(h.ID, ShouldNotBeEmpty)
			So(h.ChapterNumber, ShouldEqual, 2)

			err = svc.DeleteHighlight(ctx, "u1", "b1", h.ID)
			So(err, ShouldBeNil)

			ub, err := userBooks.FindByUserAndBook(ctx, "u1", "b1")
			So(err, ShouldBeNil)
			So(len(ub.Highlights), ShouldEqual, 0)
		})

		Convey("非法高亮ID应校验失败", func() {
			err := svc.DeleteHighlight(ctx, "u1", "b1", "not-a-uuid")
			So(err, ShouldWrap, ErrValidation)
		})

		Convey("没有书架条目时删除应返回未找到", func() {
			err := svc.DeleteHighlight(ctx, "u2", "b1", id.New())
			So(err, ShouldWrap, ErrNotFound)
		})
	})
}

func TestLibraryService_Comments(t *testing.T) {
	Convey("LibraryService 评论", t, func() {
		ctx := context.Background()
		books := newFakeBookRepo()
		userBooks := newFakeUserBookRepo()
		svc := NewLibraryService(userBooks, books)
		seedBook(books, "b1", "a1")

		Convey("空内容应校验失败", func() {
			_, err := svc.AddComment(ctx, "u1", "b1", "   ", nil)
			So(err, ShouldWrap, ErrValidation)
		})

		Convey("添加评论并裁剪空白", func() {
			five := 5
			c, err := svc.AddComment(ctx, "u1", "b1", "  great book  ", &five)
			So(err, ShouldBeNil)
			So(c.Content, ShouldEqual, "great book")
			So(*c.ChapterNumber, ShouldEqual, 5)
			So(c.User, ShouldEqual, "u1")

			err = svc.DeleteComment(ctx, "u1", "b1", c.ID)
			So(err, ShouldBeNil)

			ub, err := userBooks.FindByUserAndBook(ctx, "u1", "b1")
			So(err, ShouldBeNil)
			So(len(ub.Comments), ShouldEqual, 0)
		})
	})
}

func TestLibraryService_GetLibrary(t *testing.T) {
	Convey("LibraryService.GetLibrary", t, func() {
		ctx := context.Background()
		books := newFakeBookRepo()
		userBooks := newFakeUserBookRepo()
		svc := NewLibraryService(userBooks, books)
		seedBook(books, "b1", "a1")
		seedBook(books, "b2", "a1")

		_, err := svc.GetUserBook(ctx, "u1", "b1")
		So(err, ShouldBeNil)
		_, err = svc.GetUserBook(ctx, "u1", "b2")
		So(err, ShouldBeNil)

		Convey("返回全部条目", func() {
			entries, err := svc.GetLibrary(ctx, "u1")
			So(err, ShouldBeNil)
			So(len(entries), ShouldEqual, 2)
		})

		Convey("图书被删除后条目被过滤", func() {
			delete(books.books, "b2")
			entries, err := svc.GetLibrary(ctx, "u1")
			So(err, ShouldBeNil)
			So(len(entries), ShouldEqual, 1)
			So(entries[0].Book.ID, ShouldEqual, "b1")
		})
	})
}
