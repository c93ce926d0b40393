package service

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"moonpages/internal/model/book"
	"moonpages/internal/pkg/ctxutil"
	bookRepo "moonpages/internal/repository/book"
)

// fakeBookRepo 内存版图书仓库，模拟Mongo的匹配语义
type fakeBookRepo struct {
	books       map[string]*book.Book
	totalWrites int // SetTotalWordCount调用次数
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[string]*book.Book)}
}

func (f *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id string) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return b, nil
}

func (f *fakeBookRepo) FindByIDForAuthor(ctx context.Context, id, authorID string) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok || b.Author != authorID {
		return nil, mongo.ErrNoDocuments
	}
	return b, nil
}

func (f *fakeBookRepo) ListByAuthor(ctx context.Context, authorID string, page, pageSize int64) ([]*book.Book, int64, error) {
	var books []*book.Book
	for _, b := range f.books {
		if b.Author == authorID {
			books = append(books, b)
		}
	}
	total := int64(len(books))
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return books[start:end], total, nil
}

func (f *fakeBookRepo) ListByAuthorFull(ctx context.Context, authorID string) ([]*book.Book, error) {
	var books []*book.Book
	for _, b := range f.books {
		if b.Author == authorID {
			books = append(books, b)
		}
	}
	return books, nil
}

func (f *fakeBookRepo) ListPublished(ctx context.Context, limit int64) ([]*book.Book, error) {
	var books []*book.Book
	for _, b := range f.books {
		if b.Status == book.StatusPublished {
			books = append(books, b)
		}
	}
	if limit > 0 && int64(len(books)) > limit {
		books = books[:limit]
	}
	return books, nil
}

func (f *fakeBookRepo) List(ctx context.Context, filter bson.M, page, pageSize int64) ([]*book.Book, int64, error) {
	var books []*book.Book
	for _, b := range f.books {
		books = append(books, b)
	}
	return books, int64(len(books)), nil
}

func (f *fakeBookRepo) AppendChapter(ctx context.Context, id, authorID string, ch book.Chapter, totalWordCount int) error {
	b, ok := f.books[id]
	if !ok || b.Author != authorID {
		return mongo.ErrNoDocuments
	}
	b.Chapters = append(b.Chapters, ch)
	b.TotalWordCount = totalWordCount
	return nil
}

func (f *fakeBookRepo) UpdateChapter(ctx context.Context, id, authorID string, chapterNumber int, upd bookRepo.ChapterUpdate) error {
	b, ok := f.books[id]
	if !ok || b.Author != authorID {
		return mongo.ErrNoDocuments
	}
	// 文档过滤含章节编号，编号不存在时零匹配
	for i := range b.Chapters {
		if b.Chapters[i].ChapterNumber != chapterNumber {
			continue
		}
		if upd.Title != nil {
			b.Chapters[i].Title = *upd.Title
		}
		if upd.Content != nil {
			b.Chapters[i].Content = *upd.Content
		}
		if upd.WordCount != nil {
			b.Chapters[i].WordCount = *upd.WordCount
		}
		if upd.IsDraft != nil {
			b.Chapters[i].IsDraft = *upd.IsDraft
		}
		return nil
	}
	return mongo.ErrNoDocuments
}

func (f *fakeBookRepo) SetTotalWordCount(ctx context.Context, id string, total int) error {
	f.totalWrites++
	b, ok := f.books[id]
	if !ok {
		return nil
	}
	b.TotalWordCount = total
	return nil
}

func (f *fakeBookRepo) UpdateFields(ctx context.Context, id, authorID string, set bson.M) error {
	b, ok := f.books[id]
	if !ok || b.Author != authorID {
		return mongo.ErrNoDocuments
	}
	if v, ok := set["categories"].([]string); ok {
		b.Categories = v
	}
	if v, ok := set["status"].(book.BookStatus); ok {
		b.Status = v
	}
	if v, ok := set["cover_image_url"].(string); ok {
		b.CoverImageURL = v
	}
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id, authorID string) error {
	b, ok := f.books[id]
	if !ok || b.Author != authorID {
		return mongo.ErrNoDocuments
	}
	delete(f.books, b.ID)
	return nil
}

func (f *fakeBookRepo) DeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
	var deleted int64
	for id, b := range f.books {
		if b.Author == authorID {
			delete(f.books, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeBookRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	if status, ok := filter["status"]; ok {
		var n int64
		for _, b := range f.books {
			if b.Status == status {
				n++
			}
		}
		return n, nil
	}
	return int64(len(f.books)), nil
}

func authorIdentity(userID string) ctxutil.Identity {
	return ctxutil.Identity{UserID: userID, Roles: []string{"AUTHOR", "USER"}}
}

func readerIdentity(userID string) ctxutil.Identity {
	return ctxutil.Identity{UserID: userID, Roles: []string{"USER"}}
}

func TestBookService_CreateBook(t *testing.T) {
	Convey("BookService.CreateBook", t, func() {
		ctx := context.Background()
		repo := newFakeBookRepo()
		svc := NewBookService(repo, nil, nil)

		Convey("非作者角色应被拒绝", func() {
			_, err := svc.CreateBook(ctx, readerIdentity("u1"), CreateBookInput{Title: "My Book"})
			So(err, ShouldWrap, ErrForbidden)
		})

		Convey("空标题应校验失败", func() {
			_, err := svc.CreateBook(ctx, authorIdentity("a1"), CreateBookInput{Title: "   "})
			So(err, ShouldWrap, ErrValidation)
		})

		Convey("未提供章节时自动生成空的第1章", func() {
			b, err := svc.CreateBook(ctx, authorIdentity("a1"), CreateBookInput{Title: "My Book"})
			So(err, ShouldBeNil)
			So(b.Status, ShouldEqual, book.StatusDraft)
			So(len(b.Chapters), ShouldEqual, 1)
			So(b.Chapters[0].ChapterNumber, ShouldEqual, 1)
			So(b.Chapters[0].Title, ShouldEqual, "Chapter 1: Title")
			So(b.Chapters[0].WordCount, ShouldEqual, 0)
			So(b.Chapters[0].IsDraft, ShouldBeTrue)
			So(b.TotalWordCount, ShouldEqual, 0)
		})

		Convey("章节按输入顺序从1编号，总字数等于各章之和", func() {
			b, err := svc.CreateBook(ctx, authorIdentity("a1"), CreateBookInput{
				Title: "My Book",
				Chapters: []ChapterInput{
					{Title: "Intro", Content: "one two three"},
					{Title: "", Content: "four five"},
					{Title: "End", Content: "   "},
				},
			})
			So(err, ShouldBeNil)
			So(len(b.Chapters), ShouldEqual, 3)
			So(b.Chapters[0].ChapterNumber, ShouldEqual, 1)
			So(b.Chapters[0].WordCount, ShouldEqual, 3)
			So(b.Chapters[1].ChapterNumber, ShouldEqual, 2)
			So(b.Chapters[1].Title, ShouldEqual, "Chapter 2")
			So(b.Chapters[1].WordCount, ShouldEqual, 2)
			So(b.Chapters[2].WordCount, ShouldEqual, 0)
			So(b.TotalWordCount, ShouldEqual, 5)
		})
	})
}

func TestBookService_AddChapter(t *testing.T) {
	Convey("BookService.AddChapter", t, func() {
		ctx := context.Background()
		repo := newFakeBookRepo()
		svc := NewBookService(repo, nil, nil)
		ident := authorIdentity("a1")

		b, err := svc.CreateBook(ctx, ident, CreateBookInput{
			Title:    "My Book",
			Chapters: []ChapterInput{{Title: "Intro", Content: "hello world"}},
		})
		So(err, ShouldBeNil)

		Convey("编号取现有最大编号+1", func() {
			ch, err := svc.AddChapter(ctx, ident, b.ID, AddChapterInput{Title: "Next", Content: "a b c"})
			So(err, ShouldBeNil)
			So(ch.ChapterNumber, ShouldEqual, 2)
			So(ch.WordCount, ShouldEqual, 3)
			So(ch.IsDraft, ShouldBeTrue)

			stored := repo.books[b.ID]
			So(stored.TotalWordCount, ShouldEqual, 5)
		})

		Convey("章节编号有空洞时不回填", func() {
			stored := repo.books[b.ID]
			stored.Chapters = append(stored.Chapters, book.Chapter{ChapterNumber: 5, Title: "Gap"})

			ch, err := svc.AddChapter(ctx, ident, b.ID, AddChapterInput{})
			So(err, ShouldBeNil)
			So(ch.ChapterNumber, ShouldEqual, 6)
			So(ch.Title, ShouldEqual, "Chapter 6")
		})

		Convey("别人的书应返回未找到", func() {
			_, err := svc.AddChapter(ctx, authorIdentity("a2"), b.ID, AddChapterInput{Content: "x"})
			So(err, ShouldWrap, ErrNotFound)
		})
	})
}

func TestBookService_UpdateChapter(t *testing.T) {
	Convey("BookService.UpdateChapter", t, func() {
		ctx := context.Background()
		repo := newFakeBookRepo()
		svc := NewBookService(repo, nil, nil)
		ident := authorIdentity("a1")

		b, err := svc.CreateBook(ctx, ident, CreateBookInput{
			Title: "My Book",
			Chapters: []ChapterInput{
				{Title: "One", Content: "one two"},
				{Title: "Two", Content: "three"},
			},
		})
		So(err, ShouldBeNil)

		strPtr := func(s string) *string { return &s }
		boolPtr := func(v bool) *bool { return &v }

		Convey("非法章节编号应校验失败", func() {
			_, err := svc.UpdateChapter(ctx, ident, b.ID, 0, UpdateChapterInput{Title: strPtr("x")})
			So(err, ShouldWrap, ErrValidation)
		})

		Convey("空补丁应校验失败", func() {
			_, err := svc.UpdateChapter(ctx, ident, b.ID, 1, UpdateChapterInput{})
			So(err, ShouldWrap, ErrValidation)
		})

		Convey("更新正文后重算字数并刷新总字数", func() {
			ch, err := svc.UpdateChapter(ctx, ident, b.ID, 1, UpdateChapterInput{
				Content: strPtr("a b c d e"),
			})
			So(err, ShouldBeNil)
			So(ch.WordCount, ShouldEqual, 5)

			stored := repo.books[b.ID]
			So(stored.TotalWordCount, ShouldEqual, 6) // 5 + "three"
		})

		Convey("正文清空时字数归零", func() {
			ch, err := svc.UpdateChapter(ctx, ident, b.ID, 1, UpdateChapterInput{
				Content: strPtr(""),
			})
			So(err, ShouldBeNil)
			So(ch.WordCount, ShouldEqual, 0)
			So(repo.books[b.ID].TotalWordCount, ShouldEqual, 1)
		})

		Convey("仅更新草稿标记不影响字数", func() {
			ch, err := svc.UpdateChapter(ctx, ident, b.ID, 2, UpdateChapterInput{
				IsDraft: boolPtr(false),
			})
			So(err, ShouldBeNil)
			So(ch.IsDraft, ShouldBeFalse)
			So(ch.WordCount, ShouldEqual, 1)
			So(repo.books[b.ID].TotalWordCount, ShouldEqual, 3)
		})

		Convey("不存在的章节编号应返回未找到，且不落任何写入", func() {
			before := repo.books[b.ID].UpdatedAt
			_, err := svc.UpdateChapter(ctx, ident, b.ID, 99, UpdateChapterInput{Title: strPtr("x")})
			So(err, ShouldWrap, ErrNotFound)
			So(repo.totalWrites, ShouldEqual, 0)
			So(repo.books[b.ID].UpdatedAt.Equal(before), ShouldBeTrue)
			So(repo.books[b.ID].TotalWordCount, ShouldEqual, 3)
		})

		Convey("别人的书应返回未找到", func() {
			_, err := svc.UpdateChapter(ctx, authorIdentity("a2"), b.ID, 1, UpdateChapterInput{Title: strPtr("x")})
			So(err, ShouldWrap, ErrNotFound)
		})
	})
}

func TestBookService_UpdateStatusAndCategories(t *testing.T) {
	Convey("BookService 状态与分类更新", t, func() {
		ctx := context.Background()
		repo := newFakeBookRepo()
		svc := NewBookService(repo, nil, nil)
		ident := authorIdentity("a1")

		b, err := svc.CreateBook(ctx, ident, CreateBookInput{Title: "My Book"})
		So(err, ShouldBeNil)

		Convey("缺少状态应校验失败", func() {
			_, err := svc.UpdateStatus(ctx, ident, b.ID, "")
			So(err, ShouldWrap, ErrValidation)
		})

		Convey("非法状态值应校验失败", func() {
			_, err := svc.UpdateStatus(ctx, ident, b.ID, "ARCHIVED")
			So(err, ShouldWrap, ErrValidation)
		})

		Convey("合法状态应持久化", func() {
			status, err := svc.UpdateStatus(ctx, ident, b.ID, "PUBLISHED")
			So(err, ShouldBeNil)
			So(status, ShouldEqual, book.StatusPublished)
			So(repo.books[b.ID].Status, ShouldEqual, book.StatusPublished)
		})

		Convey("分类为nil应校验失败", func() {
			_, err := svc.UpdateCategories(ctx, ident, b.ID, nil)
			So(err, ShouldWrap, ErrValidation)
		})

		Convey("分类整体替换", func() {
			got, err := svc.UpdateCategories(ctx, ident, b.ID, []string{"Fantasy", "Drama"})
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []string{"Fantasy", "Drama"})
			So(repo.books[b.ID].Categories, ShouldResemble, []string{"Fantasy", "Drama"})
		})
	})
}

func TestBookService_DeleteAndRead(t *testing.T) {
	Convey("BookService 删除与读取", t, func() {
		ctx := context.Background()
		repo := newFakeBookRepo()
		svc := NewBookService(repo, nil, nil)
		ident := authorIdentity("a1")

		b, err := svc.CreateBook(ctx, ident, CreateBookInput{
			Title:    "My Book",
			Chapters: []ChapterInput{{Title: "One", Content: "hello"}},
		})
		So(err, ShouldBeNil)

		Convey("GetChapter 返回指定章节", func() {
			ch, err := svc.GetChapter(ctx, ident, b.ID, 1)
			So(err, ShouldBeNil)
			So(ch.Title, ShouldEqual, "One")
		})

		Convey("GetChapter 不存在的编号应返回未找到", func() {
			_, err := svc.GetChapter(ctx, ident, b.ID, 2)
			So(err, ShouldWrap, ErrNotFound)
		})

		Convey("GetFullBook 任何已登录用户可读", func() {
			got, err := svc.GetFullBook(ctx, b.ID)
			So(err, ShouldBeNil)
			So(got.ID, ShouldEqual, b.ID)
		})

		Convey("删除别人的书应返回未找到", func() {
			err := svc.DeleteBook(ctx, authorIdentity("a2"), b.ID)
			So(err, ShouldWrap, ErrNotFound)
			So(repo.books, ShouldContainKey, b.ID)
		})

		Convey("作者删除自己的书", func() {
			err := svc.DeleteBook(ctx, ident, b.ID)
			So(err, ShouldBeNil)
			So(repo.books, ShouldNotContainKey, b.ID)
		})
	})
}

func TestBookService_ListAuthorBooks(t *testing.T) {
	Convey("BookService.ListAuthorBooks", t, func() {
		ctx := context.Background()
		repo := newFakeBookRepo()
		svc := NewBookService(repo, nil, nil)
		ident := authorIdentity("a1")

		for i := 0; i < 3; i++ {
			_, err := svc.CreateBook(ctx, ident, CreateBookInput{Title: "Book"})
			So(err, ShouldBeNil)
		}

		Convey("非作者角色应被拒绝", func() {
			_, _, err := svc.ListAuthorBooks(ctx, readerIdentity("u1"), 1, 10)
			So(err, ShouldWrap, ErrForbidden)
		})

		Convey("非法分页参数回落到默认值", func() {
			books, p, err := svc.ListAuthorBooks(ctx, ident, 0, 0)
			So(err, ShouldBeNil)
			So(len(books), ShouldEqual, 3)
			So(p.CurrentPage, ShouldEqual, 1)
			So(p.Limit, ShouldEqual, 10)
			So(p.TotalItems, ShouldEqual, 3)
			So(p.TotalPages, ShouldEqual, 1)
		})

		Convey("分页统计正确", func() {
			books, p, err := svc.ListAuthorBooks(ctx, ident, 2, 2)
			So(err, ShouldBeNil)
			So(len(books), ShouldEqual, 1)
			So(p.TotalPages, ShouldEqual, 2)
		})
	})
}
