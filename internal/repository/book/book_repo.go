package book

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moonpages/internal/model/book"
)

// ChapterUpdate 章节字段补丁，nil表示不修改
type ChapterUpdate struct {
	Title     *string
	Content   *string
	WordCount *int
	IsDraft   *bool
}

// IsEmpty 是否没有任何字段需要更新
func (u ChapterUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.WordCount == nil && u.IsDraft == nil
}

// BookRepository 图书仓库接口（供 service 层依赖）
type BookRepository interface {
	Create(ctx context.Context, b *book.Book) error
	FindByID(ctx context.Context, id string) (*book.Book, error)
	FindByIDForAuthor(ctx context.Context, id, authorID string) (*book.Book, error)
	ListByAuthor(ctx context.Context, authorID string, page, pageSize int64) ([]*book.Book, int64, error)
	ListByAuthorFull(ctx context.Context, authorID string) ([]*book.Book, error)
	ListPublished(ctx context.Context, limit int64) ([]*book.Book, error)
	List(ctx context.Context, filter bson.M, page, pageSize int64) ([]*book.Book, int64, error)
	AppendChapter(ctx context.Context, id, authorID string, ch book.Chapter, totalWordCount int) error
	UpdateChapter(ctx context.Context, id, authorID string, chapterNumber int, upd ChapterUpdate) error
	SetTotalWordCount(ctx context.Context, id string, total int) error
	UpdateFields(ctx context.Context, id, authorID string, set bson.M) error
	Delete(ctx context.Context, id, authorID string) error
	DeleteByAuthor(ctx context.Context, authorID string) (int64, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}

// BookRepo 图书仓库
type BookRepo struct {
	coll *mongo.Collection
}

// NewBookRepo 创建图书仓库
func NewBookRepo(db *mongo.Database) *BookRepo {
	var b book.Book
	return &BookRepo{coll: db.Collection(b.Collection())}
}

// Create 创建图书
func (r *BookRepo) Create(ctx context.Context, b *book.Book) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, b)
	return err
}

// FindByID 根据ID查询
func (r *BookRepo) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var b book.Book
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByIDForAuthor 根据ID查询且限定作者（属主过滤在查询层完成）
func (r *BookRepo) FindByIDForAuthor(ctx context.Context, id, authorID string) (*book.Book, error) {
	var b book.Book
	if err := r.coll.FindOne(ctx, bson.M{"_id": id, "author": authorID}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByAuthor 查询作者的图书列表（分页，列表视图不带章节正文）
func (r *BookRepo) ListByAuthor(ctx context.Context, authorID string, page, pageSize int64) ([]*book.Book, int64, error) {
	filter := bson.M{"author": authorID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(pageSize).
		SetSkip((page - 1) * pageSize).
		SetProjection(bson.M{"chapters.content": 0})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var books []*book.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// ListByAuthorFull 查询作者的全部图书（管理端级联视图）
func (r *BookRepo) ListByAuthorFull(ctx context.Context, authorID string) ([]*book.Book, error) {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"chapters.content": 0})

	cur, err := r.coll.Find(ctx, bson.M{"author": authorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var books []*book.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// ListPublished 查询已发布图书（公开书城）
func (r *BookRepo) ListPublished(ctx context.Context, limit int64) ([]*book.Book, error) {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "updated_at", Value: -1}}).
		SetProjection(bson.M{"chapters.content": 0})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.coll.Find(ctx, bson.M{"status": book.StatusPublished}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var books []*book.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// List 通用列表查询（管理端）
func (r *BookRepo) List(ctx context.Context, filter bson.M, page, pageSize int64) ([]*book.Book, int64, error) {
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(pageSize).
		SetSkip((page - 1) * pageSize).
		SetProjection(bson.M{"chapters.content": 0})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var books []*book.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// AppendChapter 追加章节并同步更新总字数
func (r *BookRepo) AppendChapter(ctx context.Context, id, authorID string, ch book.Chapter, totalWordCount int) error {
	update := bson.M{
		"$push": bson.M{"chapters": ch},
		"$set": bson.M{
			"total_word_count": totalWordCount,
			"updated_at":       time.Now(),
		},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id, "author": authorID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateChapter 按章节编号更新内嵌章节字段（arrayFilters定位）
// 文档过滤必须带章节编号：arrayFilters只筛数组元素不约束文档匹配，
// 少了这个条件，编号不存在时文档仍会被命中写入
func (r *BookRepo) UpdateChapter(ctx context.Context, id, authorID string, chapterNumber int, upd ChapterUpdate) error {
	set := bson.M{"updated_at": time.Now()}
	if upd.Title != nil {
		set["chapters.$[chap].title"] = *upd.Title
	}
	if upd.Content != nil {
		set["chapters.$[chap].content"] = *upd.Content
	}
	if upd.WordCount != nil {
		set["chapters.$[chap].word_count"] = *upd.WordCount
	}
	if upd.IsDraft != nil {
		set["chapters.$[chap].is_draft"] = *upd.IsDraft
	}

	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"chap.chapter_number": chapterNumber}},
	})

	filter := bson.M{
		"_id":                     id,
		"author":                  authorID,
		"chapters.chapter_number": chapterNumber,
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set}, opts)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetTotalWordCount 重写总字数（章节更新后的聚合刷新）
func (r *BookRepo) SetTotalWordCount(ctx context.Context, id string, total int) error {
	update := bson.M{"$set": bson.M{
		"total_word_count": total,
		"updated_at":       time.Now(),
	}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// UpdateFields 更新图书顶层字段（分类、状态、封面等）
func (r *BookRepo) UpdateFields(ctx context.Context, id, authorID string, set bson.M) error {
	set["updated_at"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id, "author": authorID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete 删除图书（限定作者）
func (r *BookRepo) Delete(ctx context.Context, id, authorID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "author": authorID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteByAuthor 删除作者的全部图书（管理端级联删除）
func (r *BookRepo) DeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"author": authorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count 统计图书数量
func (r *BookRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.coll.CountDocuments(ctx, filter)
}
