package library

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moonpages/internal/model/library"
	"moonpages/internal/pkg/id"
)

// UserBookRepository 书架仓库接口（供 service 层依赖）
type UserBookRepository interface {
	GetOrCreate(ctx context.Context, userID, bookID string) (*library.UserBook, error)
	FindByUserAndBook(ctx context.Context, userID, bookID string) (*library.UserBook, error)
	ListByUser(ctx context.Context, userID string) ([]*library.UserBook, error)
	SetBookmark(ctx context.Context, userID, bookID string, chapter *int) error
	AddHighlight(ctx context.Context, userID, bookID string, h library.Highlight) error
	RemoveHighlight(ctx context.Context, userID, bookID, highlightID string) error
	AddComment(ctx context.Context, userID, bookID string, c library.Comment) error
	RemoveComment(ctx context.Context, userID, bookID, commentID string) error
	TouchLastRead(ctx context.Context, userID, bookID string) error
	CountByBooks(ctx context.Context, bookIDs []string) (int64, error)
	ListWithCommentsByBooks(ctx context.Context, bookIDs []string) ([]*library.UserBook, error)
}

// UserBookRepo 书架仓库
type UserBookRepo struct {
	coll *mongo.Collection
}

// NewUserBookRepo 创建书架仓库
func NewUserBookRepo(db *mongo.Database) *UserBookRepo {
	var ub library.UserBook
	return &UserBookRepo{coll: db.Collection(ub.Collection())}
}

// GetOrCreate 查询书架条目，不存在则原子创建
// 依赖 (user, book) 唯一索引保证并发下只创建一条
func (r *UserBookRepo) GetOrCreate(ctx context.Context, userID, bookID string) (*library.UserBook, error) {
	now := time.Now()
	filter := bson.M{"user": userID, "book": bookID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":              id.New(),
			"user":             userID,
			"book":             bookID,
			"bookmark_chapter": nil,
			"highlights":       []library.Highlight{},
			"comments":         []library.Comment{},
			"last_read":        now,
			"created_at":       now,
		},
		"$set": bson.M{"updated_at": now},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var ub library.UserBook
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ub); err != nil {
		return nil, err
	}
	return &ub, nil
}

// FindByUserAndBook 查询书架条目
func (r *UserBookRepo) FindByUserAndBook(ctx context.Context, userID, bookID string) (*library.UserBook, error) {
	var ub library.UserBook
	err := r.coll.FindOne(ctx, bson.M{"user": userID, "book": bookID}).Decode(&ub)
	if err != nil {
		return nil, err
	}
	return &ub, nil
}

// ListByUser 查询用户的全部书架条目（按最近阅读倒序）
func (r *UserBookRepo) ListByUser(ctx context.Context, userID string) ([]*library.UserBook, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "last_read", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*library.UserBook
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetBookmark 设置或清除书签（nil清除）
func (r *UserBookRepo) SetBookmark(ctx context.Context, userID, bookID string, chapter *int) error {
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"bookmark_chapter": chapter,
		"last_read":        now,
		"updated_at":       now,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"user": userID, "book": bookID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddHighlight 添加高亮
func (r *UserBookRepo) AddHighlight(ctx context.Context, userID, bookID string, h library.Highlight) error {
	update := bson.M{
		"$push": bson.M{"highlights": h},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"user": userID, "book": bookID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RemoveHighlight 删除高亮
func (r *UserBookRepo) RemoveHighlight(ctx context.Context, userID, bookID, highlightID string) error {
	update := bson.M{
		"$pull": bson.M{"highlights": bson.M{"_id": highlightID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"user": userID, "book": bookID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddComment 添加评论
func (r *UserBookRepo) AddComment(ctx context.Context, userID, bookID string, c library.Comment) error {
	update := bson.M{
		"$push": bson.M{"comments": c},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"user": userID, "book": bookID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RemoveComment 删除评论（仅限本人条目内的评论）
func (r *UserBookRepo) RemoveComment(ctx context.Context, userID, bookID, commentID string) error {
	update := bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": commentID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"user": userID, "book": bookID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// TouchLastRead 刷新最近阅读时间
func (r *UserBookRepo) TouchLastRead(ctx context.Context, userID, bookID string) error {
	now := time.Now()
	update := bson.M{"$set": bson.M{"last_read": now, "updated_at": now}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"user": userID, "book": bookID}, update)
	return err
}

// CountByBooks 统计一批图书的读者数（作者看板）
func (r *UserBookRepo) CountByBooks(ctx context.Context, bookIDs []string) (int64, error) {
	if len(bookIDs) == 0 {
		return 0, nil
	}
	return r.coll.CountDocuments(ctx, bson.M{"book": bson.M{"$in": bookIDs}})
}

// ListWithCommentsByBooks 查询一批图书下带评论的书架条目（作者看板）
func (r *UserBookRepo) ListWithCommentsByBooks(ctx context.Context, bookIDs []string) ([]*library.UserBook, error) {
	if len(bookIDs) == 0 {
		return nil, nil
	}
	filter := bson.M{
		"book":       bson.M{"$in": bookIDs},
		"comments.0": bson.M{"$exists": true},
	}
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*library.UserBook
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
