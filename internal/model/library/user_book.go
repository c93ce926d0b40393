package library

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Highlight 阅读高亮
type Highlight struct {
	ID            string    `bson:"_id" json:"id"` // UUID格式的ID
	ChapterNumber int       `bson:"chapter_number" json:"chapterNumber"`
	Text          string    `bson:"text" json:"text"`
	StartOffset   int       `bson:"start_offset" json:"startOffset"`
	EndOffset     int       `bson:"end_offset" json:"endOffset"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}

// Comment 阅读评论
type Comment struct {
	ID            string    `bson:"_id" json:"id"` // UUID格式的ID
	User          string    `bson:"user" json:"user"`
	Content       string    `bson:"content" json:"content"`
	ChapterNumber *int      `bson:"chapter_number,omitempty" json:"chapterNumber,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}

// UserBook 读者与图书的关联（书架条目）
// 每个 (user, book) 组合唯一，按需创建
type UserBook struct {
	ID              string      `bson:"_id,omitempty" json:"id"`
	User            string      `bson:"user" json:"user"`
	Book            string      `bson:"book" json:"book"`
	BookmarkChapter *int        `bson:"bookmark_chapter" json:"bookmarkChapter"` // null 表示无书签
	Highlights      []Highlight `bson:"highlights" json:"highlights"`
	Comments        []Comment   `bson:"comments" json:"comments"`
	LastRead        time.Time   `bson:"last_read" json:"lastRead"`
	CreatedAt       time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time   `bson:"updated_at" json:"updatedAt"`
}

// Collection 返回集合名称
func (ub *UserBook) Collection() string { return "user_books" }

// EnsureIndexes 创建和维护索引
func (ub *UserBook) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(ub.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "book", Value: 1}},
			Options: options.Index().SetName("idx_user_book").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "last_read", Value: -1}},
			Options: options.Index().SetName("idx_user_last_read"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
