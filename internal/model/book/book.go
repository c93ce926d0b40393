package book

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookStatus 图书状态
type BookStatus string

const (
	StatusDraft     BookStatus = "DRAFT"     // 草稿
	StatusPending   BookStatus = "PENDING"   // 待审核
	StatusPublished BookStatus = "PUBLISHED" // 已发布
	StatusRejected  BookStatus = "REJECTED"  // 已驳回
)

// IsValid 检查状态是否有效
func (s BookStatus) IsValid() bool {
	return s == StatusDraft || s == StatusPending || s == StatusPublished || s == StatusRejected
}

// String 返回状态字符串
func (s BookStatus) String() string {
	return string(s)
}

// Chapter 章节（内嵌在Book中）
type Chapter struct {
	ChapterNumber int    `bson:"chapter_number" json:"chapterNumber"` // 书内编号，从1开始
	Title         string `bson:"title" json:"title"`
	Content       string `bson:"content" json:"content"`
	WordCount     int    `bson:"word_count" json:"wordCount"` // 按空白分词计数
	IsDraft       bool   `bson:"is_draft" json:"isDraft"`
}

// Book 图书实体（聚合根）
// 章节内嵌存储，total_word_count 为所有章节 word_count 之和，
// 每次章节变更后必须重新计算
type Book struct {
	ID          string   `bson:"_id,omitempty" json:"id"` // UUID格式的ID
	Author      string   `bson:"author" json:"author"`    // 作者用户ID
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Categories  []string `bson:"categories" json:"categories"`

	Chapters []Chapter `bson:"chapters" json:"chapters"`

	Status         BookStatus `bson:"status" json:"status"`
	TotalWordCount int        `bson:"total_word_count" json:"totalWordCount"`
	CoverImageURL  string     `bson:"cover_image_url,omitempty" json:"coverImageUrl,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// NextChapterNumber 计算下一个章节编号（max+1，章节可能存在空洞）
func (b *Book) NextChapterNumber() int {
	max := 0
	for _, c := range b.Chapters {
		if c.ChapterNumber > max {
			max = c.ChapterNumber
		}
	}
	return max + 1
}

// FindChapter 按编号查找章节
func (b *Book) FindChapter(number int) (*Chapter, bool) {
	for i := range b.Chapters {
		if b.Chapters[i].ChapterNumber == number {
			return &b.Chapters[i], true
		}
	}
	return nil, false
}

// SumWordCount 汇总所有章节字数
func (b *Book) SumWordCount() int {
	total := 0
	for _, c := range b.Chapters {
		total += c.WordCount
	}
	return total
}

// Collection 返回集合名称
func (b *Book) Collection() string { return "books" }

// EnsureIndexes 创建和维护索引
func (b *Book) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(b.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "author", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_author_created"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_status"),
		},
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "categories", Value: "text"},
				{Key: "chapters.title", Value: "text"},
				{Key: "chapters.content", Value: "text"},
			},
			Options: options.Index().SetName("idx_book_text"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
