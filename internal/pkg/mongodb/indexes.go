package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"moonpages/internal/model/auth"
	"moonpages/internal/model/book"
	"moonpages/internal/model/library"
)

// EnsureIndexes 创建所有模型的索引
// 统一入口，应用启动时调用
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	models := []Model{
		&auth.User{},
		&book.Book{},
		&library.UserBook{},
	}

	return EnsureAllIndexes(ctx, db, models...)
}
