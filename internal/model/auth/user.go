package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// User 用户实体
// ID使用UUID格式（string），避免ObjectID转换的麻烦
type User struct {
	ID         string `bson:"_id,omitempty" json:"id"` // UUID格式的ID
	FirstName  string `bson:"first_name" json:"firstName"`
	LastName   string `bson:"last_name" json:"lastName"`
	Email      string `bson:"email" json:"email"` // 邮箱（唯一，统一小写）
	Password   string `bson:"password" json:"-"`  // 密码（加密存储，不返回）
	Roles      []Role `bson:"roles" json:"roles"` // 角色列表
	Approved   Status `bson:"approved" json:"approved"`
	ProfilePic string `bson:"profile_pic,omitempty" json:"profilePic,omitempty"`

	// 密码重置（存SHA-256哈希，不存明文token）
	ResetPasswordToken   string     `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"reset_password_expires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasRole 检查用户是否持有指定角色
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleStrings 角色列表的字符串形式（用于JWT claims）
func (u *User) RoleStrings() []string {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r))
	}
	return roles
}

// Role 用户角色
type Role string

const (
	RoleAdmin  Role = "ADMIN"  // 平台管理员
	RoleAuthor Role = "AUTHOR" // 作者
	RoleUser   Role = "USER"   // 普通读者
)

// IsValid 检查角色是否有效
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleAuthor || r == RoleUser
}

// String 返回角色字符串
func (r Role) String() string {
	return string(r)
}

// Status 作者审批状态
type Status string

const (
	StatusNone     Status = "NONE"     // 未申请
	StatusPending  Status = "PENDING"  // 待审核
	StatusApproved Status = "APPROVED" // 已通过
	StatusRejected Status = "REJECTED" // 已驳回
)

// IsValid 检查状态是否有效
func (s Status) IsValid() bool {
	return s == StatusNone || s == StatusPending || s == StatusApproved || s == StatusRejected
}

// String 返回状态字符串
func (s Status) String() string {
	return string(s)
}

// Collection 返回集合名称
func (u *User) Collection() string { return "users" }

// EnsureIndexes 创建和维护索引
func (u *User) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(u.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "roles", Value: 1}},
			Options: options.Index().SetName("idx_roles"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
