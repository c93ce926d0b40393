package service

import (
	"context"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"moonpages/internal/model/auth"
	"moonpages/internal/pkg/jwt"
	"moonpages/internal/pkg/password"
)

// fakeUserRepo 内存版用户仓库
type fakeUserRepo struct {
	users map[string]*auth.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*auth.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*auth.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) FindByResetToken(ctx context.Context, tokenHash string) (*auth.User, error) {
	for _, u := range f.users {
		if u.ResetPasswordToken == tokenHash &&
			u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(time.Now()) {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) FindByIDs(ctx context.Context, ids []string) ([]*auth.User, error) {
	var users []*auth.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, update bson.M) error {
	u, ok := f.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if set, ok := update["$set"].(bson.M); ok {
		if v, ok := set["password"].(string); ok {
			u.Password = v
		}
		if v, ok := set["reset_password_token"].(string); ok {
			u.ResetPasswordToken = v
		}
		if v, ok := set["reset_password_expires"].(time.Time); ok {
			u.ResetPasswordExpires = &v
		}
		if v, ok := set["first_name"].(string); ok {
			u.FirstName = v
		}
		if v, ok := set["last_name"].(string); ok {
			u.LastName = v
		}
		if v, ok := set["email"].(string); ok {
			u.Email = v
		}
	}
	if unset, ok := update["$unset"].(bson.M); ok {
		if _, ok := unset["reset_password_token"]; ok {
			u.ResetPasswordToken = ""
		}
		if _, ok := unset["reset_password_expires"]; ok {
			u.ResetPasswordExpires = nil
		}
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role auth.Role, page, pageSize int64) ([]*auth.User, int64, error) {
	var users []*auth.User
	for _, u := range f.users {
		if u.HasRole(role) {
			users = append(users, u)
		}
	}
	return users, int64(len(users)), nil
}

func (f *fakeUserRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	if role, ok := filter["roles"].(auth.Role); ok {
		var n int64
		for _, u := range f.users {
			if u.HasRole(role) {
				n++
			}
		}
		return n, nil
	}
	return int64(len(f.users)), nil
}

// fakeMailer 记录最后一封邮件
type fakeMailer struct {
	to      string
	subject string
	body    string
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	m.to = to
	m.subject = subject
	m.body = htmlBody
	return nil
}

func newAuthTestService(repo *fakeUserRepo, mail *fakeMailer) *AuthService {
	jwtUtil := jwt.NewJWT("test-secret", "test-refresh", time.Hour, 24*time.Hour)
	return NewAuthService(repo, jwtUtil, mail, "https://moonpages.example.com", 15*time.Minute)
}

func TestAuthService_Register(t *testing.T) {
	Convey("AuthService.Register", t, func() {
		ctx := context.Background()
		repo := newFakeUserRepo()
		svc := newAuthTestService(repo, &fakeMailer{})

		Convey("缺少邮箱或密码应校验失败", func() {
			_, err := svc.Register(ctx, RegisterInput{Email: "", Password: "secret"})
			So(err, ShouldWrap, ErrValidation)
		})

		Convey("注册成功返回token，邮箱统一小写", func() {
			res, err := svc.Register(ctx, RegisterInput{
				FirstName: "Ada",
				LastName:  "Lovelace",
				Email:     "  Ada@Example.COM ",
				Password:  "secret123",
			})
			So(err, ShouldBeNil)
			So(res.Email, ShouldEqual, "ada@example.com")
			So(res.Roles, ShouldResemble, []auth.Role{auth.RoleUser})
			So(res.AccessToken, ShouldNotBeEmpty)
			So(res.RefreshToken, ShouldNotBeEmpty)

			stored := repo.users[res.UserID]
			So(stored.Approved, ShouldEqual, auth.StatusNone)
			So(stored.Password, ShouldNotEqual, "secret123")
			So(password.Verify("secret123", stored.Password), ShouldBeTrue)
		})

		Convey("重复邮箱应拒绝", func() {
			_, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "x12345"})
			So(err, ShouldBeNil)
			_, err = svc.Register(ctx, RegisterInput{Email: "DUP@example.com", Password: "y12345"})
			So(err, ShouldWrap, ErrValidation)
		})

		Convey("角色值大小写不敏感，非法角色拒绝", func() {
			res, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "x12345", Role: "author"})
			So(err, ShouldBeNil)
			So(res.Roles, ShouldResemble, []auth.Role{auth.RoleAuthor})

			_, err = svc.Register(ctx, RegisterInput{Email: "c@d.com", Password: "x12345", Role: "SUPERUSER"})
			So(err, ShouldWrap, ErrValidation)
		})

		Convey("枚举内的每个角色都可注册", func() {
			res, err := svc.Register(ctx, RegisterInput{Email: "root@b.com", Password: "x12345", Role: "ADMIN"})
			So(err, ShouldBeNil)
			So(res.Roles, ShouldResemble, []auth.Role{auth.RoleAdmin})
		})
	})
}

func TestAuthService_LoginAndRefresh(t *testing.T) {
	Convey("AuthService 登录与刷新", t, func() {
		ctx := context.Background()
		repo := newFakeUserRepo()
		svc := newAuthTestService(repo, &fakeMailer{})

		res, err := svc.Register(ctx, RegisterInput{Email: "reader@example.com", Password: "secret123"})
		So(err, ShouldBeNil)

		Convey("正确口令登录成功", func() {
			got, err := svc.Login(ctx, "Reader@Example.com", "secret123")
			So(err, ShouldBeNil)
			So(got.UserID, ShouldEqual, res.UserID)
		})

		Convey("账号不存在与密码错误返回同一个错误", func() {
			_, err1 := svc.Login(ctx, "nobody@example.com", "secret123")
			_, err2 := svc.Login(ctx, "reader@example.com", "wrong")
			So(err1, ShouldEqual, ErrInvalidCredentials)
			So(err2, ShouldEqual, ErrInvalidCredentials)
		})

		Convey("Refresh Token 换新 Access Token", func() {
			token, err := svc.Refresh(ctx, res.RefreshToken)
			So(err, ShouldBeNil)
			So(token, ShouldNotBeEmpty)
		})

		Convey("Access Token 不能用于刷新", func() {
			_, err := svc.Refresh(ctx, res.AccessToken)
			So(err, ShouldEqual, ErrInvalidRefresh)
		})

		Convey("用户已删除时刷新失败", func() {
			delete(repo.users, res.UserID)
			_, err := svc.Refresh(ctx, res.RefreshToken)
			So(err, ShouldEqual, ErrInvalidRefresh)
		})
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	Convey("AuthService 密码重置", t, func() {
		ctx := context.Background()
		repo := newFakeUserRepo()
		mail := &fakeMailer{}
		svc := newAuthTestService(repo, mail)

		res, err := svc.Register(ctx, RegisterInput{
			FirstName: "Ada",
			Email:     "reader@example.com",
			Password:  "secret123",
		})
		So(err, ShouldBeNil)

		Convey("未知邮箱应返回未找到", func() {
			err := svc.ForgotPassword(ctx, "nobody@example.com")
			So(err, ShouldWrap, ErrNotFound)
		})

		Convey("完整重置流程", func() {
			err := svc.ForgotPassword(ctx, "reader@example.com")
			So(err, ShouldBeNil)
			So(mail.to, ShouldEqual, "reader@example.com")
			So(mail.subject, ShouldEqual, "MoonPages Password Reset")
			So(mail.body, ShouldContainSubstring, "https://moonpages.example.com/reset-password/")
			So(mail.body, ShouldContainSubstring, "expires in 15 minutes")

			// 明文token只在邮件里，库里存哈希
			idx := strings.Index(mail.body, "/reset-password/")
			rest := mail.body[idx+len("/reset-password/"):]
			token := rest[:64]
			So(repo.users[res.UserID].ResetPasswordToken, ShouldNotEqual, token)

			Convey("有效token可重置密码并清除token", func() {
				err := svc.ResetPassword(ctx, token, "newpass456")
				So(err, ShouldBeNil)

				stored := repo.users[res.UserID]
				So(password.Verify("newpass456", stored.Password), ShouldBeTrue)
				So(stored.ResetPasswordToken, ShouldBeEmpty)
				So(stored.ResetPasswordExpires, ShouldBeNil)

				Convey("token只能用一次", func() {
					err := svc.ResetPassword(ctx, token, "another789")
					So(err, ShouldWrap, ErrValidation)
				})
			})

			Convey("伪造token应拒绝", func() {
				err := svc.ResetPassword(ctx, "deadbeef", "newpass456")
				So(err, ShouldWrap, ErrValidation)
			})

			Convey("空密码应拒绝", func() {
				err := svc.ResetPassword(ctx, token, "")
				So(err, ShouldWrap, ErrValidation)
			})
		})
	})
}
