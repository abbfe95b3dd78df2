package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afrowave/api/internal/config"
	"github.com/afrowave/api/internal/model/user"
	"github.com/afrowave/api/internal/repository"
	auth "github.com/afrowave/api/internal/service/auth"
)

// fakeUsers is an in-memory stand-in for the Mongo repository.
type fakeUsers struct {
	byID map[string]user.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[string]user.User)}
}

func (f *fakeUsers) Create(_ context.Context, u user.User) (user.User, error) {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return user.User{}, repository.ErrEmailTaken
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	f.byID[u.ID.Hex()] = u
	return u, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, repository.ErrUserNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) Update(_ context.Context, u user.User) error {
	if _, ok := f.byID[u.ID.Hex()]; !ok {
		return repository.ErrUserNotFound
	}
	f.byID[u.ID.Hex()] = u
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUsers) SearchByName(_ context.Context, _ string, _ user.CreatorType, _, _ int) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUsers) CreatorTypeCounts(_ context.Context) (map[user.CreatorType]int64, error) {
	return nil, nil
}

func newService() (*auth.Service, *fakeUsers) {
	users := newFakeUsers()
	svc := auth.NewService(users, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour})
	return svc, users
}

func TestSignUpAndVerifyToken(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	token, created, err := svc.SignUp(ctx, auth.SignUpInput{
		Email:       "Ada@Example.com",
		Password:    "correct-horse",
		Name:        "Ada",
		CreatorType: "artist",
	})
	if err != nil {
		t.Fatalf("SignUp err: %v", err)
	}
	if created.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %s", created.Email)
	}
	if created.Password == "correct-horse" {
		t.Fatal("password stored in plaintext")
	}

	identity, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken err: %v", err)
	}
	if identity.UserID != created.ID.Hex() {
		t.Fatalf("identity userId = %s, want %s", identity.UserID, created.ID.Hex())
	}
	if identity.CreatorType != user.CreatorArtist {
		t.Fatalf("identity creatorType = %s", identity.CreatorType)
	}
}

func TestSignUpValidation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	cases := []struct {
		name  string
		input auth.SignUpInput
		want  error
	}{
		{"bad email", auth.SignUpInput{Email: "nope", Password: "longenough", Name: "A", CreatorType: "artist"}, auth.ErrEmailRequired},
		{"short password", auth.SignUpInput{Email: "a@b.co", Password: "short", Name: "A", CreatorType: "artist"}, auth.ErrPasswordTooShort},
		{"missing name", auth.SignUpInput{Email: "a@b.co", Password: "longenough", CreatorType: "artist"}, auth.ErrNameRequired},
		{"bad creator type", auth.SignUpInput{Email: "a@b.co", Password: "longenough", Name: "A", CreatorType: "astronaut"}, user.ErrInvalidCreatorType},
		{"bad age", auth.SignUpInput{Email: "a@b.co", Password: "longenough", Name: "A", CreatorType: "artist", Age: 7}, user.ErrAgeOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.SignUp(ctx, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	input := auth.SignUpInput{Email: "a@b.co", Password: "longenough", Name: "A", CreatorType: "fan"}
	if _, _, err := svc.SignUp(ctx, input); err != nil {
		t.Fatalf("first SignUp err: %v", err)
	}
	if _, _, err := svc.SignUp(ctx, input); !errors.Is(err, repository.ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestLogIn(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, auth.SignUpInput{Email: "a@b.co", Password: "longenough", Name: "A", CreatorType: "dj"}); err != nil {
		t.Fatalf("SignUp err: %v", err)
	}

	if _, _, err := svc.LogIn(ctx, "a@b.co", "longenough"); err != nil {
		t.Fatalf("LogIn err: %v", err)
	}

	if _, _, err := svc.LogIn(ctx, "a@b.co", "wrong-password"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, _, err := svc.LogIn(ctx, "unknown@b.co", "longenough"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("unknown email must look like bad credentials, got %v", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newService()

	if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenRejectsForeignSecret(t *testing.T) {
	svc, _ := newService()
	other := auth.NewService(newFakeUsers(), config.AuthConfig{JWTSecret: "other-secret", TokenTTL: time.Hour})

	token, _, err := other.SignUp(context.Background(), auth.SignUpInput{
		Email: "a@b.co", Password: "longenough", Name: "A", CreatorType: "artist",
	})
	if err != nil {
		t.Fatalf("SignUp err: %v", err)
	}

	if _, err := svc.VerifyToken(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("token signed with another secret must fail, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, created, err := svc.SignUp(ctx, auth.SignUpInput{Email: "a@b.co", Password: "longenough", Name: "A", CreatorType: "producer"})
	if err != nil {
		t.Fatalf("SignUp err: %v", err)
	}
	id := created.ID.Hex()

	if err := svc.ChangePassword(ctx, id, "wrong", "next-password"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("wrong current password: got %v", err)
	}
	if err := svc.ChangePassword(ctx, id, "longenough", "next-password"); err != nil {
		t.Fatalf("ChangePassword err: %v", err)
	}
	if _, _, err := svc.LogIn(ctx, "a@b.co", "next-password"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, created, err := svc.SignUp(ctx, auth.SignUpInput{Email: "a@b.co", Password: "longenough", Name: "A", CreatorType: "fan"})
	if err != nil {
		t.Fatalf("SignUp err: %v", err)
	}

	badType := "alien"
	if _, err := svc.UpdateProfile(ctx, created.ID.Hex(), auth.ProfileUpdate{CreatorType: &badType}); !errors.Is(err, user.ErrInvalidCreatorType) {
		t.Fatalf("got %v, want ErrInvalidCreatorType", err)
	}

	newName := "Ada L"
	newType := "artist"
	updated, err := svc.UpdateProfile(ctx, created.ID.Hex(), auth.ProfileUpdate{Name: &newName, CreatorType: &newType})
	if err != nil {
		t.Fatalf("UpdateProfile err: %v", err)
	}
	if updated.Name != "Ada L" || updated.CreatorType != user.CreatorArtist {
		t.Fatalf("update not applied: %+v", updated)
	}
}
