package application

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
	repo "github.com/oksasatya/feedback-board/internal/domain/repository"
	"github.com/oksasatya/feedback-board/pkg/apperror"
	"github.com/oksasatya/feedback-board/pkg/helpers"
)

// AvatarStore persists uploaded profile images and returns their URL.
type AvatarStore interface {
	Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type UserService struct {
	Repo    repo.UserRepository
	JWT     *helpers.JWTManager
	Avatars AvatarStore
	Logger  *logrus.Logger
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, avatars AvatarStore, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, Avatars: avatars, Logger: logger}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Username  string
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

// UpdateUserInput lists the fields an admin may change. Nil fields are kept.
type UpdateUserInput struct {
	ID        string
	Username  *string
	Email     *string
	Firstname *string
	Lastname  *string
	Role      *string
	Image     *string
	Password  *string
}

// IssueTokens signs a fresh access/refresh pair for u.
func (s *UserService) IssueTokens(u entity.TokenUser) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u)
	if err != nil {
		helpers.LogError(s.Logger, "generate access token failed", err, logrus.Fields{"user_id": u.UserID})
		return TokenPair{}, apperror.Internal(err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u)
	if err != nil {
		helpers.LogError(s.Logger, "generate refresh token failed", err, logrus.Fields{"user_id": u.UserID})
		return TokenPair{}, apperror.Internal(err)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (entity.TokenUser, TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return entity.TokenUser{}, TokenPair{}, apperror.BadRequest("Email already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return entity.TokenUser{}, TokenPair{}, apperror.Internal(err)
	}
	username := strings.TrimSpace(in.Username)
	if err := s.usernameFree(ctx, username, ""); err != nil {
		return entity.TokenUser{}, TokenPair{}, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return entity.TokenUser{}, TokenPair{}, apperror.BadRequest("Please provide a password")
	}
	u := &entity.User{
		Username:  username,
		Email:     email,
		Password:  hash,
		Firstname: strings.TrimSpace(in.Firstname),
		Lastname:  strings.TrimSpace(in.Lastname),
		Role:      entity.RoleUser,
		JoinedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return entity.TokenUser{}, TokenPair{}, writeErr(err)
	}
	authStats.Add("registrations", 1)

	tu := u.Token()
	pair, err := s.IssueTokens(tu)
	if err != nil {
		return entity.TokenUser{}, TokenPair{}, err
	}
	return tu, pair, nil
}

// Login checks username and password. Unknown users and wrong passwords get
// the same answer.
func (s *UserService) Login(ctx context.Context, username, password string) (entity.TokenUser, TokenPair, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return entity.TokenUser{}, TokenPair{}, apperror.BadRequest("Please provide username and password")
	}
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			authStats.Add("login_failures", 1)
			return entity.TokenUser{}, TokenPair{}, apperror.Unauthenticated("Invalid credentials")
		}
		return entity.TokenUser{}, TokenPair{}, apperror.Internal(err)
	}
	if !helpers.CheckPassword(u.Password, password) {
		authStats.Add("login_failures", 1)
		return entity.TokenUser{}, TokenPair{}, apperror.Unauthenticated("Invalid credentials")
	}
	authStats.Add("logins", 1)

	tu := u.Token()
	pair, err := s.IssueTokens(tu)
	if err != nil {
		return entity.TokenUser{}, TokenPair{}, err
	}
	return tu, pair, nil
}

func (s *UserService) List(ctx context.Context) ([]entity.PublicUser, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out := make([]entity.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

func (s *UserService) Update(ctx context.Context, in UpdateUserInput) (*entity.PublicUser, error) {
	u, err := s.Repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.BadRequest("User does not exist")
		}
		return nil, apperror.Internal(err)
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username != u.Username {
			if err := s.usernameFree(ctx, username, u.ID); err != nil {
				return nil, err
			}
		}
		u.Username = username
	}
	if in.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Firstname != nil {
		u.Firstname = strings.TrimSpace(*in.Firstname)
	}
	if in.Lastname != nil {
		u.Lastname = strings.TrimSpace(*in.Lastname)
	}
	if in.Image != nil {
		u.Image = strings.TrimSpace(*in.Image)
	}
	if in.Role != nil {
		role := entity.Role(*in.Role)
		if !role.Valid() {
			return nil, apperror.BadRequest("%s is not a valid role", *in.Role)
		}
		u.Role = role
	}
	// The hash only changes when a different plaintext is supplied.
	if in.Password != nil && !helpers.CheckPassword(u.Password, *in.Password) {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, apperror.BadRequest("Password cannot be empty")
		}
		u.Password = hash
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.BadRequest("User does not exist")
		}
		return nil, writeErr(err)
	}
	pub := u.Public()
	return &pub, nil
}

// usernameFree fails when username belongs to an account other than selfID.
func (s *UserService) usernameFree(ctx context.Context, username, selfID string) error {
	other, err := s.Repo.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil
	case err != nil:
		return apperror.Internal(err)
	case other.ID != selfID:
		return apperror.BadRequest("Username already exists")
	}
	return nil
}

// writeErr maps unique index violations that slipped past the pre-checks.
func writeErr(err error) error {
	switch {
	case errors.Is(err, repo.ErrDuplicateEmail):
		return apperror.BadRequest("Email already exists")
	case errors.Is(err, repo.ErrDuplicateUsername):
		return apperror.BadRequest("Username already exists")
	}
	return apperror.Internal(err)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperror.NotFound("No user with id %s", id)
		}
		return apperror.Internal(err)
	}
	return nil
}

// UploadAvatar stores an image under avatars/<userID>/ and points the user's
// image at it. The returned identity carries the new image.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (entity.TokenUser, error) {
	if s.Avatars == nil {
		return entity.TokenUser{}, apperror.Unavailable("Avatar storage is not configured")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return entity.TokenUser{}, apperror.BadRequest("Please upload an image file")
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.TokenUser{}, apperror.NotFound("No user with id %s", userID)
		}
		return entity.TokenUser{}, apperror.Internal(err)
	}

	objectPath := avatarPath(userID, filename)
	url, err := s.Avatars.Put(ctx, objectPath, contentType, r)
	if err != nil {
		helpers.LogError(s.Logger, "avatar upload failed", err, logrus.Fields{"user_id": userID, "object": objectPath})
		return entity.TokenUser{}, apperror.Internal(err)
	}
	u.Image = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return entity.TokenUser{}, apperror.Internal(err)
	}
	return u.Token(), nil
}

func avatarPath(userID, filename string) string {
	return path.Join("avatars", userID, uuid.NewString()+strings.ToLower(path.Ext(filename)))
}
