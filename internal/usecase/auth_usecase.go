package usecase

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 15 * time.Minute

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthUsecase struct {
	userRepo  repo.UserRepository
	jwtSecret []byte
}

// DI
func NewAuthUsecase(userRepo repo.UserRepository, jwtSecret string) *AuthUsecase {
	return &AuthUsecase{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenOutput struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// 会員登録。パスワードはbcryptでハッシュ化して保存
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.UserProfile, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.UserProfile{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if !emailRe.MatchString(in.Email) {
		return model.UserProfile{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return model.UserProfile{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	if existing, err := u.userRepo.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return model.UserProfile{}, NewHTTPError(http.StatusConflict, "email already used")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.UserProfile{}, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		IsActive:     true,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return model.UserProfile{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProfile(user), nil
}

// ログイン。成功したらHS256のアクセストークンを返す
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (TokenOutput, error) {
	if in.Email == "" || in.Password == "" {
		return TokenOutput{}, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err != nil || user == nil || !user.IsActive {
		return TokenOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return TokenOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.jwtSecret)
	if err != nil {
		return TokenOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	//最終ログイン更新。失敗してもログインは通す
	user.LastLoginAt = &now
	_ = u.userRepo.Update(ctx, user)

	return TokenOutput{
		AccessToken: signed,
		ExpiresIn:   int(accessTokenTTL.Seconds()),
	}, nil
}

// プロフィール取得
func (u *AuthUsecase) GetProfile(ctx context.Context, userID int64) (model.UserProfile, error) {
	if userID <= 0 {
		return model.UserProfile{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return model.UserProfile{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return toProfile(user), nil
}

type SaveProfileInput struct {
	Name           string
	Phone          string
	DefaultAddress string
}

// プロフィール更新（メールは変更不可）
func (u *AuthUsecase) SaveProfile(ctx context.Context, userID int64, in SaveProfileInput) (model.UserProfile, error) {
	if userID <= 0 {
		return model.UserProfile{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.UserProfile{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return model.UserProfile{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	user.Name = in.Name
	user.Phone = in.Phone
	user.DefaultAddress = in.DefaultAddress
	if err := u.userRepo.Update(ctx, user); err != nil {
		return model.UserProfile{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProfile(user), nil
}

func toProfile(u *model.User) model.UserProfile {
	return model.UserProfile{
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		DefaultAddress: u.DefaultAddress,
	}
}
