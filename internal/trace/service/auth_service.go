package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"github.com/muuduuu/ayurtrace/internal/trace/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 本地账号认证服务
type AuthService struct {
	users     *repository.UserRepository
	jwtSecret string
	jwtExpire time.Duration
	jwtIssuer string
	now       func() time.Time
}

func NewAuthService(users *repository.UserRepository, jwtSecret, jwtIssuer string, jwtExpire time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		jwtExpire: jwtExpire,
		jwtIssuer: jwtIssuer,
		now:       time.Now,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Register 注册用户。角色注册时确定，此后不再变更。
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	if err := required("email", req.Email); err != nil {
		return nil, err
	}
	if len(req.Password) < 8 {
		return nil, &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	if req.Role != "" && !entity.ValidUserRoles[req.Role] {
		return nil, &ValidationError{Field: "role", Reason: "unknown role"}
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}
	if user.Role == "" {
		user.Role = entity.RoleConsumer
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 校验邮箱密码并签发JWT
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (string, *entity.User, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUser 获取用户
func (s *AuthService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateProfileRequest 更新资料请求，未提供的字段保持原值
type UpdateProfileRequest struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// UpdateProfile 更新用户资料。角色注册时确定，更新路径不接受角色变更。
func (s *AuthService) UpdateProfile(ctx context.Context, id string, req *UpdateProfileRequest) (*entity.User, error) {
	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.ProfileImageURL != nil {
		fields["profile_image_url"] = *req.ProfileImageURL
	}
	if len(fields) == 0 {
		return s.users.FindByID(ctx, id)
	}
	fields["updated_at"] = s.now()

	if err := s.users.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

func (s *AuthService) issueToken(user *entity.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"uid":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iss":   s.jwtIssuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.jwtExpire).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
