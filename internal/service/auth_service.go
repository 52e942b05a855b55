package service

import (
	"course_center_backend/internal/config"
	"course_center_backend/internal/model"
	"course_center_backend/internal/repository"
	"course_center_backend/internal/util"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService 登录态管理。会话 token 是不透明随机串，
// 用户快照缓存在 redis，滑动续期。角色/状态变更对已有
// 会话不即时生效，下次登录或资料更新才会刷新快照。
type AuthService struct {
	UserRepo    *repository.UserRepository
	SessionRepo *repository.SessionRepository
	Cfg         *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, sessionRepo *repository.SessionRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		Cfg:         cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.UserRepo.Create(user)
}

// Login 校验口令，建立会话并缓存用户快照，返回会话 token
func (s *AuthService) Login(email, password string) (string, *model.Principal, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	user.LastLogin = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return "", nil, err
	}

	token := uuid.NewString()
	principal := user.Snapshot()
	if err := s.SessionRepo.Set(token, principal, s.Cfg.Session.TTL); err != nil {
		return "", nil, err
	}
	return token, principal, nil
}

func (s *AuthService) Logout(token string) error {
	return s.SessionRepo.Delete(token)
}

// Resolve token → 用户快照。命中顺带滑动续期，未命中视为未登录。
func (s *AuthService) Resolve(token string) (*model.Principal, error) {
	if token == "" {
		return nil, util.ErrNotAuthenticated
	}
	principal, err := s.SessionRepo.Get(token)
	if err != nil {
		return nil, err
	}
	if principal == nil {
		return nil, util.ErrNotAuthenticated
	}
	if err := s.SessionRepo.ExtendTTL(token, s.Cfg.Session.TTL); err != nil {
		return nil, err
	}
	return principal, nil
}

// RefreshSnapshot 资料变更后重建会话里的快照
func (s *AuthService) RefreshSnapshot(token string, user *model.User) error {
	return s.SessionRepo.Set(token, user.Snapshot(), s.Cfg.Session.TTL)
}
