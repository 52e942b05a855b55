package service

import (
	"context"
	"course_center_backend/internal/model"
	"course_center_backend/internal/repository"
	"course_center_backend/internal/util"
	"course_center_backend/pkg/logger"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Auth     *AuthService
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, auth *AuthService, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Auth:     auth,
		Storage:  storage,
	}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

type ProfileUpdate struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

// UpdateProfile 更新资料并重建会话快照，使变更立即对本人可见
func (s *UserService) UpdateProfile(principal *model.Principal, token string, update ProfileUpdate) (*model.User, error) {
	user, err := s.UserRepo.FindByID(principal.ID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Avatar != nil {
		user.Avatar = *update.Avatar
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	if err := s.Auth.RefreshSnapshot(token, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword 本人需验旧密码，管理员可直接重置
func (s *UserService) ChangePassword(principal *model.Principal, userID uint, oldPassword, newPassword string) error {
	if !IsOwner(principal, userID) && !IsAdmin(principal) {
		return util.ErrPermissionDenied
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}

	if !IsAdmin(principal) {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
			return util.ErrInvalidCredentials
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(userID, string(hashed))
}

// UploadAvatar 头像入对象存储，同步资料与会话快照
func (s *UserService) UploadAvatar(ctx context.Context, principal *model.Principal, token string, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("avatars/%s%s", uuid.NewString(), filepath.Ext(filename))
	url, err := s.Storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return "", err
	}

	user, err := s.UserRepo.FindByID(principal.ID)
	if err != nil {
		return "", err
	}

	// 旧头像对象尽力清理，失败不影响本次上传
	if idx := strings.Index(user.Avatar, "avatars/"); idx >= 0 {
		if err := s.Storage.Delete(ctx, user.Avatar[idx:]); err != nil {
			logger.Log.Warn("Failed to remove previous avatar", zap.Error(err))
		}
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	if err := s.Auth.RefreshSnapshot(token, user); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) Search(principal *model.Principal, name string) ([]model.User, error) {
	if !IsAdmin(principal) {
		return nil, util.ErrPermissionDenied
	}
	return s.UserRepo.SearchByName(name)
}

func (s *UserService) Delete(principal *model.Principal, userID uint) error {
	if !IsAdmin(principal) {
		return util.ErrPermissionDenied
	}
	return s.UserRepo.Delete(userID)
}
