package repository

import (
	"course_center_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByIDs(ids []uint) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdatePassword(id uint, hashed string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("password", hashed).Error
}

func (r *UserRepository) Delete(id uint) error {
	return r.DB.Delete(&model.User{}, id).Error
}

func (r *UserRepository) SearchByName(name string) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("name LIKE ?", "%"+name+"%").Find(&users).Error
	return users, err
}
