package service

import (
	"errors"
	"strings"

	"storeroom/internal/model"
	"storeroom/internal/repository"
)

// CategoryService maintains the category list. Deleting a category that
// items still reference is refused; renames cascade to the items.
type CategoryService interface {
	List() ([]model.Category, error)
	Create(name, icon string) (*model.Category, error)
	Update(id uint, name, icon string) (*model.Category, error)
	Delete(id uint) error
}

type categoryService struct {
	categories repository.CategoryRepository
	items      repository.ItemRepository
}

func NewCategoryService(categories repository.CategoryRepository, items repository.ItemRepository) CategoryService {
	return &categoryService{categories: categories, items: items}
}

func (s *categoryService) List() ([]model.Category, error) {
	return s.categories.FindAll()
}

func (s *categoryService) Create(name, icon string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name is required")
	}
	if existing, err := s.categories.FindByName(name); err == nil && existing != nil {
		return nil, ErrCategoryExists
	}

	category := &model.Category{Name: name, Icon: icon}
	if category.Icon == "" {
		category.Icon = "📦"
	}
	if err := s.categories.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(id uint, name, icon string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	category, err := s.categories.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if clash, err := s.categories.FindByName(name); err == nil && clash != nil && clash.ID != id {
		return nil, ErrCategoryExists
	}

	oldName := category.Name
	category.Name = name
	if icon != "" {
		category.Icon = icon
	}
	if err := s.categories.Update(category); err != nil {
		return nil, err
	}

	if oldName != name {
		if err := s.items.RenameCategory(oldName, name); err != nil {
			return nil, err
		}
	}
	return category, nil
}

func (s *categoryService) Delete(id uint) error {
	category, err := s.categories.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	count, err := s.items.CountByCategory(category.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.categories.Delete(id)
}
