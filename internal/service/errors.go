package service

import "errors"

// Sentinel errors surfaced to the HTTP boundary. Handlers map these to
// status codes; none of them are fatal to the process.
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrItemExists        = errors.New("an item with that name already exists")
	ErrInvalidQuantity   = errors.New("quantity must be a non-negative number")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")

	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("a category with that name already exists")
	ErrCategoryInUse    = errors.New("category is still used by inventory items")
)
