package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrCategoryNotFound  = errors.New("category not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInventoryNotFound = errors.New("inventory record not found")

	// ErrInvalidQuantity - количество в продаже или поступлении
	// должно быть строго положительным
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrUsernameTaken - имя пользователя уже занято
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials - неверная пара логин/пароль
	ErrInvalidCredentials = errors.New("invalid username or password")
)
