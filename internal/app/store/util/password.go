package util

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Пароли учетных записей сотрудников хранятся только в виде bcrypt-хэшей

// HashPassword возвращает bcrypt-хэш пароля с затратами по умолчанию
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword сообщает, соответствует ли пароль сохраненному хэшу
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
