package gql

import (
	"net/mail"
	"strings"
)

// minPasswordLength は登録時のパスワードの最低文字数を定義します。
const minPasswordLength = 5

// validateEmail はメールアドレスの形式を検証します。
func validateEmail(email string) *apiError {
	if strings.TrimSpace(email) == "" {
		return newValidationError("email must not be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return newValidationError("email must be a valid email address")
	}
	return nil
}

// validateRegisterInput はRegisterInputをサービス層に渡す前に検証します。
func validateRegisterInput(email, password string) *apiError {
	if err := validateEmail(email); err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return newValidationError("password must be at least 5 characters long")
	}
	return nil
}

// validateLoginInput はLoginInputをサービス層に渡す前に検証します。
func validateLoginInput(email, password string) *apiError {
	if err := validateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return newValidationError("password must not be empty")
	}
	return nil
}

// validateBiometricInput はBiometricInputをサービス層に渡す前に検証します。
func validateBiometricInput(biometricKey string) *apiError {
	if strings.TrimSpace(biometricKey) == "" {
		return newValidationError("biometricKey must not be empty")
	}
	return nil
}
