package utils

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidateStruct проверяет входные данные по validate-тегам
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
