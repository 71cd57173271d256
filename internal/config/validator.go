package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/at-ishikawa/lessoner/internal/validation"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type configValidation struct {
	validate *validator.Validate
	trans    ut.Translator
}

var configValidator = sync.OnceValues(newValidator)

// Validate returns every invalid field in a single error
func (cfg *Config) Validate() error {
	v, err := configValidator()
	if err != nil {
		return err
	}
	return validation.Struct(v.validate, v.trans, cfg, ErrInvalidConfig, "; ")
}

func newValidator() (*configValidation, error) {
	validate, trans, err := validation.New("mapstructure")
	if err != nil {
		return nil, err
	}

	// "file" is a built-in tag, this replaces it with a readability check
	if err := validate.RegisterValidation("file", isFileReadable); err != nil {
		return nil, fmt.Errorf("failed to register file validation: %w", err)
	}
	if err := validate.RegisterTranslation("file", trans, func(ut ut.Translator) error {
		return ut.Add("file", "{0} must be an existing and readable file", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("file", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, fmt.Errorf("failed to register file translation: %w", err)
	}

	return &configValidation{validate: validate, trans: trans}, nil
}

func isFileReadable(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	// Check if the owner has read permission
	return info.Mode().Perm()&0400 != 0
}
