package lessonplan

import (
	"errors"
	"strings"
	"sync"

	"github.com/at-ishikawa/lessoner/internal/validation"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidRequest = errors.New("invalid generate request")

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Subject    string `json:"subject" validate:"required"`
	GradeLevel string `json:"gradelevel" validate:"required"`
	Topic      string `json:"topic" validate:"required"`
}

// GenerateResponse is the body returned by POST /generate.
type GenerateResponse struct {
	Data *LessonPlan `json:"data"`
}

var requestValidator = sync.OnceValues(func() (*requestValidation, error) {
	validate, trans, err := validation.New("json")
	if err != nil {
		return nil, err
	}
	return &requestValidation{validate: validate, trans: trans}, nil
})

type requestValidation struct {
	validate *validator.Validate
	trans    ut.Translator
}

// Validate checks that every field of the request is filled in.
// Surrounding whitespace does not count as a value.
func (request GenerateRequest) Validate() error {
	v, err := requestValidator()
	if err != nil {
		return err
	}

	trimmed := GenerateRequest{
		Subject:    strings.TrimSpace(request.Subject),
		GradeLevel: strings.TrimSpace(request.GradeLevel),
		Topic:      strings.TrimSpace(request.Topic),
	}
	return validation.Struct(v.validate, v.trans, trimmed, ErrInvalidRequest, ", ")
}
