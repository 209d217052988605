// Package validation checks a candidate content against the admin form rules
// and reports localized messages keyed by field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"content-admin/models"

	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Errors maps a field key to its messages in the order they were found.
// An empty Errors means the input is valid.
type Errors map[string][]string

// Add appends msg to field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Empty reports whether no errors were recorded.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// FullMessages returns every message prefixed with its field label.
func (e Errors) FullMessages() []string {
	var out []string
	for _, field := range fieldOrder {
		for _, msg := range e[field] {
			out = append(out, Label(field)+msg)
		}
	}
	return out
}

var fieldOrder = []string{FieldTitle, FieldBody, FieldStartTime, FieldEndTime, FieldTargetFlag, FieldRelations}

// Input is the candidate state of a content. Title must already be trimmed.
type Input struct {
	Title       string      `json:"title" validate:"present,max=200"`
	Body        string      `json:"body" validate:"present"`
	StartTime   *time.Time  `json:"start_time" validate:"required"`
	EndTime     *time.Time  `json:"end_time" validate:"required"`
	TargetFlag  string      `json:"target_flag" validate:"omitempty,target_flag"`
	RelationIDs []uuid.UUID `json:"content_relations" validate:"min=1"`
}

type engine struct {
	validate *validator.Validate
	trans    ut.Translator
}

var (
	once      sync.Once
	shared    *engine
	sharedErr error
)

func load() (*engine, error) {
	once.Do(func() {
		shared, sharedErr = newEngine()
	})
	return shared, sharedErr
}

func newEngine() (*engine, error) {
	v := validator.New()

	// Report json names so error keys match the request fields.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("present", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation("target_flag", func(fl validator.FieldLevel) bool {
		return models.ValidTargetFlag(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(Input)
		if in.StartTime == nil || in.EndTime == nil {
			return
		}
		if !in.EndTime.After(*in.StartTime) {
			sl.ReportError(in.EndTime, FieldEndTime, "EndTime", "after", FieldStartTime)
		}
	}, Input{})

	locale := ja.New()
	trans, _ := ut.New(locale, locale).GetTranslator("ja")
	if err := registerTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("failed to register translations: %w", err)
	}

	return &engine{validate: v, trans: trans}, nil
}

// Validate evaluates every rule and returns all failures.
func Validate(in Input) Errors {
	e, err := load()
	if err != nil {
		panic(err)
	}

	errs := Errors{}
	err = e.validate.Struct(in)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		panic(err)
	}
	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), fe.Translate(e.trans))
	}
	return errs
}
