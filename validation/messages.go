package validation

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// Kind classifies a validation failure independent of its message text.
type Kind string

const (
	Blank        Kind = "blank"
	TooLong      Kind = "too_long"
	InvalidRange Kind = "invalid_range"
	Inclusion    Kind = "inclusion"
)

const (
	FieldTitle      = "title"
	FieldBody       = "body"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldRelations  = "content_relations"
	FieldTargetFlag = "target_flag"
	FieldForTarget  = "for_target"
)

// Labels are the display names of the content form fields.
var Labels = map[string]string{
	FieldTitle:      "タイトル",
	FieldBody:       "内容",
	FieldStartTime:  "適用開始日時",
	FieldEndTime:    "適用終了日時",
	FieldRelations:  "ブランド",
	FieldTargetFlag: "適用対象",
	FieldForTarget:  "表示対象",
}

// Label returns the display name of field, or field itself when unknown.
func Label(field string) string {
	if l, ok := Labels[field]; ok {
		return l
	}
	return field
}

var messages = map[Kind]string{
	Blank:        "を入力してください。",
	TooLong:      "は正しく入力されていません。",
	InvalidRange: "は {0} より後の日付にしてください。",
	Inclusion:    "は一覧にありません。",
}

// Picker fields (times and brands) read "please select" when missing instead
// of "please enter".
const blankSelection = "を選択してください。"

func registerTranslations(v *validator.Validate, trans ut.Translator) error {
	add := func(tag, text string) error {
		return v.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, text, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, err := ut.T(tag, Label(fe.Param()))
				if err != nil {
					return fe.Error()
				}
				return msg
			})
	}

	for tag, text := range map[string]string{
		"present":     messages[Blank],
		"required":    blankSelection,
		"min":         blankSelection,
		"max":         messages[TooLong],
		"after":       messages[InvalidRange],
		"target_flag": messages[Inclusion],
	} {
		if err := add(tag, text); err != nil {
			return err
		}
	}
	return nil
}
