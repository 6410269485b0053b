package apperror

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// formatFieldName: "team_id" -> "Team Id"
func formatFieldName(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// MapValidationError menerjemahkan error binding gin menjadi AppError dengan
// pesan per field. Hanya pelanggaran pertama yang dilaporkan.
func MapValidationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest)
	}

	e := errs[0]
	field := formatFieldName(e.Field())

	if e.Tag() == "required" {
		return RequiredField(field)
	}
	return InvalidField(field)
}
