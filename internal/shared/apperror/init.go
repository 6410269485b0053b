package apperror

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init membuat validator bawaan gin melaporkan nama field sesuai tag json,
// sehingga pesan validasi memakai nama wire ("team_id"), bukan nama Go
// ("TeamID"). Panggil sekali di main sebelum route terdaftar.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
