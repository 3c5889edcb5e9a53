package utils

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	ruTranslations "github.com/go-playground/validator/v10/translations/ru"
	"github.com/spf13/viper"
)

var trans ut.Translator

// 用户名和社区名共用的字符集
var handleRegexp = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// InitTrans 初始化翻译器，并注册 handle 自定义校验
func InitTrans() {
	lang := viper.GetString("server.lang")
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {

		// 错误信息里用 json tag 而不是结构体字段名
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			return field.Tag.Get("json")
		})

		if err := v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
			return handleRegexp.MatchString(fl.Field().String())
		}); err != nil {
			panic(err.Error())
		}

		enT := en.New()
		ruT := ru.New()

		uni := ut.New(enT, ruT, enT)

		var ok bool
		trans, ok = uni.GetTranslator(lang)
		if !ok {
			panic(fmt.Errorf("uni.GetTranslator(%s) failed", lang))
		}

		var err error
		switch lang {
		case "ru":
			err = ruTranslations.RegisterDefaultTranslations(v, trans)
		default:
			err = enTranslations.RegisterDefaultTranslations(v, trans)
		}
		if err != nil {
			panic(err.Error())
		}

		if err := v.RegisterTranslation("handle", trans, func(ut ut.Translator) error {
			return ut.Add("handle", "{0} may only include letters, numbers, underscores, or hyphens", true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("handle", fe.Field())
			return t
		}); err != nil {
			panic(err.Error())
		}
	}
}

// ParseToValidationError 把绑定错误转成 field -> message 映射
func ParseToValidationError(err error) map[string]string {
	res := make(map[string]string)
	if v, ok := err.(validator.ValidationErrors); ok {
		for field, msg := range v.Translate(GetTranslator()) {
			// Translate 的 key 形如 ParamSignup.username，只保留字段名
			for i := len(field) - 1; i >= 0; i-- {
				if field[i] == '.' {
					field = field[i+1:]
					break
				}
			}
			res[field] = msg
		}
	} else {
		res["body"] = "invalid request body"
	}
	return res
}

func GetTranslator() ut.Translator {
	return trans
}
