// Package bind provides JSON bind and validation helpers for handlers
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "github.com/habibaehabb05/Factify/internal/platform/errors"
	"github.com/habibaehabb05/Factify/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce    sync.Once
	vSvc     *ValidatorSvc
	jsonMore = func(dec *json.Decoder) bool { return dec.More() } // seam
)

// Get returns the validator singleton, initializing on first use
// messages use json tag names and short english translations
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)
		short(v, trans, "required", "{0} is required", false)
		short(v, trans, "min", "{0} must be at least {1}", true)
		short(v, trans, "max", "{0} must be at most {1}", true)
		short(v, trans, "oneof", "{0} must be one of [{1}]", true)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// JSONOptions controls parsing behavior
type JSONOptions struct {
	MaxBytes        int64 // default 1MB, 0 means unlimited
	DisallowUnknown bool  // default true
	AllowEmptyBody  bool  // default false
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
}

// ParseJSON decodes JSON into T, validates it, and maps failures to project errors
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close request body")
		}
	}()

	body := io.Reader(r.Body)
	if !o.AllowEmptyBody {
		buf := make([]byte, 1)
		n, _ := r.Body.Read(buf)
		if n == 0 {
			return zero, perr.JSONErrf("empty body")
		}
		body = io.MultiReader(bytes.NewReader(buf[:n]), r.Body)
	}

	lr := newCapReader(body, o.MaxBytes)
	dec := json.NewDecoder(lr)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		switch {
		case lr.exceeded():
			return zero, perr.JSONErrf("body exceeds %d bytes", o.MaxBytes)
		case o.AllowEmptyBody && errors.Is(err, io.EOF):
			return dst, nil
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if jsonMore(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Get().Validator.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.Get().Error().Err(inv).Msg("validator internal error")
			return zero, perr.JSONErrf("validation error")
		}
		field, msg := ValidationFieldAndMessage(err)
		return zero, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
	}
	return dst, nil
}

// capReader counts bytes read so an oversized body is told apart from bad JSON
type capReader struct {
	r     io.Reader
	n     int64
	limit int64
}

func newCapReader(r io.Reader, limit int64) *capReader {
	if limit > 0 {
		// one byte past the cap is enough to know it was exceeded
		r = io.LimitReader(r, limit+1)
	}
	return &capReader{r: r, limit: limit}
}

func (c *capReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *capReader) exceeded() bool { return c.limit > 0 && c.n > c.limit }

// ValidationFieldAndMessage returns the first field and translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	return "", err.Error()
}

// short registers a one-line translation for tag
func short(v *validator.Validate, trans ut.Translator, tag, text string, withParam bool) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			params := []string{fe.Field()}
			if withParam {
				params = append(params, fe.Param())
			}
			msg, _ := t.T(tag, params...)
			return msg
		},
	)
}
