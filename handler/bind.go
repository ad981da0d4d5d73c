package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

const maxFormMemory = 1 << 20

// Bind decodes the request body into v by Content-Type:
// application/json uses json tags; urlencoded and multipart forms fill
// fields tagged `form:"name"` (string, []string, bool and int kinds).
// Requests without a Content-Type bind nothing.
func Bind(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return errors.Join(ErrUnsupportedMediaType, err)
	}

	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return errors.Join(ErrBadRequest, err)
		}
		return nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return errors.Join(ErrBadRequest, err)
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return errors.Join(ErrBadRequest, err)
		}
	default:
		return ErrUnsupportedMediaType
	}
	return bindForm(v, r.PostForm)
}

func bindForm(v any, form map[string][]string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind target must be a pointer to struct, got %T", v)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("form"), ",")
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		values, ok := form[name]
		if !ok || len(values) == 0 {
			continue
		}

		f := rv.Field(i)
		switch f.Kind() {
		case reflect.String:
			f.SetString(values[0])
		case reflect.Bool:
			b, err := strconv.ParseBool(values[0])
			if err != nil {
				return errors.Join(ErrBadRequest, fmt.Errorf("field %s: %w", name, err))
			}
			f.SetBool(b)
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(values[0], 10, 64)
			if err != nil {
				return errors.Join(ErrBadRequest, fmt.Errorf("field %s: %w", name, err))
			}
			f.SetInt(n)
		case reflect.Slice:
			if f.Type().Elem().Kind() == reflect.String {
				f.Set(reflect.ValueOf(append([]string(nil), values...)))
			}
		}
	}
	return nil
}
