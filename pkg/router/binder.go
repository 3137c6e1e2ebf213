package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
)

func bindQuery(req *http.Request, out any) error {
	return bindValues(out, func(name string) string {
		return req.URL.Query().Get(name)
	})
}

func bindForm(req *http.Request, out any) error {
	return bindValues(out, func(name string) string {
		return req.FormValue(name)
	})
}

// bindValues fills the string, integer, and boolean fields of out using their
// json tags as lookup names. Missing values leave the zero value in place.
func bindValues(out any, lookup func(name string) string) error {
	v := reflect.ValueOf(out).Elem()
	for i := 0; i < v.NumField(); i++ {
		name, _, _ := splitTag(v.Type().Field(i).Tag.Get("json"))
		if name == "" || name == "-" {
			continue
		}

		raw := lookup(name)
		if raw == "" {
			continue
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)

		case reflect.Int, reflect.Int64:
			val, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(val)

		case reflect.Bool:
			val, err := strconv.ParseBool(raw)
			if err != nil {
				return err
			}
			field.SetBool(val)
		}
	}

	return nil
}

func splitTag(tag string) (name string, opts string, ok bool) {
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			return tag[:i], tag[i+1:], true
		}
	}
	return tag, "", false
}

func bindJson(req *http.Request, out any) error {
	b, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}

	if len(b) == 0 {
		return nil
	}

	if err := json.Unmarshal(b, out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}
