package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"time"
)

// Rejection is the typed failure of an extraction attempt. Rejections are
// recoverable: an Or chain uses them only as fallback triggers, and the
// final fallback collapses to a plain 404 with no detail.
type Rejection struct {
	Status int
	Reason string
}

// Error returns the rejection reason.
func (r *Rejection) Error() string { return r.Reason }

// Reject returns a Rejection with the given status and formatted reason.
func Reject(status int, format string, args ...any) *Rejection {
	return &Rejection{Status: status, Reason: fmt.Sprintf(format, args...)}
}

// Extractor converts an inbound request into a typed value or fails with
// a *Rejection. Extractors must leave the request re-readable, so that
// successive attempts against the same request are well-defined —
// body-consuming extractors restore r.Body after reading it.
type Extractor[T any] func(r *http.Request) (T, error)

// Path extracts a single path value bound by the pattern matcher
// (http.ServeMux wildcards) and converts it to T.
func Path[T any](name string) Extractor[T] {
	return func(r *http.Request) (T, error) {
		var v T
		s := r.PathValue(name)
		if s == "" {
			return v, Reject(http.StatusNotFound, "path: missing %q", name)
		}
		if err := setValue(reflect.ValueOf(&v).Elem(), s); err != nil {
			return v, Reject(http.StatusNotFound, "path: %s: %v", name, err)
		}
		return v, nil
	}
}

// Query extracts a single named query parameter and converts it to T.
// A missing parameter is a rejection.
func Query[T any](name string) Extractor[T] {
	return func(r *http.Request) (T, error) {
		var v T
		s := r.URL.Query().Get(name)
		if s == "" {
			return v, Reject(http.StatusBadRequest, "query: missing %q", name)
		}
		if err := setValue(reflect.ValueOf(&v).Elem(), s); err != nil {
			return v, Reject(http.StatusBadRequest, "query: %s: %v", name, err)
		}
		return v, nil
	}
}

// Header extracts a single request header and converts it to T.
// A missing header is a rejection.
func Header[T any](name string) Extractor[T] {
	return func(r *http.Request) (T, error) {
		var v T
		s := r.Header.Get(name)
		if s == "" {
			return v, Reject(http.StatusBadRequest, "header: missing %q", name)
		}
		if err := setValue(reflect.ValueOf(&v).Elem(), s); err != nil {
			return v, Reject(http.StatusBadRequest, "header: %s: %v", name, err)
		}
		return v, nil
	}
}

// Params binds the tagged fields of struct type T from the request:
//
//	type ListReq struct {
//	    ID    int    `path:"id"`
//	    Role  string `query:"role" default:"member"`
//	    Agent string `header:"User-Agent"`
//	    Sess  string `cookie:"session"`
//	}
//
// Untagged fields are left at their zero value. A conversion failure is
// a rejection.
func Params[T any]() Extractor[T] {
	return func(r *http.Request) (T, error) {
		var v T
		if err := bindParams(&v, r); err != nil {
			return v, err
		}
		return v, nil
	}
}

// JSONBody decodes the request body as JSON into T. The body is buffered
// and restored afterwards, so a later extraction attempt against the same
// request can read it again.
func JSONBody[T any]() Extractor[T] {
	return func(r *http.Request) (T, error) {
		var v T
		if r.Body == nil || r.ContentLength == 0 {
			return v, Reject(http.StatusBadRequest, "body: empty")
		}
		buf, err := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(buf))
		if err != nil {
			return v, Reject(http.StatusBadRequest, "body: %v", err)
		}
		if err := json.Unmarshal(buf, &v); err != nil {
			return v, Reject(http.StatusBadRequest, "body: %v", err)
		}
		return v, nil
	}
}

// None always succeeds with Void. As the final arm of an Or chain it makes
// the chain total: every request matches it.
func None(_ *http.Request) (Void, error) {
	return Void{}, nil
}

// Req passes the raw request through unchanged, for handlers that consume
// the request directly instead of a pre-extracted value.
func Req(r *http.Request) (*http.Request, error) {
	return r, nil
}

// bindParams binds path, query, header, and cookie values to tagged
// struct fields.
func bindParams(target any, r *http.Request) error {
	v := reflect.ValueOf(target).Elem()
	t := v.Type()
	if t.Kind() != reflect.Struct {
		return Reject(http.StatusInternalServerError, "params: %s is not a struct", t)
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		field := v.Field(i)

		if name := f.Tag.Get("path"); name != "" {
			val := r.PathValue(name)
			if val != "" {
				if err := setValue(field, val); err != nil {
					return Reject(http.StatusNotFound, "path: %s: %v", name, err)
				}
			}
		}

		if name := f.Tag.Get("query"); name != "" {
			val := r.URL.Query().Get(name)
			if val == "" {
				val = f.Tag.Get("default")
			}
			if val != "" {
				if err := setValue(field, val); err != nil {
					return Reject(http.StatusBadRequest, "query: %s: %v", name, err)
				}
			}
		}

		if name := f.Tag.Get("header"); name != "" {
			val := r.Header.Get(name)
			if val == "" {
				val = f.Tag.Get("default")
			}
			if val != "" {
				if err := setValue(field, val); err != nil {
					return Reject(http.StatusBadRequest, "header: %s: %v", name, err)
				}
			}
		}

		if name := f.Tag.Get("cookie"); name != "" {
			var val string
			if c, err := r.Cookie(name); err == nil {
				val = c.Value
			}
			if val == "" {
				val = f.Tag.Get("default")
			}
			if val != "" {
				if err := setValue(field, val); err != nil {
					return Reject(http.StatusBadRequest, "cookie: %s: %v", name, err)
				}
			}
		}
	}

	return nil
}

// setValue sets a reflect.Value from a string, supporting common types.
func setValue(field reflect.Value, value string) error {
	if field.Type() == reflect.TypeFor[time.Duration]() {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(d))
		return nil
	}

	//exhaustive:ignore
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float64:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type: %s", field.Type())
	}
	return nil
}
