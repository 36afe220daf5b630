// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `internal/config/loader.go` calls `validateStruct` right after it
// unmarshals the merged Koanf tree.  Any violation aborts start-up, so the
// binary never runs with a malformed listen address, a zero timeout, or a
// csrf key that is not base64url.
//
// Failures are flattened into one error naming every offending key by its
// koanf path (e.g. `http.listen_addr`) rather than the Go field name.

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

//
// public API
//

// validateStruct returns nil on success or one error listing every failed
// key.
func validateStruct(c *Config) error {
	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "Config.http.listen_addr"; drop the root type.
		key := fe.Namespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		parts = append(parts, fmt.Sprintf("%s failed %q", key, fe.Tag()))
	}
	return errors.New(strings.Join(parts, "; "))
}
