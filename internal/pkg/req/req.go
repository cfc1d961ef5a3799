/*
Package req provides helper functions for HTTP request parsing and data binding
on the status API.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"jumpinbot/internal/pkg/errs"
)

// MaxBodyBytes limits the size of a status API request body.
const MaxBodyBytes int64 = 64 << 10 // 64 KB

// BindJSON binds the JSON data from the HTTP request body to the destination struct dst.
// Unknown fields and trailing content are rejected.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
