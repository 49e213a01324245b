/*
Package req provides helper functions for HTTP request parsing and data binding.

It wraps JSON body decoding with the strictness the API expects (known fields
only, nothing after the document) and maps decode failures onto errs codes.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"parlor/internal/pkg/errs"
)

// BindJSON binds the JSON request body to dst.
// The body must carry an application/json Content-Type, contain no unknown
// fields, and hold exactly one JSON document.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

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
