// Package bind decodes a JSON request body into an input struct and runs
// its validation tags. Controllers branch on the two results:
//
//	errs, err := bind.JSON(r, &in)   // err: malformed body
//	                                 // errs: field validation failures
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/aushadhi/config"
	"github.com/shashiranjanraj/aushadhi/pkg/validate"
)

const defaultBodyLimit = 4 << 20

// bodyLimit reads MAX_BODY_BYTES, defaulting to 4 MB.
func bodyLimit() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultBodyLimit
	}
	return n
}

// JSON decodes r.Body into dest and validates it. A non-nil error means
// the body was unreadable (bad JSON or over the size cap); a non-nil
// errs map carries per-field validation messages.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, bodyLimit())

	if err = json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if errs = validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
