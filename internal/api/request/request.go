// Package request holds the small binding helpers shared by handlers.
package request

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"artist-site/internal/apperr"
	"artist-site/internal/service"

	"github.com/gin-gonic/gin"
)

// ID parses the :id path parameter. Anything but a positive integer is a
// not-found, since no row can carry it.
func ID(c *gin.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.NotFound("resource not found")
	}
	return uint(n), nil
}

// Image returns the uploaded file in field, or nil when none was sent.
func Image(c *gin.Context, field string) (*service.Upload, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.InvalidField(field, "could not be read")
	}
	return &service.Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}, nil
}

// UintList reads repeated form values sent as field or field[]. Values may
// also be comma separated.
func UintList(c *gin.Context, field string) ([]uint, error) {
	raw := append(c.PostFormArray(field), c.PostFormArray(field+"[]")...)
	out := make([]uint, 0, len(raw))
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return nil, apperr.InvalidField(field, "must contain numeric ids")
			}
			out = append(out, uint(n))
		}
	}
	return out, nil
}

// OptionalUint parses a query value, nil when absent or empty.
func OptionalUint(c *gin.Context, key string) (*uint, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, apperr.InvalidField(key, "must be a numeric id")
	}
	id := uint(n)
	return &id, nil
}
