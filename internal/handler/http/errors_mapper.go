package http

import (
	"errors"
	"net/http"

	"github.com/AmirOssanloo/pkg-sits-node-service/apperr"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/app"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/utils"
)

type mappedError struct {
	status  int
	message string
}

var errorStatusMap = map[error]mappedError{
	ErrEmptyAuthorizationHeader:         {http.StatusUnauthorized, app.MsgUnauthorized},
	ErrTokenRejected:                    {http.StatusUnauthorized, app.MsgUnauthorized},
	utils.ErrInvalidAuthorizationHeader: {http.StatusUnauthorized, app.MsgUnauthorized},
	utils.ErrEmptyToken:                 {http.StatusUnauthorized, app.MsgUnauthorized},

	ErrMalformedBody:     {http.StatusBadRequest, app.MsgMalformedBody},
	ErrBodyTooLarge:      {http.StatusRequestEntityTooLarge, app.MsgBodyTooLarge},
	ErrTooManyParameters: {http.StatusRequestEntityTooLarge, app.MsgTooManyParameters},
}

// lookupError returns a zero mappedError when err is not one of the mapped
// sentinels.
func lookupError(err error) mappedError {
	for target, m := range errorStatusMap {
		if errors.Is(err, target) {
			return m
		}
	}
	return mappedError{}
}

// toTaxonomy converts err into a taxonomy error. Errors that are neither
// taxonomy members nor mapped sentinels are reported as not ok and end up as
// 500 responses.
func toTaxonomy(err error) (*apperr.BasicError, bool) {
	if be, ok := apperr.As(err); ok {
		return be, true
	}

	m := lookupError(err)
	switch m.status {
	case 0:
		return nil, false
	case http.StatusUnauthorized:
		return apperr.Authentication(m.message).WithCause(err), true
	case http.StatusBadRequest:
		return apperr.Validation(m.message, nil).WithCause(err), true
	default:
		return apperr.New(m.message, m.status).WithCause(err), true
	}
}
