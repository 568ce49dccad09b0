package serializer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nsbdesign/proofroom/internal/pkg/apperr"
)

// Response
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

// NotFoundErr
func NotFoundErr(msg string) Response {
	if msg == "" {
		msg = "not found"
	}
	return Err(http.StatusNotFound, msg, nil)
}

// ConflictErr
func ConflictErr(msg string, err error) Response {
	if msg == "" {
		msg = "conflict"
	}
	return Err(http.StatusConflict, msg, err)
}

// FromError maps a service-layer error to the HTTP response envelope.
// Unrecognized errors fall through to DBErr.
func FromError(err error) (int, Response) {
	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, NotFoundErr(nf.Entity + " not found")
	}

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ParamErr(ve.Error(), err)
	}

	var ce *apperr.ConflictError
	if errors.As(err, &ce) {
		return http.StatusConflict, ConflictErr(ce.Error(), err)
	}

	return http.StatusInternalServerError, DBErr("", err)
}
