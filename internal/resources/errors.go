package resources

import (
	"github.com/mroshb/friends_api/pkg/errors"
)

type ErrorBody struct {
	Code   int                 `json:"code"`
	Title  string              `json:"title"`
	Detail string              `json:"detail"`
	Meta   map[string][]string `json:"meta,omitempty"`
}

type ErrorDocument struct {
	Error ErrorBody `json:"error"`
}

// Error renders an AppError. Internal causes are never exposed.
func Error(appErr *errors.AppError) (int, ErrorDocument) {
	status := errors.HTTPStatus(appErr.Code)
	detail := appErr.Message
	if status >= 500 {
		detail = "Something went wrong, please try again later."
	}
	return status, ErrorDocument{
		Error: ErrorBody{
			Code:   status,
			Title:  errors.Title(appErr.Code),
			Detail: detail,
			Meta:   appErr.Meta,
		},
	}
}
