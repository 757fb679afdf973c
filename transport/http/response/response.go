package response

import (
	"encoding/json"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/logger"
	"net/http"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	IsSuccess bool    `json:"isSuccess"`
	Data      any     `json:"data,omitempty"`
	Message   *string `json:"message,omitempty"`
	Meta      *Meta   `json:"meta,omitempty"`
}

type Meta struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// NewMeta builds the paging meta of a list response.
func NewMeta(params gDto.QueryParams, total int) Meta {
	return Meta{Total: total, Page: params.Page, PageSize: params.Limit}
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Envelope{IsSuccess: code < http.StatusBadRequest, Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Envelope{IsSuccess: true, Data: jsonPayload})
}

// WithPaginated sends a list payload together with paging meta
func WithPaginated(writer http.ResponseWriter, code int, items any, meta Meta) {
	response(writer, code, Envelope{IsSuccess: true, Data: items, Meta: &meta})
}

// WithError sends a response with an error message
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := failure.PublicMessage(err)

	if code == http.StatusInternalServerError {
		logger.ErrorWithStack(err)
	}

	response(writer, code, Envelope{IsSuccess: false, Message: &errMsg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
