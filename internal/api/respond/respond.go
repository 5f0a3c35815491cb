// Package respond writes the JSON envelopes used by every API handler.
package respond

import (
	"encoding/json"
	"net/http"
)

// SuccessResponse wraps a successful result.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result,omitempty"`
}

// ErrorResponse wraps a request failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 response with the given result.
func OK(w http.ResponseWriter, result interface{}) {
	JSON(w, http.StatusOK, SuccessResponse{Success: true, Result: result})
}

// Created writes a 201 response with the given result.
func Created(w http.ResponseWriter, result interface{}) {
	JSON(w, http.StatusCreated, SuccessResponse{Success: true, Result: result})
}

// Fail writes an error response with the given status code.
func Fail(w http.ResponseWriter, status int, err error) {
	JSON(w, status, ErrorResponse{Success: false, Error: err.Error()})
}
