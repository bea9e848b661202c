package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

var (
	// ErrMissingParam возвращается, если обязательный параметр не передан
	ErrMissingParam = errors.New("missing parameter")

	// ErrInvalidParam возвращается, если параметр не разбирается
	ErrInvalidParam = errors.New("invalid parameter")
)

// PathID извлекает положительный идентификатор из пути
func PathID(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}
	return id, nil
}

// QueryDate разбирает дату YYYY-MM-DD из query. Пустое значение даёт nil
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q, expected YYYY-MM-DD", ErrInvalidParam, name, raw)
	}
	return &date, nil
}

// RequiredQueryDate как QueryDate, но параметр обязателен
func RequiredQueryDate(r *http.Request, name string) (time.Time, error) {
	date, err := QueryDate(r, name)
	if err != nil {
		return time.Time{}, err
	}
	if date == nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return *date, nil
}

// QueryInt разбирает целое число из query. Пустое значение даёт nil
func QueryInt(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}
	return &v, nil
}

// QueryString возвращает непустое значение параметра или nil
func QueryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}
