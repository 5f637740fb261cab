package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// maxBodySize ограничение размера тела запроса
const maxBodySize = 1 << 20

const (
	msgInternalError    = "внутренняя ошибка сервера"
	msgStoreUnavailable = "хранилище временно недоступно, повторите запрос позже"
)

var validate = newValidator()

// newValidator называет поля в ошибках по json тегам
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON пишет ответ в формате JSON
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondUnprocessableEntity 422
func RespondUnprocessableEntity(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, message)
}

// RespondTooManyRequests 429
func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondServiceError отвечает на ошибку, не разобранную обработчиком, по её категории.
// Недоступность хранилища - 503, остальное - 500.
func RespondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		RespondBadRequest(w, err.Error())
	case errors.Is(err, domain.ErrCapacityExceeded):
		RespondUnprocessableEntity(w, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		RespondNotFound(w, err.Error())
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrPreconditionFailed):
		RespondConflict(w, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		w.Header().Set("Retry-After", "1")
		RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)
	default:
		RespondInternalError(w)
	}
}

// DecodeJSON читает тело запроса в dst и проверяет теги validate
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}

	return Validate(dst)
}

// Validate проверяет структуру по тегам validate
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validate body: %w", err)
	}
	return nil
}

// BodyErrorMessage возвращает причину отказа для ошибки DecodeJSON.
// Для нарушенного тега validate называет поле и правило, иначе возвращает fallback.
func BodyErrorMessage(err error, fallback string) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return fallback
	}

	fe := validationErrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("поле %s: нарушено правило %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("поле %s: нарушено правило %s", fe.Field(), fe.Tag())
}
