package calendar

import "errors"

var (
	// ErrCacheUnavailable возвращается при ошибках Redis
	ErrCacheUnavailable = errors.New("calendar.cache: redis unavailable")

	// ErrDecode возвращается, когда значение в кэше повреждено
	ErrDecode = errors.New("calendar.cache: failed to decode value")
)
