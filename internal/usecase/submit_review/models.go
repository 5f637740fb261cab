package submit_review

import "time"

// Request модель запроса на отзыв
type Request struct {
	AppointmentID string  // ID записи
	ClientID      string  // ID клиента (из заголовка X-User-ID)
	Rating        int     // Оценка 1..5
	Comment       *string // Комментарий (опционально)
	ClientName    *string // Имя клиента (опционально, по умолчанию из записи)
}

// Response модель ответа с созданным отзывом
type Response struct {
	ID            string
	AppointmentID string
	ProviderID    string
	ClientID      string
	Rating        int
	Comment       *string
	ClientName    *string
	CreatedAt     time.Time
}
