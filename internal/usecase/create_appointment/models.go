package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	ProviderID   string    // ID провайдера
	ClientID     string    // ID клиента (из заголовка X-User-ID)
	StartTime    time.Time // Время начала
	ServiceNames []string  // Названия выбранных услуг

	// Итоги, которые видел клиент (опционально, сверяются с каталогом)
	ExpectedDuration *int
	ExpectedPrice    *float64

	ProviderName *string // Имя провайдера для истории (опционально)
	ClientName   *string // Имя клиента для истории (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID             string
	ProviderID     string
	ClientID       string
	StartTime      time.Time
	EndTime        time.Time
	Services       []domain.ServiceCatalogEntry
	TotalDuration  int
	TotalPrice     float64
	Status         domain.AppointmentStatus
	CompletionCode string // Код видит только клиент, он передаёт его провайдеру после оказания услуги
	ProviderName   *string
	ClientName     *string
	CreatedAt      time.Time
}
