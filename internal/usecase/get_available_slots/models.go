package get_available_slots

import "time"

// Request модель запроса на получение доступных времён начала
type Request struct {
	ProviderID string    // ID провайдера
	Date       time.Time // Дата (время суток игнорируется)
}

// Response модель ответа со списком доступных времён начала
type Response struct {
	Date       time.Time   // Дата, на которую запрашивались слоты
	ProviderID string      // ID провайдера
	Slots      []time.Time // Времена начала по возрастанию
}
