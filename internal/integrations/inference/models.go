package inference

// ParsedAppointment структурированный результат разбора текста записи
// Данные недоверенные: имена услуг и профессионала проверяются по каталогам вызывающим
type ParsedAppointment struct {
	ClientName       string   `json:"clientName"`
	Services         []string `json:"services"`
	ProfessionalName *string  `json:"professionalName,omitempty"`
	Date             string   `json:"date"` // YYYY-MM-DD
	Time             string   `json:"time"` // HH:MM
}

// PaymentValue сумма, распознанная на изображении подтверждения оплаты
type PaymentValue struct {
	Value float64 `json:"value"`
}

type parseRequest struct {
	Text string `json:"text"`
}

// ErrorResponse модель ошибки от сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
