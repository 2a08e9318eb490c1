package clock

import "time"

// Provider источник текущего времени (подменяется в тестах)
type Provider interface {
	Now() time.Time
}

// Real реальный провайдер времени для production
type Real struct{}

// Now возвращает текущее время
func (Real) Now() time.Time {
	return time.Now()
}

// Fixed провайдер, всегда возвращающий одно и то же время
type Fixed time.Time

// Now возвращает зафиксированное время
func (f Fixed) Now() time.Time {
	return time.Time(f)
}
