package entity

import "time"

// InvocationRecord é uma linha de log de uma execução anterior do relatório.
type InvocationRecord struct {
	Timestamp time.Time `json:"timestamp"`
	LogStream string    `json:"log_stream"`
	Message   string    `json:"message"`
	Success   bool      `json:"success"`
}
