package dto

// MessageResponse cuerpo genérico {status, message}.
type MessageResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ValidationErrorResponse errores de validación itemizados por campo.
type ValidationErrorResponse struct {
	Status int      `json:"status"`
	Errors []string `json:"errors"`
}

// GateErrorResponse rechazo del middleware de autenticación (cabecera o token ilegible/expirado).
type GateErrorResponse struct {
	Error string `json:"error"`
}

// SecurityErrorResponse cuerpo de 401 (sin autenticación) y 403 (rol insuficiente).
type SecurityErrorResponse struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}
