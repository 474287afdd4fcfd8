package handler

// Login-page error codes. Query parameters on /login are display-only
// and map through this fixed table; unknown codes show nothing.
const (
	CodeInvalidTicket   = "invalid_ticket"
	CodeCASUnavailable  = "cas_unavailable"
	CodeLoginProcessing = "login_processing"
	CodeLogoutError     = "logout_error"
	CodeSessionExpired  = "session_expired"
)

var errorMessages = map[string]string{
	CodeInvalidTicket:   "El ticket de autenticación no es válido o ya fue utilizado",
	CodeCASUnavailable:  "No fue posible conectar con el servidor CAS",
	CodeLoginProcessing: "Ocurrió un error al procesar el inicio de sesión",
	CodeLogoutError:     "Ocurrió un error al cerrar la sesión",
	CodeSessionExpired:  "La sesión ha expirado, inicie sesión nuevamente",
}

var infoMessages = map[string]string{
	"logout_success": "Sesión cerrada correctamente",
}
