package service

// User-facing messages.
const (
	MsgCreated          = "Evento creado correctamente."
	MsgRegistered       = "Registro exitoso."
	MsgDuplicateTitle   = "Ya existe un evento con ese título."
	MsgInvalidDateTime  = "Formato de fecha/hora inválido."
	MsgEventFull        = "Evento lleno."
	MsgEventNotFound    = "Evento no encontrado."
	MsgInvalidForm      = "Revisa los datos del formulario."
	MsgInvalidRequest   = "Solicitud inválida."
	MsgInternalError    = "Ocurrió un error inesperado."
	MsgTooManyRequests  = "Demasiadas solicitudes, intenta más tarde."
	MsgCSRFTokenInvalid = "Token CSRF inválido."
	MsgMarkupNotAllowed = "No se permite HTML en este campo."
)
