package response

// Response is the standard API envelope
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorData  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorData carries error details inside the envelope
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Meta carries pagination metadata
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Success wraps data in a successful envelope
func Success(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// Paginated wraps a list in a successful envelope with pagination metadata
func Paginated(data interface{}, page, limit int, total int64) Response {
	return Response{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	}
}

// Error builds an error envelope
func Error(code, message, details string) Response {
	return Response{
		Success: false,
		Error: &ErrorData{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// BadRequest builds a 400 envelope
func BadRequest(message string) Response {
	return Error("BAD_REQUEST", message, "")
}

// NotFound builds a 404 envelope
func NotFound(message string) Response {
	return Error("NOT_FOUND", message, "")
}

// Unauthorized builds a 401 envelope
func Unauthorized(message string) Response {
	return Error("UNAUTHORIZED", message, "")
}

// Forbidden builds a 403 envelope
func Forbidden(message string) Response {
	return Error("FORBIDDEN", message, "")
}

// UnprocessableEntity builds a 422 envelope
func UnprocessableEntity(message string) Response {
	return Error("UNPROCESSABLE_ENTITY", message, "")
}

// InternalError builds a 500 envelope
func InternalError(message string) Response {
	return Error("INTERNAL_ERROR", message, "")
}
