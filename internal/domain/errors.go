package domain

// Error 业务错误：Status 直接对应 HTTP 状态码，Message 对外可见。
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "service error"
}

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(msg string) *Error { return &Error{Status: 400, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Status: 404, Message: msg} }

// Conflict 唯一约束冲突。对外同样走 400（沿用既有契约，不是 409）。
func Conflict(msg string) *Error { return &Error{Status: 400, Message: msg} }
