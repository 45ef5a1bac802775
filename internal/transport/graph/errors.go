package graph

// 稳定错误码，随 GraphQL 响应的 extensions.code 下发，客户端不必解析 message
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidInput    = "INVALID_INPUT"
)

// OpError 实现 gqlerrors.ExtendedError
type OpError struct {
	Code    string
	Message string
}

func (e *OpError) Error() string { return e.Message }

func (e *OpError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

var (
	ErrUnauthenticated = &OpError{Code: CodeUnauthenticated, Message: "not authenticated"}
	ErrForbidden       = &OpError{Code: CodeForbidden, Message: "admin role required"}
)

func notFound(msg string) *OpError     { return &OpError{Code: CodeNotFound, Message: msg} }
func invalidInput(msg string) *OpError { return &OpError{Code: CodeInvalidInput, Message: msg} }
