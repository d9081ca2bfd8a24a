package apperror

type Kind string

var (
	InvalidInput   Kind = "invalid_input"
	NotFound       Kind = "not_found"
	Unauthorised   Kind = "unauthorised"
	Forbidden      Kind = "forbidden"
	RateLimited    Kind = "rate_limited"
	RequestTimeout Kind = "request_timeout"
	Internal       Kind = "internal"
	Dependency     Kind = "dependency_failure"
)
