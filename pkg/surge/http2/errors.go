package http2

import "fmt"

// Error codes (RFC 7540 §7)
const (
	ErrCodeNo                 ErrorCode = 0x0
	ErrCodeProtocol           ErrorCode = 0x1
	ErrCodeInternal           ErrorCode = 0x2
	ErrCodeFlowControl        ErrorCode = 0x3
	ErrCodeSettingsTimeout    ErrorCode = 0x4
	ErrCodeStreamClosed       ErrorCode = 0x5
	ErrCodeFrameSize          ErrorCode = 0x6
	ErrCodeRefusedStream      ErrorCode = 0x7
	ErrCodeCancel             ErrorCode = 0x8
	ErrCodeCompression        ErrorCode = 0x9
	ErrCodeConnect            ErrorCode = 0xa
	ErrCodeEnhanceYourCalm    ErrorCode = 0xb
	ErrCodeInadequateSecurity ErrorCode = 0xc
	ErrCodeHTTP11Required     ErrorCode = 0xd
)

// ErrorCode represents an HTTP/2 error code
type ErrorCode uint32

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case ErrCodeNo:
		return "NO_ERROR"
	case ErrCodeProtocol:
		return "PROTOCOL_ERROR"
	case ErrCodeInternal:
		return "INTERNAL_ERROR"
	case ErrCodeFlowControl:
		return "FLOW_CONTROL_ERROR"
	case ErrCodeSettingsTimeout:
		return "SETTINGS_TIMEOUT"
	case ErrCodeStreamClosed:
		return "STREAM_CLOSED"
	case ErrCodeFrameSize:
		return "FRAME_SIZE_ERROR"
	case ErrCodeRefusedStream:
		return "REFUSED_STREAM"
	case ErrCodeCancel:
		return "CANCEL"
	case ErrCodeCompression:
		return "COMPRESSION_ERROR"
	case ErrCodeConnect:
		return "CONNECT_ERROR"
	case ErrCodeEnhanceYourCalm:
		return "ENHANCE_YOUR_CALM"
	case ErrCodeInadequateSecurity:
		return "INADEQUATE_SECURITY"
	case ErrCodeHTTP11Required:
		return "HTTP_1_1_REQUIRED"
	default:
		return "UNKNOWN_ERROR"
	}
}

// CodecError is a fatal header block error. It carries the HTTP/2
// error code the caller should use when translating the failure into
// a stream RST or connection GOAWAY. The codec never retries; every
// violation is raised at the point it is detected.
type CodecError struct {
	Code ErrorCode
	Msg  string
}

func (e *CodecError) Error() string {
	return "http2: " + e.Code.String() + ": " + e.Msg
}

func protocolError(format string, args ...any) *CodecError {
	return &CodecError{Code: ErrCodeProtocol, Msg: fmt.Sprintf(format, args...)}
}

func compressionError(format string, args ...any) *CodecError {
	return &CodecError{Code: ErrCodeCompression, Msg: fmt.Sprintf(format, args...)}
}
