package errors

// ErrorCode identifies an error category across the application
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_INPUT
	ErrorCode_NOT_FOUND
	ErrorCode_TRANSCRIPTION_FAILED
	ErrorCode_SUMMARIZATION_FAILED
	ErrorCode_STORAGE_FAILED
	ErrorCode_SERVICE_NOT_CONFIGURED
	ErrorCode_HTTP_OK
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:            "UNSPECIFIED",
	ErrorCode_INTERNAL:               "INTERNAL",
	ErrorCode_INVALID_INPUT:          "INVALID_INPUT",
	ErrorCode_NOT_FOUND:              "NOT_FOUND",
	ErrorCode_TRANSCRIPTION_FAILED:   "TRANSCRIPTION_FAILED",
	ErrorCode_SUMMARIZATION_FAILED:   "SUMMARIZATION_FAILED",
	ErrorCode_STORAGE_FAILED:         "STORAGE_FAILED",
	ErrorCode_SERVICE_NOT_CONFIGURED: "SERVICE_NOT_CONFIGURED",
	ErrorCode_HTTP_OK:                "OK",
}

// String returns the canonical name for the error code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
