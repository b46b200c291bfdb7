package errors

import (
	"encoding/json"
)

// ErrorResponse is the flat JSON form of an error.
// The cause chain is left out; it may contain absolute host paths.
type ErrorResponse struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Classification string                 `json:"classification"`
	Context        map[string]interface{} `json:"context,omitempty"`
}

// ToJSON converts any error to an ErrorResponse. Returns nil if err is nil.
//
// Plain errors become CodeUnknown with their Error() text as the message.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	response := &ErrorResponse{
		Code:           string(GetCode(err)),
		Message:        err.Error(),
		Classification: string(GetClassification(err)),
	}

	var platformErr PlatformError
	if As(err, &platformErr) {
		response.Message = platformErr.Message()
		response.Context = platformErr.Context()
	}
	return response
}

// MarshalJSON lets a PlatformError be passed straight to json.Marshal.
func (e *platformError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(&ErrorResponse{
		Code:           string(e.code),
		Message:        e.message,
		Classification: string(e.classification),
		Context:        e.context,
	})
	if err != nil {
		return nil, &platformError{
			code:           CodeInternal,
			classification: ClassificationPermanent,
			message:        "failed to marshal error response",
			cause:          err,
		}
	}
	return data, nil
}
