package errors

// ErrorClassification tells callers whether repeating the operation may succeed.
type ErrorClassification string

const (
	// ClassificationRetryable marks transient failures such as a busy device.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent marks failures that repeat on retry, such as a missing file.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// defaultClassifications maps each code to its default classification.
// Every code defaults to permanent; transient I/O conditions are promoted by
// the caller with WithClassification once the cause has been inspected.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeNotFound:      ClassificationPermanent,
	CodeAlreadyExists: ClassificationPermanent,
	CodeInvalidPath:   ClassificationPermanent,
	CodeInvalidInput:  ClassificationPermanent,
	CodeInvalidConfig: ClassificationPermanent,
	CodeInvalidState:  ClassificationPermanent,
	CodeIO:            ClassificationPermanent,
	CodeInternal:      ClassificationPermanent,
	CodeUnknown:       ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error code.
// Unknown codes are permanent.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
