package apperr

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return format(e.Message, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// InvalidArgumentError reports a degenerate configuration passed to a pure function.
type InvalidArgumentError struct {
	Argument string
	Message  string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument " + e.Argument + ": " + e.Message
}

func NewInvalidArgument(arg, msg string) *InvalidArgumentError {
	return &InvalidArgumentError{Argument: arg, Message: msg}
}

type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e *NotFoundError) Error() string {
	msg := e.Resource + " not found"
	if e.ID != "" {
		msg += ": " + e.ID
	}
	return format(msg, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func NewNotFoundWrap(resource, id string, err error) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id, Err: err}
}

// ConfigurationError is fatal at construction time and never retried.
type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return "configuration error: " + e.Message
	}
	return "configuration error: " + e.Key + ": " + e.Message
}

func NewConfiguration(key, msg string) *ConfigurationError {
	return &ConfigurationError{Key: key, Message: msg}
}

// ProviderError marks a failed or timed out call to an embedding or generation backend.
type ProviderError struct {
	Provider  string
	Operation string
	Err       error
}

func (e *ProviderError) Error() string {
	return format("generation backend unavailable ("+e.Provider+" "+e.Operation+")", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProvider(provider, operation string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Operation: operation, Err: err}
}

func format(msg string, err error) string {
	if err != nil {
		return msg + ": " + err.Error()
	}
	return msg
}
