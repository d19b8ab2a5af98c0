package subgraph

import "fmt"

// TransportError is returned when the subgraph answers with a status other than 200
type TransportError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("subgraph query to %s failed with status code %d", e.URL, e.StatusCode)
}

// DecodeError is returned when a response body is not a JSON object or when
// a field under data has an unexpected shape
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("failed to decode subgraph response: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode subgraph field %q: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
