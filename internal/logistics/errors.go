package logistics

import "fmt"

// Kind classifies why the remote dataset could not be loaded.
type Kind int

const (
	// KindNetwork covers DNS, connection and timeout failures.
	KindNetwork Kind = iota + 1
	// KindStatus is a non-2xx HTTP response.
	KindStatus
	// KindParse means the body was not a usable orders CSV.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// LoadError describes a failed load of the orders dataset.
type LoadError struct {
	Kind       Kind   `json:"kind"`
	URL        string `json:"url"`
	StatusCode int    `json:"status_code,omitempty"`
	Err        error  `json:"-"`
}

func (e *LoadError) Error() string {
	if e == nil {
		return "load failed"
	}
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("orders dataset at %s returned HTTP %d", e.URL, e.StatusCode)
	case KindNetwork:
		return fmt.Sprintf("orders dataset unreachable at %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("orders dataset at %s: %s error: %v", e.URL, e.Kind, e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// Message is the user-facing banner text for the failure.
func (e *LoadError) Message() string {
	return fmt.Sprintf("Erro ao conectar no GitHub da Olist: %s", e.Error())
}
