package probe

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        `validate:"required,http_url"` // Base URL of the service
	Workers int           `validate:"gt=0"`              // Number of concurrent workers
	Rounds  int           `validate:"gt=0"`              // Times every case is sent
	Timeout time.Duration `validate:"gt=0"`              // HTTP request timeout
	Verbose bool          // Log every passing case too
}

// Case is one request and the response it must produce.
type Case struct {
	Name        string
	Method      string
	Path        string
	WantStatus  int
	WantMessage string // compared to {"message"} when set
	WantDetail  string // compared to {"detail"} when set
	WantFields  int    // number of validation failures when WantStatus is 422
}

// Failure records a case that did not produce its expected response.
type Failure struct {
	Case   string
	Reason string
}

// Stats holds run statistics.
type Stats struct {
	RunID     string
	Sent      int
	Passed    int
	Failed    int
	Failures  []Failure
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
