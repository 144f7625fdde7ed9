package smoke

import "fmt"

// Kind classifies how a check concluded.
type Kind int

const (
	// KindPass means the checked condition held.
	KindPass Kind = iota
	// KindAssertion means the page was reachable but the condition was false.
	KindAssertion
	// KindError means navigation, a locator, an evaluation or the network failed.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindPass:
		return "pass"
	case KindAssertion:
		return "assertion"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText renders the kind by name in JSON reports.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name written by MarshalText, so saved JSON
// reports can be read back.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pass":
		*k = KindPass
	case "assertion":
		*k = KindAssertion
	case "error":
		*k = KindError
	default:
		return fmt.Errorf("unknown result kind %q", text)
	}
	return nil
}

// Result is a single named check outcome.
type Result struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Details string `json:"details,omitempty"`
	Kind    Kind   `json:"kind"`
}

// Check builds a result from a boolean condition.
func Check(name string, passed bool, details string) Result {
	kind := KindPass
	if !passed {
		kind = KindAssertion
	}
	return Result{Name: name, Passed: passed, Details: details, Kind: kind}
}

// Failure records an infrastructure error against name.
func Failure(name string, err error) Result {
	return Result{Name: name, Passed: false, Details: "error: " + err.Error(), Kind: KindError}
}

// Listener receives progress while the suite runs.
type Listener interface {
	Section(title string)
	Result(r Result)
}

// recorder collects the results of one check group and forwards each one
// to the listener as soon as it is produced.
type recorder struct {
	listener Listener
	results  []Result
}

func newRecorder(l Listener) *recorder {
	return &recorder{listener: l}
}

func (r *recorder) add(res Result) {
	r.results = append(r.results, res)
	if r.listener != nil {
		r.listener.Result(res)
	}
}

func (r *recorder) check(name string, passed bool, details string) {
	r.add(Check(name, passed, details))
}

func (r *recorder) fail(name string, err error) {
	r.add(Failure(name, err))
}
