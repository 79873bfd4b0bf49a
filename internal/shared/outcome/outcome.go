package outcome

// Result is the verdict of an authorization or validation step.
// A Result is immutable once built; use Success or Failure to create one.
type Result struct {
	ok     bool
	reason string
	code   string
}

// Success returns a passing result with no payload.
func Success() Result {
	return Result{ok: true}
}

// Failure returns a failing result with a human readable reason and an
// optional machine readable code.
func Failure(reason string, code ...string) Result {
	r := Result{reason: reason}
	if len(code) > 0 {
		r.code = code[0]
	}
	return r
}

func (r Result) OK() bool {
	return r.ok
}

func (r Result) Reason() string {
	return r.reason
}

func (r Result) Code() string {
	return r.code
}

// String is used in logs only.
func (r Result) String() string {
	if r.ok {
		return "success"
	}
	if r.code == "" {
		return "failure: " + r.reason
	}
	return "failure[" + r.code + "]: " + r.reason
}
