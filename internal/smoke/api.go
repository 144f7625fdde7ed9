package smoke

import "fmt"

// CheckAPIEndpoints issues an unauthenticated GET to each endpoint and
// accepts only the configured statuses.
func CheckAPIEndpoints(p Page, s Suite, l Listener) []Result {
	rec := newRecorder(l)
	for _, endpoint := range s.APIEndpoints {
		name := "API " + endpoint
		status, err := p.Get(endpoint)
		if err != nil {
			rec.fail(name, err)
			continue
		}
		rec.check(name, s.statusAccepted(status), fmt.Sprintf("Status: %d", status))
	}
	return rec.results
}
