package smoke

// CheckProtectedRoutes visits every protected route without a session and
// expects each one to land on a login URL. Routes are checked independently.
func CheckProtectedRoutes(p Page, s Suite, l Listener) []Result {
	rec := newRecorder(l)
	for _, route := range s.ProtectedRoutes {
		name := "Protected Route " + route
		url, err := p.Navigate(route)
		if err != nil {
			rec.fail(name, err)
			continue
		}
		if s.isLoginURL(url) {
			rec.check(name, true, "Redirected to "+url)
		} else {
			rec.check(name, false, "No redirect, stayed at "+url)
		}
	}
	return rec.results
}
