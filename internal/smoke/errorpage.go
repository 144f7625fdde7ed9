package smoke

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
)

// CheckErrorPage requests a path that does not exist and expects either a
// not-found page or a bounce to login. The page is captured either way.
func CheckErrorPage(p Page, s Suite, l Listener) []Result {
	rec := newRecorder(l)
	if err := checkErrorPage(p, s, rec); err != nil {
		rec.fail("Error Pages", err)
	}
	return rec.results
}

func checkErrorPage(p Page, s Suite, rec *recorder) (err error) {
	url, err := p.Navigate(s.NotFoundPath)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, p.Screenshot("test-404.png"))
	}()

	content, err := p.Content()
	if err != nil {
		return err
	}

	found := strings.Contains(url, s.LoginPath) || containsAny(content, s.NotFoundMarkers)
	rec.check("Error Page - 404", found, "URL: "+url)
	return nil
}

// containsAny reports whether any marker occurs in text, ignoring case.
// Folding handles accented Spanish copy such as "Página no encontrada".
func containsAny(text string, markers []string) bool {
	fold := cases.Fold()
	folded := fold.String(text)
	for _, marker := range markers {
		if marker != "" && strings.Contains(folded, fold.String(marker)) {
			return true
		}
	}
	return false
}
