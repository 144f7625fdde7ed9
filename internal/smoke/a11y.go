package smoke

import "fmt"

// CheckAccessibility covers the basics on the login page: a declared
// document language, a label for every input and a keyboard-focusable
// first tab stop.
func CheckAccessibility(p Page, s Suite, l Listener) []Result {
	rec := newRecorder(l)
	if err := checkAccessibility(p, s, rec); err != nil {
		rec.fail("Accessibility", err)
	}
	return rec.results
}

func checkAccessibility(p Page, s Suite, rec *recorder) error {
	if _, err := p.Navigate(s.LoginPath); err != nil {
		return err
	}

	hasLang, err := exists(p, "html[lang]")
	if err != nil {
		return err
	}
	rec.check("A11y - HTML lang attribute", hasLang, "")

	inputs, err := p.Count("input")
	if err != nil {
		return fmt.Errorf("count inputs: %w", err)
	}
	labels, err := p.Count("label")
	if err != nil {
		return fmt.Errorf("count labels: %w", err)
	}
	rec.check("A11y - Form labels", labelsCoverInputs(inputs, labels),
		fmt.Sprintf("inputs=%d, labels=%d", inputs, labels))

	if err := p.Press("Tab"); err != nil {
		return fmt.Errorf("press Tab: %w", err)
	}
	raw, err := p.Evaluate(`() => document.activeElement ? document.activeElement.tagName : ""`)
	if err != nil {
		return fmt.Errorf("read focused element: %w", err)
	}
	focused, _ := raw.(string)
	rec.check("A11y - Keyboard navigation", focused != "" && focused != "BODY",
		"Focused element: "+focused)
	return nil
}

func labelsCoverInputs(inputs, labels int) bool {
	return inputs == 0 || labels >= inputs
}
