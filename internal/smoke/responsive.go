package smoke

const formSelector = `form, [role="form"]`

// CheckResponsiveDesign renders the login page at each viewport and expects
// the login form to stay visible.
func CheckResponsiveDesign(p Page, s Suite, l Listener) []Result {
	rec := newRecorder(l)
	for _, vp := range s.Viewports {
		visible, err := checkViewport(p, s, vp)
		if err != nil {
			rec.fail("Responsive - "+vp.Name, err)
			continue
		}
		if visible {
			rec.check("Responsive - "+vp.Label(), true, "Form visible")
		} else {
			rec.check("Responsive - "+vp.Label(), false, "Form not visible")
		}
	}
	return rec.results
}

func checkViewport(p Page, s Suite, vp Viewport) (bool, error) {
	if err := p.SetViewport(vp.Width, vp.Height); err != nil {
		return false, err
	}
	if _, err := p.Navigate(s.LoginPath); err != nil {
		return false, err
	}
	if err := p.Screenshot(vp.ScreenshotName()); err != nil {
		return false, err
	}
	return p.FirstVisible(formSelector)
}
