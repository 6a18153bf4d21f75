package automation

import (
	"context"
	"fmt"
	"time"
)

// quickTimeout bounds the first locator strategy before falling back to the
// next one.
const quickTimeout = 2 * time.Second

func (d *Driver) settle(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d.cfg.SettleDelay):
		return nil
	}
}

// prepare scrolls the control into view and waits for scrolling to finish.
func (d *Driver) prepare(ctx context.Context, control Control) error {
	if err := control.ScrollIntoView(ctx); err != nil {
		return err
	}
	return d.settle(ctx)
}

// clickRadio clicks the radio whose label text matches exactly.
func (d *Driver) clickRadio(ctx context.Context, page Page, optionText string) error {
	control, err := page.WaitFor(ctx, radioLabelXPath(optionText), d.cfg.StepTimeout)
	if err != nil {
		return err
	}
	if err := d.prepare(ctx, control); err != nil {
		return err
	}
	return control.Click(ctx)
}

// fillInput writes value into the input following the given label. Empty
// values are skipped, never cleared. The plain-input strategy is tried
// first; date-widget markup is the fallback.
func (d *Driver) fillInput(ctx context.Context, page Page, labelText, value string) error {
	if value == "" {
		return nil
	}
	control, err := page.WaitFor(ctx, simpleInputXPath(labelText), quickTimeout)
	if err != nil {
		control, err = page.WaitFor(ctx, dateInputXPath(labelText), d.cfg.StepTimeout)
		if err != nil {
			return err
		}
	}
	if err := d.prepare(ctx, control); err != nil {
		return err
	}
	if err := control.Clear(ctx); err != nil {
		return err
	}
	return control.Type(ctx, value)
}

// fillDate writes value into a date widget by setting it directly and
// dispatching an input event; the widget rejects synthetic keystrokes.
func (d *Driver) fillDate(ctx context.Context, page Page, labelText, value string) error {
	if value == "" {
		return nil
	}
	control, err := page.WaitFor(ctx, dateInputXPath(labelText), d.cfg.StepTimeout)
	if err != nil {
		return err
	}
	if err := d.prepare(ctx, control); err != nil {
		return err
	}
	return control.SetValueWithEvent(ctx, value)
}

// selectDropdown opens the custom dropdown for the label and picks the
// option. If the literal option text cannot be located, a folded variant is
// tried before giving up.
func (d *Driver) selectDropdown(ctx context.Context, page Page, labelText, optionText string) error {
	if optionText == "" {
		return nil
	}
	opener, err := page.WaitFor(ctx, dropdownOpenerXPath(labelText), d.cfg.StepTimeout)
	if err != nil {
		return err
	}
	if err := d.prepare(ctx, opener); err != nil {
		return err
	}
	if err := opener.Click(ctx); err != nil {
		return err
	}

	if _, err := page.WaitFor(ctx, dropdownListXPath, 5*time.Second); err != nil {
		return err
	}

	option, err := page.WaitFor(ctx, dropdownOptionXPath(optionText), d.cfg.StepTimeout)
	if err != nil {
		option, err = d.matchOptionByFold(ctx, page, optionText)
		if err != nil {
			return err
		}
	}
	return option.Click(ctx)
}

// matchOptionByFold compares the rendered option texts against the target
// after case and diacritic folding. XPath text matching is case-sensitive,
// so the comparison has to happen here, not in the locator string.
func (d *Driver) matchOptionByFold(ctx context.Context, page Page, optionText string) (Control, error) {
	texts, err := page.Texts(ctx, dropdownItemsXPath)
	if err != nil {
		return nil, err
	}
	want := foldText(optionText)
	for i, text := range texts {
		if foldText(text) == want {
			return page.WaitFor(ctx, dropdownItemAtXPath(i+1), quickTimeout)
		}
	}
	return nil, fmt.Errorf("no option matching %q among %d rendered", optionText, len(texts))
}
