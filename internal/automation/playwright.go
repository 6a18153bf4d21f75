package automation

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightSession drives a real Chromium instance through playwright-go.
type PlaywrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	current *playwrightPage
}

// NewPlaywrightFactory returns a SessionFactory launching Chromium with the
// given headless setting.
func NewPlaywrightFactory(headless bool) SessionFactory {
	return func(ctx context.Context) (Session, error) {
		return StartPlaywright(ctx, headless)
	}
}

// StartPlaywright launches a browser and opens the initial page.
func StartPlaywright(ctx context.Context, headless bool) (*PlaywrightSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	browserCtx, err := browser.NewContext()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("new browser context: %w", err)
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("new page: %w", err)
	}
	return &PlaywrightSession{
		pw:      pw,
		browser: browser,
		context: browserCtx,
		current: &playwrightPage{page: page},
	}, nil
}

func (s *PlaywrightSession) Page() Page { return s.current }

func (s *PlaywrightSession) AdoptNewestPage(ctx context.Context) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Give the portal a moment to finish opening the new tab.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(2 * time.Second):
	}
	pages := s.context.Pages()
	if len(pages) == 0 {
		return nil, fmt.Errorf("no open pages")
	}
	s.current = &playwrightPage{page: pages[len(pages)-1]}
	return s.current, nil
}

func (s *PlaywrightSession) Close() error {
	var firstErr error
	if err := s.context.Close(); err != nil {
		firstErr = err
	}
	if err := s.browser.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := s.pw.Stop(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	})
	return err
}

func (p *playwrightPage) WaitFor(ctx context.Context, xpath string, timeout time.Duration) (Control, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locator := p.page.Locator("xpath=" + xpath).First()
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", xpath, err)
	}
	return &playwrightControl{locator: locator}, nil
}

func (p *playwrightPage) ClickByText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := p.page.Evaluate(`(text) => {
		const el = Array.from(document.querySelectorAll('*')).find(e => e.textContent.trim() === text);
		if (!el) return false;
		el.click();
		return true;
	}`, text)
	if err != nil {
		return err
	}
	if clicked, ok := res.(bool); ok && !clicked {
		return fmt.Errorf("no element with text %q", text)
	}
	return nil
}

func (p *playwrightPage) Texts(ctx context.Context, xpath string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.page.Locator("xpath=" + xpath).AllTextContents()
}

type playwrightControl struct {
	locator playwright.Locator
}

func (c *playwrightControl) ScrollIntoView(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.locator.ScrollIntoViewIfNeeded()
}

// Click goes through script; the portal overlays intercept native clicks.
func (c *playwrightControl) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.locator.Evaluate(`el => el.click()`, nil)
	return err
}

func (c *playwrightControl) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.locator.Evaluate(`el => { el.value = ''; }`, nil)
	return err
}

func (c *playwrightControl) Type(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.locator.PressSequentially(value)
}

func (c *playwrightControl) SetValueWithEvent(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.locator.Evaluate(`(el, value) => {
		el.value = value;
		el.dispatchEvent(new Event('input', { bubbles: true }));
	}`, value)
	return err
}

var (
	_ Session = (*PlaywrightSession)(nil)
	_ Page    = (*playwrightPage)(nil)
	_ Control = (*playwrightControl)(nil)
)
