package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

type playwrightProvider struct{}

func (playwrightProvider) Install() error {
	return playwright.Install(&playwright.RunOptions{})
}

func (playwrightProvider) Run() (Runner, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}
	return &playwrightRunner{pw: pw}, nil
}

type playwrightRunner struct {
	pw *playwright.Playwright
}

func (r *playwrightRunner) Launch(opts Options) (Browser, error) {
	browser, err := r.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     []string{"--disable-blink-features=AutomationControlled"},
	})
	if err != nil {
		return nil, err
	}
	return &playwrightBrowser{browser: browser}, nil
}

func (r *playwrightRunner) Stop() error {
	return r.pw.Stop()
}

type playwrightBrowser struct {
	browser playwright.Browser
}

func (b *playwrightBrowser) NewPage(opts Options) (Page, error) {
	pageOpts := playwright.BrowserNewPageOptions{}
	if opts.UserAgent != "" {
		pageOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	page, err := b.browser.NewPage(pageOpts)
	if err != nil {
		return nil, err
	}
	if opts.BlockImages {
		if err := page.Route("**/*", blockImageRoute); err != nil {
			_ = page.Close()
			return nil, err
		}
	}
	return &playwrightPage{page: page, timeout: float64(opts.Timeout.Milliseconds())}, nil
}

func (b *playwrightBrowser) Close() error {
	return b.browser.Close()
}

func blockImageRoute(route playwright.Route) {
	switch route.Request().ResourceType() {
	case "image", "media", "font":
		_ = route.Abort()
	default:
		_ = route.Continue()
	}
}

type playwrightPage struct {
	page    playwright.Page
	timeout float64
}

func (p *playwrightPage) Navigate(url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(p.timeout),
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})
	return err
}

func (p *playwrightPage) WaitFor(selector string) error {
	return p.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(p.timeout),
	})
}

func (p *playwrightPage) ExtractText(selector string) (string, error) {
	return p.page.Locator(selector).First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(p.timeout),
	})
}

func (p *playwrightPage) InnerHTML(selector string) (string, error) {
	return p.page.Locator(selector).First().InnerHTML(playwright.LocatorInnerHTMLOptions{
		Timeout: playwright.Float(p.timeout),
	})
}

func (p *playwrightPage) Content() (string, error) {
	return p.page.Content()
}

func (p *playwrightPage) Title() (string, error) {
	return p.page.Title()
}

func (p *playwrightPage) Click(selector string) error {
	return p.page.Locator(selector).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(p.timeout),
	})
}

func (p *playwrightPage) Scroll(pixels int) error {
	_, err := p.page.Evaluate(fmt.Sprintf("window.scrollBy(0, %d)", pixels))
	return err
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}
