// Package browser owns the automation handle used to fetch chapters. It
// exposes narrow interfaces over the driver so adapters and tests never
// touch the underlying library directly.
package browser

import (
	"errors"
	"time"
)

type Options struct {
	Headless    bool
	BlockImages bool
	UserAgent   string
	Timeout     time.Duration
}

// Page is the navigation handle handed to site adapters.
type Page interface {
	Navigate(url string) error
	WaitFor(selector string) error
	ExtractText(selector string) (string, error)
	InnerHTML(selector string) (string, error)
	Content() (string, error)
	Title() (string, error)
	Click(selector string) error
	Scroll(pixels int) error
	Close() error
}

type Provider interface {
	Install() error
	Run() (Runner, error)
}

type Runner interface {
	Launch(opts Options) (Browser, error)
	Stop() error
}

type Browser interface {
	NewPage(opts Options) (Page, error)
	Close() error
}

// Manager owns zero or one live session. A session is a launched browser
// plus a single page; Acquire hands it out, Release tears it down, and
// Recycle does both for the fresh-session policy.
type Manager struct {
	provider  Provider
	opts      Options
	installed bool
	runner    Runner
	browser   Browser
	page      Page
}

func NewManager(opts Options) *Manager {
	return newManager(opts, playwrightProvider{})
}

func newManager(opts Options, provider Provider) *Manager {
	if opts.Timeout == 0 {
		opts.Timeout = 45 * time.Second
	}
	return &Manager{provider: provider, opts: opts}
}

// Acquire launches a session and returns its page. Only one consumer may
// hold the session at a time; a second Acquire without a Release fails.
func (m *Manager) Acquire() (Page, error) {
	if m.page != nil {
		return nil, errors.New("browser session already in use")
	}
	if !m.installed {
		if err := m.provider.Install(); err != nil {
			return nil, err
		}
		m.installed = true
	}
	if m.runner == nil {
		runner, err := m.provider.Run()
		if err != nil {
			return nil, err
		}
		m.runner = runner
	}

	browser, err := m.runner.Launch(m.opts)
	if err != nil {
		return nil, err
	}
	page, err := browser.NewPage(m.opts)
	if err != nil {
		_ = browser.Close()
		return nil, err
	}
	m.browser = browser
	m.page = page
	return page, nil
}

// Release closes the current session. Safe to call when none is active.
func (m *Manager) Release() {
	if m.page != nil {
		_ = m.page.Close()
		m.page = nil
	}
	if m.browser != nil {
		_ = m.browser.Close()
		m.browser = nil
	}
}

// Recycle discards the current session and hands out a fresh one.
func (m *Manager) Recycle() (Page, error) {
	m.Release()
	return m.Acquire()
}

// Close releases the session and stops the driver.
func (m *Manager) Close() {
	m.Release()
	if m.runner != nil {
		_ = m.runner.Stop()
		m.runner = nil
	}
}
