package browser

import (
	"errors"
	"testing"
	"time"
)

type fakeProvider struct {
	installErr error
	runErr     error
	installs   int
	runner     *fakeRunner
}

func (p *fakeProvider) Install() error {
	p.installs++
	return p.installErr
}

func (p *fakeProvider) Run() (Runner, error) {
	if p.runErr != nil {
		return nil, p.runErr
	}
	if p.runner == nil {
		p.runner = &fakeRunner{}
	}
	return p.runner, nil
}

type fakeRunner struct {
	launchErr error
	launches  int
	browsers  []*fakeBrowser
	stopped   bool
}

func (r *fakeRunner) Launch(opts Options) (Browser, error) {
	if r.launchErr != nil {
		return nil, r.launchErr
	}
	r.launches++
	b := &fakeBrowser{opts: opts}
	r.browsers = append(r.browsers, b)
	return b, nil
}

func (r *fakeRunner) Stop() error {
	r.stopped = true
	return nil
}

type fakeBrowser struct {
	opts       Options
	newPageErr error
	page       *fakePage
	closed     bool
}

func (b *fakeBrowser) NewPage(opts Options) (Page, error) {
	if b.newPageErr != nil {
		return nil, b.newPageErr
	}
	b.page = &fakePage{}
	return b.page, nil
}

func (b *fakeBrowser) Close() error {
	b.closed = true
	return nil
}

type fakePage struct {
	closed bool
}

func (p *fakePage) Navigate(string) error                 { return nil }
func (p *fakePage) WaitFor(string) error                  { return nil }
func (p *fakePage) ExtractText(string) (string, error)    { return "", nil }
func (p *fakePage) InnerHTML(string) (string, error)      { return "", nil }
func (p *fakePage) Content() (string, error)              { return "", nil }
func (p *fakePage) Title() (string, error)                { return "", nil }
func (p *fakePage) Click(string) error                    { return nil }
func (p *fakePage) Scroll(int) error                      { return nil }
func (p *fakePage) Close() error                          { p.closed = true; return nil }

func TestManagerAcquireRelease(t *testing.T) {
	provider := &fakeProvider{}
	m := newManager(Options{Timeout: time.Second}, provider)

	page, err := m.Acquire()
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if page == nil {
		t.Fatal("expected page")
	}

	m.Release()
	if !provider.runner.browsers[0].closed {
		t.Fatal("browser not closed on release")
	}
	if !provider.runner.browsers[0].page.closed {
		t.Fatal("page not closed on release")
	}
}

func TestManagerExclusiveOwnership(t *testing.T) {
	m := newManager(Options{}, &fakeProvider{})
	if _, err := m.Acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := m.Acquire(); err == nil {
		t.Fatal("expected second acquire to fail while session in use")
	}
}

func TestManagerRecycle(t *testing.T) {
	provider := &fakeProvider{}
	m := newManager(Options{}, provider)

	if _, err := m.Acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := m.Recycle(); err != nil {
		t.Fatalf("recycle: %v", err)
	}
	if provider.runner.launches != 2 {
		t.Fatalf("expected 2 launches, got %d", provider.runner.launches)
	}
	if !provider.runner.browsers[0].closed {
		t.Fatal("first browser not closed by recycle")
	}
	if provider.runner.browsers[1].closed {
		t.Fatal("second browser should still be open")
	}
	if provider.installs != 1 {
		t.Fatalf("install ran %d times", provider.installs)
	}
}

func TestManagerClose(t *testing.T) {
	provider := &fakeProvider{}
	m := newManager(Options{}, provider)
	if _, err := m.Acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	m.Close()
	if !provider.runner.stopped {
		t.Fatal("runner not stopped")
	}
	if !provider.runner.browsers[0].closed {
		t.Fatal("browser not closed")
	}
}

func TestManagerInstallError(t *testing.T) {
	m := newManager(Options{}, &fakeProvider{installErr: errors.New("no driver")})
	if _, err := m.Acquire(); err == nil {
		t.Fatal("expected install error")
	}
}

func TestManagerNewPageErrorClosesBrowser(t *testing.T) {
	provider := &pageFailProvider{}
	m := newManager(Options{}, provider)
	if _, err := m.Acquire(); err == nil {
		t.Fatal("expected page error")
	}
	if !provider.browser.closed {
		t.Fatal("browser left open after page failure")
	}
}

type pageFailProvider struct {
	browser *fakeBrowser
}

func (p *pageFailProvider) Install() error { return nil }

func (p *pageFailProvider) Run() (Runner, error) {
	p.browser = &fakeBrowser{newPageErr: errors.New("page")}
	return &singleBrowserRunner{browser: p.browser}, nil
}

type singleBrowserRunner struct {
	browser *fakeBrowser
}

func (r *singleBrowserRunner) Launch(Options) (Browser, error) { return r.browser, nil }
func (r *singleBrowserRunner) Stop() error                     { return nil }
