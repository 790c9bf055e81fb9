// Package browser opens WhatsApp deep links in a visible browser, for
// front-desk machines where the service replaces the old site's
// window.open behavior.
package browser

import (
	"log"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

type Opener struct {
	b *rod.Browser
}

func New() (*Opener, error) {
	u, err := launcher.New().
		Headless(false).
		Leakless(false).
		Launch()
	if err != nil {
		return nil, err
	}
	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, err
	}
	return &Opener{b: b}, nil
}

// Open navigates a new page to the link. Errors are logged and dropped;
// the channel is best-effort by contract.
func (o *Opener) Open(url string) {
	if _, err := o.b.Page(proto.TargetCreateTarget{URL: url}); err != nil {
		log.Printf("browser: open %s: %v", url, err)
	}
}

func (o *Opener) Close() error { return o.b.Close() }
