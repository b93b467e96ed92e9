package downloader

import (
	"context"
	"sync"
)

// Serves bodies from memory instead of the network. Useful as a
// stand-in for the upstream service.
type Memory struct {
	mutex    sync.Mutex
	bodies   map[string][]byte
	errs     map[string]error
	requests []string
}

func NewMemory() *Memory {
	return &Memory{
		bodies: map[string][]byte{},
		errs:   map[string]error{},
	}
}

// Sets the body returned for url.
func (d *Memory) Set(url string, body []byte) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.bodies[url] = body
}

// Makes requests for url fail with err.
func (d *Memory) Fail(url string, err error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.errs[url] = err
}

// URLs requested so far, in order.
func (d *Memory) Requests() []string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return append([]string{}, d.requests...)
}

func (d *Memory) Get(
	ctx context.Context,
	url string,
	headers map[string]string,
	options GetOptions,
) ([]byte, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.requests = append(d.requests, url)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, found := d.errs[url]; found {
		return nil, err
	}
	body, found := d.bodies[url]
	if !found {
		return nil, &StatusError{StatusCode: 404}
	}

	if options.MaxSize > 0 && len(body) > options.MaxSize {
		return nil, &SizeError{MaxSize: options.MaxSize}
	}

	return body, nil
}
