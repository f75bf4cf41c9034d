// file: internals/shell/cache/store.go
package cache

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("cache: entri tidak ditemukan")

// Request: permintaan fetch yang diintersepsi worker.
type Request struct {
	URL      string
	Navigate bool // top-level page load
}

// Response: hasil fetch / isi cache. Opaque = respons lintas origin
// yang tidak bisa dibaca; tetap boleh disimpan dan disajikan ulang.
type Response struct {
	URL    string
	Status int
	Header map[string]string
	Body   []byte
	Opaque bool
}

func (r *Response) OK() bool { return r != nil && r.Status >= 200 && r.Status < 300 }

// Clone: salinan untuk disimpan; body respons hanya boleh dipakai sekali
// oleh pemanggil, cache menyimpan salinannya sendiri.
func (r *Response) Clone() *Response {
	cp := *r
	cp.Body = append([]byte(nil), r.Body...)
	if r.Header != nil {
		cp.Header = make(map[string]string, len(r.Header))
		for k, v := range r.Header {
			cp.Header[k] = v
		}
	}
	return &cp
}

// Store: penyimpanan cache ber-namespace (satu namespace = satu versi
// shell). Padanan Cache Storage platform.
type Store interface {
	Namespaces(ctx context.Context) ([]string, error)
	DeleteNamespace(ctx context.Context, name string) error
	Put(ctx context.Context, namespace, url string, res *Response) error
	Match(ctx context.Context, namespace, url string) (*Response, error)
	Close() error
}

// Fetcher: jaringan. Eksternal; worker tidak peduli implementasinya.
type Fetcher interface {
	Fetch(ctx context.Context, req *Request) (*Response, error)
}
