package cache

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// HTTPFetcher: Fetcher di atas net/http. Path relatif ("/index.html")
// di-resolve terhadap Base (origin aplikasi); URL absolut dipakai apa
// adanya (font/CDN).
type HTTPFetcher struct {
	Base   string
	Client *http.Client
}

func NewHTTPFetcher(base string) *HTTPFetcher {
	return &HTTPFetcher{
		Base:   strings.TrimRight(base, "/"),
		Client: &http.Client{},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, req *Request) (*Response, error) {
	target := req.URL
	crossOrigin := false
	if strings.HasPrefix(target, "/") {
		target = f.Base + target
	} else if !strings.HasPrefix(target, f.Base+"/") && target != f.Base {
		crossOrigin = true
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	res, err := f.Client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	header := map[string]string{}
	for _, k := range []string{"Content-Type", "Cache-Control", "ETag", "Last-Modified"} {
		if v := res.Header.Get(k); v != "" {
			header[k] = v
		}
	}

	// analogi respons opaque: lintas origin tanpa header CORS terbaca
	opaque := crossOrigin && res.Header.Get("Access-Control-Allow-Origin") == ""

	return &Response{
		URL:    req.URL,
		Status: res.StatusCode,
		Header: header,
		Body:   body,
		Opaque: opaque,
	}, nil
}
