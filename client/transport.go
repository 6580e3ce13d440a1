package client

import (
	"net/http"

	"golang.org/x/oauth2"
)

// Header carrying the tenant the request is scoped to
const TenantHeader = "X-Tenant-Id"

// CredentialSource is read on every request, never cached.
// *session.Manager satisfies it.
type CredentialSource interface {
	Token() string
	TenantID() string
}

var _ http.RoundTripper = (*Transport)(nil)

// Transport attaches the current bearer token and tenant to each request
// before handing it to Base. Absent values leave the header alone.
type Transport struct {
	Base   http.RoundTripper
	Source CredentialSource
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.Source.Token()
	tenant := t.Source.TenantID()

	// RoundTrippers must not modify the caller's request
	out := req.Clone(req.Context())
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	if token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(out)
	}
	if tenant != "" {
		out.Header.Set(TenantHeader, tenant)
	}
	return t.base().RoundTrip(out)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// Authenticate returns a copy of hc that authenticates every request with src.
// A client that is already authenticated is returned unchanged, so calling
// it twice never stacks two transports.
func Authenticate(hc *http.Client, src CredentialSource) *http.Client {
	if hc == nil {
		hc = &http.Client{}
	}
	if _, ok := hc.Transport.(*Transport); ok {
		return hc
	}
	authenticated := *hc
	authenticated.Transport = &Transport{Base: hc.Transport, Source: src}
	return &authenticated
}
