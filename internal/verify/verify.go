package verify

import (
	"context"
	"errors"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/DeprecatedLuar/avosig/internal/config"
	"github.com/DeprecatedLuar/avosig/internal/transport"
)

// Verifier tests a signature against the couple endpoint.
type Verifier struct {
	cfg  *config.Config
	doer transport.Doer
	log  hclog.Logger
}

// New builds a Verifier. A nil logger discards output.
func New(cfg *config.Config, doer transport.Doer, log hclog.Logger) *Verifier {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Verifier{cfg: cfg, doer: doer, log: log.Named("verify")}
}

// Verify requests the couple resource signed with signature and the session cookie.
// The response is only a success signal; its body is not interpreted.
func (v *Verifier) Verify(ctx context.Context, signature, cookieValue string) (*transport.Response, error) {
	header := http.Header{}
	header.Set("Content-Type", v.cfg.ContentType)
	header.Set("User-Agent", v.cfg.UserAgent)
	header.Set(v.cfg.SignatureHeader, signature)
	header.Set("Cookie", v.cfg.CookieName+"="+cookieValue)

	v.log.Debug("verifying signature", "url", v.cfg.CoupleURL)

	resp, err := v.doer.Do(ctx, &transport.Request{
		Method: http.MethodGet,
		URL:    v.cfg.CoupleURL,
		Header: header,
	})
	if err != nil {
		var terr *transport.Error
		if errors.As(err, &terr) {
			v.log.Error("verification failed", "status", terr.StatusCode, "detail", terr.Detail())
		} else {
			v.log.Error("verification failed", "error", err)
		}
		return nil, err
	}

	v.log.Debug("signature accepted", "status", resp.StatusCode)
	return resp, nil
}
