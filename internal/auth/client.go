package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-hclog"
	"github.com/hbollon/go-edlib"

	"github.com/DeprecatedLuar/avosig/internal/config"
	"github.com/DeprecatedLuar/avosig/internal/transport"
)

// ErrMissingCookie means login returned successfully but without the session cookie.
var ErrMissingCookie = errors.New("login response did not set the session cookie")

// Cookie names at least this similar to the configured one are reported as near misses.
const cookieSimilarityThreshold = 0.8

// Client logs a user in and derives the developer signature.
type Client struct {
	cfg   *config.Config
	doer  transport.Doer
	creds Credentials
	log   hclog.Logger
}

// NewClient builds a Client. A nil logger discards output.
func NewClient(cfg *config.Config, doer transport.Doer, creds Credentials, log hclog.Logger) *Client {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Client{cfg: cfg, doer: doer, creds: creds, log: log.Named("auth")}
}

// Login posts the email and password and returns the session cookie value.
// A cookie set with an empty value is returned as "" with a nil error.
// Transport failures come back as *transport.Error; a successful response
// without the cookie is ErrMissingCookie.
func (c *Client) Login(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("email", c.creds.Email)
	form.Set("password", c.creds.Password)

	header := http.Header{}
	header.Set("Content-Type", c.cfg.ContentType)
	header.Set("User-Agent", c.cfg.UserAgent)

	c.log.Debug("logging in", "url", c.cfg.LoginURL, "email", c.creds.Email)

	resp, err := c.doer.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		URL:    c.cfg.LoginURL,
		Header: header,
		Body:   form.Encode(),
	})
	if err != nil {
		c.logTransportError("login failed", err)
		return "", err
	}

	value, ok := resp.Cookie(c.cfg.CookieName)
	if !ok {
		c.reportMissingCookie(resp.Cookies)
		return "", ErrMissingCookie
	}

	c.log.Trace("captured session cookie", "cookie", c.cfg.CookieName, "value", value)
	return value, nil
}

// UpdateSignature logs in and, only if a cookie was obtained, derives the signature.
// On any failure the returned Session is empty and nothing is hashed.
func (c *Client) UpdateSignature(ctx context.Context) (Session, error) {
	cookie, err := c.Login(ctx)
	if err != nil {
		return Session{}, err
	}

	return c.Sign(cookie), nil
}

// Sign derives the signature for a captured cookie value, which may be empty.
func (c *Client) Sign(cookieValue string) Session {
	sig := DeriveSignature(c.creds.DeveloperID, cookieValue, c.creds.DeveloperKey)
	c.log.Trace("derived signature", "signature", sig)

	return Session{HasCookie: true, CookieValue: cookieValue, Signature: sig}
}

func (c *Client) logTransportError(msg string, err error) {
	var terr *transport.Error
	if errors.As(err, &terr) {
		c.log.Error(msg, "status", terr.StatusCode, "detail", terr.Detail())
		return
	}
	c.log.Error(msg, "error", err)
}

// reportMissingCookie logs what the server did set, flagging names that look
// like a typo or a renamed cookie.
func (c *Client) reportMissingCookie(cookies []*http.Cookie) {
	names := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		names = append(names, ck.Name)

		similarity, err := edlib.StringsSimilarity(c.cfg.CookieName, ck.Name, edlib.DamerauLevenshtein)
		if err != nil {
			continue
		}
		if similarity >= cookieSimilarityThreshold {
			c.log.Warn("found a similarly named cookie", "want", c.cfg.CookieName, "got", ck.Name)
		}
	}

	c.log.Debug("session cookie missing, login must have failed", "cookie", c.cfg.CookieName, "received", names)
}
