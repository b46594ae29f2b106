package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/makt28/rowalert/internal/config"
	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const (
	whatsappPrefix    = "whatsapp:"
	defaultTwilioBase = "https://api.twilio.com"
)

// TwilioWhatsApp sends messages through the Twilio Messages API on the
// WhatsApp channel.
type TwilioWhatsApp struct {
	AccountSID string
	AuthToken  string
	From       string

	rest *twilio.RestClient
}

// NewTwilioWhatsApp builds a sender from the Twilio section of the config.
// A non-default base URL sends the API traffic to that host instead.
func NewTwilioWhatsApp(tc config.TwilioConfig) *TwilioWhatsApp {
	return NewTwilioWhatsAppWithClient(tc, &http.Client{
		Timeout:   10 * time.Second,
		Transport: baseURLTransport(tc.BaseURL, http.DefaultTransport),
	})
}

// NewTwilioWhatsAppWithClient is NewTwilioWhatsApp with a caller-supplied
// HTTP client.
func NewTwilioWhatsAppWithClient(tc config.TwilioConfig, hc *http.Client) *TwilioWhatsApp {
	c := &twclient.Client{
		Credentials: twclient.NewCredentials(tc.AccountSID, tc.AuthToken),
		HTTPClient:  hc,
	}
	c.SetAccountSid(tc.AccountSID)

	return &TwilioWhatsApp{
		AccountSID: tc.AccountSID,
		AuthToken:  tc.AuthToken,
		From:       tc.From,
		rest:       twilio.NewRestClientWithParams(twilio.ClientParams{Client: c}),
	}
}

// APIError is a non-2xx answer from Twilio.
type APIError struct {
	HTTPStatus int
	Code       int
	Message    string
	MoreInfo   string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("twilio: HTTP %d: (%d) %s", e.HTTPStatus, e.Code, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("twilio: HTTP %d: %s", e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("twilio: unexpected status %d", e.HTTPStatus)
}

func (t *TwilioWhatsApp) Type() string { return "whatsapp" }

func (t *TwilioWhatsApp) Validate() error {
	if t.AccountSID == "" {
		return errors.New("twilio: account_sid is required")
	}
	if t.AuthToken == "" {
		return errors.New("twilio: auth_token is required")
	}
	if t.From == "" {
		return errors.New("twilio: from is required")
	}
	return nil
}

// Send submits one message. The SDK call takes no context, so ctx is only
// checked before the request goes out; the HTTP client timeout bounds it.
func (t *TwilioWhatsApp) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, fmt.Errorf("twilio: send request: %w", err)
	}
	if t.rest == nil {
		return Receipt{}, errors.New("twilio: client not initialised")
	}

	params := &openapi.CreateMessageParams{}
	params.SetPathAccountSid(t.AccountSID)
	params.SetTo(whatsappAddress(msg.To))
	params.SetFrom(whatsappAddress(t.From))
	params.SetBody(msg.Body)

	resp, err := t.rest.Api.CreateMessage(params)
	if err != nil {
		var restErr *twclient.TwilioRestError
		if errors.As(err, &restErr) {
			return Receipt{}, &APIError{
				HTTPStatus: restErr.Status,
				Code:       restErr.Code,
				Message:    restErr.Message,
				MoreInfo:   restErr.MoreInfo,
			}
		}
		return Receipt{}, fmt.Errorf("twilio: send request: %w", err)
	}

	var r Receipt
	if resp.Sid != nil {
		r.MessageID = *resp.Sid
	}
	if resp.Status != nil {
		r.Status = *resp.Status
	}
	return r, nil
}

// whatsappAddress adds the channel prefix Twilio expects unless the address
// already carries it.
func whatsappAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	if strings.HasPrefix(addr, whatsappPrefix) {
		return addr
	}
	return whatsappPrefix + addr
}

// baseURLTransport redirects requests aimed at the public Twilio API host to
// base. It returns next unchanged for the default or an unparsable base.
func baseURLTransport(base string, next http.RoundTripper) http.RoundTripper {
	base = strings.TrimRight(base, "/")
	if base == "" || base == defaultTwilioBase {
		return next
	}
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return next
	}
	return &rewriteTransport{base: u, next: next}
}

type rewriteTransport struct {
	base *url.URL
	next http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = rt.base.Scheme
	out.URL.Host = rt.base.Host
	out.URL.Path = strings.TrimRight(rt.base.Path, "/") + req.URL.Path
	out.Host = rt.base.Host
	return rt.next.RoundTrip(out)
}
