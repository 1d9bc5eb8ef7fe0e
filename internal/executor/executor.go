// Package executor runs a single spell-book request through the
// PRE_SCRIPT -> BUILD -> SEND -> RENDER -> POST_SCRIPT steps of the
// request state machine. LOAD_VARS and COMMIT_VARS are done by the caller
// (internal/orchestrator).
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	questerrors "github.com/randalmurphal/quest/internal/errors"
	"github.com/randalmurphal/quest/internal/script"
	"github.com/randalmurphal/quest/internal/spellbook"
)

// userAgent echoes the original tool's "qwest/0.2 (rust-cli-http)" convention.
const userAgent = "quest/0.1 (go-cli-http)"

const maxRedirects = 10

var validMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// Result is everything RENDER needs to print plus the state to carry
// into the post-script and the eventual commit.
type Result struct {
	Method        string
	URL           string
	StatusCode    int
	Status        string
	Headers       http.Header
	Body          []byte
	BodyNotUTF8   bool
	ParsedJSON    any
	HasParsedJSON bool
}

// defaultTimeout is used when the spell-book's api.timeout_ms is zero or
// absent.
const defaultTimeout = 30 * time.Second

// Run executes one request end to end. seed is read and mutated in place
// by the scripts; when Run returns nil it holds the variables that must be
// committed, and the caller owns persisting it (upsert_many). When Run
// returns an error, seed may still hold the pre-script's changes and must
// not be committed.
func Run(ctx context.Context, api *spellbook.Api, req *spellbook.Request, seed map[string]string, out io.Writer) (*Result, error) {
	if req.PreScript != "" {
		if err := script.Run("pre_script", req.PreScript, &script.Context{Env: seed}); err != nil {
			return nil, err
		}
	}

	method, fullURL, header, body, err := build(api.BaseURL, req)
	if err != nil {
		return nil, err
	}

	result, err := send(ctx, method, fullURL, header, body, clientTimeout(api), api.FollowRedirects)
	if err != nil {
		return nil, err
	}

	render(out, result)

	if req.TestScript != "" {
		sctx := &script.Context{
			Env:     seed,
			Status:  result.StatusCode,
			Headers: flattenHeaders(result.Headers),
			IsPost:  true,
		}
		if result.HasParsedJSON {
			sctx.Data = result.ParsedJSON
		}
		if err := script.Run("test_script", req.TestScript, sctx); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func build(baseURL string, req *spellbook.Request) (method, fullURL string, header http.Header, body []byte, err error) {
	method = strings.ToUpper(strings.TrimSpace(req.Method))
	if !validMethods[method] {
		return "", "", nil, nil, questerrors.ErrInvalidHttpMethod(req.Method)
	}

	fullURL = baseURL + req.Path

	header = http.Header{}
	for _, h := range req.Headers {
		header.Add(h.Key, h.Value)
	}

	isForm := false
	for k, vs := range header {
		if !strings.EqualFold(k, "Content-Type") {
			continue
		}
		for _, v := range vs {
			if strings.EqualFold(strings.TrimSpace(v), "application/x-www-form-urlencoded") {
				isForm = true
			}
		}
	}

	if req.Body != nil {
		if isForm {
			obj, _ := req.Body.(map[string]any)
			form := url.Values{}
			for k, v := range obj {
				form.Set(k, coerceFormValue(v))
			}
			body = []byte(form.Encode())
		} else {
			body, err = json.Marshal(req.Body)
			if err != nil {
				return "", "", nil, nil, questerrors.ErrConfigParse(req.Name, err)
			}
		}
	}

	if obj, ok := req.Params.(map[string]any); ok {
		u, parseErr := url.Parse(fullURL)
		if parseErr == nil {
			q := u.Query()
			for k, v := range obj {
				q.Set(k, coerceFormValue(v))
			}
			u.RawQuery = q.Encode()
			fullURL = u.String()
		}
	}

	return method, fullURL, header, body, nil
}

func coerceFormValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// clientTimeout resolves api.timeout_ms to a time.Duration, falling back
// to defaultTimeout when unset or non-positive.
func clientTimeout(api *spellbook.Api) time.Duration {
	if api.TimeoutMs <= 0 {
		return defaultTimeout
	}
	return time.Duration(api.TimeoutMs) * time.Millisecond
}

func send(ctx context.Context, method, fullURL string, header http.Header, body []byte, timeout time.Duration, followRedirects *bool) (*Result, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, questerrors.ErrTransportError(err)
	}

	checkRedirect := func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return nil
	}
	if followRedirects != nil && !*followRedirects {
		checkRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	client := &http.Client{
		Jar:           jar,
		Timeout:       timeout,
		CheckRedirect: checkRedirect,
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, questerrors.ErrTransportError(err)
	}
	httpReq.Header = header.Clone()
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, questerrors.ErrTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, questerrors.ErrTransportError(err)
	}

	result := &Result{
		Method:     method,
		URL:        fullURL,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Header,
		Body:       respBody,
	}

	if !utf8.Valid(respBody) {
		result.BodyNotUTF8 = true
	} else {
		var parsed any
		if err := json.Unmarshal(respBody, &parsed); err == nil {
			result.ParsedJSON = parsed
			result.HasParsedJSON = true
		}
	}

	return result, nil
}

func render(out io.Writer, r *Result) {
	fmt.Fprintf(out, "%s %s\n", r.Method, r.URL)
	fmt.Fprintln(out, statusLine(r))

	keys := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range r.Headers[k] {
			fmt.Fprintf(out, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintln(out)

	switch {
	case r.BodyNotUTF8:
		fmt.Fprintln(out, "<binary body, not valid UTF-8>")
	case r.HasParsedJSON:
		pretty, err := json.MarshalIndent(r.ParsedJSON, "", "  ")
		if err != nil {
			out.Write(r.Body)
		} else {
			out.Write(pretty)
			fmt.Fprintln(out)
		}
	default:
		out.Write(r.Body)
		fmt.Fprintln(out)
	}
}

func statusLine(r *Result) string {
	class := r.StatusCode / 100
	label := statusColor(class)
	return fmt.Sprintf("%s %s", label, r.Status)
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}
