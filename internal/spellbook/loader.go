package spellbook

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/randalmurphal/quest/internal/expand"
	questerrors "github.com/randalmurphal/quest/internal/errors"
)

// rawDoc mirrors the on-disk TOML shape. [[request]] and [[requests]] are
// accepted as aliases of the same array of tables; Load appends all
// [[request]] entries first, then all [[requests]] entries, each group in
// file order.
type rawDoc struct {
	API      Api           `toml:"api"`
	Request  []rawRequest  `toml:"request"`
	Requests []rawRequest  `toml:"requests"`
}

type rawRequest struct {
	Name       string   `toml:"name"`
	Method     string   `toml:"method"`
	Path       string   `toml:"path"`
	Header     []Header `toml:"header"`
	Body       string   `toml:"body"`
	Params     string   `toml:"params"`
	PreScript  string   `toml:"pre_script"`
	TestScript string   `toml:"test_script"`
	Spell      string   `toml:"spell"`
}

// Load reads name from dir, expands ${} placeholders in its source using
// vars, and parses the result into a Book.
func Load(dir, name string, vars map[string]string) (*Book, error) {
	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, questerrors.ErrConfigNotFound(path)
		}
		return nil, questerrors.ErrConfigParse(path, err)
	}

	expanded := expand.Expand(string(raw), vars)

	var doc rawDoc
	if err := toml.Unmarshal([]byte(expanded), &doc); err != nil {
		return nil, questerrors.ErrConfigParse(path, err)
	}

	book := &Book{API: doc.API}

	all := append(append([]rawRequest{}, doc.Request...), doc.Requests...)
	for _, r := range all {
		req := Request{
			Name:      r.Name,
			Method:    r.Method,
			Path:      r.Path,
			Headers:   r.Header,
			PreScript: r.PreScript,
			RawBody:   r.Body,
			RawParams: r.Params,
			RawTest:   r.TestScript,
			RawSpell:  r.Spell,
		}

		req.TestScript = r.TestScript
		if req.TestScript == "" {
			req.TestScript = r.Spell
		}

		if r.Body != "" {
			var v any
			if err := json.Unmarshal([]byte(r.Body), &v); err != nil {
				return nil, questerrors.ErrConfigParse(path, err)
			}
			req.Body = v
		}
		if r.Params != "" {
			var v any
			if err := json.Unmarshal([]byte(r.Params), &v); err != nil {
				return nil, questerrors.ErrConfigParse(path, err)
			}
			req.Params = v
		}

		book.Requests = append(book.Requests, req)
	}

	return book, nil
}
