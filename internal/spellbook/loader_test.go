package spellbook

import (
	"os"
	"path/filepath"
	"testing"

	questerrors "github.com/randalmurphal/quest/internal/errors"
)

func writeBook(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write book: %v", err)
	}
}

func TestLoad_Basic(t *testing.T) {
	dir := t.TempDir()
	writeBook(t, dir, "auth.toml", `
[api]
name = "auth"
base_url = "https://${HOST}"

[[request]]
name = "login"
method = "POST"
path = "/login?user=${USER_ID}"
body = '{"username":"alice"}'

  [[request.header]]
  key = "Content-Type"
  value = "application/json"
`)

	book, err := Load(dir, "auth.toml", map[string]string{"HOST": "example.com", "USER_ID": "42"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if book.API.BaseURL != "https://example.com" {
		t.Errorf("BaseURL = %q, want expanded", book.API.BaseURL)
	}

	req, ok := book.FindByName("login")
	if !ok {
		t.Fatal("expected to find login request")
	}
	if req.Path != "/login?user=42" {
		t.Errorf("Path = %q, want expanded", req.Path)
	}
	if len(req.Headers) != 1 || req.Headers[0].Key != "Content-Type" {
		t.Errorf("Headers = %+v, want one Content-Type header", req.Headers)
	}
	body, ok := req.Body.(map[string]any)
	if !ok || body["username"] != "alice" {
		t.Errorf("Body = %+v, want decoded JSON object", req.Body)
	}
}

func TestLoad_RequestsAlias(t *testing.T) {
	dir := t.TempDir()
	writeBook(t, dir, "auth.toml", `
[api]
name = "auth"
base_url = "https://example.com"

[[requests]]
name = "ping"
method = "GET"
path = "/ping"
`)

	book, err := Load(dir, "auth.toml", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := book.FindByName("ping"); !ok {
		t.Error("expected [[requests]] alias to populate Requests")
	}
}

func TestLoad_SpellAliasesTestScript(t *testing.T) {
	dir := t.TempDir()
	writeBook(t, dir, "auth.toml", `
[api]
name = "auth"
base_url = "https://example.com"

[[request]]
name = "login"
method = "POST"
path = "/login"
spell = "expect_toEqual(status, 200);"
`)

	book, err := Load(dir, "auth.toml", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	req, _ := book.FindByName("login")
	if req.TestScript != "expect_toEqual(status, 200);" {
		t.Errorf("TestScript = %q, want spell alias value", req.TestScript)
	}
}

func TestLoad_NotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir, "missing.toml", nil)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	qErr := questerrors.AsQuestError(err)
	if qErr == nil || qErr.Code != questerrors.CodeConfigNotFound {
		t.Errorf("expected ConfigNotFound, got %v", err)
	}
}

func TestLoad_MalformedBodyJSON(t *testing.T) {
	dir := t.TempDir()
	writeBook(t, dir, "auth.toml", `
[api]
name = "auth"
base_url = "https://example.com"

[[request]]
name = "login"
method = "POST"
path = "/login"
body = "not json"
`)

	_, err := Load(dir, "auth.toml", nil)
	if err == nil {
		t.Fatal("expected parse error for malformed body JSON")
	}
	qErr := questerrors.AsQuestError(err)
	if qErr == nil || qErr.Code != questerrors.CodeConfigParse {
		t.Errorf("expected ConfigParse, got %v", err)
	}
}
