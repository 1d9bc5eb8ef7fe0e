package progress

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestRun_PlainModePrintsLabelAndRunsFn(t *testing.T) {
	var out bytes.Buffer
	called := false

	err := Run(&out, "running login", true, func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !called {
		t.Error("fn should have been called")
	}
	if !bytes.Contains(out.Bytes(), []byte("running login...\n")) {
		t.Errorf("out = %q, want a starting line", out.String())
	}
	if !bytes.Contains(out.Bytes(), []byte("running login in ")) {
		t.Errorf("out = %q, want an elapsed-time line", out.String())
	}
}

func TestRun_PlainModePropagatesError(t *testing.T) {
	var out bytes.Buffer
	wantErr := errors.New("boom")

	err := Run(&out, "running login", true, func() error {
		return wantErr
	})
	if err != wantErr {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{65 * time.Second, "1m5s"},
		{3661 * time.Second, "1h1m1s"},
	}
	for _, c := range cases {
		if got := formatDuration(c.d); got != c.want {
			t.Errorf("formatDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}
