package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	questerrors "github.com/randalmurphal/quest/internal/errors"
)

func TestRun_EnvMutationRoundTrips(t *testing.T) {
	env := map[string]string{"HOST": "example.com"}
	ctx := &Context{Env: env}

	err := Run("pre", `env.TOKEN = "abc123";`, ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", env["TOKEN"])
	assert.Equal(t, "example.com", env["HOST"])
}

func TestRun_EnvNonStringCoercedToText(t *testing.T) {
	env := map[string]string{}
	ctx := &Context{Env: env}

	err := Run("post", `env.COUNT = 42; env.OK = true;`, ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", env["COUNT"])
	assert.Equal(t, "true", env["OK"])
}

func TestRun_PostScriptSeesStatusHeadersData(t *testing.T) {
	env := map[string]string{}
	ctx := &Context{
		Env:     env,
		Status:  201,
		Headers: map[string]string{"X-Request-Id": "r-1"},
		Data:    map[string]any{"id": "u-9"},
		IsPost:  true,
	}

	err := Run("post", `
		expect_toEqual(status, 201);
		expect_toEqual(headers["X-Request-Id"], "r-1");
		env.USER_ID = data.id;
	`, ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-9", env["USER_ID"])
}

func TestRun_PreScriptDoesNotSeeStatus(t *testing.T) {
	env := map[string]string{}
	ctx := &Context{Env: env, IsPost: false}

	err := Run("pre", `env.SAW_STATUS = (typeof status !== "undefined");`, ctx)
	require.NoError(t, err)
	assert.Equal(t, "false", env["SAW_STATUS"])
}

func TestRun_AssertionFailureMapsToAssertionFailed(t *testing.T) {
	env := map[string]string{}
	ctx := &Context{Env: env, Status: 500, IsPost: true}

	err := Run("post", `expect_toEqual(status, 200);`, ctx)
	require.Error(t, err)
	qErr := questerrors.AsQuestError(err)
	require.NotNil(t, qErr)
	assert.Equal(t, questerrors.CodeAssertionFailed, qErr.Code)
}

func TestRun_ToContainOnNonString(t *testing.T) {
	env := map[string]string{}
	ctx := &Context{
		Env:    env,
		Data:   map[string]any{"items": []any{"a", "b"}},
		IsPost: true,
	}

	err := Run("post", `expect_toContain(data.items, "b");`, ctx)
	assert.NoError(t, err)
}

func TestRun_SyntaxErrorMapsToScriptError(t *testing.T) {
	env := map[string]string{}
	ctx := &Context{Env: env}

	err := Run("pre", `this is not valid js {{{`, ctx)
	require.Error(t, err)
	qErr := questerrors.AsQuestError(err)
	require.NotNil(t, qErr)
	assert.Equal(t, questerrors.CodeScriptError, qErr.Code)
}

func TestRun_JSONPathScalarSelection(t *testing.T) {
	env := map[string]string{}
	ctx := &Context{
		Env: env,
		Data: map[string]any{
			"items": []any{
				map[string]any{"id": "first-id"},
				map[string]any{"id": "second-id"},
			},
		},
		IsPost: true,
	}

	err := Run("post", `env.FIRST = jsonPath(data, "$.items[0].id");`, ctx)
	require.NoError(t, err)
	assert.Equal(t, "first-id", env["FIRST"])
}

func TestRun_JSONPathMissingYieldsUndefined(t *testing.T) {
	env := map[string]string{}
	ctx := &Context{
		Env:    env,
		Data:   map[string]any{"items": []any{}},
		IsPost: true,
	}

	err := Run("post", `env.MISSING = (jsonPath(data, "$.items[0].id") === undefined) ? "yes" : "no";`, ctx)
	require.NoError(t, err)
	assert.Equal(t, "yes", env["MISSING"])
}

func TestRun_EnvDeletedKeyDroppedFromMap(t *testing.T) {
	env := map[string]string{"KEEP": "1"}
	ctx := &Context{Env: env}

	err := Run("pre", `delete env.KEEP;`, ctx)
	require.NoError(t, err)
	_, ok := env["KEEP"]
	assert.False(t, ok, "KEEP should be gone from the returned map after an explicit delete")
}
