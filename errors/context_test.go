package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithContext(t *testing.T) {
	err := New(CodeNotFound, "directory does not exist")
	err = WithContext(err, "path", "assets")
	err = WithContext(err, "root", "/srv/www")

	ctx := err.Context()
	require.Equal(t, "assets", ctx["path"])
	require.Equal(t, "/srv/www", ctx["root"])
	require.Equal(t, CodeNotFound, err.Code())
}

func TestWithContext_Nil(t *testing.T) {
	require.Nil(t, WithContext(nil, "k", "v"))
	require.Nil(t, WithContextMap(nil, map[string]interface{}{"k": "v"}))
	require.Nil(t, WithClassification(nil, ClassificationRetryable))
}

func TestWithContext_PlainErrorBecomesUnknown(t *testing.T) {
	cause := stderrors.New("plain")
	err := WithContext(cause, "path", "a.txt")

	require.Equal(t, CodeUnknown, err.Code())
	require.Equal(t, "plain", err.Message())
	require.True(t, stderrors.Is(err, cause))
}

func TestWithContext_DoesNotMutateOriginal(t *testing.T) {
	original := WithContext(New(CodeIO, "failed"), "a", 1)
	updated := WithContext(original, "b", 2)

	require.Len(t, original.Context(), 1)
	require.Len(t, updated.Context(), 2)
}

func TestWithContextMap_Overrides(t *testing.T) {
	err := WithContext(New(CodeIO, "failed"), "path", "old")
	err = WithContextMap(err, map[string]interface{}{"path": "new", "op": "rename"})

	require.Equal(t, "new", err.Context()["path"])
	require.Equal(t, "rename", err.Context()["op"])
}

func TestWithClassification(t *testing.T) {
	cause := stderrors.New("resource busy")
	err := WithContext(Wrap(cause, CodeIO, "remove failed"), "path", "x")
	err = WithClassification(err, ClassificationRetryable)

	require.True(t, IsRetryable(err))
	require.Equal(t, CodeIO, err.Code())
	require.Equal(t, "x", err.Context()["path"])
	require.True(t, stderrors.Is(err, cause))
}
