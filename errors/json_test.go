package errors

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToJSON(t *testing.T) {
	require.Nil(t, ToJSON(nil))

	err := WithContext(Wrap(stderrors.New("permission denied"), CodeIO, "failed to write file"), "path", "a.txt")
	resp := ToJSON(err)

	require.Equal(t, "IO_ERROR", resp.Code)
	require.Equal(t, "failed to write file", resp.Message)
	require.Equal(t, "PERMANENT", resp.Classification)
	require.Equal(t, "a.txt", resp.Context["path"])
}

func TestToJSON_PlainError(t *testing.T) {
	resp := ToJSON(stderrors.New("plain"))

	require.Equal(t, "UNKNOWN", resp.Code)
	require.Equal(t, "plain", resp.Message)
	require.Nil(t, resp.Context)
}

func TestMarshalJSON_OmitsCause(t *testing.T) {
	err := Wrap(stderrors.New("/srv/secret/path"), CodeIO, "failed to read file")

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	require.JSONEq(t, `{"code":"IO_ERROR","message":"failed to read file","classification":"PERMANENT"}`, string(data))
}
