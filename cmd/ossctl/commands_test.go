package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/ossgate/pkg/ossgate"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OSS_BUCKET", "demo-bucket")
	t.Setenv("OSS_REGION", "oss-cn-hangzhou.aliyuncs.com")
	t.Setenv("OSS_ACCESS_KEY_ID", "LTAI5tExample")
	t.Setenv("OSS_ACCESS_KEY_SECRET", "secret")
	t.Setenv("OSS_DELETE_BACKEND", "memory")
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSignUploadCommand(t *testing.T) {
	setTestEnv(t)

	out, err := runCommand(t, "sign-upload", "me.png", "--owner-id", "42", "--owner-type", "avatar", "--content-type", "image/png")
	require.NoError(t, err)

	var result ossgate.UploadResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, strings.HasPrefix(result.ObjectKey, "snowfish/42/avatar/"))
	assert.True(t, strings.HasSuffix(result.ObjectKey, ".png"))
	assert.Equal(t, "https://demo-bucket.oss-cn-hangzhou.aliyuncs.com/"+result.ObjectKey, result.PublicURL)
	assert.Contains(t, result.UploadURL, "OSSAccessKeyId=LTAI5tExample&Expires=")
}

func TestSignUploadCommand_RequiresOwner(t *testing.T) {
	setTestEnv(t)

	_, err := runCommand(t, "sign-upload", "me.png")
	assert.Error(t, err)
}

func TestDeleteCommand_DryRun(t *testing.T) {
	setTestEnv(t)

	out, err := runCommand(t, "delete", "https://demo-bucket.oss-cn-hangzhou.aliyuncs.com/snowfish/42/files/1.jpg", "--dry-run")
	require.NoError(t, err)

	var result ossgate.DeleteResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.OK)
	assert.True(t, result.Simulated)
	assert.Equal(t, "snowfish/42/files/1.jpg", result.ObjectKey)
}

func TestDeleteCommand_InvalidURL(t *testing.T) {
	setTestEnv(t)

	_, err := runCommand(t, "delete", "not a url")
	assert.ErrorIs(t, err, ossgate.ErrInvalidPublicURL)
}

func TestEnvCommand(t *testing.T) {
	out, err := runCommand(t, "env")
	require.NoError(t, err)
	assert.Contains(t, out, "OSS_ACCESS_KEY_SECRET")
	assert.Contains(t, out, "OSS_DELETE_BACKEND")
}
