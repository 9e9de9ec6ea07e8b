package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brainshift/internal/util"
)

func TestTokenCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "jwt:\n  secret: cli-secret\n  issuer: brainshift-test\n  expire_hours: 2\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	configPath = path

	var out, errOut bytes.Buffer
	cmd := tokenCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("token without --user error = nil, want error")
	}

	out.Reset()
	cmd.SetArgs([]string{"--user", "7"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("token --user 7 error = %v", err)
	}

	claims, err := util.ParseToken("cli-secret", "brainshift-test", strings.TrimSpace(out.String()))
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if _, err := util.ParseToken("cli-secret", "someone-else", strings.TrimSpace(out.String())); err == nil {
		t.Error("ParseToken() with another issuer error = nil, want error")
	}
	if claims.UserID != 7 || claims.Issuer != "brainshift-test" {
		t.Errorf("claims = %+v, want user 7 from brainshift-test", claims)
	}
}
