package repository

import "testing"

func TestResolveTokenPrefersEnvironment(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "  ghp_from_env  ")

	if got := ResolveToken(); got != "ghp_from_env" {
		t.Errorf("ResolveToken() = %q, want trimmed environment token", got)
	}
}

func TestStoreTokenRejectsEmpty(t *testing.T) {
	if err := StoreToken("   "); err == nil {
		t.Error("StoreToken() accepted an empty token")
	}
}
