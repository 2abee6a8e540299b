package utils

import "testing"

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		p := GeneratePassword()
		if len(p) < 8 {
			t.Errorf("generated password %q is too short", p)
		}
		if seen[p] {
			t.Errorf("generated password %q repeated", p)
		}
		seen[p] = true
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	password := GeneratePassword()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == password {
		t.Error("hash equals plaintext password")
	}
	if !CheckPassword(hash, password) {
		t.Error("CheckPassword rejected the correct password")
	}
	if CheckPassword(hash, password+"x") {
		t.Error("CheckPassword accepted a wrong password")
	}
}
