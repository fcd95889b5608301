package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "s3cretpass" {
		t.Fatal("password stored in plain text")
	}

	if !CheckPassword(hash, "s3cretpass") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrongpass") {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("s3cretpass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HashPassword("s3cretpass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical")
	}
}
