package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var fastParams = Params{Time: 1, Memory: 1024, Threads: 1, KeyLength: 16, SaltLength: 8}

func TestHashAndVerify(t *testing.T) {
	encoded, err := HashWith("calm-waters", fastParams)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "argon2id$1$1024$1$") {
		t.Errorf("unexpected encoding %q", encoded)
	}

	ok, err := VerifyPassword("calm-waters", encoded)
	if err != nil || !ok {
		t.Errorf("verify correct password: ok=%v err=%v", ok, err)
	}
	ok, err = VerifyPassword("rough-waters", encoded)
	if err != nil || ok {
		t.Errorf("verify wrong password: ok=%v err=%v", ok, err)
	}
}

func TestHashIsSalted(t *testing.T) {
	a, _ := HashWith("same", fastParams)
	b, _ := HashWith("same", fastParams)
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyMalformed(t *testing.T) {
	for _, enc := range []string{
		"",
		"bcrypt$1$2$3$a$b",
		"argon2id$x$1024$1$AAAA$AAAA",
		"argon2id$1$1024$0$AAAA$AAAA",
		"argon2id$1$1024$1$!!$AAAA",
	} {
		if _, err := VerifyPassword("pw", enc); !errors.Is(err, ErrMalformedHash) {
			t.Errorf("VerifyPassword(%q): got %v, want ErrMalformedHash", enc, err)
		}
	}
}

func TestSessionsLifecycle(t *testing.T) {
	s := NewSessions(8, time.Hour)

	token := s.Create(7, "river")
	if token == "" {
		t.Fatal("expected token")
	}
	got, ok := s.Lookup(token)
	if !ok || got.UserID != 7 || got.Nickname != "river" {
		t.Errorf("lookup = %+v, %v", got, ok)
	}

	s.Destroy(token)
	if _, ok := s.Lookup(token); ok {
		t.Error("destroyed session should not be found")
	}
	if _, ok := s.Lookup(""); ok {
		t.Error("empty token should not be found")
	}
}

func TestSessionsEvictAtCapacity(t *testing.T) {
	s := NewSessions(2, time.Hour)
	first := s.Create(1, "a")
	s.Create(2, "b")
	s.Create(3, "c")

	if _, ok := s.Lookup(first); ok {
		t.Error("oldest session should be evicted")
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
}

func TestSessionsExpire(t *testing.T) {
	s := NewSessions(4, 20*time.Millisecond)
	token := s.Create(1, "a")
	time.Sleep(60 * time.Millisecond)
	if _, ok := s.Lookup(token); ok {
		t.Error("session should have expired")
	}
}
