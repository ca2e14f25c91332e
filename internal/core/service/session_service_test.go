package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nolivos/client-registry/internal/core/domain"
)

var firmUsers = []domain.Credential{
	{Username: "hjnolivos", Password: "6173", DisplayName: "H. J. Nolivos"},
	{Username: "gnolivos", Password: "5481", DisplayName: "G. Nolivos"},
	{Username: "hnolivos", Password: "3974", DisplayName: "H. Nolivos"},
}

func newSessionService(store *stubSessionStore, notifier *recordingNotifier) *SessionService {
	return NewSessionService(&stubVerifier{creds: firmUsers}, store, notifier, "secret", time.Hour, discardLogger)
}

func TestSessionService_Login_AllKnownUsers(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newSessionService(newStubSessionStore(), notifier)

	for _, cred := range firmUsers {
		res, err := svc.Login(context.Background(), cred.Username, cred.Password)
		if err != nil {
			t.Fatalf("login %s: %v", cred.Username, err)
		}
		if res.Token == "" {
			t.Fatalf("expected token for %s", cred.Username)
		}
		if res.Session.Identity.DisplayName != cred.DisplayName {
			t.Fatalf("expected display name %q, got %q", cred.DisplayName, res.Session.Identity.DisplayName)
		}
		wantDesc := "Welcome back, " + cred.DisplayName + "!"
		if res.Notification.Title != "Login Successful" || res.Notification.Description != wantDesc {
			t.Fatalf("unexpected notification: %+v", res.Notification)
		}
		if got := notifier.last(); got.kind != domain.KindLoginSucceeded || got.actor != cred.Username {
			t.Fatalf("unexpected notifier call: %+v", got)
		}
	}
}

func TestSessionService_Login_Rejects(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newSessionService(newStubSessionStore(), notifier)

	cases := []struct{ user, pass string }{
		{"hjnolivos", "0000"},
		{"HJNOLIVOS", "6173"},
		{"gnolivos", "6173"},
		{"ghost", "1234"},
		{"", "6173"},
		{"hjnolivos", ""},
	}
	for _, tc := range cases {
		res, err := svc.Login(context.Background(), tc.user, tc.pass)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("login(%q,%q): expected ErrInvalidCredentials, got %v", tc.user, tc.pass, err)
		}
		if res != nil {
			t.Fatalf("login(%q,%q): expected nil result", tc.user, tc.pass)
		}
		got := notifier.last()
		if got.kind != domain.KindLoginFailed || got.n.Variant != domain.VariantDestructive {
			t.Fatalf("expected destructive login_failed notification, got %+v", got)
		}
	}
}

func TestSessionService_Login_VerifierError(t *testing.T) {
	boom := errors.New("mongo down")
	svc := NewSessionService(&stubVerifier{err: boom}, newStubSessionStore(), &recordingNotifier{}, "secret", time.Hour, discardLogger)

	_, err := svc.Login(context.Background(), "hjnolivos", "6173")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped verifier error, got %v", err)
	}
}

func TestSessionService_Authenticate_RoundTrip(t *testing.T) {
	svc := newSessionService(newStubSessionStore(), &recordingNotifier{})

	res, err := svc.Login(context.Background(), "gnolivos", "5481")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	session, err := svc.Authenticate(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if session.ID != res.Session.ID {
		t.Fatalf("session id mismatch: %s vs %s", session.ID, res.Session.ID)
	}
	if session.Identity.Username != "gnolivos" || session.Identity.DisplayName != "G. Nolivos" {
		t.Fatalf("unexpected identity: %+v", session.Identity)
	}
	if !session.ExpiresAt.Equal(res.Session.ExpiresAt) {
		t.Fatalf("expiry mismatch: %v vs %v", session.ExpiresAt, res.Session.ExpiresAt)
	}
}

func TestSessionService_Authenticate_Invalid(t *testing.T) {
	svc := newSessionService(newStubSessionStore(), &recordingNotifier{})

	if _, err := svc.Authenticate(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}

	other := NewSessionService(&stubVerifier{creds: firmUsers}, newStubSessionStore(), &recordingNotifier{}, "other-secret", time.Hour, discardLogger)
	res, err := other.Login(context.Background(), "hnolivos", "3974")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), res.Token); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for foreign signature, got %v", err)
	}
}

func TestSessionService_Authenticate_Expired(t *testing.T) {
	svc := newSessionService(newStubSessionStore(), &recordingNotifier{})
	res, err := svc.Login(context.Background(), "hnolivos", "3974")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.Authenticate(context.Background(), res.Token); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for expired token, got %v", err)
	}
}

func TestSessionService_Authenticate_RejectsOtherAlgorithms(t *testing.T) {
	svc := newSessionService(newStubSessionStore(), &recordingNotifier{})

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		ID:        "abc",
		Subject:   "hjnolivos",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), signed); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for alg=none, got %v", err)
	}
}

func TestSessionService_Logout_RevokesSession(t *testing.T) {
	store := newStubSessionStore()
	notifier := &recordingNotifier{}
	svc := newSessionService(store, notifier)

	res, err := svc.Login(context.Background(), "hjnolivos", "6173")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	n, err := svc.Logout(context.Background(), res.Session)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if n.Title != "Logged Out" || n.Description != "You have been successfully logged out." {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if until, ok := store.revoked[res.Session.ID]; !ok || !until.Equal(res.Session.ExpiresAt) {
		t.Fatalf("session not revoked until expiry: %v %v", until, ok)
	}
	if _, err := svc.Authenticate(context.Background(), res.Token); !errors.Is(err, domain.ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked after logout, got %v", err)
	}
	if got := notifier.last(); got.kind != domain.KindLoggedOut || got.actor != "hjnolivos" {
		t.Fatalf("unexpected notifier call: %+v", got)
	}
}

func TestSessionService_Logout_StoreError(t *testing.T) {
	store := newStubSessionStore()
	svc := newSessionService(store, &recordingNotifier{})
	res, _ := svc.Login(context.Background(), "hjnolivos", "6173")

	store.err = errors.New("redis down")
	if _, err := svc.Logout(context.Background(), res.Session); err == nil {
		t.Fatal("expected error when the store fails")
	}
	if _, err := svc.Authenticate(context.Background(), res.Token); err == nil || errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected store error to surface, got %v", err)
	}
}
