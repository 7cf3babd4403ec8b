package user

import (
	"testing"
	"time"
)

func TestMakeVerifyToken(t *testing.T) {
	secretKey := "secret"
	timeout := 3 * 24 * time.Hour

	now := time.Now()
	usr := User{
		ID:        1,
		Name:      "T",
		Email:     "t@test.test",
		CreatedAt: now,
		LastLogin: now,
	}
	_ = usr.SetPassword("pwd")

	validToken := makeToken(usr, secretKey)

	// generate an expired token
	dayLate := timeout + (24 * time.Hour)
	nowFunc = func() time.Time { return time.Now().Add(-dayLate) }
	expiredToken := makeToken(usr, secretKey)
	nowFunc = time.Now // reset

	// the password changed since the token was issued
	changedUsr := usr
	_ = changedUsr.SetPassword("new-pwd")

	tests := []struct {
		name    string
		usr     User
		token   string
		key     string
		wantErr error
	}{
		{name: "no token", usr: usr, key: secretKey, wantErr: errInvalidToken},
		{name: "invalid parts len", usr: usr, key: secretKey, token: "lmaooolol", wantErr: errInvalidToken},
		{name: "invalid base32", usr: usr, key: secretKey, token: "hahaha-sigsig-sig", wantErr: errInvalidToken},
		{name: "invalid timestamp", usr: usr, key: secretKey, token: "NRXWY-sigsig-sig", wantErr: errInvalidToken},
		{name: "invalid token", usr: usr, key: secretKey, token: "HE4TS-sigsig-sig", wantErr: errInvalidToken},
		{name: "other secret key", usr: usr, key: "other", token: validToken, wantErr: errInvalidToken},
		{name: "password changed", usr: changedUsr, key: secretKey, token: validToken, wantErr: errInvalidToken},
		{name: "expired token", usr: usr, key: secretKey, token: expiredToken, wantErr: errTokenExpired},
		{name: "valid token", usr: usr, key: secretKey, token: validToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := verifyToken(tt.usr, tt.token, tt.key, timeout); err != tt.wantErr {
				t.Errorf("verifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeDecodeUID(t *testing.T) {
	uid := EncodeUID(User{ID: 42})
	id, err := decodeUID(uid)
	if err != nil {
		t.Fatalf("decodeUID() failed: %v", err)
	}
	if id != 42 {
		t.Errorf("decodeUID() = %d, want 42", id)
	}

	for _, bad := range []string{"", "!!!", "bG9s" /* "lol" */} {
		if _, err := decodeUID(bad); err != errInvalidUID {
			t.Errorf("decodeUID(%q) error = %v, wantErr %v", bad, err, errInvalidUID)
		}
	}
}
