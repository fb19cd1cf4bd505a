package account_test

import (
	"testing"
	"time"

	"studiobook/internal/domain/account"
)

// TestAccount_Validate tests validation of Account.
func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		a       account.Account
		wantErr bool
	}{
		{
			name:    "valid admin",
			a:       account.Account{ID: "1", Email: "admin@studio.test", Role: account.RoleAdmin},
			wantErr: false,
		},
		{
			name:    "valid member",
			a:       account.Account{ID: "2", Email: "alice@test.com", Role: account.RoleMember},
			wantErr: false,
		},
		{
			name:    "empty email",
			a:       account.Account{ID: "3", Email: "", Role: account.RoleMember},
			wantErr: true,
		},
		{
			name:    "email without at sign",
			a:       account.Account{ID: "4", Email: "nope", Role: account.RoleMember},
			wantErr: true,
		},
		{
			name:    "invalid role",
			a:       account.Account{ID: "5", Email: "x@test.com", Role: "coach"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.a.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Account.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAccount_PasswordRoundTrip tests SetPassword and CheckPassword.
func TestAccount_PasswordRoundTrip(t *testing.T) {
	a := account.Account{ID: "1", Email: "alice@test.com", Role: account.RoleMember}

	if err := a.SetPassword("short"); err != account.ErrPasswordTooShort {
		t.Errorf("SetPassword(short) error = %v, want ErrPasswordTooShort", err)
	}
	if err := a.SetPassword(""); err != account.ErrEmptyPassword {
		t.Errorf("SetPassword(empty) error = %v, want ErrEmptyPassword", err)
	}

	if err := a.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if a.PasswordHash == "" || a.PasswordHash == "correct horse battery" {
		t.Fatal("PasswordHash was not set to a hash")
	}
	if err := a.CheckPassword("correct horse battery"); err != nil {
		t.Errorf("CheckPassword(correct) error = %v", err)
	}
	if err := a.CheckPassword("wrong password!!"); err != account.ErrWrongPassword {
		t.Errorf("CheckPassword(wrong) error = %v, want ErrWrongPassword", err)
	}
}

// TestAccount_Lockout tests the failed-login lockout policy.
func TestAccount_Lockout(t *testing.T) {
	a := account.Account{ID: "1", Email: "alice@test.com", Role: account.RoleMember}

	for i := 0; i < 4; i++ {
		a.RecordFailedLogin()
	}
	if a.IsLocked() {
		t.Error("account locked after 4 failures, want unlocked")
	}
	a.RecordFailedLogin()
	if !a.IsLocked() {
		t.Error("account not locked after 5 failures")
	}
	if a.LockedUntil.Before(time.Now()) {
		t.Error("LockedUntil is not in the future")
	}

	a.ResetFailedLogins()
	if a.IsLocked() || a.FailedLogins != 0 {
		t.Error("ResetFailedLogins did not clear lockout state")
	}
}
