package auth

import (
	"errors"
	"testing"

	"github.com/smartparking/identity/pkg/domain"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Jane@X.Com", want: "jane@x.com"},
		{in: "  jane@x.com  ", want: "jane@x.com"},
		{in: "JANE@X.COM", want: "jane@x.com"},
		{in: "jane@x.com", want: "jane@x.com"},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateRegistration(t *testing.T) {
	valid := struct {
		fullName, email, phone, password string
	}{"Jane Doe", "jane@x.com", "5551234567", "secret1"}

	tests := []struct {
		name      string
		fullName  string
		email     string
		phone     string
		password  string
		wantField string // empty means no error expected
	}{
		{
			name:     "valid registration",
			fullName: valid.fullName, email: valid.email, phone: valid.phone, password: valid.password,
		},
		{
			name:     "empty full name",
			fullName: "   ", email: valid.email, phone: valid.phone, password: valid.password,
			wantField: "fullName",
		},
		{
			name:     "full name too short",
			fullName: "J", email: valid.email, phone: valid.phone, password: valid.password,
			wantField: "fullName",
		},
		{
			name:     "empty email",
			fullName: valid.fullName, email: "", phone: valid.phone, password: valid.password,
			wantField: "email",
		},
		{
			name:     "email without at sign",
			fullName: valid.fullName, email: "janex.com", phone: valid.phone, password: valid.password,
			wantField: "email",
		},
		{
			name:     "email without dot",
			fullName: valid.fullName, email: "jane@xcom", phone: valid.phone, password: valid.password,
			wantField: "email",
		},
		{
			name:     "email too short",
			fullName: valid.fullName, email: "a@b.", phone: valid.phone, password: valid.password,
			wantField: "email",
		},
		{
			name:     "empty password",
			fullName: valid.fullName, email: valid.email, phone: valid.phone, password: "",
			wantField: "password",
		},
		{
			name:     "password too short",
			fullName: valid.fullName, email: valid.email, phone: valid.phone, password: "12345",
			wantField: "password",
		},
		{
			name:     "empty phone",
			fullName: valid.fullName, email: valid.email, phone: "  ", password: valid.password,
			wantField: "phoneNumber",
		},
		{
			name:     "phone too short",
			fullName: valid.fullName, email: valid.email, phone: "555123", password: valid.password,
			wantField: "phoneNumber",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.fullName, tt.email, tt.phone, tt.password)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateRegistration failed: %v", err)
				}
				return
			}

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "trims whitespace", in: "  Jane Doe  ", want: "Jane Doe"},
		{name: "strips control chars", in: "Jane\x00Doe", want: "JaneDoe"},
		{name: "keeps unicode", in: "José Müller", want: "José Müller"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.in); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
