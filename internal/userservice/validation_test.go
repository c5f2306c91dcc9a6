package userservice

import (
	"strings"
	"testing"

	"github.com/sushihentaime/inkwell/internal/common"
)

func TestValidateName(t *testing.T) {
	testCases := []struct {
		name  string
		valid bool
	}{
		{name: "", valid: false},
		{name: "   ", valid: false},
		{name: "Ana", valid: true},
		{name: "João da Silva", valid: true},
		{name: strings.Repeat("a", 100), valid: true},
		{name: strings.Repeat("a", 101), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateName(v, tc.name)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v: %v", tc.valid, v.Valid(), v.Errors)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		email string
		valid bool
	}{
		{email: "", valid: false},
		{email: "a", valid: false},
		{email: "a@", valid: false},
		{email: "a@b", valid: false},
		{email: "a@b.c", valid: false},
		{email: "a@b.co", valid: true},
		{email: "first.last+tag@example.com", valid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.email, func(t *testing.T) {
			v := common.NewValidator()
			validateEmail(v, tc.email)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v: %v", tc.valid, v.Valid(), v.Errors)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		password string
		valid    bool
	}{
		{password: "", valid: false},
		{password: "12345", valid: false},
		{password: "123456", valid: true},
		{password: strings.Repeat("x", 72), valid: true},
		{password: strings.Repeat("x", 73), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.password, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v: %v", tc.valid, v.Valid(), v.Errors)
			}
		})
	}
}
