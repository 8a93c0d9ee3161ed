package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/aushadhi/pkg/validate"
)

type registerInput struct {
	Name                 string `json:"name"                  validate:"required,min=2,max=100"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
	Role                 string `json:"role"                  validate:"required,in=admin,customer"`
	Phone                string `json:"phone"                 validate:"nullable,digits=10"`
}

func TestValidRegistrationPasses(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:                 "Nimal Perera",
		Email:                "nimal@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		Role:                 "customer",
		Phone:                "", // nullable
	})
	assert.False(t, validate.HasErrors(errs), "unexpected errors: %v", errs)
}

func TestRequiredFieldsReported(t *testing.T) {
	errs := validate.Struct(registerInput{})

	assert.True(t, validate.HasErrors(errs))
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}

	assert.Contains(t, validate.Struct(in{Email: "not-an-email"}), "email")
	assert.Empty(t, validate.Struct(in{Email: "valid@example.com"}))
}

func TestRoleMustBeInClosedSet(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=admin,customer"`
	}

	assert.Contains(t, validate.Struct(in{Role: "superadmin"}), "role")
	assert.Empty(t, validate.Struct(in{Role: "admin"}))
	assert.Empty(t, validate.Struct(in{Role: "customer"}))
}

func TestPasswordConfirmation(t *testing.T) {
	type in struct {
		Password             string `json:"password"              validate:"required,min=8"`
		PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
	}

	errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "wrong"})
	assert.Contains(t, errs, "password_confirmation")

	errs = validate.Struct(in{Password: "secret123", PasswordConfirmation: "secret123"})
	assert.Empty(t, errs)
}

func TestNullableSkipsRemainingRules(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"nullable,digits=10"`
	}

	assert.Empty(t, validate.Struct(in{Phone: ""}))
	assert.Contains(t, validate.Struct(in{Phone: "12345"}), "phone")
}

func TestDigitsRule(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"required,digits=10"`
	}

	assert.Empty(t, validate.Struct(in{Phone: "0771234567"}))
	assert.Contains(t, validate.Struct(in{Phone: "077-123456"}), "phone")
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,gt=0"`
		Stock int     `json:"stock" validate:"gte=0"`
	}

	assert.Contains(t, validate.Struct(in{Price: -5}), "price")
	assert.Empty(t, validate.Struct(in{Price: 450, Stock: 12}))
}

func TestStringLengthBounds(t *testing.T) {
	type in struct {
		Message string `json:"message" validate:"required,min=10,max=2000"`
	}

	assert.Contains(t, validate.Struct(in{Message: "too short"}), "message")
	assert.Empty(t, validate.Struct(in{Message: "this message is long enough to pass"}))
}
