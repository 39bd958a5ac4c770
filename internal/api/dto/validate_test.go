package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegisterRequest(t *testing.T) {
	valid := RegisterRequest{
		FirstName: "Saba",
		LastName:  "Jiqurashvili",
		Username:  "saba",
		Age:       25,
		Salary:    3000,
		Password:  "Password1",
	}
	assert.Nil(t, Validate(valid))

	underage := valid
	underage.Age = 17
	msgs := Validate(underage)
	assert.Contains(t, msgs, "age must be greater than or equal to 18")

	shortPassword := valid
	shortPassword.Password = "short"
	msgs = Validate(shortPassword)
	assert.Contains(t, msgs, "password must be at least 8 characters")

	empty := RegisterRequest{}
	assert.NotEmpty(t, Validate(empty))
}

func TestValidateLoanRequest(t *testing.T) {
	valid := LoanRequest{
		LoanType:     "QuickLoan",
		Amount:       1000,
		Currency:     "GEL",
		PeriodMonths: 12,
	}
	assert.Nil(t, Validate(valid))

	cases := []struct {
		name   string
		mutate func(*LoanRequest)
	}{
		{"amount below minimum", func(r *LoanRequest) { r.Amount = 100 }},
		{"unknown type", func(r *LoanRequest) { r.LoanType = "Mortgage" }},
		{"unknown currency", func(r *LoanRequest) { r.Currency = "JPY" }},
		{"zero period", func(r *LoanRequest) { r.PeriodMonths = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			assert.NotEmpty(t, Validate(req))
		})
	}
}

func TestValidateLoanStatusRequest(t *testing.T) {
	assert.Nil(t, Validate(LoanStatusRequest{Status: "Approved"}))
	assert.NotEmpty(t, Validate(LoanStatusRequest{Status: "Cancelled"}))
	assert.NotEmpty(t, Validate(LoanStatusRequest{}))
}
