package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Cents
		wantErr bool
	}{
		{"whole euros", "360", 36000, false},
		{"decimal point", "12.50", 1250, false},
		{"decimal comma", "12,50", 1250, false},
		{"single decimal digit", "12.5", 1250, false},
		{"surrounding whitespace", "  180 ", 18000, false},
		{"empty string is zero", "", 0, false},
		{"whitespace only is zero", "   ", 0, false},
		{"bare fraction", ".50", 50, false},
		{"negative", "-12.50", -1250, false},
		{"zero", "0", 0, false},
		{"too many decimals", "12.505", 0, true},
		{"not a number", "abc", 0, true},
		{"garbage fraction", "12.x", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCents(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "360.00", Cents(36000).String())
	assert.Equal(t, "12.50", Cents(1250).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-12.50", Cents(-1250).String())
	assert.Equal(t, "0.00", Cents(0).String())
}

func TestParseBillingPeriod(t *testing.T) {
	tests := []struct {
		raw  string
		want BillingPeriod
	}{
		{"year", PeriodYear},
		{"Yearly", PeriodYear},
		{"half-year", PeriodHalfYear},
		{"halfyear", PeriodHalfYear},
		{"Half Year", PeriodHalfYear},
		{"month", PeriodMonth},
		{"Monthly", PeriodMonth},
		{" month ", PeriodMonth},
		{"", PeriodUnknown},
		{"quarterly", PeriodUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseBillingPeriod(tt.raw), "raw %q", tt.raw)
	}
}

func TestNormalizeVS(t *testing.T) {
	assert.Equal(t, "123456", NormalizeVS(" 123456 "))
	assert.Equal(t, "0042", NormalizeVS("0042"), "leading zeros must survive")
	assert.Equal(t, "", NormalizeVS("   "))
}

func TestRoleTypeIsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleTeam.IsValid())
	assert.True(t, RoleStudent.IsValid())
	assert.False(t, RoleType("superuser").IsValid())
	assert.False(t, RoleType("").IsValid())
}

func TestStudentFullName(t *testing.T) {
	s := Student{Name: "Jana", Surname: "Nováková"}
	assert.Equal(t, "Nováková Jana", s.FullName())
}
