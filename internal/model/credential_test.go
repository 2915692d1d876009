package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialNumber(t *testing.T) {
	tests := []struct {
		name      string
		kind      IdentityKind
		naturalID string
		want      string
	}{
		{name: "student", kind: KindStudent, naturalID: "S001", want: "EST-S001"},
		{name: "employee", kind: KindEmployee, naturalID: "1712345678", want: "EMP-1712345678"},
		{name: "trims spaces", kind: KindStudent, naturalID: "  S001 ", want: "EST-S001"},
		{name: "keeps case", kind: KindStudent, naturalID: "s001", want: "EST-s001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CredentialNumber(tt.kind, tt.naturalID))
		})
	}
}

func TestCredentialNumber_CaseDistinctIdentifiers(t *testing.T) {
	assert.NotEqual(t,
		CredentialNumber(KindStudent, "s001"),
		CredentialNumber(KindStudent, "S001"))
}
