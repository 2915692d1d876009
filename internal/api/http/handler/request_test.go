package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/idwallet-server/internal/apierror"
	"github.com/dtroode/idwallet-server/internal/model"
)

func decode(t *testing.T, body string) fields {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	f, err := decodeFields(httptest.NewRecorder(), req)
	require.NoError(t, err)
	return f
}

func TestFields_Registration(t *testing.T) {
	tests := []struct {
		name string
		body string
		want model.RegistrationRequest
	}{
		{
			name: "spanish aliases with student code",
			body: `{"nombre":"Ana","apellidos":"Pérez","codigo_estudiante":"S001","correo":"a@b.com","contraseña":"pw"}`,
			want: model.RegistrationRequest{Kind: model.KindStudent, NaturalID: "S001", Email: "a@b.com", Password: "pw", FirstName: "Ana", LastName: "Pérez"},
		},
		{
			name: "ascii password alias with cedula",
			body: `{"nombre":"Dan","apellidos":"Ruiz","cedula":"0999999999","email":"dan@uni.edu","contrasena":"pw"}`,
			want: model.RegistrationRequest{Kind: model.KindEmployee, NaturalID: "0999999999", Email: "dan@uni.edu", Password: "pw", FirstName: "Dan", LastName: "Ruiz"},
		},
		{
			name: "canonical fields with explicit kind",
			body: `{"kind":"empleado","natural_id":" 0999999999 ","email":"dan@uni.edu","password":" pw ","first_name":"Dan","last_name":"Ruiz"}`,
			want: model.RegistrationRequest{Kind: model.KindEmployee, NaturalID: "0999999999", Email: "dan@uni.edu", Password: " pw ", FirstName: "Dan", LastName: "Ruiz"},
		},
		{
			name: "password wins over aliases",
			body: `{"tipo":"ESTUDIANTE","codigo_estudiante":"S001","email":"a@b.com","password":"first","contraseña":"second","nombre":"Ana","apellidos":"P"}`,
			want: model.RegistrationRequest{Kind: model.KindStudent, NaturalID: "S001", Email: "a@b.com", Password: "first", FirstName: "Ana", LastName: "P"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decode(t, tt.body).registration()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFields_RegistrationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unsupported kind", body: `{"tipo":"ADMIN","natural_id":"1","email":"a@b.com"}`},
		{name: "kind cannot be inferred", body: `{"natural_id":"1","email":"a@b.com"}`},
		{name: "invalid email", body: `{"tipo":"STUDENT","natural_id":"1","email":"not-an-email"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(t, tt.body).registration()
			assert.True(t, apierror.Is(err, apierror.CodeValidation))
		})
	}
}

func TestFields_NumericIdentifier(t *testing.T) {
	f := decode(t, `{"cedula":1712345678,"codigo":"123456"}`)

	assert.Equal(t, "1712345678", f.first(naturalIDKeys...))
	assert.Equal(t, "123456", f.first(codeKeys...))
}

func TestFields_JobTitle(t *testing.T) {
	title := decode(t, `{"cargo":" Docente "}`).jobTitle()
	require.NotNil(t, title)
	assert.Equal(t, "Docente", *title)

	assert.Nil(t, decode(t, `{}`).jobTitle())
}

func TestDecodeFields_Invalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`[1,2]`))
	_, err := decodeFields(httptest.NewRecorder(), req)
	assert.True(t, apierror.Is(err, apierror.CodeValidation))

	req = httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	f, err := decodeFields(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Empty(t, f)
}

func TestParseID(t *testing.T) {
	id, err := parseID("17")
	require.NoError(t, err)
	assert.Equal(t, int64(17), id)

	for _, raw := range []string{"", "0", "-3", "abc"} {
		_, err := parseID(raw)
		assert.True(t, apierror.Is(err, apierror.CodeValidation), raw)
	}
}
