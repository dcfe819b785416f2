package api

import (
	"net/http"
	"testing"
)

func TestParseErrorPrefersDetail(t *testing.T) {
	e := parseError(http.StatusBadRequest, []byte(`{"detail":"Token inválido","nome":["obrigatório"]}`))
	if e.Message() != "Token inválido" {
		t.Fatalf("неожиданное сообщение: %q", e.Message())
	}
}

func TestParseErrorJoinsFieldsSorted(t *testing.T) {
	e := parseError(http.StatusBadRequest, []byte(`{"tipo":["Escolha inválida."],"nome":["Este campo é obrigatório."],"cor":"Cor inválida."}`))
	want := "cor: Cor inválida.; nome: Este campo é obrigatório.; tipo: Escolha inválida."
	if e.Message() != want {
		t.Fatalf("ожидалось %q, получено %q", want, e.Message())
	}
}

func TestParseErrorNonJSONBody(t *testing.T) {
	e := parseError(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	if e.Message() != "Bad Gateway" {
		t.Fatalf("неожиданное сообщение: %q", e.Message())
	}
}

func TestIsUnauthorized(t *testing.T) {
	for status, want := range map[int]bool{401: true, 403: true, 400: false, 500: false} {
		if got := IsUnauthorized(&APIError{Status: status}); got != want {
			t.Errorf("IsUnauthorized(%d) = %v", status, got)
		}
	}
	if IsUnauthorized(nil) {
		t.Error("nil не является ошибкой авторизации")
	}
}
