//go:build integration

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/sportivo/platform/internal/auth"
)

// RegisterUser creates an account through the public endpoint.
func (env *TestEnv) RegisterUser(nama, email, password string) {
	env.t.Helper()
	resp := env.POST("/register/", map[string]string{
		"nama":            nama,
		"email":           email,
		"kelamin":         "L",
		"tanggal_lahir":   "2000-01-15",
		"nomor_handphone": "081234567890",
		"password":        password,
		"password2":       password,
	}, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("RegisterUser: expected 200, got %d", resp.StatusCode)
	}
}

// LoginUser authenticates and returns the session cookie.
func (env *TestEnv) LoginUser(email, password string) *http.Cookie {
	env.t.Helper()
	resp := env.POST("/login/", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("LoginUser: expected 200, got %d", resp.StatusCode)
	}

	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	env.t.Fatalf("LoginUser: no %s cookie in response", auth.CookieName)
	return nil
}

// SignUp registers and logs in a fresh user, returning the session cookie.
func (env *TestEnv) SignUp(nama, email, password string) *http.Cookie {
	env.t.Helper()
	env.RegisterUser(nama, email, password)
	return env.LoginUser(email, password)
}

// GET performs a GET request with an optional session cookie.
func (env *TestEnv) GET(path string, cookie *http.Cookie) *http.Response {
	env.t.Helper()
	req, err := http.NewRequest("GET", env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("GET %s: new request: %v", path, err)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with an optional session cookie.
func (env *TestEnv) POST(path string, body interface{}, cookie *http.Cookie) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("POST %s: encode: %v", path, err)
		}
	}
	req, err := http.NewRequest("POST", env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("POST %s: new request: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// DecodeBody decodes a JSON response body into a generic map.
func (env *TestEnv) DecodeBody(resp *http.Response) map[string]interface{} {
	env.t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		env.t.Fatalf("decode body: %v", err)
	}
	return body
}
