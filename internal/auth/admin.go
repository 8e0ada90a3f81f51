package auth

import (
	"net/http"
	"time"
)

const (
	AdminCookie = "admin_session"
	AdminTTL    = 24 * time.Hour
)

// Admin guards the admin surface with one shared password. A successful
// login is remembered in a signed cookie.
type Admin struct {
	hash   string
	jwt    *JWT
	secure bool
}

func NewAdmin(password, secret string, secureCookie bool) (*Admin, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Admin{
		hash:   hash,
		jwt:    NewJWT(secret, AdminTTL),
		secure: secureCookie,
	}, nil
}

func (a *Admin) CheckPassword(pw string) bool {
	return pw != "" && ComparePassword(a.hash, pw)
}

// Login sets the admin cookie on w.
func (a *Admin) Login(w http.ResponseWriter) error {
	tok, err := a.jwt.Sign(adminSubject)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     AdminCookie,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(AdminTTL / time.Second),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

func (a *Admin) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Authenticated reports whether r carries a valid admin cookie.
func (a *Admin) Authenticated(r *http.Request) bool {
	c, err := r.Cookie(AdminCookie)
	if err != nil || c.Value == "" {
		return false
	}
	sub, err := a.jwt.Verify(c.Value)
	return err == nil && sub == adminSubject
}
