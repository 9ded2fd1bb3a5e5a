package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookie = "docforge_notice"

// flashCodec signs the transient notice cookie so a client cannot forge
// arbitrary notices into the page. One read clears it.
type flashCodec struct {
	secret []byte
}

func newFlashCodec(secret string) *flashCodec {
	return &flashCodec{secret: []byte(secret)}
}

func (f *flashCodec) set(w http.ResponseWriter, notice string) {
	if notice == "" {
		return
	}
	payload := base64.RawURLEncoding.EncodeToString([]byte(notice))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    payload + "." + f.sign(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// take reads and clears the pending notice. Tampered or malformed cookies
// read as no notice.
func (f *flashCodec) take(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, signature, ok := strings.Cut(cookie.Value, ".")
	if !ok || !hmac.Equal([]byte(signature), []byte(f.sign(payload))) {
		return ""
	}
	notice, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return ""
	}
	return string(notice)
}

func (f *flashCodec) sign(payload string) string {
	mac := hmac.New(sha256.New, f.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
