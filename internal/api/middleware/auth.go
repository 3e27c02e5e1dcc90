package middleware

import (
	"crypto/subtle"
	"net/http"
)

// SecretToken validates the X-Telegram-Bot-Api-Secret-Token header Telegram
// attaches to webhook deliveries. A mismatch terminates the request before
// any parsing or dispatch happens.
func SecretToken(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Telegram-Bot-Api-Secret-Token")

			// Constant-time comparison to prevent timing attacks
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"invalid secret token"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
