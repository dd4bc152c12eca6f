package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"deliverypro-backend-go/internal/services"
	"deliverypro-backend-go/internal/session"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r)
		if recorder.status == 0 {
			recorder.status = http.StatusOK
		}
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   recorder.status,
			"bytes":    recorder.bytes,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// WithSession guarantees a session cookie and resolves the request locale,
// applying any ?lang= override. Both land in the request context.
func WithSession(sessions session.Store, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if cookie, err := r.Cookie(cookieName); err == nil {
				sid = cookie.Value
			}
			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			locale := services.ResolveLocale(r.Context(), sessions, sid, r.URL.Query().Get("lang"))
			ctx := context.WithValue(r.Context(), ctxSessionID, sid)
			ctx = context.WithValue(ctx, ctxLocale, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentSessionID(r *http.Request) string {
	if value, ok := r.Context().Value(ctxSessionID).(string); ok {
		return value
	}
	return ""
}

func CurrentLocale(r *http.Request) services.Locale {
	if value, ok := r.Context().Value(ctxLocale).(services.Locale); ok {
		return value
	}
	return services.Locale{Lang: services.LangArabic, Dir: services.DirRTL}
}

// TrackVisitors records one row per IP per day, best-effort. The visitor is
// attached to a user when a valid bearer token happens to be present, but the
// token is never enforced here, and a tracking failure never fails the
// request.
func TrackVisitors(db *sqlx.DB, tokens services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visit := services.Visit{
				IP:        resolveClientIP(r),
				UserAgent: trimString(r.Header.Get("User-Agent"), 512),
				PageURL:   trimString(r.URL.RequestURI(), 255),
			}
			if ref := trimString(r.Header.Get("Referer"), 512); ref != "" {
				visit.Referrer = &ref
			}
			if userID := bearerUserID(r, tokens); userID != "" {
				visit.UserID = &userID
			}
			if err := services.RecordVisit(db, visit); err != nil {
				logrus.WithError(err).Debug("visitor tracking failed")
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerUserID(r *http.Request, tokens services.TokenService) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	token, claims, err := tokens.ParseToken(strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
	if err != nil || !token.Valid || claims["typ"] != "access" {
		return ""
	}
	userID, _ := claims["sub"].(string)
	return userID
}

// resolveClientIP prefers the first forwarded-for hop; behind no proxy it
// falls back to the connection address without the port.
func resolveClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// trimString truncates on a rune boundary so a multi-byte header never turns
// into invalid UTF-8 that the database would reject.
func trimString(value string, maxLen int) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) <= maxLen {
		return trimmed
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
		cut--
	}
	return trimmed[:cut]
}
