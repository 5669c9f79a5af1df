package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minhvu/qna-service/internal/apperr"
	"github.com/minhvu/qna-service/internal/auth"
	"github.com/minhvu/qna-service/internal/core/domain"
)

// sessionKey is where the gate stores the verified session in the gin
// context.
const sessionKey = "session"

// Authorize turns the raw Authorization header value into a verified
// session. The header may carry a bare token or the Bearer scheme. An
// absent header is an empty string, which fails verification exactly like a
// forged token does; callers cannot tell the two apart.
func Authorize(issuer *auth.Issuer, header string) (domain.Session, error) {
	token := strings.TrimPrefix(header, "Bearer ")
	return issuer.Verify(token)
}

// Auth is the gate for protected routes. It must run to completion before
// any handler logic: on failure the pipeline halts with apperr.Respond,
// on success the session is stored for handlers to read via SessionFrom.
func Auth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := Authorize(issuer, c.GetHeader("Authorization"))
		if err != nil {
			apperr.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// SessionFrom returns the session the gate stored for this request.
// Handlers behind the gate thread the returned value explicitly into
// whatever needs the caller's identity.
func SessionFrom(c *gin.Context) (domain.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return domain.Session{}, false
	}
	session, ok := v.(domain.Session)
	return session, ok
}
