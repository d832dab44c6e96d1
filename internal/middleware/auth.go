package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/service"
	jwtpkg "github.com/tkaraca/menubook-backend/pkg/jwt"
)

// SessionCookie is the name of the web session cookie.
const SessionCookie = "menubook_session"

const principalKey = "principal"

// Principal is the authenticated identity attached to a request, regardless
// of whether it arrived via bearer token or session cookie.
type Principal struct {
	UserID    uint
	Username  string
	Role      string
	Source    string // "token" or "session"
	SessionID string
}

func (p *Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// PrincipalFrom returns the request principal, or nil when unauthenticated.
func PrincipalFrom(c *fiber.Ctx) *Principal {
	p, _ := c.Locals(principalKey).(*Principal)
	return p
}

// Auth extracts principals with two strategies: stateless bearer tokens for
// API clients and database-backed session cookies for the web views.
type Auth struct {
	tokens      *jwtpkg.TokenManager
	authService *service.AuthService
}

func NewAuth(tokens *jwtpkg.TokenManager, authService *service.AuthService) *Auth {
	return &Auth{
		tokens:      tokens,
		authService: authService,
	}
}

func (a *Auth) fromBearer(c *fiber.Ctx) *Principal {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}

	claims, err := a.tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil
	}
	if purpose, _ := claims["purpose"].(string); purpose != jwtpkg.PurposeAccess {
		return nil
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil
	}
	role, _ := claims["role"].(string)

	return &Principal{
		UserID:   uint(userIDFloat),
		Username: username,
		Role:     role,
		Source:   "token",
	}
}

func (a *Auth) fromSession(c *fiber.Ctx) *Principal {
	sessionID := c.Cookies(SessionCookie)
	if sessionID == "" {
		return nil
	}

	user, err := a.authService.ResolveSession(sessionID)
	if err != nil {
		return nil
	}

	return &Principal{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Source:    "session",
		SessionID: sessionID,
	}
}

func (a *Auth) extract(c *fiber.Ctx) *Principal {
	if p := a.fromBearer(c); p != nil {
		return p
	}
	return a.fromSession(c)
}

// Optional attaches a principal when one can be extracted but never blocks.
func (a *Auth) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if p := a.extract(c); p != nil {
			c.Locals(principalKey, p)
		}
		return c.Next()
	}
}

// RequireAuth guards API routes: 401 without a valid principal.
func (a *Auth) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := a.extract(c)
		if p == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authentication required"))
		}
		c.Locals(principalKey, p)
		return c.Next()
	}
}

// RequireAuthView guards server-rendered routes: redirect to the login page.
func (a *Auth) RequireAuthView() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := a.extract(c)
		if p == nil {
			return c.Redirect("/login", fiber.StatusFound)
		}
		c.Locals(principalKey, p)
		return c.Next()
	}
}

// RequireAdmin additionally checks the admin role. Runs after RequireAuth.
func (a *Auth) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := PrincipalFrom(c)
		if p == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authentication required"))
		}
		if !p.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Admin access required"))
		}
		return c.Next()
	}
}

// RequireAdminView renders the access-denied page for non-admins.
func (a *Auth) RequireAdminView() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := PrincipalFrom(c)
		if p == nil {
			return c.Redirect("/login", fiber.StatusFound)
		}
		if !p.IsAdmin() {
			return c.Status(fiber.StatusForbidden).Render("error", fiber.Map{
				"Title":   "Access denied",
				"Message": "You do not have permission to view this page.",
			}, "layout")
		}
		return c.Next()
	}
}
