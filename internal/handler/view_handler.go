package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tkaraca/menubook-backend/internal/middleware"
	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/service"
	"github.com/tkaraca/menubook-backend/pkg/utils"
)

// ViewHandler serves the server-rendered pages. API clients use the JSON
// handlers instead.
type ViewHandler struct {
	menuService  *service.MenuService
	photoService *service.PhotoService
	authService  *service.AuthService
	userService  *service.UserService
	validator    *utils.Validator
	secureCookie bool
}

func NewViewHandler(
	menuService *service.MenuService,
	photoService *service.PhotoService,
	authService *service.AuthService,
	userService *service.UserService,
	validator *utils.Validator,
	secureCookie bool,
) *ViewHandler {
	return &ViewHandler{
		menuService:  menuService,
		photoService: photoService,
		authService:  authService,
		userService:  userService,
		validator:    validator,
		secureCookie: secureCookie,
	}
}

func (h *ViewHandler) base(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	data["Principal"] = middleware.PrincipalFrom(c)
	return data
}

// GET / — menu listing, optionally filtered to one year.
func (h *ViewHandler) Home(c *fiber.Ctx) error {
	var filters models.MenuFilters
	if err := c.QueryParser(&filters); err == nil {
		if h.validator.Struct(filters) != nil {
			filters = models.MenuFilters{}
		}
	}

	menus, err := h.menuService.GetAllMenus(filters)
	if err != nil {
		return err
	}
	stats, err := h.menuService.GetMenuStats()
	if err != nil {
		return err
	}

	return c.Render("index", h.base(c, fiber.Map{
		"Title": "Menus",
		"Menus": menus,
		"Stats": stats,
		"Year":  filters.Year,
	}), "layout")
}

// GET /menus/:id — menu detail with its photos.
func (h *ViewHandler) MenuDetail(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	menu, err := h.menuService.GetMenuByID(id)
	if err != nil {
		return err
	}
	photos, err := h.photoService.GetEventPhotos(id)
	if err != nil {
		return err
	}

	return c.Render("menu", h.base(c, fiber.Map{
		"Title":  menu.Name,
		"Menu":   menu,
		"Photos": photos,
	}), "layout")
}

// GET /login
func (h *ViewHandler) LoginForm(c *fiber.Ctx) error {
	if middleware.PrincipalFrom(c) != nil {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Render("login", h.base(c, fiber.Map{"Title": "Sign in"}), "layout")
}

// POST /login — form login, creates the web session.
func (h *ViewHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := h.authService.Authenticate(username, password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).Render("login", h.base(c, fiber.Map{
			"Title": "Sign in",
			"Error": "Invalid username or password",
		}), "layout")
	}

	session, err := h.authService.CreateSession(user.ID)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, session.ID, session.ExpiresAt)

	return c.Redirect("/", fiber.StatusFound)
}

// GET /register
func (h *ViewHandler) RegisterForm(c *fiber.Ctx) error {
	if middleware.PrincipalFrom(c) != nil {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Render("register", h.base(c, fiber.Map{"Title": "Register"}), "layout")
}

// POST /register — form registration, then straight into a session.
func (h *ViewHandler) Register(c *fiber.Ctx) error {
	req := models.RegisterRequest{
		Username:  c.FormValue("username"),
		Email:     c.FormValue("email"),
		Password:  c.FormValue("password"),
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("register", h.base(c, fiber.Map{
			"Title":  "Register",
			"Error":  "Please check the highlighted fields",
			"Fields": utils.Fields(err),
			"Form":   req,
		}), "layout")
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		return c.Status(fiber.StatusConflict).Render("register", h.base(c, fiber.Map{
			"Title": "Register",
			"Error": err.Error(),
			"Form":  req,
		}), "layout")
	}

	session, err := h.authService.CreateSession(resp.User.ID)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, session.ID, session.ExpiresAt)

	return c.Redirect("/", fiber.StatusFound)
}

// POST /logout
func (h *ViewHandler) Logout(c *fiber.Ctx) error {
	if p := middleware.PrincipalFrom(c); p != nil && p.SessionID != "" {
		_ = h.authService.DestroySession(p.SessionID)
	}
	c.Cookie(&fiber.Cookie{
		Name:    middleware.SessionCookie,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
	})
	return c.Redirect("/", fiber.StatusFound)
}

// GET /admin — dashboard.
func (h *ViewHandler) AdminDashboard(c *fiber.Ctx) error {
	stats, err := h.menuService.GetMenuStats()
	if err != nil {
		return err
	}
	users, err := h.userService.ListUsers()
	if err != nil {
		return err
	}

	return c.Render("admin", h.base(c, fiber.Map{
		"Title":     "Admin",
		"Stats":     stats,
		"UserCount": len(users),
	}), "layout")
}

// GET /admin/users — user management.
func (h *ViewHandler) AdminUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers()
	if err != nil {
		return err
	}

	return c.Render("admin_users", h.base(c, fiber.Map{
		"Title": "Users",
		"Users": users,
	}), "layout")
}

func (h *ViewHandler) setSessionCookie(c *fiber.Ctx, sessionID string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sessionID,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: "Lax",
	})
}
