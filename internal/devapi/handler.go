package devapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nookcoder/library-console/internal/auth"
	"go.uber.org/zap"
)

type tokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
	FirstName        string `json:"firstName" binding:"required"`
	LastName         string `json:"lastName" binding:"required"`
	MembershipNumber string `json:"membershipNumber" binding:"required"`
	MembershipType   string `json:"membershipType" binding:"omitempty,oneof=STANDARD PREMIUM"`
}

type refreshRequest struct {
	Token string `json:"token" binding:"required"`
}

type Book struct {
	ID              int64  `json:"id"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	AvailableCopies int    `json:"availableCopies"`
	TotalCopies     int    `json:"totalCopies"`
}

// Handler serves the auth endpoints and read-only catalog fixtures.
type Handler struct {
	users  *Directory
	tokens auth.Service
	books  []Book
	logger *zap.Logger
}

func NewHandler(users *Directory, tokens auth.Service, books []Book, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{users: users, tokens: tokens, books: books, logger: logger.Named("devapi")}
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		authFailuresTotal.WithLabelValues("login").Inc()
		writeError(c, http.StatusUnauthorized, err.Error())
		return
	}
	h.issue(c, "login", user)
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Add(User{
		Email:            req.Email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		MembershipNumber: req.MembershipNumber,
		MembershipType:   req.MembershipType,
	}, req.Password)
	if err != nil {
		authFailuresTotal.WithLabelValues("register").Inc()
		status := http.StatusInternalServerError
		if errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrMembershipTaken) {
			status = http.StatusBadRequest
		}
		writeError(c, status, err.Error())
		return
	}
	h.issue(c, "register", user)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	claims, err := h.tokens.ValidateToken(req.Token)
	if err != nil {
		authFailuresTotal.WithLabelValues("refresh").Inc()
		writeError(c, http.StatusBadRequest, "invalid token")
		return
	}
	user, err := h.users.ByEmail(claims.Subject)
	if err != nil {
		authFailuresTotal.WithLabelValues("refresh").Inc()
		writeError(c, http.StatusNotFound, err.Error())
		return
	}
	h.issue(c, "refresh", user)
}

func (h *Handler) issue(c *gin.Context, endpoint string, user *User) {
	token, expiresAt, err := h.tokens.GenerateToken(user.identity())
	if err != nil {
		h.logger.Error("failed to sign token", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "could not issue token")
		return
	}
	tokensIssuedTotal.WithLabelValues(endpoint).Inc()
	h.logger.Info("token issued", zap.String("endpoint", endpoint), zap.String("email", user.Email))
	c.JSON(http.StatusOK, tokenResponse{Token: token, TokenType: "Bearer", ExpiresAt: expiresAt})
}

func (h *Handler) ListBooks(c *gin.Context) {
	c.JSON(http.StatusOK, h.books)
}

func (h *Handler) GetBook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid book id")
		return
	}
	for _, b := range h.books {
		if b.ID == id {
			c.JSON(http.StatusOK, b)
			return
		}
	}
	writeError(c, http.StatusNotFound, "book not found")
}

// ListLoans returns no loans; loan bookkeeping lives in the real API.
func (h *Handler) ListLoans(c *gin.Context) {
	c.JSON(http.StatusOK, []any{})
}

func (h *Handler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.users.List())
}

func (h *Handler) GetUser(c *gin.Context) {
	user, ok := h.userParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UserLoans(c *gin.Context) {
	if _, ok := h.userParam(c); !ok {
		return
	}
	c.JSON(http.StatusOK, []any{})
}

func (h *Handler) userParam(c *gin.Context) (*User, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid user id")
		return nil, false
	}
	user, err := h.users.ByID(id)
	if err != nil {
		writeError(c, http.StatusNotFound, err.Error())
		return nil, false
	}
	return user, true
}

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"timestamp": time.Now().UTC(),
		"status":    status,
		"error":     http.StatusText(status),
		"message":   message,
		"path":      c.Request.URL.Path,
	})
}
