package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/records"
)

// TokenTTL is the lifetime of an issued bearer token.
const TokenTTL = 24 * time.Hour

type AuthHandler struct {
	db     *gorm.DB
	secret []byte
	now    func() time.Time
}

func NewAuthHandler(db *gorm.DB, secret string) *AuthHandler {
	return &AuthHandler{db: db, secret: []byte(secret), now: time.Now}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := h.db.Model(&records.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		writeError(c, err)
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "Email is already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "Failed to hash password")
		return
	}

	user := records.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         string(req.Role),
	}
	if err := h.db.Create(&user).Error; err != nil {
		writeError(c, err)
		return
	}

	h.respond(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user records.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "Invalid email or password")
			return
		}
		writeError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "Invalid email or password")
		return
	}

	h.respond(c, http.StatusOK, &user)
}

func (h *AuthHandler) respond(c *gin.Context, status int, user *records.User) {
	token, err := h.generateToken(user)
	if err != nil {
		httperr.Internal(c, "Failed to generate token")
		return
	}

	c.JSON(status, models.AuthResponse{
		Token: token,
		Type:  "Bearer",
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  models.Role(user.Role),
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *records.User) (string, error) {
	now := h.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  now.Add(TokenTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}
