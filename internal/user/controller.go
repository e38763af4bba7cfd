package user

import (
	"errors"
	"net/http"
	"time"

	"taskboard/internal/observability"
	"taskboard/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	userService UserServiceInterface
}

func NewUserController(userService UserServiceInterface) *UserController {
	return &UserController{
		userService: userService,
	}
}

// Register handles user registration
func (a *UserController) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3,max=50"`
		Password string `json:"password" binding:"required,min=6,max=72"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation failed",
			"details": utils.ValidationDetails(err),
		})
		return
	}

	userID, err := a.userService.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": "username already exists"})
			return
		}
		logrus.WithError(err).Error("Failed to register user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create user"})
		return
	}

	if observability.GlobalMetrics != nil {
		observability.GlobalMetrics.RegistrationsTotal.Inc()
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user created successfully",
		"userId":  userID,
	})
}

// Login handles user login and returns a bearer token
func (a *UserController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation failed",
			"details": utils.ValidationDetails(err),
		})
		return
	}

	result, err := a.userService.Login(req.Username, req.Password)
	if err != nil {
		if observability.GlobalMetrics != nil {
			observability.GlobalMetrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid username or password"})
			return
		}
		logrus.WithError(err).Error("Failed to log user in")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to log in"})
		return
	}

	if observability.GlobalMetrics != nil {
		observability.GlobalMetrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
		observability.GlobalMetrics.TokensIssuedTotal.Inc()
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     result.Token,
		"username":  result.Username,
		"expiresAt": result.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
