package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	ContextManagerID = "manager_id"
	ContextRole      = "role"
)

var (
	errTokenMissing = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	errTokenInvalid = apperror.New(apperror.CodeUnauthorized, "Invalid token", http.StatusUnauthorized)
	errTokenExpired = apperror.New(apperror.CodeUnauthorized, "Token has expired", http.StatusUnauthorized)
)

// bearerToken looks in the Authorization header, then the access_token cookie,
// then the token query parameter (browsers cannot set headers on websockets).
func bearerToken(c *gin.Context) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && token != "" {
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
		return cookie
	}
	return c.Query("token")
}

func abortWith(c *gin.Context, appErr *apperror.AppError) {
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
	c.Abort()
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abortWith(c, errTokenMissing)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, errTokenExpired)
				return
			}
			abortWith(c, errTokenInvalid)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, errTokenInvalid)
			return
		}

		rawID, _ := claims["manager_id"].(string)
		managerID, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil || managerID == 0 {
			abortWith(c, errTokenInvalid)
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextManagerID, uint(managerID))
		c.Set(ContextRole, role)

		ctx := contextutil.WithManagerID(c.Request.Context(), rawID)
		reqLogger := contextutil.GetLogger(ctx, zap.L()).With(zap.String("manager_id", rawID))
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ManagerID returns the authenticated manager, if AuthMiddleware ran.
func ManagerID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextManagerID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
