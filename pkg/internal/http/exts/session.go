package exts

import (
	"context"
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const actorLocal = "actor"

// SessionClaims is the token the OAuth sign-in hands out. The subject is the
// provider account id.
type SessionClaims struct {
	Name     string `json:"name"`
	Username string `json:"login"`
	Email    string `json:"email"`
	Avatar   string `json:"picture"`
	Bio      string `json:"bio"`
	jwt.RegisteredClaims
}

func (v SessionClaims) Identity() models.Identity {
	return models.Identity{
		AccountID: v.Subject,
		Name:      v.Name,
		Username:  v.Username,
		Email:     v.Email,
		Avatar:    v.Avatar,
		Bio:       v.Bio,
	}
}

type ActorResolver func(ctx context.Context, identity models.Identity) (*models.Actor, error)

type SessionConfig struct {
	Secret     []byte
	CookieName string
	Resolve    ActorResolver
}

func ParseSession(secret []byte, raw string) (SessionClaims, error) {
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return claims, err
	}
	if len(claims.Subject) == 0 {
		return claims, fmt.Errorf("session has no subject")
	}
	return claims, nil
}

func tokenFrom(c *fiber.Ctx, cookie string) string {
	if len(cookie) > 0 {
		if val := c.Cookies(cookie); len(val) > 0 {
			return val
		}
	}
	header := c.Get(fiber.HeaderAuthorization)
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

// SessionMiddleware resolves the signed-in actor when a valid session is
// presented. Requests without one pass through anonymous; every mutation
// refuses them itself.
func SessionMiddleware(cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := tokenFrom(c, cfg.CookieName)
		if len(raw) == 0 {
			return c.Next()
		}
		claims, err := ParseSession(cfg.Secret, raw)
		if err != nil {
			log.Debug().Err(err).Msg("Ignored invalid session token")
			return c.Next()
		}
		actor, err := cfg.Resolve(c.UserContext(), claims.Identity())
		if err != nil {
			log.Error().Err(err).Str("account", claims.Subject).Msg("An error occurred when resolving session actor...")
			return fiber.NewError(fiber.StatusInternalServerError, "unable to resolve session")
		}
		c.Locals(actorLocal, actor)
		return c.Next()
	}
}

// GetActor returns the signed-in actor or nil.
func GetActor(c *fiber.Ctx) *models.Actor {
	if actor, ok := c.Locals(actorLocal).(*models.Actor); ok {
		return actor
	}
	return nil
}
