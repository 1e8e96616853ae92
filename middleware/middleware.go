package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"greenzest/db"
	"greenzest/globals"
	"greenzest/models"
	"greenzest/rdx"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// JWT claims
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate verifies the bearer token, checks it against the active-session
// store, loads the referenced user and rejects deactivated accounts. userId,
// username and role go into the request context for downstream handlers.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		claims, err := ValidateJWT(header)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		// A valid signature is not enough: logout drops the stored token,
		// which revokes the session before the JWT expires.
		stored, err := rdx.GetSessionToken(claims.UserID)
		if err != nil || !sessionActive(stored, bearerToken(header)) {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err = db.UserCollection.FindOne(ctx, bson.M{"userid": claims.UserID}).Decode(&user)
		if err != nil || !user.IsActive {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next(w, r.WithContext(contextWithClaims(r.Context(), &user)), ps)
	}
}

// OptionalAuth attaches the user to the context when the token resolves but
// proceeds regardless, for endpoints that personalize without requiring
// login.
func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if claims, err := ValidateJWT(r.Header.Get("Authorization")); err == nil {
			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			var user models.User
			err := db.UserCollection.FindOne(ctx, bson.M{"userid": claims.UserID}).Decode(&user)
			cancel()
			if err == nil && user.IsActive {
				r = r.WithContext(contextWithClaims(r.Context(), &user))
			}
		}
		// Proceed regardless of token state
		next(w, r, ps)
	}
}

// RequireAdmin gates a route on the admin role. Wrap inside Authenticate.
func RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		role, _ := r.Context().Value(globals.RoleKey).(string)
		if role != models.RoleAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r, ps)
	}
}

// ValidateJWT parses and verifies a "Bearer <token>" header value.
func ValidateJWT(tokenString string) (*Claims, error) {
	if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// bearerToken strips the "Bearer " prefix from an Authorization header.
func bearerToken(header string) string {
	if len(header) < 8 || header[:7] != "Bearer " {
		return ""
	}
	return header[7:]
}

// sessionActive reports whether the presented token is the one the session
// store currently holds for the user.
func sessionActive(stored, presented string) bool {
	return stored != "" && stored == presented
}

func contextWithClaims(ctx context.Context, user *models.User) context.Context {
	ctx = context.WithValue(ctx, globals.UserIDKey, user.UserID)
	ctx = context.WithValue(ctx, globals.RoleKey, user.Role)
	return context.WithValue(ctx, globals.UsernameKey, user.Name)
}
