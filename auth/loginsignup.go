package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"greenzest/db"
	"greenzest/globals"
	"greenzest/middleware"
	"greenzest/models"
	"greenzest/rdx"
	"greenzest/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL = 30 * 24 * time.Hour
	bcryptCost     = 12
)

func generateAccessToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Username: user.Name,
		UserID:   user.UserID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	// Same message whether the email is unknown or the password is wrong,
	// so callers cannot enumerate accounts.
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	now := time.Now()
	if user.IsLocked(now) {
		utils.RespondWithError(w, http.StatusLocked, "Account locked. Try again later")
		return
	}
	if !user.IsActive {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		attempts, lockUntil := RegisterFailedLogin(user.FailedLoginAttempts, user.LockUntil, now, LockoutDuration())
		update := bson.M{"failed_login_attempts": attempts, "lock_until": lockUntil}
		if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": user.UserID}, bson.M{"$set": update}); err != nil {
			log.Printf("login: failed to record bad attempt for %s: %v", user.UserID, err)
		}
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx, bson.M{"userid": user.UserID}, bson.M{
		"$set": bson.M{
			"failed_login_attempts": 0,
			"lock_until":            time.Time{},
			"last_login":            now,
		},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	tokenString, err := generateAccessToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := rdx.StoreSessionToken(user.UserID, tokenString); err != nil {
		log.Printf("session store failed for %s: %v", user.UserID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	user.LastLogin = now
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"token":   tokenString,
		"user":    user,
	})
}

func registerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if errs := ValidateSignup(input.Name, input.Email, input.Password); len(errs) > 0 {
		utils.RespondWithValidation(w, errs)
		return
	}

	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Email already registered")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	now := time.Now()
	user := models.User{
		UserID:    utils.GenerateRandomString(16),
		Name:      strings.TrimSpace(input.Name),
		Email:     input.Email,
		Password:  string(hashed),
		Role:      models.RoleUser,
		IsActive:  true,
		Tier:      models.ComputeTier(0),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		// The unique email index closes the race between the existence
		// check and the insert.
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	tokenString, err := generateAccessToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := rdx.StoreSessionToken(user.UserID, tokenString); err != nil {
		log.Printf("session store failed for %s: %v", user.UserID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Signup failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"token":   tokenString,
		"user":    user,
	})
}

// verifyHandler echoes the authenticated user; runs behind Authenticate.
func verifyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "user": user})
}

func logoutHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := rdx.DropSessionToken(userID); err != nil {
		log.Printf("logout: failed to drop session for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Logged out successfully"})
}
