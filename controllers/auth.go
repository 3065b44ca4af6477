package controllers

import (
	"net/http"

	"github.com/zattar/dashboard_end/models"
	"github.com/zattar/dashboard_end/repository"
	"github.com/zattar/dashboard_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Login verifies the credentials and issues a token.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Parâmetros inválidos: "+err.Error(), http.StatusBadRequest)
		return
	}

	utils.Logger.Info().Str("email", req.Email).Msg("login attempt")

	usersCollection := repository.Collection(repository.UsersCollection)

	// only active accounts can sign in
	var user models.User
	err := usersCollection.FindOne(repository.GetContext(), bson.M{
		"email":  req.Email,
		"active": true,
	}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.Logger.Info().Str("email", req.Email).Msg("login failed: unknown or inactive user")
		utils.ErrorResponse(c, "Usuário não encontrado ou inativo", http.StatusUnauthorized)
		return
	}
	if err != nil {
		utils.Logger.Error().Err(err).Msg("user lookup failed")
		utils.ErrorResponse(c, "Erro ao fazer login", http.StatusInternalServerError)
		return
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		utils.Logger.Info().Str("email", req.Email).Msg("login failed: wrong password")
		utils.ErrorResponse(c, "Senha incorreta", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("token generation failed")
		utils.ErrorResponse(c, "Erro ao gerar token de acesso", http.StatusInternalServerError)
		return
	}

	utils.Logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("login succeeded")
	utils.SuccessResponse(c, models.LoginResponse{
		Token: token,
		User:  user,
	}, "")
}

// GetCurrentUser returns the account behind the presented token.
func GetCurrentUser(c *gin.Context) {
	loginUser, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, "Acesso não autorizado", http.StatusUnauthorized)
		return
	}

	objID, err := primitiveObjectID(loginUser.ID)
	if err != nil {
		utils.ErrorResponse(c, "ID de usuário inválido", http.StatusBadRequest)
		return
	}

	usersCollection := repository.Collection(repository.UsersCollection)

	var user models.User
	err = usersCollection.FindOne(repository.GetContext(), bson.M{"_id": objID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.ErrorResponse(c, "Usuário não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.Logger.Error().Err(err).Msg("user lookup failed")
		utils.ErrorResponse(c, "Erro ao buscar usuário", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user}, "")
}
