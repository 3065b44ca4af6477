package controllers

import (
	"net/http"
	"time"

	"github.com/zattar/dashboard_end/models"
	"github.com/zattar/dashboard_end/repository"
	"github.com/zattar/dashboard_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// primitiveObjectID parses a hex object id from a path or token value.
func primitiveObjectID(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(id)
}

// GetAllUsers lists every account, newest first, passwords omitted.
func GetAllUsers(c *gin.Context) {
	collection := repository.Collection(repository.UsersCollection)

	findOptions := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := collection.Find(repository.GetContext(), bson.M{}, findOptions)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("failed to query users")
		utils.ErrorResponse(c, "Erro ao buscar usuários: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(repository.GetContext())

	users := []models.User{}
	if err := cursor.All(repository.GetContext(), &users); err != nil {
		utils.Logger.Error().Err(err).Msg("failed to decode users")
		utils.ErrorResponse(c, "Erro ao buscar usuários: "+err.Error(), http.StatusInternalServerError)
		return
	}

	utils.Logger.Info().Int("count", len(users)).Msg("user list loaded")
	utils.SuccessResponse(c, gin.H{"users": users}, "")
}

// CreateUser creates an account. Email uniqueness is backed by the storage
// layer index; the explicit check here only produces the friendlier message.
func CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Parâmetros inválidos: "+err.Error(), http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.UsersCollection)

	count, err := collection.CountDocuments(repository.GetContext(), bson.M{"email": req.Email})
	if err != nil {
		utils.Logger.Error().Err(err).Msg("failed to check email")
		utils.ErrorResponse(c, "Erro ao criar usuário", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		utils.ErrorResponse(c, "Já existe um usuário com este email", http.StatusConflict)
		return
	}

	now := time.Now()
	user := models.User{
		Email:     req.Email,
		Name:      req.Name,
		Password:  utils.HashPassword(req.Password),
		Role:      req.Role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := collection.InsertOne(repository.GetContext(), user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.ErrorResponse(c, "Já existe um usuário com este email", http.StatusConflict)
			return
		}
		utils.Logger.Error().Err(err).Msg("failed to insert user")
		utils.ErrorResponse(c, "Erro ao criar usuário: "+err.Error(), http.StatusInternalServerError)
		return
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	user.Password = ""

	utils.Logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user created")
	utils.SuccessResponse(c, gin.H{"user": user}, "Usuário criado com sucesso", http.StatusCreated)
}

// UpdateUser applies a partial update to an account.
func UpdateUser(c *gin.Context) {
	objID, err := primitiveObjectID(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "ID de usuário inválido", http.StatusBadRequest)
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Parâmetros inválidos: "+err.Error(), http.StatusBadRequest)
		return
	}

	updates := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Password != "" {
		updates["password"] = utils.HashPassword(req.Password)
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	collection := repository.Collection(repository.UsersCollection)

	result, err := collection.UpdateOne(
		repository.GetContext(),
		bson.M{"_id": objID},
		bson.M{"$set": updates},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.ErrorResponse(c, "Já existe um usuário com este email", http.StatusConflict)
			return
		}
		utils.Logger.Error().Err(err).Msg("failed to update user")
		utils.ErrorResponse(c, "Erro ao atualizar usuário: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		utils.ErrorResponse(c, "Usuário não encontrado", http.StatusNotFound)
		return
	}

	var user models.User
	err = collection.FindOne(
		repository.GetContext(),
		bson.M{"_id": objID},
		options.FindOne().SetProjection(bson.M{"password": 0}),
	).Decode(&user)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("failed to reload user")
		utils.ErrorResponse(c, "Erro ao atualizar usuário", http.StatusInternalServerError)
		return
	}

	utils.Logger.Info().Str("id", objID.Hex()).Msg("user updated")
	utils.SuccessResponse(c, gin.H{"user": user}, "Usuário atualizado com sucesso")
}

// DeleteUser removes an account.
func DeleteUser(c *gin.Context) {
	objID, err := primitiveObjectID(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "ID de usuário inválido", http.StatusBadRequest)
		return
	}

	loginUser, err := utils.GetUser(c)
	if err == nil && loginUser.ID == objID.Hex() {
		utils.ErrorResponse(c, "Não é possível remover o próprio usuário", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.UsersCollection)

	result, err := collection.DeleteOne(repository.GetContext(), bson.M{"_id": objID})
	if err != nil {
		utils.Logger.Error().Err(err).Msg("failed to delete user")
		utils.ErrorResponse(c, "Erro ao remover usuário: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		utils.ErrorResponse(c, "Usuário não encontrado", http.StatusNotFound)
		return
	}

	utils.Logger.Info().Str("id", objID.Hex()).Msg("user deleted")
	utils.SuccessResponse(c, nil, "Usuário removido com sucesso")
}
