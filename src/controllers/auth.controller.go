package controllers

import (
	"castbook/src/db"
	dbpkg "castbook/src/db"
	"castbook/src/lib"
	"castbook/src/models"
	"castbook/src/types"
	"castbook/src/utils"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthLogin(ctx *gin.Context) (token *string, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	var user models.User
	if err := db.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email}).
		First(&user).
		Error; err != nil {
		log.Printf("error: %s\n", err.Error())
		return nil, http.StatusNotFound, errors.New("no user account is associated with this email")
	}
	if !utils.CheckPassword(user.PasswordHash, body.Password) {
		return nil, http.StatusUnauthorized, errors.New("invalid credentials")
	}

	jwt, err := utils.GenerateJWT(user.Email, user.ID, user.Role)
	if err != nil {
		log.Printf("Error generating JWT for user [%d]: %s\n", user.ID, err.Error())
		return nil, http.StatusInternalServerError, errors.New("could not complete login")
	}
	go lib.SetSessionToken(user.ID, jwt, 24*time.Hour)

	return &jwt, http.StatusOK, nil
}

func AuthRegister(ctx *gin.Context) (id *uint, status int, err error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	role := body.Role
	if role == "" {
		role = string(types.ROLE_CLIENT)
	}

	hash, err := utils.HashPassword(body.Password)
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("could not complete registration")
	}

	db := db.GetDb()
	var newUser models.User
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.User{}).
			Where("email = ?", body.Email).
			Count(&count).
			Error; err != nil {
			return errors.New("could not complete transaction")
		}
		if count > 0 {
			err := errors.New("user is already registered in the system. Please proceed to Log In")
			log.Printf("error: %s\n", err.Error())
			return err
		}

		newUser = models.User{
			Email:        body.Email,
			Name:         body.Name,
			Role:         role,
			PasswordHash: hash,
		}
		if err := tx.Create(&newUser).Error; err != nil {
			log.Printf("Error creating user: %s\n", err.Error())
			return errors.New("error creating user")
		}

		if role == string(types.ROLE_TALENT) {
			profile := models.TalentProfile{UserID: newUser.ID}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	// Billing account creation is best-effort; registration never blocks on Stripe.
	if role == string(types.ROLE_CLIENT) {
		go func(u models.User) {
			cust, err := lib.CreateStripeCustomer(u.Name, u.Email)
			if err != nil {
				log.Printf("Error creating billing account for user [%d]: %s\n", u.ID, err.Error())
				return
			}
			db := dbpkg.GetDb()
			if err := db.
				Model(&models.User{}).
				Where("id = ?", u.ID).
				Update("stripe_customer_id", cust.ID).
				Error; err != nil {
				log.Printf("Error saving billing account for user [%d]: %s\n", u.ID, err.Error())
			}
		}(newUser)
	}

	return &newUser.ID, http.StatusOK, nil
}
