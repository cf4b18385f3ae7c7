package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrNoPermission        = &CustomError{"You do not have permission"}
	ErrEmailRegistered     = &CustomError{"Email already registered"}
	ErrTableExists         = &CustomError{"table already exists"}
	ErrTableOccupied       = &CustomError{"table already occupied"}
	ErrTableHasSessions    = &CustomError{"table still has sessions attached"}
	ErrInvalidTableType    = &CustomError{"invalid table type"}
	ErrSessionClosed       = &CustomError{"session already closed"}
	ErrOrdersNotServed     = &CustomError{"session has orders not yet served"}
	ErrOrderServed         = &CustomError{"order already served"}
	ErrInvalidQuantity     = &CustomError{"quantity must be greater than zero"}
	ErrMenuItemUnavailable = &CustomError{"menu item is not available"}
)

// respondDomainError memetakan error ke status HTTP:
// record hilang -> 404, pelanggaran aturan bisnis -> 400
func respondDomainError(c *gin.Context, err error) {
	var domainErr *CustomError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &domainErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// isDuplicateErr mendeteksi pelanggaran unique index dari driver
// (mysql "Duplicate entry", sqlite "UNIQUE constraint failed")
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
